// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/achernar1030/polyroot/internal/version.Version=v1.2.0"
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for the version command and startup log.
func String() string {
	return fmt.Sprintf("polyroot %s (commit %s, built %s)", Version, Commit, Date)
}
