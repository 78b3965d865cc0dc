package main

import (
	"os"

	"github.com/achernar1030/polyroot/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
