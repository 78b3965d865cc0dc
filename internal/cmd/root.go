// Package cmd wires the polyroot command-line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the polyroot command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "polyroot",
		Short: "Degree 11 polynomial root solver",
		Long: `polyroot finds all complex roots of a degree 11 polynomial via the
eigenvalues of its companion matrix, separates the real roots, and plots the
curve around them. It runs as a one-shot CLI or as an HTTP API.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newServeCommand(),
		newSolveCommand(),
		newDefaultsCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

func logLevel(cmd *cobra.Command) string {
	lvl, _ := cmd.Flags().GetString("log-level")
	return lvl
}
