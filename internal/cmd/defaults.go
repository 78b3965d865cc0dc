package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	chiTransport "github.com/achernar1030/polyroot/internal/transport/chi"
)

func newDefaultsCommand() *cobra.Command {
	var asJSON bool
	c := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default coefficient form",
		Long:  `Print the default coefficients, highest power first: 1 for x^11 and 0 elsewhere.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			terms := polynomial.Defaults().Terms()
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(chiTransport.NewDefaultsResponse(terms))
			}
			for _, t := range terms {
				if _, err := fmt.Fprintf(out, "%-9s %g\n", t.Label+":", t.Value); err != nil {
					return err
				}
			}
			return nil
		},
	}
	c.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return c
}
