package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
)

var (
	lookupAmount float64
	lookupUnit   string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <item name...>",
	Short: "Resolve one item name and print the result as JSON",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer a.close()

		name := strings.Join(args, " ")
		result := a.nutrition.LookupScaled(cmd.Context(), name, lookupAmount, lookupUnit)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	lookupCmd.Flags().Float64Var(&lookupAmount, "amount", 0, "scale nutrition to this amount (0 keeps the provider serving)")
	lookupCmd.Flags().StringVar(&lookupUnit, "unit", "g", "unit for --amount, e.g. g, oz, cup")
	rootCmd.AddCommand(lookupCmd)
}
