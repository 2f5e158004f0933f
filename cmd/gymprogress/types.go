// ABOUTME: CLI command for listing the metric types that have samples.
// ABOUTME: Shows label, unit and sample count for each type.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List metric types with samples",
	Long: `List the metric types that currently have samples, including the
derived bmi series when weight and height allow it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadView(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		types := view.MetricTypes()
		if len(types) == 0 {
			fmt.Fprintln(out, "No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, mt := range types {
			fmt.Fprintf(out, "%s %s %s\n",
				padRight(string(mt), 12),
				padRight(mt.Label(), 18),
				faint.Sprintf("%d medidas %s", len(view.Samples(mt)), mt.Unit()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
