// ABOUTME: CLI command for the audit table of one metric.
// ABOUTME: Rows are newest first; derived BMI rows show their inputs as notes.
package main

import (
	"fmt"

	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/render"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:     "history <type>",
	Aliases: []string{"h"},
	Short:   "Show the history table of a metric",
	Long: `Show every sample of a metric, newest first.

Derived BMI rows have no ID and list the weight and height they came from.

EXAMPLES:

  gymprogress history weight
  gymprogress history bmi
  gymprogress history peso        # Backend names are accepted too`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadView(); err != nil {
			return err
		}

		mt := models.ParseMetricType(args[0])
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, render.SummaryLine(view.Summary(mt)))
		fmt.Fprintln(out, render.HistoryTable(view.History(mt), mt.Unit()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
