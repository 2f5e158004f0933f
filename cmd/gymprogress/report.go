// ABOUTME: CLI command for the progress report: summary, chart and history per metric.
// ABOUTME: Draws terminal charts in the chart kind chosen for each metric.
package main

import (
	"fmt"

	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/render"
	"github.com/harperreed/gymprogress/internal/series"
	"github.com/spf13/cobra"
)

var (
	reportType    string
	reportKind    string
	reportHistory bool
	reportWidth   int
	reportHeight  int
)

var reportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"r"},
	Short:   "Show progress charts for every metric",
	Long: `Show a progress report: one block per metric with a summary line,
a chart, and optionally the history table.

BMI is derived from weight and height. When they were not measured on the
same day, each height is paired with the closest weight.

CHART KINDS:

  line, bar, area, pie, radar, composed

EXAMPLES:

  gymprogress report                        # All metrics as line charts
  gymprogress report --type bmi             # Only BMI
  gymprogress report -t weight -k bar       # Weight as a bar chart
  gymprogress report --history              # Include the audit tables`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind series.ChartKind
		if reportKind != "" {
			k, err := series.ParseChartKind(reportKind)
			if err != nil {
				return err
			}
			kind = k
		}

		if err := loadView(); err != nil {
			return err
		}

		types := selectTypes(reportType)
		out := cmd.OutOrStdout()
		if len(types) == 0 {
			fmt.Fprintln(out, render.NoData)
			return nil
		}

		chartCfg := render.DefaultChartConfig()
		if reportWidth > 0 {
			chartCfg.Width = reportWidth
		}
		if reportHeight > 0 {
			chartCfg.Height = reportHeight
		}

		for i, mt := range types {
			if kind != "" {
				view.SetChartKind(mt, kind)
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, render.SummaryLine(view.Summary(mt)))
			fmt.Fprintln(out, render.Chart(view.CurrentRepresentation(mt), mt.Unit(), chartCfg))

			if reportHistory || view.PresentationState(mt).HistoryExpanded {
				fmt.Fprintln(out)
				fmt.Fprintln(out, render.HistoryTable(view.History(mt), mt.Unit()))
			}
		}
		return nil
	},
}

// selectTypes returns the loaded metric types, or just the one named by
// filter when set.
func selectTypes(filter string) []models.MetricType {
	if filter == "" {
		return view.MetricTypes()
	}
	return []models.MetricType{models.ParseMetricType(filter)}
}

func init() {
	reportCmd.Flags().StringVarP(&reportType, "type", "t", "", "only this metric type")
	reportCmd.Flags().StringVarP(&reportKind, "kind", "k", "", "chart kind for every metric")
	reportCmd.Flags().BoolVar(&reportHistory, "history", false, "include history tables")
	reportCmd.Flags().IntVar(&reportWidth, "width", 0, "chart width in columns")
	reportCmd.Flags().IntVar(&reportHeight, "height", 0, "chart height in rows")
	rootCmd.AddCommand(reportCmd)
}
