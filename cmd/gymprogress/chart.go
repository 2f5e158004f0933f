// ABOUTME: CLI command for writing interactive HTML charts.
// ABOUTME: Renders one go-echarts chart per metric to a file or stdout.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/gymprogress/internal/render"
	"github.com/harperreed/gymprogress/internal/series"
	"github.com/spf13/cobra"
)

var (
	chartOutput string
	chartType   string
	chartKind   string
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Write interactive HTML charts",
	Long: `Write an HTML page with one interactive chart per metric.

EXAMPLES:

  gymprogress chart -o progress.html        # All metrics
  gymprogress chart -t bmi -k radar -o bmi.html
  gymprogress chart > progress.html`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind series.ChartKind
		if chartKind != "" {
			k, err := series.ParseChartKind(chartKind)
			if err != nil {
				return err
			}
			kind = k
		}

		if err := loadView(); err != nil {
			return err
		}

		types := selectTypes(chartType)
		if kind != "" {
			for _, mt := range types {
				view.SetChartKind(mt, kind)
			}
		}

		var w io.Writer = cmd.OutOrStdout()
		if chartOutput != "" {
			f, err := os.Create(chartOutput) //nolint:gosec // user-chosen output path
			if err != nil {
				return fmt.Errorf("failed to create file: %w", err)
			}
			defer f.Close()
			w = f
		}

		if err := render.HTML(w, view, types); err != nil {
			return err
		}

		if chartOutput != "" {
			color.Green("✓ Charts written to %s", chartOutput)
		}
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVarP(&chartOutput, "output", "o", "", "output file (default: stdout)")
	chartCmd.Flags().StringVarP(&chartType, "type", "t", "", "only this metric type")
	chartCmd.Flags().StringVarP(&chartKind, "kind", "k", "", "chart kind for every metric")
	rootCmd.AddCommand(chartCmd)
}
