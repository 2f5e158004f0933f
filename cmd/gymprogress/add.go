// ABOUTME: CLI command for adding a body measurement sample.
// ABOUTME: Accepts comma decimals and optional date and notes.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/harperreed/gymprogress/internal/source"
	"github.com/harperreed/gymprogress/internal/storage"
	"github.com/spf13/cobra"
)

var (
	addAt    string
	addNotes string
)

var addCmd = &cobra.Command{
	Use:     "add <type> <value>",
	Aliases: []string{"a"},
	Short:   "Add a measurement",
	Long: `Add a body measurement. BMI is derived and cannot be added directly.

TYPES:

  weight (kg), height (cm), arm (cm), leg (cm), waist (cm), body_fat (%)

  Backend names such as peso or altura are accepted too. Other names are
  stored as-is.

EXAMPLES:

  gymprogress add weight 82,5
  gymprogress add height 180 --at 2024-01-15
  gymprogress add waist 88 --at "2024-01-15 07:30" --notes "em jejum"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRepo(); err != nil {
			return err
		}

		metricType := models.ParseMetricType(args[0])
		if metricType == "" {
			return fmt.Errorf("metric type is required")
		}
		if metricType == models.MetricBMI {
			return fmt.Errorf("bmi is derived from weight and height; add those instead")
		}

		value, ok := models.ParseDecimal(args[1])
		if !ok {
			return fmt.Errorf("invalid value: %s", args[1])
		}

		recordedAt := time.Now()
		if addAt != "" {
			t, err := source.ParseDate(addAt, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date: %s", addAt)
			}
			recordedAt = t
		}

		r := storage.NewRecord(metricType, value, recordedAt)
		if addNotes != "" {
			r.Sample = r.WithNote(addNotes)
		}

		if err := repo.CreateSample(r); err != nil {
			return fmt.Errorf("failed to add sample: %w", err)
		}

		color.Green("✓ Added %s", metricType.Label())
		fmt.Printf("  %s %s %.2f %s\n",
			color.New(color.Faint).Sprintf("#%d", r.ID),
			r.RecordedAt.Format("2006-01-02"),
			r.Value, metricType.Unit())

		return nil
	},
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "date (YYYY-MM-DD, YYYY-MM-DD HH:MM:SS or DD/MM/YYYY)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes for the sample")
	rootCmd.AddCommand(addCmd)
}
