// ABOUTME: CLI command for listing stored measurement samples.
// ABOUTME: Supports filtering by type and limiting results.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gymprogress/internal/models"
	"github.com/spf13/cobra"
)

var (
	listType  string
	listLimit int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List stored measurements",
	Long: `List recently stored measurements, newest first.

OUTPUT FORMAT:

  Each line shows: ID  DATE  TYPE  VALUE  UNIT  (NOTES)

  Use the ID with 'gymprogress delete'. Derived BMI values are not stored
  and do not appear here; see 'gymprogress history bmi'.

EXAMPLES:

  gymprogress list                    # Show last 20 samples (all types)
  gymprogress list --type weight      # Show only weight entries
  gymprogress list -t waist -n 50     # Show last 50 waist entries`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRepo(); err != nil {
			return err
		}

		var metricType *models.MetricType
		if listType != "" {
			mt := models.ParseMetricType(listType)
			metricType = &mt
		}

		records, err := repo.ListSamples(metricType, listLimit)
		if err != nil {
			return fmt.Errorf("failed to list samples: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No measurements found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, r := range records {
			notes := ""
			if text := r.NoteText(); text != "" {
				notes = faint.Sprintf(" (%s)", truncate(text, 30))
			}
			fmt.Fprintf(out, "%s %s %s %.2f %s%s\n",
				faint.Sprint(padRight(fmt.Sprintf("#%d", r.ID), 6)),
				faint.Sprint(r.RecordedAt.Format("2006-01-02 15:04")),
				padRight(string(r.MetricType), 12),
				r.Value,
				r.MetricType.Unit(),
				notes)
		}

		return nil
	},
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func init() {
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by metric type")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
