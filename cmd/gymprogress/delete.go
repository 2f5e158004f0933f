// ABOUTME: CLI command for deleting measurement samples.
// ABOUTME: Deletes by the numeric ID shown in list and history output.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gymprogress/internal/storage"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a measurement",
	Long: `Delete a measurement by its ID.

The ID is shown in the first column of 'gymprogress list' and
'gymprogress history' output. Derived BMI rows have no ID: delete the
weight or height they came from instead.

EXAMPLES:

  gymprogress delete 12
  gymprogress rm #12

CAUTION:

  This permanently deletes the sample. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRepo(); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		// Fetch first to show what we're deleting
		r, err := repo.GetSample(id)
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("sample not found: %d", id)
		}
		if err != nil {
			return err
		}

		if err := repo.DeleteSample(id); err != nil {
			return fmt.Errorf("failed to delete sample: %w", err)
		}

		color.Yellow("✗ Deleted %s", r.MetricType.Label())
		fmt.Printf("  %s %s %.2f %s\n",
			color.New(color.Faint).Sprintf("#%d", r.ID),
			r.RecordedAt.Format("2006-01-02"),
			r.Value, r.MetricType.Unit())

		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
