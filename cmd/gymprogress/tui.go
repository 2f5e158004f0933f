// ABOUTME: CLI command for the interactive terminal report.
// ABOUTME: Starts the bubbletea model over the configured source.
package main

import (
	"github.com/harperreed/gymprogress/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse progress interactively",
	Long: `Browse the progress report in a full-screen terminal UI.

KEYS:

  tab / →        next metric
  shift+tab / ←  previous metric
  c              next chart kind
  h              show or hide history
  r              refresh from the backend
  q              quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(view, src)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
