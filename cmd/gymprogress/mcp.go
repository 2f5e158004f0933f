// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/gymprogress/internal/mcp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout and serves the same view as
'gymprogress report': the --view and --student flags apply.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "gymprogress": {
        "command": "gymprogress",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  get_metric_types        Metric types with samples (bmi included when derivable)
  get_representation      Chart points of a metric in a chart kind
  get_history             Audit rows of a metric, newest first
  get_presentation_state  Chart kind and history flag per metric
  cycle_chart_kind        Switch a metric to its next chart kind
  toggle_history          Show or hide a metric's history
  classify_bmi            Classify a BMI value
  refresh                 Re-fetch and re-reconcile samples
  add_sample              Record a measurement (writable backends)
  delete_sample           Delete a measurement (writable backends)

AVAILABLE RESOURCES:

  progress://summary      Per-metric first, latest and change
  progress://bmi          Derived BMI series with classifications
  progress://report       Markdown report`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// A failed first load still starts the server; refresh can retry.
		if err := view.Load(ctx, src); err != nil {
			log.Warnf("mcp: initial load failed: %v", err)
		}

		server, err := mcp.NewServer(view, src, repo)
		if err != nil {
			return err
		}

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
