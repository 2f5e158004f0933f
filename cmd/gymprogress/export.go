// ABOUTME: CLI commands for exporting and importing measurement data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gymprogress/internal/render"
	"github.com/harperreed/gymprogress/internal/source"
	"github.com/harperreed/gymprogress/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportType   string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export measurement data",
	Long: `Export measurement data in various formats.

FORMATS:

  json       Full JSON backup (restore with 'gymprogress import')
  yaml       Samples grouped by type, in the backend's field names
  markdown   Summary and history tables per metric, BMI included

  Read-only backends export json in the backend's own document shape.

OPTIONS:

  --output, -o   Write to file instead of stdout
  --type, -t     Only this metric type (markdown only)
  --since        Only include rows since this date (markdown only, YYYY-MM-DD)

EXAMPLES:

  gymprogress export json -o backup.json    # Save a backup
  gymprogress export yaml                   # Human-readable dump
  gymprogress export markdown --type bmi    # BMI report
  gymprogress export markdown --since 2024-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			if repo != nil {
				data, err = storage.ExportJSON(repo)
			} else {
				data, err = exportWire()
			}
		case "yaml":
			if err := requireRepo(); err != nil {
				return err
			}
			data, err = storage.ExportYAML(repo)
		case "markdown":
			var since *time.Time
			if exportSince != "" {
				t, err := time.ParseInLocation("2006-01-02", exportSince, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			if err := loadView(); err != nil {
				return err
			}
			data = []byte(render.Markdown(view, selectTypes(exportType), since, time.Now()))
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
		}

		return nil
	},
}

// exportWire dumps the raw samples of a read-only source as a backend document.
func exportWire() ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	store, err := src.Fetch(ctx, view.StudentID)
	if err != nil {
		return nil, err
	}
	return source.EncodeStore(store)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import measurements from JSON or YAML",
	Long: `Import measurements from a file.

Accepted files:

  - a JSON backup written by 'gymprogress export json'
  - a backend document: {"peso": [{"id": 1, "valor": "80,5", "data": "2024-01-10"}], ...}
  - the same document as YAML (.yaml or .yml), e.g. from 'gymprogress export yaml'

Imported samples get new IDs. BMI entries are ignored; BMI is always derived.

EXAMPLES:

  gymprogress import backup.json
  gymprogress import medidas.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRepo(); err != nil {
			return err
		}

		filename := args[0]
		n, err := storage.ImportFile(repo, filename)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported %d samples from %s", n, filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportType, "type", "t", "", "only this metric type (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include data since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
