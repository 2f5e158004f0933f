// ABOUTME: CLI command for copying samples between storage backends.
// ABOUTME: Moves data between the local SQLite database and Charm KV.
package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/harperreed/gymprogress/internal/config"
	"github.com/harperreed/gymprogress/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy samples between sqlite and charm",
	Long: `Copy every stored sample from one backend to another.

Only the writable backends take part: sqlite and charm. Sample IDs are
kept, so the destination must be empty unless --force is given.

USAGE:

  gymprogress migrate --from charm --to sqlite --dry-run   # Preview
  gymprogress migrate --from charm --to sqlite             # Copy
  gymprogress migrate --from sqlite --to charm             # Start syncing

AFTER MIGRATION:

  Set "backend" in ~/.config/gymprogress/config.json to the destination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %q", migrateFrom)
		}
		for _, b := range []string{migrateFrom, migrateTo} {
			if b != config.BackendSQLite && b != config.BackendCharm {
				return fmt.Errorf("cannot migrate with backend %q (use sqlite or charm)", b)
			}
		}

		base, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if migrateFrom == config.BackendSQLite {
			ok, err := storage.IsDirNonEmpty(base.GetDataDir())
			if err != nil {
				return err
			}
			if !ok {
				color.Yellow("No local data at %s", base.GetDataDir())
				return nil
			}
		}

		from, err := openBackend(base, migrateFrom)
		if err != nil {
			return err
		}
		defer from.Close()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			records, err := from.ListSamples(nil, 0)
			if err != nil {
				return fmt.Errorf("failed to list samples: %w", err)
			}
			byType := make(map[string]int)
			for _, r := range records {
				byType[string(r.MetricType)]++
			}
			fmt.Printf("Would copy %d samples from %s to %s\n", len(records), migrateFrom, migrateTo)
			printByType(byType)
			return nil
		}

		to, err := openBackend(base, migrateTo)
		if err != nil {
			return err
		}
		defer to.Close()

		existing, err := to.ListSamples(nil, 1)
		if err != nil {
			return fmt.Errorf("failed to inspect destination: %w", err)
		}
		if len(existing) > 0 && !migrateForce {
			return fmt.Errorf("destination %s already has samples (use --force to copy anyway)", migrateTo)
		}

		summary, err := storage.MigrateSamples(from, to)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Copied %d samples from %s to %s", summary.Samples, migrateFrom, migrateTo)
		printByType(summary.ByType)
		return nil
	},
}

// openBackend opens a writable backend using base for everything but the
// backend name.
func openBackend(base *config.Config, backend string) (storage.Repository, error) {
	c := *base
	c.Backend = backend
	r, err := c.OpenStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", backend, err)
	}
	return r, nil
}

func printByType(byType map[string]int) {
	names := make([]string, 0, len(byType))
	for name := range byType {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s %d\n", padRight(name, 12), byType[name])
	}
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendCharm, "source backend (sqlite or charm)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendSQLite, "destination backend (sqlite or charm)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "copy into a destination that already has samples")
	rootCmd.AddCommand(migrateCmd)
}
