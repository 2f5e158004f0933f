// ABOUTME: Root Cobra command for gymprogress CLI.
// ABOUTME: Loads config, logging and the sample source via PersistentPre/PostRunE.
package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/harperreed/gymprogress/internal/config"
	"github.com/harperreed/gymprogress/internal/logging"
	"github.com/harperreed/gymprogress/internal/report"
	"github.com/harperreed/gymprogress/internal/source"
	"github.com/harperreed/gymprogress/internal/storage"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const fetchTimeout = 30 * time.Second

var (
	cfgFile     string
	flagStudent string
	flagView    string

	cfg  *config.Config
	src  source.Source
	repo storage.Repository
	view *report.View

	logCloser io.Closer
)

// standalone commands, and their subcommands, run without a sample source.
var standalone = map[string]bool{
	"help":       true,
	"version":    true,
	"classify":   true,
	"completion": true,
	"config":     true,
	"sync":       true,
	"migrate":    true,
}

var rootCmd = &cobra.Command{
	Use:   "gymprogress",
	Short: "Body measurement progress tracker",
	Long: `Gymprogress tracks body measurements and shows how they evolve.

WHAT IT TRACKS:

  Measurements   weight, height, arm, leg, waist, body_fat
  Derived        bmi (from weight and height, even when measured on different days)

QUICK START:

  $ gymprogress add weight 82,5             # Log your weight
  $ gymprogress add height 180 --at 2024-01-01
  $ gymprogress report                      # Charts and summaries per metric
  $ gymprogress report --type bmi --kind bar
  $ gymprogress history weight              # Audit table, newest first
  $ gymprogress classify 27,3               # Classify a BMI value

VIEWS:

  The student view shows your own measurements. Trainers pick a student:

  $ gymprogress report --view trainer --student 42

BACKENDS:

  sqlite (default)  local database at ~/.local/share/gymprogress/gymprogress.db
  charm             Charm KV with E2E encrypted cloud sync
  rest              measurements API (read-only)
  file              JSON or YAML document (read-only)

  Set "backend" in ~/.config/gymprogress/config.json.

INTERACTIVE:

  $ gymprogress tui                         # Switch metrics and chart kinds live
  $ gymprogress chart -o progress.html      # Interactive HTML charts

MCP INTEGRATION:

  Run 'gymprogress mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "gymprogress": { "command": "gymprogress", "args": ["mcp"] }
    }
  }`,
	SilenceUsage: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

func skipsSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil && c != rootCmd; c = c.Parent() {
		if standalone[c.Name()] {
			return true
		}
	}
	return false
}

// loadConfig reads --config or the default config file.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFrom(config.ExpandPath(cfgFile))
	}
	return config.Load()
}

func setup() error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser = logging.Setup(logging.SetupParams{
		LogFileName:   config.ExpandPath(cfg.LogFile),
		LogLevel:      cfg.LogLevel,
		LogFormatJSON: cfg.LogJSON,
	})

	audienceName := cfg.View
	if flagView != "" {
		audienceName = flagView
	}
	audience, err := report.ParseAudience(audienceName)
	if err != nil {
		return err
	}

	studentID := cfg.StudentID
	if flagStudent != "" {
		studentID = flagStudent
	}
	if audience == report.AudienceTrainer && studentID == "" {
		return fmt.Errorf("trainer view needs a student (use --student or student_id in config)")
	}

	src, repo, err = cfg.OpenSource()
	if err != nil {
		return fmt.Errorf("failed to open %s backend: %w", cfg.GetBackend(), err)
	}
	view = report.NewView(audience, studentID)

	log.WithFields(log.Fields{
		"backend":  cfg.GetBackend(),
		"audience": audience,
	}).Debug("cli ready")
	return nil
}

// teardown releases the sample source and the log file. It is safe to call
// more than once.
func teardown() error {
	var err error
	if repo != nil {
		err = repo.Close()
		repo = nil
		src = nil
	}
	if logCloser != nil {
		if cerr := logCloser.Close(); err == nil {
			err = cerr
		}
		logCloser = nil
	}
	return err
}

// loadView fetches the current samples into view.
func loadView() error {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	if err := view.Load(ctx, src); err != nil {
		return fmt.Errorf("failed to load measurements: %w", err)
	}
	return nil
}

// requireRepo fails for read-only backends.
func requireRepo() error {
	if repo == nil {
		return fmt.Errorf("backend %q is read-only", cfg.GetBackend())
	}
	return nil
}

func init() {
	// Assigned here rather than in the literal to break the rootCmd <-> skipsSetup initialization cycle.
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if skipsSetup(cmd) {
			return nil
		}
		return setup()
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/gymprogress/config.json)")
	rootCmd.PersistentFlags().StringVar(&flagStudent, "student", "", "student ID (trainer view)")
	rootCmd.PersistentFlags().StringVar(&flagView, "view", "", "audience: student or trainer")
}
