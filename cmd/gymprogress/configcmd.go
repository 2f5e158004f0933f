// ABOUTME: CLI commands for viewing and editing the config file.
// ABOUTME: Supports show, path and set for every config key.
package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gymprogress/internal/config"
	"github.com/harperreed/gymprogress/internal/report"
	"github.com/spf13/cobra"
)

// configSetters apply one config key from its string form.
var configSetters = map[string]func(c *config.Config, v string) error{
	"backend": func(c *config.Config, v string) error {
		switch v {
		case config.BackendSQLite, config.BackendCharm, config.BackendREST, config.BackendFile:
			c.Backend = v
			return nil
		}
		return fmt.Errorf("unknown backend: %q (use sqlite, charm, rest, or file)", v)
	},
	"data_dir":    func(c *config.Config, v string) error { c.DataDir = v; return nil },
	"charm_host":  func(c *config.Config, v string) error { c.CharmHost = v; return nil },
	"backend_url": func(c *config.Config, v string) error { c.BackendURL = v; return nil },
	"api_token":   func(c *config.Config, v string) error { c.APIToken = v; return nil },
	"student_id":  func(c *config.Config, v string) error { c.StudentID = v; return nil },
	"sample_file": func(c *config.Config, v string) error { c.SampleFile = v; return nil },
	"view": func(c *config.Config, v string) error {
		if _, err := report.ParseAudience(v); err != nil {
			return err
		}
		c.View = v
		return nil
	},
	"log_level": func(c *config.Config, v string) error { c.LogLevel = v; return nil },
	"log_file":  func(c *config.Config, v string) error { c.LogFile = v; return nil },
	"log_json": func(c *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("log_json must be true or false")
		}
		c.LogJSON = b
		return nil
	},
}

func configKeys() []string {
	keys := make([]string, 0, len(configSetters))
	for k := range configSetters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func configPath() string {
	if cfgFile != "" {
		return config.ExpandPath(cfgFile)
	}
	return config.GetConfigPath()
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or edit the config file",
	Long: `View or edit ~/.config/gymprogress/config.json.

EXAMPLES:

  gymprogress config show
  gymprogress config set backend rest
  gymprogress config set backend_url https://api.example.com
  gymprogress config set view trainer`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current config",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig()
		if err != nil {
			return err
		}
		shown := *c
		if shown.APIToken != "" {
			shown.APIToken = "********"
		}
		data, err := json.MarshalIndent(shown, "", "  ")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.New(color.Faint).Sprint(configPath()))
		fmt.Fprintln(out, string(data))
		fmt.Fprintf(out, "backend: %s (writable: %t)\n", c.GetBackend(), c.IsWritable())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), configPath())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config key",
	Long: `Set a config key and save the file.

KEYS:

  ` + strings.Join(configKeys(), ", "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, ok := configSetters[args[0]]
		if !ok {
			return fmt.Errorf("unknown config key: %s", args[0])
		}

		c, err := loadConfig()
		if err != nil {
			return err
		}
		if err := set(c, args[1]); err != nil {
			return err
		}
		if err := c.SaveTo(configPath()); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		color.Green("✓ Set %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
