/*
PURPOSE:
  Defines the 'configs' subcommand group.
  Helps inspect and bootstrap projection configurations.

REQUIREMENTS:
  User-specified:
  - List available configuration files with their hardware pairing.
  - Write a fully-populated starter configuration.

  Implementation-discovered:
  - Useful validation step before a full projection run.

ARCHITECTURE INTEGRATION:
  - Uses: internal/config

ERROR HANDLING:
  - Prints per-file errors; a broken config should not hide the rest.

IMPLEMENTATION RULES:
  - Simple output to stdout.

USAGE:
  perfcast configs list --dir ./configs
  perfcast configs init perfcast.yaml

RELATED FILES:
  - internal/config/config.go
*/

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apattnay/perfcast/internal/config"
	"github.com/spf13/cobra"
)

var configsDir string

var configsCmd = &cobra.Command{
	Use:   "configs",
	Short: "Inspect and bootstrap projection configurations",
}

var configsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configuration files and their hardware pairing",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := os.ReadDir(configsDir)
		if err != nil {
			return fmt.Errorf("failed to read config directory %s: %w", configsDir, err)
		}

		found := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(filepath.Ext(name))
			if ext != ".yaml" && ext != ".yml" && ext != ".conf" {
				continue
			}
			found++

			cfg, err := config.Load(filepath.Join(configsDir, name))
			if err != nil {
				fmt.Fprintf(os.Stderr, "- %s: %v\n", name, err)
				continue
			}
			fmt.Printf("- %s: %s -> %s (%d frequencies, approaches: %s)\n",
				name,
				cfg.Hardware.Current.Name,
				cfg.Hardware.Future.Name,
				len(cfg.Data.FrequenciesMHz),
				strings.Join(cfg.Calculation.EnabledApproaches, ","),
			)
		}
		if found == 0 {
			fmt.Printf("No configuration files in %s\n", configsDir)
		}
		return nil
	},
}

var configsInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a fully-populated starter configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "perfcast.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; refusing to overwrite", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configsCmd)
	configsCmd.AddCommand(configsListCmd)
	configsCmd.AddCommand(configsInitCmd)

	configsListCmd.Flags().StringVar(&configsDir, "dir", ".", "Directory to scan for configuration files")
}
