package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration a new game would use, as YAML, after applying
--difficulty. The source (custom, user, local, embedded or builtin) is
reported on stderr.

Config files are searched in this order:
  --config <path>
  ~/.tetris/configs/tetris.yaml
  ./configs/tetris.yaml
  built-in defaults

Examples:
  tetris config
  tetris config --difficulty easy
  tetris config --defaults > ~/.tetris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	configCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	cfg, source, err := config.LoadTetrisWithSource(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if flagDifficulty != "" {
		config.ApplyTetrisPreset(&cfg, preset)
	}
	stderrLogger().Info("config loaded", "source", source)

	out, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
