package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode (tetris when omitted).

Controls:
  Left/Right, A/D  - Move
  Up, W, X         - Rotate
  Down, S          - Soft drop
  Space            - Hard drop
  C                - Hold
  P                - Pause
  R                - New game (when paused or over)
  ?                - Toggle full help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at level 1 with slower gravity and longer levels
  normal - Start at level 1, level follows the score
  hard   - Start at level 5, level follows the score
  fixed  - No progression, stays at the config's initial level

Examples:
  tetris play
  tetris play tetris_zen
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	}
}

// applyGameFlags validates --config and --difficulty and hands them to the
// tetris package before any game is created.
func applyGameFlags() error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	logger := stderrLogger()
	_, source, err := config.LoadTetrisWithSource(flagConfig)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logger.Debug("config loaded", "source", source, "path", flagConfig)

	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
	return nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "tetris"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'tetris list' to see available modes", gameID)
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	store := openStore(stderrLogger())
	if store != nil {
		defer store.Close()
	}

	logger, closeLog := hostLogger()
	defer closeLog()

	if err := tui.Run(game, store, runtimeConfig(), playerName(), logger); err != nil {
		return fmt.Errorf("cannot run game: %w", err)
	}
	return nil
}
