package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to pick a mode, left/right to change difficulty,
Enter to play and Tab for the scoreboard. Pause or finish a game and
press Esc to return to the menu.

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	store := openStore(stderrLogger())
	if store != nil {
		defer store.Close()
	}

	logger, closeLog := hostLogger()
	defer closeLog()

	if err := tui.RunSession(store, runtimeConfig(), playerName(), logger); err != nil {
		return fmt.Errorf("cannot run menu: %w", err)
	}
	return nil
}
