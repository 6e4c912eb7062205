package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagRecent int
	flagPlayer string
	flagRunID  string
	flagTUI    bool
	flagClear  bool
	flagAll    bool
	flagSumm   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent runs",
	Long: `Display the top 10 high scores for a mode (tetris when omitted),
its statistics and, optionally, the most recent runs.

Examples:
  tetris scores
  tetris scores tetris_zen
  tetris scores --recent 5
  tetris scores --all
  tetris scores --summary
  tetris scores --player alice
  tetris scores --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  tetris scores --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 0, "Also list this many recent runs")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "List the best runs of one player")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by id")
	scoresCmd.Flags().BoolVar(&flagTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs of the mode")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "List every recorded score of the mode")
	scoresCmd.Flags().BoolVar(&flagSumm, "summary", false, "Show statistics for every mode")
	scoresCmd.MarkFlagsMutuallyExclusive("tui", "clear", "all", "summary", "run", "player")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := "tetris"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'tetris list' to see available modes", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	switch {
	case flagTUI:
		w, h := 80, 24
		if tw, th, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			w, h = tw, th
		}
		return tui.RunScoreboard(store, w, h)
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		stderrLogger().Info("scores cleared", "game", gameID)
		return nil
	case flagAll:
		return printAllScores(os.Stdout, store, gameID)
	case flagSumm:
		return printSummary(os.Stdout, store)
	case flagRunID != "":
		return printRun(store, flagRunID)
	case flagPlayer != "":
		runs, err := store.PlayerRuns(flagPlayer, 10)
		if err != nil {
			return err
		}
		fmt.Printf("Best runs - %s\n\n", flagPlayer)
		printRuns(runs)
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}
	if err := printScores(store, gameID, game.Title()); err != nil {
		return err
	}

	if flagRecent > 0 {
		runs, err := store.RecentRuns(gameID, flagRecent)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println("Recent runs")
		fmt.Println()
		printRuns(runs)
	}
	return nil
}

func printScores(store *storage.Store, gameID, title string) error {
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'tetris play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Games: %d  Average: %.0f", stats.HighScore, stats.GamesCount, stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played: %s", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	return nil
}

// printAllScores writes every score of gameID, best first.
func printAllScores(w io.Writer, store *storage.Store, gameID string) error {
	scores, err := store.AllScores(gameID)
	if err != nil {
		return err
	}
	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "All scores - %s (%d)\n\n", gameID, len(scores))
	for i, entry := range scores {
		fmt.Fprintf(w, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// printSummary writes one line of statistics per registered mode. Modes
// never played are listed with zero games.
func printSummary(w io.Writer, store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "  %-16s  %-6s  %-8s  %-8s  %s\n", "Mode", "Games", "Best", "Average", "Last played")
	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok {
			fmt.Fprintf(w, "  %-16s  %-6d  %-8s  %-8s  %s\n", info.Title, 0, "-", "-", "-")
			continue
		}
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-16s  %-6d  %-8d  %-8.0f  %s\n", info.Title, st.GamesCount, st.HighScore, st.AvgScore, last)
	}
	return nil
}

func printRuns(runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-10s  %-8s  %-5s  %-3s  %-6s  %-8s  %s\n", "Player", "Score", "Lines", "Lvl", "Pieces", "Time", "Run")
	for _, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-10s  %-8d  %-5d  %-3d  %-6d  %-8s  %s\n",
			player, r.Score, r.Lines, r.Level, r.Pieces, r.Duration.Round(time.Second), r.RunID)
	}
}

func printRun(store *storage.Store, runID string) error {
	run, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no run with id %q", runID)
	}

	fmt.Printf("Run     %s\n", run.RunID)
	fmt.Printf("Mode    %s\n", run.GameID)
	fmt.Printf("Player  %s\n", run.Player)
	fmt.Printf("Score   %d\n", run.Score)
	fmt.Printf("Lines   %d\n", run.Lines)
	fmt.Printf("Level   %d\n", run.Level)
	fmt.Printf("Pieces  %d\n", run.Pieces)
	fmt.Printf("Time    %s\n", run.Duration)
	fmt.Printf("Played  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
