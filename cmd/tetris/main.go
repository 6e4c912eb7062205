// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris list              - List available modes
//	tetris play [mode]       - Play a mode (default: tetris)
//	tetris menu              - Pick a mode and difficulty interactively
//	tetris serve             - Start SSH server for remote play
//	tetris scores [mode]     - Show high scores and recent runs
//	tetris config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.tetris/scores.db)
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Where interactive commands write their log
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - falling blocks in your terminal",
	Long: `Tetris is a terminal falling-block puzzle game with a hold slot,
next-piece preview, ghost piece and level-based gravity.

Available commands:
  list     - Show all available modes
  play     - Play a mode directly
  menu     - Interactive mode and difficulty picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent runs
  config   - Print the effective configuration

Examples:
  tetris play
  tetris play tetris_zen
  tetris menu
  tetris serve --ssh :2222
  tetris scores --recent 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		_, err := log.ParseLevel(flagLogLevel)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file for play and menu (default: no log)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger at the --log-level writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// stderrLogger is used by commands that do not take over the terminal.
func stderrLogger() *log.Logger {
	return newLogger(os.Stderr, "tetris")
}

// hostLogger is used while Bubble Tea owns the terminal, where stderr
// output would tear the screen. It writes to --log-file or nowhere.
// The returned close function is always safe to call.
func hostLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard, "tetris"), func() {}
	}
	path := expandHome(flagLogFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		stderrLogger().Warn("cannot create log directory", "error", err)
		return newLogger(io.Discard, "tetris"), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		stderrLogger().Warn("cannot open log file", "error", err)
		return newLogger(io.Discard, "tetris"), func() {}
	}
	return newLogger(f, "tetris"), func() { f.Close() }
}

// openStore opens the scores database, or returns nil with a warning.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "error", err)
		return nil
	}
	return store
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// playerName is the name recorded with local runs.
func playerName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
