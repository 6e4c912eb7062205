package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"not-an-address": "not-an-address",
	}
	for in, want := range tests {
		if got := portOf(in); got != want {
			t.Errorf("portOf(%q) = %q, expected %q", in, got, want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := expandHome("~/.tetris/tetris.log"); got != filepath.Join(home, ".tetris", "tetris.log") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/tmp/x.log"); got != "/tmp/x.log" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"list", "play", "menu", "serve", "scores", "config"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestPrintAllScoresAndSummary(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for _, s := range []int{120, 480, 300} {
		if _, err := store.SaveScore("tetris", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	var all bytes.Buffer
	if err := printAllScores(&all, store, "tetris"); err != nil {
		t.Fatalf("printAllScores() failed: %v", err)
	}
	out := all.String()
	if !strings.Contains(out, "(3)") {
		t.Errorf("expected three scores, got:\n%s", out)
	}
	if i, j := strings.Index(out, "480"), strings.Index(out, "120"); i < 0 || j < 0 || i > j {
		t.Errorf("scores should be listed best first:\n%s", out)
	}

	var sum bytes.Buffer
	if err := printSummary(&sum, store); err != nil {
		t.Fatalf("printSummary() failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sum.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header and one line per mode, got:\n%s", sum.String())
	}
	if !strings.Contains(lines[1], "Tetris") || !strings.Contains(lines[1], "480") {
		t.Errorf("marathon line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "Tetris (Zen)") || !strings.Contains(lines[2], " 0 ") {
		t.Errorf("zen line = %q", lines[2])
	}
}
