package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveScore("tetris", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("tetris", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("tetris", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("other", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for tetris
	scores, err := store.TopScores("tetris", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for other
	otherScores, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(otherScores) != 1 {
		t.Errorf("Expected 1 other score, got %d", len(otherScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("tetris", 100)
	store.SaveScore("tetris", 300)
	store.SaveScore("tetris", 200)

	high, err = store.HighScore("tetris")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("tetris", 100)
	store.SaveScore("tetris", 200)
	store.SaveScore("other", 300)

	// Clear only tetris scores
	err = store.ClearScores("tetris")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// tetris should be empty
	tetrisScores, _ := store.TopScores("tetris", 10)
	if len(tetrisScores) != 0 {
		t.Errorf("Expected 0 tetris scores after clear, got %d", len(tetrisScores))
	}

	// other should still have scores
	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("other scores should not be affected by clearing tetris")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreGameStats(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	empty, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() on empty db failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	for _, sc := range []int{100, 300, 200} {
		if _, err := store.SaveScore("tetris", sc); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("other", 50)

	stats, err := store.GetGameStats("tetris")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 300 || stats.TotalScore != 600 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %v", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected stats for 2 games, got %d", len(all))
	}
	if all["other"] == nil || all["other"].HighScore != 50 {
		t.Errorf("Unexpected stats for other: %+v", all["other"])
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 3, 9, 18, 30, 5, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want time.Time
	}{
		{"time value", want, want},
		{"sqlite layout", "2024-03-09 18:30:05", want},
		{"rfc3339", "2024-03-09T18:30:05Z", want},
		{"garbage", "yesterday", time.Time{}},
		{"nil", nil, time.Time{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := parseTimestamp(tc.in); !got.Equal(tc.want) {
				t.Errorf("parseTimestamp(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}
