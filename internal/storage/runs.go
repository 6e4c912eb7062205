package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run summarizes one finished game. It is a record of the outcome, not a
// resumable save.
type Run struct {
	ID        int64
	RunID     string // UUID assigned on save when empty
	GameID    string
	Player    string // SSH user or local user name; may be empty
	Score     int
	Lines     int
	Level     int
	Pieces    int
	Duration  time.Duration // Stored with one-second resolution
	CreatedAt time.Time
}

// SaveRun inserts a run summary and returns its run ID.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.RunID == "" {
		run.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(run.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", run.RunID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, player, score, lines, level, pieces, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.GameID,
		run.Player,
		run.Score,
		run.Lines,
		max(run.Level, 1),
		run.Pieces,
		int64(run.Duration/time.Second),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.RunID, nil
}

const runColumns = `id, run_id, game_id, player, score, lines, level, pieces, duration_secs, created_at`

// RunByID returns the run with the given run ID, or nil if none exists.
func (s *Store) RunByID(runID string) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// RecentRuns returns the latest runs of gameID, newest first.
// A non-positive limit means 20.
func (s *Store) RecentRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
}

// TopRuns returns the best runs of gameID, highest score first.
// A non-positive limit means 10.
func (s *Store) TopRuns(gameID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// PlayerRuns returns the best runs of player, highest score first.
// A non-positive limit means 20.
func (s *Store) PlayerRuns(player string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (Run, error) {
	var run Run
	var secs int64
	var createdAt any
	err := r.Scan(
		&run.ID,
		&run.RunID,
		&run.GameID,
		&run.Player,
		&run.Score,
		&run.Lines,
		&run.Level,
		&run.Pieces,
		&secs,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}
	run.Duration = time.Duration(secs) * time.Second
	run.CreatedAt = parseTimestamp(createdAt)
	return run, nil
}
