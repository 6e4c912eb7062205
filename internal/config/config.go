// Package config loads the YAML game configuration and applies difficulty
// presets on top of it.
package config

import (
	"errors"
	"fmt"
)

// TetrisConfig holds every tunable of a session.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Levels     LevelsConfig     `yaml:"levels"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playfield geometry.
type BoardConfig struct {
	Rows       int `yaml:"rows"` // Total rows including hidden ones
	Cols       int `yaml:"cols"`
	HiddenRows int `yaml:"hidden_rows"` // Top rows not drawn
	SpawnCol   int `yaml:"spawn_col"`
	SpawnRow   int `yaml:"spawn_row"`
}

// VisibleRows returns the number of rows drawn on screen.
func (b BoardConfig) VisibleRows() int {
	return b.Rows - b.HiddenRows
}

// ScoringConfig defines points awarded for player drops.
// Line clear bonuses are fixed at 50 * n * n.
type ScoringConfig struct {
	SoftDropPoints       int `yaml:"soft_drop_points"`
	HardDropPointsPerRow int `yaml:"hard_drop_points_per_row"`
}

// LevelsConfig defines the score thresholds and gravity curve.
type LevelsConfig struct {
	FirstThreshold int `yaml:"first_threshold"` // Score where progression starts
	Step           int `yaml:"step"`            // Points per level past the threshold
	BaseGravityMs  int `yaml:"base_gravity_ms"`
	DecrementMs    int `yaml:"decrement_ms"` // Gravity reduction per level
	MinGravityMs   int `yaml:"min_gravity_ms"`
}

// DifficultyConfig controls where progression starts and whether it runs.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel int               `yaml:"initial_level"`
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig selects what drives the level.
type ProgressionConfig struct {
	Type string `yaml:"type"` // "score" or "none"
}

// Progressive reports whether the level follows the score.
func (d DifficultyConfig) Progressive() bool {
	return d.Enabled && d.Progression.Type != "none"
}

// Validate reports every degenerate setting at once.
func (c TetrisConfig) Validate() error {
	var errs []error
	b := c.Board
	if b.Cols < 4 {
		errs = append(errs, fmt.Errorf("board.cols %d: must be at least 4", b.Cols))
	}
	if b.HiddenRows < 0 {
		errs = append(errs, fmt.Errorf("board.hidden_rows %d: must not be negative", b.HiddenRows))
	}
	if b.Rows <= b.HiddenRows+4 {
		errs = append(errs, fmt.Errorf("board.rows %d: must exceed hidden_rows + 4", b.Rows))
	}
	if b.SpawnCol < 0 || b.SpawnCol+4 > b.Cols {
		errs = append(errs, fmt.Errorf("board.spawn_col %d: piece box must fit in %d columns", b.SpawnCol, b.Cols))
	}
	if b.SpawnRow < 0 || b.SpawnRow+4 > b.Rows {
		errs = append(errs, fmt.Errorf("board.spawn_row %d: piece box must fit in %d rows", b.SpawnRow, b.Rows))
	}

	s := c.Scoring
	if s.SoftDropPoints < 0 || s.HardDropPointsPerRow < 0 {
		errs = append(errs, errors.New("scoring: drop points must not be negative"))
	}

	l := c.Levels
	if l.FirstThreshold < 0 {
		errs = append(errs, fmt.Errorf("levels.first_threshold %d: must not be negative", l.FirstThreshold))
	}
	if l.Step <= 0 {
		errs = append(errs, fmt.Errorf("levels.step %d: must be positive", l.Step))
	}
	if l.MinGravityMs <= 0 {
		errs = append(errs, fmt.Errorf("levels.min_gravity_ms %d: must be positive", l.MinGravityMs))
	}
	if l.BaseGravityMs < l.MinGravityMs {
		errs = append(errs, fmt.Errorf("levels.base_gravity_ms %d: below min_gravity_ms %d", l.BaseGravityMs, l.MinGravityMs))
	}
	if l.DecrementMs < 0 {
		errs = append(errs, fmt.Errorf("levels.decrement_ms %d: must not be negative", l.DecrementMs))
	}

	switch c.Difficulty.Progression.Type {
	case "", "score", "none":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q: want score or none", c.Difficulty.Progression.Type))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
