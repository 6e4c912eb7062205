package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in configuration: a 25x10 board with
// two hidden rows and the classic 1000/500 level table.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Rows:       25,
			Cols:       10,
			HiddenRows: 2,
			SpawnCol:   4,
			SpawnRow:   0,
		},
		Scoring: ScoringConfig{
			SoftDropPoints:       1,
			HardDropPointsPerRow: 2,
		},
		Levels: LevelsConfig{
			FirstThreshold: 1000,
			Step:           500,
			BaseGravityMs:  400,
			DecrementMs:    30,
			MinGravityMs:   120,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 1,
			Progression: ProgressionConfig{
				Type: "score",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
