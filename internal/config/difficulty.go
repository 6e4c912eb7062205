package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// DifficultyPreset is a named difficulty chosen on the command line.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the accepted preset names in display order.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset validates a preset name. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", s)
}

// InitialLevelForPreset returns the starting level of a preset.
func InitialLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyHard:
		return 5
	default:
		return 1
	}
}

// ApplyTetrisPreset adjusts cfg for a difficulty preset.
// Easy also slows the base gravity; fixed pins the level at the configured
// initial level.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		cfg.Difficulty.InitialLevel = max(cfg.Difficulty.InitialLevel, 1)
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	if cfg.Difficulty.Progression.Type == "" || cfg.Difficulty.Progression.Type == "none" {
		cfg.Difficulty.Progression.Type = "score"
	}

	if preset == DifficultyEasy {
		cfg.Levels.BaseGravityMs += 200
		cfg.Levels.Step *= 2
	}
}

// Policy builds the engine level policy for these thresholds.
func (l LevelsConfig) Policy(d DifficultyConfig) engine.TablePolicy {
	return engine.TablePolicy{
		FirstThreshold: l.FirstThreshold,
		Step:           l.Step,
		StartLevel:     max(d.InitialLevel, 1),
		Base:           time.Duration(l.BaseGravityMs) * time.Millisecond,
		Decrement:      time.Duration(l.DecrementMs) * time.Millisecond,
		Floor:          time.Duration(l.MinGravityMs) * time.Millisecond,
		Fixed:          !d.Progressive(),
	}
}

// Policy builds the engine level policy for the whole configuration.
func (c TetrisConfig) Policy() engine.TablePolicy {
	return c.Levels.Policy(c.Difficulty)
}
