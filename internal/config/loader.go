package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tetrisFile = "tetris.yaml"

// Source names where a configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// LoadTetris loads the game configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// Files only need to set the keys they change; the rest keep their defaults.
func LoadTetris(customPath string) (TetrisConfig, error) {
	cfg, _, err := LoadTetrisWithSource(customPath)
	return cfg, err
}

// LoadTetrisWithSource is LoadTetris that also reports which file was used.
func LoadTetrisWithSource(customPath string) (TetrisConfig, Source, error) {
	if customPath != "" {
		cfg, err := readTetris(customPath)
		if err != nil {
			return cfg, SourceCustom, err
		}
		return cfg, SourceCustom, cfg.Validate()
	}

	// Unreadable or broken optional files fall through to the next candidate.
	if p := userConfigPath(tetrisFile); p != "" {
		if cfg, err := readTetris(p); err == nil {
			return cfg, SourceUser, cfg.Validate()
		}
	}

	if cfg, err := readTetris(filepath.Join("configs", tetrisFile)); err == nil {
		return cfg, SourceLocal, cfg.Validate()
	}

	cfg, err := parseTetris(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, cfg.Validate()
}

func readTetris(path string) (TetrisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TetrisConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := parseTetris(data)
	if err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func parseTetris(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal renders cfg as YAML, e.g. to seed a user config file.
func Marshal(cfg TetrisConfig) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return out, nil
}

// userConfigPath returns ~/.tetris/configs/<filename>, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}
