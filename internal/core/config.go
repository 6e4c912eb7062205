package core

// RuntimeConfig is handed to a game on every Reset.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed; 0 lets the platform pick one from the clock
}

// DefaultConfig returns a RuntimeConfig sized for a classic 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the part of a game's state the platform cares about:
// what to show in summaries, what to persist and whether play continues.
type GameState struct {
	Score    int
	Level    int
	Lines    int // Rows cleared this session
	Pieces   int // Pieces locked this session
	GameOver bool
	Paused   bool
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState

	// Locked is true when a piece was merged into the grid this tick.
	Locked bool
	// Cleared is the number of rows removed this tick.
	Cleared int
}
