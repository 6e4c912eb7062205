package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"

// Phase is the coarse lifecycle state of a session.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhasePaused   Phase = "paused"
	PhaseTooSmall Phase = "paused_small_window"
	PhaseGameOver Phase = "game_over"
)

// Snapshot captures the comparable game state for determinism tests.
type Snapshot struct {
	Tick     uint64
	Phase    Phase
	Score    int
	Level    int
	Lines    int
	Pieces   int
	Active   engine.Kind
	Held     engine.Kind
	Next     engine.Kind
	HoldUsed bool
	Col      int
	Row      int
	Rotation int
	GhostRow int
	Filled   int // Locked cells on the grid
	Spawns   [7]int
	Notice   string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	phase := PhasePlaying
	switch {
	case g.gameOver:
		phase = PhaseGameOver
	case g.tooSmall:
		phase = PhaseTooSmall
	case g.paused:
		phase = PhasePaused
	}

	s := Snapshot{
		Tick:   g.tick,
		Phase:  phase,
		Level:  g.level,
		Lines:  g.lines,
		Pieces: g.pieces,
		Notice: g.notice,
	}
	if g.board == nil {
		return s
	}

	s.Score = g.board.Score()
	s.Active = g.board.Active()
	s.Held = g.board.Held()
	s.Next = g.board.Next()
	s.HoldUsed = g.board.HoldUsed()
	if s.Active.Valid() {
		v := g.board.View()
		s.Col, s.Row = v.Col, v.Row
		s.Rotation = g.board.Rotation()
		s.GhostRow = g.board.GhostRow()
	}
	for _, line := range g.board.Grid() {
		for _, v := range line {
			if v != 0 {
				s.Filled++
			}
		}
	}
	for i, k := range engine.Kinds() {
		s.Spawns[i] = g.SpawnCount(k)
	}
	return s
}
