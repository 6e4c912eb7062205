package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Reference playfield geometry.
const (
	DefaultRows     = 25
	DefaultCols     = 10
	DefaultSpawnCol = 4
	DefaultSpawnRow = 0
)

// Board owns one play session: the grid, the active piece and its anchor,
// the held and next kinds, the hold-used flag and the score.
//
// Board is not safe for concurrent use. Callers serialize every command.
type Board struct {
	rows int
	cols int

	spawnCol int
	spawnRow int

	grid   Matrix
	source KindSource
	rot    rotator

	active Kind // KindNone before the first spawn and after a lock
	col    int  // Anchor column of the active piece
	row    int  // Anchor row of the active piece

	held     Kind
	next     Kind
	holdUsed bool

	score int
}

// Option configures a Board at construction.
type Option func(*Board)

// WithSource sets the kind source the board spawns from.
func WithSource(src KindSource) Option {
	return func(b *Board) {
		b.source = src
	}
}

// WithRand makes the board draw from a uniform Queue backed by rng.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) {
		b.source = NewQueue(rng)
	}
}

// WithSpawn overrides the spawn anchor.
func WithSpawn(col, row int) Option {
	return func(b *Board) {
		b.spawnCol = col
		b.spawnRow = row
	}
}

// NewBoard creates an empty rows x cols board. No piece is active until the
// first SpawnNewPiece or ResetSession.
func NewBoard(rows, cols int, opts ...Option) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("engine: invalid board size %dx%d", rows, cols))
	}

	b := &Board{
		rows:     rows,
		cols:     cols,
		spawnCol: DefaultSpawnCol,
		spawnRow: DefaultSpawnRow,
		grid:     NewGrid(rows, cols),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.source == nil {
		b.source = NewQueue(rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	b.next = b.source.Peek()
	return b
}

// Rows returns the grid height including hidden rows.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the grid width.
func (b *Board) Cols() int {
	return b.cols
}

// MoveDown shifts the active piece one row down if nothing blocks it.
func (b *Board) MoveDown() bool {
	return b.tryMove(0, 1)
}

// MoveLeft shifts the active piece one column left if nothing blocks it.
func (b *Board) MoveLeft() bool {
	return b.tryMove(-1, 0)
}

// MoveRight shifts the active piece one column right if nothing blocks it.
func (b *Board) MoveRight() bool {
	return b.tryMove(1, 0)
}

func (b *Board) tryMove(dc, dr int) bool {
	b.requireActive()
	if Intersects(b.grid, b.rot.current(), b.col+dc, b.row+dr) {
		return false
	}
	b.col += dc
	b.row += dr
	return true
}

// Rotate advances the active piece to its next rotation state in place.
// There are no wall kicks: any collision at the current anchor, including
// leaving the grid, rejects the rotation.
func (b *Board) Rotate() bool {
	b.requireActive()
	shape, idx := b.rot.peekNext()
	if Intersects(b.grid, shape, b.col, b.row) {
		return false
	}
	b.rot.setIndex(idx)
	return true
}

// DropDistance returns how many rows the active piece can still fall.
func (b *Board) DropDistance() int {
	b.requireActive()
	shape := b.rot.current()
	n := 0
	for !Intersects(b.grid, shape, b.col, b.row+n+1) {
		n++
	}
	return n
}

// SpawnNewPiece takes the next kind from the source, places it at the spawn
// anchor with rotation 0 and clears the hold-used flag. It returns true when
// the new piece already collides, which ends the session.
func (b *Board) SpawnNewPiece() (gameOver bool) {
	k := b.source.Next()
	b.placeAtSpawn(k)
	b.holdUsed = false
	b.next = b.source.Peek()
	return b.spawnBlocked()
}

// LockActivePiece merges the active piece into the grid. It neither clears
// rows nor spawns: callers sequence lock, clear, score, spawn.
func (b *Board) LockActivePiece() {
	b.requireActive()
	b.grid = Merge(b.grid, b.rot.current(), b.col, b.row)
	b.active = KindNone
}

// ClearCompletedRows removes full rows from the grid and returns the result
// for the caller to score.
func (b *Board) ClearCompletedRows() ClearResult {
	res := ClearFullRows(b.grid)
	b.grid = res.Grid
	res.Grid = res.Grid.Clone()
	return res
}

// HoldOrSwap stores the active kind in the hold slot, or swaps it with the
// held kind. Only one hold is allowed per spawned piece; a repeated call is
// ignored and returns false. It returns true when the piece entering play
// collides at the spawn anchor.
func (b *Board) HoldOrSwap() (gameOver bool) {
	b.requireActive()
	if b.holdUsed {
		return false
	}

	if b.held == KindNone {
		b.held = b.active
		gameOver = b.SpawnNewPiece()
		b.holdUsed = true
		return gameOver
	}

	b.held, b.active = b.active, b.held
	b.placeAtSpawn(b.active)
	b.holdUsed = true
	return b.spawnBlocked()
}

// ResetSession empties the grid and hold slot, zeroes the score and spawns
// the first piece. It returns true if that piece cannot be placed.
func (b *Board) ResetSession() (gameOver bool) {
	b.grid = NewGrid(b.rows, b.cols)
	b.score = 0
	b.held = KindNone
	b.holdUsed = false
	return b.SpawnNewPiece()
}

// AddScore adds points to the score. Points must not be negative.
func (b *Board) AddScore(points int) {
	if points < 0 {
		panic(fmt.Sprintf("engine: negative score addition %d", points))
	}
	b.score += points
}

// Score returns the current score.
func (b *Board) Score() int {
	return b.score
}

// HoldUsed reports whether the active piece has already been held.
func (b *Board) HoldUsed() bool {
	return b.holdUsed
}

// Active returns the active kind, or KindNone when no piece is falling.
func (b *Board) Active() Kind {
	return b.active
}

// Held returns the held kind, or KindNone.
func (b *Board) Held() Kind {
	return b.held
}

// Next returns the previewed upcoming kind, or KindNone.
func (b *Board) Next() Kind {
	return b.next
}

func (b *Board) placeAtSpawn(k Kind) {
	b.active = k
	b.rot.assign(k)
	b.col = b.spawnCol
	b.row = b.spawnRow
}

func (b *Board) spawnBlocked() bool {
	return Intersects(b.grid, b.rot.current(), b.col, b.row)
}

func (b *Board) requireActive() {
	if b.active == KindNone {
		panic("engine: no active piece (spawn before issuing commands)")
	}
}
