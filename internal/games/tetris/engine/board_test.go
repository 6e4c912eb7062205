package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(kinds ...Kind) *Board {
	b := NewBoard(DefaultRows, DefaultCols, WithSource(newCycleSource(kinds...)))
	b.ResetSession()
	return b
}

// drop moves the active piece down until blocked and returns the rows moved.
func drop(b *Board) int {
	n := 0
	for b.MoveDown() {
		n++
	}
	return n
}

// settle locks the active piece, clears rows, scores and spawns the next one.
func settle(b *Board) (ClearResult, bool) {
	b.LockActivePiece()
	res := b.ClearCompletedRows()
	b.AddScore(res.Bonus)
	return res, b.SpawnNewPiece()
}

func TestCommandsBeforeSpawnPanic(t *testing.T) {
	b := NewBoard(DefaultRows, DefaultCols, WithRand(rand.New(rand.NewSource(1))))

	assert.Equal(t, KindNone, b.Active())
	assert.Panics(t, func() { b.View() })
	assert.Panics(t, func() { b.MoveDown() })
	assert.Panics(t, func() { b.MoveLeft() })
	assert.Panics(t, func() { b.Rotate() })
	assert.Panics(t, func() { b.HoldOrSwap() })
	assert.Panics(t, func() { b.LockActivePiece() })

	// Queries that do not need an active piece stay usable.
	assert.Equal(t, 0, b.Score())
	assert.Equal(t, 0, countCells(b.Grid()))
	assert.NotNil(t, b.NextPreview())
	assert.Nil(t, b.HeldPreview())
}

func TestSpawnPlacesPieceAtAnchor(t *testing.T) {
	b := newTestBoard(KindT, KindO)

	v := b.View()
	assert.Equal(t, KindT, b.Active())
	assert.Equal(t, DefaultSpawnCol, v.Col)
	assert.Equal(t, DefaultSpawnRow, v.Row)
	assert.Equal(t, 0, b.Rotation())
	assert.False(t, b.HoldUsed())
	assert.True(t, Shapes(KindT)[0].Equal(v.Shape))
	assert.True(t, Shapes(KindO)[0].Equal(v.Next))
}

func TestHorizontalMovesStopAtWalls(t *testing.T) {
	b := newTestBoard(KindI)

	left := 0
	for b.MoveLeft() {
		left++
	}
	assert.Equal(t, 4, left)
	assert.Equal(t, 0, b.View().Col)

	right := 0
	for b.MoveRight() {
		right++
	}
	assert.Equal(t, 6, right)
	assert.Equal(t, 6, b.View().Col)
}

func TestBlockedMoveLeavesStateUnchanged(t *testing.T) {
	b := newTestBoard(KindO)
	drop(b)
	before := b.View()

	assert.False(t, b.MoveDown())
	assert.Equal(t, before, b.View())
}

func TestRotationCyclesBackToStart(t *testing.T) {
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			b := newTestBoard(k)
			b.MoveDown()
			b.MoveDown()
			start := b.View().Shape

			for i := range k.RotationCount() {
				require.True(t, b.Rotate(), "rotation %d blocked", i)
			}
			assert.True(t, start.Equal(b.View().Shape))
			assert.Equal(t, 0, b.Rotation())
		})
	}
}

func TestRotationRejectedAtWallWithoutKick(t *testing.T) {
	b := newTestBoard(KindI)

	require.True(t, b.Rotate())
	for b.MoveLeft() {
	}
	require.Equal(t, -1, b.View().Col, "vertical I hugs the wall with its padding outside")

	assert.False(t, b.Rotate())
	assert.Equal(t, 1, b.Rotation())
	assert.Equal(t, -1, b.View().Col)
}

func TestDropLockAndClearOnEmptyBoard(t *testing.T) {
	b := newTestBoard(KindO)

	assert.Equal(t, 22, b.DropDistance())
	assert.Equal(t, 22, b.GhostRow())
	assert.Equal(t, 22, drop(b))

	b.LockActivePiece()
	locked := b.Grid()
	assert.Equal(t, 4, countCells(locked))
	assert.Equal(t, KindNone, b.Active())

	res := b.ClearCompletedRows()
	assert.Zero(t, res.Removed)
	assert.Zero(t, res.Bonus)
	assert.True(t, locked.Equal(res.Grid))
	assert.True(t, locked.Equal(b.Grid()))
}

func TestLockThenClearScoresLine(t *testing.T) {
	b := newTestBoard(KindI, KindO)
	b.grid[24] = []int{2, 2, 2, 2, 0, 0, 0, 0, 3, 3}

	assert.Equal(t, 23, drop(b))
	res, over := settle(b)

	assert.False(t, over)
	assert.Equal(t, 1, res.Removed)
	assert.Equal(t, 50, res.Bonus)
	assert.Equal(t, 50, b.Score())
	assert.Zero(t, countCells(b.Grid()))
	assert.Equal(t, KindO, b.Active())
}

func TestHoldStoresThenIgnoresRepeat(t *testing.T) {
	b := newTestBoard(KindT, KindO, KindI, KindZ)

	assert.False(t, b.HoldOrSwap())
	assert.Equal(t, KindT, b.Held())
	assert.Equal(t, KindO, b.Active())
	assert.Equal(t, KindI, b.Next())
	assert.True(t, b.HoldUsed())
	assert.True(t, Shapes(KindT)[0].Equal(b.HeldPreview()))

	viewBefore := b.View()
	assert.False(t, b.HoldOrSwap(), "second hold in one spawn is ignored")
	assert.Equal(t, KindT, b.Held())
	assert.Equal(t, KindO, b.Active())
	assert.Equal(t, viewBefore, b.View())
}

func TestHoldSwapResetsRotationAndAnchor(t *testing.T) {
	b := newTestBoard(KindT, KindO, KindI, KindZ)
	require.False(t, b.HoldOrSwap()) // held T, active O

	drop(b)
	_, over := settle(b)
	require.False(t, over)
	require.Equal(t, KindI, b.Active())
	require.False(t, b.HoldUsed(), "spawn clears the hold flag")

	require.True(t, b.Rotate())
	require.True(t, b.MoveDown())
	require.True(t, b.MoveLeft())

	assert.False(t, b.HoldOrSwap())
	assert.Equal(t, KindT, b.Active())
	assert.Equal(t, KindI, b.Held())
	assert.Equal(t, 0, b.Rotation())
	v := b.View()
	assert.Equal(t, DefaultSpawnCol, v.Col)
	assert.Equal(t, DefaultSpawnRow, v.Row)
	assert.True(t, b.HoldUsed())
	assert.Equal(t, KindZ, b.Next(), "swap does not advance the queue")
}

func TestHoldSwapIntoBlockedSpawnIsGameOver(t *testing.T) {
	b := newTestBoard(KindT, KindO)
	require.False(t, b.HoldOrSwap()) // held T, active O
	drop(b)
	_, over := settle(b)
	require.False(t, over)

	for r := 0; r < 4; r++ {
		fillRow(b.grid, r, 9)
	}
	assert.True(t, b.HoldOrSwap())
}

func TestSpawnCollisionLeavesGridUntouched(t *testing.T) {
	b := newTestBoard(KindO)
	for r := 0; r < 4; r++ {
		fillRow(b.grid, r, 9)
		b.grid[r][0] = 0 // keep rows from being full
	}
	before := b.Grid()

	assert.True(t, b.SpawnNewPiece())
	assert.True(t, before.Equal(b.Grid()))

	// The board stays queryable after game over.
	assert.Equal(t, KindO, b.Active())
	assert.NotPanics(t, func() { b.View() })
}

func TestResetSessionClearsEverything(t *testing.T) {
	b := newTestBoard(KindT, KindO)
	b.AddScore(120)
	require.False(t, b.HoldOrSwap())
	drop(b)
	b.LockActivePiece()

	assert.False(t, b.ResetSession())
	assert.Equal(t, 0, b.Score())
	assert.Equal(t, KindNone, b.Held())
	assert.False(t, b.HoldUsed())
	assert.Equal(t, 0, countCells(b.Grid()))
	assert.True(t, b.Active().Valid())
	assert.Equal(t, DefaultRows, b.Rows())
	assert.Equal(t, DefaultCols, b.Cols())
}

func TestSnapshotsAreCopies(t *testing.T) {
	b := newTestBoard(KindI, KindT)
	require.False(t, b.HoldOrSwap())

	v := b.View()
	v.Shape[1][0] = 42
	v.Next[1][0] = 42
	assert.Equal(t, 6, b.View().Shape[1][0])

	g := b.Grid()
	g[0][0] = 42
	assert.Zero(t, b.Grid()[0][0])

	h := b.HeldPreview()
	h[1][0] = 42
	assert.Equal(t, 1, b.HeldPreview()[1][0])
	assert.Equal(t, 1, Shapes(KindI)[0][1][0])
}

func TestNextPreviewNilWhenNothingUpcoming(t *testing.T) {
	b := NewBoard(DefaultRows, DefaultCols, WithSource(&finiteSource{kinds: []Kind{KindI}}))
	require.False(t, b.ResetSession())

	assert.Nil(t, b.NextPreview())
	assert.Nil(t, b.View().Next)
	assert.Equal(t, KindNone, b.Next())
}

func TestScoreOnlyGrows(t *testing.T) {
	b := newTestBoard(KindO)
	b.AddScore(1)
	b.AddScore(0)
	b.AddScore(800)
	assert.Equal(t, 801, b.Score())
	assert.Panics(t, func() { b.AddScore(-1) })
	assert.Equal(t, 801, b.Score())
}

func TestCustomSpawnAnchor(t *testing.T) {
	b := NewBoard(22, 8, WithSource(newCycleSource(KindO)), WithSpawn(2, 1))
	require.False(t, b.ResetSession())

	v := b.View()
	assert.Equal(t, 2, v.Col)
	assert.Equal(t, 1, v.Row)
	assert.Equal(t, 18, b.DropDistance())
}

func TestInvalidBoardSizePanics(t *testing.T) {
	assert.Panics(t, func() { NewBoard(0, 10) })
	assert.Panics(t, func() { NewBoard(10, -1) })
}
