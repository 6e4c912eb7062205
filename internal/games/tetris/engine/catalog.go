// Package engine implements the falling-block game state: the playfield grid,
// the active, held and queued pieces, rotation, collision, line clearing and
// the score-to-level policy.
//
// The package is pure logic with no rendering, input or timing dependencies.
// Gameplay rejections (blocked moves, a second hold) are reported as boolean
// results; lifecycle misuse panics.
package engine

import "fmt"

// Kind identifies one of the seven piece shapes.
// The numeric value doubles as the cell value the piece writes into the grid.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// kindCount is the number of playable kinds.
const kindCount = 7

// Kinds returns the playable kinds in catalog order.
func Kinds() []Kind {
	return []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
}

// Valid reports whether k is one of the seven playable kinds.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindZ
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "unknown"
	}
}

// RotationCount returns how many rotation states the kind cycles through.
func (k Kind) RotationCount() int {
	return len(states(k))
}

// Shapes returns deep copies of the rotation states of k, in rotation order.
func Shapes(k Kind) []Matrix {
	src := states(k)
	out := make([]Matrix, len(src))
	for i, m := range src {
		out[i] = m.Clone()
	}
	return out
}

// states returns the shared rotation table for k. Callers must not mutate it.
func states(k Kind) []Matrix {
	if !k.Valid() {
		panic(fmt.Sprintf("engine: invalid piece kind %d", k))
	}
	return catalog[k-1]
}

// catalog holds the rotation states of every kind, indexed by Kind-1.
// All states are 4x4 bounding boxes; occupied cells carry the kind's value.
var catalog = [kindCount][]Matrix{
	// I
	{
		{
			{0, 0, 0, 0},
			{1, 1, 1, 1},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
			{0, 1, 0, 0},
		},
	},
	// J
	{
		{
			{0, 0, 0, 0},
			{2, 2, 2, 0},
			{0, 0, 2, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 2, 2, 0},
			{0, 2, 0, 0},
			{0, 2, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 2, 0, 0},
			{0, 2, 2, 2},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 2, 0},
			{0, 0, 2, 0},
			{0, 2, 2, 0},
			{0, 0, 0, 0},
		},
	},
	// L
	{
		{
			{0, 0, 0, 0},
			{0, 3, 3, 3},
			{0, 3, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 3, 3, 0},
			{0, 0, 3, 0},
			{0, 0, 3, 0},
		},
		{
			{0, 0, 0, 0},
			{0, 0, 3, 0},
			{3, 3, 3, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 3, 0, 0},
			{0, 3, 0, 0},
			{0, 3, 3, 0},
			{0, 0, 0, 0},
		},
	},
	// O
	{
		{
			{0, 0, 0, 0},
			{0, 4, 4, 0},
			{0, 4, 4, 0},
			{0, 0, 0, 0},
		},
	},
	// S
	{
		{
			{0, 0, 0, 0},
			{0, 5, 5, 0},
			{5, 5, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{5, 0, 0, 0},
			{5, 5, 0, 0},
			{0, 5, 0, 0},
			{0, 0, 0, 0},
		},
	},
	// T
	{
		{
			{0, 0, 0, 0},
			{6, 6, 6, 0},
			{0, 6, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 6, 0, 0},
			{0, 6, 6, 0},
			{0, 6, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 6, 0, 0},
			{6, 6, 6, 0},
			{0, 0, 0, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 6, 0, 0},
			{6, 6, 0, 0},
			{0, 6, 0, 0},
			{0, 0, 0, 0},
		},
	},
	// Z
	{
		{
			{0, 0, 0, 0},
			{7, 7, 0, 0},
			{0, 7, 7, 0},
			{0, 0, 0, 0},
		},
		{
			{0, 7, 0, 0},
			{7, 7, 0, 0},
			{7, 0, 0, 0},
			{0, 0, 0, 0},
		},
	},
}
