package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRotationCounts(t *testing.T) {
	expected := map[Kind]int{
		KindI: 2,
		KindJ: 4,
		KindL: 4,
		KindO: 1,
		KindS: 2,
		KindT: 4,
		KindZ: 2,
	}

	require.Len(t, Kinds(), 7)
	for _, k := range Kinds() {
		t.Run(k.String(), func(t *testing.T) {
			assert.Equal(t, expected[k], k.RotationCount())
			assert.Len(t, Shapes(k), expected[k])
		})
	}
}

func TestCatalogShapesAreWellFormed(t *testing.T) {
	for _, k := range Kinds() {
		for i, m := range Shapes(k) {
			require.Equal(t, 4, m.Rows(), "%s state %d rows", k, i)
			require.Equal(t, 4, m.Cols(), "%s state %d cols", k, i)
			assert.Equal(t, 4, countCells(m), "%s state %d should have 4 cells", k, i)

			for _, line := range m {
				for _, v := range line {
					if v != 0 {
						assert.Equal(t, int(k), v, "%s state %d carries a foreign value", k, i)
					}
				}
			}
		}
	}
}

func TestCatalogReturnsCopies(t *testing.T) {
	first := Shapes(KindT)
	first[0][1][0] = 99
	first[0] = nil

	again := Shapes(KindT)
	assert.Equal(t, 6, again[0][1][0])
	assert.NotNil(t, again[0])
}

func TestInvalidKindPanics(t *testing.T) {
	assert.Panics(t, func() { Shapes(KindNone) })
	assert.Panics(t, func() { Shapes(Kind(42)) })
	assert.False(t, KindNone.Valid())
	assert.True(t, KindZ.Valid())
}
