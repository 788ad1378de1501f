package field

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
)

func TestAddGarbageRow(t *testing.T) {
	f := NewDefault()
	f.SetCell(0, -3, NewCell(ColorRed, Visible))
	load(t, f, "2.........")

	f.AddGarbageRow(4, ColorGray)
	assert.Equal(t, ColorRed, f.Color(0, 18))
	assert.True(t, f.IsFreeAt(0, -3), "topmost hidden row is discarded")
	for x := 0; x < 10; x++ {
		c := f.Cell(x, 19)
		if x == 4 {
			assert.True(t, c.IsEmpty())
			continue
		}
		assert.True(t, c.Flags.Has(Garbage), "x=%d", x)
	}
	assert.False(t, f.Cell(3, 19).Flags.Has(ConnectRight))
	assert.True(t, f.Cell(2, 19).Flags.Has(ConnectRight|ConnectLeft))
	assert.Empty(t, f.FullLines())
}

func TestAddRandomHoleGarbage(t *testing.T) {
	f := NewDefault()
	rng := rand.New(rand.NewSource(7))
	last := f.AddRandomHoleGarbage(rng, 2, 1.0, ColorGray, 5)
	assert.GreaterOrEqual(t, last, 0)
	assert.Less(t, last, 10)
	assert.True(t, f.IsFreeAt(2, 15))
	assert.True(t, f.IsFreeAt(last, 19))
	assert.Equal(t, 45, f.BlockCount())

	g := NewDefault()
	g.AddSingleHoleGarbage(6, ColorGray, 3)
	for y := 17; y < 20; y++ {
		assert.True(t, g.IsFreeAt(6, y))
	}
}

func TestHoleGeneratorRules(t *testing.T) {
	for _, width := range []int{10, 12} {
		for seed := int64(0); seed < 20; seed++ {
			f := New(width, 20, 3, false)
			gen := NewHoleGenerator(width, rand.New(rand.NewSource(seed)))
			for i := 0; i < 500; i++ {
				history := gen.History()
				hole := f.AddGarbageLine(gen, ColorGray)
				require.False(t, slices.Contains(history, hole),
					"width %d seed %d call %d repeated %d in %v", width, seed, i, hole, history)
				if len(history) > 0 {
					prev := history[len(history)-1]
					require.Greater(t, core.Abs(hole-prev), HoleDistance,
						"width %d seed %d call %d: %d after %d", width, seed, i, hole, prev)
				}
				require.LessOrEqual(t, len(gen.History()), HoleHistory)
			}
		}
	}
}

func TestHoleGeneratorNarrowField(t *testing.T) {
	gen := NewHoleGenerator(3, rand.New(rand.NewSource(1)))
	for i := 0; i < 20; i++ {
		h := gen.Next()
		assert.GreaterOrEqual(t, h, 0)
		assert.Less(t, h, 3)
	}
	assert.Len(t, gen.History(), 7)
}

func TestGarbageDropFullRow(t *testing.T) {
	f := NewDefault()
	f.GarbageDrop(rand.New(rand.NewSource(1)), 10, false, 2, -1, ColorGray)
	for x := 0; x < 10; x++ {
		c := f.Cell(x, -3)
		assert.True(t, c.Flags.Has(Garbage|Broken))
		assert.Equal(t, 2, c.Hard)
	}
}

func TestGarbageDropAvoidsColumn(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		for _, drop := range []int{3, 8} {
			f := NewDefault()
			f.GarbageDrop(rand.New(rand.NewSource(seed)), drop, false, 0, 0, ColorGray)
			assert.Equal(t, drop, f.BlockCount())
			assert.True(t, f.IsFreeAt(0, -3))
		}
	}
}

func TestGarbageDropBig(t *testing.T) {
	f := NewDefault()
	f.GarbageDrop(rand.New(rand.NewSource(1)), 5, true, 0, -1, ColorGray)
	assert.Equal(t, 20, f.BlockCount())
	assert.False(t, f.IsFreeAt(9, -2))
}
