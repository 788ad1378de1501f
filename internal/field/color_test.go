package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClusterClearsExactSize(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2.........",
		"22.3......",
		"323333....",
	)
	assert.Equal(t, 4, f.ClusterSize(0, 17, false, false))
	assert.Equal(t, 5, f.ClusterSize(3, 19, false, false))

	before := f.BlockCount()
	n := f.ClearColor(4, false, false, false)
	assert.Equal(t, 9, n)
	assert.Equal(t, before-9, f.BlockCount())
	assert.Equal(t, Color(3), f.Color(0, 19))
}

func TestCheckColorFlagsWholeCluster(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"22........",
		"22.4......",
	)
	n := f.CheckColor(4, true, false, false, false)
	require.Equal(t, 4, n)
	assert.Equal(t, 1, f.ColorsCleared)
	assert.Equal(t, 0, f.ColorClearExtra)
	for _, p := range []Point{{0, 18}, {1, 18}, {0, 19}, {1, 19}} {
		assert.True(t, f.Cell(p.X, p.Y).Flags.Has(Erase), "%v", p)
	}
	assert.False(t, f.Cell(3, 19).Flags.Has(Erase))

	assert.Equal(t, 4, f.ClearProceed(GemNone))
	assert.Equal(t, 1, f.BlockCount())
}

func TestCheckColorWithoutFlagDoesNotMutate(t *testing.T) {
	f := NewDefault()
	load(t, f, "2222......")
	before := f.Clone()
	assert.Equal(t, 4, f.CheckColor(3, false, false, false, false))
	assert.True(t, f.Equal(before))
}

func TestClusterBelowMinimumSurvives(t *testing.T) {
	f := NewDefault()
	load(t, f, "222.......")
	assert.Equal(t, 0, f.ClearColor(4, false, false, false))
	assert.Equal(t, 3, f.BlockCount())
}

func TestClusterSeededOnEmptyOrInvalid(t *testing.T) {
	f := NewDefault()
	load(t, f, "2222......")
	before := f.Clone()
	assert.Equal(t, 0, f.ClusterSize(9, 19, false, false))
	assert.Equal(t, 0, f.ClusterSize(-1, 19, false, false))
	assert.Equal(t, 0, f.ClearColorAt(9, 19, false, false, false, false))
	assert.Equal(t, 0, f.ClearColorAt(0, 25, true, false, false, false))
	assert.True(t, f.Equal(before))
}

func TestClusterOnLargeRegionTerminates(t *testing.T) {
	f := New(40, 60, 10, false)
	for y := -10; y < 60; y++ {
		for x := 0; x < 40; x++ {
			f.SetCell(x, y, NewCell(ColorBlue, Visible))
		}
	}
	assert.Equal(t, 40*70, f.ClusterSize(0, 0, false, false))
	assert.Equal(t, 40*60, f.ClusterSize(0, 0, false, true))
}

func TestGarbageAbsorbedByCluster(t *testing.T) {
	f := NewDefault()
	load(t, f, "22221.....")
	g := f.Cell(4, 19)
	g.Flags.Set(Garbage)
	f.SetCell(4, 19, g)

	n := f.CheckColor(4, true, true, false, false)
	assert.Equal(t, 4, n)
	assert.Equal(t, 1, f.GarbageCleared)
	assert.True(t, f.Cell(4, 19).Flags.Has(Erase))
}

func TestGemSameMatchesPlainColor(t *testing.T) {
	f := NewDefault()
	load(t, f, "22........")
	f.SetCell(2, 19, NewCell(ColorRed.Gem(), Visible))
	assert.Equal(t, 2, f.ClusterSize(0, 19, false, false))
	assert.Equal(t, 3, f.ClusterSize(0, 19, true, false))
	assert.Equal(t, 3, f.GemColorCheck(3, false, false, false))
}

func TestAllClearColor(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2..2......",
		"3.2.......",
	)
	assert.Equal(t, 0, f.AllClearColor(ColorNone, false, false))
	assert.Equal(t, 3, f.AllClearColor(ColorRed, false, false))
	assert.Equal(t, 1, f.BlockCount())
}

func TestCheckLineColor(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"4.........",
		"4.........",
		"4556......",
	)
	assert.Equal(t, 3, f.CheckLineColor(3, true, false, false))
	assert.Equal(t, []Color{4}, f.LineColorsCleared)
	assert.True(t, f.Cell(0, 17).Flags.Has(Erase))
	assert.False(t, f.Cell(1, 19).Flags.Has(Erase))
}
