package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldSquare(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2222......",
		"2222......",
		"2222......",
		"2222......",
	)
	gold, silver := f.CheckSquares()
	assert.Equal(t, 1, gold)
	assert.Equal(t, 0, silver)
	assert.Equal(t, ColorSquareGold1, f.Color(0, 16))
	assert.Equal(t, ColorSquareGold1+8, f.Color(3, 19))
	assert.True(t, f.Cell(1, 17).Flags.Has(ConnectAll))
	assert.False(t, f.Cell(0, 17).Flags.Has(ConnectLeft))

	for y := 16; y < 20; y++ {
		f.SetLineFlag(y, true)
	}
	g, s := f.SquareClears()
	assert.Equal(t, 4, g)
	assert.Equal(t, 0, s)
}

func TestSilverSquareIgnoresColor(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2345......",
		"3456......",
		"4567......",
		"5678......",
	)
	gold, silver := f.CheckSquares()
	assert.Equal(t, 0, gold)
	assert.Equal(t, 1, silver)
	assert.True(t, f.Cell(2, 18).IsSilverSquare())
}

func TestBrokenBlocksNeverSquare(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2222......",
		"2222......",
		"2222......",
		"2222......",
	)
	link(t, f, 2, 18, Broken)
	gold, silver := f.CheckSquares()
	assert.Zero(t, gold)
	assert.Zero(t, silver)
}

func TestBombIgnitionAndBlast(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"..11......",
		"1111111111",
	)
	f.SetCell(3, 19, NewCell(ColorRed.Gem(), Visible))

	require.Equal(t, 1, f.CheckBombOnLine(true))
	assert.True(t, f.LineFlag(19))
	assert.Equal(t, ColorGemRainbow, f.Color(3, 19))
	assert.Equal(t, 1, f.CountIgnited())

	assert.Equal(t, 4, f.IgniteBombs(1, 1, 2, 2))
	assert.Equal(t, 5, f.ClearProceed(GemNone))
	assert.Equal(t, 7, f.BlockCount())
	assert.True(t, f.IsFreeAt(4, 19))
	assert.False(t, f.IsFreeAt(5, 19))
}

func TestBombBlastCountsEachCellOnce(t *testing.T) {
	f := NewDefault()
	load(t, f, "1111111111")
	f.SetCell(3, 19, NewCell(ColorGemRainbow, Visible|Erase))
	f.SetCell(4, 19, NewCell(ColorGemRainbow, Visible|Erase))
	assert.Equal(t, 2, f.IgniteBombs(1, 1, 1, 1))
}

func TestClearProceedIgnitesGems(t *testing.T) {
	f := NewDefault()
	load(t, f, "11........")
	f.SetCell(2, 19, NewCell(ColorBlue.Gem(), Visible))
	f.SetAllFlags(Erase, true)

	assert.Equal(t, 3, f.ClearProceed(GemBomb))
	assert.Equal(t, ColorGemRainbow, f.Color(2, 19))
	assert.Equal(t, 1, f.CountIgnited())
}

func TestTSlot(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"...1......",
		"111...1111",
		"1111.11111",
	)
	assert.True(t, f.IsTwistSpot(3, 17, false))
	assert.True(t, f.IsTSlot(3, 17, false))
	assert.False(t, f.IsTSlot(1, 17, false))
	assert.Equal(t, 1, f.TSlotCount(false))
	assert.Equal(t, 2, f.TSlotLineClear(3, 17, false))
	assert.Equal(t, 0, f.TSlotLineClear(0, 0, false))

	f.SetLineFlag(17, true)
	assert.Equal(t, 0, f.TSlotCount(false))
	assert.Equal(t, 2, f.TSlotLineClearAll(false, 2))
	assert.Equal(t, 0, f.TSlotLineClearAll(false, 3))
}

func TestTwistSpotCountsWalls(t *testing.T) {
	f := NewDefault()
	load(t, f, "11........")
	// Two corners outside the left wall plus one block.
	assert.True(t, f.IsTwistSpot(-1, 17, false))
	assert.False(t, f.IsTwistSpot(4, 10, false))
}

func TestMirrorAndShift(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2.3.......",
		"12........",
	)
	link(t, f, 0, 19, ConnectRight)
	f.Mirror()
	assert.Equal(t, ColorGray, f.Color(9, 19))
	assert.Equal(t, ColorRed, f.Color(8, 19))
	assert.Equal(t, Color(3), f.Color(7, 18))
	assert.True(t, f.Cell(9, 19).Flags.Has(ConnectLeft))

	f.ShiftLeft()
	assert.Equal(t, Color(3), f.Color(0, 18))
	assert.Equal(t, ColorRed, f.Color(1, 18))
	assert.Equal(t, ColorRed, f.Color(0, 19))
	assert.True(t, f.Cell(0, 19).Flags.Has(Broken))

	f.ShiftRight()
	assert.Equal(t, ColorGray, f.Color(9, 19))
	assert.Equal(t, 4, f.BlockCount())
}

func TestFlipAndNegate(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2.........",
		"3333333333",
	)
	f.FlipVertical()
	assert.Equal(t, ColorRed, f.Color(0, 19))
	assert.False(t, f.IsEmptyLine(18))
	assert.Equal(t, Color(3), f.Color(5, 18))

	f.Negate(ColorGray)
	assert.True(t, f.IsEmptyLine(18))
	assert.Equal(t, 9, f.BlockCount())
	assert.True(t, f.Cell(5, 19).Flags.Has(Garbage))
}
