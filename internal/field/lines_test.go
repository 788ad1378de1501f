package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckLinesEmptyField(t *testing.T) {
	f := NewDefault()
	assert.Empty(t, f.FullLines())
	assert.Equal(t, 0, f.CheckLines())
	assert.Equal(t, 0, f.FlaggedLines())
}

func TestCheckLinesDropsStaleFlags(t *testing.T) {
	f := NewDefault()
	load(t, f, "1111111111")
	require.Equal(t, 1, f.CheckLines())
	require.True(t, f.LineFlag(19))

	f.SetCell(4, 19, Empty())
	assert.Equal(t, 0, f.CheckLines())
	assert.False(t, f.LineFlag(19))
	assert.Equal(t, 0, f.FlaggedLines())
}

func TestSingleLineClearAndSettle(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2.........",
		"33.....4..",
		"1111111111",
	)
	before := f.BlockCount()

	require.Equal(t, 1, f.CheckLines())
	assert.Equal(t, []int{19}, f.LastLines)
	assert.True(t, f.LineFlag(19))
	assert.True(t, f.Cell(0, 19).Flags.Has(Erase))

	assert.Equal(t, 1, f.ClearLines())
	assert.Equal(t, 1, f.ShiftDownCleared())

	assert.Equal(t, before-f.Width(), f.BlockCount())
	assert.Equal(t, ColorRed, f.Color(0, 18))
	assert.Equal(t, Color(3), f.Color(0, 19))
	assert.Equal(t, Color(3), f.Color(1, 19))
	assert.Equal(t, Color(4), f.Color(7, 19))
	assert.True(t, f.IsEmptyLine(17))
	assert.False(t, f.LineFlag(19))
}

func TestScenarioHoleThenFill(t *testing.T) {
	f := New(10, 20, 3, false)
	load(t, f,
		"....5.....",
		"11111.1111",
	)
	assert.Empty(t, f.FullLines())
	assert.Equal(t, 0, f.CheckLines())

	require.True(t, f.SetCell(5, 19, NewCell(ColorRed, Visible|Outline)))
	assert.Equal(t, []int{19}, f.FullLines())
	require.Equal(t, 1, f.CheckLines())

	f.ClearLines()
	f.ShiftDownCleared()

	assert.Equal(t, Color(5), f.Color(4, 19))
	for x := 0; x < 10; x++ {
		if x != 4 {
			assert.True(t, f.IsFreeAt(x, 19), "x=%d", x)
		}
	}
	assert.True(t, f.IsEmptyLine(18))
}

func TestSplitLinesDetected(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"1111111111",
		"2.........",
		"1111111111",
	)
	require.Equal(t, 2, f.CheckLines())
	assert.True(t, f.LastSplit)
	assert.Equal(t, []int{17, 19}, f.LastLines)

	f.ClearLines()
	f.ShiftDownCleared()
	assert.Equal(t, ColorRed, f.Color(0, 19))
	assert.Equal(t, 1, f.BlockCount())
}

func TestWallRowsNeverClear(t *testing.T) {
	f := NewDefault()
	f.AddHurryupFloor(1)
	assert.Equal(t, 1, f.HurryupLines())
	assert.Empty(t, f.FullLines())
	assert.True(t, f.Cell(0, 19).Flags.Has(Wall))

	f.AddHurryupFloor(-1)
	assert.Equal(t, 0, f.HurryupLines())
}

func TestHardBlocksSurviveOneClear(t *testing.T) {
	f := NewDefault()
	load(t, f, "1111111111")
	f.SetCell(0, 19, Cell{Color: ColorGray, Flags: Visible, Hard: 1})
	f.CheckLines()
	f.ClearLines()

	c := f.Cell(0, 19)
	assert.Equal(t, 0, c.Hard)
	assert.False(t, c.Flags.Has(Erase))
	assert.False(t, f.LineFlag(19))
	assert.Equal(t, 0, f.ShiftDownCleared())
}

func TestClearLinesBreaksVerticalLinks(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"2.........",
		"1111111111",
	)
	up := f.Cell(0, 18)
	up.Flags.Set(ConnectDown)
	f.SetCell(0, 18, up)
	bottom := f.Cell(0, 19)
	bottom.Flags.Set(ConnectUp)
	f.SetCell(0, 19, bottom)

	f.CheckLines()
	f.ClearLines()

	c := f.Cell(0, 18)
	assert.False(t, c.Flags.Has(ConnectDown))
	assert.True(t, c.Flags.Has(Broken))
}

func TestPushUpDown(t *testing.T) {
	f := NewDefault()
	load(t, f, "1.........")
	f.PushUp(2)
	assert.Equal(t, ColorGray, f.Color(0, 17))
	assert.True(t, f.IsEmptyLine(19))

	f.PushDown(2)
	assert.Equal(t, ColorGray, f.Color(0, 19))
}

func TestHeightQueries(t *testing.T) {
	f := NewDefault()
	assert.Equal(t, 20, f.HighestBlockY())
	load(t, f,
		".1........",
		"1.1.......",
		"111.1.....",
	)
	assert.Equal(t, 17, f.HighestBlockY())
	assert.Equal(t, 18, f.HighestBlockYAt(0))
	assert.True(t, f.IsHoleBelow(1, 17))
	assert.Equal(t, 1, f.ValleyDepth(3))
}

func TestDeleteLine(t *testing.T) {
	f := NewDefault()
	load(t, f, "1.1.......")
	f.SetCell(0, 19, Cell{Color: ColorGray, Flags: Visible, Hard: 3})
	f.DeleteLine(19)
	assert.True(t, f.LineFlag(19))
	assert.Equal(t, 0, f.Cell(0, 19).Hard)
	f.ShiftDownCleared()
	assert.Equal(t, 0, f.BlockCount())
}
