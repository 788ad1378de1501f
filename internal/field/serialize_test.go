package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringEncoding(t *testing.T) {
	f := NewDefault()
	assert.Equal(t, "", f.String())

	load(t, f, "1.2.......")
	assert.Equal(t, "102", f.String())

	f.SetCell(0, 18, NewCell(ColorGemRainbow, Visible))
	assert.Equal(t, "1020000000y", f.String())
}

func TestStringRoundTrip(t *testing.T) {
	f := NewDefault()
	load(t, f,
		"..7.......",
		"a.3..45...",
		"1111.11111",
	)
	f.SetCell(9, -3, NewCell(ColorPurple, Visible|Garbage))

	g := NewDefault()
	require.NoError(t, g.Parse(f.String()))
	for y := -3; y < 20; y++ {
		for x := 0; x < 10; x++ {
			assert.Equal(t, f.Color(x, y), g.Color(x, y), "(%d,%d)", x, y)
			if !g.IsEmptyAt(x, y) {
				assert.Equal(t, Visible|Outline, g.Cell(x, y).Flags)
			}
		}
	}
	assert.Equal(t, f.String(), g.String())
}

func TestParseRejectsBadInput(t *testing.T) {
	f := NewDefault()
	load(t, f, "1.........")
	before := f.Clone()

	assert.Error(t, f.Parse("1#"))
	assert.True(t, f.Equal(before))

	long := make([]byte, 10*23+1)
	for i := range long {
		long[i] = '1'
	}
	assert.Error(t, f.Parse(string(long)))
	assert.True(t, f.Equal(before))
}

func TestAttrRoundTrip(t *testing.T) {
	f := NewDefault()
	load(t, f, "1122......")
	link(t, f, 0, 19, ConnectRight|Garbage)
	link(t, f, 1, 19, ConnectLeft|Garbage)
	f.SetCell(4, 19, Cell{Color: ColorGray, Flags: Visible | Wall, Hard: 3})
	f.SetCell(2, -1, NewCell(ColorGemGreen, Visible|Bone))

	s := f.AttrString()
	assert.NotContains(t, s[len(s)-4:], "0/0;")

	g := NewDefault()
	require.NoError(t, g.ParseAttr(s))
	assert.True(t, g.Equal(f))
	assert.Equal(t, s, g.AttrString())
}

func TestAttrCellFormat(t *testing.T) {
	f := NewDefault()
	f.SetCell(0, 19, NewCell(ColorRed, Visible|Outline))
	assert.Equal(t, "2/3;", f.AttrString())

	g := NewDefault()
	require.NoError(t, g.ParseAttr("0/7;2/3;"))
	assert.True(t, g.IsFreeAt(0, 19))
	assert.Equal(t, ColorRed, g.Color(1, 19))

	assert.Error(t, g.ParseAttr("2;"))
	assert.Error(t, g.ParseAttr("zz/1;"))
	require.NoError(t, g.ParseAttr(""))
	assert.True(t, g.IsEmpty())
}

func TestAttrTrimKeepsSquareCells(t *testing.T) {
	for _, c := range []Color{ColorSquareGold1, ColorSquareSilver1, ColorSquareSilver1 + 5} {
		f := NewDefault()
		f.SetCell(3, 19, Cell{Color: c})

		s := f.AttrString()
		require.NotEmpty(t, s, "color %d", c)

		g := NewDefault()
		require.NoError(t, g.ParseAttr(s), "color %d: %q", c, s)
		assert.True(t, g.Equal(f), "color %d: %q", c, s)
	}

	f := NewDefault()
	f.SetCell(0, 19, Cell{Color: ColorSquareGold1, Flags: Visible})
	assert.Equal(t, "10/1;", f.AttrString())
}

func TestParseRejectsUnknownColor(t *testing.T) {
	f := NewDefault()
	before := f.Clone()

	assert.Error(t, f.Parse("z"))
	assert.True(t, f.Equal(before))

	require.NoError(t, f.Parse("y"))
	assert.Equal(t, ColorGemRainbow, f.Color(0, 19))
}
