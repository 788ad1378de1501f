package piece

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/field"
)

func TestShapesRotateInsideTheirBox(t *testing.T) {
	for id := 0; id < Count; id++ {
		p := New(id)
		size := shapes[id].size
		for d := 0; d < DirCount; d++ {
			blocks := p.Blocks(d)
			assert.Len(t, blocks, len(shapes[id].blocks), "%s dir %d", Name(id), d)
			for _, b := range blocks {
				assert.True(t, b.X >= 0 && b.X < size && b.Y >= 0 && b.Y < size,
					"%s dir %d block %v outside %dx%d box", Name(id), d, b, size, size)
			}
		}
	}
}

func TestRotationOrientations(t *testing.T) {
	i := New(I)
	assert.Equal(t, core.Span(0, 1, 3, 1), i.Extents(Up))
	assert.Equal(t, core.Span(2, 0, 2, 3), i.Extents(Right))
	assert.Equal(t, core.Span(0, 2, 3, 2), i.Extents(Down))
	assert.Equal(t, core.Span(1, 0, 1, 3), i.Extents(Left))

	tp := New(T)
	assert.ElementsMatch(t, []field.Point{{X: 1, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 2}}, tp.Blocks(Right))

	o := New(O)
	for d := 0; d < DirCount; d++ {
		assert.ElementsMatch(t, o.Blocks(Up), o.Blocks(d))
	}
}

func TestSetDirWraps(t *testing.T) {
	p := New(L)
	p.SetDir(-1)
	assert.Equal(t, Left, p.Dir())
	p.SetDir(5)
	assert.Equal(t, Right, p.Dir())
}

func TestUnknownIDFallsBack(t *testing.T) {
	assert.Equal(t, I, New(99).ID())
	assert.Equal(t, "?", Name(-1))
	assert.Equal(t, "T", New(T).String())
}

func TestBigDoublesBlocks(t *testing.T) {
	p := New(O)
	p.SetBig(true)
	assert.Len(t, p.Blocks(Up), 16)
	assert.Equal(t, core.Span(0, 0, 3, 3), p.Extents(Up))
}

func TestCollides(t *testing.T) {
	f := field.New(10, 20, 3, false)
	p := New(I)

	assert.False(t, p.Collides(0, 0, Up, f))
	assert.True(t, p.Collides(7, 0, Up, f), "right wall")
	assert.True(t, p.Collides(-1, 0, Up, f), "left wall")
	assert.True(t, p.Collides(0, 19, Up, f), "floor")
	assert.False(t, p.Collides(0, -10, Up, f), "above the hidden rows")

	f.SetColor(2, 5, field.ColorGray)
	assert.True(t, p.Collides(0, 4, Up, f))
	assert.False(t, p.Collides(3, 4, Up, f))

	ceiling := field.New(10, 20, 3, true)
	assert.True(t, p.Collides(0, -2, Up, ceiling))
}

func TestPlace(t *testing.T) {
	f := field.New(10, 20, 3, false)
	p := New(T)

	require.True(t, p.Place(3, 18, f, field.Visible|field.SelfPlaced, true))
	assert.Equal(t, 4, f.BlockCount())

	center := f.Cell(4, 19)
	assert.Equal(t, field.ColorPurple, center.Color)
	assert.True(t, center.Flags.Has(field.Visible|field.SelfPlaced))
	assert.True(t, center.Flags.Has(field.ConnectUp|field.ConnectLeft|field.ConnectRight))
	assert.False(t, center.Flags.Has(field.ConnectDown))

	top := f.Cell(4, 18)
	assert.Equal(t, field.ConnectDown, top.Flags&field.ConnectAll)
}

func TestPlaceWithoutConnect(t *testing.T) {
	f := field.New(10, 20, 3, false)
	New(S).Place(0, 0, f, field.Visible, false)
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			assert.False(t, f.Cell(x, y).Flags.Any(field.ConnectAll))
		}
	}
}

func TestPlaceAboveVisibleArea(t *testing.T) {
	f := field.New(10, 20, 3, false)
	p := New(I)
	assert.False(t, p.Place(0, -3, f, field.Visible, true), "hidden rows only")
	assert.True(t, p.Place(0, -1, f, field.Visible, true), "lands on row 0")
}
