// Package piece provides the standard falling-piece geometry: tetrominoes
// plus the small one, two and three block pieces, in four orientations.
package piece

import (
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/field"
)

// Piece identifiers.
const (
	I = iota
	L
	O
	Z
	T
	J
	S
	I1
	I2
	I3
	L3

	Count
)

// Orientations. Rotating clockwise adds one.
const (
	Up = iota
	Right
	Down
	Left

	DirCount
)

type shape struct {
	name   string
	size   int // side of the rotation box
	color  field.Color
	blocks []field.Point // Up orientation
}

var shapes = [Count]shape{
	I:  {"I", 4, field.ColorCyan, pts(0, 1, 1, 1, 2, 1, 3, 1)},
	L:  {"L", 3, field.ColorOrange, pts(2, 0, 0, 1, 1, 1, 2, 1)},
	O:  {"O", 2, field.ColorYellow, pts(0, 0, 1, 0, 0, 1, 1, 1)},
	Z:  {"Z", 3, field.ColorRed, pts(0, 0, 1, 0, 1, 1, 2, 1)},
	T:  {"T", 3, field.ColorPurple, pts(1, 0, 0, 1, 1, 1, 2, 1)},
	J:  {"J", 3, field.ColorBlue, pts(0, 0, 0, 1, 1, 1, 2, 1)},
	S:  {"S", 3, field.ColorGreen, pts(1, 0, 2, 0, 0, 1, 1, 1)},
	I1: {"I1", 1, field.ColorPurple, pts(0, 0)},
	I2: {"I2", 2, field.ColorBlue, pts(0, 0, 1, 0)},
	I3: {"I3", 3, field.ColorGreen, pts(0, 1, 1, 1, 2, 1)},
	L3: {"L3", 2, field.ColorOrange, pts(0, 0, 0, 1, 1, 1)},
}

func pts(xy ...int) []field.Point {
	out := make([]field.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, field.P(xy[i], xy[i+1]))
	}
	return out
}

// rotations holds every shape in all four orientations, rotated clockwise
// inside its box.
var rotations [Count][DirCount][]field.Point

func init() {
	for id, s := range shapes {
		cur := s.blocks
		for d := 0; d < DirCount; d++ {
			rotations[id][d] = cur
			next := make([]field.Point, len(cur))
			for i, p := range cur {
				next[i] = field.P(s.size-1-p.Y, p.X)
			}
			cur = next
		}
	}
}

// Name returns the short name of a piece ID.
func Name(id int) string {
	if id < 0 || id >= Count {
		return "?"
	}
	return shapes[id].name
}

// Valid reports whether id names a known piece.
func Valid(id int) bool {
	return id >= 0 && id < Count
}

// Piece is one falling piece: an ID, an orientation and a block color.
type Piece struct {
	id    int
	dir   int
	big   bool
	color field.Color
}

// New creates a piece facing Up. Unknown IDs yield an I piece.
func New(id int) *Piece {
	if !Valid(id) {
		id = I
	}
	return &Piece{id: id, color: shapes[id].color}
}

func (p *Piece) ID() int                { return p.id }
func (p *Piece) Dir() int               { return p.dir }
func (p *Piece) Big() bool              { return p.big }
func (p *Piece) SetBig(big bool)        { p.big = big }
func (p *Piece) Color() field.Color     { return p.color }
func (p *Piece) SetColor(c field.Color) { p.color = c }

// SetDir sets the orientation, wrapping out-of-range values.
func (p *Piece) SetDir(dir int) {
	p.dir = wrap(dir)
}

// Clone returns an independent copy.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}

func (p *Piece) String() string {
	return Name(p.id)
}

// Blocks returns the occupied offsets at an orientation. Big pieces are
// doubled in both directions.
func (p *Piece) Blocks(dir int) []field.Point {
	base := rotations[p.id][wrap(dir)]
	if !p.big {
		out := make([]field.Point, len(base))
		copy(out, base)
		return out
	}
	out := make([]field.Point, 0, len(base)*4)
	for _, b := range base {
		for dy := 0; dy < 2; dy++ {
			for dx := 0; dx < 2; dx++ {
				out = append(out, field.P(b.X*2+dx, b.Y*2+dy))
			}
		}
	}
	return out
}

// Extents returns the bounding box of the blocks at an orientation,
// relative to the piece origin.
func (p *Piece) Extents(dir int) core.Rect {
	blocks := p.Blocks(dir)
	if len(blocks) == 0 {
		return core.Rect{}
	}
	x0, y0, x1, y1 := blocks[0].X, blocks[0].Y, blocks[0].X, blocks[0].Y
	for _, b := range blocks[1:] {
		x0, x1 = core.Min(x0, b.X), core.Max(x1, b.X)
		y0, y1 = core.Min(y0, b.Y), core.Max(y1, b.Y)
	}
	return core.Span(x0, y0, x1, y1)
}

// Collides reports whether the piece at (x, y) facing dir overlaps a block
// or a wall. Cells above the hidden rows never collide.
func (p *Piece) Collides(x, y, dir int, f *field.Field) bool {
	for _, b := range p.Blocks(dir) {
		bx, by := x+b.X, y+b.Y
		switch f.Coord(bx, by) {
		case field.CoordWall:
			return true
		case field.CoordVanish:
			continue
		}
		if !f.IsEmptyAt(bx, by) {
			return true
		}
	}
	return false
}

// Place stamps the piece into the field at its current orientation. With
// connect, adjacent blocks of the piece are linked to each other. It returns
// true when at least one block landed in the visible area.
func (p *Piece) Place(x, y int, f *field.Field, flags field.Flags, connect bool) bool {
	blocks := p.Blocks(p.dir)
	occupied := make(map[field.Point]bool, len(blocks))
	for _, b := range blocks {
		occupied[b] = true
	}

	visible := false
	for _, b := range blocks {
		fl := flags
		if connect {
			if occupied[field.P(b.X, b.Y-1)] {
				fl = fl.With(field.ConnectUp)
			}
			if occupied[field.P(b.X, b.Y+1)] {
				fl = fl.With(field.ConnectDown)
			}
			if occupied[field.P(b.X-1, b.Y)] {
				fl = fl.With(field.ConnectLeft)
			}
			if occupied[field.P(b.X+1, b.Y)] {
				fl = fl.With(field.ConnectRight)
			}
		}
		if f.SetCell(x+b.X, y+b.Y, field.NewCell(p.color, fl)) && y+b.Y >= 0 {
			visible = true
		}
	}
	return visible
}

func wrap(dir int) int {
	dir %= DirCount
	if dir < 0 {
		dir += DirCount
	}
	return dir
}
