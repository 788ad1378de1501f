// Package field implements the playfield of a falling-block game: a grid of
// cells with hidden rows above the visible area, and every algorithm that
// answers "given this grid, what can be cleared, settled or detected".
//
// Rows are addressed from -HiddenHeight (topmost hidden row) to Height-1
// (bottom row); row 0 is the topmost visible row. Queries outside that range
// return sentinels and writes outside it fail without touching state.
package field

import (
	"io"

	"github.com/charmbracelet/log"
)

// Default dimensions.
const (
	DefaultWidth        = 10
	DefaultHeight       = 20
	DefaultHiddenHeight = 3
)

// Coord classifies a coordinate.
type Coord int

const (
	CoordNormal Coord = iota // visible area
	CoordHidden              // rows above the visible area
	CoordVanish              // above the hidden rows; blocks placed here are lost
	CoordWall                // outside the field on the sides, below, or under a ceiling
)

func (c Coord) String() string {
	switch c {
	case CoordNormal:
		return "normal"
	case CoordHidden:
		return "hidden"
	case CoordVanish:
		return "vanish"
	case CoordWall:
		return "wall"
	default:
		return "unknown"
	}
}

var logger = log.New(io.Discard)

// SetLogger sets the logger used to report recovered write faults.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Field is the game board.
type Field struct {
	width   int
	height  int
	hidden  int
	ceiling bool
	hurryup int // wall rows pushed in at the bottom

	cells     []Cell // (y+hidden)*width + x
	lineFlags []bool // y+hidden

	// Results of the last detection pass.
	LastLines         []int   // rows found by CheckLines, top to bottom
	LastSplit         bool    // a surviving row sits between two cleared rows
	GarbageCleared    int     // cleared rows (or absorbed cells) holding garbage
	ColorsCleared     int     // distinct colors erased by CheckColor
	ColorClearExtra   int     // cells beyond the minimum cluster size
	GemsCleared       int     // gems flagged by CheckLineColor
	LineColorsCleared []Color // colors whose run was exactly the minimum length
}

// New creates a field. A ceiling turns the hidden rows into wall.
func New(width, height, hidden int, ceiling bool) *Field {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if hidden < 0 {
		hidden = 0
	}
	f := &Field{
		width:   width,
		height:  height,
		hidden:  hidden,
		ceiling: ceiling,
	}
	f.Reset()
	return f
}

// NewDefault creates a 10×20 field with 3 hidden rows and no ceiling.
func NewDefault() *Field {
	return New(DefaultWidth, DefaultHeight, DefaultHiddenHeight, false)
}

// Reset empties the grid and forgets every detection result.
func (f *Field) Reset() {
	f.cells = make([]Cell, f.width*(f.height+f.hidden))
	f.lineFlags = make([]bool, f.height+f.hidden)
	f.hurryup = 0
	f.resetResults()
}

func (f *Field) resetResults() {
	f.LastLines = nil
	f.LastSplit = false
	f.GarbageCleared = 0
	f.ColorsCleared = 0
	f.ColorClearExtra = 0
	f.GemsCleared = 0
	f.LineColorsCleared = nil
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	c := *f
	c.cells = make([]Cell, len(f.cells))
	copy(c.cells, f.cells)
	c.lineFlags = make([]bool, len(f.lineFlags))
	copy(c.lineFlags, f.lineFlags)
	c.LastLines = append([]int(nil), f.LastLines...)
	c.LineColorsCleared = append([]Color(nil), f.LineColorsCleared...)
	return &c
}

// Copy overwrites f with the cells and line flags of src. Both fields must
// have the same dimensions; it reports false and changes nothing otherwise.
func (f *Field) Copy(src *Field) bool {
	if f.width != src.width || f.height != src.height || f.hidden != src.hidden {
		return false
	}
	copy(f.cells, src.cells)
	copy(f.lineFlags, src.lineFlags)
	f.hurryup = src.hurryup
	f.resetResults()
	return true
}

// Equal returns true if two fields have the same dimensions and cells.
func (f *Field) Equal(other *Field) bool {
	if f.width != other.width || f.height != other.height || f.hidden != other.hidden {
		return false
	}
	for i, c := range f.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.width }

// Height returns the number of visible rows.
func (f *Field) Height() int { return f.height }

// HiddenHeight returns the number of rows above the visible area.
func (f *Field) HiddenHeight() int { return f.hidden }

// Ceiling reports whether the hidden rows are walled off.
func (f *Field) Ceiling() bool { return f.ceiling }

// HurryupLines returns the number of wall rows at the bottom.
func (f *Field) HurryupLines() int { return f.hurryup }

// top is the first addressable row.
func (f *Field) top() int {
	if f.ceiling {
		return 0
	}
	return -f.hidden
}

// bottom is one past the last row that takes part in clears and gravity.
func (f *Field) bottom() int {
	return f.height - f.hurryup
}

// Coord classifies the coordinate (x, y).
func (f *Field) Coord(x, y int) Coord {
	switch {
	case y < 0 && f.ceiling:
		return CoordWall
	case x < 0 || x >= f.width || y >= f.height:
		return CoordWall
	case y >= 0:
		return CoordNormal
	case -y-1 < f.hidden:
		return CoordHidden
	default:
		return CoordVanish
	}
}

// Valid reports whether a block can be stored at (x, y).
func (f *Field) Valid(x, y int) bool {
	c := f.Coord(x, y)
	return c == CoordNormal || c == CoordHidden
}

func (f *Field) index(x, y int) int {
	return (y+f.hidden)*f.width + x
}

// at returns a pointer to the stored cell, or nil outside the field.
func (f *Field) at(x, y int) *Cell {
	if !f.Valid(x, y) {
		return nil
	}
	return &f.cells[f.index(x, y)]
}

// Cell returns the cell at (x, y). Out-of-range coordinates read as empty.
func (f *Field) Cell(x, y int) Cell {
	if c := f.at(x, y); c != nil {
		return *c
	}
	return Empty()
}

// SetCell stores c at (x, y). It returns false, with no state change,
// when the coordinate is not addressable or the write faults.
func (f *Field) SetCell(x, y int, c Cell) (ok bool) {
	if !f.Valid(x, y) {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error("cell write failed", "x", x, "y", y, "fault", r)
			ok = false
		}
	}()
	f.cells[f.index(x, y)] = c
	return true
}

// Color returns the color at (x, y), or ColorInvalid outside the field.
func (f *Field) Color(x, y int) Color {
	return f.colorAt(x, y, false)
}

func (f *Field) colorAt(x, y int, gemSame bool) Color {
	c := f.at(x, y)
	if c == nil {
		return ColorInvalid
	}
	return c.colorFor(gemSame)
}

// SetColor recolors the cell at (x, y). Coloring an empty slot creates a
// plain block; ColorNone empties the slot.
func (f *Field) SetColor(x, y int, color Color) bool {
	c := f.at(x, y)
	if c == nil {
		return false
	}
	switch {
	case color <= ColorNone:
		return f.SetCell(x, y, Empty())
	case c.IsEmpty():
		return f.SetCell(x, y, NewCell(color, Visible|Outline))
	default:
		c.Color = color
		return true
	}
}

// IsEmptyAt reports whether (x, y) holds no block. Out-of-range coordinates
// count as empty.
func (f *Field) IsEmptyAt(x, y int) bool {
	c := f.at(x, y)
	return c == nil || c.IsEmpty()
}

// IsFreeAt reports whether (x, y) is inside the field and holds no block.
func (f *Field) IsFreeAt(x, y int) bool {
	c := f.at(x, y)
	return c != nil && c.IsEmpty()
}

// LineFlag reports whether row y is marked for clearing.
func (f *Field) LineFlag(y int) bool {
	i := y + f.hidden
	if i < 0 || i >= len(f.lineFlags) {
		return false
	}
	return f.lineFlags[i]
}

// SetLineFlag marks or unmarks row y. It returns false for rows outside the field.
func (f *Field) SetLineFlag(y int, v bool) bool {
	i := y + f.hidden
	if i < 0 || i >= len(f.lineFlags) {
		return false
	}
	f.lineFlags[i] = v
	return true
}

// FlaggedLines returns the number of rows marked for clearing.
func (f *Field) FlaggedLines() int {
	n := 0
	for y := f.top(); y < f.bottom(); y++ {
		if f.LineFlag(y) {
			n++
		}
	}
	return n
}

// SetAllFlags sets (on=true) or clears the given flags on every occupied cell.
func (f *Field) SetAllFlags(mask Flags, on bool) {
	for i := range f.cells {
		switch {
		case !on:
			f.cells[i].Flags.Clear(mask)
		case !f.cells[i].IsEmpty():
			f.cells[i].Flags.Set(mask)
		}
	}
}

// BlockCount returns the number of occupied cells.
func (f *Field) BlockCount() int {
	n := 0
	for _, c := range f.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// IsEmpty reports whether the field holds no blocks.
func (f *Field) IsEmpty() bool {
	return f.BlockCount() == 0
}

func (f *Field) row(y int) []Cell {
	i := f.index(0, y)
	return f.cells[i : i+f.width]
}

func (f *Field) copyRow(dst, src int) {
	copy(f.row(dst), f.row(src))
	f.SetLineFlag(dst, f.LineFlag(src))
}

func (f *Field) emptyRow(y int) {
	r := f.row(y)
	for i := range r {
		r[i] = Empty()
	}
	f.SetLineFlag(y, false)
}
