package field

import "strconv"

// Color is a cell's color code. Zero means no block; negative values are
// sentinels returned by out-of-range queries.
type Color int

const (
	ColorInvalid Color = -1
	ColorNone    Color = 0

	ColorGray Color = iota - 1
	ColorRed
	ColorOrange
	ColorYellow
	ColorGreen
	ColorCyan
	ColorBlue
	ColorPurple

	ColorGemRed
	ColorGemOrange
	ColorGemYellow
	ColorGemGreen
	ColorGemCyan
	ColorGemBlue
	ColorGemPurple

	// Gold and silver squares use nine indexed tiles each:
	// corners, edges and the interior of a 4×4 window.
	ColorSquareGold1
	colorSquareGoldLast = ColorSquareGold1 + 8

	ColorSquareSilver1    = colorSquareGoldLast + 1
	colorSquareSilverLast = ColorSquareSilver1 + 8

	// ColorGemRainbow marks an ignited bomb.
	ColorGemRainbow = colorSquareSilverLast + 1
)

// IsGem reports whether the color is a gem, including an ignited one.
func (c Color) IsGem() bool {
	return (c >= ColorGemRed && c <= ColorGemPurple) || c == ColorGemRainbow
}

// Normal maps a gem color to its plain counterpart. Other colors are returned as is.
func (c Color) Normal() Color {
	if c >= ColorGemRed && c <= ColorGemPurple {
		return c - (ColorGemRed - ColorRed)
	}
	return c
}

// Gem maps a plain color to its gem counterpart. Other colors are returned as is.
func (c Color) Gem() Color {
	if c >= ColorRed && c <= ColorPurple {
		return c + (ColorGemRed - ColorRed)
	}
	return c
}

func (c Color) String() string {
	switch {
	case c == ColorInvalid:
		return "invalid"
	case c == ColorNone:
		return "none"
	default:
		return strconv.Itoa(int(c))
	}
}

// Flags is a set of per-cell attributes. Several flags can be tested,
// set or cleared in one call by combining them with |.
type Flags uint32

const (
	Visible Flags = 1 << iota
	Outline
	Bone
	ConnectUp
	ConnectDown
	ConnectLeft
	ConnectRight
	SelfPlaced
	Broken
	Garbage
	Wall
	Erase
	Antigravity
	IgnoreLink
	TempMark
	CascadeFall
	LastCommit

	ConnectAll = ConnectUp | ConnectDown | ConnectLeft | ConnectRight
)

// Has reports whether every flag in mask is set.
func (f Flags) Has(mask Flags) bool {
	return f&mask == mask
}

// Any reports whether at least one flag in mask is set.
func (f Flags) Any(mask Flags) bool {
	return f&mask != 0
}

// With returns f with every flag in mask set.
func (f Flags) With(mask Flags) Flags {
	return f | mask
}

// Without returns f with every flag in mask cleared.
func (f Flags) Without(mask Flags) Flags {
	return f &^ mask
}

// Set sets every flag in mask.
func (f *Flags) Set(mask Flags) {
	*f |= mask
}

// Clear clears every flag in mask.
func (f *Flags) Clear(mask Flags) {
	*f &^= mask
}

// Cell is the content of one grid slot. The zero value is the empty cell.
// Cells are stored by value, so copying a Field never aliases cell state.
type Cell struct {
	Color Color
	Flags Flags
	Hard  int // clear passes the cell survives before it is removed
}

// Empty returns the empty cell.
func Empty() Cell {
	return Cell{}
}

// NewCell creates an occupied cell.
func NewCell(c Color, flags Flags) Cell {
	return Cell{Color: c, Flags: flags}
}

// IsEmpty reports whether the slot holds no block.
func (c Cell) IsEmpty() bool {
	return c.Color <= ColorNone
}

// IsGem reports whether the cell is a gem or an ignited bomb.
func (c Cell) IsGem() bool {
	return c.Color.IsGem()
}

// IsNormal reports whether the cell is a plain colored block.
func (c Cell) IsNormal() bool {
	return c.Color >= ColorGray && c.Color <= ColorPurple
}

// IsGoldSquare reports whether the cell belongs to a gold square.
func (c Cell) IsGoldSquare() bool {
	return c.Color >= ColorSquareGold1 && c.Color <= colorSquareGoldLast
}

// IsSilverSquare reports whether the cell belongs to a silver square.
func (c Cell) IsSilverSquare() bool {
	return c.Color >= ColorSquareSilver1 && c.Color <= colorSquareSilverLast
}

func (c Cell) colorFor(gemSame bool) Color {
	if c.IsEmpty() {
		return ColorNone
	}
	if gemSame {
		return c.Color.Normal()
	}
	return c.Color
}
