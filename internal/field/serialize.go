package field

import (
	"fmt"
	"strconv"
	"strings"
)

// String encodes the field as one base-36 digit per cell holding its color.
// Rows run from the floor upwards, each left to right, and trailing empty
// cells are dropped. Attributes are not encoded.
func (f *Field) String() string {
	var b strings.Builder
	for y := f.height - 1; y >= f.top(); y-- {
		for _, c := range f.row(y) {
			col := c.Color
			if col < ColorNone {
				col = ColorNone
			}
			b.WriteString(strconv.FormatInt(int64(col), 36))
		}
	}
	return strings.TrimRight(b.String(), "0")
}

// Parse replaces the field contents with the layout encoded by String.
// Every parsed block is Visible and Outline. Cells past the end of s are
// empty. On error the field is left unchanged.
func (f *Field) Parse(s string) error {
	next := f.Clone()
	next.Reset()
	i := 0
	for y := f.height - 1; y >= f.top(); y-- {
		for x := 0; x < f.width; x, i = x+1, i+1 {
			if i >= len(s) {
				break
			}
			v, err := strconv.ParseInt(s[i:i+1], 36, 32)
			if err != nil {
				return fmt.Errorf("field: parse cell %d: %w", i, err)
			}
			if v > int64(ColorGemRainbow) {
				return fmt.Errorf("field: parse cell %d: color %d out of range", i, v)
			}
			if v > 0 {
				next.SetCell(x, y, NewCell(Color(v), Visible|Outline))
			}
		}
	}
	if i < len(s) {
		return fmt.Errorf("field: parse: %d cells do not fit a %dx%d field", len(s), f.width, f.height-f.top())
	}
	*f = *next
	return nil
}

const emptyAttrCell = "0/0"

// AttrString encodes every cell as "color/flags;" in hex, with a third
// "/hard" component when the cell carries hit-counters. Order and trimming
// follow String.
func (f *Field) AttrString() string {
	var cells []string
	for y := f.height - 1; y >= f.top(); y-- {
		for _, c := range f.row(y) {
			if c.IsEmpty() {
				cells = append(cells, emptyAttrCell)
				continue
			}
			cell := fmt.Sprintf("%x/%x", int(c.Color), uint32(c.Flags))
			if c.Hard != 0 {
				cell += fmt.Sprintf("/%x", c.Hard)
			}
			cells = append(cells, cell)
		}
	}
	n := len(cells)
	for n > 0 && cells[n-1] == emptyAttrCell {
		n--
	}
	if n == 0 {
		return ""
	}
	return strings.Join(cells[:n], ";") + ";"
}

// ParseAttr replaces the field contents with the layout encoded by
// AttrString. Attributes are restored exactly; a color of zero or below is an
// empty cell. On error the field is left unchanged.
func (f *Field) ParseAttr(s string) error {
	next := f.Clone()
	next.Reset()
	cells := strings.Split(strings.TrimSuffix(s, ";"), ";")
	if s == "" {
		cells = nil
	}
	i := 0
	for y := f.height - 1; y >= f.top(); y-- {
		for x := 0; x < f.width; x, i = x+1, i+1 {
			if i >= len(cells) {
				break
			}
			c, err := parseAttrCell(cells[i])
			if err != nil {
				return fmt.Errorf("field: parse attr cell %d: %w", i, err)
			}
			next.SetCell(x, y, c)
		}
	}
	if i < len(cells) {
		return fmt.Errorf("field: parse attr: %d cells do not fit a %dx%d field", len(cells), f.width, f.height-f.top())
	}
	*f = *next
	return nil
}

func parseAttrCell(s string) (Cell, error) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 || len(parts) > 3 {
		return Cell{}, fmt.Errorf("malformed cell %q", s)
	}
	color, err := strconv.ParseInt(parts[0], 16, 32)
	if err != nil {
		return Cell{}, err
	}
	flags, err := strconv.ParseUint(parts[1], 16, 32)
	if err != nil {
		return Cell{}, err
	}
	if color <= int64(ColorNone) {
		return Empty(), nil
	}
	c := Cell{Color: Color(color), Flags: Flags(flags)}
	if len(parts) == 3 {
		hard, err := strconv.ParseInt(parts[2], 16, 32)
		if err != nil {
			return Cell{}, err
		}
		c.Hard = int(hard)
	}
	return c, nil
}
