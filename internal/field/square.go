package field

var (
	squareTileX = [4]Color{0, 1, 1, 2}
	squareTileY = [4]Color{0, 3, 3, 6}
)

// CheckSquares converts every 4×4 window of linked, unbroken, non-garbage
// blocks into a square. Gold squares need a single color; silver squares
// accept any mix of colors. Windows whose edge cells link outward are
// rejected. Gold runs first, then silver, each as a full-field pass.
func (f *Field) CheckSquares() (gold, silver int) {
	for y := f.top(); y < f.bottom()-3; y++ {
		for x := 0; x < f.width-3; x++ {
			if f.isSquareWindow(x, y, true) {
				f.makeSquare(x, y, ColorSquareGold1)
				gold++
			}
		}
	}
	for y := f.top(); y < f.bottom()-3; y++ {
		for x := 0; x < f.width-3; x++ {
			if f.isSquareWindow(x, y, false) {
				f.makeSquare(x, y, ColorSquareSilver1)
				silver++
			}
		}
	}
	return gold, silver
}

func (f *Field) isSquareWindow(x, y int, sameColor bool) bool {
	root := f.Cell(x, y)
	if root.IsEmpty() || root.IsGoldSquare() || root.IsSilverSquare() {
		return false
	}
	for k := 0; k < 4; k++ {
		for l := 0; l < 4; l++ {
			c := f.Cell(x+l, y+k)
			switch {
			case c.IsEmpty(), c.IsGoldSquare(), c.IsSilverSquare():
				return false
			case c.Flags.Any(Broken | Garbage):
				return false
			case sameColor && c.Color != root.Color:
				return false
			case l == 0 && c.Flags.Has(ConnectLeft),
				l == 3 && c.Flags.Has(ConnectRight),
				k == 0 && c.Flags.Has(ConnectUp),
				k == 3 && c.Flags.Has(ConnectDown):
				return false
			}
		}
	}
	return true
}

func (f *Field) makeSquare(x, y int, base Color) {
	for k := 0; k < 4; k++ {
		for l := 0; l < 4; l++ {
			c := f.at(x+l, y+k)
			c.Color = base + squareTileX[l] + squareTileY[k]
			if k > 0 {
				c.Flags.Set(ConnectUp)
			}
			if k < 3 {
				c.Flags.Set(ConnectDown)
			}
			if l > 0 {
				c.Flags.Set(ConnectLeft)
			}
			if l < 3 {
				c.Flags.Set(ConnectRight)
			}
		}
	}
}

// SquareClears counts the 1×4 square strips inside rows marked for clearing.
// Garbage cells do not count.
func (f *Field) SquareClears() (gold, silver int) {
	for y := f.top(); y < f.bottom(); y++ {
		if !f.LineFlag(y) {
			continue
		}
		for _, c := range f.row(y) {
			if c.Flags.Has(Garbage) {
				continue
			}
			if c.IsGoldSquare() {
				gold++
			} else if c.IsSilverSquare() {
				silver++
			}
		}
	}
	return gold / 4, silver / 4
}
