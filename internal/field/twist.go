package field

var (
	twistCorners    = [4]Point{{0, 0}, {2, 0}, {0, 2}, {2, 2}}
	twistCornersBig = [4]Point{{1, 1}, {4, 1}, {1, 4}, {4, 4}}
)

func (f *Field) occupiedCorners(x, y int, big bool) int {
	corners := twistCorners
	if big {
		corners = twistCornersBig
	}
	n := 0
	for _, p := range corners {
		if f.Color(x+p.X, y+p.Y) != ColorNone {
			n++
		}
	}
	return n
}

// IsTwistSpot reports whether at least three corners of the 3×3 box whose
// top-left is (x, y) are occupied or outside the field.
func (f *Field) IsTwistSpot(x, y int, big bool) bool {
	return f.occupiedCorners(x, y, big) >= 3
}

// IsTSlot reports whether the 3×3 box at (x, y) is an open slot a T piece
// could twist into: the center cross is free and exactly three corners are
// occupied.
func (f *Field) IsTSlot(x, y int, big bool) bool {
	if big {
		if !f.IsFreeAt(x+2, y+2) {
			return false
		}
	} else {
		for _, p := range []Point{{1, 0}, {1, 1}, {1, 2}, {0, 1}, {2, 1}, {1, -1}} {
			if !f.IsFreeAt(x+p.X, y+p.Y) {
				return false
			}
		}
	}
	return f.occupiedCorners(x, y, big) == 3
}

// TSlotCount returns the number of T slots on unmarked rows.
func (f *Field) TSlotCount(big bool) int {
	n := 0
	for x := 0; x < f.width; x++ {
		for y := 0; y < f.bottom()-2; y++ {
			if !f.LineFlag(y) && f.IsTSlot(x, y, big) {
				n++
			}
		}
	}
	return n
}

// TSlotLineClear returns how many rows a T piece filling the slot at (x, y)
// would complete, or 0 when (x, y) is not a slot.
func (f *Field) TSlotLineClear(x, y int, big bool) int {
	if !f.IsTSlot(x, y, big) {
		return 0
	}
	lines := 0
	for i := 0; i < 2; i++ {
		full := true
		for j := 0; j < f.width; j++ {
			if (j < x || j >= x+3) && f.IsFreeAt(j, y+1+i) {
				full = false
				break
			}
		}
		if full {
			lines++
		}
	}
	return lines
}

// TSlotLineClearAll sums TSlotLineClear over marked rows, counting only slots
// that clear at least minimum rows.
func (f *Field) TSlotLineClearAll(big bool, minimum int) int {
	total := 0
	for x := 0; x < f.width; x++ {
		for y := 0; y < f.bottom()-2; y++ {
			if !f.LineFlag(y) {
				continue
			}
			if n := f.TSlotLineClear(x, y, big); n >= minimum {
				total += n
			}
		}
	}
	return total
}
