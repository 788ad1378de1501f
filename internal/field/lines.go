package field

// FullLines returns the rows, top to bottom, in which every column holds a
// block and none of them is wall. The field is not modified.
func (f *Field) FullLines() []int {
	var lines []int
	for y := f.top(); y < f.bottom(); y++ {
		if f.isFullRow(y) {
			lines = append(lines, y)
		}
	}
	return lines
}

func (f *Field) isFullRow(y int) bool {
	if f.width == 0 {
		return false
	}
	for _, c := range f.row(y) {
		if c.IsEmpty() || c.Flags.Has(Wall) {
			return false
		}
	}
	return true
}

func (f *Field) rowHasGarbage(y int) bool {
	for _, c := range f.row(y) {
		if !c.IsEmpty() && c.Flags.Has(Garbage) {
			return true
		}
	}
	return false
}

// CheckLines marks every full row for clearing, flags its cells Erase and
// records LastLines, LastSplit and GarbageCleared. It returns the row count.
func (f *Field) CheckLines() int {
	lines := f.FullLines()
	f.LastLines = lines
	f.LastSplit = false
	f.GarbageCleared = 0
	if len(lines) == 0 {
		for y := f.top(); y < f.bottom(); y++ {
			f.SetLineFlag(y, false)
		}
		return 0
	}

	full := make(map[int]bool, len(lines))
	for _, y := range lines {
		full[y] = true
		if f.rowHasGarbage(y) {
			f.GarbageCleared++
		}
	}

	gap := false
	for y := f.top(); y < f.bottom(); y++ {
		f.SetLineFlag(y, full[y])
		if full[y] {
			if gap {
				f.LastSplit = true
			}
			r := f.row(y)
			for i := range r {
				r[i].Flags.Set(Erase)
			}
		} else if y >= lines[0] {
			gap = true
		}
	}
	return len(lines)
}

// ClearLines removes the contents of every full row. Cells with a hit-counter
// lose one hit instead and keep their row from being shifted away. Vertical
// links into the neighbouring rows are severed and the groups they belonged
// to are marked Broken. It returns the number of rows processed.
func (f *Field) ClearLines() int {
	lines := f.FullLines()
	for _, y := range lines {
		r := f.row(y)
		for i := range r {
			if r[i].Hard > 0 {
				r[i].Hard--
				r[i].Flags.Clear(Erase)
				f.SetLineFlag(y, false)
			} else {
				r[i] = Empty()
			}
		}
		f.severRow(y)
	}
	return len(lines)
}

// severRow cuts the links pointing into row y from the rows around it.
func (f *Field) severRow(y int) {
	for x := 0; x < f.width; x++ {
		if below := f.at(x, y+1); below != nil && below.Flags.Has(ConnectUp) {
			below.Flags.Clear(ConnectUp)
			f.BreakLinks(x, y+1)
		}
		if above := f.at(x, y-1); above != nil && above.Flags.Has(ConnectDown) {
			above.Flags.Clear(ConnectDown)
			f.BreakLinks(x, y-1)
		}
	}
}

// ShiftDownCleared moves everything above each marked row down by one and
// empties the topmost row, once per marked row. It returns the number of rows
// removed.
func (f *Field) ShiftDownCleared() int {
	lines := 0
	y := f.bottom() - 1
	for i := f.top(); i < f.bottom(); i++ {
		if f.LineFlag(y) {
			lines++
			f.collapseInto(y)
		} else {
			y--
		}
	}
	return lines
}

// ShiftDownOne removes only the lowest marked row. It returns false when no
// row is marked.
func (f *Field) ShiftDownOne() bool {
	for y := f.bottom() - 1; y >= f.top(); y-- {
		if f.LineFlag(y) {
			f.collapseInto(y)
			return true
		}
	}
	return false
}

// collapseInto drops every row above y by one, overwriting y.
func (f *Field) collapseInto(y int) {
	for k := y; k > f.top(); k-- {
		f.copyRow(k, k-1)
	}
	f.emptyRow(f.top())
}

// PushUp raises the whole field by n rows, discarding the topmost rows and
// leaving empty rows at the bottom.
func (f *Field) PushUp(n int) {
	for ; n > 0; n-- {
		for y := f.top(); y < f.bottom()-1; y++ {
			f.copyRow(y, y+1)
		}
		f.emptyRow(f.bottom() - 1)
	}
}

// PushDown lowers the whole field by n rows, discarding the bottom rows.
func (f *Field) PushDown(n int) {
	for ; n > 0; n-- {
		f.collapseInto(f.bottom() - 1)
	}
}

// CutLine removes n rows ending at row y and drops everything above.
func (f *Field) CutLine(y, n int) {
	if y < f.top() || y >= f.height {
		return
	}
	for ; n > 0; n-- {
		f.collapseInto(y)
	}
}

// DeleteLine strips the hit-counters from row y and marks it for clearing.
func (f *Field) DeleteLine(y int) {
	if y < f.top() || y >= f.height {
		return
	}
	r := f.row(y)
	for i := range r {
		r[i].Hard = 0
	}
	f.SetLineFlag(y, true)
}

// IsEmptyLine reports whether row y holds no blocks.
func (f *Field) IsEmptyLine(y int) bool {
	for x := 0; x < f.width; x++ {
		if !f.IsEmptyAt(x, y) {
			return false
		}
	}
	return true
}

// HighestBlockY returns the topmost row holding a block, or Height when
// the field is empty.
func (f *Field) HighestBlockY() int {
	for y := f.top(); y < f.height; y++ {
		if !f.IsEmptyLine(y) {
			return y
		}
	}
	return f.height
}

// HighestBlockYAt returns the topmost unmarked row holding a block in column x,
// or Height when the column is empty.
func (f *Field) HighestBlockYAt(x int) int {
	for y := f.top(); y < f.bottom(); y++ {
		if !f.LineFlag(y) && !f.IsEmptyAt(x, y) {
			return y
		}
	}
	return f.height
}

// IsHoleBelow reports whether (x, y) holds a block with an empty slot under it.
func (f *Field) IsHoleBelow(x, y int) bool {
	return !f.IsEmptyAt(x, y) && f.IsEmptyAt(x, y+1)
}

// ValleyDepth returns how many rows of column x are empty while both
// neighbours (or the walls) are filled.
func (f *Field) ValleyDepth(x int) int {
	highest := min(f.HighestBlockYAt(x-1), f.HighestBlockYAt(x), f.HighestBlockYAt(x+1))
	depth := 0
	for y := highest; y < f.bottom(); y++ {
		if f.LineFlag(y) {
			continue
		}
		left := x <= 0 || !f.IsFreeAt(x-1, y)
		right := x >= f.width-1 || !f.IsFreeAt(x+1, y)
		if left && right && f.IsFreeAt(x, y) {
			depth++
		}
	}
	return depth
}

// GarbageLines returns the number of marked rows that contain garbage.
func (f *Field) GarbageLines() int {
	n := 0
	for y := f.top(); y < f.bottom(); y++ {
		if f.LineFlag(y) && f.rowHasGarbage(y) {
			n++
		}
	}
	return n
}

// AddHurryupFloor pushes n wall rows in from the bottom. A negative n removes
// up to -n of them again.
func (f *Field) AddHurryupFloor(n int) {
	if n < 0 {
		n = min(-n, f.hurryup)
		for ; n > 0; n-- {
			f.hurryup--
			for k := f.height - 1; k > f.top(); k-- {
				f.copyRow(k, k-1)
			}
			f.emptyRow(f.top())
		}
		return
	}
	for ; n > 0 && f.hurryup < f.height; n-- {
		f.PushUp(1)
		r := f.row(f.bottom() - 1)
		for i := range r {
			r[i] = NewCell(ColorGray, Wall|Garbage|Visible)
		}
		f.hurryup++
	}
}
