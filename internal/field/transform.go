package field

// Whole-field transforms used by item effects. Each one works on the rows
// from the highest block down to the floor.

// Mirror reverses every row left to right.
func (f *Field) Mirror() {
	for y := f.HighestBlockY(); y < f.height; y++ {
		r := f.row(y)
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
	}
	f.fixHorizontalLinks()
}

// FlipVertical turns the occupied stack upside down.
func (f *Field) FlipVertical() {
	for lo, hi := f.HighestBlockY(), f.height-1; lo < hi; lo, hi = lo+1, hi-1 {
		a, b := f.row(lo), f.row(hi)
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
		fa, fb := f.LineFlag(lo), f.LineFlag(hi)
		f.SetLineFlag(lo, fb)
		f.SetLineFlag(hi, fa)
	}
	for i := range f.cells {
		c := &f.cells[i]
		up, down := c.Flags.Has(ConnectUp), c.Flags.Has(ConnectDown)
		c.Flags.Clear(ConnectUp | ConnectDown)
		if up {
			c.Flags.Set(ConnectDown)
		}
		if down {
			c.Flags.Set(ConnectUp)
		}
	}
}

// ShiftLeft packs the blocks of every row against the left wall.
func (f *Field) ShiftLeft() {
	for y := f.HighestBlockY(); y < f.height; y++ {
		f.packRow(y, false)
	}
}

// ShiftRight packs the blocks of every row against the right wall.
func (f *Field) ShiftRight() {
	for y := f.HighestBlockY(); y < f.height; y++ {
		f.packRow(y, true)
	}
}

func (f *Field) packRow(y int, right bool) {
	r := f.row(y)
	packed := make([]Cell, 0, len(r))
	for _, c := range r {
		if !c.IsEmpty() {
			c.Flags.Clear(ConnectLeft | ConnectRight)
			c.Flags.Set(Broken)
			packed = append(packed, c)
		}
	}
	for i := range r {
		r[i] = Empty()
	}
	off := 0
	if right {
		off = len(r) - len(packed)
	}
	copy(r[off:], packed)
}

// Negate swaps filled and empty cells. New blocks are broken garbage of the
// given color.
func (f *Field) Negate(color Color) {
	for y := f.HighestBlockY(); y < f.height; y++ {
		r := f.row(y)
		for i := range r {
			if r[i].IsEmpty() {
				r[i] = NewCell(color, Garbage|Broken|Visible)
			} else {
				r[i] = Empty()
			}
		}
	}
}

// DeleteEvenLines marks every even row that holds blocks for clearing.
func (f *Field) DeleteEvenLines() {
	for y := f.HighestBlockY(); y < f.height; y++ {
		if y%2 == 0 {
			f.DeleteLine(y)
		}
	}
}

// DeleteLowerHalf marks the lower half of the stack for clearing.
func (f *Field) DeleteLowerHalf() {
	rows := (f.height - f.HighestBlockY() + 1) / 2
	for i := 1; i <= rows; i++ {
		f.DeleteLine(f.height - i)
	}
}

// DeleteUpperHalf marks the upper half of the stack for clearing.
func (f *Field) DeleteUpperHalf() {
	top := f.HighestBlockY()
	rows := (f.height - top) / 2
	for y := top; y < top+rows; y++ {
		f.DeleteLine(y)
	}
}

// fixHorizontalLinks swaps left and right connections after a mirror.
func (f *Field) fixHorizontalLinks() {
	for i := range f.cells {
		c := &f.cells[i]
		l, r := c.Flags.Has(ConnectLeft), c.Flags.Has(ConnectRight)
		c.Flags.Clear(ConnectLeft | ConnectRight)
		if l {
			c.Flags.Set(ConnectRight)
		}
		if r {
			c.Flags.Set(ConnectLeft)
		}
	}
}
