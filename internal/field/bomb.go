package field

import "github.com/vovakirdan/blockfall/internal/core"

// GemMode selects what ClearProceed does with gems caught in a clear.
type GemMode int

const (
	GemNone  GemMode = iota // gems clear like any other block
	GemBomb                 // gems become ignited bombs
	GemSpark                // gems become ignited sparks
)

// CheckBombOnLine counts the gems sitting in full rows and marks those rows.
// With ignite the gems become ignited bombs flagged Erase.
func (f *Field) CheckBombOnLine(ignite bool) int {
	total := 0
	for y := f.top(); y < f.bottom(); y++ {
		var gems []int
		full := f.width > 0
		for x, c := range f.row(y) {
			if c.IsEmpty() {
				full = false
				break
			}
			if c.IsGem() {
				gems = append(gems, x)
			}
		}
		if !full {
			gems = nil
		}
		f.SetLineFlag(y, len(gems) > 0)
		total += len(gems)
		if !ignite {
			continue
		}
		for _, x := range gems {
			c := f.at(x, y)
			c.Color = ColorGemRainbow
			c.Flags.Set(Erase)
		}
	}
	return total
}

// CountIgnited returns the number of ignited bombs waiting to detonate.
func (f *Field) CountIgnited() int {
	n := 0
	for _, c := range f.cells {
		if c.Color == ColorGemRainbow && c.Flags.Has(Erase) {
			n++
		}
	}
	return n
}

// IgniteBombs detonates every ignited bomb, flagging Erase on each occupied
// cell within w columns and h rows of it (bigW / bigH for bombs flagged
// IgnoreLink). Each cell is counted once however many blasts reach it.
// It returns the number of newly flagged cells.
func (f *Field) IgniteBombs(w, h, bigW, bigH int) int {
	bounds := core.NewRect(0, f.top(), f.width, f.bottom()-f.top())
	total := 0
	for y := f.top(); y < f.bottom(); y++ {
		for x := 0; x < f.width; x++ {
			c := f.Cell(x, y)
			if c.Color != ColorGemRainbow || !c.Flags.Has(Erase) {
				continue
			}
			bw, bh := w, h
			if c.Flags.Has(IgnoreLink) {
				bw, bh = bigW, bigH
			}
			total += f.detonate(core.Span(x-bw, y-bh, x+bw, y+bh).Intersect(bounds))
			f.SetLineFlag(y, false)
		}
	}
	return total
}

func (f *Field) detonate(blast core.Rect) int {
	n := 0
	for y := blast.Y; y < blast.Bottom(); y++ {
		for x := blast.X; x < blast.Right(); x++ {
			c := f.at(x, y)
			if c == nil || c.IsEmpty() || c.Flags.Has(Erase) {
				continue
			}
			c.Flags.Set(Erase)
			n++
		}
	}
	return n
}

// ClearProceed removes every cell flagged Erase. Cells with a hit-counter lose
// a hit instead. Links from neighbours into removed cells are cut and those
// neighbours marked Broken. Under a gem mode, gems caught in the clear become
// ignited bombs rather than disappearing. It returns the number of cells
// removed or ignited.
func (f *Field) ClearProceed(mode GemMode) int {
	total := 0
	for y := f.top(); y < f.bottom(); y++ {
		for x := 0; x < f.width; x++ {
			c := f.at(x, y)
			if c.IsEmpty() || !c.Flags.Has(Erase) {
				continue
			}
			if c.Hard > 0 {
				c.Hard--
				c.Flags.Clear(Erase)
				continue
			}
			total++
			f.cutNeighbour(x, y+1, c.Flags.Has(ConnectDown), ConnectUp)
			f.cutNeighbour(x, y-1, c.Flags.Has(ConnectUp), ConnectDown)
			f.cutNeighbour(x-1, y, c.Flags.Has(ConnectLeft), ConnectRight)
			f.cutNeighbour(x+1, y, c.Flags.Has(ConnectRight), ConnectLeft)

			if mode != GemNone && c.IsGem() && c.Color != ColorGemRainbow {
				c.Color = ColorGemRainbow
				c.Flags.Clear(ConnectAll)
				continue
			}
			*c = Empty()
		}
	}
	return total
}

func (f *Field) cutNeighbour(x, y int, linked bool, back Flags) {
	if !linked {
		return
	}
	if n := f.at(x, y); n != nil && !n.IsEmpty() {
		n.Flags.Clear(back)
		n.Flags.Set(Broken)
	}
}
