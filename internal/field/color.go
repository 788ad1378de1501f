package field

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

type clusterOpts struct {
	gemSame      bool // gems match their plain color
	garbageClear bool // absorb garbage touching the cluster
	ignoreHidden bool // never walk into hidden rows
	skipErased   bool // cells already flagged Erase are not revisited
}

type cluster struct {
	members []Point
	garbage []Point
}

// seedColor returns the color a cluster grown from (x, y) would match, or
// ColorNone when the cell cannot seed a cluster.
func (f *Field) seedColor(x, y int, gemSame bool) Color {
	c := f.at(x, y)
	if c == nil || c.IsEmpty() || c.Flags.Has(Garbage) {
		return ColorNone
	}
	return c.colorFor(gemSame)
}

// cluster collects the 4-connected group of target color reachable from
// (x, y). Callers must reject ColorNone and ColorInvalid targets.
func (f *Field) cluster(x, y int, target Color, opt clusterOpts) cluster {
	var res cluster
	visited := make([]bool, len(f.cells))
	work := stack.New[Point]()
	work.Push(P(x, y))
	for work.Size() > 0 {
		p := work.Pop()
		if !f.Valid(p.X, p.Y) || (opt.ignoreHidden && p.Y < 0) {
			continue
		}
		i := f.index(p.X, p.Y)
		if visited[i] {
			continue
		}
		visited[i] = true

		c := f.cells[i]
		col := c.colorFor(opt.gemSame)
		if col <= ColorNone {
			continue
		}
		if opt.skipErased && c.Flags.Has(Erase) {
			continue
		}
		if col != target {
			if opt.garbageClear && c.Flags.Has(Garbage) && !c.Flags.Has(Wall) {
				res.garbage = append(res.garbage, p)
			}
			continue
		}
		res.members = append(res.members, p)
		work.Push(P(p.X+1, p.Y))
		work.Push(P(p.X-1, p.Y))
		work.Push(P(p.X, p.Y+1))
		work.Push(P(p.X, p.Y-1))
	}
	return res
}

// ClusterSize returns the size of the same-color group containing (x, y)
// without modifying the field. Empty, invalid and garbage seeds give 0.
func (f *Field) ClusterSize(x, y int, gemSame, ignoreHidden bool) int {
	if ignoreHidden && y < 0 {
		return 0
	}
	target := f.seedColor(x, y, gemSame)
	if target <= ColorNone {
		return 0
	}
	return len(f.cluster(x, y, target, clusterOpts{gemSame: gemSame, ignoreHidden: ignoreHidden}).members)
}

// ClearColorAt clears (or, with flag, marks Erase on) the same-color group
// containing (x, y) and, with garbageClear, the garbage touching it. It
// returns the group size. Empty, invalid and garbage seeds clear nothing.
func (f *Field) ClearColorAt(x, y int, flag, garbageClear, gemSame, ignoreHidden bool) int {
	if ignoreHidden && y < 0 {
		return 0
	}
	target := f.seedColor(x, y, gemSame)
	if target <= ColorNone {
		return 0
	}
	cl := f.cluster(x, y, target, clusterOpts{
		gemSame:      gemSame,
		garbageClear: garbageClear,
		ignoreHidden: ignoreHidden,
		skipErased:   flag,
	})
	f.applyCluster(cl, flag)
	return len(cl.members)
}

func (f *Field) applyCluster(cl cluster, flag bool) {
	for _, p := range cl.garbage {
		if flag {
			f.at(p.X, p.Y).Flags.Set(Erase)
			f.GarbageCleared++
		} else {
			f.hit(p)
		}
	}
	for _, p := range cl.members {
		if flag {
			f.at(p.X, p.Y).Flags.Set(Erase)
		} else {
			f.hit(p)
		}
	}
}

// hit removes one hit from the cell at p, emptying it when none remain.
func (f *Field) hit(p Point) {
	c := f.at(p.X, p.Y)
	if c == nil {
		return
	}
	if c.Hard > 0 {
		c.Hard--
		return
	}
	*c = Empty()
}

type colorPass struct {
	min      int
	flag     bool
	gemsOnly bool
	opt      clusterOpts
}

// runColorPass measures every cluster on a scratch copy, where each measured
// cluster is removed so it is counted once, and applies only those reaching
// the minimum size to the real field.
func (f *Field) runColorPass(pass colorPass) int {
	if pass.flag {
		f.SetAllFlags(Erase, false)
		f.GarbageCleared = 0
		f.ColorClearExtra = 0
		f.ColorsCleared = 0
	}
	scratch := f.Clone()
	colors := mapset.New[Color]()
	total := 0

	startY := f.top()
	if pass.opt.ignoreHidden {
		startY = max(startY, 0)
	}
	for y := startY; y < f.bottom(); y++ {
		for x := 0; x < f.width; x++ {
			if pass.gemsOnly && !f.Cell(x, y).IsGem() {
				continue
			}
			target := scratch.seedColor(x, y, pass.opt.gemSame)
			if target <= ColorNone {
				continue
			}
			measured := scratch.cluster(x, y, target, clusterOpts{
				gemSame:      pass.opt.gemSame,
				garbageClear: pass.opt.garbageClear,
				ignoreHidden: pass.opt.ignoreHidden,
			})
			size := len(measured.members)
			for _, p := range measured.members {
				scratch.cells[scratch.index(p.X, p.Y)] = Empty()
			}
			for _, p := range measured.garbage {
				scratch.cells[scratch.index(p.X, p.Y)] = Empty()
			}
			if size < pass.min {
				continue
			}
			total += size

			opt := pass.opt
			opt.skipErased = pass.flag
			f.applyCluster(f.cluster(x, y, target, opt), pass.flag)
			if pass.flag {
				f.ColorClearExtra += size - pass.min
				if target >= ColorRed && target <= ColorPurple {
					colors.Put(target)
				}
			}
		}
	}
	if pass.flag {
		f.ColorsCleared = colors.Size()
	}
	return total
}

// ClearColor immediately clears every same-color cluster of at least minSize
// cells. It returns the number of cluster cells cleared.
func (f *Field) ClearColor(minSize int, garbageClear, gemSame, ignoreHidden bool) int {
	return f.runColorPass(colorPass{
		min: minSize,
		opt: clusterOpts{gemSame: gemSame, garbageClear: garbageClear, ignoreHidden: ignoreHidden},
	})
}

// CheckColor finds every cluster of at least minSize cells. With flag it marks
// them Erase and records ColorsCleared, ColorClearExtra and GarbageCleared.
// Without flag the field is left untouched.
func (f *Field) CheckColor(minSize int, flag, garbageClear, gemSame, ignoreHidden bool) int {
	if !flag {
		return f.Clone().ClearColor(minSize, garbageClear, gemSame, ignoreHidden)
	}
	return f.runColorPass(colorPass{
		min:  minSize,
		flag: true,
		opt:  clusterOpts{gemSame: gemSame, garbageClear: garbageClear, ignoreHidden: ignoreHidden},
	})
}

// GemClearColor is ClearColor restricted to clusters containing a gem.
func (f *Field) GemClearColor(minSize int, garbageClear, ignoreHidden bool) int {
	return f.runColorPass(colorPass{
		min:      minSize,
		gemsOnly: true,
		opt:      clusterOpts{gemSame: true, garbageClear: garbageClear, ignoreHidden: ignoreHidden},
	})
}

// GemColorCheck is CheckColor restricted to clusters containing a gem.
func (f *Field) GemColorCheck(minSize int, flag, garbageClear, ignoreHidden bool) int {
	if !flag {
		return f.Clone().GemClearColor(minSize, garbageClear, ignoreHidden)
	}
	return f.runColorPass(colorPass{
		min:      minSize,
		flag:     true,
		gemsOnly: true,
		opt:      clusterOpts{gemSame: true, garbageClear: garbageClear, ignoreHidden: ignoreHidden},
	})
}

// AllClearColor clears (or marks Erase on) every cell of the given color.
func (f *Field) AllClearColor(target Color, flag, gemSame bool) int {
	if target <= ColorNone {
		return 0
	}
	if gemSame {
		target = target.Normal()
	}
	total := 0
	for y := -f.hidden; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			if f.colorAt(x, y, gemSame) != target {
				continue
			}
			total++
			if flag {
				f.at(x, y).Flags.Set(Erase)
			} else {
				f.SetCell(x, y, Empty())
			}
		}
	}
	return total
}

// CheckLineColor finds straight runs of at least size same-colored cells
// going down, right and, with diagonals, down-right. With flag, run cells are
// marked Erase (or lose a hit) and GemsCleared / LineColorsCleared are
// recorded. It returns the summed run lengths.
func (f *Field) CheckLineColor(size int, flag, diagonals, gemSame bool) int {
	if size < 1 {
		return 0
	}
	if flag {
		f.SetAllFlags(Erase, false)
		f.LineColorsCleared = nil
		f.GemsCleared = 0
	}
	dirs := []Point{P(0, 1), P(1, 0)}
	if diagonals {
		dirs = append(dirs, P(1, 1))
	}
	exact := mapset.New[Color]()
	total := 0
	for y := f.top(); y < f.bottom(); y++ {
		for x := 0; x < f.width; x++ {
			lineColor := f.colorAt(x, y, gemSame)
			if lineColor <= ColorNone {
				continue
			}
			for _, d := range dirs {
				count := 0
				for cx, cy := x, y; f.colorAt(cx, cy, gemSame) == lineColor; cx, cy = cx+d.X, cy+d.Y {
					count++
				}
				if count < size {
					continue
				}
				total += count
				if !flag {
					continue
				}
				if count == size {
					exact.Put(lineColor)
				}
				for i, cx, cy := 0, x, y; i < count; i, cx, cy = i+1, cx+d.X, cy+d.Y {
					c := f.at(cx, cy)
					switch {
					case c.Hard > 0:
						c.Hard--
					case !c.Flags.Has(Erase):
						if c.IsGem() {
							f.GemsCleared++
						}
						c.Flags.Set(Erase)
					}
				}
			}
		}
	}
	if flag {
		exact.Each(func(c Color) {
			f.LineColorsCleared = append(f.LineColorsCleared, c)
		})
		sort.Slice(f.LineColorsCleared, func(i, j int) bool {
			return f.LineColorsCleared[i] < f.LineColorsCleared[j]
		})
	}
	return total
}
