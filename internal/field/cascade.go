package field

import (
	"sort"

	"github.com/zyedidia/generic/stack"
)

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// P is shorthand for creating a Point.
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// LinkComponent marks every cell reachable from (x, y) through connection
// flags with TempMark and returns them. Cells flagged IgnoreLink stop the walk.
// Previous marks are cleared first.
func (f *Field) LinkComponent(x, y int) []Point {
	f.SetAllFlags(TempMark, false)
	return f.markLinked(x, y, func(Cell) bool { return true })
}

// markLinked walks connection flags from (x, y), entering only cells accepted
// by enter, and marks visited cells with TempMark.
func (f *Field) markLinked(x, y int, enter func(Cell) bool) []Point {
	var members []Point
	work := stack.New[Point]()
	work.Push(P(x, y))
	for work.Size() > 0 {
		p := work.Pop()
		c := f.at(p.X, p.Y)
		if c == nil || c.IsEmpty() || c.Flags.Has(TempMark) || !enter(*c) {
			continue
		}
		c.Flags.Set(TempMark)
		members = append(members, p)
		if c.Flags.Has(IgnoreLink) {
			continue
		}
		if c.Flags.Has(ConnectUp) {
			work.Push(P(p.X, p.Y-1))
		}
		if c.Flags.Has(ConnectDown) {
			work.Push(P(p.X, p.Y+1))
		}
		if c.Flags.Has(ConnectLeft) {
			work.Push(P(p.X-1, p.Y))
		}
		if c.Flags.Has(ConnectRight) {
			work.Push(P(p.X+1, p.Y))
		}
	}
	return members
}

// BreakLinks marks the plain-colored group linked to (x, y) as Broken.
// Squares and gems are left alone.
func (f *Field) BreakLinks(x, y int) int {
	f.SetAllFlags(TempMark, false)
	members := f.markLinked(x, y, func(c Cell) bool { return c.IsNormal() })
	for _, p := range members {
		f.at(p.X, p.Y).Flags.Set(Broken)
	}
	f.SetAllFlags(TempMark, false)
	return len(members)
}

// LinkByColor rebuilds the connection flags of plain, non-garbage cells so
// that orthogonal neighbours of the same color are linked.
func (f *Field) LinkByColor() {
	for y := f.top(); y < f.bottom(); y++ {
		for x := 0; x < f.width; x++ {
			c := f.at(x, y)
			if c.IsEmpty() || !c.IsNormal() || c.Flags.Has(Garbage) {
				continue
			}
			c.Flags.Clear(ConnectAll)
			if f.Color(x, y-1) == c.Color {
				c.Flags.Set(ConnectUp)
			}
			if f.Color(x, y+1) == c.Color {
				c.Flags.Set(ConnectDown)
			}
			if f.Color(x-1, y) == c.Color {
				c.Flags.Set(ConnectLeft)
			}
			if f.Color(x+1, y) == c.Color {
				c.Flags.Set(ConnectRight)
			}
		}
	}
}

// canFall reports whether a marked component has room to drop one row.
// A member is held up by a wall, or by an occupied cell outside the component.
func (f *Field) canFall(members []Point) bool {
	for _, p := range members {
		if f.Coord(p.X, p.Y+1) == CoordWall {
			return false
		}
		below := f.at(p.X, p.Y+1)
		if below != nil && !below.IsEmpty() && !below.Flags.Has(TempMark) {
			return false
		}
	}
	return true
}

// dropOne moves a component down by one row, tagging every member
// CascadeFall and LastCommit.
func (f *Field) dropOne(members []Point) {
	sort.Slice(members, func(i, j int) bool { return members[i].Y > members[j].Y })
	for _, p := range members {
		c := f.Cell(p.X, p.Y)
		c.Flags.Clear(TempMark)
		c.Flags.Set(CascadeFall | LastCommit)
		f.SetCell(p.X, p.Y+1, c)
		f.SetCell(p.X, p.Y, Empty())
	}
}

// CascadeGravity runs one avalanche pass: every linked component that is not
// resting on something drops by one row. The fast variant scans bottom-up, the
// slow one top-down. It returns false, with the grid untouched, when nothing
// can fall.
func (f *Field) CascadeGravity(slow bool) bool {
	if !f.CanCascade() {
		return false
	}
	f.SetAllFlags(LastCommit|CascadeFall, false)

	fell := false
	visit := func(x, y int) {
		c := f.at(x, y)
		if c == nil || c.IsEmpty() || c.Flags.Any(Antigravity|CascadeFall) {
			return
		}
		members := f.LinkComponent(x, y)
		if f.canFall(members) {
			f.dropOne(members)
			fell = true
		}
	}

	if slow {
		for y := f.top(); y < f.bottom(); y++ {
			for x := 0; x < f.width; x++ {
				visit(x, y)
			}
		}
	} else {
		for y := f.bottom() - 1; y >= f.top(); y-- {
			for x := 0; x < f.width; x++ {
				visit(x, y)
			}
		}
	}

	f.SetAllFlags(TempMark|CascadeFall, false)
	return fell
}

// CanCascade reports whether CascadeGravity would move anything.
func (f *Field) CanCascade() bool {
	defer f.SetAllFlags(TempMark, false)
	for y := f.bottom() - 1; y >= f.top(); y-- {
		for x := 0; x < f.width; x++ {
			c := f.at(x, y)
			if c == nil || c.IsEmpty() || c.Flags.Has(Antigravity) {
				continue
			}
			if f.canFall(f.LinkComponent(x, y)) {
				return true
			}
		}
	}
	return false
}

// FreeFall drops every block straight down its column, ignoring links.
// It returns true if anything moved.
func (f *Field) FreeFall() bool {
	moved := false
	for x := 0; x < f.width; x++ {
		dst := f.bottom() - 1
		for y := f.bottom() - 1; y >= f.top(); y-- {
			c := f.Cell(x, y)
			if c.IsEmpty() {
				continue
			}
			if y != dst {
				f.SetCell(x, dst, c)
				f.SetCell(x, y, Empty())
				moved = true
			}
			dst--
		}
	}
	return moved
}
