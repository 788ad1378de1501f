package field

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/blockfall/internal/core"
)

// Rand is the subset of *math/rand.Rand the field draws from. Passing the
// engine's seeded generator keeps garbage placement replayable.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// AddGarbageRow raises the field by one row and fills the new bottom row with
// linked garbage of the given color, leaving column hole empty.
func (f *Field) AddGarbageRow(hole int, color Color) {
	f.PushUp(1)
	y := f.bottom() - 1
	for x := 0; x < f.width; x++ {
		if x == hole {
			continue
		}
		flags := Visible | Outline | Garbage
		if x > 0 && x-1 != hole {
			flags.Set(ConnectLeft)
		}
		if x < f.width-1 && x+1 != hole {
			flags.Set(ConnectRight)
		}
		f.SetCell(x, y, NewCell(color, flags))
	}
}

// AddSingleHoleGarbage adds n garbage rows that share one hole column.
func (f *Field) AddSingleHoleGarbage(hole int, color Color, n int) {
	for ; n > 0; n-- {
		f.AddGarbageRow(hole, color)
	}
}

// AddRandomHoleGarbage adds n garbage rows starting from hole. Before each
// row after the first, the hole moves to a different random column with
// probability messiness. It returns the last hole used.
func (f *Field) AddRandomHoleGarbage(rng Rand, hole int, messiness float64, color Color, n int) int {
	for i := 0; i < n; i++ {
		if i > 0 && f.width > 1 {
			if r := rng.Float64(); r < messiness {
				next := int(r / messiness * float64(f.width-1))
				if next >= hole {
					next++
				}
				hole = next
			}
		}
		f.AddGarbageRow(hole, color)
	}
	return hole
}

// GarbageDrop scatters drop garbage blocks into the top rows of the field.
// Whole rows are filled first; the remainder goes to random columns other than
// avoid. Big garbage occupies 2×2 cells. Each block gets hard hit-counters.
func (f *Field) GarbageDrop(rng Rand, drop int, big bool, hard int, avoid int, color Color) {
	cols := f.width
	step := 1
	if big {
		cols = f.width / 2
		step = 2
	}
	if cols <= 0 {
		return
	}
	y := f.top()
	for ; drop >= cols; drop -= cols {
		for x := 0; x < cols; x++ {
			f.dropGarbage(x*step, y, big, hard, color)
		}
		y += step
	}
	if drop == 0 {
		return
	}

	place := make([]bool, cols)
	if drop > cols/2 {
		// Fill everything, then knock out random columns until drop remain.
		filled := 0
		for x := range place {
			if x != avoid {
				place[x] = true
				filled++
			}
		}
		for ; filled > drop; filled-- {
			x := pick(rng, place, true)
			place[x] = false
		}
	} else {
		for i := 0; i < drop; i++ {
			free := make([]bool, cols)
			for x := range free {
				free[x] = !place[x] && x != avoid
			}
			x := pick(rng, free, true)
			if x < 0 {
				break
			}
			place[x] = true
		}
	}
	for x, ok := range place {
		if ok {
			f.dropGarbage(x*step, y, big, hard, color)
		}
	}
}

// pick returns a random index whose value equals want, or -1.
func pick(rng Rand, set []bool, want bool) int {
	var idx []int
	for i, v := range set {
		if v == want {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return -1
	}
	return idx[rng.Intn(len(idx))]
}

func (f *Field) dropGarbage(x, y int, big bool, hard int, color Color) bool {
	if big {
		f.dropGarbage(x+1, y, false, hard, color)
		f.dropGarbage(x, y+1, false, hard, color)
		f.dropGarbage(x+1, y+1, false, hard, color)
	}
	if !f.IsFreeAt(x, y) {
		return false
	}
	return f.SetCell(x, y, Cell{
		Color: color,
		Flags: Garbage | Broken | Visible,
		Hard:  hard,
	})
}

// HoleHistory is how many previous holes a new hole must differ from.
const HoleHistory = 7

// HoleDistance is how close a new hole may be to the previous one.
const HoleDistance = 2

// HoleGenerator chooses garbage hole columns. A new hole never repeats one of
// the last HoleHistory holes and never lies within HoleDistance columns of the
// previous hole. When the width makes that impossible the distance rule is
// dropped first; if even the history rule cannot be met the oldest remembered
// hole is reused. Choices come from the supplied generator only.
type HoleGenerator struct {
	width   int
	rng     Rand
	history []int // oldest first
}

// NewHoleGenerator creates a generator for a field of the given width.
func NewHoleGenerator(width int, rng Rand) *HoleGenerator {
	return &HoleGenerator{width: width, rng: rng}
}

// History returns the remembered holes, oldest first.
func (g *HoleGenerator) History() []int {
	return append([]int(nil), g.history...)
}

// holeLookahead is how many further spaced holes a candidate must leave
// room for before it is preferred.
const holeLookahead = 4

// Next returns the next hole column.
func (g *HoleGenerator) Next() int {
	if g.width <= 0 {
		return 0
	}
	fresh, spaced := g.candidates(g.history)

	var safe []int
	for _, x := range spaced {
		if g.canContinue(pushHole(g.history, x), holeLookahead) {
			safe = append(safe, x)
		}
	}

	var hole int
	switch {
	case len(safe) > 0:
		hole = safe[g.rng.Intn(len(safe))]
	case len(spaced) > 0:
		hole = spaced[g.rng.Intn(len(spaced))]
	case len(fresh) > 0:
		hole = fresh[g.rng.Intn(len(fresh))]
	default:
		hole = g.history[0]
	}

	g.history = pushHole(g.history, hole)
	return hole
}

// candidates returns the columns not in history, and the subset of those
// far enough from the last hole.
func (g *HoleGenerator) candidates(history []int) (fresh, spaced []int) {
	used := mapset.New[int]()
	for _, h := range history {
		used.Put(h)
	}
	for x := 0; x < g.width; x++ {
		if used.Has(x) {
			continue
		}
		fresh = append(fresh, x)
		if len(history) == 0 || core.Abs(x-history[len(history)-1]) > HoleDistance {
			spaced = append(spaced, x)
		}
	}
	return fresh, spaced
}

// canContinue reports whether depth more holes can follow history without
// breaking either rule.
func (g *HoleGenerator) canContinue(history []int, depth int) bool {
	if depth == 0 {
		return true
	}
	_, spaced := g.candidates(history)
	for _, x := range spaced {
		if g.canContinue(pushHole(history, x), depth-1) {
			return true
		}
	}
	return false
}

func pushHole(history []int, hole int) []int {
	next := append(append(make([]int, 0, len(history)+1), history...), hole)
	if len(next) > HoleHistory {
		next = next[len(next)-HoleHistory:]
	}
	return next
}

// AddGarbageLine adds one garbage row using the generator's next hole and
// returns the hole column.
func (f *Field) AddGarbageLine(g *HoleGenerator, color Color) int {
	hole := g.Next()
	f.AddGarbageRow(hole, color)
	return hole
}
