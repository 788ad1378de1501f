// Package assist runs move searches for the engine off the simulation thread
// and turns their suggestions into controller input.
package assist

import (
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/field"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// Weights scores a candidate placement. Positive weights reward, negative
// weights punish.
type Weights struct {
	Lines     int
	Holes     int
	Height    int
	Bumpiness int
	Wells     int // deep valleys other than the deepest one
	TSlots    int
}

// DefaultWeights favors a flat, hole-free stack.
var DefaultWeights = Weights{
	Lines:     30,
	Holes:     -80,
	Height:    -4,
	Bumpiness: -6,
	Wells:     -10,
	TSlots:    15,
}

const spawnY = -2

// Search tries every column and orientation of the current piece, and of the
// hold candidate when holding is allowed, dropping each straight down. It
// returns the best placement found. Reachability beyond a straight drop is
// not considered.
func Search(req engine.Request, w Weights) engine.Suggestion {
	best := engine.Suggestion{PieceNo: req.PieceNo, Score: minScore}
	found := false
	try := func(id int, hold bool) {
		s, ok := bestFor(req.Field, id, w)
		if ok && (!found || s.Score > best.Score) {
			best = s
			best.PieceNo = req.PieceNo
			best.Hold = hold
			found = true
		}
	}

	try(req.Piece, false)
	if req.HoldOK {
		switch {
		case req.Hold >= 0 && req.Hold != req.Piece:
			try(req.Hold, true)
		case req.Hold < 0 && len(req.Next) > 0 && req.Next[0] != req.Piece:
			try(req.Next[0], true)
		}
	}
	return best
}

const minScore = -1 << 30

func bestFor(f *field.Field, id int, w Weights) (engine.Suggestion, bool) {
	p := piece.New(id)
	best := engine.Suggestion{Score: minScore}
	found := false
	scratch := f.Clone()
	for dir := 0; dir < piece.DirCount; dir++ {
		ext := p.Extents(dir)
		for x := -ext.X; x+ext.Right() <= f.Width(); x++ {
			if p.Collides(x, spawnY, dir, f) {
				continue
			}
			y := spawnY
			for !p.Collides(x, y+1, dir, f) {
				y++
			}
			scratch.Copy(f)
			p.SetDir(dir)
			if !p.Place(x, y, scratch, field.Visible, false) {
				continue
			}
			score := Evaluate(scratch, w)
			if !found || score > best.Score {
				best = engine.Suggestion{X: x, Y: y, Dir: dir, Score: score}
				found = true
			}
		}
	}
	return best, found
}

// Evaluate scores a field after a placement.
func Evaluate(f *field.Field, w Weights) int {
	lines := len(f.FullLines())

	heights := make([]int, f.Width())
	holes := 0
	for x := 0; x < f.Width(); x++ {
		top := f.HighestBlockYAt(x)
		heights[x] = f.Height() - top
		for y := top + 1; y < f.Height(); y++ {
			if f.IsEmptyAt(x, y) {
				holes++
			}
		}
	}

	total, bump := 0, 0
	for x, h := range heights {
		total += h
		if x > 0 {
			bump += core.Abs(h - heights[x-1])
		}
	}

	wells, deepest := 0, 0
	for x := 0; x < f.Width(); x++ {
		d := f.ValleyDepth(x)
		if d > 2 {
			wells += d
			deepest = max(deepest, d)
		}
	}
	wells -= deepest

	return w.Lines*lines*lines +
		w.Holes*holes +
		w.Height*total/f.Width() +
		w.Bumpiness*bump +
		w.Wells*wells +
		w.TSlots*f.TSlotCount(false)
}
