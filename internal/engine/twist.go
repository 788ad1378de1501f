package engine

import (
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// checkTwist classifies a piece resting at (x, y) after a grounded rotation.
func (e *Engine) checkTwist(x, y int, p Piece) Twist {
	tw := e.rules.Twist
	if !tw.AllowKick && e.kickUsed {
		return TwistNone
	}
	f := e.field
	dir := p.Dir()
	m := 1
	if p.Big() {
		m = 2
	}

	res := TwistNone
	switch {
	case p.Collides(x, y-m, dir, f) && p.Collides(x+m, y, dir, f) && p.Collides(x-m, y, dir, f):
		res = TwistImmobile
		scratch := f.Clone()
		p.Place(x, y, scratch, lockFlags, false)
		lines := len(scratch.FullLines())
		if e.kickUsed && (lines != p.Extents(dir).H+1 || lines == 1) {
			res = TwistImmobileMini
		}
	case tw.EnableEZ && e.kickUsed && p.Collides(x, y+m, dir, f):
		res = TwistImmobileEZ
	}

	if p.ID() != piece.T {
		return res
	}
	switch {
	case f.IsTwistSpot(x, y, p.Big()):
		res = TwistPoint
	case tw.MiniType == config.TwistMiniRotateCheck &&
		p.Collides(x, y, rotateDir(dir, -1), f) && p.Collides(x, y, rotateDir(dir, 1), f):
		res = TwistPointMini
	case tw.MiniType == config.TwistMiniWallkickFlag && e.kickUsed:
		res = TwistPointMini
	}
	return res
}
