package engine

import (
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/field"
)

const (
	rowInterval      = 6   // frames per row in the ending and game-over sweeps
	excellentSkip    = 120 // frames before EXCELLENT can be skipped
	excellentFrames  = 600
	gameOverHold     = 180
	gameOverSkip     = 60
	editGuardFrames  = 10 // frames before the editor accepts place, erase or exit
	mirrorStartFrame = 21
	mirrorWaitFrames = 5
)

func (e *Engine) stepReady() {
	st := &e.st.ready
	rd := e.rules.Ready
	e.chargeInDelay(e.rules.Move.DASInReady)

	if st.frame == 0 {
		e.peek(e.nextCount + e.rules.Spawn.NextCount)
		e.log.Debug("ready", "seed", e.seed, "level", e.level)
	}

	if st.frame > 0 && st.frame < rd.GoEnd && e.rules.Hold.NextSkip && e.holdOK() && e.push(core.ButtonD) {
		e.hold, e.holdGem = e.takeNext()
	}

	if st.frame >= rd.GoEnd {
		e.bufferInitialActions()
		e.setPhase(PhaseMove)
		return
	}
	st.frame++
}

func (e *Engine) stepLockFlash() {
	st := &e.st.lockFlash
	st.frame++
	e.releaseContinuousUse()
	e.chargeInDelay(e.rules.Move.DASInLockFlash)

	if st.frame < e.speed.LockFlash {
		return
	}
	if e.lineClearing > 0 {
		e.setPhase(PhaseLineClear)
		e.stepLineClear()
		return
	}
	e.enterARE(e.speed.ARE, false)
}

// enterARE starts an entry delay of the given length.
func (e *Engine) enterARE(delay int, afterLine bool) {
	e.setPhase(PhaseARE)
	e.st.are.delay = delay
	e.st.are.afterLine = afterLine
}

func (e *Engine) stepARE() {
	st := &e.st.are
	mv := e.rules.Move
	dl := e.rules.Delay
	st.frame++
	e.releaseContinuousUse()

	if e.delayCancelled(dl.ARECancelMove, dl.ARECancelRotate, dl.ARECancelHold) && st.frame < st.delay {
		st.frame = st.delay
	}
	e.chargeInDelay(mv.DASInARE && (st.frame < st.delay-1 || mv.DASInARELastFrame))

	if st.frame < st.delay {
		return
	}
	e.cur = nil
	if e.item != ItemNone {
		e.enterItem(PhaseMove)
		return
	}
	e.bufferInitialActions()
	e.setPhase(PhaseMove)
}

// stepEnding clears the field one row at a time from the bottom, then
// enters EXCELLENT.
func (e *Engine) stepEnding() {
	st := &e.st.ending
	f := e.field
	e.releaseContinuousUse()
	e.chargeInDelay(e.rules.Move.DASInEndingStart)

	if !st.started {
		st.started = true
		e.log.Debug("ending", "frame", e.frame, "score", e.stats.Score)
	}

	total := f.Height() * rowInterval
	switch {
	case st.frame < e.speed.LineDelay:
		st.frame++
	case st.row < total:
		if st.row%rowInterval == 0 {
			y := f.Height() - 1 - st.row/rowInterval
			for x := 0; x < f.Width(); x++ {
				if c := f.Cell(x, y); !c.IsEmpty() {
					e.listener.BlockBroken(x, y, c)
					f.SetCell(x, y, field.Empty())
				}
			}
		}
		st.row++
	case st.frame < e.speed.LineDelay+2:
		st.frame++
	default:
		e.ending = 2
		e.setPhase(PhaseExcellent)
	}
}

func (e *Engine) stepExcellent() {
	st := &e.st.excellent
	if st.frame == 0 {
		e.log.Debug("excellent", "score", e.stats.Score, "lines", e.stats.Lines)
	}
	if st.frame >= excellentSkip && e.push(core.ButtonA) {
		st.frame = excellentFrames
	}
	if st.frame >= excellentFrames {
		e.setPhase(PhaseGameOver)
		return
	}
	st.frame++
}

// stepGameOver turns a topped-out stack gray row by row from the bottom.
// The phase is terminal; its counter stops once the sweep and the closing
// hold have run.
func (e *Engine) stepGameOver() {
	st := &e.st.gameOver
	f := e.field
	end := rowInterval * f.Height()
	topOut := e.ending != 2

	if st.frame == 0 {
		e.log.Debug("game over", "frame", e.frame, "score", e.stats.Score, "lines", e.stats.Lines, "topout", topOut)
		if f.IsEmpty() {
			st.frame = end
		}
	}

	switch {
	case st.frame < end:
		if y := f.Height() - 1 - st.frame/rowInterval; topOut && st.frame%rowInterval == 0 {
			for x := 0; x < f.Width(); x++ {
				c := f.Cell(x, y)
				if c.IsEmpty() || c.Flags.Has(field.Garbage) {
					continue
				}
				c.Color = field.ColorGray
				c.Flags.Set(field.Garbage)
				f.SetCell(x, y, c)
			}
		}
		st.frame++
	case st.frame < end+gameOverHold:
		if st.frame >= end+gameOverSkip && e.push(core.ButtonA) {
			st.frame = end + gameOverHold
			return
		}
		st.frame++
	}
}

// EnterFieldEdit suspends play and opens the cell editor. Leaving the editor
// with B resumes the interrupted phase where it stopped.
func (e *Engine) EnterFieldEdit() {
	if e.phase == PhaseFieldEdit {
		return
	}
	e.saved = e.st
	e.editFrom = e.phase
	e.setPhase(PhaseFieldEdit)
	e.st.detour.color = field.ColorGray
}

// EditCursor returns the editor cursor and the color it paints.
func (e *Engine) EditCursor() (x, y int, c field.Color) {
	d := e.st.detour
	return d.x, d.y, d.color
}

func (e *Engine) stepFieldEdit() {
	st := &e.st.detour
	f := e.field
	st.frame++

	recolor := e.press(core.ButtonC)
	if e.push(core.ButtonLeft) {
		if recolor {
			st.color = cycleColor(st.color, -1)
		} else {
			st.x = wrapIndex(st.x-1, f.Width())
		}
	}
	if e.push(core.ButtonRight) {
		if recolor {
			st.color = cycleColor(st.color, 1)
		} else {
			st.x = wrapIndex(st.x+1, f.Width())
		}
	}
	if e.push(core.ButtonUp) {
		st.y = wrapIndex(st.y-1, f.Height())
	}
	if e.push(core.ButtonDown) {
		st.y = wrapIndex(st.y+1, f.Height())
	}

	if st.frame <= editGuardFrames {
		return
	}
	if e.press(core.ButtonA) && f.Color(st.x, st.y) != st.color {
		f.SetCell(st.x, st.y, field.NewCell(st.color, field.Visible|field.Outline))
	}
	if e.press(core.ButtonD) && !f.IsEmptyAt(st.x, st.y) {
		f.SetCell(st.x, st.y, field.Empty())
	}
	if e.push(core.ButtonB) {
		e.log.Debug("field edit done", "resume", e.editFrom)
		e.phase = e.editFrom
		e.st = e.saved
		e.listener.PhaseEntered(e.phase)
	}
}

func cycleColor(c field.Color, step int) field.Color {
	n := int(field.ColorGemPurple - field.ColorGray + 1)
	return field.ColorGray + field.Color(wrapIndex(int(c-field.ColorGray)+step, n))
}

func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// enterItem starts the queued item effect. Play resumes in from afterwards.
func (e *Engine) enterItem(from Phase) {
	e.cur = nil
	e.itemFrom = from
	e.log.Debug("item", "item", e.item, "frame", e.frame)
	e.setPhase(PhaseInterruptItem)
}

func (e *Engine) stepInterruptItem() {
	more := false
	switch e.item {
	case ItemMirror:
		more = e.stepMirror()
	}
	if !more {
		e.item = ItemNone
		e.setPhase(e.itemFrom)
	}
}

// stepMirror empties the field, then copies the saved columns back in
// mirrored order two frames apart. It returns false when done.
func (e *Engine) stepMirror() bool {
	st := &e.st.detour
	f := e.field
	w := f.Width()
	switch {
	case st.frame == 0:
		st.backup = f.Clone()
		f.Reset()
	case st.frame >= mirrorStartFrame && st.frame < mirrorStartFrame+w*2 && st.frame%2 == 0:
		x := (st.frame-mirrorStartFrame+1)/2 - 1
		for y := -f.HiddenHeight(); y < f.Height(); y++ {
			c := st.backup.Cell(x, y)
			c.Flags = mirrorLinks(c.Flags)
			f.SetCell(w-1-x, y, c)
		}
	case st.frame < mirrorStartFrame+w*2+mirrorWaitFrames:
	default:
		st.backup = nil
		return false
	}
	st.frame++
	return true
}

func mirrorLinks(fl field.Flags) field.Flags {
	left, right := fl.Has(field.ConnectLeft), fl.Has(field.ConnectRight)
	fl = fl.Without(field.ConnectLeft | field.ConnectRight)
	if left {
		fl = fl.With(field.ConnectRight)
	}
	if right {
		fl = fl.With(field.ConnectLeft)
	}
	return fl
}
