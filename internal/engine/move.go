package engine

import (
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/field"
	"github.com/vovakirdan/blockfall/internal/piece"
)

const lockFlags = field.Visible | field.Outline | field.SelfPlaced | field.LastCommit

var dropButtons = core.NewInputFrame(core.ButtonUp, core.ButtonDown)

// stepMove runs one pass of the MOVE phase. It returns true when the pass
// must run again within the same frame.
func (e *Engine) stepMove() bool {
	st := &e.st.move
	mv := e.rules.Move
	dr := e.rules.Drop
	lr := e.rules.LockReset
	e.das.repeat = false

	if st.frame > 0 || mv.DASInMoveFirstFrame {
		if dir := e.moveDirection(); e.das.direction != dir {
			e.das.direction = dir
			if dir != 0 || !mv.DASStoreChargeOnNeutral {
				e.das.count = 0
			}
		}
	}

	if st.frame == 0 {
		e.spawn(st.holdSwap)
		st.holdSwap = false
	}

	e.releaseContinuousUse()

	active := st.frame > 0 || mv.FirstFrame
	updown := e.press(core.ButtonUp) && e.press(core.ButtonDown)
	softdropUsed := false

	if !e.das.instant {
		if (e.push(core.ButtonD) || e.initialHold) && e.holdOK() {
			st.frame = 0
			st.holdSwap = true
			e.initialHoldContinuous = true
			e.initialHold = false
			e.holdDisable = true
			e.bufferInitialActions()
			return true
		}

		onGround := e.grounded()
		move := 0
		if e.initialRotateDir != 0 {
			move = e.initialRotateDir
			e.initialRotateLast = move
			e.initialRotateContinuous = true
		} else if active {
			if move = e.pushedRotation(); move != 0 {
				e.initialRotateLast = move
				e.initialRotateContinuous = true
			}
		}

		rr := e.rules.Rotate
		if !rr.AllowDouble && move == 2 {
			move = -1
		}
		if !rr.AllowReverse && move == 1 {
			move = -1
		}
		if rr.DefaultRight && move != 2 {
			move = -move
		}
		if move != 0 {
			e.rotate(move, onGround)
		}
		e.initialRotateDir = 0

		if st.frame == 0 && e.cur.Collides(e.x, e.y, e.cur.Dir(), e.field) && !e.correctSpawn() {
			e.topOut()
			return false
		}
	}

	sideMoved := false
	diagonalOK := func() bool { return mv.Diagonal || !sideMoved }
	upDownOK := mv.UpAndDown || !updown

	if active {
		onGround := e.grounded()
		move := e.moveDirection()
		if st.frame == 0 && e.delayCancel {
			if e.delayCancelLeft {
				move = -1
			}
			if e.delayCancelRight {
				move = 1
			}
			e.das.count = 0
			e.delayCancelLeft = false
			e.delayCancelRight = false
		} else if st.frame == 1 && e.delayCancel && e.das.count < e.speed.DAS {
			e.delayCancel = false
		}

		sideMoved = move != 0
		if e.rules.Clear.Big && e.rules.Clear.BigMove {
			move *= 2
		}
		if move != 0 && e.das.count == 0 {
			e.shiftLock = 0
		}
		if move != 0 && (e.das.count == 0 || e.das.count >= e.speed.DAS) {
			e.shiftLock &= e.ctrl.Frame()
			if e.shiftLock == 0 {
				if e.das.speedCount >= e.speed.ARR || e.das.count == 0 {
					if e.das.count > 0 {
						e.das.speedCount = 1
					}
					e.slide(move, onGround)
				} else {
					e.das.speedCount++
				}
			}
		}

		if !e.das.repeat {
			if e.press(core.ButtonUp) && !e.harddropContinuous && dr.HardDrop &&
				diagonalOK() && upDownOK && e.y < e.bottomY {
				e.harddropFall += e.bottomY - e.y
				e.y = e.bottomY
				e.harddropContinuous = !dr.HardDropLock
				e.lastMove = MoveFallSelf
				if lr.Fall {
					e.lockDelayNow = 0
					e.extendedMove = 0
					e.extendedRotate = 0
				}
			}
			if dr.SoftDrop && e.press(core.ButtonDown) && !e.softdropContinuous &&
				diagonalOK() && upDownOK && !onGround && !e.harddropContinuous {
				if sd := e.softDropSpeed(); !dr.SoftDropGravityCap || sd < e.speed.Denominator {
					e.gcount += sd
				} else {
					e.gcount = sd
				}
				softdropUsed = true
			}
		}
		e.stats.ActiveFrames++
	}

	grav, den := e.speed.Gravity, e.speed.Denominator
	if !dr.SoftDropGravityCap || e.softDropSpeed() < 1 || !softdropUsed {
		e.gcount += grav
	}
	for (e.gcount >= den || grav < 0) && !e.grounded() {
		if grav >= 0 {
			e.gcount -= den
		}
		if dr.SoftDropGravityCap && den > 0 {
			e.gcount -= e.gcount % den
		}
		e.y++
		if lr.Fall {
			e.lockDelayNow = 0
		}
		if e.lastMove != MoveRotateGround && e.lastMove != MoveSlideGround && e.lastMove != MoveFallSelf {
			e.extendedMove = 0
			e.extendedRotate = 0
		}
		if softdropUsed {
			e.lastMove = MoveFallSelf
			e.softdropFall++
		} else {
			e.lastMove = MoveFallAuto
		}
	}

	if active && e.grounded() {
		lockDelay := e.speed.LockDelay
		if e.lockDelayNow == 0 && lockDelay > 0 && e.lastMove != MoveSlideGround && e.lastMove != MoveRotateGround &&
			!dr.SoftDropLock && dr.SoftDropSurfaceLock && softdropUsed {
			e.softdropContinuous = true
		}
		if e.lockDelayNow < lockDelay {
			e.lockDelayNow++
		}
		// 99 and above never lock by delay alone
		if lockDelay >= 99 && e.lockDelayNow > 98 {
			e.lockDelayNow = 98
		}
		if lockDelay != 0 {
			e.gcount = grav
		}

		instant := false
		if dr.HardDrop && dr.HardDropLock && !e.harddropContinuous && e.press(core.ButtonUp) &&
			diagonalOK() && upDownOK {
			e.harddropContinuous = true
			e.manualLock = true
			instant = true
		}
		softLock := dr.SoftDropLock && e.press(core.ButtonDown) ||
			e.push(core.ButtonDown) && (dr.SoftDropSurfaceLock || grav < 0) && !softdropUsed
		if dr.SoftDrop && softLock && !e.softdropContinuous && diagonalOK() && upDownOK {
			e.softdropContinuous = true
			e.manualLock = true
			instant = true
		}
		if e.manualLock && mv.ShiftLock {
			e.shiftLock = e.ctrl.Frame() & dropButtons
		}
		if lr.LimitOver == config.LimitOverInstant && (e.moveCountExceeded() || e.rotateCountExceeded()) {
			instant = true
		}
		if lockDelay == 0 && (e.gcount >= den || grav < 0) {
			instant = true
		}
		if instant || (lockDelay > 0 && lockDelay <= e.lockDelayNow) {
			return e.lock()
		}
	}

	if st.frame > 0 || mv.DASInMoveFirstFrame {
		if dir := e.moveDirection(); dir != 0 && dir == e.das.direction && (e.das.count < e.speed.DAS || e.speed.DAS <= 0) {
			e.das.count++
		}
	}
	st.frame++
	return e.das.repeat
}

// spawn brings the next piece into play. With holdSwap the piece comes from
// the hold slot instead of the queue.
func (e *Engine) spawn(holdSwap bool) {
	switch {
	case !holdSwap && !e.initialHold:
		e.cur, e.curGem = e.takeNext()
		e.holdDisable = false
	case e.initialHold:
		if e.hold == nil {
			e.hold, e.holdGem = e.takeNext()
			e.cur, e.curGem = e.takeNext()
		} else {
			prev, prevGem := e.hold, e.holdGem
			e.hold, e.holdGem = e.takeNext()
			e.cur, e.curGem = prev, prevGem
		}
	case e.hold == nil:
		e.cur.SetBig(false)
		e.hold, e.holdGem = e.cur, e.curGem
		e.cur, e.curGem = e.takeNext()
	default:
		e.cur.SetBig(false)
		e.hold, e.cur = e.cur, e.hold
		e.holdGem, e.curGem = e.curGem, e.holdGem
	}
	if holdSwap || e.initialHold {
		if e.rules.Hold.ResetDirection {
			e.hold.SetDir(piece.Up)
		}
		e.holdUsed++
		e.stats.Holds++
		e.initialHold = false
		e.holdDisable = true
		e.log.Debug("hold", "piece", piece.Name(e.hold.ID()), "used", e.holdUsed)
	}

	e.cur.SetBig(e.rules.Clear.Big)
	e.x, e.y = e.spawnPos(e.cur)
	e.bottomY = e.bottom(e.x, e.y, e.cur.Dir())

	e.gcount = 0
	if e.speed.Denominator > 0 && e.speed.Gravity > e.speed.Denominator {
		e.gcount = e.speed.Gravity % e.speed.Denominator
	}
	e.lockDelayNow = 0
	e.das.speedCount = e.speed.ARR
	e.das.repeat = false
	e.das.instant = false
	e.extendedMove = 0
	e.extendedRotate = 0
	e.softdropFall = 0
	e.harddropFall = 0
	e.manualLock = false
	e.moveCount = 0
	e.rotateCount = 0
	e.rotateFail = 0
	e.kicks = 0
	e.upwardKicks = 0
	e.lineClearing = 0
	e.lastMove = MoveNone
	e.kickUsed = false
	e.twist = TwistNone

	e.pieceNo++
	e.beginAssist()
}

func (e *Engine) spawnPos(p Piece) (x, y int) {
	ext := p.Extents(p.Dir())
	x = (e.field.Width()-ext.W)/2 - ext.X
	if p.Big() && e.rules.Clear.BigMove && x%2 != 0 {
		x++
	}
	x += e.rules.Spawn.OffsetX

	if e.rules.Spawn.EnterAboveField && !e.field.Ceiling() {
		y = -ext.Bottom()
	} else {
		y = -ext.Y
	}
	return x, y + e.rules.Spawn.OffsetY
}

// bottom returns the lowest row the current piece can reach from y.
func (e *Engine) bottom(x, y, dir int) int {
	for !e.cur.Collides(x, y+1, dir, e.field) {
		y++
	}
	return y
}

func (e *Engine) grounded() bool {
	return e.cur.Collides(e.x, e.y+1, e.cur.Dir(), e.field)
}

func (e *Engine) softDropSpeed() int {
	base := e.speed.Denominator
	if e.rules.Drop.SoftDropMultiply || base <= 0 {
		base = e.speed.Gravity
	}
	return int(e.rules.Drop.SoftDropSpeed * float64(base))
}

// correctSpawn pushes a blocked spawn back inside the walls and raises it by
// up to EnterMaxDistanceY rows. It reports whether the piece now fits.
func (e *Engine) correctSpawn() bool {
	p := e.cur
	dir := p.Dir()
	ext := p.Extents(dir)
	for e.x+ext.Right() > e.field.Width() {
		e.x--
	}
	for e.x+ext.X < 0 {
		e.x++
	}
	for e.y+ext.Y < -e.field.HiddenHeight() {
		e.y++
	}
	e.bottomY = e.bottom(e.x, e.y, dir)

	for i := 0; i < e.rules.Spawn.EnterMaxDistanceY; i++ {
		e.y--
		if !p.Collides(e.x, e.y, dir, e.field) {
			e.bottomY = e.bottom(e.x, e.y, dir)
			break
		}
	}
	return !p.Collides(e.x, e.y, dir, e.field)
}

// topOut stamps the blocked piece and ends the game.
func (e *Engine) topOut() {
	e.cur.Place(e.x, e.y, e.field, lockFlags, e.rules.Clear.ConnectBlocks)
	e.log.Debug("top out", "piece", piece.Name(e.cur.ID()), "x", e.x, "y", e.y)
	e.cur = nil
	e.setPhase(PhaseGameOver)
}

// rotate attempts one rotation: in place, then by wall kick, then the
// two-block quick turn.
func (e *Engine) rotate(move int, onGround bool) {
	p := e.cur
	rr := e.rules.Rotate
	lr := e.rules.LockReset
	rt := rotateDir(p.Dir(), move)

	rotated := false
	switch {
	case !p.Collides(e.x, e.y, rt, e.field):
		rotated = true
		e.kickUsed = false
		p.SetDir(rt)
	case e.canKick():
		allowUpward := rr.MaxUpwardWallkick < 0 || e.upwardKicks < rr.MaxUpwardWallkick
		if k, ok := e.kick.Kick(e.x, e.y, move, p.Dir(), rt, allowUpward, p, e.field); ok {
			rotated = true
			e.kickUsed = true
			e.kicks++
			if k.IsUpward() {
				e.upwardKicks++
			}
			p.SetDir(k.Dir)
			e.x += k.OffsetX
			e.y += k.OffsetY
			if lr.Wallkick && !e.rotateCountExceeded() {
				e.lockDelayNow = 0
			}
		}
	case rr.QuickTurn && p.ID() == piece.I2 && e.rotateFail >= 1:
		rt = rotateDir(p.Dir(), 2)
		rotated = true
		p.SetDir(rt)
		e.rotateFail = 0
		if p.Collides(e.x, e.y, rt, e.field) {
			e.y--
		} else if onGround {
			e.y++
		}
	}

	if !rotated {
		e.rotateFail++
		e.listener.RotationFailed(e.rotateFail)
		return
	}

	e.bottomY = e.bottom(e.x, e.y, p.Dir())
	if lr.Rotate && !e.rotateCountExceeded() {
		e.lockDelayNow = 0
	}
	if onGround {
		e.extendedRotate++
		e.lastMove = MoveRotateGround
	} else {
		e.lastMove = MoveRotateAir
	}
	e.rotateCount++
	e.stats.Rotations++
}

func (e *Engine) canKick() bool {
	rr := e.rules.Rotate
	if !rr.Wallkick || e.kick == nil {
		return false
	}
	if e.initialRotateDir != 0 && !rr.InitialWallkick {
		return false
	}
	return e.rules.LockReset.LimitOver != config.LimitOverNoWallkick || !e.rotateCountExceeded()
}

// slide moves the current piece one step sideways.
func (e *Engine) slide(move int, onGround bool) {
	p := e.cur
	if p.Collides(e.x+move, e.y, p.Dir(), e.field) {
		if e.rules.Move.DASChargeOnBlockedMove {
			e.das.count = e.speed.DAS
			e.das.speedCount = e.speed.ARR
		}
		return
	}
	e.x += move
	if e.speed.ARR == 0 && e.das.count > 0 && !p.Collides(e.x+move, e.y, p.Dir(), e.field) {
		e.das.repeat = true
		e.das.instant = true
	}
	if e.rules.LockReset.Move && !e.moveCountExceeded() {
		e.lockDelayNow = 0
	}
	e.moveCount++
	e.stats.Moves++
	e.bottomY = e.bottom(e.x, e.y, p.Dir())
	if onGround {
		e.extendedMove++
		e.lastMove = MoveSlideGround
	} else {
		e.lastMove = MoveSlideAir
	}
}

// lock stamps the current piece into the field and chooses the next phase.
// It returns true when MOVE must run again this frame to spawn the next piece.
func (e *Engine) lock() bool {
	p := e.cur
	tw := e.rules.Twist
	e.twist = TwistNone
	if e.lastMove == MoveRotateGround && tw.Enable {
		switch {
		case tw.AllSpin:
			if tw.AllowKick || !e.kickUsed {
				e.twist = e.checkTwist(e.x, e.y, p)
			}
		case p.ID() == piece.T:
			e.twist = e.checkTwist(e.x, e.y, p)
		}
	}

	partial := e.aboveVisible(p)
	e.field.SetAllFlags(field.LastCommit, false)
	put := p.Place(e.x, e.y, e.field, lockFlags, e.rules.Clear.ConnectBlocks)
	e.markGem(p)
	e.formSquares()
	e.holdDisable = false
	e.lockedID = p.ID()
	e.countPiece(p.ID())
	e.log.Debug("lock", "piece", piece.Name(p.ID()), "x", e.x, "y", e.y, "dir", p.Dir(), "twist", e.twist)

	e.lineClearing = e.countClears()
	e.chain = 0
	if e.lineClearing == 0 {
		if e.twist != TwistNone {
			if e.b2bCount == 0 {
				e.b2bCount = 1
			}
			e.stats.TwistZero++
		} else {
			e.comboCount = 0
		}
		e.addScore(ScoreEvent{PieceID: p.ID(), Twist: e.twist, Level: e.level})
	}

	e.cur = nil
	e.das.repeat = false
	e.das.instant = false

	fr := e.rules.Field
	dl := e.rules.Delay
	switch {
	case e.ending == 1:
		e.setPhase(PhaseEndingStart)
	case !put && fr.LockoutDeath || partial && fr.PartialLockoutDeath:
		e.log.Debug("lock out", "partial", partial)
		e.setPhase(PhaseGameOver)
	case e.gravityType.cascades() && !e.rules.Clear.ConnectBlocks:
		e.setPhase(PhaseLineClear)
		e.st.lineClear.frame = e.speed.LineDelay
		e.stepLineClear()
	case e.lineClearing > 0 && (e.speed.LockFlash <= 0 || !dl.LockFlashBeforeLineClear):
		e.setPhase(PhaseLineClear)
		e.stepLineClear()
	case (e.speed.ARE > 0 || dl.LockFlashBeforeLineClear) && e.speed.LockFlash > 0 && dl.LockFlashOnlyFrame:
		e.setPhase(PhaseLockFlash)
	case e.speed.ARE > 0:
		e.enterARE(e.speed.ARE, false)
	case e.item != ItemNone:
		e.enterItem(PhaseMove)
	default:
		e.setPhase(PhaseMove)
		return !e.rules.Move.FirstFrame
	}
	return false
}

// aboveVisible reports whether any block of p sits above row 0.
func (e *Engine) aboveVisible(p Piece) bool {
	for _, b := range p.Blocks(p.Dir()) {
		if e.y+b.Y < 0 {
			return true
		}
	}
	return false
}

// markGem turns the piece's gem block into its gem color.
func (e *Engine) markGem(p Piece) {
	if e.curGem < 0 {
		return
	}
	blocks := p.Blocks(p.Dir())
	per := 1
	if p.Big() {
		per = 4
	}
	for i := e.curGem * per; i < (e.curGem+1)*per && i < len(blocks); i++ {
		x, y := e.x+blocks[i].X, e.y+blocks[i].Y
		if c := e.field.Color(x, y); c > field.ColorNone {
			e.field.SetColor(x, y, c.Gem())
		}
	}
}

// countClears counts what the current clear mode would remove without
// marking anything.
func (e *Engine) countClears() int {
	cr := e.rules.Clear
	f := e.field
	switch e.clearMode {
	case ClearColor:
		return f.CheckColor(cr.ColorSize, false, cr.GarbageColorClear, cr.GemSameColor, cr.IgnoreHidden)
	case ClearLineColor:
		return f.CheckLineColor(cr.ColorSize, false, cr.LineColorDiagonals, cr.GemSameColor)
	case ClearGemColor:
		return f.GemColorCheck(cr.ColorSize, false, cr.GarbageColorClear, cr.IgnoreHidden)
	case ClearLineGemBomb, ClearLineGemSpark:
		return f.CheckBombOnLine(true)
	default:
		return len(f.FullLines())
	}
}
