package engine

import "github.com/vovakirdan/blockfall/internal/core"

func (e *Engine) press(b core.Button) bool { return e.ctrl.IsPress(b) }
func (e *Engine) push(b core.Button) bool  { return e.ctrl.IsPush(b) }

// moveDirection returns the held horizontal direction: -1, 0 or 1.
func (e *Engine) moveDirection() int {
	left, right := e.press(core.ButtonLeft), e.press(core.ButtonRight)
	mv := e.rules.Move
	if mv.LeftAndRightAllow && left && right {
		lt := e.ctrl.HeldFrames(core.ButtonLeft)
		rt := e.ctrl.HeldFrames(core.ButtonRight)
		switch {
		case lt > rt:
			if mv.LeftAndRightUsePrevious {
				return -1
			}
			return 1
		case lt < rt:
			if mv.LeftAndRightUsePrevious {
				return 1
			}
			return -1
		}
		return 0
	}
	switch {
	case left:
		return -1
	case right:
		return 1
	}
	return 0
}

// heldRotation returns the rotation the held buttons ask for.
func (e *Engine) heldRotation() int {
	switch {
	case e.press(core.ButtonA) || e.press(core.ButtonC):
		return -1
	case e.press(core.ButtonB):
		return 1
	case e.press(core.ButtonE):
		return 2
	}
	return 0
}

// pushedRotation returns the rotation requested this frame.
func (e *Engine) pushedRotation() int {
	switch {
	case e.push(core.ButtonA) || e.push(core.ButtonC):
		return -1
	case e.push(core.ButtonB):
		return 1
	case e.push(core.ButtonE):
		return 2
	}
	return 0
}

// releaseContinuousUse lifts the one-shot guards on drops, pre-emptive hold
// and pre-rotation once their buttons are released.
func (e *Engine) releaseContinuousUse() {
	if !e.press(core.ButtonDown) || !e.rules.Drop.SoftDropLimit {
		e.softdropContinuous = false
	}
	if !e.press(core.ButtonUp) || !e.rules.Drop.HardDropLimit {
		e.harddropContinuous = false
	}
	if !e.press(core.ButtonD) || !e.rules.Hold.InitialLimit {
		e.initialHoldContinuous = false
	}
	if !e.rules.Rotate.InitialLimit {
		e.initialRotateContinuous = false
	}
	if e.initialRotateContinuous {
		if dir := e.heldRotation(); dir == 0 || dir != e.initialRotateLast {
			e.initialRotateContinuous = false
		}
	}
}

// padRepeat charges auto-repeat during a delay phase.
func (e *Engine) padRepeat() {
	dir := e.moveDirection()
	if dir != 0 {
		e.das.count++
	} else if !e.rules.Move.DASStoreChargeOnNeutral {
		e.das.count = 0
	}
	e.das.direction = dir
}

// chargeInDelay charges auto-repeat when allowed, otherwise it may only
// redirect the stored charge.
func (e *Engine) chargeInDelay(allowed bool) {
	if allowed {
		e.padRepeat()
	} else if e.rules.Move.DASRedirectInDelay {
		e.das.direction = e.moveDirection()
	}
}

// bufferInitialActions records pre-rotation and pre-emptive hold from the
// buttons held when a piece is about to spawn.
func (e *Engine) bufferInitialActions() {
	e.initialRotateDir = 0
	e.initialHold = false
	if e.rules.Rotate.Initial && !e.initialRotateContinuous {
		e.initialRotateDir = e.heldRotation()
	}
	if e.press(core.ButtonD) && e.rules.Hold.Initial && e.holdOK() {
		e.initialHold = true
		e.initialHoldContinuous = true
	}
}

// delayCancelled checks the cancel buttons of a delay phase.
func (e *Engine) delayCancelled(move, rotate, hold bool) bool {
	e.delayCancelLeft = e.push(core.ButtonLeft)
	e.delayCancelRight = e.push(core.ButtonRight)
	moveCancel := move && (e.push(core.ButtonUp) || e.push(core.ButtonDown) ||
		e.delayCancelLeft || e.delayCancelRight)
	rotateCancel := rotate && (e.push(core.ButtonA) || e.push(core.ButtonB) ||
		e.push(core.ButtonC) || e.push(core.ButtonE))
	holdCancel := hold && e.push(core.ButtonD)
	e.delayCancel = moveCancel || rotateCancel || holdCancel
	return e.delayCancel
}

func (e *Engine) holdOK() bool {
	h := e.rules.Hold
	return h.Enable && !e.holdDisable && (e.holdUsed < h.Limit || h.Limit < 0) &&
		!e.initialHoldContinuous
}

func (e *Engine) moveCountExceeded() bool {
	lr := e.rules.LockReset
	if lr.ShareCount {
		return lr.LimitMove >= 0 && e.extendedMove+e.extendedRotate >= lr.LimitMove
	}
	return lr.LimitMove >= 0 && e.extendedMove >= lr.LimitMove
}

func (e *Engine) rotateCountExceeded() bool {
	lr := e.rules.LockReset
	if lr.ShareCount {
		return lr.LimitMove >= 0 && e.extendedMove+e.extendedRotate >= lr.LimitMove
	}
	return lr.LimitRotate >= 0 && e.extendedRotate >= lr.LimitRotate
}

func rotateDir(dir, move int) int {
	dir = (dir + move) % 4
	if dir < 0 {
		dir += 4
	}
	return dir
}
