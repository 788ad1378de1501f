package engine

import "github.com/vovakirdan/blockfall/internal/field"

// blastSizes holds the bomb reach (columns, rows) by clear strength. Entry 0
// is also the reach of big bombs.
var blastSizes = [...][2]int{
	{4, 3}, {3, 0}, {3, 1}, {3, 2}, {3, 3}, {4, 4},
	{5, 5}, {5, 5}, {6, 6}, {6, 6}, {7, 7},
}

func (e *Engine) stepLineClear() {
	st := &e.st.lineClear
	dl := e.rules.Delay
	cr := e.rules.Clear

	e.releaseContinuousUse()
	e.chargeInDelay(e.rules.Move.DASInLineClear)

	if st.frame == 0 {
		e.flagClears()
		e.scoreClear()
		e.notifyClear()
		e.applyClear()
	}

	lineDelay := e.speed.LineDelay
	if e.gravityType == GravityNative && dl.LineFallAnim &&
		lineDelay >= e.lineClearing-1 && st.frame >= lineDelay-(e.lineClearing-1) {
		e.field.ShiftDownOne()
	}

	if e.delayCancelled(dl.LineCancelMove, dl.LineCancelRotate, dl.LineCancelHold) && st.frame < lineDelay {
		st.frame = lineDelay
	}

	if st.frame < lineDelay {
		st.frame++
		return
	}

	if e.clearMode.bombs() && e.field.CountIgnited() > 0 {
		st.frame = 0
		st.cascade = 0
		return
	}
	if e.gravityType.cascades() {
		switch {
		case st.cascade < cr.CascadeDelay:
			st.cascade++
			return
		case e.field.CascadeGravity(e.gravityType == GravityCascadeSlow):
			st.cascade = 0
			return
		case st.cascade < cr.CascadeClearDelay:
			st.cascade++
			return
		case e.countClears() > 0:
			e.twist = TwistNone
			e.chain++
			e.stats.MaxChain = max(e.stats.MaxChain, e.chain)
			e.log.Debug("chain", "chain", e.chain, "frame", e.frame)
			st.frame = 0
			st.cascade = 0
			return
		}
	}
	e.finishClear()
}

// flagClears marks what the clear mode removes and records the count in
// lineClearing.
func (e *Engine) flagClears() {
	st := &e.st.lineClear
	cr := e.rules.Clear
	f := e.field
	switch e.clearMode {
	case ClearLine:
		e.lineClearing = f.CheckLines()
	case ClearColor:
		e.lineClearing = f.CheckColor(cr.ColorSize, true, cr.GarbageColorClear, cr.GemSameColor, cr.IgnoreHidden)
	case ClearLineColor:
		e.lineClearing = f.CheckLineColor(cr.ColorSize, true, cr.LineColorDiagonals, cr.GemSameColor)
	case ClearGemColor:
		e.lineClearing = f.GemColorCheck(cr.ColorSize, true, cr.GarbageColorClear, cr.IgnoreHidden)
	case ClearLineGemBomb, ClearLineGemSpark:
		e.lineClearing = f.CountIgnited()
		if e.clearMode == ClearLineGemBomb {
			st.force = e.chain
		}
		force := st.force + len(f.FullLines())
		if e.clearMode == ClearLineGemSpark {
			st.force = force
		}
		force = min(max(force, 0), len(blastSizes)-1)
		f.IgniteBombs(blastSizes[force][0], blastSizes[force][1], blastSizes[0][0], blastSizes[0][1])
	}
}

// scoreClear updates the streak counters and emits the clear's event.
func (e *Engine) scoreClear() {
	f := e.field
	cr := e.rules.Clear
	sc := e.rules.Scoring

	li := e.lineClearing
	if cr.Big && cr.BigHalf {
		li >>= 1
	}
	ev := ScoreEvent{
		PieceID: e.lockedID,
		Chain:   e.chain,
		Garbage: f.GarbageCleared,
		Level:   e.level,
	}

	if e.clearMode != ClearLine {
		ev.Cleared = e.lineClearing
		ev.Colors = f.ColorsCleared
		ev.Gems = f.GemsCleared
		if ev.Cleared > 0 {
			e.addScore(ev)
		}
		return
	}

	e.split = f.LastSplit
	twist := e.twist != TwistNone
	if li > 0 {
		if sc.B2B {
			if li >= 4 || (e.split && sc.SplitB2B) || twist {
				e.b2bCount++
				if e.b2bCount > 1 {
					e.b2b = true
				}
				e.stats.MaxB2B = max(e.stats.MaxB2B, e.b2bCount-1)
			} else if e.b2bCount != 0 && e.comboCount <= 0 {
				e.b2b = false
				e.b2bCount = 0
			}
		}
		if e.combo != ComboDisable && e.chain == 0 {
			if e.combo == ComboNormal || li >= 2 {
				e.comboCount++
			}
			e.stats.MaxCombo = max(e.stats.MaxCombo, e.comboCount-1)
		}
		if twist {
			e.stats.Twists++
		}
	}

	ev.Lines = li
	ev.Twist = e.twist
	ev.Split = e.split
	ev.B2B = e.b2b
	ev.Combo = e.comboCount
	ev.Gold, ev.Silver = f.SquareClears()
	e.stats.Lines += li
	e.updateLevel()
	if li > 0 {
		e.addScore(ev)
	}
}

// notifyClear reports the cleared rows and every block about to break.
func (e *Engine) notifyClear() {
	f := e.field
	for y := 0; y < f.Height(); y++ {
		if e.clearMode == ClearLine && f.LineFlag(y) {
			e.listener.LineCleared(y)
		}
		for x := 0; x < f.Width(); x++ {
			if c := f.Cell(x, y); !c.IsEmpty() && c.Flags.Has(field.Erase) {
				e.listener.BlockBroken(x, y, c)
			}
		}
	}
}

func (e *Engine) applyClear() {
	cr := e.rules.Clear
	f := e.field
	switch e.clearMode {
	case ClearLine:
		f.ClearLines()
	case ClearColor:
		f.ClearColor(cr.ColorSize, cr.GarbageColorClear, cr.GemSameColor, cr.IgnoreHidden)
	case ClearLineColor:
		f.ClearProceed(field.GemNone)
	case ClearGemColor:
		e.lineClearing = f.GemClearColor(cr.ColorSize, cr.GarbageColorClear, cr.IgnoreHidden)
	case ClearLineGemBomb:
		e.lineClearing = f.ClearProceed(field.GemBomb)
	case ClearLineGemSpark:
		e.lineClearing = f.ClearProceed(field.GemSpark)
	}
}

// finishClear settles the field and leaves LINECLEAR.
func (e *Engine) finishClear() {
	cr := e.rules.Clear
	f := e.field
	if cr.Sticky > 0 {
		f.LinkByColor()
	}
	if cr.Sticky == 2 {
		f.SetAllFlags(field.IgnoreLink, true)
	}
	if e.gravityType == GravityNative {
		switch e.clearMode {
		case ClearLine, ClearLineGemBomb, ClearLineGemSpark:
			f.ShiftDownCleared()
		default:
			f.FreeFall()
		}
	}
	f.LineColorsCleared = nil
	if e.clearMode == ClearLine {
		e.formSquares()
	}

	switch {
	case e.ending == 1:
		e.setPhase(PhaseEndingStart)
	case e.speed.ARELine > 0:
		e.enterARE(e.speed.ARELine, true)
	case e.item != ItemNone:
		e.enterItem(PhaseMove)
	default:
		e.setPhase(PhaseMove)
	}
}

// formSquares turns complete 4×4 windows of linked blocks into gold and
// silver squares when the square rule is on.
func (e *Engine) formSquares() {
	if !e.rules.Clear.Squares {
		return
	}
	gold, silver := e.field.CheckSquares()
	if gold+silver == 0 {
		return
	}
	e.stats.GoldSquares += gold
	e.stats.SilverSquares += silver
	e.log.Debug("squares", "gold", gold, "silver", silver, "frame", e.frame)
}
