package engine

import "github.com/vovakirdan/blockfall/internal/field"

// Phase is the state of the per-frame machine.
type Phase int

const (
	PhaseSetting Phase = iota
	PhaseReady
	PhaseMove
	PhaseLockFlash
	PhaseLineClear
	PhaseARE
	PhaseEndingStart
	PhaseExcellent
	PhaseGameOver
	PhaseFieldEdit
	PhaseInterruptItem
)

var phaseNames = [...]string{
	PhaseSetting:       "SETTING",
	PhaseReady:         "READY",
	PhaseMove:          "MOVE",
	PhaseLockFlash:     "LOCKFLASH",
	PhaseLineClear:     "LINECLEAR",
	PhaseARE:           "ARE",
	PhaseEndingStart:   "ENDINGSTART",
	PhaseExcellent:     "EXCELLENT",
	PhaseGameOver:      "GAMEOVER",
	PhaseFieldEdit:     "FIELDEDIT",
	PhaseInterruptItem: "INTERRUPTITEM",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "UNKNOWN"
	}
	return phaseNames[p]
}

// LastMove records what last moved the active piece.
type LastMove int

const (
	MoveNone LastMove = iota
	MoveFallAuto
	MoveFallSelf
	MoveSlideAir
	MoveSlideGround
	MoveRotateAir
	MoveRotateGround
)

// Item is an effect that interrupts play.
type Item int

const (
	ItemNone Item = iota
	ItemMirror
)

// Per-phase counters. Entering a phase zeroes all of them.

type readyState struct {
	frame int
}

type moveState struct {
	frame    int
	holdSwap bool // the next spawn comes from the hold slot
}

type lockFlashState struct {
	frame int
}

type lineClearState struct {
	frame   int
	cascade int // frames spent in the avalanche delays
	force   int // accumulated bomb strength
}

type areState struct {
	frame     int
	delay     int
	afterLine bool
}

type endingState struct {
	frame   int
	row     int
	started bool
}

type excellentState struct {
	frame int
}

type gameOverState struct {
	frame int
}

type detourState struct {
	frame  int
	backup *field.Field
	x, y   int
	color  field.Color
}

type phaseState struct {
	ready     readyState
	move      moveState
	lockFlash lockFlashState
	lineClear lineClearState
	are       areState
	ending    endingState
	excellent excellentState
	gameOver  gameOverState
	detour    detourState
}
