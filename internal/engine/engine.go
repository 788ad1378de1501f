// Package engine implements the piece lifecycle of a falling-block game: a
// per-frame state machine that spawns, moves, rotates and locks pieces on
// a field.Field and runs the clear, avalanche and scoring rules that follow.
//
// The engine is advanced by Step, once per frame. It never blocks, never
// reads the clock and draws randomness only from its seed, so the same seed
// and input sequence always produce the same fields.
package engine

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/field"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// Options configures an engine.
type Options struct {
	Rules config.Rules
	Speed *config.SpeedCurve // nil uses config.DefaultSpeed

	Pieces   PieceSet                    // nil uses the standard piece set
	Random   func(seed int64) Randomizer // nil draws the seven tetrominoes uniformly
	WallKick WallKick                    // nil disables kicks
	Listener Listener                    // nil ignores notifications
	Assist   Assistant                   // nil disables hints
	Logger   *log.Logger                 // nil discards
}

type queued struct {
	id  int
	gem int // index of the block that becomes a gem, -1 for none
}

type dasState struct {
	count      int  // frames the direction has been held
	speedCount int  // frames since the last repeat step
	direction  int  // -1, 0 or 1
	repeat     bool // run MOVE again this frame
	instant    bool // the repeat is an instant ARR step
}

// Engine runs one player's game.
type Engine struct {
	rules       config.Rules
	curve       *config.SpeedCurve
	pieces      PieceSet
	newRandom   func(seed int64) Randomizer
	kick        WallKick
	listener    Listener
	assist      Assistant
	log         *log.Logger
	clearMode   ClearMode
	gravityType LineGravity
	combo       ComboType

	seed   int64
	rng    *rand.Rand
	random Randomizer
	field  *field.Field
	ctrl   core.Controller
	speed  config.Speed
	level  int
	frame  int

	phase    Phase
	st       phaseState
	saved    phaseState // phase counters kept across a field edit
	editFrom Phase
	item     Item
	itemFrom Phase
	ending   int // 0 playing, 1 ending requested, 2 ending finished

	opponentOver bool

	// pieces
	cur       Piece
	curGem    int
	x, y      int
	bottomY   int
	lockedID  int
	hold      Piece
	holdGem   int
	queue     []queued
	nextCount int
	pieceNo   int

	holdDisable             bool
	holdUsed                int
	initialHold             bool
	initialHoldContinuous   bool
	initialRotateDir        int
	initialRotateLast       int
	initialRotateContinuous bool
	softdropContinuous      bool
	harddropContinuous      bool

	// movement
	gcount         int
	lockDelayNow   int
	das            dasState
	extendedMove   int
	extendedRotate int
	moveCount      int
	rotateCount    int
	rotateFail     int
	kicks          int
	upwardKicks    int
	lastMove       LastMove
	kickUsed       bool
	twist          Twist
	manualLock     bool
	shiftLock      core.InputFrame
	softdropFall   int
	harddropFall   int

	delayCancel      bool
	delayCancelLeft  bool
	delayCancelRight bool

	// clearing and scoring
	lineClearing int
	split        bool
	comboCount   int
	b2bCount     int
	b2b          bool
	chain        int
	lastEvent    ScoreEvent
	stats        Stats
	byPiece      *intmap.Map[int, int]

	hint      Suggestion
	hintReady bool
}

// New creates an engine and resets it with the given seed.
func New(opts Options, seed int64) *Engine {
	e := &Engine{
		rules:     opts.Rules,
		curve:     opts.Speed,
		pieces:    opts.Pieces,
		newRandom: opts.Random,
		kick:      opts.WallKick,
		listener:  opts.Listener,
		assist:    opts.Assist,
		log:       opts.Logger,
	}
	if e.curve == nil {
		e.curve = config.NewSpeedCurve(config.DefaultSpeed())
	}
	if e.pieces == nil {
		e.pieces = PieceSetFunc(func(id int) Piece { return piece.New(id) })
	}
	if e.newRandom == nil {
		e.newRandom = func(seed int64) Randomizer { return uniform{rand.New(rand.NewSource(seed))} }
	}
	if e.listener == nil {
		e.listener = NopListener{}
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	e.clearMode = ParseClearMode(e.rules.Clear.Mode)
	e.gravityType = ParseLineGravity(e.rules.Clear.Gravity)
	e.combo = ParseComboType(e.rules.Scoring.Combo)
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	e.Reset(cfg)
	return e
}

type uniform struct{ rng *rand.Rand }

func (u uniform) Next() int { return u.rng.Intn(piece.I1) }

// Reset starts a new game on an empty field.
func (e *Engine) Reset(cfg core.RuntimeConfig) {
	fr := e.rules.Field
	*e = Engine{
		rules:       e.rules,
		curve:       e.curve,
		pieces:      e.pieces,
		newRandom:   e.newRandom,
		kick:        e.kick,
		listener:    e.listener,
		assist:      e.assist,
		log:         e.log,
		clearMode:   e.clearMode,
		gravityType: e.gravityType,
		combo:       e.combo,

		seed:    cfg.Seed,
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		random:  e.newRandom(cfg.Seed),
		field:   field.New(fr.Width, fr.Height, fr.HiddenHeight, fr.Ceiling),
		curGem:  -1,
		holdGem: -1,
		byPiece: intmap.New[int, int](piece.Count),
	}
	e.level = e.curve.Level(0)
	e.speed = e.curve.Speed(e.level)
	e.phase = PhaseSetting
}

// Step advances the game by exactly one frame.
func (e *Engine) Step(in core.InputFrame) core.StepResult {
	e.ctrl.Update(in)

	if e.opponentOver && e.playing() {
		e.log.Debug("opponent topped out", "frame", e.frame)
		e.setPhase(PhaseExcellent)
	}

	switch e.phase {
	case PhaseSetting:
		e.setPhase(PhaseReady)
	case PhaseReady:
		e.stepReady()
	case PhaseMove:
		e.das.instant = false
		for again := true; again && e.phase == PhaseMove; {
			again = e.stepMove()
		}
	case PhaseLockFlash:
		e.stepLockFlash()
	case PhaseLineClear:
		e.stepLineClear()
	case PhaseARE:
		e.stepARE()
	case PhaseEndingStart:
		e.stepEnding()
	case PhaseExcellent:
		e.stepExcellent()
	case PhaseGameOver:
		e.stepGameOver()
	case PhaseFieldEdit:
		e.stepFieldEdit()
	case PhaseInterruptItem:
		e.stepInterruptItem()
	}

	e.pollAssist()
	e.frame++
	e.stats.Frames++
	return core.StepResult{State: e.State()}
}

func (e *Engine) playing() bool {
	switch e.phase {
	case PhaseReady, PhaseMove, PhaseLockFlash, PhaseLineClear, PhaseARE:
		return true
	}
	return false
}

// setPhase enters p with fresh phase counters.
func (e *Engine) setPhase(p Phase) {
	e.log.Debug("phase", "from", e.phase, "to", p, "frame", e.frame)
	e.phase = p
	e.st = phaseState{}
	e.listener.PhaseEntered(p)
}

// State summarizes the game for the harness.
func (e *Engine) State() core.GameState {
	return core.GameState{
		Score:    e.stats.Score,
		Lines:    e.stats.Lines,
		Level:    e.level,
		Phase:    e.phase.String(),
		GameOver: e.phase == PhaseGameOver,
	}
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Frame returns the number of frames stepped since Reset.
func (e *Engine) Frame() int { return e.frame }

// Seed returns the seed of the current game.
func (e *Engine) Seed() int64 { return e.seed }

// Field returns the engine's playfield. Callers must not modify it while
// the game runs.
func (e *Engine) Field() *field.Field { return e.field }

// Current returns the falling piece and its position, or nil outside MOVE.
func (e *Engine) Current() (p Piece, x, y int) {
	return e.cur, e.x, e.y
}

// GhostY returns the row the current piece would land on.
func (e *Engine) GhostY() int { return e.bottomY }

// Hold returns the held piece, or nil.
func (e *Engine) Hold() Piece { return e.hold }

// Next returns the ID of the i-th upcoming piece.
func (e *Engine) Next(i int) int {
	return e.peek(e.nextCount + i).id
}

// Level returns the current speed level.
func (e *Engine) Level() int { return e.level }

// Speed returns the timing values in effect.
func (e *Engine) Speed() config.Speed { return e.speed }

// LastEvent returns the most recent score event.
func (e *Engine) LastEvent() ScoreEvent { return e.lastEvent }

// Combo returns the current combo and back-to-back counters.
func (e *Engine) Combo() (combo, b2b int) { return e.comboCount, e.b2bCount }

// Chain returns the avalanche chain of the current clear.
func (e *Engine) Chain() int { return e.chain }

// LockDelay returns the frames the current piece has rested on the stack.
func (e *Engine) LockDelay() int { return e.lockDelayNow }

// OpponentGameOver tells the engine whether its opponent has topped out.
// A game still in play ends on the next frame.
func (e *Engine) OpponentGameOver(over bool) { e.opponentOver = over }

// StartEnding makes the next lock or clear enter the ending sequence.
func (e *Engine) StartEnding() {
	if e.ending == 0 {
		e.ending = 1
	}
}

// UseItem queues an item that interrupts play after the next lock.
func (e *Engine) UseItem(it Item) { e.item = it }

// Hint returns the assistant's suggestion for the current piece.
func (e *Engine) Hint() (Suggestion, bool) { return e.hint, e.hintReady }

// peek returns the queued piece at absolute index i, extending the queue
// from the randomizer as needed.
func (e *Engine) peek(i int) queued {
	for len(e.queue) <= i {
		q := queued{id: e.random.Next(), gem: -1}
		if e.clearMode.bombs() {
			if n := len(e.pieces.NewPiece(q.id).Blocks(0)); n > 0 {
				q.gem = e.rng.Intn(n)
			}
		}
		e.queue = append(e.queue, q)
	}
	return e.queue[i]
}

// takeNext removes the next piece from the queue.
func (e *Engine) takeNext() (Piece, int) {
	q := e.peek(e.nextCount)
	e.nextCount++
	return e.pieces.NewPiece(q.id), q.gem
}

func (e *Engine) updateLevel() {
	level := e.curve.Level(e.stats.Lines)
	if level != e.level {
		e.log.Debug("level up", "level", level, "lines", e.stats.Lines)
		e.level = level
		e.speed = e.curve.Speed(level)
	}
}

func (e *Engine) addScore(ev ScoreEvent) {
	e.stats.Score += ev.Points()
	e.lastEvent = ev
	e.listener.PieceLocked(ev)
}

func (e *Engine) pollAssist() {
	if e.assist == nil || e.hintReady || e.cur == nil {
		return
	}
	if !e.assist.Done() {
		return
	}
	if s := e.assist.Suggestion(); s.PieceNo == e.pieceNo {
		e.hint = s
		e.hintReady = true
	}
}

func (e *Engine) beginAssist() {
	e.hintReady = false
	if e.assist == nil || e.cur == nil {
		return
	}
	req := Request{
		Field:   e.field.Clone(),
		Piece:   e.cur.ID(),
		Hold:    -1,
		HoldOK:  e.holdOK(),
		PieceNo: e.pieceNo,
	}
	if e.hold != nil {
		req.Hold = e.hold.ID()
	}
	for i := 0; i < e.rules.Spawn.NextCount; i++ {
		req.Next = append(req.Next, e.Next(i))
	}
	e.assist.Begin(req)
}
