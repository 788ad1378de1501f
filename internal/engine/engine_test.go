package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/field"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// sequence deals a fixed, repeating list of piece IDs.
type sequence struct {
	ids []int
	i   int
}

func (s *sequence) Next() int {
	id := s.ids[s.i%len(s.ids)]
	s.i++
	return id
}

type recorder struct {
	NopListener
	phases []Phase
	locks  []ScoreEvent
	rows   []int
	broken int
	failed []int
}

func (r *recorder) PhaseEntered(p Phase)             { r.phases = append(r.phases, p) }
func (r *recorder) PieceLocked(ev ScoreEvent)        { r.locks = append(r.locks, ev) }
func (r *recorder) LineCleared(row int)              { r.rows = append(r.rows, row) }
func (r *recorder) BlockBroken(int, int, field.Cell) { r.broken++ }
func (r *recorder) RotationFailed(n int)             { r.failed = append(r.failed, n) }

var quick = config.Speed{Gravity: 1, Denominator: 60, LockDelay: 30, DAS: 10, ARR: 1}

func testRules() config.Rules {
	r := config.DefaultRules()
	r.Ready = config.ReadyRules{GoEnd: 1}
	return r
}

func newTestEngine(rules config.Rules, speed config.Speed, l Listener, ids ...int) *Engine {
	return New(testOptions(rules, speed, l, ids...), 1)
}

func testOptions(rules config.Rules, speed config.Speed, l Listener, ids ...int) Options {
	opts := Options{
		Rules:    rules,
		Speed:    config.NewSpeedCurve(config.SpeedConfig{LinesPerLevel: 10, Levels: []config.Speed{speed}}),
		Listener: l,
	}
	if len(ids) > 0 {
		opts.Random = func(int64) Randomizer { return &sequence{ids: ids} }
	}
	return opts
}

func run(e *Engine, n int, in core.InputFrame) {
	for i := 0; i < n; i++ {
		e.Step(in)
	}
}

// toMove steps through SETTING and READY and spawns the first piece.
func toMove(t *testing.T, e *Engine, in core.InputFrame) {
	t.Helper()
	run(e, 3, 0)
	require.Equal(t, PhaseMove, e.Phase())
	e.Step(in)
}

func fill(f *field.Field, x0, x1, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			f.SetCell(x, y, field.NewCell(field.ColorGray, field.Visible))
		}
	}
}

func hardDrop() core.InputFrame { return core.NewInputFrame(core.ButtonUp) }

func TestPhaseNames(t *testing.T) {
	assert.Equal(t, "MOVE", PhaseMove.String())
	assert.Equal(t, "LINECLEAR", PhaseLineClear.String())
	assert.Equal(t, "INTERRUPTITEM", PhaseInterruptItem.String())
	assert.Equal(t, "UNKNOWN", Phase(99).String())
}

func TestStartupSequence(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(testRules(), quick, rec, piece.T)
	assert.Equal(t, PhaseSetting, e.Phase())

	toMove(t, e, 0)
	p, x, y := e.Current()
	require.NotNil(t, p)
	assert.Equal(t, piece.T, p.ID())
	assert.Equal(t, 3, x)
	assert.Equal(t, -2, y)
	assert.Equal(t, []Phase{PhaseReady, PhaseMove}, rec.phases)
	assert.Equal(t, 4, e.Frame())
}

func TestHardDropLocksAndSpawnsNext(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(testRules(), quick, rec, piece.O, piece.T)
	toMove(t, e, hardDrop())

	f := e.Field()
	assert.Equal(t, 4, f.BlockCount())
	assert.Equal(t, field.ColorYellow, f.Color(4, 19))
	assert.Equal(t, field.ColorYellow, f.Color(5, 18))
	assert.True(t, f.Cell(4, 19).Flags.Has(field.SelfPlaced|field.LastCommit))
	assert.Equal(t, 1, e.PieceCount(piece.O))
	require.Len(t, rec.locks, 1)
	assert.Equal(t, 0, rec.locks[0].Lines)

	// holding the button does not drop the next piece
	e.Step(hardDrop())
	p, _, y := e.Current()
	require.NotNil(t, p)
	assert.Equal(t, piece.T, p.ID())
	assert.Equal(t, -2, y)
}

func TestSingleLineClear(t *testing.T) {
	rec := &recorder{}
	e := newTestEngine(testRules(), quick, rec, piece.I)
	fill(e.Field(), 0, 2, 19, 19)
	fill(e.Field(), 7, 9, 19, 19)

	toMove(t, e, hardDrop())

	assert.True(t, e.Field().IsEmpty())
	assert.Equal(t, PhaseMove, e.Phase())
	assert.Equal(t, []int{19}, rec.rows)
	assert.Equal(t, 10, rec.broken)

	st := e.Stats()
	assert.Equal(t, 1, st.Lines)
	assert.Equal(t, 100, st.Score)
	assert.Equal(t, map[int]int{piece.I: 1}, st.ByPiece)
	combo, b2b := e.Combo()
	assert.Equal(t, 1, combo)
	assert.Equal(t, 0, b2b)
	assert.Equal(t, 1, e.LastEvent().Lines)
}

func TestPartialLockoutEndsGame(t *testing.T) {
	r := testRules()
	r.Field.LockoutDeath = false
	r.Field.PartialLockoutDeath = true
	e := newTestEngine(r, quick, nil, piece.T)
	fill(e.Field(), 3, 6, 1, 19)

	toMove(t, e, hardDrop())

	assert.Equal(t, PhaseGameOver, e.Phase())
	assert.True(t, e.State().GameOver)
	assert.Equal(t, field.ColorPurple, e.Field().Color(4, -1))
}

func TestBlockedSpawnEndsGame(t *testing.T) {
	e := newTestEngine(testRules(), quick, nil, piece.I)
	fill(e.Field(), 3, 6, -3, 19)

	toMove(t, e, 0)

	assert.Equal(t, PhaseGameOver, e.Phase())
	p, _, _ := e.Current()
	assert.Nil(t, p)
}

func TestHoldSwapsOncePerPiece(t *testing.T) {
	e := newTestEngine(testRules(), quick, nil, piece.I, piece.O, piece.T)
	toMove(t, e, 0)

	hold := core.NewInputFrame(core.ButtonD)
	e.Step(hold)
	require.NotNil(t, e.Hold())
	assert.Equal(t, piece.I, e.Hold().ID())
	p, _, _ := e.Current()
	assert.Equal(t, piece.O, p.ID())
	assert.Equal(t, piece.T, e.Next(0))

	e.Step(0)
	e.Step(hold)
	p, _, _ = e.Current()
	assert.Equal(t, piece.O, p.ID(), "second hold on the same piece is refused")
	assert.Equal(t, 1, e.Stats().Holds)
}

func TestTapMovesOneColumn(t *testing.T) {
	e := newTestEngine(testRules(), quick, nil, piece.I)
	toMove(t, e, 0)

	right := core.NewInputFrame(core.ButtonRight)
	e.Step(right)
	e.Step(0)
	_, x, _ := e.Current()
	assert.Equal(t, 4, x)
}

func TestAutoRepeatReachesWall(t *testing.T) {
	e := newTestEngine(testRules(), quick, nil, piece.I)
	toMove(t, e, 0)

	run(e, 8, core.NewInputFrame(core.ButtonLeft))
	_, x, _ := e.Current()
	assert.Equal(t, 2, x, "only the first step before auto-repeat charges")

	run(e, 20, core.NewInputFrame(core.ButtonLeft))
	_, x, _ = e.Current()
	assert.Equal(t, 0, x)
}

func TestLockDelay(t *testing.T) {
	speed := quick
	speed.Gravity = -1
	e := newTestEngine(testRules(), speed, nil, piece.O)
	toMove(t, e, 0)

	p, _, y := e.Current()
	require.NotNil(t, p)
	assert.Equal(t, 18, y, "20G drops to the floor on spawn")
	assert.Equal(t, 1, e.LockDelay())

	run(e, 28, 0)
	assert.Equal(t, 0, e.PieceCount(piece.O))
	assert.Equal(t, 29, e.LockDelay())

	e.Step(0)
	assert.Equal(t, 1, e.PieceCount(piece.O))
	p, _, _ = e.Current()
	assert.Nil(t, p)
}

func TestCascadeChain(t *testing.T) {
	r := testRules()
	r.Clear.Gravity = config.GravityCascade
	r.Clear.ConnectBlocks = false
	speed := quick
	speed.LineDelay = 1
	e := newTestEngine(r, speed, nil, piece.I)
	f := e.Field()
	fill(f, 0, 2, 19, 19)
	fill(f, 7, 9, 19, 19)
	fill(f, 0, 0, 18, 18)

	toMove(t, e, hardDrop())
	assert.Equal(t, PhaseLineClear, e.Phase())
	assert.Equal(t, 1, e.Chain())

	run(e, 3, 0)
	assert.Equal(t, PhaseMove, e.Phase())
	assert.Equal(t, 1, f.BlockCount())
	assert.Equal(t, field.ColorGray, f.Color(0, 19))
	assert.Equal(t, 1, e.Stats().MaxChain)
	assert.Equal(t, 1, e.Stats().Lines)
}

func TestMirrorItem(t *testing.T) {
	e := newTestEngine(testRules(), quick, nil, piece.O)
	f := e.Field()
	fill(f, 0, 0, 19, 19)
	e.UseItem(ItemMirror)

	toMove(t, e, hardDrop())
	assert.Equal(t, PhaseInterruptItem, e.Phase())

	run(e, 46, 0)
	assert.Equal(t, PhaseInterruptItem, e.Phase())
	e.Step(0)
	assert.Equal(t, PhaseMove, e.Phase())
	assert.True(t, f.IsEmptyAt(0, 19))
	assert.Equal(t, field.ColorGray, f.Color(9, 19))
	assert.Equal(t, field.ColorYellow, f.Color(4, 19))
}

func TestFieldEditResumes(t *testing.T) {
	e := newTestEngine(testRules(), quick, nil, piece.T)
	toMove(t, e, 0)
	_, x, y := e.Current()

	e.EnterFieldEdit()
	assert.Equal(t, PhaseFieldEdit, e.Phase())
	run(e, 11, core.NewInputFrame(core.ButtonA))
	assert.Equal(t, field.ColorGray, e.Field().Color(0, 0))

	e.Step(core.NewInputFrame(core.ButtonB))
	assert.Equal(t, PhaseMove, e.Phase())
	_, x2, y2 := e.Current()
	assert.Equal(t, x, x2)
	assert.Equal(t, y, y2)
}

func TestOpponentGameOver(t *testing.T) {
	e := newTestEngine(testRules(), quick, nil, piece.T)
	toMove(t, e, 0)

	e.OpponentGameOver(true)
	e.Step(0)
	assert.Equal(t, PhaseExcellent, e.Phase())

	run(e, excellentFrames, 0)
	assert.Equal(t, PhaseGameOver, e.Phase())
}

func scripted(i int) core.InputFrame {
	var in core.InputFrame
	if i%7 < 2 {
		in.Set(core.ButtonLeft)
	}
	if i%11 < 3 {
		in.Set(core.ButtonRight)
	}
	if i%13 == 0 {
		in.Set(core.ButtonB)
	}
	if i%17 == 0 {
		in.Set(core.ButtonA)
	}
	if i%23 == 0 {
		in.Set(core.ButtonD)
	}
	if i%29 < 2 {
		in.Set(core.ButtonUp)
	}
	return in
}

func TestDeterministicWithSameSeed(t *testing.T) {
	speed := config.DefaultSpeed().Levels[0]
	a := New(Options{Rules: config.DefaultRules(), Speed: config.NewSpeedCurve(config.DefaultSpeed())}, 42)
	b := New(Options{Rules: config.DefaultRules(), Speed: config.NewSpeedCurve(config.DefaultSpeed())}, 42)
	require.Equal(t, speed, a.Speed())

	for i := 0; i < 3000; i++ {
		a.Step(scripted(i))
		b.Step(scripted(i))
	}
	assert.Equal(t, a.Phase(), b.Phase())
	assert.Equal(t, a.Field().String(), b.Field().String())
	assert.Equal(t, a.Stats(), b.Stats())
	assert.Greater(t, a.Stats().Pieces, 0)
}

func TestSeedChangesQueue(t *testing.T) {
	a := New(Options{Rules: config.DefaultRules()}, 1)
	b := New(Options{Rules: config.DefaultRules()}, 2)
	var qa, qb []int
	for i := 0; i < 16; i++ {
		qa = append(qa, a.Next(i))
		qb = append(qb, b.Next(i))
	}
	assert.NotEqual(t, qa, qb)

	a.Reset(core.RuntimeConfig{Seed: 2})
	for i := range qb {
		assert.Equal(t, qb[i], a.Next(i))
	}
}

func TestScorePoints(t *testing.T) {
	tests := []struct {
		name string
		ev   ScoreEvent
		want int
	}{
		{"single", ScoreEvent{Lines: 1}, 100},
		{"quad", ScoreEvent{Lines: 4}, 800},
		{"b2b quad", ScoreEvent{Lines: 4, B2B: true}, 1200},
		{"level two", ScoreEvent{Lines: 2, Level: 1}, 600},
		{"twist single", ScoreEvent{Lines: 1, Twist: TwistPoint}, 800},
		{"twist zero", ScoreEvent{Twist: TwistPoint}, 400},
		{"mini zero", ScoreEvent{Twist: TwistPointMini}, 100},
		{"ez single", ScoreEvent{Lines: 1, Twist: TwistImmobileEZ}, 200},
		{"combo", ScoreEvent{Lines: 1, Combo: 3}, 200},
		{"cascade blocks", ScoreEvent{Cleared: 4, Chain: 1}, 80},
		{"gold square", ScoreEvent{Lines: 1, Gold: 1}, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.Points())
		})
	}
}
