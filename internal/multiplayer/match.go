package multiplayer

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// Controller supplies one seat's buttons for the next frame.
type Controller interface {
	Input(e *engine.Engine) core.InputFrame
}

// ControllerFunc adapts a plain function to Controller.
type ControllerFunc func(e *engine.Engine) core.InputFrame

func (f ControllerFunc) Input(e *engine.Engine) core.InputFrame { return f(e) }

// Versus steps two engines in lockstep. Seat 1 always steps before seat 2
// within a frame, and a seat that tops out puts the other into its
// opponent-over sequence before the other seat's step of that same frame.
type Versus struct {
	id       MatchID
	engines  [2]*engine.Engine
	frame    uint64
	lines    [2]int
	over     [2]bool
	firstOut PlayerID
	ended    bool

	observer Observer
	log      *log.Logger
}

// Option configures a Versus.
type Option func(*Versus)

// WithObserver delivers match events to o.
func WithObserver(o Observer) Option {
	return func(v *Versus) { v.observer = o }
}

// WithLogger sets the match logger.
func WithLogger(l *log.Logger) Option {
	return func(v *Versus) { v.log = l }
}

// NewVersus pairs two engines. Both should already be Reset, normally with
// the same seed so both seats see the same pieces.
func NewVersus(id MatchID, p1, p2 *engine.Engine, opts ...Option) *Versus {
	v := &Versus{
		id:       id,
		engines:  [2]*engine.Engine{p1, p2},
		firstOut: NoWinner,
		log:      log.New(io.Discard),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// ID returns the match identifier.
func (v *Versus) ID() MatchID { return v.id }

// Frame returns the number of frames stepped.
func (v *Versus) Frame() uint64 { return v.frame }

// Engine returns the engine of a seat.
func (v *Versus) Engine(p PlayerID) *engine.Engine { return v.engines[p] }

// Engines returns both engines in seat order.
func (v *Versus) Engines() [2]*engine.Engine { return v.engines }

// Done reports whether both seats have reached GAMEOVER.
func (v *Versus) Done() bool { return v.over[Player1] && v.over[Player2] }

// Step advances both seats by one frame.
func (v *Versus) Step(in core.MultiInputFrame) {
	for _, p := range [...]PlayerID{Player1, Player2} {
		e := v.engines[p]
		e.Step(in.Player(p))

		if n := e.State().Lines; n > v.lines[p] {
			v.emit(LinesEvent{Player: p, Lines: n - v.lines[p], Frame: v.frame})
			v.lines[p] = n
		}
		if v.over[p] || e.Phase() != engine.PhaseGameOver {
			continue
		}
		v.over[p] = true
		if v.firstOut == NoWinner {
			v.firstOut = p
			v.log.Info("top out", "match", v.id, "player", p, "frame", v.frame)
			v.emit(TopOutEvent{Player: p, Frame: v.frame})
			v.engines[other(p)].OpponentGameOver(true)
		}
	}
	v.frame++
}

// Winner returns the seat that did not top out first, or NoWinner while
// nobody has.
func (v *Versus) Winner() PlayerID {
	if v.firstOut == NoWinner {
		return NoWinner
	}
	return other(v.firstOut)
}

// Result summarizes the match as it stands. A match stopped before anybody
// topped out goes to the higher score.
func (v *Versus) Result(reason MatchEndReason) MatchResult {
	s1, s2 := v.engines[Player1].State(), v.engines[Player2].State()
	winner := v.Winner()
	if winner == NoWinner {
		switch {
		case s1.Score > s2.Score:
			winner = Player1
		case s2.Score > s1.Score:
			winner = Player2
		}
	}
	return MatchResult{
		MatchID: v.id,
		Reason:  reason,
		Winner:  winner,
		Score1:  s1.Score,
		Score2:  s2.Score,
		Lines1:  s1.Lines,
		Lines2:  s2.Lines,
		Frames:  v.frame,
	}
}

// Run steps the match until both seats finish, limit frames pass (0 means no
// limit) or ctx is cancelled. Every frame's input is passed to record before
// it is stepped when record is non-nil.
func (v *Versus) Run(ctx context.Context, players [2]Controller, limit uint64, record func(core.MultiInputFrame)) (MatchResult, error) {
	for !v.Done() {
		if limit > 0 && v.frame >= limit {
			return v.end(MatchEndReasonFrameLimit), nil
		}
		select {
		case <-ctx.Done():
			res := v.end(MatchEndReasonCancelled)
			return res, fmt.Errorf("multiplayer: match %s: %w", v.id, ctx.Err())
		default:
		}

		var in core.MultiInputFrame
		for _, p := range [...]PlayerID{Player1, Player2} {
			in.SetPlayer(p, players[p].Input(v.engines[p]))
		}
		if record != nil {
			record(in)
		}
		v.Step(in)
	}
	return v.end(MatchEndReasonCompleted), nil
}

func (v *Versus) end(reason MatchEndReason) MatchResult {
	res := v.Result(reason)
	if !v.ended {
		v.ended = true
		v.log.Info("match ended", "match", v.id, "reason", reason, "winner", res.Winner, "frames", res.Frames)
		v.emit(MatchEndedEvent{Result: res})
	}
	return res
}

func (v *Versus) emit(evt Event) {
	if v.observer != nil {
		v.observer.Send(evt)
	}
}

func other(p PlayerID) PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}
