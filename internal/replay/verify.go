package replay

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/multiplayer"
)

// Factory builds a freshly reset engine for r. It is called once per seat.
type Factory func(r *Replay) (*engine.Engine, error)

// Play re-runs every seat of r on engines from build and returns them in
// seat order. Two-seat replays are stepped as a versus match.
func Play(r *Replay, build Factory) ([]*engine.Engine, error) {
	engines := make([]*engine.Engine, len(r.Seats))
	for i := range engines {
		e, err := build(r)
		if err != nil {
			return nil, fmt.Errorf("replay: seat %d: %w", i+1, err)
		}
		engines[i] = e
	}

	switch len(engines) {
	case 1:
		p := NewPlayback(r, core.Player1)
		for in, ok := p.Next(); ok; in, ok = p.Next() {
			engines[0].Step(in)
		}
	case 2:
		v := multiplayer.NewVersus(multiplayer.MatchID(r.ID), engines[0], engines[1])
		p1, p2 := NewPlayback(r, core.Player1), NewPlayback(r, core.Player2)
		for i := r.Frames(); i > 0; i-- {
			var in core.MultiInputFrame
			in.SetPlayer(core.Player1, p1.Input(nil))
			in.SetPlayer(core.Player2, p2.Input(nil))
			v.Step(in)
		}
	default:
		return nil, fmt.Errorf("replay: %d seats", len(engines))
	}
	return engines, nil
}

// Verify re-runs r and checks every seat ends with the recorded field, score
// and line count. Divergence is reported as ErrMismatch.
func Verify(r *Replay, build Factory) error {
	engines, err := Play(r, build)
	if err != nil {
		return err
	}
	for i, e := range engines {
		want := r.Seats[i]
		st := e.State()
		switch {
		case st.Score != want.Score:
			return fmt.Errorf("%w: seat %d score %d, recorded %d", ErrMismatch, i+1, st.Score, want.Score)
		case st.Lines != want.Lines:
			return fmt.Errorf("%w: seat %d lines %d, recorded %d", ErrMismatch, i+1, st.Lines, want.Lines)
		case e.Field().AttrString() != want.Field:
			return fmt.Errorf("%w: seat %d field differs", ErrMismatch, i+1)
		}
	}
	return nil
}
