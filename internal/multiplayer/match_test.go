package multiplayer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

func newEngine(seed int64) *engine.Engine {
	r := config.DefaultRules()
	r.Ready = config.ReadyRules{GoEnd: 1}
	return engine.New(engine.Options{Rules: r}, seed)
}

var (
	idle    = ControllerFunc(func(*engine.Engine) core.InputFrame { return 0 })
	dropper = ControllerFunc(func(e *engine.Engine) core.InputFrame {
		if e.Frame()%2 == 0 {
			return core.NewInputFrame(core.ButtonUp)
		}
		return 0
	})
)

func TestVersusFirstTopOutLoses(t *testing.T) {
	obs := NewChannelObserver(256)
	v := NewVersus("m1", newEngine(5), newEngine(5), WithObserver(obs))

	var frames int
	res, err := v.Run(context.Background(), [2]Controller{dropper, idle}, 20000, func(core.MultiInputFrame) { frames++ })
	require.NoError(t, err)

	assert.True(t, v.Done())
	assert.Equal(t, MatchEndReasonCompleted, res.Reason)
	assert.Equal(t, Player2, res.Winner)
	assert.Equal(t, uint64(frames), res.Frames)
	assert.Equal(t, MatchID("m1"), res.MatchID)

	var topOuts []TopOutEvent
	var ended int
	for len(obs.Events()) > 0 {
		switch evt := (<-obs.Events()).(type) {
		case TopOutEvent:
			topOuts = append(topOuts, evt)
		case MatchEndedEvent:
			ended++
			assert.Equal(t, res, evt.Result)
		}
	}
	require.Len(t, topOuts, 1)
	assert.Equal(t, Player1, topOuts[0].Player)
	assert.Equal(t, 1, ended)
}

func TestVersusFrameLimit(t *testing.T) {
	v := NewVersus(NewMatchID(), newEngine(1), newEngine(1))
	res, err := v.Run(context.Background(), [2]Controller{idle, idle}, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, MatchEndReasonFrameLimit, res.Reason)
	assert.Equal(t, NoWinner, res.Winner)
	assert.Equal(t, uint64(100), v.Frame())
}

func TestVersusCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v := NewVersus("m2", newEngine(1), newEngine(1))
	res, err := v.Run(ctx, [2]Controller{idle, idle}, 0, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, MatchEndReasonCancelled, res.Reason)
	assert.Equal(t, uint64(0), res.Frames)
}

func TestVersusDeterministic(t *testing.T) {
	play := func() (MatchResult, string) {
		v := NewVersus("same", newEngine(9), newEngine(9))
		res, err := v.Run(context.Background(), [2]Controller{dropper, dropper}, 5000, nil)
		require.NoError(t, err)
		return res, v.Engine(Player2).Field().String()
	}
	r1, f1 := play()
	r2, f2 := play()
	assert.Equal(t, r1, r2)
	assert.Equal(t, f1, f2)
}

func TestChannelObserverDropsOldest(t *testing.T) {
	obs := NewChannelObserver(2)
	obs.Send(LinesEvent{Lines: 1})
	obs.Send(LinesEvent{Lines: 2})
	obs.Send(LinesEvent{Lines: 3})
	assert.Equal(t, LinesEvent{Lines: 2}, <-obs.Events())
	assert.Equal(t, LinesEvent{Lines: 3}, <-obs.Events())

	obs.Close()
	obs.Close()
	obs.Send(LinesEvent{Lines: 4})
	assert.Empty(t, obs.Events())
}

func TestMatchModeString(t *testing.T) {
	assert.Equal(t, "Versus", MatchModeVersus.String())
	assert.Equal(t, "Unknown", MatchMode(9).String())
	assert.Equal(t, "frame limit", MatchEndReasonFrameLimit.String())
}
