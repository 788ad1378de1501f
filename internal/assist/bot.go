package assist

import (
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// giveUpFrames is how long the bot steers one piece before hard dropping it
// wherever it is.
const giveUpFrames = 120

// Bot steers the active piece toward the engine's current hint: hold first,
// then rotate, then shift, then hard drop. Each button is released for a
// frame between presses so every press registers as a push.
type Bot struct {
	last    core.InputFrame
	pieceNo int
	frames  int
}

// Input returns the buttons to feed the engine on its next Step.
func (b *Bot) Input(e *engine.Engine) core.InputFrame {
	in := b.choose(e)
	if in != 0 && b.last&in != 0 {
		in = 0
	}
	b.last = in
	return in
}

func (b *Bot) choose(e *engine.Engine) core.InputFrame {
	if e.Phase() != engine.PhaseMove {
		return 0
	}
	p, x, _ := e.Current()
	hint, ok := e.Hint()
	if p == nil || !ok {
		return 0
	}
	if hint.PieceNo != b.pieceNo {
		b.pieceNo = hint.PieceNo
		b.frames = 0
	}
	b.frames++

	switch {
	case b.frames > giveUpFrames:
		return core.NewInputFrame(core.ButtonUp)
	case hint.Hold:
		return core.NewInputFrame(core.ButtonD)
	case p.Dir() != hint.Dir:
		if (hint.Dir-p.Dir()+4)%4 == 3 {
			return core.NewInputFrame(core.ButtonA)
		}
		return core.NewInputFrame(core.ButtonB)
	case x < hint.X:
		return core.NewInputFrame(core.ButtonRight)
	case x > hint.X:
		return core.NewInputFrame(core.ButtonLeft)
	default:
		return core.NewInputFrame(core.ButtonUp)
	}
}
