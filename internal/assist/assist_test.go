package assist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/field"
	"github.com/vovakirdan/blockfall/internal/piece"
)

// wellField fills the bottom row except its first four columns.
func wellField() *field.Field {
	f := field.NewDefault()
	for x := 4; x < f.Width(); x++ {
		f.SetCell(x, f.Height()-1, field.NewCell(field.ColorGray, field.Visible))
	}
	return f
}

func TestSearchFindsLineClear(t *testing.T) {
	f := wellField()
	s := Search(engine.Request{Field: f, Piece: piece.I, Hold: -1, PieceNo: 7}, DefaultWeights)

	assert.Equal(t, 7, s.PieceNo)
	assert.False(t, s.Hold)

	p := piece.New(piece.I)
	p.SetDir(s.Dir)
	placed := f.Clone()
	require.True(t, p.Place(s.X, s.Y, placed, field.Visible, false))
	assert.Equal(t, []int{f.Height() - 1}, placed.FullLines())
	assert.Equal(t, 6, f.BlockCount(), "request field untouched")
}

func TestSearchPrefersHold(t *testing.T) {
	req := engine.Request{
		Field:  wellField(),
		Piece:  piece.S,
		Hold:   -1,
		Next:   []int{piece.I},
		HoldOK: true,
	}
	s := Search(req, DefaultWeights)
	assert.True(t, s.Hold)

	req.HoldOK = false
	assert.False(t, Search(req, DefaultWeights).Hold)
}

func TestEvaluatePunishesHoles(t *testing.T) {
	flat := field.NewDefault()
	holed := field.NewDefault()
	h := holed.Height()
	holed.SetCell(0, h-2, field.NewCell(field.ColorGray, field.Visible))

	assert.Greater(t, Evaluate(flat, DefaultWeights), Evaluate(holed, DefaultWeights))
}

func TestWorkerInline(t *testing.T) {
	w := NewWorker(Inline())
	assert.False(t, w.Done())

	w.Begin(engine.Request{Field: wellField(), Piece: piece.I, Hold: -1, PieceNo: 3})
	require.True(t, w.Done())
	assert.Equal(t, 3, w.Suggestion().PieceNo)
	assert.Equal(t, 0, w.Running())
}

func TestWorkerKeepsLatest(t *testing.T) {
	w := NewWorker()
	w.Begin(engine.Request{Field: wellField(), Piece: piece.T, Hold: -1, PieceNo: 1})
	w.Begin(engine.Request{Field: wellField(), Piece: piece.I, Hold: -1, PieceNo: 2})
	w.Wait()

	require.True(t, w.Done())
	assert.Equal(t, 2, w.Suggestion().PieceNo)
	assert.Equal(t, 0, w.Running())
}

func TestBotLocksPieces(t *testing.T) {
	e := engine.New(engine.Options{Assist: NewWorker(Inline())}, 5)
	var bot Bot
	for i := 0; i < 3000 && e.Phase() != engine.PhaseGameOver; i++ {
		e.Step(bot.Input(e))
	}

	assert.GreaterOrEqual(t, e.Stats().Pieces, 10)
}

func TestBotIdleOutsideMove(t *testing.T) {
	e := engine.New(engine.Options{Assist: NewWorker(Inline())}, 5)
	var bot Bot
	assert.Equal(t, engine.PhaseSetting, e.Phase())
	assert.Zero(t, bot.Input(e))
}
