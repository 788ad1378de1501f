package engine

import (
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/field"
)

// Piece is the geometry capability the engine drives. Orientation 0 is the
// spawn orientation and clockwise rotation adds one.
type Piece interface {
	ID() int
	Dir() int
	SetDir(dir int)
	Big() bool
	SetBig(big bool)

	// Blocks returns the occupied offsets at an orientation.
	Blocks(dir int) []field.Point
	// Extents returns the bounding box of Blocks(dir).
	Extents(dir int) core.Rect
	// Collides reports whether the piece at (x, y) facing dir overlaps a
	// block or a wall.
	Collides(x, y, dir int, f *field.Field) bool
	// Place stamps the piece at its current orientation and reports whether
	// any block landed in the visible area.
	Place(x, y int, f *field.Field, flags field.Flags, connect bool) bool
}

// PieceSet creates pieces by ID.
type PieceSet interface {
	NewPiece(id int) Piece
}

// PieceSetFunc adapts a function to PieceSet.
type PieceSetFunc func(id int) Piece

func (fn PieceSetFunc) NewPiece(id int) Piece { return fn(id) }

// Kick is the result of a successful wall kick.
type Kick struct {
	OffsetX int
	OffsetY int
	Dir     int
}

// IsUpward reports whether the kick moved the piece up.
func (k Kick) IsUpward() bool {
	return k.OffsetY < 0
}

// WallKick finds an alternative position for a rotation that collides.
// rotate is -1 (counter-clockwise), 1 (clockwise) or 2 (180 degrees).
type WallKick interface {
	Kick(x, y, rotate, oldDir, newDir int, allowUpward bool, p Piece, f *field.Field) (Kick, bool)
}

// Randomizer produces the reproducible sequence of piece IDs.
type Randomizer interface {
	Next() int
}

// Listener receives notifications for presentation and scoring. All calls
// happen synchronously inside Step.
type Listener interface {
	PhaseEntered(p Phase)
	PieceLocked(ev ScoreEvent)
	LineCleared(row int)
	BlockBroken(x, y int, c field.Cell)
	RotationFailed(count int)
}

// NopListener implements Listener with no-ops. Embed it to handle only some
// notifications.
type NopListener struct{}

func (NopListener) PhaseEntered(Phase)               {}
func (NopListener) PieceLocked(ScoreEvent)           {}
func (NopListener) LineCleared(int)                  {}
func (NopListener) BlockBroken(int, int, field.Cell) {}
func (NopListener) RotationFailed(int)               {}

// Request is the input to a move search. Field is a private copy.
type Request struct {
	Field   *field.Field
	Piece   int
	Hold    int // -1 when the hold slot is empty
	Next    []int
	HoldOK  bool
	PieceNo int // pieces spawned so far, used to match a Suggestion
}

// Suggestion is the result of a move search.
type Suggestion struct {
	PieceNo int
	X, Y    int
	Dir     int
	Hold    bool
	Score   int
}

// Assistant runs a move search off the simulation thread. Begin must not
// block; Done is polled once per frame and Suggestion is read only after
// Done reports true.
type Assistant interface {
	Begin(req Request)
	Done() bool
	Suggestion() Suggestion
}
