package engine

// Stats accumulates per-game statistics.
type Stats struct {
	Frames        int // frames stepped since Reset
	ActiveFrames  int // frames a piece was under control
	Pieces        int
	Lines         int
	Score         int
	Moves         int
	Rotations     int
	Holds         int
	MaxCombo      int
	MaxB2B        int
	MaxChain      int
	TwistZero     int // twists that cleared nothing
	Twists        int
	GoldSquares   int
	SilverSquares int

	ByPiece map[int]int // locks per piece ID
}

// Stats returns a copy of the statistics.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.ByPiece = make(map[int]int, e.byPiece.Len())
	e.byPiece.ForEach(func(id, n int) bool {
		s.ByPiece[id] = n
		return true
	})
	return s
}

// PieceCount returns how many pieces with the given ID have locked.
func (e *Engine) PieceCount(id int) int {
	n, _ := e.byPiece.Get(id)
	return n
}

func (e *Engine) countPiece(id int) {
	n, _ := e.byPiece.Get(id)
	e.byPiece.Put(id, n+1)
	e.stats.Pieces++
}
