package multiplayer

// Event is something an Observer is told about while a match runs.
type Event interface {
	matchEvent()
}

// LinesEvent is sent when a seat clears lines.
type LinesEvent struct {
	Player PlayerID
	Lines  int
	Frame  uint64
}

func (LinesEvent) matchEvent() {}

// TopOutEvent is sent when a seat reaches GAMEOVER.
type TopOutEvent struct {
	Player PlayerID
	Frame  uint64
}

func (TopOutEvent) matchEvent() {}

// MatchEndedEvent is sent once, when the match ends.
type MatchEndedEvent struct {
	Result MatchResult
}

func (MatchEndedEvent) matchEvent() {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // Both seats finished
	MatchEndReasonFrameLimit                       // Ran out of frames
	MatchEndReasonCancelled                        // Context cancelled
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "completed"
	case MatchEndReasonFrameLimit:
		return "frame limit"
	case MatchEndReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MatchResult contains the outcome of a match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  PlayerID
	Score1  int
	Score2  int
	Lines1  int
	Lines2  int
	Frames  uint64
}
