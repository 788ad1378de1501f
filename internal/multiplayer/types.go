// Package multiplayer drives head-to-head matches: two engines stepped in a
// fixed order every frame, each told when the other tops out.
package multiplayer

import (
	"github.com/google/uuid"

	"github.com/vovakirdan/blockfall/internal/core"
)

// PlayerID is an alias to core.PlayerID for convenience.
type PlayerID = core.PlayerID

// Re-export player constants for convenience.
const (
	Player1 = core.Player1
	Player2 = core.Player2

	// NoWinner marks a draw or an unfinished match.
	NoWinner PlayerID = -1
)

// MatchID uniquely identifies a match. It also keys the match's replay.
type MatchID string

// NewMatchID returns a fresh random identifier.
func NewMatchID() MatchID {
	return MatchID(uuid.NewString())
}

// MatchMode defines how a match is configured.
type MatchMode int

const (
	// MatchModeSolo is a single engine with nobody to beat.
	MatchModeSolo MatchMode = iota

	// MatchModeVersus is two engines started from the same seed.
	MatchModeVersus
)

// String returns a human-readable name for the match mode.
func (m MatchMode) String() string {
	switch m {
	case MatchModeSolo:
		return "Solo"
	case MatchModeVersus:
		return "Versus"
	default:
		return "Unknown"
	}
}
