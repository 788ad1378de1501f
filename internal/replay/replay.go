// Package replay records the per-frame input of a game and plays it back.
// Since an engine is a pure function of its seed and input, a replay is
// just those two plus the final field to check against.
package replay

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// ErrMismatch is returned by Verify when playback diverges from the record.
var ErrMismatch = errors.New("replay: playback diverged")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Seat is the recorded input and outcome of one engine.
type Seat struct {
	Inputs []core.InputFrame `json:"inputs"`
	Field  string            `json:"field"` // extended serialization at the end
	Score  int               `json:"score"`
	Lines  int               `json:"lines"`
}

// Replay is a complete recording. Versus matches have two seats.
type Replay struct {
	ID         string `json:"id"`
	Seed       int64  `json:"seed"`
	Randomizer string `json:"randomizer"`
	Rules      string `json:"rules,omitempty"`
	Speed      string `json:"speed,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Seats      []Seat `json:"seats"`
}

// Frames returns the length of the longest seat recording.
func (r *Replay) Frames() int {
	n := 0
	for _, s := range r.Seats {
		n = max(n, len(s.Inputs))
	}
	return n
}

// Encode serializes a replay as JSON.
func Encode(r *Replay) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: encode %s: %w", r.ID, err)
	}
	return data, nil
}

// Decode parses a replay produced by Encode.
func Decode(data []byte) (*Replay, error) {
	var r Replay
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if len(r.Seats) == 0 || len(r.Seats) > 2 {
		return nil, fmt.Errorf("replay: decode: %d seats", len(r.Seats))
	}
	return &r, nil
}

// Recorder collects input while a game runs.
type Recorder struct {
	r *Replay
}

// NewRecorder starts a recording for the given number of seats (1 or 2).
func NewRecorder(seed int64, randomizer string, seats int) *Recorder {
	seats = min(max(seats, 1), 2)
	return &Recorder{r: &Replay{
		ID:         uuid.NewString(),
		Seed:       seed,
		Randomizer: randomizer,
		Seats:      make([]Seat, seats),
	}}
}

// SetConfig records which rule file, speed file and difficulty preset the
// game used, so playback can load the same ones.
func (rc *Recorder) SetConfig(rules, speed, difficulty string) {
	rc.r.Rules, rc.r.Speed, rc.r.Difficulty = rules, speed, difficulty
}

// Record appends one frame of input for a seat.
func (rc *Recorder) Record(seat core.PlayerID, in core.InputFrame) {
	if int(seat) < len(rc.r.Seats) {
		rc.r.Seats[seat].Inputs = append(rc.r.Seats[seat].Inputs, in)
	}
}

// RecordMulti appends one frame for every seat.
func (rc *Recorder) RecordMulti(in core.MultiInputFrame) {
	for i := range rc.r.Seats {
		rc.Record(core.PlayerID(i), in.Player(core.PlayerID(i)))
	}
}

// Finish stores each engine's final state and returns the replay. Engines
// are matched to seats in order.
func (rc *Recorder) Finish(engines ...*engine.Engine) *Replay {
	for i, e := range engines {
		if i >= len(rc.r.Seats) {
			break
		}
		s := &rc.r.Seats[i]
		st := e.State()
		s.Field = e.Field().AttrString()
		s.Score = st.Score
		s.Lines = st.Lines
	}
	return rc.r
}

// Playback feeds a recorded seat back frame by frame. Past the end of the
// recording it returns empty input.
type Playback struct {
	inputs []core.InputFrame
	pos    int
}

// NewPlayback plays the given seat of r.
func NewPlayback(r *Replay, seat core.PlayerID) *Playback {
	if int(seat) >= len(r.Seats) {
		return &Playback{}
	}
	return &Playback{inputs: r.Seats[seat].Inputs}
}

// Next returns the next frame and whether one was left.
func (p *Playback) Next() (core.InputFrame, bool) {
	if p.pos >= len(p.inputs) {
		return 0, false
	}
	in := p.inputs[p.pos]
	p.pos++
	return in, true
}

// Input implements multiplayer.Controller.
func (p *Playback) Input(*engine.Engine) core.InputFrame {
	in, _ := p.Next()
	return in
}

// Remaining returns how many frames are left.
func (p *Playback) Remaining() int { return len(p.inputs) - p.pos }
