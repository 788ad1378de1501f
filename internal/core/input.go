package core

// Button is one bit of the per-frame input vector, abstracted from physical keys.
// The platform maps keys (or an assistant, or a replay) onto buttons.
type Button uint

const (
	ButtonUp    Button = iota // Hard drop
	ButtonDown                // Soft drop
	ButtonLeft                // Move left
	ButtonRight               // Move right
	ButtonA                   // Rotate counter-clockwise
	ButtonB                   // Rotate clockwise
	ButtonC                   // Rotate counter-clockwise (alternate)
	ButtonD                   // Hold
	ButtonE                   // Rotate 180 degrees
	ButtonF                   // Mode-specific
	ButtonQuit
	ButtonPause

	ButtonCount
)

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "Up"
	case ButtonDown:
		return "Down"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonC:
		return "C"
	case ButtonD:
		return "D"
	case ButtonE:
		return "E"
	case ButtonF:
		return "F"
	case ButtonQuit:
		return "Quit"
	case ButtonPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame is the button bit-vector for a single player during one tick.
// It is the unit recorded in replays, so it must stay a plain value.
type InputFrame uint32

// NewInputFrame creates a frame with the given buttons held.
func NewInputFrame(buttons ...Button) InputFrame {
	var f InputFrame
	for _, b := range buttons {
		f.Set(b)
	}
	return f
}

// Set marks a button as held for this frame.
func (f *InputFrame) Set(b Button) {
	*f |= 1 << b
}

// Unset releases a button for this frame.
func (f *InputFrame) Unset(b Button) {
	*f &^= 1 << b
}

// Has returns true if the given button is held in this frame.
func (f InputFrame) Has(b Button) bool {
	return f&(1<<b) != 0
}

// With returns a copy of the frame with the button held.
func (f InputFrame) With(b Button) InputFrame {
	f.Set(b)
	return f
}

// Clear releases every button.
func (f *InputFrame) Clear() {
	*f = 0
}

// Controller turns a stream of input frames into held / just-pressed queries.
// Update must be called exactly once per simulation tick.
type Controller struct {
	cur  InputFrame
	prev InputFrame
	held [ButtonCount]int // consecutive frames each button has been held
}

// Update feeds the next frame into the controller.
func (c *Controller) Update(f InputFrame) {
	c.prev = c.cur
	c.cur = f
	for b := Button(0); b < ButtonCount; b++ {
		if f.Has(b) {
			c.held[b]++
		} else {
			c.held[b] = 0
		}
	}
}

// IsPress returns true while the button is held.
func (c *Controller) IsPress(b Button) bool {
	return c.cur.Has(b)
}

// IsPush returns true only on the frame the button went down.
func (c *Controller) IsPush(b Button) bool {
	return c.cur.Has(b) && !c.prev.Has(b)
}

// HeldFrames returns how many consecutive frames the button has been held.
func (c *Controller) HeldFrames(b Button) int {
	if b >= ButtonCount {
		return 0
	}
	return c.held[b]
}

// Frame returns the most recent input frame.
func (c *Controller) Frame() InputFrame {
	return c.cur
}

// Reset forgets all held state.
func (c *Controller) Reset() {
	*c = Controller{}
}

// PlayerID identifies a seat in a head-to-head match.
type PlayerID int

const (
	Player1 PlayerID = iota
	Player2
)

// String returns a human-readable name for the player.
func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "P?"
	}
}

// MultiInputFrame contains input from both seats for a single tick.
type MultiInputFrame struct {
	ByPlayer [2]InputFrame
}

// Player returns the input frame for a specific seat.
// Returns an empty frame for an unknown seat.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if id < Player1 || id > Player2 {
		return 0
	}
	return m.ByPlayer[id]
}

// SetPlayer sets the input frame for a specific seat.
func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if id < Player1 || id > Player2 {
		return
	}
	m.ByPlayer[id] = frame
}
