package engine

import "github.com/vovakirdan/blockfall/internal/config"

// Twist classifies a piece locked by rotation into a tight pocket.
type Twist int

const (
	TwistNone Twist = iota
	TwistImmobileEZ
	TwistImmobileMini
	TwistPointMini
	TwistImmobile
	TwistPoint
)

func (t Twist) String() string {
	switch t {
	case TwistImmobileEZ:
		return "immobile-ez"
	case TwistImmobileMini:
		return "immobile-mini"
	case TwistPointMini:
		return "point-mini"
	case TwistImmobile:
		return "immobile"
	case TwistPoint:
		return "point"
	default:
		return "none"
	}
}

// IsMini reports whether the twist is one of the mini kinds.
func (t Twist) IsMini() bool {
	return t == TwistImmobileMini || t == TwistPointMini
}

// ComboType selects how consecutive clears build a combo.
type ComboType int

const (
	ComboDisable ComboType = iota
	ComboNormal
	ComboDouble // only clears of two or more lines extend the combo
)

// ParseComboType maps a config name to a ComboType.
func ParseComboType(s string) ComboType {
	switch s {
	case config.ComboNormal:
		return ComboNormal
	case config.ComboDouble:
		return ComboDouble
	default:
		return ComboDisable
	}
}

// ClearMode selects the clear-rule variant.
type ClearMode int

const (
	ClearLine ClearMode = iota
	ClearColor
	ClearLineColor
	ClearGemColor
	ClearLineGemBomb
	ClearLineGemSpark
)

// ParseClearMode maps a config name to a ClearMode. Unknown names are line
// clears.
func ParseClearMode(s string) ClearMode {
	switch s {
	case config.ClearColor:
		return ClearColor
	case config.ClearLineColor:
		return ClearLineColor
	case config.ClearGemColor:
		return ClearGemColor
	case config.ClearLineGemBomb:
		return ClearLineGemBomb
	case config.ClearLineGemSpark:
		return ClearLineGemSpark
	default:
		return ClearLine
	}
}

func (m ClearMode) bombs() bool {
	return m == ClearLineGemBomb || m == ClearLineGemSpark
}

// LineGravity selects how blocks settle after a clear.
type LineGravity int

const (
	GravityNative LineGravity = iota
	GravityCascade
	GravityCascadeSlow
)

// ParseLineGravity maps a config name to a LineGravity.
func ParseLineGravity(s string) LineGravity {
	switch s {
	case config.GravityCascade:
		return GravityCascade
	case config.GravityCascadeSlow:
		return GravityCascadeSlow
	default:
		return GravityNative
	}
}

func (g LineGravity) cascades() bool {
	return g == GravityCascade || g == GravityCascadeSlow
}

// ScoreEvent describes one lock or one clear step.
type ScoreEvent struct {
	PieceID int
	Lines   int
	Twist   Twist
	Split   bool
	B2B     bool
	Combo   int
	Chain   int
	Cleared int // blocks removed by a non-line clear
	Colors  int
	Gems    int
	Garbage int
	Gold    int
	Silver  int
	Level   int
}

// TwistMini reports whether the event is a mini twist.
func (e ScoreEvent) TwistMini() bool { return e.Twist.IsMini() }

// TwistEZ reports whether the event is an easy immobile twist.
func (e ScoreEvent) TwistEZ() bool { return e.Twist == TwistImmobileEZ }

var (
	linePoints      = [...]int{0, 100, 300, 500, 800}
	twistPoints     = [...]int{400, 800, 1200, 1600}
	twistMiniPoints = [...]int{100, 200, 400}
)

// Points returns the reference score of an event: guideline line values,
// twist bonuses, a half bonus for back-to-back, combo and chain bonuses,
// all multiplied by level+1.
func (e ScoreEvent) Points() int {
	lines := e.Lines
	if lines < 0 {
		lines = 0
	}

	base := 0
	switch {
	case e.Twist == TwistNone || e.Twist == TwistImmobileEZ:
		if lines < len(linePoints) {
			base = linePoints[lines]
		} else {
			base = linePoints[len(linePoints)-1] * lines / 4
		}
		if e.Twist == TwistImmobileEZ && lines > 0 {
			base += 100
		}
	case e.Twist.IsMini():
		base = twistMiniPoints[min(lines, len(twistMiniPoints)-1)]
	default:
		base = twistPoints[min(lines, len(twistPoints)-1)]
	}

	if e.B2B && lines > 0 {
		base += base / 2
	}
	if e.Combo > 1 {
		base += 50 * (e.Combo - 1)
	}
	base += 10 * e.Cleared * (e.Chain + 1)
	base += 50 * e.Gems
	base += 500*e.Gold + 300*e.Silver
	return base * (e.Level + 1)
}
