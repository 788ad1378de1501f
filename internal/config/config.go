// Package config provides YAML-based rule and speed configuration loading
// and level progression for the engine.
package config

// Rules is the fixed set of named options that shape how the engine plays.
// Values that are zero in YAML keep their zero meaning; start from
// DefaultRules when building rules in code.
type Rules struct {
	Name      string         `yaml:"name"`
	Field     FieldRules     `yaml:"field"`
	Spawn     SpawnRules     `yaml:"spawn"`
	Hold      HoldRules      `yaml:"hold"`
	Rotate    RotateRules    `yaml:"rotate"`
	Move      MoveRules      `yaml:"move"`
	Drop      DropRules      `yaml:"drop"`
	LockReset LockResetRules `yaml:"lock_reset"`
	Delay     DelayRules     `yaml:"delay"`
	Twist     TwistRules     `yaml:"twist"`
	Scoring   ScoringRules   `yaml:"scoring"`
	Clear     ClearRules     `yaml:"clear"`
	Ready     ReadyRules     `yaml:"ready"`
}

// FieldRules defines playfield dimensions and lock-out rules.
type FieldRules struct {
	Width               int  `yaml:"width"`
	Height              int  `yaml:"height"`
	HiddenHeight        int  `yaml:"hidden_height"`
	Ceiling             bool `yaml:"ceiling"`
	LockoutDeath        bool `yaml:"lockout_death"`         // a piece locked wholly above the visible area ends the game
	PartialLockoutDeath bool `yaml:"partial_lockout_death"` // any block locked above the visible area ends the game
}

// SpawnRules defines where new pieces appear.
type SpawnRules struct {
	EnterAboveField   bool `yaml:"enter_above_field"`    // spawn with the lowest block on row -1
	EnterMaxDistanceY int  `yaml:"enter_max_distance_y"` // rows a blocked spawn may be raised
	NextCount         int  `yaml:"next_count"`           // pieces shown in the preview queue
	OffsetX           int  `yaml:"offset_x"`
	OffsetY           int  `yaml:"offset_y"`
}

// HoldRules defines the hold slot.
type HoldRules struct {
	Enable         bool `yaml:"enable"`
	Initial        bool `yaml:"initial"`         // pre-emptive hold from a button held during entry delay
	InitialLimit   bool `yaml:"initial_limit"`   // the hold button must be released between pre-emptive holds
	ResetDirection bool `yaml:"reset_direction"` // held pieces return to their spawn direction
	Limit          int  `yaml:"limit"`           // holds per game, negative for unlimited
	NextSkip       bool `yaml:"next_skip"`       // hold during READY takes the first queued piece
}

// RotateRules defines rotation behaviour.
type RotateRules struct {
	Initial           bool `yaml:"initial"`       // pre-rotate from a button held during entry delay
	InitialLimit      bool `yaml:"initial_limit"` // the same direction must be released between pre-rotations
	InitialWallkick   bool `yaml:"initial_wallkick"`
	Wallkick          bool `yaml:"wallkick"`
	MaxUpwardWallkick int  `yaml:"max_upward_wallkick"` // negative for unlimited
	AllowReverse      bool `yaml:"allow_reverse"`       // B rotates the other way
	AllowDouble       bool `yaml:"allow_double"`        // E rotates 180 degrees
	DefaultRight      bool `yaml:"default_right"`       // A rotates clockwise
	QuickTurn         bool `yaml:"quick_turn"`          // two-block piece turns twice after a failed rotation
}

// MoveRules defines horizontal movement and auto-repeat.
type MoveRules struct {
	FirstFrame              bool `yaml:"first_frame"` // the piece reacts on its spawn frame
	Diagonal                bool `yaml:"diagonal"`    // drops are allowed while moving sideways
	UpAndDown               bool `yaml:"up_and_down"` // drops are allowed with up and down both held
	LeftAndRightAllow       bool `yaml:"left_and_right_allow"`
	LeftAndRightUsePrevious bool `yaml:"left_and_right_use_previous"`
	DASInReady              bool `yaml:"das_in_ready"`
	DASInMoveFirstFrame     bool `yaml:"das_in_move_first_frame"`
	DASInLockFlash          bool `yaml:"das_in_lock_flash"`
	DASInLineClear          bool `yaml:"das_in_line_clear"`
	DASInARE                bool `yaml:"das_in_are"`
	DASInARELastFrame       bool `yaml:"das_in_are_last_frame"`
	DASInEndingStart        bool `yaml:"das_in_ending_start"`
	DASChargeOnBlockedMove  bool `yaml:"das_charge_on_blocked_move"`
	DASStoreChargeOnNeutral bool `yaml:"das_store_charge_on_neutral"`
	DASRedirectInDelay      bool `yaml:"das_redirect_in_delay"`
	ShiftLock               bool `yaml:"shift_lock"` // a manual lock ignores drop buttons until released
}

// DropRules defines hard and soft drop.
type DropRules struct {
	HardDrop            bool    `yaml:"hard_drop"`
	HardDropLock        bool    `yaml:"hard_drop_lock"`
	HardDropLimit       bool    `yaml:"hard_drop_limit"` // release required between hard drops
	SoftDrop            bool    `yaml:"soft_drop"`
	SoftDropLock        bool    `yaml:"soft_drop_lock"`
	SoftDropLimit       bool    `yaml:"soft_drop_limit"`
	SoftDropSurfaceLock bool    `yaml:"soft_drop_surface_lock"`
	SoftDropSpeed       float64 `yaml:"soft_drop_speed"`    // multiplier of the denominator, or of gravity
	SoftDropMultiply    bool    `yaml:"soft_drop_multiply"` // SoftDropSpeed multiplies gravity
	SoftDropGravityCap  bool    `yaml:"soft_drop_gravity_cap"`
}

// LockReset limit-over behaviours.
const (
	LimitOverNoReset    = "noreset"
	LimitOverInstant    = "instant"
	LimitOverNoWallkick = "nowallkick"
)

// LockResetRules defines which actions reset the lock delay and how often.
type LockResetRules struct {
	Fall        bool   `yaml:"fall"`
	Move        bool   `yaml:"move"`
	Rotate      bool   `yaml:"rotate"`
	Wallkick    bool   `yaml:"wallkick"`
	LimitMove   int    `yaml:"limit_move"`   // negative for unlimited
	LimitRotate int    `yaml:"limit_rotate"` // negative for unlimited
	ShareCount  bool   `yaml:"share_count"`
	LimitOver   string `yaml:"limit_over"`
}

// DelayRules defines lock flash behaviour and delay cancelling.
type DelayRules struct {
	LockFlashOnlyFrame       bool `yaml:"lock_flash_only_frame"`
	LockFlashBeforeLineClear bool `yaml:"lock_flash_before_line_clear"`
	LineCancelMove           bool `yaml:"line_cancel_move"`
	LineCancelRotate         bool `yaml:"line_cancel_rotate"`
	LineCancelHold           bool `yaml:"line_cancel_hold"`
	ARECancelMove            bool `yaml:"are_cancel_move"`
	ARECancelRotate          bool `yaml:"are_cancel_rotate"`
	ARECancelHold            bool `yaml:"are_cancel_hold"`
	LineFallAnim             bool `yaml:"line_fall_anim"`
}

// Twist mini detection.
const (
	TwistMiniRotateCheck  = "rotatecheck"
	TwistMiniWallkickFlag = "wallkick"
)

// TwistRules defines twist detection.
type TwistRules struct {
	Enable    bool   `yaml:"enable"`
	AllSpin   bool   `yaml:"all_spin"` // every piece can twist, not only T
	AllowKick bool   `yaml:"allow_kick"`
	EnableEZ  bool   `yaml:"enable_ez"`
	MiniType  string `yaml:"mini_type"`
}

// Combo types.
const (
	ComboDisable = "disable"
	ComboNormal  = "normal"
	ComboDouble  = "double"
)

// ScoringRules defines streak counters.
type ScoringRules struct {
	B2B      bool   `yaml:"b2b"`
	SplitB2B bool   `yaml:"split_b2b"`
	Combo    string `yaml:"combo"`
}

// Clear modes.
const (
	ClearLine         = "line"
	ClearColor        = "color"
	ClearLineColor    = "line_color"
	ClearGemColor     = "gem_color"
	ClearLineGemBomb  = "line_gem_bomb"
	ClearLineGemSpark = "line_gem_spark"
)

// Line gravity types.
const (
	GravityNative      = "native"
	GravityCascade     = "cascade"
	GravityCascadeSlow = "cascade_slow"
)

// ClearRules selects the clear-rule variant.
type ClearRules struct {
	Mode               string `yaml:"mode"`
	Gravity            string `yaml:"gravity"`
	ColorSize          int    `yaml:"color_size"`
	GarbageColorClear  bool   `yaml:"garbage_color_clear"`
	GemSameColor       bool   `yaml:"gem_same_color"`
	IgnoreHidden       bool   `yaml:"ignore_hidden"`
	LineColorDiagonals bool   `yaml:"line_color_diagonals"`
	CascadeDelay       int    `yaml:"cascade_delay"`
	CascadeClearDelay  int    `yaml:"cascade_clear_delay"`
	Sticky             int    `yaml:"sticky"` // 1 links by color after clears, 2 also ignores links for cascades
	ConnectBlocks      bool   `yaml:"connect_blocks"`
	Squares            bool   `yaml:"squares"` // form gold/silver 4×4 squares from linked blocks
	Big                bool   `yaml:"big"`
	BigMove            bool   `yaml:"big_move"`
	BigHalf            bool   `yaml:"big_half"`
}

// ReadyRules defines the READY/GO countdown in frames.
type ReadyRules struct {
	ReadyStart int `yaml:"ready_start"`
	GoStart    int `yaml:"go_start"`
	GoEnd      int `yaml:"go_end"`
}

// Speed holds the timing values for one level.
type Speed struct {
	Gravity     int `yaml:"gravity"`     // added to the accumulator every frame; negative drops instantly
	Denominator int `yaml:"denominator"` // accumulator threshold for one row
	ARE         int `yaml:"are"`
	ARELine     int `yaml:"are_line"`
	LineDelay   int `yaml:"line_delay"`
	LockDelay   int `yaml:"lock_delay"`
	DAS         int `yaml:"das"`
	ARR         int `yaml:"arr"`
	LockFlash   int `yaml:"lock_flash"`
}

// SpeedConfig is a level table plus progression settings.
type SpeedConfig struct {
	LinesPerLevel int              `yaml:"lines_per_level"`
	MaxLevel      int              `yaml:"max_level"`
	Levels        []Speed          `yaml:"levels"`
	Difficulty    DifficultyConfig `yaml:"difficulty"`
}

// DifficultyConfig defines where progression starts.
type DifficultyConfig struct {
	Enabled    bool `yaml:"enabled"`
	StartLevel int  `yaml:"start_level"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StartLevelForPreset returns the starting level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 12
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
