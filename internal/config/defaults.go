package config

import (
	_ "embed"
)

//go:embed defaults/rules.yaml
var defaultRulesYAML []byte

//go:embed defaults/speed.yaml
var defaultSpeedYAML []byte

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		Name: "standard",
		Field: FieldRules{
			Width:        10,
			Height:       20,
			HiddenHeight: 3,
			LockoutDeath: true,
		},
		Spawn: SpawnRules{
			EnterAboveField:   true,
			EnterMaxDistanceY: 2,
			NextCount:         5,
		},
		Hold: HoldRules{
			Enable:         true,
			Initial:        true,
			ResetDirection: true,
			Limit:          -1,
			NextSkip:       true,
		},
		Rotate: RotateRules{
			Initial:           true,
			InitialWallkick:   true,
			Wallkick:          true,
			MaxUpwardWallkick: -1,
			AllowReverse:      true,
			AllowDouble:       true,
			QuickTurn:         true,
		},
		Move: MoveRules{
			FirstFrame:              true,
			Diagonal:                true,
			UpAndDown:               true,
			LeftAndRightAllow:       true,
			LeftAndRightUsePrevious: true,
			DASInReady:              true,
			DASInMoveFirstFrame:     true,
			DASInLockFlash:          true,
			DASInLineClear:          true,
			DASInARE:                true,
			DASInARELastFrame:       true,
			DASInEndingStart:        true,
			DASChargeOnBlockedMove:  true,
		},
		Drop: DropRules{
			HardDrop:      true,
			HardDropLock:  true,
			HardDropLimit: true,
			SoftDrop:      true,
			SoftDropSpeed: 0.5,
		},
		LockReset: LockResetRules{
			Fall:        true,
			Move:        true,
			Rotate:      true,
			Wallkick:    true,
			LimitMove:   15,
			LimitRotate: 15,
			ShareCount:  true,
			LimitOver:   LimitOverInstant,
		},
		Delay: DelayRules{
			LockFlashOnlyFrame: true,
			LineFallAnim:       true,
		},
		Twist: TwistRules{
			Enable:    true,
			AllowKick: true,
			MiniType:  TwistMiniRotateCheck,
		},
		Scoring: ScoringRules{
			B2B:   true,
			Combo: ComboNormal,
		},
		Clear: ClearRules{
			Mode:          ClearLine,
			Gravity:       GravityNative,
			ColorSize:     4,
			ConnectBlocks: true,
			BigMove:       true,
			BigHalf:       true,
		},
		Ready: ReadyRules{
			GoStart: 50,
			GoEnd:   100,
		},
	}
}

// DefaultSpeed returns a single-level speed table with classic timings.
func DefaultSpeed() SpeedConfig {
	return SpeedConfig{
		LinesPerLevel: 10,
		MaxLevel:      0,
		Levels: []Speed{{
			Gravity:     4,
			Denominator: 256,
			ARE:         25,
			ARELine:     25,
			LineDelay:   40,
			LockDelay:   30,
			DAS:         14,
			ARR:         1,
			LockFlash:   2,
		}},
		Difficulty: DifficultyConfig{Enabled: true},
	}
}
