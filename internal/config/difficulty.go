package config

import "github.com/vovakirdan/blockfall/internal/core"

// SpeedCurve maps cleared lines to a level and a level to its speed entry.
type SpeedCurve struct {
	cfg        SpeedConfig
	startLevel int
}

// NewSpeedCurve creates a speed curve. A config without levels falls back
// to DefaultSpeed.
func NewSpeedCurve(cfg SpeedConfig) *SpeedCurve {
	if len(cfg.Levels) == 0 {
		cfg = DefaultSpeed()
	}
	c := &SpeedCurve{cfg: cfg}
	c.SetStartLevel(cfg.Difficulty.StartLevel)
	return c
}

// SetStartLevel overrides the starting level.
func (c *SpeedCurve) SetStartLevel(level int) {
	c.startLevel = core.Clamp(level, 0, c.maxLevel())
}

// IsEnabled returns whether level progression is active.
func (c *SpeedCurve) IsEnabled() bool {
	return c.cfg.Difficulty.Enabled && c.cfg.LinesPerLevel > 0
}

// Level returns the level reached after the given number of cleared lines.
func (c *SpeedCurve) Level(lines int) int {
	if !c.IsEnabled() || lines <= 0 {
		return c.startLevel
	}
	return core.Clamp(c.startLevel+lines/c.cfg.LinesPerLevel, 0, c.maxLevel())
}

// Speed returns the speed entry for a level. Levels past the end of the
// table reuse the last entry.
func (c *SpeedCurve) Speed(level int) Speed {
	return c.cfg.Levels[core.Clamp(level, 0, len(c.cfg.Levels)-1)]
}

// SpeedAt is Speed(Level(lines)).
func (c *SpeedCurve) SpeedAt(lines int) Speed {
	return c.Speed(c.Level(lines))
}

func (c *SpeedCurve) maxLevel() int {
	last := len(c.cfg.Levels) - 1
	if c.cfg.MaxLevel > 0 && c.cfg.MaxLevel < last {
		return c.cfg.MaxLevel
	}
	return last
}
