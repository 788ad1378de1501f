package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedRulesMatchDefaults(t *testing.T) {
	var got Rules
	if err := yaml.Unmarshal(defaultRulesYAML, &got); err != nil {
		t.Fatalf("embedded rules: %v", err)
	}
	want := DefaultRules()
	if got != want {
		t.Errorf("embedded rules differ from DefaultRules()\n got  %+v\n want %+v", got, want)
	}
}

func TestEmbeddedSpeedIsUsable(t *testing.T) {
	var cfg SpeedConfig
	if err := yaml.Unmarshal(defaultSpeedYAML, &cfg); err != nil {
		t.Fatalf("embedded speed: %v", err)
	}
	if len(cfg.Levels) == 0 {
		t.Fatal("embedded speed has no levels")
	}
	for i, s := range cfg.Levels {
		if s.Denominator <= 0 {
			t.Errorf("level %d denominator = %d, want > 0", i, s.Denominator)
		}
	}
	if last := cfg.Levels[len(cfg.Levels)-1]; last.Gravity >= 0 {
		t.Errorf("last level gravity = %d, want instant (< 0)", last.Gravity)
	}
}

func TestLoadRulesCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte("name: tall\nfield:\n  height: 24\nhold:\n  enable: false\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules(%q) error: %v", path, err)
	}
	if cfg.Name != "tall" {
		t.Errorf("Name = %q, want %q", cfg.Name, "tall")
	}
	if cfg.Field.Height != 24 {
		t.Errorf("Field.Height = %d, want 24", cfg.Field.Height)
	}
	if cfg.Field.Width != 10 {
		t.Errorf("Field.Width = %d, want default 10", cfg.Field.Width)
	}
	if cfg.Hold.Enable {
		t.Error("Hold.Enable = true, want false")
	}
	if cfg.Rotate.MaxUpwardWallkick != -1 {
		t.Errorf("Rotate.MaxUpwardWallkick = %d, want default -1", cfg.Rotate.MaxUpwardWallkick)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	if _, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadRules(missing) error = nil, want error")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("field: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRules(bad); err == nil {
		t.Error("LoadRules(bad) error = nil, want error")
	}
}

func TestLoadSpeedRejectsEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "speed.yaml")
	if err := os.WriteFile(path, []byte("lines_per_level: 5\nlevels: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSpeed(path); err == nil {
		t.Error("LoadSpeed(empty levels) error = nil, want error")
	}
}

func TestSpeedCurveLevels(t *testing.T) {
	cfg := SpeedConfig{
		LinesPerLevel: 10,
		Levels:        []Speed{{Gravity: 1}, {Gravity: 2}, {Gravity: 3}},
		Difficulty:    DifficultyConfig{Enabled: true},
	}
	c := NewSpeedCurve(cfg)

	tests := []struct {
		lines, level, gravity int
	}{
		{0, 0, 1},
		{9, 0, 1},
		{10, 1, 2},
		{25, 2, 3},
		{1000, 2, 3},
	}
	for _, tt := range tests {
		if got := c.Level(tt.lines); got != tt.level {
			t.Errorf("Level(%d) = %d, want %d", tt.lines, got, tt.level)
		}
		if got := c.SpeedAt(tt.lines).Gravity; got != tt.gravity {
			t.Errorf("SpeedAt(%d).Gravity = %d, want %d", tt.lines, got, tt.gravity)
		}
	}
}

func TestSpeedCurvePresets(t *testing.T) {
	cfg, err := LoadSpeed("")
	if err != nil {
		t.Fatalf("LoadSpeed() error: %v", err)
	}

	ApplyDifficultyPreset(&cfg, DifficultyHard)
	c := NewSpeedCurve(cfg)
	if got := c.Level(0); got != 12 {
		t.Errorf("hard Level(0) = %d, want 12", got)
	}

	ApplyDifficultyPreset(&cfg, DifficultyFixed)
	c = NewSpeedCurve(cfg)
	if c.IsEnabled() {
		t.Error("fixed preset IsEnabled() = true, want false")
	}
	if got := c.Level(500); got != 12 {
		t.Errorf("fixed Level(500) = %d, want start level 12", got)
	}
}

func TestSpeedCurveEmptyFallsBack(t *testing.T) {
	c := NewSpeedCurve(SpeedConfig{})
	if got := c.Speed(7); got != DefaultSpeed().Levels[0] {
		t.Errorf("Speed(7) = %+v, want default level", got)
	}
}
