package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRules loads the rule set.
// Search order: customPath -> ~/.blockfall/configs/rules.yaml -> ./configs/rules.yaml -> embedded default
func LoadRules(customPath string) (Rules, error) {
	return load(customPath, "rules.yaml", defaultRulesYAML, DefaultRules)
}

// LoadSpeed loads the speed curve.
// Search order: customPath -> ~/.blockfall/configs/speed.yaml -> ./configs/speed.yaml -> embedded default
func LoadSpeed(customPath string) (SpeedConfig, error) {
	cfg, err := load(customPath, "speed.yaml", defaultSpeedYAML, DefaultSpeed)
	if err != nil {
		return cfg, err
	}
	if len(cfg.Levels) == 0 {
		return cfg, errors.New("config: speed table has no levels")
	}
	return cfg, nil
}

// load reads a YAML file on top of the hard-coded defaults so that keys
// missing from the file keep their default values.
func load[T any](customPath, name string, embedded []byte, defaults func() T) (T, error) {
	cfg := defaults()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(name), filepath.Join("configs", name)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		next := defaults()
		if err := yaml.Unmarshal(data, &next); err == nil {
			return next, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}

// ApplyDifficultyPreset modifies the speed config based on a difficulty preset.
func ApplyDifficultyPreset(cfg *SpeedConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
}
