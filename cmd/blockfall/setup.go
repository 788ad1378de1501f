package main

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/replay"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// setup is everything needed to build engines that behave alike.
type setup struct {
	rules      config.Rules
	speed      config.SpeedConfig
	random     registry.Factory
	randomName string
}

func loadSetup(rulesPath, speedPath, randomizer, difficulty string) (*setup, error) {
	rules, err := config.LoadRules(rulesPath)
	if err != nil {
		return nil, err
	}
	speed, err := config.LoadSpeed(speedPath)
	if err != nil {
		return nil, err
	}
	if difficulty != "" {
		preset := config.DifficultyPreset(difficulty)
		switch preset {
		case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
			config.ApplyDifficultyPreset(&speed, preset)
		default:
			return nil, fmt.Errorf("unknown difficulty %q", difficulty)
		}
	}
	random, err := registry.Lookup(randomizer)
	if err != nil {
		return nil, err
	}
	return &setup{rules: rules, speed: speed, random: random, randomName: randomizer}, nil
}

// setupFromFlags loads the configuration named by the global flags.
func setupFromFlags() *setup {
	s, err := loadSetup(flagRules, flagSpeed, flagRandomizer, flagDifficulty)
	if err != nil {
		exitf("Error: %v\n", err)
	}
	return s
}

func (s *setup) newEngine(seed int64, assistant engine.Assistant) *engine.Engine {
	return engine.New(engine.Options{
		Rules:  s.rules,
		Speed:  config.NewSpeedCurve(s.speed),
		Random: s.random,
		Assist: assistant,
		Logger: logger.WithPrefix("engine"),
	}, seed)
}

// recorder starts a replay tagged with the configuration of the global flags.
func (s *setup) recorder(seed int64, seats int) *replay.Recorder {
	rc := replay.NewRecorder(seed, s.randomName, seats)
	rc.SetConfig(flagRules, flagSpeed, flagDifficulty)
	return rc
}

// replayEngines builds engines from the configuration a replay names.
func replayEngines(r *replay.Replay) (*engine.Engine, error) {
	s, err := loadSetup(r.Rules, r.Speed, r.Randomizer, r.Difficulty)
	if err != nil {
		return nil, err
	}
	return s.newEngine(r.Seed, nil), nil
}

func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitf("Error encoding output: %v\n", err)
	}
	fmt.Println(string(data))
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
