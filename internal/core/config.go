package core

// RuntimeConfig contains settings passed to an engine at reset.
// The seed is the only source of randomness a game may consult.
type RuntimeConfig struct {
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 60,
		Seed:     0, // 0 means the caller picks one from the clock
	}
}

// GameState summarizes a running game for the harness.
type GameState struct {
	Score    int    // Current score
	Lines    int    // Total lines cleared
	Level    int    // Current speed level
	Phase    string // Name of the current engine phase
	GameOver bool   // Whether the game has ended
}

// StepResult is returned by Engine.Step after each simulation tick.
type StepResult struct {
	State GameState
}
