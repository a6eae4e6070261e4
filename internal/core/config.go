package core

// RuntimeConfig is what the platform hands a game on Reset: the terminal
// size, the refresh rate and the seed of the run.
type RuntimeConfig struct {
	ScreenW  int   // Columns
	ScreenH  int   // Rows
	TickRate int   // Refreshes per second
	Seed     int64 // Same seed and inputs give the same run
}

// DefaultConfig is an 80x24 terminal at 60 Hz.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // The platform substitutes the clock
	}
}

// GameState is the part of a run the platform needs to see.
type GameState struct {
	Score    int  // Accumulated score for the current run
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
	Ready    bool // Whether the readiness gate has opened
	Ticks    int  // Simulation ticks executed in this run
}

// StepResult reports what one refresh did.
// ScoreDelta describes the tick that was just simulated and is zero when no
// tick ran. Dead is set on the fatal tick and on every step after it.
type StepResult struct {
	State      GameState
	Ticked     bool
	ScoreDelta int
	Dead       bool
}
