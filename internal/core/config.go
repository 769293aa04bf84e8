package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 15,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Moves    int    // Accepted moves so far
	Won      bool   // Level goal met
	Lost     bool   // A fish died; only undo or restart helps
	Paused   bool   // Whether the game is paused
	Message  string // Latest event worth showing in the status line
	Active   int    // Model index of the active fish, -1 for none
	LevelID  string
	Solution string // Move log once the level is won
}

// GameOver reports whether the level has ended either way.
func (s GameState) GameOver() bool {
	return s.Won || s.Lost
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
