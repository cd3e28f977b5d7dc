package engine

// State is the game state machine:
//
//	Start -> Playing <-> Paused
//	Playing -> GameOver -> Start (BackToMenu) or Playing (Restart)
type State int

const (
	StateStart State = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	}
	return "unknown"
}

// Simulating reports whether ticks advance the simulation in this state.
func (s State) Simulating() bool { return s == StatePlaying }
