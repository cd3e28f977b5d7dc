package system

import (
	"time"

	"github.com/finlit/lanerun/internal/core/event"
	coresys "github.com/finlit/lanerun/internal/core/system"
)

// OutputSystem delivers the tick's events and then hands the scene to the
// renderer. It runs even while the simulation is halted so a final game-over
// frame still reaches the host.
// Phase 5 (Output).
type OutputSystem struct {
	bus    *event.Bus
	render func()
}

func NewOutputSystem(bus *event.Bus, render func()) *OutputSystem {
	return &OutputSystem{bus: bus, render: render}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.bus.Flush()
	if s.render != nil {
		s.render()
	}
}
