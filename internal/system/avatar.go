package system

import (
	"time"

	coresys "github.com/finlit/lanerun/internal/core/system"
	"github.com/finlit/lanerun/internal/world"
)

// AvatarSystem eases the runner toward its lane and advances the gait.
// Phase 2 (Avatar).
type AvatarSystem struct {
	st *world.State
}

func NewAvatarSystem(st *world.State) *AvatarSystem {
	return &AvatarSystem{st: st}
}

func (s *AvatarSystem) Phase() coresys.Phase { return coresys.PhaseAvatar }

func (s *AvatarSystem) Update(dt time.Duration) {
	a := &s.st.Avatar
	a.Step(dt, s.st.LaneX(a.TargetLane), s.st.Tuning.Easing, s.st.Tuning.RunRate)
}
