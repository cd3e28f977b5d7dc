package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/core/event"
	coresys "github.com/finlit/lanerun/internal/core/system"
	"github.com/finlit/lanerun/internal/world"
)

// CollisionSystem resolves avatar contact with scoring items. Items are checked
// in spawn order; the first hazard ends the session and stops the scan.
// Phase 3 (Collision).
type CollisionSystem struct {
	st  *world.State
	bus *event.Bus
	log *zap.Logger
}

func NewCollisionSystem(st *world.State, bus *event.Bus, log *zap.Logger) *CollisionSystem {
	return &CollisionSystem{st: st, bus: bus, log: log}
}

func (s *CollisionSystem) Phase() coresys.Phase { return coresys.PhaseCollision }

func (s *CollisionSystem) Update(_ time.Duration) {
	if !s.st.Session.Running {
		return
	}
	avatar := s.st.Avatar.Position
	r := s.st.Tuning.HitRadius
	r2 := r * r

	ecs.Each2Until(s.st.Items, s.st.Transforms, func(id ecs.EntityID, it *component.Item, tr *component.Transform) bool {
		if it.State.Terminal() {
			return true
		}
		if tr.Pos.DistSq(avatar) >= r2 {
			return true
		}
		s.st.ECS.MarkForDestruction(id)
		if it.Kind == component.KindGood {
			it.State = component.ItemConsumedGood
			if score, ok := s.st.Session.AddPoint(); ok {
				event.Emit(s.bus, event.ScoreChanged{Score: score})
			}
			return true
		}

		it.State = component.ItemConsumedBad
		if s.st.Session.End() {
			event.Emit(s.bus, event.GameOver{FinalScore: s.st.Session.Score, Hazard: id})
			s.log.Info("hazard hit",
				zap.String("name", it.Name),
				zap.Int("lane", it.Lane),
				zap.Int("score", s.st.Session.Score))
		}
		return false
	})
}
