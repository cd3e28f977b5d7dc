package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/core/event"
	coresys "github.com/finlit/lanerun/internal/core/system"
	"github.com/finlit/lanerun/internal/data"
	"github.com/finlit/lanerun/internal/rng"
	"github.com/finlit/lanerun/internal/vmath"
	"github.com/finlit/lanerun/internal/world"
)

// SpawnSystem creates one scoring item per spawn interval, moves active items
// toward the viewer and retires the ones that pass it unconsumed.
// Phase 1 (Spawn).
type SpawnSystem struct {
	st    *world.State
	items *data.ItemTable
	r     *rng.Rand
	bus   *event.Bus
	log   *zap.Logger
}

func NewSpawnSystem(st *world.State, items *data.ItemTable, r *rng.Rand, bus *event.Bus, log *zap.Logger) *SpawnSystem {
	return &SpawnSystem{st: st, items: items, r: r, bus: bus, log: log}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseSpawn }

func (s *SpawnSystem) Update(dt time.Duration) {
	sess := &s.st.Session
	if sess.SpawnDue(s.st.Now, s.st.Difficulty.SpawnInterval) {
		s.spawn()
		sess.LastSpawnAt = s.st.Now
		sess.Spawned++
	}

	step := s.st.Speed() * dt.Seconds()
	depth := s.st.Tuning.DespawnDepth
	ecs.Each2(s.st.Items, s.st.Transforms, func(id ecs.EntityID, it *component.Item, tr *component.Transform) {
		if it.State.Terminal() {
			return
		}
		tr.Pos.Z += step
		if tr.Pos.Z > depth {
			it.State = component.ItemPassed
			s.st.ECS.MarkForDestruction(id)
			event.Emit(s.bus, event.ItemPassed{Item: id})
		}
	})
}

// spawn places one item at the spawn depth on a random lane.
func (s *SpawnSystem) spawn() {
	kind := component.KindBad
	if s.r.Chance(s.st.Tuning.GoodWeight) {
		kind = component.KindGood
	}
	def := s.items.Pick(kind, s.r)
	lane := s.r.Intn(s.st.Difficulty.LaneCount())

	id := s.st.ECS.CreateEntity()
	s.st.Transforms.Set(id, &component.Transform{
		Pos:     vmath.V(s.st.LaneX(lane), s.st.Tuning.ItemHeight, s.st.Tuning.SpawnDepth),
		Visible: true,
	})
	s.st.Items.Set(id, &component.Item{
		Kind:     kind,
		Category: def.Category,
		Name:     def.Name,
		Color:    def.Color,
		Lane:     lane,
		State:    component.ItemActive,
	})
	event.Emit(s.bus, event.ItemSpawned{Item: id, Lane: lane, Good: kind == component.KindGood})

	s.log.Debug("item spawned",
		zap.Uint64("id", uint64(id)),
		zap.Stringer("kind", kind),
		zap.String("name", def.Name),
		zap.Int("lane", lane),
		zap.Duration("at", s.st.Now))
}
