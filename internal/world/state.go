package world

import (
	"time"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/config"
	"github.com/finlit/lanerun/internal/core/ecs"
)

// State is everything one run of the game owns: the entity world with its
// component stores, the avatar, and the session counters.
// Single-goroutine access only (frame loop).
type State struct {
	ECS *ecs.World

	Transforms *ecs.Store[component.Transform]
	Tiles      *ecs.Store[component.Tile]
	Clusters   *ecs.Store[component.Cluster]
	Items      *ecs.Store[component.Item]
	Pickups    *ecs.Store[component.Pickup]
	Spins      *ecs.Store[component.Spin]
	Bursts     *ecs.Store[component.Burst]

	Avatar  Avatar
	Session Session

	Difficulty config.Difficulty
	Tuning     config.Tuning

	// Now is the simulation clock at the start of the current tick.
	Now time.Duration
}

func NewState(d config.Difficulty, t config.Tuning) *State {
	w := ecs.NewWorld()
	r := w.Registry()
	return &State{
		ECS:        w,
		Transforms: ecs.Bind[component.Transform](r),
		Tiles:      ecs.Bind[component.Tile](r),
		Clusters:   ecs.Bind[component.Cluster](r),
		Items:      ecs.Bind[component.Item](r),
		Pickups:    ecs.Bind[component.Pickup](r),
		Spins:      ecs.Bind[component.Spin](r),
		Bursts:     ecs.Bind[component.Burst](r),
		Difficulty: d.Clone(),
		Tuning:     t,
	}
}

// LaneX returns the lateral coordinate of lane. Out-of-range lanes clamp to
// the nearest edge lane.
func (s *State) LaneX(lane int) float64 {
	lp := s.Difficulty.LanePositions
	if len(lp) == 0 {
		return 0
	}
	if lane < 0 {
		lane = 0
	}
	if lane >= len(lp) {
		lane = len(lp) - 1
	}
	return lp[lane]
}

// Speed is the distance per second every item moves at: base speed times the
// scale constant. Tiles multiply it by their layer factor.
func (s *State) Speed() float64 {
	return s.Difficulty.Speed * s.Tuning.ScaleConstant
}

// Begin resets the clock, session and avatar for a fresh run. Entities are
// left alone; the scene is built separately.
func (s *State) Begin() {
	s.Now = 0
	s.Session = Session{Running: true, StartedAt: s.Now}
	s.Avatar = NewAvatar(s.Difficulty, s.Tuning.Debounce)
}

// Entities returns every live entity in a stable order: everything with a
// transform, then bursts.
func (s *State) Entities() []ecs.EntityID {
	seen := make(map[ecs.EntityID]struct{}, s.Transforms.Len()+s.Bursts.Len())
	out := make([]ecs.EntityID, 0, s.Transforms.Len()+s.Bursts.Len())
	add := func(id ecs.EntityID) {
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range s.Transforms.IDs() {
		add(id)
	}
	for _, id := range s.Bursts.IDs() {
		add(id)
	}
	return out
}

// Clear destroys every entity. Destroy hooks run for each one.
func (s *State) Clear() {
	s.ECS.DestroyAll(s.Entities())
}
