package system

import (
	"math"
	"time"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/core/event"
	coresys "github.com/finlit/lanerun/internal/core/system"
	"github.com/finlit/lanerun/internal/rng"
	"github.com/finlit/lanerun/internal/vmath"
	"github.com/finlit/lanerun/internal/world"
)

// AmbientSystem drives decorative effects: cash notes that burst into
// particles as the runner passes, floating notes that spin and bob, and the
// particle bursts themselves. Nothing here touches the score.
// Phase 4 (Ambient).
type AmbientSystem struct {
	st  *world.State
	r   *rng.Rand
	bus *event.Bus
}

func NewAmbientSystem(st *world.State, r *rng.Rand, bus *event.Bus) *AmbientSystem {
	return &AmbientSystem{st: st, r: r, bus: bus}
}

func (s *AmbientSystem) Phase() coresys.Phase { return coresys.PhaseAmbient }

func (s *AmbientSystem) Update(dt time.Duration) {
	s.pickups()
	s.spinners(dt)
	s.bursts(dt)
}

func (s *AmbientSystem) pickups() {
	avatar := s.st.Avatar.Position
	r := s.st.Tuning.PickupRadius
	r2 := r * r
	ecs.Each3(s.st.Pickups, s.st.Tiles, s.st.Transforms, func(id ecs.EntityID, p *component.Pickup, tile *component.Tile, tr *component.Transform) {
		if p.Hidden {
			if tile.Wraps <= p.HiddenAtWrap {
				return
			}
			p.Hidden = false
			tr.Visible = true
		}
		if tr.Pos.DistSq(avatar) >= r2 {
			return
		}
		p.Hidden = true
		p.HiddenAtWrap = tile.Wraps
		tr.Visible = false
		burst := s.spawnBurst(tr.Pos)
		event.Emit(s.bus, event.BurstSpawned{Burst: burst, Pickup: id})
	})
}

func (s *AmbientSystem) spawnBurst(origin vmath.Vec3) ecs.EntityID {
	n := s.st.Tuning.BurstParticles
	ps := make([]component.Particle, n)
	for i := range ps {
		ps[i] = component.Particle{
			Pos: origin,
			Vel: vmath.V(s.r.Centered(1), s.r.RangeF(0, 3), s.r.Centered(1)),
		}
	}
	id := s.st.ECS.CreateEntity()
	s.st.Bursts.Set(id, &component.Burst{Origin: origin, Particles: ps})
	return id
}

func (s *AmbientSystem) spinners(dt time.Duration) {
	sec := dt.Seconds()
	t := s.st.Now.Seconds()
	bob := math.Sin(t*s.st.Tuning.FloatSpeed) * s.st.Tuning.FloatAmount * sec
	ecs.Each2(s.st.Spins, s.st.Transforms, func(_ ecs.EntityID, sp *component.Spin, tr *component.Transform) {
		tr.Angle += sp.Rate * sec
		tr.Pos.Y += bob
	})
}

// bursts integrates particles on the burst clock and retires a burst once
// every particle has fallen below ground level.
func (s *AmbientSystem) bursts(dt time.Duration) {
	scale := s.st.Tuning.BurstTimeScale
	bdt := dt.Seconds() * scale
	g := s.st.Tuning.Gravity
	ground := s.st.Tuning.GroundLevel
	s.st.Bursts.Each(func(id ecs.EntityID, b *component.Burst) {
		if s.st.ECS.Pending(id) {
			return
		}
		b.Age += time.Duration(float64(dt) * scale)
		fallen := true
		for i := range b.Particles {
			p := &b.Particles[i]
			p.Pos = p.Pos.Add(p.Vel.Scale(bdt))
			p.Vel.Y -= g * bdt
			if p.Pos.Y >= ground {
				fallen = false
			}
		}
		if fallen {
			s.st.ECS.MarkForDestruction(id)
		}
	})
}
