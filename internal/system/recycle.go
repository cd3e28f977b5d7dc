package system

import (
	"time"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/core/ecs"
	coresys "github.com/finlit/lanerun/internal/core/system"
	"github.com/finlit/lanerun/internal/rng"
	"github.com/finlit/lanerun/internal/world"
)

// RecycleSystem scrolls every tile toward the viewer at its layer's share of
// the base speed and folds it back by the layer span once it passes the
// threshold. Clusters are single tiles, so their members wrap together.
// Phase 0 (Recycle).
type RecycleSystem struct {
	st *world.State
	r  *rng.Rand
}

func NewRecycleSystem(st *world.State, r *rng.Rand) *RecycleSystem {
	return &RecycleSystem{st: st, r: r}
}

func (s *RecycleSystem) Phase() coresys.Phase { return coresys.PhaseRecycle }

func (s *RecycleSystem) Update(dt time.Duration) {
	step := s.st.Speed() * dt.Seconds()
	ecs.Each2(s.st.Tiles, s.st.Transforms, func(_ ecs.EntityID, tile *component.Tile, tr *component.Transform) {
		tr.Pos.Z += step * tile.Factor
		// A single subtract covers any normal frame; the loop only matters
		// after a stall longer than a whole span.
		for tr.Pos.Z > tile.Threshold {
			back := tile.Span
			if tile.Jitter > 0 {
				back += s.r.Float() * tile.Jitter
			}
			tr.Pos.Z -= back
			tile.Wraps++
		}
	})
}
