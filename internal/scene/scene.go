// Package scene expands a layout into tile entities. Every tile is created
// once per session here and afterwards only moved by the recycler.
package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/data"
	"github.com/finlit/lanerun/internal/rng"
	"github.com/finlit/lanerun/internal/vmath"
	"github.com/finlit/lanerun/internal/world"
)

// ErrLayerBand is returned when a layer's wrap rule or a placement would put a
// tile outside the layer's depth band.
var ErrLayerBand = errors.New("tile outside layer band")

// CheckBands verifies that a wrapped tile always lands inside its band:
// the farthest relocation (threshold - span - jitter) must not pass band_min,
// and the threshold itself must not pass band_max.
func CheckBands(l *data.Layout) error {
	for _, ld := range l.Layers {
		if ld.Threshold > ld.BandMax {
			return fmt.Errorf("%w: layer %q threshold %.1f beyond band_max %.1f",
				ErrLayerBand, ld.Name, ld.Threshold, ld.BandMax)
		}
		if far := ld.Threshold - ld.Span - ld.Jitter; far < ld.BandMin {
			return fmt.Errorf("%w: layer %q wraps to %.1f, below band_min %.1f",
				ErrLayerBand, ld.Name, far, ld.BandMin)
		}
	}
	return nil
}

// Stats summarizes a build.
type Stats struct {
	Tiles    int
	Clusters int
	Pickups  int
	Spinners int
}

type builder struct {
	st    *world.State
	r     *rng.Rand
	stats Stats
}

// Build creates every tile described by l in st. Randomized placement draws
// from r only, so the same seed builds the same scene.
func Build(st *world.State, l *data.Layout, r *rng.Rand) (Stats, error) {
	if err := CheckBands(l); err != nil {
		return Stats{}, err
	}
	b := &builder{st: st, r: r}
	for i := range l.Placements {
		p := &l.Placements[i]
		ld := l.Layer(p.Layer)
		var err error
		switch p.Mode {
		case data.ModeScatter:
			err = b.scatter(p, ld)
		default:
			err = b.rows(p, ld)
		}
		if err != nil {
			return b.stats, fmt.Errorf("place %s: %w", p.Kind, err)
		}
	}
	return b.stats, nil
}

func (b *builder) rows(p *data.PlacementDef, ld *data.LayerDef) error {
	all := make([]int, len(p.X))
	for i := range all {
		all[i] = i
	}
	for z := p.ZFrom; z < p.ZTo; z += p.Step {
		if p.Chance > 0 && !b.r.Chance(p.Chance) {
			continue
		}
		sides := all
		if p.OneSide {
			sides = []int{b.r.Intn(len(p.X))}
		}
		for _, i := range sides {
			x := p.X[i]
			if p.XJitter > 0 {
				// toward the road
				x -= sign(x) * b.r.Float() * p.XJitter
			}
			zz := z
			if len(p.ZOffsets) > 0 {
				zz += p.ZOffsets[i]
			}
			if p.ZJitter > 0 {
				zz += b.r.Float() * p.ZJitter
			}
			id, err := b.tile(p.Kind, ld, vmath.V(x, p.Y, zz))
			if err != nil {
				return err
			}
			if p.Mode == data.ModeCluster {
				b.cluster(id, p.Members)
			}
		}
	}
	return nil
}

func (b *builder) scatter(p *data.PlacementDef, ld *data.LayerDef) error {
	lanes := b.st.Difficulty.LaneCount()
	for n := 0; n < p.Count; n++ {
		var x float64
		if p.Lanes {
			x = b.st.LaneX(b.r.Intn(lanes))
		} else {
			x = b.r.RangeF(p.XRange[0], p.XRange[1])
		}
		y := p.Y
		if len(p.YRange) == 2 {
			y = b.r.RangeF(p.YRange[0], p.YRange[1])
		}
		z := b.r.RangeF(p.ZFrom, p.ZTo)
		id, err := b.tile(p.Kind, ld, vmath.V(x, y, z))
		if err != nil {
			return err
		}
		if p.Pickup {
			b.st.Pickups.Set(id, &component.Pickup{})
			b.stats.Pickups++
		}
		if len(p.Spin) == 2 {
			b.st.Spins.Set(id, &component.Spin{Rate: b.r.RangeF(p.Spin[0], p.Spin[1])})
			tr, _ := b.st.Transforms.Get(id)
			tr.Angle = b.r.Float() * math.Pi
			b.stats.Spinners++
		}
	}
	return nil
}

func (b *builder) tile(kind string, ld *data.LayerDef, pos vmath.Vec3) (ecs.EntityID, error) {
	// Placements may start past the threshold; fold them back the way the
	// recycler would.
	for pos.Z > ld.Threshold {
		pos.Z -= ld.Span
	}
	if pos.Z < ld.BandMin {
		return 0, fmt.Errorf("%w: %s at z=%.1f, layer %q starts at %.1f",
			ErrLayerBand, kind, pos.Z, ld.Name, ld.BandMin)
	}
	factor := ld.Factor
	if ld.FactorJitter > 0 {
		factor *= 1 + b.r.Centered(ld.FactorJitter)
	}
	id := b.st.ECS.CreateEntity()
	b.st.Transforms.Set(id, &component.Transform{Pos: pos, Visible: true})
	b.st.Tiles.Set(id, &component.Tile{
		Kind:      kind,
		Layer:     ld.Name,
		Factor:    factor,
		Threshold: ld.Threshold,
		Span:      ld.Span,
		Jitter:    ld.Jitter,
	})
	b.stats.Tiles++
	return id, nil
}

func (b *builder) cluster(id ecs.EntityID, spec *data.MemberSpec) {
	members := make([]component.Member, spec.Count)
	for i := range members {
		members[i] = component.Member{
			Kind:   spec.Kinds[b.r.Intn(len(spec.Kinds))],
			Offset: vmath.V(b.r.Centered(spec.XSpread), 0, spec.DepthOffset-b.r.Float()*spec.Depth),
			Scale:  0.9 + b.r.Float()*0.6,
		}
	}
	b.st.Clusters.Set(id, &component.Cluster{Members: members})
	b.stats.Clusters++
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
