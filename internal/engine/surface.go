package engine

import (
	"time"

	"github.com/finlit/lanerun/internal/anim"
	"github.com/finlit/lanerun/internal/component"
	"github.com/finlit/lanerun/internal/core/ecs"
	"github.com/finlit/lanerun/internal/vmath"
)

// Surface is the host-owned drawing target. The engine never creates or
// destroys it; it only asks for its size, submits frames and tells it when an
// entity's renderable can be dropped.
type Surface interface {
	// Size returns the drawable area. A zero dimension makes Start a no-op.
	Size() (w, h int)
	// Render receives the frame by pointer; it is reused on the next tick.
	Render(f *Frame)
	// Release is called once per destroyed entity. Implementations must
	// tolerate IDs they never drew.
	Release(id ecs.EntityID)
}

// TileView is a visible environment tile.
type TileView struct {
	ID      ecs.EntityID
	Kind    string
	Layer   string
	Pos     vmath.Vec3
	Angle   float64
	Members []component.Member
}

// ItemView is an active scoring item.
type ItemView struct {
	ID       ecs.EntityID
	Kind     component.ItemKind
	Name     string
	Category string
	Color    uint32
	Lane     int
	Pos      vmath.Vec3
}

// BurstView is a live particle burst.
type BurstView struct {
	ID        ecs.EntityID
	Age       time.Duration // on the burst clock
	Particles []vmath.Vec3
}

// AvatarView is the runner as drawn.
type AvatarView struct {
	Pos  vmath.Vec3
	Lane int
	Pose anim.Pose
}

// Frame is a snapshot of everything drawable after a tick.
type Frame struct {
	Seq        uint64
	Time       time.Duration
	State      State
	Score      int
	Difficulty string
	Lanes      []float64
	Projection Projection

	Avatar AvatarView
	Tiles  []TileView
	Items  []ItemView
	Bursts []BurstView
}

func (f *Frame) reset() {
	f.Tiles = f.Tiles[:0]
	f.Items = f.Items[:0]
	f.Bursts = f.Bursts[:0]
}
