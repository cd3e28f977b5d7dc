package component

import (
	"time"

	"github.com/finlit/lanerun/internal/vmath"
)

// Pickup marks a decorative cash note that bursts when the avatar passes it.
// HiddenAtWrap records the tile's wrap count at the moment it was hidden; the
// note shows again once the tile has wrapped past it.
type Pickup struct {
	Hidden       bool
	HiddenAtWrap int
}

// Spin animates floating decor: yaw turns at Rate rad/s and y bobs with the clock.
type Spin struct {
	Rate float64
}

type Particle struct {
	Pos vmath.Vec3
	Vel vmath.Vec3
}

// Burst is a short-lived particle effect. Age runs on the burst's own clock,
// which may be faster than the simulation clock.
type Burst struct {
	Origin    vmath.Vec3
	Particles []Particle
	Age       time.Duration
}
