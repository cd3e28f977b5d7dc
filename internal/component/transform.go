package component

import "github.com/finlit/lanerun/internal/vmath"

// Transform places an entity in the scene. Angle is the yaw used by spinning decor.
type Transform struct {
	Pos     vmath.Vec3
	Angle   float64
	Visible bool
}
