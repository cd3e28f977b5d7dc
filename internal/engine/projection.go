package engine

import (
	"math"

	"github.com/finlit/lanerun/internal/vmath"
)

// Camera placement shared by every surface.
var (
	CameraEye    = vmath.V(0, 5, 8)
	CameraTarget = vmath.V(0, -1.35, -10)
)

const (
	DefaultFOV = 57.0 // vertical, degrees
	NearPlane  = 0.1
	FarPlane   = 320.0 // fog end; nothing past it is drawn
)

// Projection maps scene coordinates to surface pixels. It is recomputed on
// resize and never touches simulation state.
type Projection struct {
	Width, Height int
	Aspect        float64
	FOV           float64

	eye, fwd, right, up vmath.Vec3
	tanHalf             float64
}

func NewProjection(w, h int) Projection {
	p := Projection{Width: w, Height: h, FOV: DefaultFOV}
	if h > 0 {
		p.Aspect = float64(w) / float64(h)
	}
	p.eye = CameraEye
	p.fwd = CameraTarget.Sub(CameraEye).Norm()
	p.right = p.fwd.Cross(vmath.V(0, 1, 0)).Norm()
	p.up = p.right.Cross(p.fwd)
	p.tanHalf = math.Tan(p.FOV * math.Pi / 360)
	return p
}

// Valid reports whether the projection has a drawable area.
func (p Projection) Valid() bool { return p.Width > 0 && p.Height > 0 }

// Project returns the pixel position of pos and its distance along the view
// axis. ok is false when pos is outside the near/far range.
func (p Projection) Project(pos vmath.Vec3) (x, y, depth float64, ok bool) {
	if !p.Valid() {
		return 0, 0, 0, false
	}
	v := pos.Sub(p.eye)
	depth = v.Dot(p.fwd)
	if depth < NearPlane || depth > FarPlane {
		return 0, 0, depth, false
	}
	nx := v.Dot(p.right) / (depth * p.tanHalf * p.Aspect)
	ny := v.Dot(p.up) / (depth * p.tanHalf)
	x = (nx + 1) / 2 * float64(p.Width)
	y = (1 - ny) / 2 * float64(p.Height)
	return x, y, depth, true
}
