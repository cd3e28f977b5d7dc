package world

import (
	"time"

	"github.com/finlit/lanerun/internal/anim"
	"github.com/finlit/lanerun/internal/config"
	"github.com/finlit/lanerun/internal/vmath"
)

// Direction of a lane-change request.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// Avatar is the player's runner. CurrentLane and TargetLane always hold the
// committed lane; Position.X eases toward it every tick.
type Avatar struct {
	Position       vmath.Vec3
	CurrentLane    int
	TargetLane     int
	LastLaneChange time.Duration
	Phase          time.Duration // locomotion phase accumulator
	Pose           anim.Pose
}

// NewAvatar places the avatar on the middle lane. The last-change stamp is set
// one debounce window in the past so the first request is never swallowed.
func NewAvatar(d config.Difficulty, debounce time.Duration) Avatar {
	mid := d.MiddleLane()
	x := 0.0
	if mid < len(d.LanePositions) {
		x = d.LanePositions[mid]
	}
	p := anim.PoseAt(0)
	return Avatar{
		Position:       vmath.V(x, p.Height(), 0),
		CurrentLane:    mid,
		TargetLane:     mid,
		LastLaneChange: -debounce,
		Pose:           p,
	}
}

// RequestLane applies a one-step lane change at time now. It refuses moves
// off either edge and moves that arrive inside the debounce window, and
// reports whether the change was accepted.
func (a *Avatar) RequestLane(dir Direction, now, debounce time.Duration, lanes int) bool {
	if now-a.LastLaneChange < debounce {
		return false
	}
	next := a.CurrentLane + int(dir)
	if next < 0 || next >= lanes {
		return false
	}
	a.CurrentLane = next
	a.TargetLane = next
	a.LastLaneChange = now
	return true
}

// Step eases x toward target by factor and advances the locomotion cycle.
func (a *Avatar) Step(dt time.Duration, targetX, factor, runRate float64) {
	a.Position.X = vmath.Ease(a.Position.X, targetX, factor)
	a.Phase += dt
	a.Pose = anim.PoseAt(a.Phase.Seconds() * runRate)
	a.Position.Y = a.Pose.Height()
}
