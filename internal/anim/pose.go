// Package anim computes the runner's procedural gait. A pose is a pure
// function of the locomotion phase; nothing else is stored.
package anim

import "math"

// Gait parameters. Angles in radians, offsets in scene units.
const (
	BaseHeight   = 1.325
	BobAmplitude = 0.08
	TiltRate     = 0.8
	TiltAmount   = 0.02
	LeanForward  = -0.1

	SwingAmplitude = 0.6
	ArmSwingScale  = 0.7
	LegSwingScale  = 1.2

	ShoulderOffset = 0.6
	ShoulderSway   = 0.02

	ElbowRest  = math.Pi * 0.45
	ElbowExtra = 0.4
	KneeMax    = 0.9
	HandRest   = -math.Pi / 2
	HandWobble = 0.05
)

// Limb is a paired left/right angle.
type Limb struct {
	Left, Right float64
}

// Pose is the full skeletal state for one instant.
type Pose struct {
	Bob       float64 // vertical offset from BaseHeight
	Tilt      float64 // roll around the forward axis
	Lean      float64 // constant forward pitch
	Shoulders Limb    // lateral shoulder x offsets (signed positions)
	Arms      Limb    // shoulder pitch
	Elbows    Limb
	Hands     Limb
	Hips      Limb
	Knees     Limb
}

// Height returns the avatar's y for this pose.
func (p Pose) Height() float64 { return BaseHeight + p.Bob }

// PoseAt derives the pose at phase t. Left and right limbs swing in opposing
// phase; elbow and knee bends peak at the extremes of the primary swing.
func PoseAt(t float64) Pose {
	s := math.Sin(t)
	swing := s * SwingAmplitude

	leftKnee := (1 + math.Sin(2*t)) * 0.5
	rightKnee := (1 + math.Sin(2*t+math.Pi)) * 0.5
	sway := math.Sin(t*0.5) * ShoulderSway

	return Pose{
		Bob:  s * BobAmplitude,
		Tilt: math.Sin(t*TiltRate) * TiltAmount,
		Lean: LeanForward,
		Shoulders: Limb{
			Left:  -ShoulderOffset + sway,
			Right: ShoulderOffset - sway,
		},
		Arms: Limb{
			Left:  swing * ArmSwingScale,
			Right: -swing * ArmSwingScale,
		},
		Elbows: Limb{
			Left:  ElbowRest + math.Max(0, -swing)*ElbowExtra,
			Right: ElbowRest + math.Max(0, swing)*ElbowExtra,
		},
		Hands: Limb{
			Left:  HandRest + s*HandWobble,
			Right: HandRest - s*HandWobble,
		},
		Hips: Limb{
			Left:  -swing * LegSwingScale,
			Right: swing * LegSwingScale,
		},
		Knees: Limb{
			Left:  -leftKnee * KneeMax,
			Right: -rightKnee * KneeMax,
		},
	}
}
