package anim

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestPoseIsPureFunctionOfPhase(t *testing.T) {
	for _, ph := range []float64{0, 0.3, 1.7, 42, 1e4} {
		if PoseAt(ph) != PoseAt(ph) {
			t.Fatalf("pose at %v not reproducible", ph)
		}
	}
}

func TestLimbsSwingInOpposingPhase(t *testing.T) {
	for ph := 0.0; ph < 2*math.Pi; ph += 0.1 {
		p := PoseAt(ph)
		if math.Abs(p.Arms.Left+p.Arms.Right) > eps {
			t.Fatalf("arms not mirrored at %v: %+v", ph, p.Arms)
		}
		if math.Abs(p.Hips.Left+p.Hips.Right) > eps {
			t.Fatalf("hips not mirrored at %v: %+v", ph, p.Hips)
		}
		// legs swing against the arm on the same side
		if p.Arms.Left != 0 && math.Signbit(p.Arms.Left) == math.Signbit(p.Hips.Left) {
			t.Fatalf("left arm and left leg in phase at %v", ph)
		}
	}
}

func TestElbowBendPeaksAtSwingExtremes(t *testing.T) {
	neutral := PoseAt(0)
	back := PoseAt(3 * math.Pi / 2) // sin = -1: left arm fully back
	if math.Abs(neutral.Elbows.Left-ElbowRest) > eps {
		t.Fatalf("neutral elbow = %v, want rest %v", neutral.Elbows.Left, ElbowRest)
	}
	want := ElbowRest + SwingAmplitude*ElbowExtra
	if math.Abs(back.Elbows.Left-want) > eps {
		t.Fatalf("extreme elbow = %v, want %v", back.Elbows.Left, want)
	}
	if math.Abs(back.Elbows.Right-ElbowRest) > eps {
		t.Fatalf("opposite elbow should rest at the extreme, got %v", back.Elbows.Right)
	}
}

func TestKneesStayInRangeAndAlternate(t *testing.T) {
	for ph := 0.0; ph < 4*math.Pi; ph += 0.05 {
		p := PoseAt(ph)
		for _, k := range []float64{p.Knees.Left, p.Knees.Right} {
			if k > eps || k < -KneeMax-eps {
				t.Fatalf("knee %v outside [-%v, 0] at %v", k, KneeMax, ph)
			}
		}
		if math.Abs(p.Knees.Left+p.Knees.Right+KneeMax) > 1e-9 {
			t.Fatalf("knees not in antiphase at %v: %+v", ph, p.Knees)
		}
	}
}

func TestBobBounds(t *testing.T) {
	for ph := 0.0; ph < 10; ph += 0.01 {
		p := PoseAt(ph)
		if math.Abs(p.Bob) > BobAmplitude+eps || math.Abs(p.Tilt) > TiltAmount+eps {
			t.Fatalf("bob/tilt out of bounds at %v: %+v", ph, p)
		}
		if p.Height() < BaseHeight-BobAmplitude-eps {
			t.Fatalf("height below floor at %v", ph)
		}
	}
}
