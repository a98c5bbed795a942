package imu

import (
	"math"
	"testing"
)

const g = 9.80665

func TestTiltAnglesLevel(t *testing.T) {
	// Flat and level: gravity entirely on Z.
	if got := pitchFromAccel(0, 0, g); math.Abs(got) > 1e-12 {
		t.Errorf("level pitch = %f, want 0", got)
	}
	if got := rollFromAccel(0, 0, g); math.Abs(got) > 1e-12 {
		t.Errorf("level roll = %f, want 0", got)
	}
}

func TestTiltAnglesQuarterTurn(t *testing.T) {
	// Nose straight down: gravity entirely on +X.
	if got := pitchFromAccel(g, 0, 0); math.Abs(got+math.Pi/2) > 1e-9 {
		t.Errorf("nose-down pitch = %f, want -pi/2", got)
	}
	// Right side down: gravity entirely on +Y.
	if got := rollFromAccel(0, g, 0); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("side-down roll = %f, want pi/2", got)
	}
}

func TestTiltAngle45(t *testing.T) {
	c := g / math.Sqrt2
	if got := rollFromAccel(0, c, c); math.Abs(got-math.Pi/4) > 1e-9 {
		t.Errorf("45-degree roll = %f, want pi/4", got)
	}
}

func TestScalingConstants(t *testing.T) {
	// One g in micro-g counts.
	if got := 1e6 * microGToMS2; math.Abs(got-g) > 1e-9 {
		t.Errorf("1e6 micro-g = %f m/s^2, want %f", got, g)
	}
	// 180 degrees/second in micro-dps counts.
	if got := 180e6 * microDPSToRadS; math.Abs(got-math.Pi) > 1e-9 {
		t.Errorf("180e6 micro-dps = %f rad/s, want pi", got)
	}
}

func TestLowpassMovesTowardInput(t *testing.T) {
	out := lowpass(0, 1)
	if out <= 0 || out >= 1 {
		t.Fatalf("lowpass(0, 1) = %f, want strictly between 0 and 1", out)
	}

	// Repeated application converges on the input.
	v := 0.0
	for i := 0; i < 200; i++ {
		v = lowpass(v, 1)
	}
	if math.Abs(v-1) > 1e-6 {
		t.Errorf("lowpass steady state = %f, want 1", v)
	}
}
