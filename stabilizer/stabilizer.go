// Package stabilizer implements the per-axis PID control law that turns
// pilot demand and measured attitude into corrective demands.
//
// Roll and pitch blend between angle-leveling and raw rate control based
// on stick deflection; yaw is rate-only. All math is float64: demands are
// normalized to [-1, +1], angles are radians, rates are radians/second.
package stabilizer

import (
	"math"

	"github.com/spacefan/QuadFC/filter"
	"github.com/spacefan/QuadFC/rc"
)

// Axis indices shared with the flight core.
const (
	AxisRoll = iota
	AxisPitch
	AxisYaw
)

// Attitude is one control tick's measured Euler angles (radians) and
// angular rates (radians/second), indexed by axis.
type Attitude struct {
	Angles [3]float64
	Rates  [3]float64
}

// Gains holds the control gains plus the safety constants that bound the
// integral term. Immutable after construction; the degree-valued fields
// are board-tuning values converted to radians by New.
type Gains struct {
	LevelP  float64
	CyclicP float64
	CyclicI float64
	CyclicD float64
	YawP    float64
	YawI    float64

	// Integral-term safety bounds
	WindupMax         float64 // clamp on the integral accumulator
	BigGyroDegPerSec  float64 // rotation rate that forces an integral reset
	BigYawDemand      float64 // yaw demand that forces the yaw integral reset
	MaxArmingAngleDeg float64 // tilt limit for arming eligibility
}

// DefaultGains returns the stock tuning.
func DefaultGains() Gains {
	return Gains{
		LevelP:  0.20,
		CyclicP: 0.225,
		CyclicI: 0.001875,
		CyclicD: 0.375,
		YawP:    1.0625,
		YawI:    0.005625,

		WindupMax:         16.0,
		BigGyroDegPerSec:  40.0,
		BigYawDemand:      0.1,
		MaxArmingAngleDeg: 25.0,
	}
}

const (
	// Full blend toward rate control at half stick deflection.
	cyclicPropDivisor = 0.5

	// Base bound for the yaw output clamp, relative to current demand.
	yawJumpBase = 0.1
)

// Stabilizer holds the per-axis controller memory. One instance serves
// all three axes; it is owned by a single control loop and is not safe
// for concurrent use.
type Stabilizer struct {
	gains Gains

	bigGyroRate    float64 // radians/second
	maxArmingAngle float64 // radians

	errorI   [3]float64
	lastRate [2]float64
	delta1   [2]float64
	delta2   [2]float64
}

// New creates a Stabilizer with zeroed controller memory.
func New(gains Gains) *Stabilizer {
	s := &Stabilizer{
		gains:          gains,
		bigGyroRate:    degreesToRadians(gains.BigGyroDegPerSec),
		maxArmingAngle: degreesToRadians(gains.MaxArmingAngleDeg),
	}
	s.ResetIntegral()
	return s
}

// Gains returns the configured gains for telemetry observation.
func (s *Stabilizer) Gains() Gains {
	return s.gains
}

// MaxArmingAngle returns the arming tilt limit in radians.
func (s *Stabilizer) MaxArmingAngle() float64 {
	return s.maxArmingAngle
}

// Update computes one tick's corrective demands. Throttle passes through
// untouched.
func (s *Stabilizer) Update(demand rc.Demand, att Attitude) rc.Demand {
	// Proportion of cyclic demand compared to its maximum, shifting the
	// roll/pitch blend from angle-hold toward pure rate control.
	prop := filter.Constrain(
		math.Max(math.Abs(demand.Roll), math.Abs(demand.Pitch))/cyclicPropDivisor, 0, 1)

	out := demand
	out.Roll = s.computeCyclicPID(demand.Roll, prop, att, AxisRoll)
	out.Pitch = s.computeCyclicPID(demand.Pitch, prop, att, AxisPitch)

	// For yaw, the P term comes directly from pilot demand and the D term
	// is zero.
	iTermYaw := s.computeITermGyro(s.gains.YawP, s.gains.YawI, demand.Yaw, att.Rates, AxisYaw)
	out.Yaw = s.computePID(s.gains.YawP, demand.Yaw, iTermYaw, 0, att.Rates, AxisYaw)

	// Prevent the "yaw jump" spike when the yaw integral resets.
	out.Yaw = filter.ConstrainAbs(out.Yaw, yawJumpBase+math.Abs(demand.Yaw))

	return out
}

// ResetIntegral zeroes the integral accumulator for all three axes.
// Called every receiver tick while the throttle sits at idle.
func (s *Stabilizer) ResetIntegral() {
	s.errorI[AxisRoll] = 0
	s.errorI[AxisPitch] = 0
	s.errorI[AxisYaw] = 0
}

// ConstrainCyclicDemand scales a roll or pitch demand down as the
// measured tilt approaches the arming-angle limit.
func (s *Stabilizer) ConstrainCyclicDemand(eulerAngle, demand float64) float64 {
	return demand * (1 - math.Abs(eulerAngle)/s.maxArmingAngle)
}

func (s *Stabilizer) computeITermGyro(rateP, rateI, command float64, rates [3]float64, axis int) float64 {
	err := command*rateP - rates[axis]

	// Avoid integral windup
	s.errorI[axis] = filter.ConstrainAbs(s.errorI[axis]+err, s.gains.WindupMax)

	// Reset integral on quick rotation or large yaw command
	if math.Abs(rates[axis]) > s.bigGyroRate ||
		(axis == AxisYaw && math.Abs(command) > s.gains.BigYawDemand) {
		s.errorI[axis] = 0
	}

	return s.errorI[axis] * rateI
}

func (s *Stabilizer) computePID(rateP, pTerm, iTerm, dTerm float64, rates [3]float64, axis int) float64 {
	pTerm -= rates[axis] * rateP
	return pTerm + iTerm - dTerm
}

// computeCyclicPID runs the leveling PID for roll or pitch.
func (s *Stabilizer) computeCyclicPID(command, prop float64, att Attitude, axis int) float64 {
	iTermGyro := s.computeITermGyro(s.gains.CyclicP, s.gains.CyclicI, command, att.Rates, axis)

	pTermLevel := (command - att.Angles[axis]) * s.gains.LevelP
	pTerm := filter.Complementary(command, pTermLevel, prop)
	iTerm := iTermGyro * prop

	// Three-sample derivative smoothing damps quantization noise in the
	// rate signal without sustained lag.
	delta := att.Rates[axis] - s.lastRate[axis]
	s.lastRate[axis] = att.Rates[axis]
	deltaSum := s.delta1[axis] + s.delta2[axis] + delta
	s.delta2[axis] = s.delta1[axis]
	s.delta1[axis] = delta
	dTerm := deltaSum * s.gains.CyclicD

	return s.computePID(s.gains.CyclicP, pTerm, iTerm, dTerm, att.Rates, axis)
}

func degreesToRadians(deg float64) float64 {
	return math.Pi * deg / 180
}
