// Package flight implements the arming, disarming, and calibration state
// machine driven by stick gestures on the receiver cadence.
package flight

import "github.com/spacefan/QuadFC/rc"

// StickPosition classifies one channel's deflection. The zero value is
// Center so a zero Gesture means all sticks neutral.
type StickPosition uint8

const (
	StickCenter StickPosition = iota
	StickLow
	StickHigh
)

// String returns a short label for logging.
func (p StickPosition) String() string {
	switch p {
	case StickLow:
		return "lo"
	case StickHigh:
		return "hi"
	default:
		return "ce"
	}
}

// Gesture is one receiver tick's stick combination, recomputed statelessly
// from the normalized demand every tick.
type Gesture struct {
	Throttle StickPosition
	Yaw      StickPosition
	Pitch    StickPosition
	Roll     StickPosition
}

// Command gestures. Matching is by full struct equality so combinations
// cannot collide.
var (
	// GestureArm is throttle-low, yaw-high: arm the motors.
	GestureArm = Gesture{Throttle: StickLow, Yaw: StickHigh, Pitch: StickCenter, Roll: StickCenter}

	// GestureDisarm is throttle-low, yaw-low: disarm.
	GestureDisarm = Gesture{Throttle: StickLow, Yaw: StickLow, Pitch: StickCenter, Roll: StickCenter}

	// GestureGyroCalibration is throttle-low, yaw-low, pitch-low: restart
	// gyro calibration.
	GestureGyroCalibration = Gesture{Throttle: StickLow, Yaw: StickLow, Pitch: StickLow, Roll: StickCenter}

	// GestureAccelCalibration is throttle-high, yaw-low, pitch-low: start
	// the accelerometer calibration countdown.
	GestureAccelCalibration = Gesture{Throttle: StickHigh, Yaw: StickLow, Pitch: StickLow, Roll: StickCenter}
)

// stickThreshold is the normalized deflection past which a stick reads as
// low or high.
const stickThreshold = 0.7

// Classify derives the stick gesture from a normalized demand.
func Classify(d rc.Demand) Gesture {
	return Gesture{
		Throttle: classifyStick(d.Throttle),
		Yaw:      classifyStick(d.Yaw),
		Pitch:    classifyStick(d.Pitch),
		Roll:     classifyStick(d.Roll),
	}
}

func classifyStick(v float64) StickPosition {
	if v < -stickThreshold {
		return StickLow
	}
	if v > stickThreshold {
		return StickHigh
	}
	return StickCenter
}

// AuxState is the three-position auxiliary switch.
type AuxState uint8

const (
	AuxNeutral AuxState = iota
	AuxMiddle
	AuxHigh
)

// ClassifyAux derives the auxiliary switch position from its normalized
// channel value.
func ClassifyAux(v float64) AuxState {
	if v > 0.75 {
		return AuxHigh
	}
	if v > 0.25 {
		return AuxMiddle
	}
	return AuxNeutral
}
