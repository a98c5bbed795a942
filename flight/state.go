package flight

import "math"

// State is the authoritative flight state. Armed is the single switch the
// mixer/output stage reads; everything else gates how it may change.
type State struct {
	Armed                  bool
	CalibratingGyroCycles  uint
	CalibratingAccelCycles uint
	AccelCalibrated        bool
	SmallAngle             bool
}

// Machine owns the flight state and all cross-tick memory the transitions
// need: the previous gesture, the accel-calibration blink toggle, and the
// configured calibration cycle counts.
type Machine struct {
	state State

	gyroCalCycles  uint
	accelCalCycles uint

	prevGesture Gesture
	blinkOn     bool
}

// NewMachine creates a disarmed Machine. Gyro calibration always runs at
// startup; the craft is assumed level until the first control tick says
// otherwise.
func NewMachine(gyroCalCycles, accelCalCycles uint) *Machine {
	return &Machine{
		state: State{
			CalibratingGyroCycles: gyroCalCycles,
			SmallAngle:            true,
		},
		gyroCalCycles:  gyroCalCycles,
		accelCalCycles: accelCalCycles,
	}
}

// State returns a copy of the current flight state.
func (m *Machine) State() State {
	return m.state
}

// Armed reports whether the motors may spin.
func (m *Machine) Armed() bool {
	return m.state.Armed
}

// BlinkOn reports the accel-calibration blink indicator phase.
func (m *Machine) BlinkOn() bool {
	return m.blinkOn
}

// OnReceiverTick evaluates the gesture transition table. Transitions fire
// only when the gesture differs from the previous receiver tick; a failed
// guard or an unrecognized combination leaves the state untouched.
func (m *Machine) OnReceiverTick(g Gesture, aux AuxState) {
	if g == m.prevGesture {
		return
	}
	m.prevGesture = g

	if m.state.Armed {
		if g == GestureDisarm {
			m.state.Armed = false
		}
		return
	}

	switch g {
	case GestureGyroCalibration:
		m.state.CalibratingGyroCycles = m.gyroCalCycles

	case GestureArm:
		if m.state.CalibratingGyroCycles == 0 && m.state.AccelCalibrated && aux == AuxNeutral {
			m.state.Armed = true
		}

	case GestureAccelCalibration:
		m.state.CalibratingAccelCycles = m.accelCalCycles
	}
}

// OnControlTick runs the sensor-cadence bookkeeping: both calibration
// countdowns decrement once per tick while positive, and the small-angle
// condition is recomputed from the measured roll and pitch angles.
func (m *Machine) OnControlTick(rollAngle, pitchAngle, smallAngleThreshold float64) {
	if m.state.CalibratingGyroCycles > 0 {
		m.state.CalibratingGyroCycles--
	}
	if m.state.CalibratingAccelCycles > 0 {
		m.state.CalibratingAccelCycles--
	}

	m.state.SmallAngle = math.Abs(rollAngle) < smallAngleThreshold &&
		math.Abs(pitchAngle) < smallAngleThreshold
}

// OnAccelCalCheck runs the slower-cadence accelerometer calibration
// validity check. While the craft is tilted, calibration is forced invalid
// and the blink indicator toggles; once the countdown has completed with
// the craft level, calibration becomes valid. Returns true when the
// caller's check deadline should advance (the tilted branch, matching the
// blink cadence).
func (m *Machine) OnAccelCalCheck() bool {
	if !m.state.SmallAngle {
		m.state.AccelCalibrated = false
		m.blinkOn = !m.blinkOn
		return true
	}
	if m.state.CalibratingAccelCycles == 0 {
		m.state.AccelCalibrated = true
	}
	return false
}
