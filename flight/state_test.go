package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testGyroCycles  = 10
	testAccelCycles = 4
)

// readyToArm returns a machine whose gyro calibration has run out and
// whose accelerometer has been validated level.
func readyToArm(t *testing.T) *Machine {
	t.Helper()
	m := NewMachine(testGyroCycles, testAccelCycles)
	for i := 0; i < testGyroCycles; i++ {
		m.OnControlTick(0, 0, 0.4)
	}
	m.OnAccelCalCheck()
	assert.Equal(t, uint(0), m.State().CalibratingGyroCycles)
	assert.True(t, m.State().AccelCalibrated)
	return m
}

func TestArmingRequiresAllGuards(t *testing.T) {
	t.Run("all guards hold", func(t *testing.T) {
		m := readyToArm(t)
		m.OnReceiverTick(GestureArm, AuxNeutral)
		assert.True(t, m.Armed())
	})

	t.Run("gyro calibration running", func(t *testing.T) {
		m := readyToArm(t)
		m.OnReceiverTick(GestureGyroCalibration, AuxNeutral)
		m.OnReceiverTick(GestureArm, AuxNeutral)
		assert.False(t, m.Armed())
	})

	t.Run("accel not calibrated", func(t *testing.T) {
		m := NewMachine(testGyroCycles, testAccelCycles)
		for i := 0; i < testGyroCycles; i++ {
			m.OnControlTick(0, 0, 0.4)
		}
		m.OnReceiverTick(GestureArm, AuxNeutral)
		assert.False(t, m.Armed())
	})

	t.Run("aux switch not neutral", func(t *testing.T) {
		m := readyToArm(t)
		m.OnReceiverTick(GestureArm, AuxHigh)
		assert.False(t, m.Armed())
	})

	t.Run("already armed is a no-op", func(t *testing.T) {
		m := readyToArm(t)
		m.OnReceiverTick(GestureArm, AuxNeutral)
		assert.True(t, m.Armed())
		m.OnReceiverTick(Gesture{}, AuxNeutral)
		m.OnReceiverTick(GestureArm, AuxNeutral)
		assert.True(t, m.Armed())
	})
}

func TestDisarmAlwaysWorks(t *testing.T) {
	m := readyToArm(t)
	m.OnReceiverTick(GestureArm, AuxNeutral)
	assert.True(t, m.Armed())

	// Disarm clears armed regardless of any calibration counters.
	m.OnReceiverTick(GestureGyroCalibration, AuxNeutral) // ignored while armed
	m.OnReceiverTick(GestureDisarm, AuxNeutral)
	assert.False(t, m.Armed())
}

func TestArmedIgnoresCalibrationGestures(t *testing.T) {
	m := readyToArm(t)
	m.OnReceiverTick(GestureArm, AuxNeutral)

	m.OnReceiverTick(GestureGyroCalibration, AuxNeutral)
	assert.Equal(t, uint(0), m.State().CalibratingGyroCycles)

	m.OnReceiverTick(GestureAccelCalibration, AuxNeutral)
	assert.Equal(t, uint(0), m.State().CalibratingAccelCycles)

	assert.True(t, m.Armed())
}

func TestTransitionsFireOnlyOnGestureChange(t *testing.T) {
	m := readyToArm(t)

	// Restart gyro calibration, then let one cycle elapse.
	m.OnReceiverTick(GestureGyroCalibration, AuxNeutral)
	m.OnControlTick(0, 0, 0.4)
	assert.Equal(t, uint(testGyroCycles-1), m.State().CalibratingGyroCycles)

	// Holding the same gesture must not reload the countdown.
	m.OnReceiverTick(GestureGyroCalibration, AuxNeutral)
	assert.Equal(t, uint(testGyroCycles-1), m.State().CalibratingGyroCycles)

	// Releasing and re-entering the gesture reloads it.
	m.OnReceiverTick(Gesture{}, AuxNeutral)
	m.OnReceiverTick(GestureGyroCalibration, AuxNeutral)
	assert.Equal(t, uint(testGyroCycles), m.State().CalibratingGyroCycles)
}

func TestUnrecognizedGestureLeavesStateUntouched(t *testing.T) {
	m := readyToArm(t)
	before := m.State()

	weird := Gesture{Throttle: StickHigh, Yaw: StickHigh, Pitch: StickLow, Roll: StickHigh}
	m.OnReceiverTick(weird, AuxNeutral)

	assert.Equal(t, before, m.State())
}

func TestCountdownsDecrementOncePerControlTick(t *testing.T) {
	m := NewMachine(testGyroCycles, testAccelCycles)
	m.OnReceiverTick(GestureAccelCalibration, AuxNeutral)

	m.OnControlTick(0, 0, 0.4)
	st := m.State()
	assert.Equal(t, uint(testGyroCycles-1), st.CalibratingGyroCycles)
	assert.Equal(t, uint(testAccelCycles-1), st.CalibratingAccelCycles)

	// Countdowns stop at zero.
	for i := 0; i < 100; i++ {
		m.OnControlTick(0, 0, 0.4)
	}
	st = m.State()
	assert.Equal(t, uint(0), st.CalibratingGyroCycles)
	assert.Equal(t, uint(0), st.CalibratingAccelCycles)
}

func TestSmallAngleTracksBothAxes(t *testing.T) {
	m := NewMachine(0, 0)
	threshold := 0.44 // ~25 degrees

	m.OnControlTick(0.1, 0.1, threshold)
	assert.True(t, m.State().SmallAngle)

	m.OnControlTick(0.5, 0.1, threshold)
	assert.False(t, m.State().SmallAngle, "roll past threshold")

	m.OnControlTick(0.1, -0.5, threshold)
	assert.False(t, m.State().SmallAngle, "pitch past threshold")
}

func TestAccelCalCheckWhileTilted(t *testing.T) {
	m := NewMachine(0, testAccelCycles)

	// Level first: calibration validates (countdown already at zero).
	m.OnControlTick(0, 0, 0.4)
	assert.False(t, m.OnAccelCalCheck())
	assert.True(t, m.State().AccelCalibrated)

	// Tilt the craft: calibration is forced invalid and the blink
	// indicator toggles on every check.
	m.OnControlTick(1, 0, 0.4)
	assert.True(t, m.OnAccelCalCheck())
	assert.False(t, m.State().AccelCalibrated)
	assert.True(t, m.BlinkOn())

	assert.True(t, m.OnAccelCalCheck())
	assert.False(t, m.BlinkOn())
}

func TestAccelCalWindowValidatesOnlyAfterCountdown(t *testing.T) {
	m := NewMachine(0, testAccelCycles)
	m.OnReceiverTick(GestureAccelCalibration, AuxNeutral)

	// Mid-window, level: not yet calibrated.
	m.OnControlTick(0, 0, 0.4)
	m.OnAccelCalCheck()
	assert.False(t, m.State().AccelCalibrated)

	// Let the countdown run out while level.
	for i := 0; i < testAccelCycles; i++ {
		m.OnControlTick(0, 0, 0.4)
	}
	m.OnAccelCalCheck()
	assert.True(t, m.State().AccelCalibrated)
}

func TestAccelCalStaysValidUntilNextAttempt(t *testing.T) {
	m := readyToArm(t)
	assert.True(t, m.State().AccelCalibrated)

	// A new calibration attempt opens a fresh window; tilting during it
	// invalidates the previous result.
	m.OnReceiverTick(GestureAccelCalibration, AuxNeutral)
	m.OnControlTick(1, 0, 0.4)
	m.OnAccelCalCheck()
	assert.False(t, m.State().AccelCalibrated)
}
