package quadfc

import "github.com/spacefan/QuadFC/stabilizer"

// --- Loop cadences ---
const (
	DefaultImuLoopMicros       = 3500
	DefaultRcLoopMicros        = 20_000
	DefaultAccelCalCheckMicros = 500_000
)

// --- Calibration durations ---
const (
	DefaultGyroCalibrationMillis  = 3500
	DefaultAccelCalibrationMillis = 1400
)

// --- Arming thresholds ---
const (
	DefaultSmallAngleDeg = 25.0
	DefaultThrottleIdle  = -0.90
)

// Config carries everything the core needs at construction. Immutable
// once passed to New.
type Config struct {
	Gains stabilizer.Gains

	// Loop intervals in microseconds.
	ImuLoopMicros       uint64
	RcLoopMicros        uint64
	AccelCalCheckMicros uint64

	// Calibration durations in milliseconds, converted to control-loop
	// cycles against ImuLoopMicros.
	GyroCalibrationMillis  uint64
	AccelCalibrationMillis uint64

	// SmallAngleDeg is the tilt limit for the small-angle condition.
	SmallAngleDeg float64

	// ThrottleIdle is the normalized throttle at or below which the
	// craft counts as landed and the integral terms are reset.
	ThrottleIdle float64
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Gains:                  stabilizer.DefaultGains(),
		ImuLoopMicros:          DefaultImuLoopMicros,
		RcLoopMicros:           DefaultRcLoopMicros,
		AccelCalCheckMicros:    DefaultAccelCalCheckMicros,
		GyroCalibrationMillis:  DefaultGyroCalibrationMillis,
		AccelCalibrationMillis: DefaultAccelCalibrationMillis,
		SmallAngleDeg:          DefaultSmallAngleDeg,
		ThrottleIdle:           DefaultThrottleIdle,
	}
}

// gyroCalCycles converts the gyro calibration duration to control-loop
// cycles.
func (c Config) gyroCalCycles() uint {
	return uint(1000 * c.GyroCalibrationMillis / c.ImuLoopMicros)
}

// accelCalCycles converts the accel calibration duration to control-loop
// cycles.
func (c Config) accelCalCycles() uint {
	return uint(1000 * c.AccelCalibrationMillis / c.ImuLoopMicros)
}
