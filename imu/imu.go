// Package imu adapts an LSM6DS3TR inertial sensor into the Euler angles
// and angular rates the flight core consumes. It performs no sensor
// fusion: roll and pitch come from accelerometer tilt, rates come from
// the gyro with a calibrated bias removed.
package imu

import (
	"errors"
	"fmt"
	"math"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/lsm6ds3tr"

	"github.com/spacefan/QuadFC/stabilizer"
)

// The LSM6DS3TR driver returns micro-g for accel and micro-dps for gyro.
// Convert to m/s^2 and rad/s respectively.
const (
	microGToMS2    = 9.80665 / 1e6
	microDPSToRadS = math.Pi / (180 * 1e6)
)

// lpfAlpha weights the previous filtered sample in the low-pass filter.
const lpfAlpha = 0.7

// Sensor wraps the IMU device with scaling, bias removal, and low-pass
// filtering.
type Sensor struct {
	dev *lsm6ds3tr.Device

	gyroBias [3]float64
	accel    [3]float64
	rates    [3]float64
	primed   bool
}

// New configures the sensor on the given I2C bus.
func New(bus drivers.I2C) (*Sensor, error) {
	dev := lsm6ds3tr.New(bus)
	err := dev.Configure(lsm6ds3tr.Configuration{
		AccelRange:      lsm6ds3tr.ACCEL_8G,
		AccelSampleRate: lsm6ds3tr.ACCEL_SR_104,
		GyroRange:       lsm6ds3tr.GYRO_1000DPS,
		GyroSampleRate:  lsm6ds3tr.GYRO_SR_104,
	})
	if err != nil {
		return nil, fmt.Errorf("configure LSM6DS3TR: %w", err)
	}
	if !dev.Connected() {
		return nil, errors.New("LSM6DS3TR not connected")
	}
	return &Sensor{dev: dev}, nil
}

// Calibrate averages the given number of gyro readings into a bias
// offset. Call with the craft stationary.
func (s *Sensor) Calibrate(samples int) error {
	var sum [3]float64
	for i := 0; i < samples; i++ {
		x, y, z, err := s.dev.ReadRotation()
		if err != nil {
			return fmt.Errorf("read gyro during calibration: %w", err)
		}
		sum[0] += float64(x) * microDPSToRadS
		sum[1] += float64(y) * microDPSToRadS
		sum[2] += float64(z) * microDPSToRadS
	}
	for axis := range sum {
		s.gyroBias[axis] = sum[axis] / float64(samples)
	}
	return nil
}

// Sample reads the sensor and returns the current attitude. The yaw
// angle slot stays zero; the control law only reads roll and pitch
// angles.
func (s *Sensor) Sample() (stabilizer.Attitude, error) {
	ax, ay, az, err := s.dev.ReadAcceleration()
	if err != nil {
		return stabilizer.Attitude{}, fmt.Errorf("read acceleration: %w", err)
	}
	gx, gy, gz, err := s.dev.ReadRotation()
	if err != nil {
		return stabilizer.Attitude{}, fmt.Errorf("read rotation: %w", err)
	}

	accel := [3]float64{
		float64(ax) * microGToMS2,
		float64(ay) * microGToMS2,
		float64(az) * microGToMS2,
	}
	rates := [3]float64{
		float64(gx)*microDPSToRadS - s.gyroBias[0],
		float64(gy)*microDPSToRadS - s.gyroBias[1],
		float64(gz)*microDPSToRadS - s.gyroBias[2],
	}

	if !s.primed {
		s.accel = accel
		s.rates = rates
		s.primed = true
	} else {
		for axis := 0; axis < 3; axis++ {
			s.accel[axis] = lowpass(s.accel[axis], accel[axis])
			s.rates[axis] = lowpass(s.rates[axis], rates[axis])
		}
	}

	return stabilizer.Attitude{
		Angles: [3]float64{
			rollFromAccel(s.accel[0], s.accel[1], s.accel[2]),
			pitchFromAccel(s.accel[0], s.accel[1], s.accel[2]),
			0,
		},
		Rates: s.rates,
	}, nil
}

func lowpass(prev, next float64) float64 {
	return prev*lpfAlpha + next*(1-lpfAlpha)
}

// pitchFromAccel calculates the pitch angle in radians from
// accelerometer data.
func pitchFromAccel(ax, ay, az float64) float64 {
	return math.Atan2(-ax, math.Sqrt(ay*ay+az*az))
}

// rollFromAccel calculates the roll angle in radians from accelerometer
// data.
func rollFromAccel(_, ay, az float64) float64 {
	return math.Atan2(ay, az)
}
