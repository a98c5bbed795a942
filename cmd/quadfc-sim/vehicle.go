package main

import (
	"github.com/spacefan/QuadFC/rc"
	"github.com/spacefan/QuadFC/stabilizer"
)

// Toy rigid-body constants.
const (
	maxRate      = 3.0 // rad/s commanded at full corrective demand
	rateResponse = 0.1 // first-order step toward the commanded rate
)

// vehicle is a deliberately crude plant model: corrective demands command
// body rates through a first-order lag, and angles integrate the rates.
// It doubles as the core's IMU and Mixer collaborators.
type vehicle struct {
	angles [3]float64
	rates  [3]float64

	demand rc.Demand
	armed  bool
	dt     float64
}

func newVehicle(dt float64) *vehicle {
	return &vehicle{dt: dt}
}

// Apply implements quadfc.Mixer.
func (v *vehicle) Apply(demand rc.Demand, armed bool) {
	v.demand = demand
	v.armed = armed
}

// Sample implements quadfc.IMU, advancing the plant by one control tick.
func (v *vehicle) Sample() (stabilizer.Attitude, error) {
	commands := [3]float64{v.demand.Roll, v.demand.Pitch, v.demand.Yaw}
	for axis := 0; axis < 3; axis++ {
		target := 0.0
		if v.armed {
			target = commands[axis] * maxRate
		}
		v.rates[axis] += (target - v.rates[axis]) * rateResponse
		v.angles[axis] += v.rates[axis] * v.dt
	}

	att := stabilizer.Attitude{Rates: v.rates}
	att.Angles[stabilizer.AxisRoll] = v.angles[stabilizer.AxisRoll]
	att.Angles[stabilizer.AxisPitch] = v.angles[stabilizer.AxisPitch]
	return att, nil
}
