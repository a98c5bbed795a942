package main

import (
	"math"

	"github.com/spacefan/QuadFC/flight"
	"github.com/spacefan/QuadFC/rc"
)

// Flight plan phase boundaries in simulated seconds.
const (
	armAt    = 5.0
	flyAt    = 5.5
	disarmAt = 10.5
)

const rollExpo = 0.65

// scriptedPilot plays back a fixed flight plan: sit idle through the
// boot gyro calibration, arm, fly sine roll/pitch inputs on a springy
// throttle, disarm.
type scriptedPilot struct {
	now      uint64
	throttle *rc.Springy
}

func newScriptedPilot() *scriptedPilot {
	return &scriptedPilot{throttle: rc.NewSpringy()}
}

// Ready is always false: the scripted pilot has no asynchronous frames
// and relies on the receiver cadence.
func (p *scriptedPilot) Ready() bool { return false }

func (p *scriptedPilot) Aux() flight.AuxState { return flight.AuxNeutral }

func (p *scriptedPilot) Demand() rc.Demand {
	t := seconds(p.now)

	switch {
	case t < armAt: // idle through gyro calibration
		return rc.Demand{Throttle: p.throttle.Demand()}

	case t < flyAt: // arm gesture: throttle low, yaw high
		return rc.Demand{Throttle: p.throttle.Demand(), Yaw: 1}

	case t < disarmAt: // flight on sine sticks
		raw := 0.0
		if t < flyAt+2 { // climb, then hold
			raw = 0.4
		}
		return rc.Demand{
			Throttle: p.throttle.Update(raw),
			Roll:     rc.Expo(0.5*math.Sin(2*math.Pi*0.25*(t-flyAt)), rollExpo),
			Pitch:    rc.Expo(0.3*math.Sin(2*math.Pi*0.15*(t-flyAt)), rollExpo),
		}

	default: // disarm gesture: throttle low, yaw low
		return rc.Demand{Throttle: -1, Yaw: -1}
	}
}
