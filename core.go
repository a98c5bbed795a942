// Package quadfc is the flight-control core of a small multirotor
// autopilot: a fixed-rate, single-threaded loop that turns measured
// attitude and pilot stick demands into corrective demands, gated by an
// arming and calibration state machine.
//
// The core owns no clock and does no I/O of its own; it is driven by
// calling Update with a monotonic microsecond timestamp and talks to the
// outside world through the Receiver, IMU, Mixer, and Board
// collaborators.
package quadfc

import (
	"math"

	"github.com/spacefan/QuadFC/flight"
	"github.com/spacefan/QuadFC/rc"
	"github.com/spacefan/QuadFC/stabilizer"
	"github.com/spacefan/QuadFC/task"
)

// Receiver supplies the pilot's demands once per receiver tick.
type Receiver interface {
	// Ready reports that a fresh frame arrived ahead of the receiver
	// cadence (serial receivers deliver asynchronously).
	Ready() bool
	Demand() rc.Demand
	Aux() flight.AuxState
}

// IMU supplies measured Euler angles and angular rates once per control
// tick. Attitude estimation happens upstream; the core never fuses
// sensors.
type IMU interface {
	Sample() (stabilizer.Attitude, error)
}

// Mixer receives the corrected demands plus the armed flag every control
// tick and turns them into motor outputs.
type Mixer interface {
	Apply(demand rc.Demand, armed bool)
}

// Board is the status and housekeeping surface: indicator LEDs, armed
// and aux-switch display, and optional extra tasks run round-robin on
// ticks with no receiver work.
type Board interface {
	LedGreen(on bool)
	LedRed(on bool)
	ShowArmed(armed bool)
	ShowAuxStatus(aux flight.AuxState)
	ExtraTaskCount() int
	PerformExtraTask(index int)
}

// Core is the owning context for one vehicle: the stabilizer, the
// flight-mode state machine, the loop timers, and all cross-tick memory.
// A single goroutine must drive it.
type Core struct {
	cfg Config

	stab    *stabilizer.Stabilizer
	machine *flight.Machine

	receiver Receiver
	imu      IMU
	mixer    Mixer
	board    Board

	rcTask       task.Task
	imuTask      task.Task
	accelCalTask task.Task

	smallAngleThreshold float64

	lastDemand rc.Demand
	attitude   stabilizer.Attitude
	prevArmed  bool
	taskOrder  int
}

// New wires a Core from its configuration and collaborators. Gyro
// calibration starts immediately, as on power-up.
func New(cfg Config, receiver Receiver, imu IMU, mixer Mixer, board Board) *Core {
	c := &Core{
		cfg:                 cfg,
		stab:                stabilizer.New(cfg.Gains),
		machine:             flight.NewMachine(cfg.gyroCalCycles(), cfg.accelCalCycles()),
		receiver:            receiver,
		imu:                 imu,
		mixer:               mixer,
		board:               board,
		rcTask:              task.New(cfg.RcLoopMicros),
		imuTask:             task.New(cfg.ImuLoopMicros),
		accelCalTask:        task.New(cfg.AccelCalCheckMicros),
		smallAngleThreshold: math.Pi * cfg.SmallAngleDeg / 180,
	}
	c.lastDemand.Throttle = -1
	return c
}

// Armed reports whether the motors may spin.
func (c *Core) Armed() bool {
	return c.machine.Armed()
}

// FlightState returns a copy of the current flight state for telemetry.
func (c *Core) FlightState() flight.State {
	return c.machine.State()
}

// Gains returns the configured control gains for telemetry.
func (c *Core) Gains() stabilizer.Gains {
	return c.stab.Gains()
}

// Update runs one tick of the flight loop. The receiver cadence handles
// gestures and the ground-idle anti-windup reset; the (faster) sensor
// cadence runs the control law. Both may fire on the same call, receiver
// work first.
func (c *Core) Update(nowMicros uint64) {
	if c.rcTask.DueAndAdvance(nowMicros) || c.receiver.Ready() {
		c.updateReceiver()
	} else if n := c.board.ExtraTaskCount(); n > 0 {
		// Spread extra work across idle ticks to avoid delay spikes.
		c.board.PerformExtraTask(c.taskOrder)
		c.taskOrder++
		if c.taskOrder >= n {
			c.taskOrder = 0
		}
	}

	if c.imuTask.DueAndAdvance(nowMicros) {
		c.updateControl(nowMicros)
	}
}

func (c *Core) updateReceiver() {
	c.lastDemand = c.receiver.Demand()
	aux := c.receiver.Aux()

	if c.machine.Armed() {
		c.board.ShowAuxStatus(aux)
	}

	// Ground-idle anti-windup: evaluated every receiver tick, not only
	// on gesture transitions.
	if c.lastDemand.Throttle <= c.cfg.ThrottleIdle {
		c.stab.ResetIntegral()
	}

	c.machine.OnReceiverTick(flight.Classify(c.lastDemand), aux)

	if armed := c.machine.Armed(); armed != c.prevArmed {
		c.board.ShowArmed(armed)
		c.prevArmed = armed
	}
}

func (c *Core) updateControl(nowMicros uint64) {
	if att, err := c.imu.Sample(); err == nil {
		c.attitude = att
	}
	// On a sensor read error the previous attitude stands; output stays
	// bounded and the tick completes.

	c.machine.OnControlTick(
		c.attitude.Angles[stabilizer.AxisRoll],
		c.attitude.Angles[stabilizer.AxisPitch],
		c.smallAngleThreshold,
	)

	st := c.machine.State()
	if st.CalibratingGyroCycles > 0 || st.CalibratingAccelCycles > 0 {
		c.board.LedGreen(true)
	} else {
		if st.AccelCalibrated {
			c.board.LedGreen(false)
		}
		c.board.LedRed(st.Armed)
	}

	if c.accelCalTask.Due(nowMicros) {
		if c.machine.OnAccelCalCheck() {
			c.board.LedGreen(c.machine.BlinkOn())
			c.accelCalTask.Advance(nowMicros)
		}
	}

	out := c.stab.Update(c.lastDemand, c.attitude)
	c.mixer.Apply(out, c.machine.Armed())
}
