// quadfc-sim runs the flight core against a scripted pilot and a toy
// vehicle model: boot gyro calibration, arm, a short flight on sine
// stick inputs, disarm. Useful for eyeballing the arming flow and the
// control response without hardware.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	quadfc "github.com/spacefan/QuadFC"
	"github.com/spacefan/QuadFC/task"
)

type Options struct {
	Duration  float64 `long:"duration" short:"d" default:"12" description:"Simulated seconds to run"`
	Step      uint64  `long:"step" default:"500" description:"Simulation step in microseconds"`
	Telemetry float64 `long:"telemetry" short:"t" default:"0.5" description:"Telemetry interval in seconds"`
}

func main() {
	var opts Options
	if _, err := flags.Parse(&opts); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "quadfc-sim:", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	if opts.Step == 0 {
		return fmt.Errorf("step must be positive")
	}

	cfg := quadfc.DefaultConfig()
	pilot := newScriptedPilot()
	veh := newVehicle(float64(cfg.ImuLoopMicros) / 1e6)
	board := newConsoleBoard()
	core := quadfc.New(cfg, pilot, veh, veh, board)

	telemetry := task.New(uint64(opts.Telemetry * 1e6))
	end := uint64(opts.Duration * 1e6)

	for now := uint64(0); now < end; now += opts.Step {
		pilot.now = now
		board.now = now
		core.Update(now)

		if telemetry.DueAndAdvance(now) {
			st := core.FlightState()
			fmt.Printf("[%7.3fs] armed=%-5v gyroCal=%-4d accelCal=%-5v roll=%+.3f pitch=%+.3f out=%+.3f/%+.3f/%+.3f\n",
				seconds(now), st.Armed, st.CalibratingGyroCycles, st.AccelCalibrated,
				veh.angles[0], veh.angles[1],
				veh.demand.Roll, veh.demand.Pitch, veh.demand.Yaw)
		}
	}

	fmt.Printf("[%7.3fs] simulation complete\n", seconds(end))
	return nil
}

func seconds(micros uint64) float64 {
	return float64(micros) / 1e6
}
