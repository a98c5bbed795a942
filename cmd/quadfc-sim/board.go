package main

import (
	"fmt"

	"github.com/spacefan/QuadFC/flight"
	"github.com/spacefan/QuadFC/status"
)

// consolePin logs LED edges with a timestamp.
type consolePin struct {
	name  string
	board *consoleBoard
}

func (p *consolePin) High() { fmt.Printf("[%7.3fs] led %s on\n", seconds(p.board.now), p.name) }
func (p *consolePin) Low()  { fmt.Printf("[%7.3fs] led %s off\n", seconds(p.board.now), p.name) }

// consoleBoard implements quadfc.Board on stdout. LED pattern updates run
// as the board's single extra task, spread across idle loop ticks.
type consoleBoard struct {
	now   uint64
	green *status.LED
	red   *status.LED
}

func newConsoleBoard() *consoleBoard {
	b := &consoleBoard{}
	b.green = status.NewLED(&consolePin{name: "green", board: b})
	b.red = status.NewLED(&consolePin{name: "red", board: b})
	return b
}

func (b *consoleBoard) LedGreen(on bool) { b.setLED(b.green, on) }
func (b *consoleBoard) LedRed(on bool)   { b.setLED(b.red, on) }

func (b *consoleBoard) setLED(led *status.LED, on bool) {
	mode := status.Off
	if on {
		mode = status.On
	}
	led.SetMode(mode)
}

func (b *consoleBoard) ShowArmed(armed bool) {
	if armed {
		fmt.Printf("[%7.3fs] ARMED\n", seconds(b.now))
	} else {
		fmt.Printf("[%7.3fs] DISARMED\n", seconds(b.now))
	}
}

func (b *consoleBoard) ShowAuxStatus(aux flight.AuxState) {
	// The scripted pilot never moves the aux switch.
	_ = aux
}

func (b *consoleBoard) ExtraTaskCount() int { return 1 }

func (b *consoleBoard) PerformExtraTask(index int) {
	_ = index
	b.green.Update(b.now)
	b.red.Update(b.now)
}
