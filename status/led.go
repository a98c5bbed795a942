// Package status drives indicator LEDs for arming and calibration
// feedback. Timing comes from the caller's microsecond clock so the
// package works on hardware and in simulation alike.
package status

// Pin is the minimal output-pin contract an LED needs.
type Pin interface {
	High()
	Low()
}

// Mode selects an LED pattern.
type Mode uint8

const (
	Off Mode = iota
	On
	SlowFlash
	FastFlash
	Flash
	Alternate
)

// Toggle half-periods per mode, in microseconds.
const (
	slowFlashMicros = 250_000
	fastFlashMicros = 50_000
	flashMicros     = 150_000
	alternateMicros = 500_000
)

// LED tracks one indicator's pattern state.
type LED struct {
	pin              Pin
	mode             Mode
	lastToggleMicros uint64
	isOn             bool
}

// NewLED creates an LED in the Off state.
func NewLED(pin Pin) *LED {
	pin.Low()
	return &LED{pin: pin}
}

// SetMode switches the pattern. The change takes effect on the next
// Update.
func (l *LED) SetMode(mode Mode) {
	l.mode = mode
}

// Mode returns the current pattern.
func (l *LED) Mode() Mode {
	return l.mode
}

// Update advances the pattern against the supplied monotonic time.
func (l *LED) Update(nowMicros uint64) {
	switch l.mode {
	case Off:
		l.set(false)
	case On:
		l.set(true)
	case SlowFlash:
		l.toggleEvery(slowFlashMicros, nowMicros)
	case FastFlash:
		l.toggleEvery(fastFlashMicros, nowMicros)
	case Flash:
		l.toggleEvery(flashMicros, nowMicros)
	case Alternate:
		l.toggleEvery(alternateMicros, nowMicros)
	}
}

func (l *LED) set(on bool) {
	if on == l.isOn {
		return
	}
	if on {
		l.pin.High()
	} else {
		l.pin.Low()
	}
	l.isOn = on
}

func (l *LED) toggleEvery(periodMicros, nowMicros uint64) {
	if nowMicros-l.lastToggleMicros < periodMicros {
		return
	}
	l.set(!l.isOn)
	l.lastToggleMicros = nowMicros
}
