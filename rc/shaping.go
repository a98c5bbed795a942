package rc

import "github.com/spacefan/QuadFC/filter"

// Springy integrates a spring-centered throttle axis (game controllers
// like XBox or PS3 sticks) into a persistent throttle demand. Deflecting
// the stick up or down nudges the demand; releasing it holds the current
// value instead of snapping back to center.
type Springy struct {
	demand float64
}

const (
	springyDeadband = 0.15
	springyStep     = 0.1
)

// NewSpringy starts the throttle demand at its minimum.
func NewSpringy() *Springy {
	return &Springy{demand: -1}
}

// Update feeds one raw axis sample and returns the accumulated demand.
func (s *Springy) Update(raw float64) float64 {
	s.demand += filter.Deadband(raw, springyDeadband) * springyStep
	s.demand = filter.ConstrainAbs(s.demand, 1)
	return s.demand
}

// Demand returns the current accumulated throttle demand.
func (s *Springy) Demand() float64 {
	return s.demand
}

// Expo applies an exponential stick curve: softer around center, full
// authority at the endpoints. e is in [0, 1]; e=0 is linear.
func Expo(value, e float64) float64 {
	return (1-e)*value + e*value*value*value
}
