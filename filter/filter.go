// Package filter provides the small numeric helpers shared by the
// flight-control packages: clamping, deadbanding, complementary blending,
// and range mapping.
package filter

import "golang.org/x/exp/constraints"

// Constrain limits value to the range [min, max].
func Constrain(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ConstrainAbs limits value to the symmetric range [-bound, +bound].
func ConstrainAbs(value, bound float64) float64 {
	return Constrain(value, -bound, +bound)
}

// Complementary blends two estimates with weights that sum to one:
// a*prop + b*(1-prop). As prop moves toward 1, a dominates.
func Complementary(a, b, prop float64) float64 {
	return a*prop + b*(1-prop)
}

// Deadband zeroes value inside the dead zone and re-centers it outside,
// so the output is continuous at the zone edges.
func Deadband(value, band float64) float64 {
	if value > band {
		return value - band
	}
	if value < -band {
		return value + band
	}
	return 0
}

// MapRange maps a value from one range to another.
func MapRange[T constraints.Float](value, fromMin, fromMax, toMin, toMax T) T {
	return (value-fromMin)/(fromMax-fromMin)*(toMax-toMin) + toMin
}
