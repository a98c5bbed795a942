// Package rc holds the normalized pilot-demand types and the stick-shaping
// helpers that sit between a receiver protocol decoder and the flight core.
package rc

import "github.com/spacefan/QuadFC/filter"

// Receiver channel layout (AETR plus aux).
const (
	ChannelThrottle = 0
	ChannelRoll     = 1
	ChannelPitch    = 2
	ChannelYaw      = 3
	ChannelAux      = 4

	// NumChannels is the number of supported RC channels.
	NumChannels = 18
)

// Raw receiver channel range in microseconds-equivalent counts.
const (
	MinChannelValue     = 988
	MaxChannelValue     = 2012
	NeutralChannelValue = 1500
)

// Demand is the normalized pilot demand for one receiver tick.
// All four values are in [-1, +1]; throttle is carried alongside the three
// control axes but is never fed to the control law.
type Demand struct {
	Throttle float64
	Roll     float64
	Pitch    float64
	Yaw      float64
}

// DemandFromChannels maps raw channel counts to a normalized Demand.
func DemandFromChannels(ch [NumChannels]uint16) Demand {
	return Demand{
		Throttle: normalize(ch[ChannelThrottle]),
		Roll:     normalize(ch[ChannelRoll]),
		Pitch:    normalize(ch[ChannelPitch]),
		Yaw:      normalize(ch[ChannelYaw]),
	}
}

func normalize(v uint16) float64 {
	raw := filter.Constrain(float64(v), MinChannelValue, MaxChannelValue)
	return filter.MapRange(raw, MinChannelValue, MaxChannelValue, -1.0, 1.0)
}
