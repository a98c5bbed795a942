package rc

import "sync"

// Channels stores the latest raw receiver channel values. A protocol
// decoder goroutine writes frames into it and the flight loop reads them,
// so access is guarded by a mutex.
type Channels struct {
	mu     sync.Mutex
	values [NumChannels]uint16
}

// Update replaces all channel values with a newly decoded frame.
func (c *Channels) Update(values [NumChannels]uint16) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = values
}

// Get returns a copy of the current channel values.
func (c *Channels) Get() [NumChannels]uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// Demand returns the current channel values as a normalized Demand.
func (c *Channels) Demand() Demand {
	return DemandFromChannels(c.Get())
}
