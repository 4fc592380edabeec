// Package sensor exposes the latest accelerometer reading.
package sensor

import "sync"

// Sample is one 3-axis acceleration reading in m/s².
type Sample struct {
	X, Y, Z float32
}

// Axes returns the components in gauge order.
func (s Sample) Axes() []float32 {
	return []float32{s.X, s.Y, s.Z}
}

type Sampler interface {
	Start() error
	Stop() error
	// Latest returns false until the first reading arrives.
	Latest() (Sample, bool)
}

// Holder keeps the most recent reading pushed into it.
type Holder struct {
	mu     sync.Mutex
	sample Sample
	ok     bool
}

func (h *Holder) Update(s Sample) {
	h.mu.Lock()
	h.sample = s
	h.ok = true
	h.mu.Unlock()
}

func (h *Holder) Latest() (Sample, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sample, h.ok
}

func (h *Holder) Clear() {
	h.mu.Lock()
	h.ok = false
	h.mu.Unlock()
}

// None is the sampler of builds without an accelerometer.
type None struct{}

func (None) Start() error           { return nil }
func (None) Stop() error            { return nil }
func (None) Latest() (Sample, bool) { return Sample{}, false }
