// Package counter holds the edge count shared between the GPIO event
// handler and the reporting loop.
package counter

import "sync/atomic"

// Counter is an edge counter that is safe to increment from an event
// handler goroutine while another goroutine takes and resets it.
// The zero value is ready to use.
type Counter struct {
	n atomic.Uint64
}

// Increment adds one edge. It never blocks.
func (c *Counter) Increment() {
	c.n.Add(1)
}

// TakeAndReset returns the edges counted since the previous call and resets
// the count to zero in a single atomic swap. An Increment racing with the
// swap is seen either by this call or by the next one, never lost.
func (c *Counter) TakeAndReset() uint64 {
	return c.n.Swap(0)
}

// Load returns the current count without resetting it.
func (c *Counter) Load() uint64 {
	return c.n.Load()
}
