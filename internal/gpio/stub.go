//go:build !linux

package gpio

import "errors"

// RealInterrupter is not available on non-Linux platforms.
type RealInterrupter struct{}

// NewRealInterrupter returns an Interrupter whose Init always fails.
func NewRealInterrupter() *RealInterrupter {
	return &RealInterrupter{}
}

// Init returns an error on non-Linux platforms.
func (r *RealInterrupter) Init() error {
	return errors.New("gpio: not supported on this platform (requires Linux)")
}

// RegisterEdgeInterrupt is not implemented on non-Linux platforms.
func (r *RealInterrupter) RegisterEdgeInterrupt(pin int, edge Edge, handler func()) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *RealInterrupter) Close() error {
	return nil
}
