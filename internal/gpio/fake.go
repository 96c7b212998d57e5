package gpio

import (
	"errors"
	"sync"
)

// FakeInterrupter is a test double that delivers simulated edges.
type FakeInterrupter struct {
	// InitError, if set, will be returned by Init.
	InitError error

	// RegisterError, if set, will be returned by RegisterEdgeInterrupt.
	RegisterError error

	mu          sync.Mutex
	initialized bool
	closed      bool
	pin         int
	edge        Edge
	handler     func()
}

// NewFakeInterrupter creates a FakeInterrupter that succeeds by default.
func NewFakeInterrupter() *FakeInterrupter {
	return &FakeInterrupter{}
}

// Init marks the fake as initialized unless InitError is set.
func (f *FakeInterrupter) Init() error {
	if f.InitError != nil {
		return f.InitError
	}
	f.mu.Lock()
	f.initialized = true
	f.mu.Unlock()
	return nil
}

// RegisterEdgeInterrupt records the handler unless RegisterError is set.
func (f *FakeInterrupter) RegisterEdgeInterrupt(pin int, edge Edge, handler func()) error {
	if f.RegisterError != nil {
		return f.RegisterError
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.initialized {
		return errors.New("fake gpio not initialized")
	}
	f.pin = pin
	f.edge = edge
	f.handler = handler
	return nil
}

// Close marks the fake as closed and drops the handler.
func (f *FakeInterrupter) Close() error {
	f.mu.Lock()
	f.closed = true
	f.handler = nil
	f.mu.Unlock()
	return nil
}

// Fire delivers n edges to the registered handler. It returns false if no
// handler is registered. Safe to call from multiple goroutines.
func (f *FakeInterrupter) Fire(n int) bool {
	f.mu.Lock()
	h := f.handler
	f.mu.Unlock()
	if h == nil {
		return false
	}
	for i := 0; i < n; i++ {
		h()
	}
	return true
}

// Initialized reports whether Init succeeded.
func (f *FakeInterrupter) Initialized() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.initialized
}

// Registered reports whether a handler is registered.
func (f *FakeInterrupter) Registered() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.handler != nil
}

// Closed reports whether Close was called.
func (f *FakeInterrupter) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Registration returns the pin and edge of the last registration.
func (f *FakeInterrupter) Registration() (int, Edge) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pin, f.edge
}
