// Package gpio provides edge interrupt registration with hardware abstraction.
// The real implementation uses Linux GPIO character device.
// The fake implementation allows testing without hardware.
package gpio

// Interrupter is the platform GPIO capability the counter depends on.
type Interrupter interface {
	// Init prepares the GPIO subsystem. It must succeed before
	// RegisterEdgeInterrupt is called.
	Init() error

	// RegisterEdgeInterrupt arranges for handler to be called once per
	// edge of the given type on pin. The handler runs on a goroutine owned
	// by the implementation and must not block.
	RegisterEdgeInterrupt(pin int, edge Edge, handler func()) error

	// Close releases GPIO resources.
	Close() error
}

// Edge selects which transitions trigger an interrupt.
type Edge int

const (
	EdgeFalling Edge = iota
	EdgeRising
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeFalling:
		return "falling"
	case EdgeRising:
		return "rising"
	case EdgeBoth:
		return "both"
	}
	return "unknown"
}

// DefaultPin is BCM GPIO17 (J8 pin 11, wiringPi pin 0).
const DefaultPin = 17

// Setup initializes hal and registers handler for edges on pin.
// Failures are returned as *InitError or *RegisterError. On a registration
// failure hal is closed before returning.
func Setup(hal Interrupter, pin int, edge Edge, handler func()) error {
	if err := hal.Init(); err != nil {
		return &InitError{Err: err}
	}
	if err := hal.RegisterEdgeInterrupt(pin, edge, handler); err != nil {
		hal.Close()
		return &RegisterError{Pin: pin, Edge: edge, Err: err}
	}
	return nil
}
