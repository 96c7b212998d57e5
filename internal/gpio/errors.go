package gpio

import "fmt"

// InitError reports that the GPIO subsystem could not be initialized.
type InitError struct {
	Err error // platform error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init gpio: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// RegisterError reports that the edge interrupt could not be registered.
type RegisterError struct {
	Pin  int
	Edge Edge
	Err  error // platform error
}

func (e *RegisterError) Error() string {
	return fmt.Sprintf("register %s edge interrupt on pin %d: %v", e.Edge, e.Pin, e.Err)
}

func (e *RegisterError) Unwrap() error { return e.Err }
