//go:build linux

package gpio

import (
	"errors"
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// ChipName is the GPIO character device carrying the Raspberry Pi header.
const ChipName = "gpiochip0"

var (
	errNotInitialized    = errors.New("gpio not initialized")
	errAlreadyRegistered = errors.New("interrupt already registered")
)

// RealInterrupter delivers edge interrupts from actual hardware using Linux
// GPIO character device. Only a single line is supported.
type RealInterrupter struct {
	chipName string
	chip     *gpiocdev.Chip
	line     *gpiocdev.Line
}

// NewRealInterrupter creates an Interrupter for actual Raspberry Pi hardware.
func NewRealInterrupter() *RealInterrupter {
	return &RealInterrupter{chipName: ChipName}
}

// Init opens the GPIO chip.
func (r *RealInterrupter) Init() error {
	if r.chip != nil {
		return nil
	}
	chip, err := gpiocdev.NewChip(r.chipName)
	if err != nil {
		return fmt.Errorf("open gpio chip %s: %w", r.chipName, err)
	}
	r.chip = chip
	return nil
}

// RegisterEdgeInterrupt requests pin as an input with pull-up and edge
// detection. gpiocdev calls the event handler from its own watcher goroutine.
func (r *RealInterrupter) RegisterEdgeInterrupt(pin int, edge Edge, handler func()) error {
	if r.chip == nil {
		return errNotInitialized
	}
	if r.line != nil {
		return errAlreadyRegistered
	}

	opt, err := edgeOption(edge)
	if err != nil {
		return err
	}

	// Pull-up so an open switch idles high and a press to ground is a
	// falling edge.
	line, err := r.chip.RequestLine(pin,
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		opt,
		gpiocdev.WithEventHandler(func(evt gpiocdev.LineEvent) {
			if matches(edge, evt.Type) {
				handler()
			}
		}))
	if err != nil {
		return fmt.Errorf("request pin %d: %w", pin, err)
	}
	r.line = line
	return nil
}

// Close releases the line and the chip.
func (r *RealInterrupter) Close() error {
	var errs []error

	if r.line != nil {
		if err := r.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close line: %w", err))
		}
		r.line = nil
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
		r.chip = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func edgeOption(edge Edge) (gpiocdev.LineReqOption, error) {
	switch edge {
	case EdgeFalling:
		return gpiocdev.WithFallingEdge, nil
	case EdgeRising:
		return gpiocdev.WithRisingEdge, nil
	case EdgeBoth:
		return gpiocdev.WithBothEdges, nil
	}
	return nil, fmt.Errorf("unsupported edge %d", int(edge))
}

func matches(edge Edge, t gpiocdev.LineEventType) bool {
	switch edge {
	case EdgeFalling:
		return t == gpiocdev.LineEventFallingEdge
	case EdgeRising:
		return t == gpiocdev.LineEventRisingEdge
	}
	return true
}
