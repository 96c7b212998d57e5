package mqtt

import (
	"errors"
	"log"
	"sync"

	"github.com/sweeney/pulse-counter/internal/report"
)

// DefaultQueueSize holds about a minute of reports.
const DefaultQueueSize = 64

var (
	// ErrQueueFull is returned by AsyncPublisher.Publish when the report
	// could not be queued; the report is dropped.
	ErrQueueFull = errors.New("mqtt: publish queue full")

	// ErrClosed is returned by AsyncPublisher.Publish after Close.
	ErrClosed = errors.New("mqtt: publisher closed")
)

// AsyncPublisher hands reports to a background goroutine so that callers
// never wait on the broker. Publish never blocks.
type AsyncPublisher struct {
	inner Publisher

	mu     sync.Mutex
	closed bool
	queue  chan report.Report
	done   chan struct{}
}

// NewAsyncPublisher starts a goroutine publishing queued reports to inner.
func NewAsyncPublisher(inner Publisher, size int) *AsyncPublisher {
	a := &AsyncPublisher{
		inner: inner,
		queue: make(chan report.Report, size),
		done:  make(chan struct{}),
	}
	go a.drain()
	return a
}

func (a *AsyncPublisher) drain() {
	defer close(a.done)
	for rep := range a.queue {
		if err := a.inner.Publish(rep); err != nil {
			log.Printf("publish error (report %d): %v", rep.Seq, err)
		}
	}
}

// Publish queues rep. It returns ErrQueueFull if the queue is full.
func (a *AsyncPublisher) Publish(rep report.Report) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- rep:
		return nil
	default:
		return ErrQueueFull
	}
}

// PublishSystem publishes event synchronously; it is only used outside the
// reporting loop.
func (a *AsyncPublisher) PublishSystem(event SystemEvent) error {
	return a.inner.PublishSystem(event)
}

// Close publishes whatever is still queued, then closes inner.
func (a *AsyncPublisher) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()

	<-a.done
	return a.inner.Close()
}
