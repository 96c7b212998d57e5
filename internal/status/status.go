// Package status provides a thread-safe status tracker for the pulse-counter daemon.
// It is read by the HTTP handlers and the MQTT startup event.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/pulse-counter/internal/report"
)

// Config contains daemon configuration for display.
type Config struct {
	Pin        int
	Edge       string
	IntervalMs int64
	Broker     string // empty = MQTT disabled
	HTTPAddr   string
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Totals        report.Totals
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// Update records the reporting totals. Called from runLoop after every report.
func (t *Tracker) Update(totals report.Totals) {
	t.mu.Lock()
	t.snap.Totals = totals
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
