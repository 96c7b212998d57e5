// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/pulse-counter/internal/report"
)

// Topic is the MQTT topic for per-interval counts.
const Topic = "sensor/pulse/counts"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "sensor/pulse/system"

// Publisher publishes reports to MQTT.
type Publisher interface {
	// Publish sends an interval report to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(rep report.Report) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, offline).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "OFFLINE"
	Reason     string // e.g., "MQTT_DISCONNECT" (offline only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool
}

// Payload is the MQTT message payload for a report.
type Payload struct {
	Pulses PulsesPayload `json:"pulses"`
}

// PulsesPayload contains the report details.
type PulsesPayload struct {
	Seq        uint64 `json:"seq"`
	Timestamp  string `json:"timestamp"`
	Count      uint64 `json:"count"`
	IntervalMs int64  `json:"interval_ms"`
}

// FormatPayload creates the JSON payload for a report.
func FormatPayload(rep report.Report) ([]byte, error) {
	payload := Payload{
		Pulses: PulsesPayload{
			Seq:        rep.Seq,
			Timestamp:  rep.Timestamp.UTC().Format(time.RFC3339),
			Count:      rep.Count,
			IntervalMs: report.Interval.Milliseconds(),
		},
	}
	return json.Marshal(payload)
}

// SystemPayload is the MQTT message payload for simple system events
// that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly.
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
