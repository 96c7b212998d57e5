package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Pin           int        `json:"pin"`
	Edge          string     `json:"edge"`
	IntervalMs    int64      `json:"interval_ms"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	LastCount     uint64     `json:"last_count"`
	LastReport    string     `json:"last_report,omitempty"`
	Reports       uint64     `json:"reports"`
	TotalEdges    uint64     `json:"total_edges"`
	PeakCount     uint64     `json:"peak_count"`
	MQTT          MQTTStatus `json:"mqtt"`
	HTTPAddr      string     `json:"http_addr,omitempty"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Pin:           snap.Config.Pin,
		Edge:          snap.Config.Edge,
		IntervalMs:    snap.Config.IntervalMs,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		LastCount:     snap.Totals.Last.Count,
		Reports:       snap.Totals.Reports,
		TotalEdges:    snap.Totals.Edges,
		PeakCount:     snap.Totals.Peak,
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		HTTPAddr:      snap.Config.HTTPAddr,
	}
	if snap.Totals.Reports > 0 {
		inner.LastReport = snap.Totals.Last.Timestamp.UTC().Format(time.RFC3339)
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event string) []byte {
	inner := buildInner(snap)
	inner.Event = event

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
