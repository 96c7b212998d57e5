// Package report contains the pure reporting logic for the pulse counter.
// This package has NO external dependencies (no GPIO, MQTT, OS, or time.Sleep).
// Time is always injectable via time.Time parameters.
package report

import "time"

// Interval is the fixed period between reports.
const Interval = 1000 * time.Millisecond

// Report is the edge count for one reporting interval.
type Report struct {
	Seq       uint64 // 1 for the first report
	Timestamp time.Time
	Count     uint64
}

// Totals accumulates reports since startup.
type Totals struct {
	Reports uint64
	Edges   uint64
	Peak    uint64 // highest single-interval count
	Last    Report
}

// Source yields the edges counted since it was last asked.
type Source interface {
	TakeAndReset() uint64
}
