package internal

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/sweeney/pulse-counter/internal/counter"
	"github.com/sweeney/pulse-counter/internal/gpio"
	"github.com/sweeney/pulse-counter/internal/mqtt"
	"github.com/sweeney/pulse-counter/internal/report"
	"github.com/sweeney/pulse-counter/internal/status"
)

// TestIntegrationFullFlow tests the complete flow from GPIO edges to MQTT
// and the status tracker using fakes.
func TestIntegrationFullFlow(t *testing.T) {
	var edges counter.Counter
	hal := gpio.NewFakeInterrupter()
	if err := gpio.Setup(hal, gpio.DefaultPin, gpio.EdgeFalling, edges.Increment); err != nil {
		t.Fatalf("setup: %v", err)
	}

	publisher := mqtt.NewFakePublisher()
	startTime := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tracker := status.NewTracker(startTime, status.Config{Pin: gpio.DefaultPin, Edge: "falling", IntervalMs: 1000})
	reporter := report.NewReporter(&edges)

	// Edges delivered during each interval.
	intervals := []int{5, 0, 3, 12, 0}

	// Simulate the main loop
	for i, n := range intervals {
		hal.Fire(n)

		now := startTime.Add(time.Duration(i+1) * report.Interval)
		rep := reporter.Take(now)
		if err := publisher.Publish(rep); err != nil {
			t.Fatalf("interval %d: publish error: %v", i, err)
		}
		tracker.Update(reporter.Totals())
	}

	got := publisher.Counts()
	if len(got) != len(intervals) {
		t.Fatalf("expected %d reports, got %d", len(intervals), len(got))
	}
	for i, n := range intervals {
		if got[i] != uint64(n) {
			t.Errorf("interval %d: got %d, want %d", i, got[i], n)
		}
	}

	// Payload of the fourth report
	var parsed mqtt.Payload
	if err := json.Unmarshal(publisher.Payloads[3], &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if parsed.Pulses.Count != 12 || parsed.Pulses.Seq != 4 {
		t.Errorf("payload: got %+v", parsed.Pulses)
	}
	if parsed.Pulses.Timestamp != "2026-01-01T12:00:04Z" {
		t.Errorf("payload timestamp: got %s", parsed.Pulses.Timestamp)
	}

	snap := tracker.Snapshot()
	if snap.Totals.Edges != 20 {
		t.Errorf("total edges: got %d, want 20", snap.Totals.Edges)
	}
	if snap.Totals.Peak != 12 {
		t.Errorf("peak: got %d, want 12", snap.Totals.Peak)
	}
}

// TestIntegrationEdgesDuringTake fires edges from several goroutines while
// reports are being taken. Every edge must appear in exactly one report.
func TestIntegrationEdgesDuringTake(t *testing.T) {
	var edges counter.Counter
	hal := gpio.NewFakeInterrupter()
	if err := gpio.Setup(hal, gpio.DefaultPin, gpio.EdgeFalling, edges.Increment); err != nil {
		t.Fatalf("setup: %v", err)
	}
	reporter := report.NewReporter(&edges)

	const (
		sources = 4
		each    = 25000
	)

	var wg sync.WaitGroup
	for i := 0; i < sources; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hal.Fire(each)
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var sum uint64
loop:
	for {
		select {
		case <-done:
			break loop
		default:
			now = now.Add(report.Interval)
			sum += reporter.Take(now).Count
		}
	}
	// One more report picks up anything that landed after the last take.
	sum += reporter.Take(now.Add(report.Interval)).Count

	if sum != sources*each {
		t.Errorf("edges reported: got %d, want %d", sum, sources*each)
	}
	if tot := reporter.Totals(); tot.Edges != sum {
		t.Errorf("totals: got %d, want %d", tot.Edges, sum)
	}
}

func TestIntegrationCloseStopsEdges(t *testing.T) {
	var edges counter.Counter
	hal := gpio.NewFakeInterrupter()
	gpio.Setup(hal, gpio.DefaultPin, gpio.EdgeFalling, edges.Increment)

	hal.Fire(2)
	hal.Close()
	if hal.Fire(3) {
		t.Error("edges should not be delivered after Close")
	}
	if got := edges.TakeAndReset(); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}
