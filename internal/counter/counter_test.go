package counter

import (
	"sync"
	"testing"
)

func TestZeroValue(t *testing.T) {
	var c Counter
	if got := c.TakeAndReset(); got != 0 {
		t.Errorf("zero value: got %d, want 0", got)
	}
}

func TestIncrementAndTake(t *testing.T) {
	var c Counter
	for i := 0; i < 5; i++ {
		c.Increment()
	}

	if got := c.Load(); got != 5 {
		t.Errorf("Load: got %d, want 5", got)
	}
	if got := c.TakeAndReset(); got != 5 {
		t.Errorf("first take: got %d, want 5", got)
	}
	if got := c.TakeAndReset(); got != 0 {
		t.Errorf("second take: got %d, want 0", got)
	}
}

func TestLoadDoesNotReset(t *testing.T) {
	var c Counter
	c.Increment()
	c.Load()
	c.Load()
	if got := c.TakeAndReset(); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

// Increments from many goroutines while the count is repeatedly taken must
// sum to exactly the number of increments.
func TestConcurrentIncrementsNotLost(t *testing.T) {
	const (
		workers = 8
		perWork = 10000
	)

	var c Counter
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWork; i++ {
				c.Increment()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	var total uint64
loop:
	for {
		select {
		case <-done:
			break loop
		default:
			total += c.TakeAndReset()
		}
	}
	total += c.TakeAndReset()

	if total != workers*perWork {
		t.Errorf("total: got %d, want %d", total, workers*perWork)
	}
}
