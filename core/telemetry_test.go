package core

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestTelemetryCollector_SuccessEntry verifies the success line format
func TestTelemetryCollector_SuccessEntry(t *testing.T) {
	c := NewTelemetryCollector()

	c.RecordSuccess("forecast", 125*time.Millisecond, "sunny")

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0] != "forecast: completed in 125ms" {
		t.Errorf("entry = %q", entries[0])
	}

	results := c.Results()
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	if !results[0].IsSuccessful() || results[0].Data != "sunny" {
		t.Errorf("result = %+v, want successful with data", results[0])
	}
}

// TestTelemetryCollector_FailureEntry verifies the failure line carries
// the task name, elapsed milliseconds, an error code and the message
func TestTelemetryCollector_FailureEntry(t *testing.T) {
	c := NewTelemetryCollector()

	c.RecordFailure("X", 40*time.Millisecond, errors.New("boom"))

	entries := c.Entries()
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if !strings.Contains(entries[0], "X") || !strings.Contains(entries[0], "boom") {
		t.Errorf("failure entry %q missing name or message", entries[0])
	}
	if !strings.Contains(entries[0], "40ms") {
		t.Errorf("failure entry %q missing elapsed time", entries[0])
	}
	if !strings.Contains(entries[0], "TaskError") {
		t.Errorf("failure entry %q missing error code", entries[0])
	}

	results := c.Results()
	if results[0].IsSuccessful() || results[0].Data != nil {
		t.Errorf("failure result = %+v, want no data", results[0])
	}
}

func TestTelemetryCollector_ErrorCodes(t *testing.T) {
	c := NewTelemetryCollector()

	c.RecordFailure("a", 0, fmt.Errorf("%w: b", ErrDependencyFailed))
	c.RecordFailure("b", 0, fmt.Errorf("%w: c", ErrMissingDependency))
	c.RecordFailure("c", 0, ErrSchedulerClosed)

	entries := c.Entries()
	wants := []string{"DependencyFailed", "MissingDependency", "SchedulerClosed"}
	for i, want := range wants {
		if !strings.Contains(entries[i], want) {
			t.Errorf("entry %q missing code %q", entries[i], want)
		}
	}
}

// TestTelemetryCollector_ConcurrentRecording verifies lossless
// append-only behavior under concurrent completion
func TestTelemetryCollector_ConcurrentRecording(t *testing.T) {
	c := NewTelemetryCollector()

	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("task-%d", i)
			if i%2 == 0 {
				c.RecordSuccess(name, time.Millisecond, i)
			} else {
				c.RecordFailure(name, time.Millisecond, errors.New("x"))
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != workers {
		t.Fatalf("Len() = %d, want %d", c.Len(), workers)
	}
	if len(c.Entries()) != workers || len(c.Results()) != workers {
		t.Fatal("entries/results dropped under concurrency")
	}
}

func TestTelemetryCollector_CopiesAreIndependent(t *testing.T) {
	c := NewTelemetryCollector()
	c.RecordSuccess("a", time.Millisecond, 1)

	entries := c.Entries()
	entries[0] = "mutated"

	if c.Entries()[0] == "mutated" {
		t.Error("Entries() exposes internal slice")
	}
}
