package core

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// TaskResult is the caller-facing outcome of one task. Data is set only
// when the task succeeded.
type TaskResult struct {
	Name string
	Data any
}

// IsSuccessful reports whether the task produced a result.
func (r TaskResult) IsSuccessful() bool {
	return r.Data != nil
}

// TelemetryCollector records one human-readable line and one structured
// TaskResult per completed task. Entries are append-only and ordered by
// completion, not submission. Safe for concurrent use; tasks finishing
// on different goroutines record directly.
type TelemetryCollector struct {
	mu      sync.Mutex
	entries []string
	results []TaskResult
}

func NewTelemetryCollector() *TelemetryCollector {
	return &TelemetryCollector{}
}

// RecordSuccess appends a success line and a result carrying data.
func (c *TelemetryCollector) RecordSuccess(name string, elapsed time.Duration, data any) {
	entry := fmt.Sprintf("%s: completed in %dms", name, elapsed.Milliseconds())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	c.results = append(c.results, TaskResult{Name: name, Data: data})
}

// RecordFailure appends a failure line carrying an error code and
// message, and a result with no data.
func (c *TelemetryCollector) RecordFailure(name string, elapsed time.Duration, err error) {
	entry := fmt.Sprintf("%s: failed after %dms - %s: %v",
		name, elapsed.Milliseconds(), errorCode(err), err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, entry)
	c.results = append(c.results, TaskResult{Name: name})
}

// Entries returns a copy of the recorded telemetry lines.
func (c *TelemetryCollector) Entries() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

// Results returns a copy of the recorded task results.
func (c *TelemetryCollector) Results() []TaskResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]TaskResult, len(c.results))
	copy(out, c.results)
	return out
}

// Len returns the number of recorded completions.
func (c *TelemetryCollector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// errorCode classifies a failure for the telemetry line.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrDependencyFailed):
		return "DependencyFailed"
	case errors.Is(err, ErrMissingDependency):
		return "MissingDependency"
	case errors.Is(err, ErrSchedulerClosed):
		return "SchedulerClosed"
	default:
		return "TaskError"
	}
}
