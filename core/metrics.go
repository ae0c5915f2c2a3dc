package core

import "time"

// Metrics defines the interface for collecting scheduler metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast to avoid impacting task execution.
// All implementations must be safe for concurrent use.
type Metrics interface {
	// RecordTaskDuration records how long a task took from launch to its
	// terminal state.
	RecordTaskDuration(taskName string, status TaskStatus, duration time.Duration)

	// RecordTaskFailed records that a task reached the Failed state.
	RecordTaskFailed(taskName string)

	// RecordQueueDepth records the current pending queue depth.
	RecordQueueDepth(depth int)

	// RecordRunning records the current number of in-flight tasks.
	RecordRunning(count int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskDuration is a no-op.
func (m *NilMetrics) RecordTaskDuration(taskName string, status TaskStatus, duration time.Duration) {
}

// RecordTaskFailed is a no-op.
func (m *NilMetrics) RecordTaskFailed(taskName string) {}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(depth int) {}

// RecordRunning is a no-op.
func (m *NilMetrics) RecordRunning(count int) {}
