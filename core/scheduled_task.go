package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// TaskStatus describes the lifecycle state of a ScheduledTask.
type TaskStatus int

const (
	// StatusScheduled: enqueued, not yet launched.
	StatusScheduled TaskStatus = iota

	// StatusRunning: the factory is executing.
	StatusRunning

	// StatusCompleted: the factory returned a result.
	StatusCompleted

	// StatusFailed: the factory returned an error, panicked, or a
	// dependency failed before the task could launch.
	StatusFailed
)

func (s TaskStatus) String() string {
	switch s {
	case StatusScheduled:
		return "scheduled"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the status is a final state.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// ScheduledTask is the mutable runtime wrapper around one TaskDefinition.
// The scheduler owns it from enqueue to completion; callers read its
// state through the accessor methods, which are safe to call at any time.
//
// Status transitions are monotonic: Scheduled -> Running -> {Completed |
// Failed}. A task never regresses and reaches a terminal state at most
// once. The one shortcut is Scheduled -> Failed, taken when a dependency
// fails and the task is never launched.
type ScheduledTask struct {
	mu sync.Mutex

	id         string
	definition TaskDefinition
	priority   int
	estimated  time.Duration

	scheduledAt time.Time
	startedAt   time.Time
	completedAt time.Time

	status TaskStatus
	result any
	err    error
}

func newScheduledTask(definition TaskDefinition, priority int) *ScheduledTask {
	return &ScheduledTask{
		id:          uuid.NewString(),
		definition:  definition,
		priority:    priority,
		estimated:   definition.ResolveEstimatedDuration(),
		scheduledAt: time.Now(),
		status:      StatusScheduled,
	}
}

// ID returns the unique runtime identifier assigned at schedule time.
func (t *ScheduledTask) ID() string { return t.id }

// Name returns the definition name.
func (t *ScheduledTask) Name() string { return t.definition.Name }

// Definition returns the wrapped immutable definition.
func (t *ScheduledTask) Definition() TaskDefinition { return t.definition }

// Priority returns the effective priority (definition priority unless
// overridden at schedule time).
func (t *ScheduledTask) Priority() int { return t.priority }

// EstimatedDuration returns the resolved runtime estimate.
func (t *ScheduledTask) EstimatedDuration() time.Duration { return t.estimated }

// ScheduledAt returns the enqueue timestamp.
func (t *ScheduledTask) ScheduledAt() time.Time { return t.scheduledAt }

// Status returns the current lifecycle state.
func (t *ScheduledTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// StartedAt returns the launch timestamp; zero until the task starts.
func (t *ScheduledTask) StartedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.startedAt
}

// CompletedAt returns the terminal timestamp; zero until the task ends.
func (t *ScheduledTask) CompletedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completedAt
}

// Result returns the factory's result value; nil unless Completed.
func (t *ScheduledTask) Result() any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result
}

// Err returns the failure detail; nil unless Failed.
func (t *ScheduledTask) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Duration returns elapsed wall time between start and completion, or
// zero if the task has not reached a terminal state.
func (t *ScheduledTask) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.status.IsTerminal() || t.startedAt.IsZero() {
		return 0
	}
	return t.completedAt.Sub(t.startedAt)
}

// markRunning transitions Scheduled -> Running. Returns false if the
// task already left the Scheduled state.
func (t *ScheduledTask) markRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusScheduled {
		return false
	}
	t.status = StatusRunning
	t.startedAt = time.Now()
	return true
}

// markCompleted transitions Running -> Completed and stores the result.
func (t *ScheduledTask) markCompleted(result any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status != StatusRunning {
		return false
	}
	t.status = StatusCompleted
	t.completedAt = time.Now()
	t.result = result
	return true
}

// markFailed transitions Scheduled or Running -> Failed and stores the
// failure detail.
func (t *ScheduledTask) markFailed(err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.IsTerminal() {
		return false
	}
	t.status = StatusFailed
	t.completedAt = time.Now()
	t.err = err
	return true
}
