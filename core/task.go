package core

import (
	"context"
	"time"
)

// DefaultEstimatedDuration is applied when a definition does not declare
// its own estimate.
const DefaultEstimatedDuration = time.Second

// TaskFactory produces the work for one task. It receives the scheduler's
// lifecycle context and returns either a result value or an error.
type TaskFactory func(ctx context.Context) (any, error)

// TaskDefinition is an immutable description of one unit of work.
// Name must be unique within any batch submitted together.
type TaskDefinition struct {
	Name              string
	Priority          int
	Dependencies      []string
	EstimatedDuration time.Duration
	Factory           TaskFactory
}

// TaskOption configures optional TaskDefinition attributes.
type TaskOption func(*TaskDefinition)

// WithPriority sets the definition priority. Higher is more urgent.
func WithPriority(priority int) TaskOption {
	return func(d *TaskDefinition) {
		d.Priority = priority
	}
}

// WithDependencies declares the names of tasks that must complete first.
func WithDependencies(names ...string) TaskOption {
	return func(d *TaskDefinition) {
		d.Dependencies = append(d.Dependencies, names...)
	}
}

// WithEstimatedDuration sets the expected runtime, used by the
// ShortestJob strategy and for slot completion estimates.
func WithEstimatedDuration(estimate time.Duration) TaskOption {
	return func(d *TaskDefinition) {
		d.EstimatedDuration = estimate
	}
}

// NewTaskDefinition builds a definition for the given factory.
func NewTaskDefinition(name string, factory TaskFactory, opts ...TaskOption) TaskDefinition {
	d := TaskDefinition{
		Name:    name,
		Factory: factory,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// ResolveEstimatedDuration returns the declared estimate, or the default
// when the definition left it unset.
func (d TaskDefinition) ResolveEstimatedDuration() time.Duration {
	if d.EstimatedDuration > 0 {
		return d.EstimatedDuration
	}
	return DefaultEstimatedDuration
}
