package core

import "errors"

var (
	// ErrCircularDependency indicates the dependency graph contains a cycle.
	ErrCircularDependency = errors.New("tasklist: circular dependency detected")

	// ErrMissingDependency indicates a task references an unknown dependency.
	ErrMissingDependency = errors.New("tasklist: missing dependency")

	// ErrDuplicateTask indicates two definitions in one batch share a name.
	ErrDuplicateTask = errors.New("tasklist: duplicate task name")

	// ErrEmptyTaskName indicates a definition with no name.
	ErrEmptyTaskName = errors.New("tasklist: task name must not be empty")

	// ErrDependencyFailed indicates a task was failed because one of its
	// dependencies finished with an error.
	ErrDependencyFailed = errors.New("tasklist: dependency failed")

	// ErrSchedulerClosed indicates the scheduler has been shut down and
	// rejects new work.
	ErrSchedulerClosed = errors.New("tasklist: scheduler closed")
)
