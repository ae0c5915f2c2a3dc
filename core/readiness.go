package core

import "fmt"

// readinessTracker gates launches on dependency completion. A task is a
// launch candidate only once every declared dependency has completed.
// The tracker keeps its own completed/failed sets, updated under its
// lock as tasks finish, so registration and decrement never race on
// ScheduledTask status reads.
type readinessTracker struct {
	tasks      map[string]*ScheduledTask
	remaining  map[string]int      // unfinished dependency count per task
	dependents map[string][]string // dependency name -> dependent task names
	completed  map[string]bool
	failed     map[string]bool
}

func newReadinessTracker() *readinessTracker {
	return &readinessTracker{
		tasks:      make(map[string]*ScheduledTask),
		remaining:  make(map[string]int),
		dependents: make(map[string][]string),
		completed:  make(map[string]bool),
		failed:     make(map[string]bool),
	}
}

// register adds a task to the tracker. It fails when the name is
// already taken, a dependency was never scheduled, or a dependency has
// already failed. Callers hold the scheduler's tracker lock.
func (r *readinessTracker) register(task *ScheduledTask) error {
	name := task.Name()
	if name == "" {
		return ErrEmptyTaskName
	}
	if _, exists := r.tasks[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTask, name)
	}

	pending := 0
	for _, dep := range task.Definition().Dependencies {
		if _, known := r.tasks[dep]; !known {
			return fmt.Errorf("%w: task %q depends on %q", ErrMissingDependency, name, dep)
		}
		if r.failed[dep] {
			return fmt.Errorf("%w: %q failed before %q was scheduled", ErrDependencyFailed, dep, name)
		}
		if !r.completed[dep] {
			pending++
			r.dependents[dep] = append(r.dependents[dep], name)
		}
	}

	r.tasks[name] = task
	r.remaining[name] = pending
	return nil
}

// ready reports whether every dependency of the named task has completed.
func (r *readinessTracker) ready(name string) bool {
	return r.remaining[name] == 0
}

// onCompleted marks a task completed and unblocks its dependents.
func (r *readinessTracker) onCompleted(name string) {
	r.completed[name] = true
	for _, dep := range r.dependents[name] {
		if r.remaining[dep] > 0 {
			r.remaining[dep]--
		}
	}
	delete(r.dependents, name)
}

// onFailed marks a task failed and returns every transitively dependent
// task that can no longer run. Returned tasks are not yet terminal; the
// caller fails them and records their telemetry.
func (r *readinessTracker) onFailed(name string) []*ScheduledTask {
	var cascade []*ScheduledTask

	stack := []string{name}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if r.failed[current] {
			continue
		}
		r.failed[current] = true

		for _, dep := range r.dependents[current] {
			if task, ok := r.tasks[dep]; ok && !r.failed[dep] {
				cascade = append(cascade, task)
				stack = append(stack, dep)
			}
		}
		delete(r.dependents, current)
	}

	return cascade
}
