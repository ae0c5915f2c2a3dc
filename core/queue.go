package core

import "sync"

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// pendingQueue is a mutex-guarded FIFO of scheduled tasks. Schedule
// pushes from any goroutine; only the dispatch loop drains.
type pendingQueue struct {
	mu    sync.Mutex
	tasks []*ScheduledTask
}

func newPendingQueue() *pendingQueue {
	return &pendingQueue{
		tasks: make([]*ScheduledTask, 0, defaultQueueCap),
	}
}

func (q *pendingQueue) Push(t *ScheduledTask) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
}

// PopUpTo removes and returns at most max tasks from the head of the
// queue, preserving order.
func (q *pendingQueue) PopUpTo(max int) []*ScheduledTask {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.tasks)
	if n == 0 || max <= 0 {
		return nil
	}

	if n <= max {
		batch := q.tasks
		q.tasks = make([]*ScheduledTask, 0, defaultQueueCap)
		return batch
	}

	batch := make([]*ScheduledTask, max)
	copy(batch, q.tasks[:max])

	// Zero out the drained slots to release references
	for i := 0; i < max; i++ {
		q.tasks[i] = nil
	}

	q.tasks = q.tasks[max:]
	q.maybeCompactLocked()

	return batch
}

// Requeue prepends tasks to the head of the queue, preserving their
// relative order. Used for drained tasks that could not launch this
// tick; they keep their position ahead of later-queued work.
func (q *pendingQueue) Requeue(tasks []*ScheduledTask) {
	if len(tasks) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	merged := make([]*ScheduledTask, 0, len(tasks)+len(q.tasks))
	merged = append(merged, tasks...)
	merged = append(merged, q.tasks...)
	q.tasks = merged
}

func (q *pendingQueue) maybeCompactLocked() {
	n := len(q.tasks)
	c := cap(q.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.tasks = make([]*ScheduledTask, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]*ScheduledTask, n, newCap)
	copy(newSlice, q.tasks)
	q.tasks = newSlice
}

func (q *pendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *pendingQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Clear removes all tasks and releases references.
func (q *pendingQueue) Clear() []*ScheduledTask {
	q.mu.Lock()
	defer q.mu.Unlock()
	cleared := q.tasks
	q.tasks = make([]*ScheduledTask, 0, defaultQueueCap)
	return cleared
}
