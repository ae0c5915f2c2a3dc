package core

import (
	"sync"
	"time"
)

// ExecutionSlot is the bookkeeping record for one in-flight task. It
// exists only while the task occupies a concurrency slot and is removed
// unconditionally when the task finishes, success or failure.
type ExecutionSlot struct {
	TaskID              string
	TaskName            string
	StartedAt           time.Time
	EstimatedCompletion time.Time
}

// slotTable tracks tasks currently in flight, keyed by task name.
// Mutated by the dispatch path and by finishing task bodies, so every
// access takes the lock.
type slotTable struct {
	mu    sync.Mutex
	slots map[string]ExecutionSlot
}

func newSlotTable() *slotTable {
	return &slotTable{slots: make(map[string]ExecutionSlot)}
}

func (t *slotTable) Add(task *ScheduledTask) {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[task.Name()] = ExecutionSlot{
		TaskID:              task.ID(),
		TaskName:            task.Name(),
		StartedAt:           now,
		EstimatedCompletion: now.Add(task.EstimatedDuration()),
	}
}

func (t *slotTable) Remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.slots, name)
}

func (t *slotTable) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}

// Snapshot returns a copy of the current in-flight slots.
func (t *slotTable) Snapshot() []ExecutionSlot {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]ExecutionSlot, 0, len(t.slots))
	for _, slot := range t.slots {
		out = append(out, slot)
	}
	return out
}
