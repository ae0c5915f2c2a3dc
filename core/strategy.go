package core

import (
	"math/rand"
	"sort"
)

// SchedulingStrategy is a pure ordering policy applied to the batch of
// launch candidates drained on one dispatch tick.
type SchedulingStrategy int

const (
	// StrategyFIFO preserves drain order. Default.
	StrategyFIFO SchedulingStrategy = iota

	// StrategyLIFO reverses drain order.
	StrategyLIFO

	// StrategyPriority orders descending by priority; ties keep drain order.
	StrategyPriority

	// StrategyShortestJob orders ascending by estimated duration; ties
	// keep drain order.
	StrategyShortestJob

	// StrategyRandom shuffles independently on every tick. Meant for
	// load diffusion, not for correctness-sensitive ordering.
	StrategyRandom
)

func (s SchedulingStrategy) String() string {
	switch s {
	case StrategyFIFO:
		return "fifo"
	case StrategyLIFO:
		return "lifo"
	case StrategyPriority:
		return "priority"
	case StrategyShortestJob:
		return "shortest_job"
	case StrategyRandom:
		return "random"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a strategy name to its value. Unknown names fall
// back to FIFO.
func ParseStrategy(name string) (SchedulingStrategy, bool) {
	switch name {
	case "fifo", "":
		return StrategyFIFO, true
	case "lifo":
		return StrategyLIFO, true
	case "priority":
		return StrategyPriority, true
	case "shortest_job", "sjf":
		return StrategyShortestJob, true
	case "random":
		return StrategyRandom, true
	default:
		return StrategyFIFO, false
	}
}

// orderBatch reorders the drained batch in place according to the
// strategy. rng is only consulted by StrategyRandom.
func orderBatch(strategy SchedulingStrategy, batch []*ScheduledTask, rng *rand.Rand) {
	if len(batch) < 2 {
		return
	}

	switch strategy {
	case StrategyLIFO:
		for i, j := 0, len(batch)-1; i < j; i, j = i+1, j-1 {
			batch[i], batch[j] = batch[j], batch[i]
		}
	case StrategyPriority:
		// Stable sort keeps drain order among equal priorities
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].Priority() > batch[j].Priority()
		})
	case StrategyShortestJob:
		sort.SliceStable(batch, func(i, j int) bool {
			return batch[i].EstimatedDuration() < batch[j].EstimatedDuration()
		})
	case StrategyRandom:
		rng.Shuffle(len(batch), func(i, j int) {
			batch[i], batch[j] = batch[j], batch[i]
		})
	}
}
