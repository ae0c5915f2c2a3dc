// Package main demonstrates dispatch strategies
// Use Priority when urgency should decide launch order, ShortestJob to
// minimize average wait, Random for load diffusion
package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	tasklist "github.com/markhazleton/TaskListProcessor-sub003"
)

func main() {
	fmt.Println("=== Strategy Examples ===")

	// Example 1: Priority dispatch on a single slot
	fmt.Println("--- Example 1: Priority (max 1 slot) ---")
	cfg := tasklist.DefaultSchedulerConfig(1)
	cfg.Strategy = tasklist.StrategyPriority
	scheduler := tasklist.NewScheduler(cfg)

	report := func(name string) tasklist.TaskFactory {
		return func(ctx context.Context) (any, error) {
			fmt.Println("running:", name)
			return name, nil
		}
	}

	// Launch order is descending by priority: urgent, normal, background
	scheduler.Schedule(tasklist.NewTaskDefinition("background", report("background"), tasklist.WithPriority(1)))
	scheduler.Schedule(tasklist.NewTaskDefinition("urgent", report("urgent"), tasklist.WithPriority(5)))
	scheduler.Schedule(tasklist.NewTaskDefinition("normal", report("normal"), tasklist.WithPriority(3)))

	scheduler.Start()
	_ = scheduler.ShutdownGraceful(5 * time.Second)

	// Example 2: ShortestJob with declared estimates
	fmt.Println("--- Example 2: ShortestJob ---")
	cfg2 := tasklist.DefaultSchedulerConfig(1)
	cfg2.Strategy = tasklist.StrategyShortestJob
	scheduler2 := tasklist.NewScheduler(cfg2)

	scheduler2.Schedule(tasklist.NewTaskDefinition("slow", report("slow"),
		tasklist.WithEstimatedDuration(500*time.Millisecond)))
	scheduler2.Schedule(tasklist.NewTaskDefinition("fast", report("fast"),
		tasklist.WithEstimatedDuration(50*time.Millisecond)))

	scheduler2.Start()
	_ = scheduler2.ShutdownGraceful(5 * time.Second)

	// Example 3: seeded Random for reproducible shuffles in tests
	fmt.Println("--- Example 3: Random (seeded) ---")
	cfg3 := tasklist.DefaultSchedulerConfig(2)
	cfg3.Strategy = tasklist.StrategyRandom
	cfg3.Rand = rand.New(rand.NewSource(42))
	scheduler3 := tasklist.NewScheduler(cfg3)

	for i := 1; i <= 4; i++ {
		name := fmt.Sprintf("job-%d", i)
		scheduler3.Schedule(tasklist.NewTaskDefinition(name, report(name)))
	}

	scheduler3.Start()
	_ = scheduler3.ShutdownGraceful(5 * time.Second)
}
