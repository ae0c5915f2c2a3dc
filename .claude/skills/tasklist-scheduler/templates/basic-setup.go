// Package main demonstrates basic scheduler setup and telemetry readout
package main

import (
	"context"
	"fmt"
	"time"

	tasklist "github.com/markhazleton/TaskListProcessor-sub003"
)

func main() {
	// Step 1: Build a config with a concurrency cap
	// MaxConcurrency bounds how many factories run at once
	cfg := tasklist.DefaultSchedulerConfig(4)

	// Step 2: Create the scheduler
	scheduler := tasklist.NewScheduler(cfg)
	defer scheduler.Shutdown()

	// Step 3: Schedule work
	fmt.Println("Scheduling tasks...")

	// Basic task
	scheduler.Schedule(tasklist.NewTaskDefinition("fetch", func(ctx context.Context) (any, error) {
		return "payload", nil
	}))

	// Task with a runtime estimate (used by the ShortestJob strategy
	// and for slot completion estimates)
	scheduler.Schedule(tasklist.NewTaskDefinition("crunch", func(ctx context.Context) (any, error) {
		time.Sleep(50 * time.Millisecond)
		return 42, nil
	}, tasklist.WithEstimatedDuration(50*time.Millisecond)))

	// Failing task: captured, never propagated
	scheduler.Schedule(tasklist.NewTaskDefinition("flaky", func(ctx context.Context) (any, error) {
		return nil, fmt.Errorf("upstream unavailable")
	}))

	// Step 4: Start dispatch and wait for the queue to drain
	scheduler.Start()
	if err := scheduler.ShutdownGraceful(5 * time.Second); err != nil {
		fmt.Println("shutdown:", err)
	}

	// Step 5: Read telemetry — one line and one result per task
	for _, line := range scheduler.Telemetry().Entries() {
		fmt.Println(line)
	}
	for _, result := range scheduler.Telemetry().Results() {
		fmt.Printf("%s successful=%v\n", result.Name, result.IsSuccessful())
	}
}
