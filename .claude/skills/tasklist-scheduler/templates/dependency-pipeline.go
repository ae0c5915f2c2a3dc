// Package main demonstrates dependency-ordered pipelines
// Resolve linearizes the graph; the scheduler gates each launch on
// dependency completion, so dependents never start early
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	tasklist "github.com/markhazleton/TaskListProcessor-sub003"
)

func main() {
	step := func(name string) tasklist.TaskFactory {
		return func(ctx context.Context) (any, error) {
			fmt.Println("finished:", name)
			return name, nil
		}
	}

	// Step 1: Declare the graph; order of declaration does not matter
	definitions := []tasklist.TaskDefinition{
		tasklist.NewTaskDefinition("report", step("report"), tasklist.WithDependencies("transform", "load")),
		tasklist.NewTaskDefinition("transform", step("transform"), tasklist.WithDependencies("extract")),
		tasklist.NewTaskDefinition("load", step("load"), tasklist.WithDependencies("extract")),
		tasklist.NewTaskDefinition("extract", step("extract")),
	}

	// Step 2: Linearize dependencies-first, detecting cycles
	ordered, err := tasklist.Resolve(definitions)
	if errors.Is(err, tasklist.ErrCircularDependency) {
		fmt.Println("cycle:", err)
		return
	}
	if err != nil {
		fmt.Println("resolve failed:", err)
		return
	}

	// Step 3: Schedule the whole pipeline and run it
	scheduler := tasklist.NewScheduler(tasklist.DefaultSchedulerConfig(4))
	defer scheduler.Shutdown()

	tasks := scheduler.ScheduleAll(ordered)
	scheduler.Start()
	_ = scheduler.ShutdownGraceful(5 * time.Second)

	// Step 4: Inspect terminal states
	// A failed dependency terminally fails its dependents with
	// ErrDependencyFailed; nothing waits forever
	for _, task := range tasks {
		fmt.Printf("%s: %s\n", task.Name(), task.Status())
	}
}
