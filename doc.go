// Package tasklist provides a bounded-concurrency task scheduler with
// pluggable dispatch strategies, a dependency-ordering utility and a
// lightweight telemetry layer.
//
// Callers describe work as named, cancellable task definitions; the
// scheduler enqueues them, and a periodic dispatch tick drains launch
// candidates, orders them by the configured strategy (FIFO, LIFO,
// priority, shortest-job or random) and launches as many as free
// concurrency slots allow. Task failures are terminal, local outcomes:
// they never crash the dispatcher and never cancel sibling tasks.
//
// # Quick Start
//
// Create a scheduler, submit definitions and start dispatch:
//
//	scheduler := tasklist.NewScheduler(tasklist.DefaultSchedulerConfig(4))
//	defer scheduler.Shutdown()
//
//	task := scheduler.Schedule(tasklist.NewTaskDefinition("fetch", func(ctx context.Context) (any, error) {
//		return fetch(ctx)
//	}))
//	scheduler.Start()
//
// Each scheduled task yields exactly one terminal status, one structured
// result and one telemetry line, regardless of outcome:
//
//	for _, line := range scheduler.Telemetry().Entries() {
//		fmt.Println(line)
//	}
//
// # Dependencies
//
// Declared dependencies gate launches: a task launches only once every
// dependency has completed. Resolve linearizes a definition set
// dependencies-first and detects cycles:
//
//	ordered, err := tasklist.Resolve(definitions)
//	if err != nil {
//		// circular or missing dependency
//	}
//	scheduler.ScheduleAll(ordered)
//
// # Simple aggregation
//
// When ordering and priority are unnecessary, BatchRunner runs a batch
// of independent named operations concurrently and records every
// outcome without ever aborting early.
package tasklist
