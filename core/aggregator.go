package core

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// NamedOperation is one independent unit of asynchronous work for the
// simple aggregation path, where dependency ordering and priority are
// unnecessary.
type NamedOperation struct {
	Name string
	Run  TaskFactory
}

// BatchRunner executes collections of independent operations
// concurrently and records every outcome in a TelemetryCollector.
// Failures are captured, never raised: a failing operation produces a
// failure entry and an empty result, and its siblings keep running.
type BatchRunner struct {
	collector *TelemetryCollector
	logger    Logger
}

// NewBatchRunner creates a BatchRunner recording into collector.
// A nil logger falls back to the default logger.
func NewBatchRunner(collector *TelemetryCollector, logger Logger) *BatchRunner {
	if collector == nil {
		collector = NewTelemetryCollector()
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &BatchRunner{collector: collector, logger: logger}
}

// Collector returns the telemetry collector receiving outcomes.
func (b *BatchRunner) Collector() *TelemetryCollector {
	return b.collector
}

// Execute runs one operation synchronously, timing it and recording
// exactly one telemetry entry and one result. It never returns an
// error to the caller; outcomes live in the collector. Panics inside
// the operation are recovered and recorded as failures.
func (b *BatchRunner) Execute(ctx context.Context, op NamedOperation) {
	started := time.Now()

	data, err := runRecovered(ctx, op.Run)
	elapsed := time.Since(started)

	if err != nil {
		b.collector.RecordFailure(op.Name, elapsed, err)
		b.logger.Warn("operation failed",
			F("name", op.Name),
			F("elapsed_ms", elapsed.Milliseconds()),
			F("error", err))
		return
	}

	b.collector.RecordSuccess(op.Name, elapsed, data)
	b.logger.Debug("operation completed",
		F("name", op.Name),
		F("elapsed_ms", elapsed.Milliseconds()))
}

// WaitAll runs all operations concurrently and blocks until every one
// has finished. It never aborts early: operations that succeed before a
// sibling fails keep their results. When one or more operations fail, a
// single aggregate error is logged; individual outcomes still reflect
// each operation on its own.
func (b *BatchRunner) WaitAll(ctx context.Context, ops ...NamedOperation) {
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, op := range ops {
		wg.Add(1)
		go func(op NamedOperation) {
			defer wg.Done()

			started := time.Now()
			data, err := runRecovered(ctx, op.Run)
			elapsed := time.Since(started)

			if err != nil {
				failed.Add(1)
				b.collector.RecordFailure(op.Name, elapsed, err)
				return
			}
			b.collector.RecordSuccess(op.Name, elapsed, data)
		}(op)
	}

	wg.Wait()

	if n := failed.Load(); n > 0 {
		b.logger.Error("batch finished with failures",
			F("failed", n),
			F("total", len(ops)))
	}
}

// runRecovered invokes a factory with panic recovery, turning a panic
// into an ordinary error.
func runRecovered(ctx context.Context, factory TaskFactory) (data any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			data = nil
			err = fmt.Errorf("panic: %v", rec)
		}
	}()

	if factory == nil {
		return nil, fmt.Errorf("nil factory")
	}
	return factory(ctx)
}
