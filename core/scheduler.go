package core

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultTickInterval is the dispatch tick period when the config
	// leaves it unset.
	DefaultTickInterval = 100 * time.Millisecond

	// maxAllowedConcurrency is the maximum allowed value for the
	// MaxConcurrency setting. Values higher than this could lead to
	// excessive goroutine creation and memory exhaustion.
	maxAllowedConcurrency = 10000
)

// SchedulerConfig holds configuration options for Scheduler.
// Zero values fall back to sensible defaults.
type SchedulerConfig struct {
	// MaxConcurrency caps simultaneously running tasks. Required, >= 1.
	MaxConcurrency int

	// Strategy orders each tick's drained batch. Defaults to FIFO.
	Strategy SchedulingStrategy

	// DrainBatchSize bounds how many tasks one tick drains for
	// consideration. Defaults to 8x MaxConcurrency. Bounding the drain
	// prevents one tick from pinning an arbitrarily large queue while
	// still giving the strategy a batch wider than the slot budget.
	DrainBatchSize int

	// TickInterval is the dispatch tick period. Defaults to 100ms.
	TickInterval time.Duration

	// Logger receives scheduler lifecycle and dispatch events.
	// Defaults to DefaultLogger.
	Logger Logger

	// Metrics receives execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// Rand seeds the Random strategy. Defaults to a time-seeded source;
	// inject a fixed seed for reproducible tests.
	Rand *rand.Rand
}

// DefaultSchedulerConfig returns a config with default settings and the
// given concurrency cap.
func DefaultSchedulerConfig(maxConcurrency int) *SchedulerConfig {
	return &SchedulerConfig{
		MaxConcurrency: maxConcurrency,
		Strategy:       StrategyFIFO,
		TickInterval:   DefaultTickInterval,
		Logger:         NewDefaultLogger(),
		Metrics:        &NilMetrics{},
	}
}

// SchedulerStats is a point-in-time snapshot, safe to read concurrently
// with dispatch.
type SchedulerStats struct {
	Queued         int
	Running        int
	AvailableSlots int
	Strategy       SchedulingStrategy
}

// ScheduleOption configures one Schedule call.
type ScheduleOption func(*scheduleOptions)

type scheduleOptions struct {
	priority    int
	hasPriority bool
}

// WithPriorityOverride replaces the definition's priority for this
// scheduling only.
func WithPriorityOverride(priority int) ScheduleOption {
	return func(o *scheduleOptions) {
		o.priority = priority
		o.hasPriority = true
	}
}

// Scheduler owns a pending queue, a counting concurrency limiter and a
// periodic dispatch tick. Each tick drains a bounded batch of launch
// candidates, orders it by the configured strategy and launches as many
// tasks as free slots allow; the surplus is requeued at the head of the
// queue so it keeps its position ahead of later-queued work.
//
// A task becomes a launch candidate only once all of its declared
// dependencies have completed. Failures never escape a task body: a
// failing or panicking factory yields a terminal Failed status, a
// telemetry line and a result, and its siblings keep running.
type Scheduler struct {
	cfg SchedulerConfig
	rng *rand.Rand

	queue     *pendingQueue
	permits   chan struct{}
	slots     *slotTable
	collector *TelemetryCollector

	trackerMu sync.Mutex
	tracker   *readinessTracker

	launched atomic.Int32
	running  atomic.Bool
	closed   atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc

	loopOnce    sync.Once
	loopStarted atomic.Bool
	done        chan struct{}
}

// NewScheduler creates a scheduler from the given config.
// Panics if MaxConcurrency is out of the valid range [1, 10000].
func NewScheduler(cfg *SchedulerConfig) *Scheduler {
	if cfg == nil {
		panic("Scheduler: config must not be nil")
	}
	if cfg.MaxConcurrency < 1 {
		panic("Scheduler: MaxConcurrency must be at least 1")
	}
	if cfg.MaxConcurrency > maxAllowedConcurrency {
		panic(fmt.Sprintf("Scheduler: MaxConcurrency must not exceed %d", maxAllowedConcurrency))
	}

	resolved := *cfg
	if resolved.TickInterval <= 0 {
		resolved.TickInterval = DefaultTickInterval
	}
	if resolved.DrainBatchSize <= 0 {
		resolved.DrainBatchSize = 8 * resolved.MaxConcurrency
	}
	if resolved.Logger == nil {
		resolved.Logger = NewDefaultLogger()
	}
	if resolved.Metrics == nil {
		resolved.Metrics = &NilMetrics{}
	}

	rng := resolved.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		cfg:       resolved,
		rng:       rng,
		queue:     newPendingQueue(),
		permits:   make(chan struct{}, resolved.MaxConcurrency),
		slots:     newSlotTable(),
		collector: NewTelemetryCollector(),
		tracker:   newReadinessTracker(),
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	// Fill the limiter; launching receives one permit per task
	for i := 0; i < resolved.MaxConcurrency; i++ {
		s.permits <- struct{}{}
	}

	return s
}

// MaxConcurrency returns the concurrency cap.
func (s *Scheduler) MaxConcurrency() int {
	return s.cfg.MaxConcurrency
}

// Telemetry returns the collector receiving one entry and one result
// per finished task.
func (s *Scheduler) Telemetry() *TelemetryCollector {
	return s.collector
}

// Slots returns a snapshot of the in-flight execution slots.
func (s *Scheduler) Slots() []ExecutionSlot {
	return s.slots.Snapshot()
}

// Stats returns a point-in-time snapshot of scheduler state.
func (s *Scheduler) Stats() SchedulerStats {
	running := int(s.launched.Load())
	available := s.cfg.MaxConcurrency - running
	if available < 0 {
		available = 0
	}
	return SchedulerStats{
		Queued:         s.queue.Len(),
		Running:        running,
		AvailableSlots: available,
		Strategy:       s.cfg.Strategy,
	}
}

// IsRunning reports whether the dispatch tick is active.
func (s *Scheduler) IsRunning() bool {
	return s.running.Load()
}

// Schedule wraps the definition, stamps the scheduling time, enqueues
// it and returns the wrapper immediately; the task has not started.
// Scheduling problems (duplicate name, unknown or already-failed
// dependency, closed scheduler) surface as an immediately Failed task
// with its telemetry recorded, never as a panic.
func (s *Scheduler) Schedule(definition TaskDefinition, opts ...ScheduleOption) *ScheduledTask {
	var options scheduleOptions
	for _, opt := range opts {
		opt(&options)
	}

	priority := definition.Priority
	if options.hasPriority {
		priority = options.priority
	}

	task := newScheduledTask(definition, priority)

	if s.closed.Load() {
		s.failBeforeLaunch(task, ErrSchedulerClosed)
		return task
	}

	s.trackerMu.Lock()
	err := s.tracker.register(task)
	s.trackerMu.Unlock()
	if err != nil {
		s.failBeforeLaunch(task, err)
		return task
	}

	s.queue.Push(task)

	// Shutdown may have cleared the queue between the closed check
	// above and the push; settle again so the task cannot sit in a
	// closed scheduler's queue forever.
	if s.closed.Load() {
		s.settleQueue()
		return task
	}

	s.cfg.Metrics.RecordQueueDepth(s.queue.Len())
	s.cfg.Logger.Debug("task scheduled",
		F("name", task.Name()),
		F("priority", priority),
		F("estimate", task.EstimatedDuration()))

	return task
}

// ScheduleAll schedules definitions in order and returns their wrappers.
// Combine with Resolve to enqueue a dependency graph dependencies-first.
func (s *Scheduler) ScheduleAll(definitions []TaskDefinition) []*ScheduledTask {
	tasks := make([]*ScheduledTask, 0, len(definitions))
	for _, def := range definitions {
		tasks = append(tasks, s.Schedule(def))
	}
	return tasks
}

// Start begins the periodic dispatch tick. The first call launches the
// dispatch goroutine; later calls just re-enable dispatch after Stop.
func (s *Scheduler) Start() {
	if s.closed.Load() {
		return
	}
	s.running.Store(true)
	s.loopOnce.Do(func() {
		s.loopStarted.Store(true)
		go s.loop()
	})
	s.cfg.Logger.Info("scheduler started",
		F("max_concurrency", s.cfg.MaxConcurrency),
		F("strategy", s.cfg.Strategy),
		F("tick", s.cfg.TickInterval))
}

// Stop suppresses new launches. Tasks already running continue to
// completion; queued tasks stay queued until Start is called again.
func (s *Scheduler) Stop() {
	s.running.Store(false)
	s.cfg.Logger.Info("scheduler stopped")
}

// Shutdown stops dispatch permanently, rejects new work and cancels the
// context handed to in-flight factories. It does not wait for them; use
// ShutdownGraceful to drain first.
func (s *Scheduler) Shutdown() {
	if s.closed.Swap(true) {
		return
	}
	s.running.Store(false)
	s.cancel()
	if s.loopStarted.Load() {
		<-s.done
	}

	// Queued tasks never launch: fail them so every scheduled task
	// still yields exactly one terminal status and one result.
	s.settleQueue()
	s.cfg.Logger.Info("scheduler shut down")
}

// settleQueue fails every non-terminal task still in the queue.
// Idempotent: markFailed transitions at most once, so a task settled
// by a concurrent caller records no duplicate telemetry.
func (s *Scheduler) settleQueue() {
	for _, task := range s.queue.Clear() {
		if task.Status().IsTerminal() {
			continue
		}
		s.failBeforeLaunch(task, ErrSchedulerClosed)
	}
}

// ShutdownGraceful waits for the queue to drain and in-flight tasks to
// complete, then shuts down. Returns an error if the timeout is
// exceeded; remaining work is then failed and cleared.
func (s *Scheduler) ShutdownGraceful(timeout time.Duration) error {
	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.Shutdown()
			return fmt.Errorf("shutdown graceful timeout after %v, forced clearing", timeout)
		case <-ticker.C:
			if s.queue.Len() == 0 && s.launched.Load() == 0 {
				s.Shutdown()
				return nil
			}
		}
	}
}

// loop drives the periodic dispatch tick until Shutdown.
func (s *Scheduler) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.dispatchTick()
		}
	}
}

// dispatchTick drains a bounded batch, orders it by strategy and
// launches what free slots allow. Runs only on the dispatch goroutine.
func (s *Scheduler) dispatchTick() {
	if !s.running.Load() {
		return
	}

	// Bounding the drain keeps one tick from pinning the whole queue
	// and lets ordering stay fresh each cycle.
	batch := s.queue.PopUpTo(s.cfg.DrainBatchSize)
	if len(batch) == 0 {
		return
	}

	candidates := make([]*ScheduledTask, 0, len(batch))
	blocked := make([]*ScheduledTask, 0)

	s.trackerMu.Lock()
	for _, task := range batch {
		// Tasks failed by a dependency cascade are already terminal
		// and recorded; drop them here.
		if task.Status().IsTerminal() {
			continue
		}
		if s.tracker.ready(task.Name()) {
			candidates = append(candidates, task)
		} else {
			blocked = append(blocked, task)
		}
	}
	s.trackerMu.Unlock()

	orderBatch(s.cfg.Strategy, candidates, s.rng)

	free := s.cfg.MaxConcurrency - int(s.launched.Load())
	if free < 0 {
		free = 0
	}

	launch := candidates
	var surplus []*ScheduledTask
	if len(candidates) > free {
		launch = candidates[:free]
		surplus = candidates[free:]
	}

	for _, task := range launch {
		s.launched.Add(1)
		go s.runTask(task)
	}

	// Leftovers return to the head of the queue: dependency-blocked
	// tasks in drain order, then slot-starved candidates in strategy
	// order. Both stay ahead of later-queued work.
	leftover := append(blocked, surplus...)
	s.queue.Requeue(leftover)

	s.cfg.Metrics.RecordQueueDepth(s.queue.Len())
	s.cfg.Metrics.RecordRunning(int(s.launched.Load()))
}

// runTask executes one launched task body on its own goroutine.
func (s *Scheduler) runTask(task *ScheduledTask) {
	// The limiter is the mechanism that bounds parallelism; the tick's
	// slot accounting only keeps it from blocking here for long.
	<-s.permits
	defer func() { s.permits <- struct{}{} }()
	defer s.launched.Add(-1)

	s.slots.Add(task)
	defer s.slots.Remove(task.Name())

	if !task.markRunning() {
		return
	}

	started := task.StartedAt()
	data, err := runRecovered(s.ctx, task.Definition().Factory)
	elapsed := time.Since(started)

	if err != nil {
		task.markFailed(err)
		s.collector.RecordFailure(task.Name(), elapsed, err)
		s.cfg.Metrics.RecordTaskFailed(task.Name())
		s.cfg.Metrics.RecordTaskDuration(task.Name(), StatusFailed, elapsed)
		s.cfg.Logger.Warn("task failed",
			F("name", task.Name()),
			F("elapsed_ms", elapsed.Milliseconds()),
			F("error", err))
		s.failDependents(task.Name())
		return
	}

	task.markCompleted(data)
	s.collector.RecordSuccess(task.Name(), elapsed, data)
	s.cfg.Metrics.RecordTaskDuration(task.Name(), StatusCompleted, elapsed)
	s.cfg.Logger.Debug("task completed",
		F("name", task.Name()),
		F("elapsed_ms", elapsed.Milliseconds()))

	s.trackerMu.Lock()
	s.tracker.onCompleted(task.Name())
	s.trackerMu.Unlock()
}

// failDependents terminally fails every task that transitively depended
// on the named task. Each gets its own telemetry entry and result.
func (s *Scheduler) failDependents(name string) {
	s.trackerMu.Lock()
	cascade := s.tracker.onFailed(name)
	s.trackerMu.Unlock()

	for _, dependent := range cascade {
		err := fmt.Errorf("%w: %q did not complete", ErrDependencyFailed, name)
		if dependent.markFailed(err) {
			s.collector.RecordFailure(dependent.Name(), 0, err)
			s.cfg.Metrics.RecordTaskFailed(dependent.Name())
			s.cfg.Logger.Warn("task failed by dependency",
				F("name", dependent.Name()),
				F("dependency", name))
		}
	}
}

// failBeforeLaunch terminally fails a task that never reached the
// launch path and records its telemetry.
func (s *Scheduler) failBeforeLaunch(task *ScheduledTask, err error) {
	if !task.markFailed(err) {
		return
	}
	s.collector.RecordFailure(task.Name(), 0, err)
	s.cfg.Metrics.RecordTaskFailed(task.Name())
	s.cfg.Logger.Warn("task rejected",
		F("name", task.Name()),
		F("error", err))
}
