package tasklist

import "github.com/markhazleton/TaskListProcessor-sub003/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the tasklist package for most use cases.

// TaskDefinition is the immutable description of one unit of work
type TaskDefinition = core.TaskDefinition

// TaskFactory produces the work for one task
type TaskFactory = core.TaskFactory

// ScheduledTask is the mutable runtime wrapper around one definition
type ScheduledTask = core.ScheduledTask

// TaskStatus describes the lifecycle state of a ScheduledTask
type TaskStatus = core.TaskStatus

// TaskResult is the caller-facing outcome of one task
type TaskResult = core.TaskResult

// Scheduler owns the pending queue, concurrency limiter and dispatch tick
type Scheduler = core.Scheduler

// SchedulerConfig holds scheduler configuration options
type SchedulerConfig = core.SchedulerConfig

// SchedulerStats is a point-in-time snapshot of scheduler state
type SchedulerStats = core.SchedulerStats

// SchedulingStrategy is the ordering policy applied to each tick's batch
type SchedulingStrategy = core.SchedulingStrategy

// ExecutionSlot is the bookkeeping record for one in-flight task
type ExecutionSlot = core.ExecutionSlot

// TelemetryCollector records one line and one result per finished task
type TelemetryCollector = core.TelemetryCollector

// BatchRunner executes independent operations concurrently
type BatchRunner = core.BatchRunner

// NamedOperation is one unit of work for the simple aggregation path
type NamedOperation = core.NamedOperation

// Status constants
const (
	StatusScheduled = core.StatusScheduled
	StatusRunning   = core.StatusRunning
	StatusCompleted = core.StatusCompleted
	StatusFailed    = core.StatusFailed
)

// Strategy constants
const (
	StrategyFIFO        = core.StrategyFIFO
	StrategyLIFO        = core.StrategyLIFO
	StrategyPriority    = core.StrategyPriority
	StrategyShortestJob = core.StrategyShortestJob
	StrategyRandom      = core.StrategyRandom
)

// Convenience functions re-exported from core
var (
	NewTaskDefinition      = core.NewTaskDefinition
	WithPriority           = core.WithPriority
	WithDependencies       = core.WithDependencies
	WithEstimatedDuration  = core.WithEstimatedDuration
	WithPriorityOverride   = core.WithPriorityOverride
	NewScheduler           = core.NewScheduler
	DefaultSchedulerConfig = core.DefaultSchedulerConfig
	Resolve                = core.Resolve
	Validate               = core.Validate
	NewTelemetryCollector  = core.NewTelemetryCollector
	NewBatchRunner         = core.NewBatchRunner
	ParseStrategy          = core.ParseStrategy
)

// Sentinel errors re-exported from core
var (
	ErrCircularDependency = core.ErrCircularDependency
	ErrMissingDependency  = core.ErrMissingDependency
	ErrDuplicateTask      = core.ErrDuplicateTask
	ErrEmptyTaskName      = core.ErrEmptyTaskName
	ErrDependencyFailed   = core.ErrDependencyFailed
	ErrSchedulerClosed    = core.ErrSchedulerClosed
)
