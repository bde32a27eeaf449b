package worker

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed  = "Worker job failed"
	LogMsgWorkerJobSkipped = "Previous run still in progress, skipping"
	LogMsgWorkerQueueFull  = "Job queue full, dropping job"
)

// Job names, also used as lock keys for overlap protection
const (
	JobNameBackfill   = "order_backfill"
	JobNameDerive     = "plan_derivation"
	JobNameReschedule = "task_reschedule"
	JobNameSweep      = "reminder_sweep"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
