package worker

import "context"

// funcJob adapts a plain function to the Job interface
type funcJob struct {
	name string
	fn   func(ctx context.Context) error
}

// NewJob wraps a function as a named Job
func NewJob(name string, fn func(ctx context.Context) error) Job {
	return &funcJob{name: name, fn: fn}
}

func (j *funcJob) Name() string { return j.name }

func (j *funcJob) Process(ctx context.Context) error { return j.fn(ctx) }
