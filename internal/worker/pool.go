package worker

import (
	"context"
	"sync"

	"github.com/tillerhq/farmops/internal/concurrency"
	"github.com/tillerhq/farmops/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Name() string
	Process(ctx context.Context) error
}

// Pool represents a worker pool
type Pool struct {
	workers  int
	jobQueue chan Job
	locks    *concurrency.LockManager
	wg       sync.WaitGroup
	quit     chan struct{}
}

// NewPool creates a new worker pool
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		workers:  workers,
		jobQueue: make(chan Job, queueSize),
		locks:    concurrency.NewLockManager(),
		quit:     make(chan struct{}),
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker is the worker loop
func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

// run executes one job. A job already holding its lock means the previous
// run has not finished, so the duplicate is dropped rather than queued.
func (p *Pool) run(job Job) {
	ctx := logger.WithRunID(context.Background(), logger.GenerateRunID())
	log := logger.FromContext(ctx)

	if !p.locks.TryAcquire(job.Name()) {
		log.Warn(LogMsgWorkerJobSkipped, "job", job.Name())
		return
	}
	defer p.locks.Release(job.Name())

	if err := job.Process(ctx); err != nil {
		log.Error(LogMsgWorkerJobFailed, "job", job.Name(), "error", err)
	}
}

// Enqueue adds a job to the queue, dropping it when the queue is full so a
// slow job cannot back up the scheduler.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.Warn(LogMsgWorkerQueueFull, "job", job.Name())
		return false
	}
}

// Stop stops the workers and waits for them to finish
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
