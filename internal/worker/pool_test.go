package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := NewJob("test", func(ctx context.Context) error {
		atomic.AddInt32(&executed, 1)
		return nil
	})
	pool.Enqueue(job)
	pool.Enqueue(job)

	// Wait a bit for workers to process
	time.Sleep(TestWorkerProcessWaitTime * time.Millisecond)

	pool.Stop()

	if atomic.LoadInt32(&executed) != TestExpectedJobCount {
		t.Errorf("Expected %d jobs executed, got %d", TestExpectedJobCount, executed)
	}
}

func TestPoolSkipsOverlappingRuns(t *testing.T) {
	var executed int32
	pool := NewPool(2, 10)
	pool.Start()
	defer pool.Stop()

	release := make(chan struct{})
	slow := NewJob("slow", func(ctx context.Context) error {
		atomic.AddInt32(&executed, 1)
		<-release
		return nil
	})

	pool.Enqueue(slow)
	time.Sleep(20 * time.Millisecond)
	// second enqueue of the same job while the first still runs
	pool.Enqueue(slow)
	time.Sleep(20 * time.Millisecond)
	close(release)
	time.Sleep(20 * time.Millisecond)

	if got := atomic.LoadInt32(&executed); got != 1 {
		t.Errorf("Expected overlapping run to be skipped, got %d executions", got)
	}
}
