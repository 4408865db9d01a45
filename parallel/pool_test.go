package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllJobs(t *testing.T) {
	pool := New(8)

	var count atomic.Int64
	for range 100 {
		pool.Submit(func() {
			count.Add(1)
		})
	}
	pool.Wait()

	if got := count.Load(); got != 100 {
		t.Fatalf("ran %d jobs, want 100", got)
	}
}

func TestPoolWaitIsIdempotent(t *testing.T) {
	pool := New(2)
	pool.Submit(func() {})
	pool.Wait()
	pool.Wait()
}

func TestPoolDefaultsWorkerCount(t *testing.T) {
	pool := New(0)

	var count atomic.Int64
	for range 10 {
		pool.Submit(func() {
			count.Add(1)
		})
	}
	pool.Wait()

	if got := count.Load(); got != 10 {
		t.Fatalf("ran %d jobs, want 10", got)
	}
}
