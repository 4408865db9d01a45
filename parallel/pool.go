// Package parallel runs independent jobs on a fixed set of workers.
package parallel

import (
	"runtime"
	"sync"
)

// Pool feeds submitted jobs to its workers. Submit blocks once every
// worker is busy and the backlog is full. After Wait the pool cannot be
// reused.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
	stop sync.Once
}

// New starts a pool with the given number of workers; anything below 1
// means one worker per CPU.
func New(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{jobs: make(chan func(), workers)}
	for range workers {
		p.wg.Go(func() {
			for job := range p.jobs {
				job()
			}
		})
	}
	return p
}

// Submit queues one job.
func (p *Pool) Submit(job func()) {
	p.jobs <- job
}

// Wait closes the intake and blocks until all submitted jobs finish.
func (p *Pool) Wait() {
	p.stop.Do(func() { close(p.jobs) })
	p.wg.Wait()
}
