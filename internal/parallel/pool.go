// Package parallel runs independent jobs on a fixed set of goroutines.
//
// Jobs are distributed round-robin over per-worker queues. An idle worker
// steals from the other queues before blocking, which evens out jobs of
// very different cost (orbit chunks near the set boundary are far slower
// than chunks that escape at once).
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for fork-join workloads.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one job queue per worker.
	queues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to exit.
	wg sync.WaitGroup

	// running reports whether the pool accepts jobs.
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case job := <-own:
			job()
			continue
		default:
		}

		if job := p.steal(id); job != nil {
			job()
			continue
		}

		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
		}
	}
}

// drain runs whatever is left in a queue.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case job := <-queue:
			job()
		default:
			return
		}
	}
}

// steal takes one job from another worker's queue, or returns nil.
func (p *WorkerPool) steal(id int) func() {
	for i := 1; i < p.workers; i++ {
		select {
		case job := <-p.queues[(id+i)%p.workers]:
			return job
		default:
		}
	}
	return nil
}

// ExecuteAll runs every job and waits for all of them to finish.
// Nil jobs are skipped. If the pool is closed, this is a no-op.
func (p *WorkerPool) ExecuteAll(jobs []func()) {
	if len(jobs) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	for i, fn := range jobs {
		if fn == nil {
			continue
		}
		wg.Add(1)
		job := func() {
			defer wg.Done()
			fn()
		}

		select {
		case p.queues[i%p.workers] <- job:
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()
}

// ForEach calls fn(i) for every i in [0, n) on the pool and waits.
func (p *WorkerPool) ForEach(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	jobs := make([]func(), n)
	for i := range jobs {
		jobs[i] = func() { fn(i) }
	}
	p.ExecuteAll(jobs)
}

// Close stops accepting jobs, lets queued jobs finish and stops the
// workers. Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
