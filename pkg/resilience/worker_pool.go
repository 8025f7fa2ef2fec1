package resilience

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrWorkerPoolClosed = errors.New("worker pool is closed")

// WorkerPool runs jobs on a fixed set of goroutines. Delayed jobs still run
// when the pool is stopped before their delay elapses; Stop waits for them.
type WorkerPool struct {
	jobs   chan func()
	closed bool
	mu     sync.RWMutex
	once   sync.Once
	wg     sync.WaitGroup
	stop   chan struct{}
}

func NewWorkerPool(workers, queueSize int) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}

	p := &WorkerPool{
		jobs: make(chan func(), queueSize),
		stop: make(chan struct{}),
	}

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}

	return p
}

func (p *WorkerPool) Submit(ctx context.Context, job func()) error {
	if job == nil {
		return nil
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrWorkerPoolClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stop:
		return ErrWorkerPoolClosed
	case p.jobs <- job:
		return nil
	}
}

// SubmitAfter queues a job that waits delay before running. Stop cuts the
// wait short.
func (p *WorkerPool) SubmitAfter(ctx context.Context, delay time.Duration, job func()) error {
	if job == nil {
		return nil
	}
	return p.Submit(ctx, func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-p.stop:
		}
		job()
	})
}

// Stop rejects new jobs and waits until every queued job has run.
func (p *WorkerPool) Stop() {
	p.once.Do(func() {
		// Wake delayed jobs first so blocked submitters can drain.
		close(p.stop)
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})
	p.wg.Wait()
}
