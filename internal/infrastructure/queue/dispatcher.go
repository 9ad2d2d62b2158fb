package queue

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/askdesk/askdesk/internal/api/metrics"
)

const defaultWorkers = 4

// Dispatcher fans indexed tasks out to a fixed number of workers. Each Run
// call gets its own workers, so concurrent requests never share a queue.
type Dispatcher struct {
	workers int
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers workers per Run.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &Dispatcher{workers: numWorkers, log: log}
}

// Workers reports the concurrency bound.
func (d *Dispatcher) Workers() int { return d.workers }

// Run calls fn once for every index in [0, n) on at most d.workers goroutines
// and blocks until every started call has returned. Once ctx is done no new
// index is handed out.
func (d *Dispatcher) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}

	tasks := make(chan int, n)
	for i := 0; i < n; i++ {
		tasks <- i
	}
	close(tasks)
	metrics.ExplainQueueDepth.Add(float64(n))

	workers := min(d.workers, n)
	var wg sync.WaitGroup
	wg.Add(workers)
	for id := 0; id < workers; id++ {
		go d.runWorker(ctx, id, tasks, fn, &wg)
	}
	wg.Wait()

	// Whatever is left was skipped because ctx ended.
	skipped := len(tasks)
	metrics.ExplainQueueDepth.Sub(float64(skipped))
	if skipped > 0 {
		d.log.Warn().Int("skipped", skipped).Err(ctx.Err()).Msg("dispatcher stopped before draining tasks")
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, tasks <-chan int, fn func(context.Context, int), wg *sync.WaitGroup) {
	defer wg.Done()
	for {
		if ctx.Err() != nil {
			return
		}
		i, ok := <-tasks
		if !ok {
			return
		}
		metrics.ExplainQueueDepth.Dec()
		d.runTask(ctx, id, i, fn)
	}
}

func (d *Dispatcher) runTask(ctx context.Context, id, i int, fn func(context.Context, int)) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Int("worker_id", id).Int("task", i).Msg("task panicked")
		}
	}()
	fn(ctx, i)
}
