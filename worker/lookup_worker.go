package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/homeshelf/homeshelf/log"
	"github.com/homeshelf/homeshelf/lookup"
	"github.com/homeshelf/homeshelf/model"
)

// LookupPool prefetches similar-books suggestions in the background.
// Entering a detail view pushes one job; whichever worker picks it up calls
// the search service and publishes into the cache only while the job's
// generation is still current.
type LookupPool struct {
	queue chan model.LookupJob
}

// NewLookupPool creates a pool of background lookup workers.
func NewLookupPool(client *lookup.Client, guard *lookup.Guard, cache *lookup.Cache, timeout time.Duration, size int) *LookupPool {
	pool := &LookupPool{
		queue: make(chan model.LookupJob),
	}

	for i := 0; i < size; i++ {
		worker := &LookupWorker{
			id:      i,
			client:  client,
			guard:   guard,
			cache:   cache,
			timeout: timeout,
		}
		go worker.Run(pool.queue)
	}

	return pool
}

// Implement WorkPool interface
func (p *LookupPool) Push(job model.LookupJob) {
	p.queue <- job
}

type LookupWorker struct {
	id      int
	client  *lookup.Client
	guard   *lookup.Guard
	cache   *lookup.Cache
	timeout time.Duration
}

func (w *LookupWorker) Run(c <-chan model.LookupJob) {
	log.Debug("LookupWorker is running", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.String("book_id", job.Book.ID),
			zap.Uint64("generation", job.Generation))

		// The user may already have moved on before we even start
		if !w.guard.IsCurrent(job.Generation) {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		candidates, err := w.client.Search(ctx, job.Book.Title)
		cancel()

		result := lookup.Result{
			Generation: job.Generation,
			BookID:     job.Book.ID,
			Err:        err,
		}
		if err == nil {
			result.Books = lookup.Similar(job.Book, candidates)
		} else {
			log.Warn("Similar books lookup failed",
				zap.String("book_id", job.Book.ID),
				zap.Error(err))
		}

		if !w.cache.Publish(w.guard, result) {
			log.Debug("Discarding stale lookup result",
				zap.String("book_id", job.Book.ID),
				zap.Uint64("generation", job.Generation))
		}
	}
}
