package service

import (
	"context"
	"log"
	"sync"
	"time"

	"crm-analytics-service/internal/model"
	"crm-analytics-service/internal/repository"
)

// BatchActivityWorker buffers ingested activity events and flushes them in
// batches, by size or by interval.
type BatchActivityWorker interface {
	Enqueue(entry model.ActivityLog)
	Shutdown()
}

type batchActivityWorker struct {
	repo          repository.ReportRepository
	queue         chan model.ActivityLog
	batchSize     int
	flushInterval time.Duration
	wg            sync.WaitGroup
}

// NewBatchActivityWorker starts the background flush loop.
func NewBatchActivityWorker(repo repository.ReportRepository, bufferSize, batchSize int, interval time.Duration) *batchActivityWorker {
	worker := &batchActivityWorker{
		repo:          repo,
		queue:         make(chan model.ActivityLog, bufferSize),
		batchSize:     batchSize,
		flushInterval: interval,
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

// Enqueue blocks when the buffer is full; ingestion backpressure is
// preferable to dropping events from an append-only log.
func (w *batchActivityWorker) Enqueue(entry model.ActivityLog) {
	w.queue <- entry
}

// Shutdown closes the queue and waits for the remaining entries to flush.
func (w *batchActivityWorker) Shutdown() {
	close(w.queue)
	w.wg.Wait()
}

func (w *batchActivityWorker) startLoop() {
	defer w.wg.Done()

	var batch []model.ActivityLog
	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case entry, ok := <-w.queue:
			if !ok {
				if len(batch) > 0 {
					w.flush(batch)
				}
				return
			}

			batch = append(batch, entry)
			if len(batch) >= w.batchSize {
				w.flush(batch)
				batch = nil
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(batch)
				batch = nil
			}
		}
	}
}

func (w *batchActivityWorker) flush(entries []model.ActivityLog) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := w.repo.CreateActivityBatch(ctx, entries); err != nil {
		log.Printf("[ERROR] activity batch insert failed: %v", err)
		return
	}
	log.Printf("[INFO] %d activity events flushed", len(entries))
}
