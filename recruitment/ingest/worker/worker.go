package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/logx"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest/ingestsrv"
)

// BatchWorker drains the ingestion queue with a pool of goroutines.
type BatchWorker struct {
	service *ingestsrv.Service
	queue   ingest.BatchQueue
	workers int
}

func NewBatchWorker(service *ingestsrv.Service, queue ingest.BatchQueue, workers int) *BatchWorker {
	return &BatchWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *BatchWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d ingestion workers", w.workers)

	// Start delayed batch mover
	go w.moveDelayedBatches(ctx)

	// Start worker pool
	for i := 0; i < w.workers; i++ {
		go w.processBatches(ctx, i)
	}
}

func (w *BatchWorker) processBatches(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			// Dequeue with 5 second timeout
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Queue timeout, nothing waiting
			if len(data) == 0 {
				continue
			}

			var batch ingest.QueuedBatch
			if err := json.Unmarshal(data, &batch); err != nil {
				logx.Errorf("Worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			logx.Infof("Worker %d processing batch: %s", workerID, batch.BatchID)
			if err := w.service.ProcessQueuedBatch(ctx, &batch); err != nil {
				logx.Errorf("Worker %d batch failed: %v", workerID, err)
			}
		}
	}
}

func (w *BatchWorker) moveDelayedBatches(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed batches: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed batches to ready queue", count)
			}
		}
	}
}
