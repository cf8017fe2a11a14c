package ingest

import (
	"context"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
)

// BatchQueue hands queued batches to workers.
type BatchQueue interface {
	// Enqueue adds a batch to the queue.
	Enqueue(ctx context.Context, batch *QueuedBatch) error

	// Dequeue pops a batch, blocking up to timeout. Returns nil bytes when
	// no batch is available.
	Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error)

	// EnqueueDelayed schedules a batch for later processing (for retries).
	EnqueueDelayed(ctx context.Context, batch *QueuedBatch, delay time.Duration) error

	// MoveDelayedToReady moves due delayed batches onto the main queue.
	MoveDelayedToReady(ctx context.Context) (int, error)

	// GetQueueSize returns the number of batches waiting.
	GetQueueSize(ctx context.Context) (int64, error)
}

// BatchJobRepository persists batch job lifecycle state.
type BatchJobRepository interface {
	Create(ctx context.Context, batch *BatchJob) error
	GetByID(ctx context.Context, id kernel.BatchJobID) (*BatchJob, error)
	MarkProcessing(ctx context.Context, id kernel.BatchJobID) error
	Complete(ctx context.Context, id kernel.BatchJobID, results []ProcessingResult, stats *Statistics) error
	Fail(ctx context.Context, id kernel.BatchJobID, reason string) error
}
