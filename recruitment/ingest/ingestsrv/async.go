package ingestsrv

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/fsx"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/logx"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest"
	"github.com/google/uuid"
)

// Service wraps the pipeline with asynchronous batch handling: batches are
// recorded, archived and queued, then drained by workers.
type Service struct {
	pipeline   *Pipeline
	batches    ingest.BatchJobRepository
	queue      ingest.BatchQueue
	fileSystem fsx.FileSystem
}

func NewService(
	pipeline *Pipeline,
	batches ingest.BatchJobRepository,
	queue ingest.BatchQueue,
	fileSystem fsx.FileSystem,
) *Service {
	return &Service{
		pipeline:   pipeline,
		batches:    batches,
		queue:      queue,
		fileSystem: fileSystem,
	}
}

// ProcessSync runs the pipeline inline and returns results with statistics.
func (s *Service) ProcessSync(ctx context.Context, files, filenames []string, jobID *kernel.JobID) ([]ingest.ProcessingResult, *ingest.Statistics, error) {
	results, err := s.pipeline.Process(ctx, files, filenames, jobID)
	if err != nil {
		return nil, nil, err
	}
	return results, CompileStatistics(results), nil
}

// SubmitBatch records a batch job, archives the raw files and queues the
// batch for background processing.
func (s *Service) SubmitBatch(ctx context.Context, files, filenames []string, jobID *kernel.JobID) (*ingest.BatchJob, error) {
	if len(files) != len(filenames) {
		return nil, ingest.ErrLengthMismatch()
	}
	if len(files) == 0 {
		return nil, ingest.ErrEmptyBatch()
	}

	batchID := kernel.BatchJobID(uuid.NewString())
	batch := &ingest.BatchJob{
		ID:         batchID,
		Status:     ingest.BatchStatusPending,
		JobID:      jobID,
		TotalFiles: len(files),
		CreatedAt:  time.Now(),
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		return nil, err
	}

	items := make([]ingest.Item, 0, len(files))
	for i := range files {
		items = append(items, ingest.Item{Filename: filenames[i], Content: files[i]})
		s.archiveFile(ctx, batchID, filenames[i], files[i])
	}

	queued := &ingest.QueuedBatch{BatchID: batchID, Items: items, JobID: jobID}
	if err := s.queue.Enqueue(ctx, queued); err != nil {
		_ = s.batches.Fail(ctx, batchID, "failed to enqueue")
		return nil, ingest.ErrQueueFailed().
			WithDetail("batch_id", batchID.String()).
			WithDetail("error", err.Error())
	}

	logx.Infof("Batch %s queued with %d files", batchID, len(files))
	return batch, nil
}

// archiveFile keeps the raw document for audits and reprocessing. Archive
// failures are logged, never fatal to the submission.
func (s *Service) archiveFile(ctx context.Context, batchID kernel.BatchJobID, filename, content string) {
	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		logx.Warnf("Skipping archive of %s: invalid base64", filename)
		return
	}

	path := s.fileSystem.Join("batches", batchID.String(), filename)
	if err := s.fileSystem.WriteFile(ctx, path, raw); err != nil {
		logx.Errorf("Failed to archive %s for batch %s: %v", filename, batchID, err)
	}
}

// GetBatch fetches a batch job's current state.
func (s *Service) GetBatch(ctx context.Context, id kernel.BatchJobID) (*ingest.BatchJob, error) {
	return s.batches.GetByID(ctx, id)
}

// QueueSize reports how many batches are waiting.
func (s *Service) QueueSize(ctx context.Context) (int64, error) {
	return s.queue.GetQueueSize(ctx)
}

// ProcessQueuedBatch is the worker entry point for one dequeued batch.
func (s *Service) ProcessQueuedBatch(ctx context.Context, queued *ingest.QueuedBatch) error {
	logx.Infof("Processing batch %s (%d files)", queued.BatchID, len(queued.Items))

	if err := s.batches.MarkProcessing(ctx, queued.BatchID); err != nil {
		return err
	}

	files := make([]string, 0, len(queued.Items))
	filenames := make([]string, 0, len(queued.Items))
	for _, item := range queued.Items {
		files = append(files, item.Content)
		filenames = append(filenames, item.Filename)
	}

	results, err := s.pipeline.Process(ctx, files, filenames, queued.JobID)
	if err != nil {
		_ = s.batches.Fail(ctx, queued.BatchID, err.Error())
		return err
	}

	return s.batches.Complete(ctx, queued.BatchID, results, CompileStatistics(results))
}
