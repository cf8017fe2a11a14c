package ingestinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest"
	"github.com/jmoiron/sqlx"
)

type PostgresBatchJobRepository struct {
	db *sqlx.DB
}

func NewPostgresBatchJobRepository(db *sqlx.DB) *PostgresBatchJobRepository {
	return &PostgresBatchJobRepository{db: db}
}

type batchJobRow struct {
	ID          string         `db:"id"`
	Status      string         `db:"status"`
	JobID       sql.NullString `db:"job_id"`
	TotalFiles  int            `db:"total_files"`
	Results     []byte         `db:"results"`
	Statistics  []byte         `db:"statistics"`
	Error       sql.NullString `db:"error"`
	CreatedAt   time.Time      `db:"created_at"`
	StartedAt   *time.Time     `db:"started_at"`
	CompletedAt *time.Time     `db:"completed_at"`
}

func (r *batchJobRow) ToDomain() (*ingest.BatchJob, error) {
	batch := &ingest.BatchJob{
		ID:          kernel.BatchJobID(r.ID),
		Status:      ingest.BatchStatus(r.Status),
		TotalFiles:  r.TotalFiles,
		Error:       r.Error.String,
		CreatedAt:   r.CreatedAt,
		StartedAt:   r.StartedAt,
		CompletedAt: r.CompletedAt,
	}
	if r.JobID.Valid {
		jobID := kernel.JobID(r.JobID.String)
		batch.JobID = &jobID
	}
	if len(r.Results) > 0 {
		if err := json.Unmarshal(r.Results, &batch.Results); err != nil {
			return nil, ingest.ErrStorageFailed().WithDetail("error", err.Error())
		}
	}
	if len(r.Statistics) > 0 {
		if err := json.Unmarshal(r.Statistics, &batch.Statistics); err != nil {
			return nil, ingest.ErrStorageFailed().WithDetail("error", err.Error())
		}
	}
	return batch, nil
}

// Create records a new batch job.
func (r *PostgresBatchJobRepository) Create(ctx context.Context, batch *ingest.BatchJob) error {
	query := `
		INSERT INTO batch_jobs (id, status, job_id, total_files, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	var jobID sql.NullString
	if batch.JobID != nil {
		jobID = sql.NullString{String: batch.JobID.String(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		batch.ID.String(),
		string(batch.Status),
		jobID,
		batch.TotalFiles,
		batch.CreatedAt,
	)
	if err != nil {
		return ingest.ErrStorageFailed().WithDetail("error", err.Error())
	}
	return nil
}

// GetByID fetches a batch job.
func (r *PostgresBatchJobRepository) GetByID(ctx context.Context, id kernel.BatchJobID) (*ingest.BatchJob, error) {
	query := `
		SELECT id, status, job_id, total_files, results, statistics, error,
		       created_at, started_at, completed_at
		FROM batch_jobs
		WHERE id = $1`

	var row batchJobRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, ingest.ErrBatchNotFound().WithDetail("batch_id", id.String())
		}
		return nil, ingest.ErrStorageFailed().WithDetail("error", err.Error())
	}
	return row.ToDomain()
}

// MarkProcessing transitions a batch to processing and stamps its start.
func (r *PostgresBatchJobRepository) MarkProcessing(ctx context.Context, id kernel.BatchJobID) error {
	query := `UPDATE batch_jobs SET status = $1, started_at = NOW() WHERE id = $2`
	return r.exec(ctx, query, string(ingest.BatchStatusProcessing), id.String())
}

// Complete stores the final results and statistics.
func (r *PostgresBatchJobRepository) Complete(ctx context.Context, id kernel.BatchJobID, results []ingest.ProcessingResult, stats *ingest.Statistics) error {
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return ingest.ErrStorageFailed().WithDetail("error", err.Error())
	}
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return ingest.ErrStorageFailed().WithDetail("error", err.Error())
	}

	query := `
		UPDATE batch_jobs
		SET status = $1, results = $2, statistics = $3, completed_at = NOW()
		WHERE id = $4`
	return r.exec(ctx, query, string(ingest.BatchStatusCompleted), resultsJSON, statsJSON, id.String())
}

// Fail marks the batch failed with a reason.
func (r *PostgresBatchJobRepository) Fail(ctx context.Context, id kernel.BatchJobID, reason string) error {
	query := `UPDATE batch_jobs SET status = $1, error = $2, completed_at = NOW() WHERE id = $3`
	return r.exec(ctx, query, string(ingest.BatchStatusFailed), reason, id.String())
}

func (r *PostgresBatchJobRepository) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return ingest.ErrStorageFailed().WithDetail("error", err.Error())
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ingest.ErrBatchNotFound()
	}
	return nil
}
