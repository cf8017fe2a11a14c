package matching

import (
	"context"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
)

// Repository is the persistence collaborator for match results.
type Repository interface {
	// Upsert stores results keyed by (candidate_id, job_id), replacing prior
	// values on conflict.
	Upsert(ctx context.Context, results []*MatchResult) error

	// GetTopMatches returns the stored results for a job ordered by overall
	// score descending, capped at limit.
	GetTopMatches(ctx context.Context, jobID kernel.JobID, limit int) ([]*MatchResult, error)
}
