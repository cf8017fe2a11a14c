package candidate

import (
	"context"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
)

// Repository is the persistence collaborator for candidate profiles.
type Repository interface {
	// Create persists a single profile and returns the assigned ID.
	Create(ctx context.Context, profile *CandidateProfile) (kernel.CandidateID, error)

	// CreateBulk persists profiles as one atomic operation. It fails as a
	// unit: either every profile gets an ID or none is stored.
	CreateBulk(ctx context.Context, profiles []*CandidateProfile) ([]kernel.CandidateID, error)

	// GetByID retrieves a profile by ID.
	GetByID(ctx context.Context, id kernel.CandidateID) (*CandidateProfile, error)

	// GetByEmail retrieves a profile by normalized email.
	GetByEmail(ctx context.Context, email kernel.Email) (*CandidateProfile, error)

	// GetPool returns candidates eligible for matching against a job:
	// candidates with an existing application to the job are excluded, the
	// result is ordered by overall score descending and capped at
	// MaxPoolSize.
	GetPool(ctx context.Context, jobID kernel.JobID, filters PoolFilters) ([]*CandidateProfile, error)

	// Search lists candidates matching the request with pagination.
	Search(ctx context.Context, req SearchRequest) (*kernel.Paginated[CandidateProfile], error)
}

// MaxPoolSize bounds the candidate pool handed to the matching engine so
// scoring cost stays linear in a fixed ceiling.
const MaxPoolSize = 1000
