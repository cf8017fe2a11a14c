package job

import (
	"context"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
)

// Repository is the persistence collaborator for job postings.
type Repository interface {
	Create(ctx context.Context, posting *JobRequirement) (kernel.JobID, error)
	GetByID(ctx context.Context, id kernel.JobID) (*JobRequirement, error)
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[JobRequirement], error)
}
