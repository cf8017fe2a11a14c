package jobsrv

import (
	"context"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/logx"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job"
)

// JobService manages job postings.
type JobService struct {
	repo job.Repository
}

func NewJobService(repo job.Repository) *JobService {
	return &JobService{repo: repo}
}

// CreateJob validates and stores a new posting.
func (s *JobService) CreateJob(ctx context.Context, req job.CreateJobRequest) (*job.JobRequirement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	posting := req.ToDomain()
	id, err := s.repo.Create(ctx, posting)
	if err != nil {
		return nil, err
	}

	logx.Infof("Created job %s (%s)", id, posting.Title)
	return posting, nil
}

// GetJobByID fetches one posting.
func (s *JobService) GetJobByID(ctx context.Context, id kernel.JobID) (*job.JobRequirement, error) {
	if id.IsEmpty() {
		return nil, job.ErrInvalidJobData().WithDetail("field", "id")
	}
	return s.repo.GetByID(ctx, id)
}

// ListJobs pages through postings.
func (s *JobService) ListJobs(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.JobRequirement], error) {
	return s.repo.List(ctx, pagination)
}
