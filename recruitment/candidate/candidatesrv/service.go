package candidatesrv

import (
	"context"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
)

// Service exposes read access to the candidate store. Writes go through the
// ingestion pipeline, which owns extraction and validation.
type Service struct {
	repo candidate.Repository
}

func NewService(repo candidate.Repository) *Service {
	return &Service{repo: repo}
}

// GetByID fetches one candidate.
func (s *Service) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateProfile, error) {
	if id.IsEmpty() {
		return nil, candidate.ErrInvalidProfileData().WithDetail("field", "id")
	}
	return s.repo.GetByID(ctx, id)
}

// GetByEmail fetches one candidate by email.
func (s *Service) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.CandidateProfile, error) {
	if !email.IsValid() {
		return nil, candidate.ErrInvalidProfileData().WithDetail("field", "email")
	}
	return s.repo.GetByEmail(ctx, email)
}

// Search lists candidates by optional criteria.
func (s *Service) Search(ctx context.Context, req candidate.SearchRequest) (*kernel.Paginated[candidate.CandidateProfile], error) {
	if req.ExperienceMin != nil && *req.ExperienceMin < 0 {
		return nil, candidate.ErrInvalidSearchFilter().WithDetail("field", "experience_min")
	}
	if req.ExperienceMax != nil && *req.ExperienceMax < 0 {
		return nil, candidate.ErrInvalidSearchFilter().WithDetail("field", "experience_max")
	}
	if req.ExperienceMin != nil && req.ExperienceMax != nil && *req.ExperienceMin > *req.ExperienceMax {
		return nil, candidate.ErrInvalidSearchFilter().
			WithDetail("field", "experience_min").
			WithDetail("reason", "experience_min exceeds experience_max")
	}
	if req.EducationLevel != "" && req.EducationLevel.Rank() == 0 {
		return nil, candidate.ErrInvalidSearchFilter().WithDetail("field", "education_level")
	}
	return s.repo.Search(ctx, req)
}
