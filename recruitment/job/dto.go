package job

import (
	"strings"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
)

// CreateJobRequest is the inbound shape for posting a job.
type CreateJobRequest struct {
	Title                string                   `json:"title"`
	RequiredSkills       []string                 `json:"required_skills"`
	PreferredSkills      []string                 `json:"preferred_skills,omitempty"`
	ExperienceMin        int                      `json:"experience_min"`
	ExperienceMax        *int                     `json:"experience_max,omitempty"`
	Location             string                   `json:"location,omitempty"`
	RemoteOK             bool                     `json:"remote_ok"`
	EducationRequirement candidate.EducationLevel `json:"education_requirement,omitempty"`
	SalaryMin            *int                     `json:"salary_min,omitempty"`
	SalaryMax            *int                     `json:"salary_max,omitempty"`
}

// Validate checks the request's internal consistency.
func (r *CreateJobRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrInvalidJobData().WithDetail("field", "title")
	}
	if r.ExperienceMin < 0 {
		return ErrInvalidJobData().WithDetail("field", "experience_min")
	}
	if r.ExperienceMax != nil && *r.ExperienceMax < r.ExperienceMin {
		return ErrInvalidJobData().
			WithDetail("field", "experience_max").
			WithDetail("reason", "experience_max below experience_min")
	}
	if r.SalaryMin != nil && r.SalaryMax != nil && *r.SalaryMin > *r.SalaryMax {
		return ErrInvalidJobData().
			WithDetail("field", "salary_min").
			WithDetail("reason", "salary_min exceeds salary_max")
	}
	if r.EducationRequirement != "" && r.EducationRequirement.Rank() == 0 {
		return ErrInvalidJobData().WithDetail("field", "education_requirement")
	}
	return nil
}

// ToDomain builds a posting from the request.
func (r *CreateJobRequest) ToDomain() *JobRequirement {
	return &JobRequirement{
		Title:                strings.TrimSpace(r.Title),
		RequiredSkills:       r.RequiredSkills,
		PreferredSkills:      r.PreferredSkills,
		ExperienceMin:        r.ExperienceMin,
		ExperienceMax:        r.ExperienceMax,
		Location:             kernel.Location(r.Location),
		RemoteOK:             r.RemoteOK,
		EducationRequirement: r.EducationRequirement,
		SalaryMin:            r.SalaryMin,
		SalaryMax:            r.SalaryMax,
		Status:               StatusPublished,
	}
}
