package candidate

import (
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
)

// PoolFilters narrows the candidate pool fetched for matching.
type PoolFilters struct {
	ExperienceMin *int    `json:"experience_min,omitempty"`
	Location      *string `json:"location,omitempty"`
	SalaryMax     *int    `json:"salary_max,omitempty"`
}

// SearchRequest lists candidates by optional criteria.
type SearchRequest struct {
	Skill          string                   `json:"skill,omitempty"`
	ExperienceMin  *int                     `json:"experience_min,omitempty"`
	ExperienceMax  *int                     `json:"experience_max,omitempty"`
	EducationLevel EducationLevel           `json:"education_level,omitempty"`
	Pagination     kernel.PaginationOptions `json:"pagination"`
}

// Response is the outward-facing candidate shape. The résumé body is
// deliberately omitted.
type Response struct {
	ID              kernel.CandidateID `json:"id"`
	Name            string             `json:"name"`
	Email           kernel.Email       `json:"email"`
	Phone           kernel.Phone       `json:"phone,omitempty"`
	Location        kernel.Location    `json:"location,omitempty"`
	CurrentPosition string             `json:"current_position,omitempty"`
	ExperienceYears int                `json:"experience_years"`
	Skills          []string           `json:"skills"`
	Certifications  []string           `json:"certifications,omitempty"`
	Languages       []string           `json:"languages,omitempty"`
	EducationLevel  EducationLevel     `json:"education_level,omitempty"`
	OverallScore    float64            `json:"overall_score"`
	TechnicalScore  float64            `json:"technical_score"`
	Source          string             `json:"source,omitempty"`
}

// ToResponse converts a profile to its API representation.
func (c *CandidateProfile) ToResponse() *Response {
	return &Response{
		ID:              c.ID,
		Name:            c.Name,
		Email:           c.Email,
		Phone:           c.Phone,
		Location:        c.Location,
		CurrentPosition: c.CurrentPosition,
		ExperienceYears: c.ExperienceYears,
		Skills:          c.Skills,
		Certifications:  c.Certifications,
		Languages:       c.Languages,
		EducationLevel:  c.EducationLevel,
		OverallScore:    c.OverallScore,
		TechnicalScore:  c.TechnicalScore,
		Source:          c.Source,
	}
}
