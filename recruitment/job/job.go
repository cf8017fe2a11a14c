package job

import (
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
)

// Status tracks a posting's lifecycle.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusClosed    Status = "closed"
)

// JobRequirement is a job posting with the requirements the matching engine
// scores candidates against.
type JobRequirement struct {
	ID    kernel.JobID `db:"id" json:"id"`
	Title string       `db:"title" json:"title"`

	// Skills
	RequiredSkills  []string `db:"required_skills" json:"required_skills"`
	PreferredSkills []string `db:"preferred_skills" json:"preferred_skills,omitempty"`

	// Experience bounds in years. A nil max means open-ended.
	ExperienceMin int  `db:"experience_min" json:"experience_min"`
	ExperienceMax *int `db:"experience_max" json:"experience_max,omitempty"`

	// Location
	Location kernel.Location `db:"location" json:"location,omitempty"`
	RemoteOK bool            `db:"remote_ok" json:"remote_ok"`

	// Minimum education level, empty when the role has no requirement.
	EducationRequirement candidate.EducationLevel `db:"education_requirement" json:"education_requirement,omitempty"`

	// Salary band. Nil bounds mean unconstrained.
	SalaryMin *int `db:"salary_min" json:"salary_min,omitempty"`
	SalaryMax *int `db:"salary_max" json:"salary_max,omitempty"`

	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RequiresSkills reports whether the posting names any hard skill
// requirements.
func (j *JobRequirement) RequiresSkills() bool {
	return len(j.RequiredSkills) > 0
}

// ExperienceInRange reports whether years falls inside the posting's bounds.
func (j *JobRequirement) ExperienceInRange(years int) bool {
	if years < j.ExperienceMin {
		return false
	}
	if j.ExperienceMax != nil && years > *j.ExperienceMax {
		return false
	}
	return true
}

// HasSalaryBand reports whether the posting constrains salary at all.
func (j *JobRequirement) HasSalaryBand() bool {
	return j.SalaryMax != nil
}
