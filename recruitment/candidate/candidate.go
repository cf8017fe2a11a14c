package candidate

import (
	"strings"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
)

// FailedExtractionPrefix marks profiles whose résumé could not be parsed.
// The ingestion pipeline relies on this to keep failed items flowing through
// the batch instead of aborting it.
const FailedExtractionPrefix = "PARSE_FAILED_"

// MaxSkills caps the skill list of a profile.
const MaxSkills = 20

// MaxExperienceYears bounds the experience range accepted as valid.
const MaxExperienceYears = 50

// EducationLevel is the ordered education classification.
type EducationLevel string

const (
	EducationHighSchool EducationLevel = "High School"
	EducationAssociates EducationLevel = "Associates"
	EducationBachelors  EducationLevel = "Bachelors"
	EducationMasters    EducationLevel = "Masters"
	EducationPhD        EducationLevel = "PhD"
)

// Rank returns the ordinal position of the level (High School=1 .. PhD=5).
// Unknown or empty levels rank 0.
func (l EducationLevel) Rank() int {
	switch l {
	case EducationHighSchool:
		return 1
	case EducationAssociates:
		return 2
	case EducationBachelors:
		return 3
	case EducationMasters:
		return 4
	case EducationPhD:
		return 5
	default:
		return 0
	}
}

// Points returns the education contribution to the overall profile score.
func (l EducationLevel) Points() float64 {
	switch l {
	case EducationPhD:
		return 20
	case EducationMasters:
		return 16
	case EducationBachelors:
		return 12
	case EducationAssociates:
		return 8
	case EducationHighSchool:
		return 4
	default:
		return 0
	}
}

// CandidateProfile is the structured record produced by the extractor and
// owned by the ingestion pipeline until persistence assigns the durable ID.
type CandidateProfile struct {
	ID kernel.CandidateID `db:"id" json:"id,omitempty"`

	// Identity
	Name     string          `db:"name" json:"name"`
	Email    kernel.Email    `db:"email" json:"email"`
	Phone    kernel.Phone    `db:"phone" json:"phone,omitempty"`
	Location kernel.Location `db:"location" json:"location,omitempty"`

	// Professional facts
	CurrentPosition string         `db:"current_position" json:"current_position,omitempty"`
	ExperienceYears int            `db:"experience_years" json:"experience_years"`
	Skills          []string       `db:"skills" json:"skills"`
	Certifications  []string       `db:"certifications" json:"certifications,omitempty"`
	Languages       []string       `db:"languages" json:"languages,omitempty"`
	EducationLevel  EducationLevel `db:"education_level" json:"education_level,omitempty"`

	// Preferences
	SalaryExpectation *int `db:"salary_expectation" json:"salary_expectation,omitempty"`

	// Résumé body
	ResumeText string `db:"resume_text" json:"resume_text,omitempty"`

	// Derived scores, 0-100
	OverallScore   float64 `db:"overall_score" json:"overall_score"`
	TechnicalScore float64 `db:"technical_score" json:"technical_score"`

	// Provenance
	Source    string    `db:"source" json:"source,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsExtractionFailed reports whether this profile is a failure sentinel
// produced when résumé parsing could not extract usable text.
func (c *CandidateProfile) IsExtractionFailed() bool {
	return strings.HasPrefix(c.Name, FailedExtractionPrefix)
}

// AddSkill appends a skill if not already present (case-insensitive) and the
// cap has not been reached. Insertion order is preserved.
func (c *CandidateProfile) AddSkill(skill string) {
	if len(c.Skills) >= MaxSkills {
		return
	}
	lower := strings.ToLower(skill)
	for _, existing := range c.Skills {
		if strings.ToLower(existing) == lower {
			return
		}
	}
	c.Skills = append(c.Skills, skill)
}

// HasSkill checks for a skill, case-insensitively.
func (c *CandidateProfile) HasSkill(skill string) bool {
	lower := strings.ToLower(skill)
	for _, s := range c.Skills {
		if strings.ToLower(s) == lower {
			return true
		}
	}
	return false
}

// HasValidExperience reports whether the experience years fall in the
// accepted [0, MaxExperienceYears] range.
func (c *CandidateProfile) HasValidExperience() bool {
	return c.ExperienceYears >= 0 && c.ExperienceYears <= MaxExperienceYears
}

// NewFailedProfile builds the sentinel profile recorded when extraction
// fails for a file. Skills and email stay empty so validation flags it.
func NewFailedProfile(filename, source string) *CandidateProfile {
	return &CandidateProfile{
		Name:      FailedExtractionPrefix + filename,
		Email:     "",
		Source:    source,
		CreatedAt: time.Now(),
	}
}
