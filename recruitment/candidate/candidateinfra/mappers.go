package candidateinfra

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
)

// candidateRow represents a row from the candidates table. List-valued
// fields are stored as JSONB and decoded once here.
type candidateRow struct {
	ID                string         `db:"id"`
	Name              string         `db:"name"`
	Email             sql.NullString `db:"email"`
	Phone             sql.NullString `db:"phone"`
	Location          sql.NullString `db:"location"`
	CurrentPosition   sql.NullString `db:"current_position"`
	ExperienceYears   int            `db:"experience_years"`
	Skills            []byte         `db:"skills"`
	Certifications    []byte         `db:"certifications"`
	Languages         []byte         `db:"languages"`
	EducationLevel    sql.NullString `db:"education_level"`
	SalaryExpectation sql.NullInt64  `db:"salary_expectation"`
	ResumeText        string         `db:"resume_text"`
	OverallScore      float64        `db:"overall_score"`
	TechnicalScore    float64        `db:"technical_score"`
	Source            sql.NullString `db:"source"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

// ToDomain converts a candidateRow to the domain profile.
func (r *candidateRow) ToDomain() (*candidate.CandidateProfile, error) {
	profile := &candidate.CandidateProfile{
		ID:              kernel.CandidateID(r.ID),
		Name:            r.Name,
		Email:           kernel.Email(r.Email.String),
		Phone:           kernel.Phone(r.Phone.String),
		Location:        kernel.Location(r.Location.String),
		CurrentPosition: r.CurrentPosition.String,
		ExperienceYears: r.ExperienceYears,
		EducationLevel:  candidate.EducationLevel(r.EducationLevel.String),
		ResumeText:      r.ResumeText,
		OverallScore:    r.OverallScore,
		TechnicalScore:  r.TechnicalScore,
		Source:          r.Source.String,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.SalaryExpectation.Valid {
		expectation := int(r.SalaryExpectation.Int64)
		profile.SalaryExpectation = &expectation
	}

	if err := json.Unmarshal(r.Skills, &profile.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal skills: %w", err)
	}
	if err := json.Unmarshal(r.Certifications, &profile.Certifications); err != nil {
		return nil, fmt.Errorf("failed to unmarshal certifications: %w", err)
	}
	if err := json.Unmarshal(r.Languages, &profile.Languages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal languages: %w", err)
	}

	return profile, nil
}

// marshalListFields encodes the JSONB columns of a profile. Nil slices are
// stored as empty arrays so reads never see SQL NULL.
func marshalListFields(p *candidate.CandidateProfile) (skills, certifications, languages []byte, err error) {
	skills, err = json.Marshal(orEmpty(p.Skills))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	certifications, err = json.Marshal(orEmpty(p.Certifications))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal certifications: %w", err)
	}
	languages, err = json.Marshal(orEmpty(p.Languages))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal languages: %w", err)
	}
	return skills, certifications, languages, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
