package matchinginfra

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching"
	"github.com/jmoiron/sqlx"
)

type PostgresMatchRepository struct {
	db *sqlx.DB
}

func NewPostgresMatchRepository(db *sqlx.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

type matchRow struct {
	CandidateID        string    `db:"candidate_id"`
	JobID              string    `db:"job_id"`
	CandidateName      string    `db:"candidate_name"`
	JobTitle           string    `db:"job_title"`
	OverallScore       float64   `db:"overall_score"`
	SkillScore         float64   `db:"skill_score"`
	ExperienceScore    float64   `db:"experience_score"`
	LocationScore      float64   `db:"location_score"`
	EducationScore     float64   `db:"education_score"`
	SalaryScore        float64   `db:"salary_score"`
	MatchingSkills     []byte    `db:"matching_skills"`
	MissingSkills      []byte    `db:"missing_skills"`
	SkillGapPercent    float64   `db:"skill_gap_percent"`
	ExperienceFit      string    `db:"experience_fit"`
	ExperienceGapYears int       `db:"experience_gap_years"`
	LocationCompatible bool      `db:"location_compatible"`
	SalaryCompatible   bool      `db:"salary_compatible"`
	Recommendation     string    `db:"recommendation"`
	MatchReasons       []byte    `db:"match_reasons"`
	ConcernAreas       []byte    `db:"concern_areas"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (r *matchRow) ToDomain() (*matching.MatchResult, error) {
	result := &matching.MatchResult{
		CandidateID:        kernel.CandidateID(r.CandidateID),
		JobID:              kernel.JobID(r.JobID),
		CandidateName:      r.CandidateName,
		JobTitle:           r.JobTitle,
		OverallScore:       r.OverallScore,
		SkillScore:         r.SkillScore,
		ExperienceScore:    r.ExperienceScore,
		LocationScore:      r.LocationScore,
		EducationScore:     r.EducationScore,
		SalaryScore:        r.SalaryScore,
		SkillGapPercent:    r.SkillGapPercent,
		ExperienceFit:      matching.ExperienceFit(r.ExperienceFit),
		ExperienceGapYears: r.ExperienceGapYears,
		LocationCompatible: r.LocationCompatible,
		SalaryCompatible:   r.SalaryCompatible,
		Recommendation:     matching.Recommendation(r.Recommendation),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if err := json.Unmarshal(r.MatchingSkills, &result.MatchingSkills); err != nil {
		return nil, matching.ErrStorageFailed().WithDetail("error", err.Error())
	}
	if err := json.Unmarshal(r.MissingSkills, &result.MissingSkills); err != nil {
		return nil, matching.ErrStorageFailed().WithDetail("error", err.Error())
	}
	if err := json.Unmarshal(r.MatchReasons, &result.MatchReasons); err != nil {
		return nil, matching.ErrStorageFailed().WithDetail("error", err.Error())
	}
	if err := json.Unmarshal(r.ConcernAreas, &result.ConcernAreas); err != nil {
		return nil, matching.ErrStorageFailed().WithDetail("error", err.Error())
	}
	return result, nil
}

// Upsert stores results keyed by (candidate_id, job_id), replacing prior
// values on conflict. The batch is written in one transaction.
func (r *PostgresMatchRepository) Upsert(ctx context.Context, results []*matching.MatchResult) error {
	if len(results) == 0 {
		return nil
	}

	query := `
		INSERT INTO match_results (
			candidate_id, job_id, candidate_name, job_title,
			overall_score, skill_score, experience_score,
			location_score, education_score, salary_score,
			matching_skills, missing_skills, skill_gap_percent,
			experience_fit, experience_gap_years,
			location_compatible, salary_compatible,
			recommendation, match_reasons, concern_areas,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10,
			$11, $12, $13,
			$14, $15,
			$16, $17,
			$18, $19, $20,
			NOW(), NOW()
		)
		ON CONFLICT (candidate_id, job_id) DO UPDATE SET
			candidate_name = EXCLUDED.candidate_name,
			job_title = EXCLUDED.job_title,
			overall_score = EXCLUDED.overall_score,
			skill_score = EXCLUDED.skill_score,
			experience_score = EXCLUDED.experience_score,
			location_score = EXCLUDED.location_score,
			education_score = EXCLUDED.education_score,
			salary_score = EXCLUDED.salary_score,
			matching_skills = EXCLUDED.matching_skills,
			missing_skills = EXCLUDED.missing_skills,
			skill_gap_percent = EXCLUDED.skill_gap_percent,
			experience_fit = EXCLUDED.experience_fit,
			experience_gap_years = EXCLUDED.experience_gap_years,
			location_compatible = EXCLUDED.location_compatible,
			salary_compatible = EXCLUDED.salary_compatible,
			recommendation = EXCLUDED.recommendation,
			match_reasons = EXCLUDED.match_reasons,
			concern_areas = EXCLUDED.concern_areas,
			updated_at = NOW()`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return matching.ErrStorageFailed().WithDetail("error", err.Error())
	}
	defer tx.Rollback()

	for _, result := range results {
		matchingSkills, err := json.Marshal(orEmpty(result.MatchingSkills))
		if err != nil {
			return matching.ErrStorageFailed().WithDetail("error", err.Error())
		}
		missingSkills, err := json.Marshal(orEmpty(result.MissingSkills))
		if err != nil {
			return matching.ErrStorageFailed().WithDetail("error", err.Error())
		}
		reasons, err := json.Marshal(orEmpty(result.MatchReasons))
		if err != nil {
			return matching.ErrStorageFailed().WithDetail("error", err.Error())
		}
		concerns, err := json.Marshal(orEmpty(result.ConcernAreas))
		if err != nil {
			return matching.ErrStorageFailed().WithDetail("error", err.Error())
		}

		_, err = tx.ExecContext(ctx, query,
			result.CandidateID.String(),
			result.JobID.String(),
			result.CandidateName,
			result.JobTitle,
			result.OverallScore,
			result.SkillScore,
			result.ExperienceScore,
			result.LocationScore,
			result.EducationScore,
			result.SalaryScore,
			matchingSkills,
			missingSkills,
			result.SkillGapPercent,
			string(result.ExperienceFit),
			result.ExperienceGapYears,
			result.LocationCompatible,
			result.SalaryCompatible,
			string(result.Recommendation),
			reasons,
			concerns,
		)
		if err != nil {
			return matching.ErrStorageFailed().
				WithDetail("candidate_id", result.CandidateID.String()).
				WithDetail("error", err.Error())
		}
	}

	if err := tx.Commit(); err != nil {
		return matching.ErrStorageFailed().WithDetail("error", err.Error())
	}
	return nil
}

// GetTopMatches returns the stored results for a job, best first.
func (r *PostgresMatchRepository) GetTopMatches(ctx context.Context, jobID kernel.JobID, limit int) ([]*matching.MatchResult, error) {
	query := `
		SELECT
			candidate_id, job_id, candidate_name, job_title,
			overall_score, skill_score, experience_score,
			location_score, education_score, salary_score,
			matching_skills, missing_skills, skill_gap_percent,
			experience_fit, experience_gap_years,
			location_compatible, salary_compatible,
			recommendation, match_reasons, concern_areas,
			created_at, updated_at
		FROM match_results
		WHERE job_id = $1
		ORDER BY overall_score DESC
		LIMIT $2`

	var rows []matchRow
	if err := r.db.SelectContext(ctx, &rows, query, jobID.String(), limit); err != nil {
		return nil, matching.ErrStorageFailed().WithDetail("error", err.Error())
	}

	results := make([]*matching.MatchResult, 0, len(rows))
	for i := range rows {
		result, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
