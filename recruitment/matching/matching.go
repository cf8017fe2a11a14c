package matching

import (
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
)

// ExperienceFit classifies how a candidate's years of experience sit against
// a job's range.
type ExperienceFit string

const (
	FitPerfect        ExperienceFit = "Perfect"
	FitUnderQualified ExperienceFit = "Under-qualified"
	FitOverQualified  ExperienceFit = "Over-qualified"
)

// Recommendation is the tier derived from the overall score.
type Recommendation string

const (
	RecommendationExcellent Recommendation = "Excellent Match"
	RecommendationStrong    Recommendation = "Strong Match"
	RecommendationGood      Recommendation = "Good Match"
	RecommendationPotential Recommendation = "Potential Match"
	RecommendationPoor      Recommendation = "Poor Match"
)

// RecommendationFor maps an overall score to its tier.
func RecommendationFor(overall float64) Recommendation {
	switch {
	case overall >= 0.85:
		return RecommendationExcellent
	case overall >= 0.75:
		return RecommendationStrong
	case overall >= 0.65:
		return RecommendationGood
	case overall >= 0.5:
		return RecommendationPotential
	default:
		return RecommendationPoor
	}
}

// MatchResult is the scored pairing of one candidate and one job. Scoring is
// deterministic: identical inputs always produce an identical result.
type MatchResult struct {
	CandidateID kernel.CandidateID `db:"candidate_id" json:"candidate_id"`
	JobID       kernel.JobID       `db:"job_id" json:"job_id"`

	// Denormalized for display
	CandidateName string `db:"candidate_name" json:"candidate_name"`
	JobTitle      string `db:"job_title" json:"job_title"`

	// Scores on [0,1], rounded to 3 decimals
	OverallScore    float64 `db:"overall_score" json:"overall_score"`
	SkillScore      float64 `db:"skill_score" json:"skill_score"`
	ExperienceScore float64 `db:"experience_score" json:"experience_score"`
	LocationScore   float64 `db:"location_score" json:"location_score"`
	EducationScore  float64 `db:"education_score" json:"education_score"`
	SalaryScore     float64 `db:"salary_score" json:"salary_score"`

	// Skill breakdown
	MatchingSkills  []string `db:"matching_skills" json:"matching_skills"`
	MissingSkills   []string `db:"missing_skills" json:"missing_skills"`
	SkillGapPercent float64  `db:"skill_gap_percent" json:"skill_gap_percent"`

	// Experience breakdown
	ExperienceFit      ExperienceFit `db:"experience_fit" json:"experience_fit"`
	ExperienceGapYears int           `db:"experience_gap_years" json:"experience_gap_years"`

	// Compatibility flags
	LocationCompatible bool `db:"location_compatible" json:"location_compatible"`
	SalaryCompatible   bool `db:"salary_compatible" json:"salary_compatible"`

	// Narrative
	Recommendation Recommendation `db:"recommendation" json:"recommendation"`
	MatchReasons   []string       `db:"match_reasons" json:"match_reasons"`
	ConcernAreas   []string       `db:"concern_areas" json:"concern_areas"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
