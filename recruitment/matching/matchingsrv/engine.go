package matchingsrv

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/logx"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/taxonomy"
)

// Config carries the scoring weights and heuristic thresholds. The salary
// stretch and experience penalty values are tunable rather than invariant.
type Config struct {
	// Sub-score weights, must sum to 1
	SkillWeight      float64
	ExperienceWeight float64
	LocationWeight   float64
	EducationWeight  float64
	SalaryWeight     float64

	// Per-skill awards
	ExactMatchAward    float64
	RelatedMatchAward  float64
	CategoryMatchAward float64
	PreferredBonus     float64

	// Experience handling
	DefaultExperienceMax int
	UnderGapPenalty      float64

	// Salary stretch beyond the job's max, as fractions of max
	SalaryStretchCompatible   float64
	SalaryStretchIncompatible float64
}

// DefaultConfig returns the production scoring parameters.
func DefaultConfig() Config {
	return Config{
		SkillWeight:      0.4,
		ExperienceWeight: 0.25,
		LocationWeight:   0.15,
		EducationWeight:  0.1,
		SalaryWeight:     0.1,

		ExactMatchAward:    1.0,
		RelatedMatchAward:  0.7,
		CategoryMatchAward: 0.5,
		PreferredBonus:     0.1,

		DefaultExperienceMax: 20,
		UnderGapPenalty:      0.2,

		SalaryStretchCompatible:   0.1,
		SalaryStretchIncompatible: 0.2,
	}
}

// Engine scores candidates against jobs and ranks candidate pools. Score is
// a pure function of its inputs; Rank adds pool fetching and persistence.
type Engine struct {
	cfg        Config
	skills     *taxonomy.Taxonomy
	jobs       job.Repository
	candidates candidate.Repository
	results    matching.Repository
}

func NewEngine(
	cfg Config,
	skills *taxonomy.Taxonomy,
	jobs job.Repository,
	candidates candidate.Repository,
	results matching.Repository,
) *Engine {
	return &Engine{
		cfg:        cfg,
		skills:     skills,
		jobs:       jobs,
		candidates: candidates,
		results:    results,
	}
}

// ============================================================================
// Scoring
// ============================================================================

// Score computes the full match result for one candidate and one job.
func (e *Engine) Score(profile *candidate.CandidateProfile, posting *job.JobRequirement) *matching.MatchResult {
	skillScore, matchingSkills, missingSkills := e.scoreSkills(
		profile.Skills, posting.RequiredSkills, posting.PreferredSkills,
	)
	experienceScore, fit, gap := e.scoreExperience(
		profile.ExperienceYears, posting.ExperienceMin, posting.ExperienceMax,
	)
	locationScore, locationCompatible := e.scoreLocation(
		profile.Location.String(), posting.Location.String(), posting.RemoteOK,
	)
	educationScore := e.scoreEducation(profile.EducationLevel, posting.EducationRequirement)
	salaryScore, salaryCompatible := e.scoreSalary(
		profile.SalaryExpectation, posting.SalaryMin, posting.SalaryMax,
	)

	overall := skillScore*e.cfg.SkillWeight +
		experienceScore*e.cfg.ExperienceWeight +
		locationScore*e.cfg.LocationWeight +
		educationScore*e.cfg.EducationWeight +
		salaryScore*e.cfg.SalaryWeight

	reasons, concerns := e.narrate(
		skillScore, experienceScore, locationScore,
		matchingSkills, missingSkills, fit,
	)

	gapPercent := 0.0
	if len(posting.RequiredSkills) > 0 {
		gapPercent = float64(len(missingSkills)) / float64(len(posting.RequiredSkills)) * 100
	}

	return &matching.MatchResult{
		CandidateID:        profile.ID,
		JobID:              posting.ID,
		CandidateName:      profile.Name,
		JobTitle:           posting.Title,
		OverallScore:       round3(overall),
		SkillScore:         round3(skillScore),
		ExperienceScore:    round3(experienceScore),
		LocationScore:      round3(locationScore),
		EducationScore:     round3(educationScore),
		SalaryScore:        round3(salaryScore),
		MatchingSkills:     matchingSkills,
		MissingSkills:      missingSkills,
		SkillGapPercent:    round1(gapPercent),
		ExperienceFit:      fit,
		ExperienceGapYears: gap,
		LocationCompatible: locationCompatible,
		SalaryCompatible:   salaryCompatible,
		Recommendation:     matching.RecommendationFor(overall),
		MatchReasons:       reasons,
		ConcernAreas:       concerns,
	}
}

// scoreSkills awards per required skill: exact match, then relationship
// graph, then substring fallback. Preferred skills add a flat bonus each.
func (e *Engine) scoreSkills(candidateSkills, required, preferred []string) (float64, []string, []string) {
	if len(required) == 0 {
		return 1.0, []string{}, []string{}
	}

	lowerSet := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		lowerSet[strings.ToLower(s)] = true
	}

	matchingSkills := []string{}
	missingSkills := []string{}
	total := 0.0

	for _, req := range required {
		switch {
		case lowerSet[strings.ToLower(req)]:
			total += e.cfg.ExactMatchAward
			matchingSkills = append(matchingSkills, req)
		default:
			if award := e.relatedAward(req, candidateSkills); award > 0 {
				total += award
				matchingSkills = append(matchingSkills, req)
			} else {
				missingSkills = append(missingSkills, req)
			}
		}
	}

	bonus := 0.0
	for _, pref := range preferred {
		if lowerSet[strings.ToLower(pref)] {
			bonus += e.cfg.PreferredBonus
			if !containsFold(matchingSkills, pref) {
				matchingSkills = append(matchingSkills, pref)
			}
		}
	}

	score := total/float64(len(required)) + bonus
	return math.Min(score, 1.0), matchingSkills, missingSkills
}

// relatedAward checks the relationship graph in both directions, then falls
// back to substring containment for compound skill names.
func (e *Engine) relatedAward(required string, candidateSkills []string) float64 {
	for _, cand := range candidateSkills {
		if e.skills.AreRelated(required, cand) {
			return e.cfg.RelatedMatchAward
		}
	}

	requiredLower := strings.ToLower(required)
	for _, cand := range candidateSkills {
		candLower := strings.ToLower(cand)
		if len(candLower) > 3 && strings.Contains(requiredLower, candLower) {
			return e.cfg.CategoryMatchAward
		}
	}
	return 0
}

func (e *Engine) scoreExperience(years, min int, max *int) (float64, matching.ExperienceFit, int) {
	effectiveMax := e.cfg.DefaultExperienceMax
	if max != nil {
		effectiveMax = *max
	}

	switch {
	case years < min:
		gap := min - years
		var score float64
		switch {
		case gap <= 1:
			score = 0.8
		case gap <= 2:
			score = 0.6
		default:
			score = math.Max(0.2, 1.0-float64(gap)*e.cfg.UnderGapPenalty)
		}
		return score, matching.FitUnderQualified, gap
	case years > effectiveMax:
		gap := years - effectiveMax
		var score float64
		switch {
		case gap <= 2:
			score = 0.9
		case gap <= 5:
			score = 0.8
		default:
			score = 0.7
		}
		return score, matching.FitOverQualified, gap
	default:
		return 1.0, matching.FitPerfect, 0
	}
}

func (e *Engine) scoreLocation(candidateLoc, jobLoc string, remoteOK bool) (float64, bool) {
	if remoteOK {
		return 1.0, true
	}
	if candidateLoc == "" || jobLoc == "" {
		// Neutral when location data is missing
		return 0.7, true
	}

	candidateLoc = strings.ToLower(candidateLoc)
	jobLoc = strings.ToLower(jobLoc)

	if candidateLoc == jobLoc {
		return 1.0, true
	}

	candidateParts := strings.Split(candidateLoc, ",")
	jobParts := strings.Split(jobLoc, ",")

	if len(candidateParts) >= 2 && len(jobParts) >= 2 {
		if strings.TrimSpace(candidateParts[len(candidateParts)-1]) == strings.TrimSpace(jobParts[len(jobParts)-1]) {
			return 0.8, true
		}
		if strings.TrimSpace(candidateParts[0]) == strings.TrimSpace(jobParts[0]) {
			return 0.9, true
		}
	}

	for _, part := range candidateParts {
		if part = strings.TrimSpace(part); part != "" && strings.Contains(jobLoc, part) {
			return 0.6, true
		}
	}

	return 0.3, false
}

func (e *Engine) scoreEducation(candidateLevel, requiredLevel candidate.EducationLevel) float64 {
	if requiredLevel == "" {
		return 1.0
	}
	if candidateLevel == "" {
		return 0.5
	}

	candidateRank := candidateLevel.Rank()
	requiredRank := requiredLevel.Rank()

	switch {
	case candidateRank >= requiredRank:
		return 1.0
	case candidateRank == requiredRank-1:
		return 0.8
	default:
		return 0.5
	}
}

func (e *Engine) scoreSalary(expectation, jobMin, jobMax *int) (float64, bool) {
	if expectation == nil {
		return 1.0, true
	}
	if jobMin == nil && jobMax == nil {
		return 1.0, true
	}
	if jobMin == nil || jobMax == nil {
		// Half-open band, not enough signal to penalize
		return 0.7, true
	}

	switch {
	case *expectation <= *jobMax:
		return 1.0, true
	default:
		stretch := float64(*expectation-*jobMax) / float64(*jobMax)
		switch {
		case stretch <= e.cfg.SalaryStretchCompatible:
			return 0.8, true
		case stretch <= e.cfg.SalaryStretchIncompatible:
			return 0.6, false
		default:
			return 0.3, false
		}
	}
}

func (e *Engine) narrate(
	skillScore, experienceScore, locationScore float64,
	matchingSkills, missingSkills []string,
	fit matching.ExperienceFit,
) ([]string, []string) {
	reasons := []string{}
	concerns := []string{}

	if skillScore >= 0.8 {
		reasons = append(reasons, "Strong technical skill alignment")
	} else if skillScore >= 0.6 {
		reasons = append(reasons, "Good skill match with some gaps")
	}

	if experienceScore >= 0.9 {
		reasons = append(reasons, fmt.Sprintf("Perfect experience level (%s)", fit))
	} else if experienceScore >= 0.7 {
		reasons = append(reasons, "Appropriate experience level")
	}

	if locationScore >= 0.9 {
		reasons = append(reasons, "Excellent location match")
	}

	if len(matchingSkills) > 5 {
		reasons = append(reasons, "Extensive relevant skill set")
	}

	if skillScore < 0.6 {
		concerns = append(concerns, "Significant skill gaps identified")
	}

	switch {
	case len(missingSkills) == 1:
		concerns = append(concerns, fmt.Sprintf("Missing required skill: %s", missingSkills[0]))
	case len(missingSkills) > 1 && len(missingSkills) <= 3:
		concerns = append(concerns, fmt.Sprintf("Missing skills: %s", strings.Join(missingSkills, ", ")))
	case len(missingSkills) > 3:
		concerns = append(concerns, fmt.Sprintf("Missing %d required skills", len(missingSkills)))
	}

	switch fit {
	case matching.FitUnderQualified:
		concerns = append(concerns, "Below minimum experience requirement")
	case matching.FitOverQualified:
		concerns = append(concerns, "May be over-qualified for the role")
	}

	if locationScore < 0.5 {
		concerns = append(concerns, "Location mismatch - may require relocation")
	}

	return reasons, concerns
}

// ============================================================================
// Ranking
// ============================================================================

// Rank scores the eligible candidate pool for a job, keeps results at or
// above minScore, sorts descending by overall score with ties broken by pool
// order, truncates to limit and upserts the survivors.
func (e *Engine) Rank(ctx context.Context, jobID kernel.JobID, minScore float64, limit int) ([]*matching.MatchResult, error) {
	if limit <= 0 {
		return nil, matching.ErrInvalidRequest().WithDetail("field", "limit")
	}
	if minScore < 0 || minScore > 1 {
		return nil, matching.ErrInvalidRequest().WithDetail("field", "min_score")
	}

	posting, err := e.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	pool, err := e.candidates.GetPool(ctx, jobID, candidate.PoolFilters{})
	if err != nil {
		return nil, err
	}

	results := make([]*matching.MatchResult, 0, len(pool))
	for _, profile := range pool {
		result := e.Score(profile, posting)
		if result.OverallScore >= minScore {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
	if len(results) > limit {
		results = results[:limit]
	}

	if len(results) > 0 {
		if err := e.results.Upsert(ctx, results); err != nil {
			return nil, err
		}
	}

	logx.Infof("Ranked %d candidates for job %s, kept %d", len(pool), jobID, len(results))
	return results, nil
}

// ScoreBatch scores profiles against a posting and upserts the results in
// one shot. Used by the ingestion pipeline after persistence.
func (e *Engine) ScoreBatch(ctx context.Context, profiles []*candidate.CandidateProfile, posting *job.JobRequirement) error {
	if len(profiles) == 0 {
		return nil
	}
	results := make([]*matching.MatchResult, 0, len(profiles))
	for _, profile := range profiles {
		results = append(results, e.Score(profile, posting))
	}
	return e.results.Upsert(ctx, results)
}

// TopMatches returns previously ranked results for a job.
func (e *Engine) TopMatches(ctx context.Context, jobID kernel.JobID, limit int) ([]*matching.MatchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if _, err := e.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return e.results.GetTopMatches(ctx, jobID, limit)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
