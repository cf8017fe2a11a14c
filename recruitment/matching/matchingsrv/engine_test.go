package matchingsrv

import (
	"context"
	"math"
	"testing"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/taxonomy"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeJobRepo struct {
	postings map[kernel.JobID]*job.JobRequirement
}

func (f *fakeJobRepo) Create(ctx context.Context, posting *job.JobRequirement) (kernel.JobID, error) {
	return posting.ID, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id kernel.JobID) (*job.JobRequirement, error) {
	if posting, ok := f.postings[id]; ok {
		return posting, nil
	}
	return nil, job.ErrJobNotFound()
}

func (f *fakeJobRepo) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.JobRequirement], error) {
	return nil, nil
}

type fakeCandidateRepo struct {
	pool []*candidate.CandidateProfile
}

func (f *fakeCandidateRepo) Create(ctx context.Context, profile *candidate.CandidateProfile) (kernel.CandidateID, error) {
	return profile.ID, nil
}

func (f *fakeCandidateRepo) CreateBulk(ctx context.Context, profiles []*candidate.CandidateProfile) ([]kernel.CandidateID, error) {
	ids := make([]kernel.CandidateID, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	return ids, nil
}

func (f *fakeCandidateRepo) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateProfile, error) {
	return nil, candidate.ErrCandidateNotFound()
}

func (f *fakeCandidateRepo) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.CandidateProfile, error) {
	return nil, candidate.ErrCandidateNotFound()
}

func (f *fakeCandidateRepo) GetPool(ctx context.Context, jobID kernel.JobID, filters candidate.PoolFilters) ([]*candidate.CandidateProfile, error) {
	return f.pool, nil
}

func (f *fakeCandidateRepo) Search(ctx context.Context, req candidate.SearchRequest) (*kernel.Paginated[candidate.CandidateProfile], error) {
	return nil, nil
}

type fakeMatchRepo struct {
	upserts [][]*matching.MatchResult
	stored  []*matching.MatchResult
}

func (f *fakeMatchRepo) Upsert(ctx context.Context, results []*matching.MatchResult) error {
	f.upserts = append(f.upserts, results)
	f.stored = append(f.stored, results...)
	return nil
}

func (f *fakeMatchRepo) GetTopMatches(ctx context.Context, jobID kernel.JobID, limit int) ([]*matching.MatchResult, error) {
	if len(f.stored) > limit {
		return f.stored[:limit], nil
	}
	return f.stored, nil
}

func newTestEngine(jobs *fakeJobRepo, candidates *fakeCandidateRepo, results *fakeMatchRepo) *Engine {
	if jobs == nil {
		jobs = &fakeJobRepo{}
	}
	if candidates == nil {
		candidates = &fakeCandidateRepo{}
	}
	if results == nil {
		results = &fakeMatchRepo{}
	}
	return NewEngine(DefaultConfig(), taxonomy.Default(), jobs, candidates, results)
}

func intPtr(v int) *int { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ============================================================================
// Score
// ============================================================================

func TestScorePartialSkillMatch(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	profile := &candidate.CandidateProfile{
		ID:              "cand-1",
		Name:            "Jane Doe",
		Skills:          []string{"Python", "React"},
		ExperienceYears: 4,
	}
	posting := &job.JobRequirement{
		ID:             "job-1",
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Python", "SQL"},
		ExperienceMin:  3,
		ExperienceMax:  intPtr(6),
		RemoteOK:       true,
	}

	result := e.Score(profile, posting)

	if result.SkillScore != 0.5 {
		t.Fatalf("expected skill score 0.5, got %v", result.SkillScore)
	}
	if result.OverallScore != 0.8 {
		t.Fatalf("expected overall score 0.8, got %v", result.OverallScore)
	}
	if result.Recommendation != matching.RecommendationStrong {
		t.Fatalf("expected Strong Match, got %q", result.Recommendation)
	}
	if result.ExperienceFit != matching.FitPerfect {
		t.Fatalf("expected Perfect fit, got %q", result.ExperienceFit)
	}
	if len(result.MissingSkills) != 1 || result.MissingSkills[0] != "SQL" {
		t.Fatalf("expected missing skills [SQL], got %v", result.MissingSkills)
	}
	if result.SkillGapPercent != 50 {
		t.Fatalf("expected 50%% skill gap, got %v", result.SkillGapPercent)
	}
	if !containsString(result.ConcernAreas, "Missing required skill: SQL") {
		t.Fatalf("expected missing-skill concern, got %v", result.ConcernAreas)
	}
	if !containsString(result.MatchReasons, "Excellent location match") {
		t.Fatalf("expected remote location reason, got %v", result.MatchReasons)
	}
}

func TestScoreUnderQualified(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	profile := &candidate.CandidateProfile{
		Name:            "Junior Dev",
		Skills:          []string{"Python"},
		ExperienceYears: 1,
	}
	posting := &job.JobRequirement{
		Title:          "Staff Engineer",
		RequiredSkills: []string{"Python"},
		ExperienceMin:  5,
		RemoteOK:       true,
	}

	result := e.Score(profile, posting)

	if result.ExperienceScore != 0.2 {
		t.Fatalf("expected experience score 0.2, got %v", result.ExperienceScore)
	}
	if result.ExperienceFit != matching.FitUnderQualified {
		t.Fatalf("expected Under-qualified, got %q", result.ExperienceFit)
	}
	if result.ExperienceGapYears != 4 {
		t.Fatalf("expected gap of 4 years, got %d", result.ExperienceGapYears)
	}
	if !containsString(result.ConcernAreas, "Below minimum experience requirement") {
		t.Fatalf("expected experience concern, got %v", result.ConcernAreas)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	profile := &candidate.CandidateProfile{
		Name:              "Jane Doe",
		Skills:            []string{"Python", "React", "AWS"},
		ExperienceYears:   6,
		Location:          "Austin, TX",
		EducationLevel:    candidate.EducationMasters,
		SalaryExpectation: intPtr(120000),
	}
	posting := &job.JobRequirement{
		Title:                "Platform Engineer",
		RequiredSkills:       []string{"Python", "Kubernetes"},
		PreferredSkills:      []string{"AWS"},
		ExperienceMin:        4,
		ExperienceMax:        intPtr(10),
		Location:             "Dallas, TX",
		EducationRequirement: candidate.EducationBachelors,
		SalaryMin:            intPtr(90000),
		SalaryMax:            intPtr(130000),
	}

	first := e.Score(profile, posting)
	second := e.Score(profile, posting)

	if first.OverallScore != second.OverallScore {
		t.Fatalf("overall score changed between runs: %v vs %v", first.OverallScore, second.OverallScore)
	}
	if first.Recommendation != second.Recommendation {
		t.Fatalf("recommendation changed between runs")
	}
	if len(first.MatchingSkills) != len(second.MatchingSkills) {
		t.Fatalf("matching skills changed between runs")
	}
	for i := range first.MatchingSkills {
		if first.MatchingSkills[i] != second.MatchingSkills[i] {
			t.Fatalf("matching skill order changed between runs")
		}
	}
}

// ============================================================================
// Sub-scores
// ============================================================================

func TestScoreSkills(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	cases := []struct {
		name      string
		candidate []string
		required  []string
		preferred []string
		score     float64
		missing   int
	}{
		{"no requirements", []string{"Python"}, nil, nil, 1.0, 0},
		{"exact match", []string{"Python"}, []string{"Python"}, nil, 1.0, 0},
		{"exact match ignores case", []string{"python"}, []string{"Python"}, nil, 1.0, 0},
		{"related via graph", []string{"React"}, []string{"JavaScript"}, nil, 0.7, 0},
		{"substring fallback", []string{"Java"}, []string{"JavaScript"}, nil, 0.5, 0},
		{"unrelated", []string{"Rust"}, []string{"JavaScript"}, nil, 0.0, 1},
		{"preferred bonus", []string{"Python", "AWS"}, []string{"Python", "SQL"}, []string{"AWS"}, 0.6, 1},
		{"bonus capped at one", []string{"Python", "AWS"}, []string{"Python"}, []string{"AWS"}, 1.0, 0},
	}

	for _, tc := range cases {
		score, _, missing := e.scoreSkills(tc.candidate, tc.required, tc.preferred)
		if !almostEqual(score, tc.score) {
			t.Fatalf("%s: score = %v, want %v", tc.name, score, tc.score)
		}
		if len(missing) != tc.missing {
			t.Fatalf("%s: missing = %v, want %d entries", tc.name, missing, tc.missing)
		}
	}
}

func TestSkillScoreMonotonicInMatches(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	required := []string{"Python", "Go", "PostgreSQL", "Kubernetes"}

	prev := -1.0
	for i := 0; i <= len(required); i++ {
		score, _, _ := e.scoreSkills(required[:i], required, nil)
		if score < prev {
			t.Fatalf("score decreased when adding matched skill: %v after %v", score, prev)
		}
		prev = score
	}
	if prev != 1.0 {
		t.Fatalf("expected full match to score 1.0, got %v", prev)
	}
}

func TestScoreExperience(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	cases := []struct {
		name  string
		years int
		min   int
		max   *int
		score float64
		fit   matching.ExperienceFit
		gap   int
	}{
		{"at minimum", 3, 3, intPtr(6), 1.0, matching.FitPerfect, 0},
		{"at maximum", 6, 3, intPtr(6), 1.0, matching.FitPerfect, 0},
		{"one year short", 4, 5, nil, 0.8, matching.FitUnderQualified, 1},
		{"two years short", 3, 5, nil, 0.6, matching.FitUnderQualified, 2},
		{"three years short", 2, 5, nil, 0.4, matching.FitUnderQualified, 3},
		{"hopelessly short", 0, 10, nil, 0.2, matching.FitUnderQualified, 10},
		{"slightly over", 7, 3, intPtr(6), 0.9, matching.FitOverQualified, 1},
		{"well over", 11, 3, intPtr(6), 0.8, matching.FitOverQualified, 5},
		{"far over", 15, 3, intPtr(6), 0.7, matching.FitOverQualified, 9},
		{"open-ended max defaults", 19, 3, nil, 1.0, matching.FitPerfect, 0},
		{"over the default ceiling", 22, 3, nil, 0.9, matching.FitOverQualified, 2},
	}

	for _, tc := range cases {
		score, fit, gap := e.scoreExperience(tc.years, tc.min, tc.max)
		if !almostEqual(score, tc.score) {
			t.Fatalf("%s: score = %v, want %v", tc.name, score, tc.score)
		}
		if fit != tc.fit {
			t.Fatalf("%s: fit = %q, want %q", tc.name, fit, tc.fit)
		}
		if gap != tc.gap {
			t.Fatalf("%s: gap = %d, want %d", tc.name, gap, tc.gap)
		}
	}
}

func TestExperienceScorePerfectOnlyInRange(t *testing.T) {
	e := newTestEngine(nil, nil, nil)
	min, max := 3, 8

	for years := 0; years <= 15; years++ {
		score, _, _ := e.scoreExperience(years, min, intPtr(max))
		inRange := years >= min && years <= max
		if inRange && score != 1.0 {
			t.Fatalf("expected 1.0 for %d years in [%d,%d], got %v", years, min, max, score)
		}
		if !inRange && score >= 1.0 {
			t.Fatalf("expected score below 1.0 for %d years outside [%d,%d], got %v", years, min, max, score)
		}
	}
}

func TestScoreLocation(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	cases := []struct {
		name       string
		candidate  string
		job        string
		remoteOK   bool
		score      float64
		compatible bool
	}{
		{"remote trumps everything", "Berlin, Germany", "Austin, TX", true, 1.0, true},
		{"missing candidate location", "", "Austin, TX", false, 0.7, true},
		{"missing job location", "Austin, TX", "", false, 0.7, true},
		{"exact match", "Austin, TX", "austin, tx", false, 1.0, true},
		{"same region", "Austin, TX", "Dallas, TX", false, 0.8, true},
		{"same city different region", "Springfield, IL", "Springfield, MA", false, 0.9, true},
		{"partial overlap", "Berlin", "Berlin, Germany", false, 0.6, true},
		{"mismatch", "Tokyo, Japan", "Austin, TX", false, 0.3, false},
	}

	for _, tc := range cases {
		score, compatible := e.scoreLocation(tc.candidate, tc.job, tc.remoteOK)
		if !almostEqual(score, tc.score) {
			t.Fatalf("%s: score = %v, want %v", tc.name, score, tc.score)
		}
		if compatible != tc.compatible {
			t.Fatalf("%s: compatible = %v, want %v", tc.name, compatible, tc.compatible)
		}
	}
}

func TestScoreEducation(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	cases := []struct {
		name      string
		candidate candidate.EducationLevel
		required  candidate.EducationLevel
		score     float64
	}{
		{"no requirement", "", "", 1.0},
		{"no requirement with degree", candidate.EducationPhD, "", 1.0},
		{"unknown candidate level", "", candidate.EducationBachelors, 0.5},
		{"meets requirement", candidate.EducationBachelors, candidate.EducationBachelors, 1.0},
		{"exceeds requirement", candidate.EducationPhD, candidate.EducationBachelors, 1.0},
		{"one level below", candidate.EducationBachelors, candidate.EducationMasters, 0.8},
		{"far below", candidate.EducationHighSchool, candidate.EducationMasters, 0.5},
	}

	for _, tc := range cases {
		if got := e.scoreEducation(tc.candidate, tc.required); !almostEqual(got, tc.score) {
			t.Fatalf("%s: score = %v, want %v", tc.name, got, tc.score)
		}
	}
}

func TestScoreSalary(t *testing.T) {
	e := newTestEngine(nil, nil, nil)

	cases := []struct {
		name        string
		expectation *int
		jobMin      *int
		jobMax      *int
		score       float64
		compatible  bool
	}{
		{"no expectation", nil, intPtr(80000), intPtr(120000), 1.0, true},
		{"no band", intPtr(100000), nil, nil, 1.0, true},
		{"half-open band", intPtr(100000), intPtr(80000), nil, 0.7, true},
		{"within band", intPtr(110000), intPtr(80000), intPtr(120000), 1.0, true},
		{"small stretch", intPtr(130000), intPtr(80000), intPtr(120000), 0.8, true},
		{"large stretch", intPtr(140000), intPtr(80000), intPtr(120000), 0.6, false},
		{"out of reach", intPtr(200000), intPtr(80000), intPtr(120000), 0.3, false},
	}

	for _, tc := range cases {
		score, compatible := e.scoreSalary(tc.expectation, tc.jobMin, tc.jobMax)
		if !almostEqual(score, tc.score) {
			t.Fatalf("%s: score = %v, want %v", tc.name, score, tc.score)
		}
		if compatible != tc.compatible {
			t.Fatalf("%s: compatible = %v, want %v", tc.name, compatible, tc.compatible)
		}
	}
}

func TestRecommendationTiers(t *testing.T) {
	cases := []struct {
		score float64
		want  matching.Recommendation
	}{
		{0.95, matching.RecommendationExcellent},
		{0.85, matching.RecommendationExcellent},
		{0.84, matching.RecommendationStrong},
		{0.75, matching.RecommendationStrong},
		{0.74, matching.RecommendationGood},
		{0.65, matching.RecommendationGood},
		{0.64, matching.RecommendationPotential},
		{0.5, matching.RecommendationPotential},
		{0.49, matching.RecommendationPoor},
		{0, matching.RecommendationPoor},
	}
	for _, tc := range cases {
		if got := matching.RecommendationFor(tc.score); got != tc.want {
			t.Fatalf("RecommendationFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

// ============================================================================
// Rank
// ============================================================================

func rankFixture() (*Engine, *fakeMatchRepo) {
	posting := &job.JobRequirement{
		ID:             "job-1",
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Python"},
		ExperienceMin:  2,
		RemoteOK:       true,
	}
	jobs := &fakeJobRepo{postings: map[kernel.JobID]*job.JobRequirement{"job-1": posting}}

	candidates := &fakeCandidateRepo{pool: []*candidate.CandidateProfile{
		{ID: "cand-weak", Name: "Weak", Skills: []string{"Rust"}, ExperienceYears: 5},
		{ID: "cand-best", Name: "Best", Skills: []string{"Python"}, ExperienceYears: 5},
		{ID: "cand-junior", Name: "Junior", Skills: []string{"Python"}, ExperienceYears: 0},
	}}

	results := &fakeMatchRepo{}
	return newTestEngine(jobs, candidates, results), results
}

func TestRankFiltersSortsAndPersists(t *testing.T) {
	e, repo := rankFixture()

	results, err := e.Rank(context.Background(), "job-1", 0.65, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results above threshold, got %d", len(results))
	}
	if results[0].CandidateID != "cand-best" || results[1].CandidateID != "cand-junior" {
		t.Fatalf("unexpected ranking order: %s, %s", results[0].CandidateID, results[1].CandidateID)
	}
	if results[0].OverallScore < results[1].OverallScore {
		t.Fatalf("results not sorted descending: %v then %v", results[0].OverallScore, results[1].OverallScore)
	}

	if len(repo.upserts) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserts))
	}
	if len(repo.upserts[0]) != 2 {
		t.Fatalf("expected 2 persisted results, got %d", len(repo.upserts[0]))
	}
}

func TestRankHonorsLimit(t *testing.T) {
	e, _ := rankFixture()

	results, err := e.Rank(context.Background(), "job-1", 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected limit of 1, got %d results", len(results))
	}
	if results[0].CandidateID != "cand-best" {
		t.Fatalf("expected best candidate first, got %s", results[0].CandidateID)
	}
}

func TestRankValidatesArguments(t *testing.T) {
	e, repo := rankFixture()

	if _, err := e.Rank(context.Background(), "job-1", 0.5, 0); err == nil {
		t.Fatalf("expected error for non-positive limit")
	}
	if _, err := e.Rank(context.Background(), "job-1", 1.5, 10); err == nil {
		t.Fatalf("expected error for out-of-range min score")
	}
	if _, err := e.Rank(context.Background(), "job-1", -0.1, 10); err == nil {
		t.Fatalf("expected error for negative min score")
	}
	if _, err := e.Rank(context.Background(), "missing-job", 0.5, 10); err == nil {
		t.Fatalf("expected error for unknown job")
	}
	if len(repo.upserts) != 0 {
		t.Fatalf("no results should persist on validation failure")
	}
}

func TestRankSkipsUpsertWhenNothingQualifies(t *testing.T) {
	posting := &job.JobRequirement{
		ID:             "job-1",
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Python"},
		ExperienceMin:  2,
		RemoteOK:       true,
	}
	jobs := &fakeJobRepo{postings: map[kernel.JobID]*job.JobRequirement{"job-1": posting}}
	candidates := &fakeCandidateRepo{pool: []*candidate.CandidateProfile{
		{ID: "cand-weak", Name: "Weak", Skills: []string{"Rust"}, ExperienceYears: 5},
	}}
	repo := &fakeMatchRepo{}
	e := newTestEngine(jobs, candidates, repo)

	results, err := e.Rank(context.Background(), "job-1", 0.9, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no qualifying results, got %d", len(results))
	}
	if len(repo.upserts) != 0 {
		t.Fatalf("empty result set must not be persisted")
	}
}

func TestScoreBatch(t *testing.T) {
	posting := &job.JobRequirement{
		ID:             "job-1",
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Python"},
		RemoteOK:       true,
	}
	repo := &fakeMatchRepo{}
	e := newTestEngine(nil, nil, repo)

	if err := e.ScoreBatch(context.Background(), nil, posting); err != nil {
		t.Fatalf("unexpected error for empty batch: %v", err)
	}
	if len(repo.upserts) != 0 {
		t.Fatalf("empty batch must not persist anything")
	}

	profiles := []*candidate.CandidateProfile{
		{ID: "a", Name: "A", Skills: []string{"Python"}},
		{ID: "b", Name: "B", Skills: []string{"Go"}},
	}
	if err := e.ScoreBatch(context.Background(), profiles, posting); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.upserts) != 1 || len(repo.upserts[0]) != 2 {
		t.Fatalf("expected one upsert with 2 results, got %v", repo.upserts)
	}
}

func TestTopMatchesRequiresExistingJob(t *testing.T) {
	e, _ := rankFixture()

	if _, err := e.TopMatches(context.Background(), "missing-job", 5); err == nil {
		t.Fatalf("expected error for unknown job")
	}

	if _, err := e.Rank(context.Background(), "job-1", 0, 10); err != nil {
		t.Fatalf("unexpected rank error: %v", err)
	}
	matches, err := e.TopMatches(context.Background(), "job-1", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) > 2 {
		t.Fatalf("expected at most 2 matches, got %d", len(matches))
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
