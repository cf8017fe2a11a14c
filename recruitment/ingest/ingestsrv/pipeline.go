package ingestsrv

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/internal/extract"
	"github.com/ThirupathiS-45/Recruitment-Agent/internal/textx"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/logx"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/ingest"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/matching/matchingsrv"
)

// Config bounds the pipeline's parallelism and batch sizes.
type Config struct {
	MaxWorkers     int // concurrent extractions in flight
	ChunkSize      int // items joined per parallel chunk
	BatchSize      int // candidates per bulk insert
	ScoreBatchSize int // candidates per scoring sub-batch
}

// DefaultConfig returns the production pipeline parameters.
func DefaultConfig() Config {
	return Config{
		MaxWorkers:     20,
		ChunkSize:      100,
		BatchSize:      50,
		ScoreBatchSize: 100,
	}
}

// Pipeline runs the bulk résumé flow: parallel extraction, validation,
// batched persistence and optional match scoring. The outer call never
// fails for per-item problems; every input item yields one result.
type Pipeline struct {
	cfg        Config
	texts      textx.Extractor
	parser     *extract.Extractor
	candidates candidate.Repository
	jobs       job.Repository
	engine     *matchingsrv.Engine
}

func NewPipeline(
	cfg Config,
	texts textx.Extractor,
	parser *extract.Extractor,
	candidates candidate.Repository,
	jobs job.Repository,
	engine *matchingsrv.Engine,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		texts:      texts,
		parser:     parser,
		candidates: candidates,
		jobs:       jobs,
		engine:     engine,
	}
}

// storageOutcome records one candidate's persistence result, keyed back to
// its original input index.
type storageOutcome struct {
	inputIndex  int
	candidateID kernel.CandidateID
	profile     *candidate.CandidateProfile
	success     bool
	errMessage  string
}

// Process runs the full pipeline over a batch. files carries base64-encoded
// documents aligned with filenames; a mismatch is a caller error. When jobID
// is set, stored candidates are scored against that job and a missing job is
// surfaced before any work happens.
func (p *Pipeline) Process(ctx context.Context, files, filenames []string, jobID *kernel.JobID) ([]ingest.ProcessingResult, error) {
	if len(files) != len(filenames) {
		return nil, ingest.ErrLengthMismatch().
			WithDetail("files", fmt.Sprintf("%d", len(files))).
			WithDetail("filenames", fmt.Sprintf("%d", len(filenames)))
	}
	if len(files) == 0 {
		return nil, ingest.ErrEmptyBatch()
	}

	var posting *job.JobRequirement
	if jobID != nil {
		var err error
		posting, err = p.jobs.GetByID(ctx, *jobID)
		if err != nil {
			return nil, err
		}
	}

	start := time.Now()
	logx.Infof("Starting bulk processing of %d resumes", len(files))

	profiles := p.parseParallel(files, filenames)
	logx.Infof("Resume parsing completed in %.2fs", time.Since(start).Seconds())

	validations, accepted := p.validate(profiles, filenames)

	outcomes := p.store(ctx, accepted)

	if posting != nil {
		p.scoreStored(ctx, outcomes, posting)
	}

	results := compileResults(validations, outcomes, filenames)

	successCount := 0
	for _, r := range results {
		if r.Success {
			successCount++
		}
	}
	logx.Infof("Bulk processing completed: %d/%d successful in %.2fs",
		successCount, len(files), time.Since(start).Seconds())

	return results, nil
}

// ============================================================================
// Phase 1: Parallel Extraction
// ============================================================================

// parseParallel extracts profiles with bounded concurrency, joining after
// each chunk. Results land at their input index so completion order never
// affects output order.
func (p *Pipeline) parseParallel(files, filenames []string) []*candidate.CandidateProfile {
	profiles := make([]*candidate.CandidateProfile, len(files))
	sem := make(chan struct{}, p.cfg.MaxWorkers)

	for chunkStart := 0; chunkStart < len(files); chunkStart += p.cfg.ChunkSize {
		chunkEnd := chunkStart + p.cfg.ChunkSize
		if chunkEnd > len(files) {
			chunkEnd = len(files)
		}

		var wg sync.WaitGroup
		for i := chunkStart; i < chunkEnd; i++ {
			wg.Add(1)
			sem <- struct{}{}
			go func(idx int) {
				defer wg.Done()
				defer func() { <-sem }()
				profiles[idx] = p.parseOne(files[idx], filenames[idx])
			}(i)
		}
		wg.Wait()
	}

	return profiles
}

// parseOne never fails: decode, extraction or parse problems degrade to a
// flagged failed profile.
func (p *Pipeline) parseOne(content, filename string) (profile *candidate.CandidateProfile) {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("Panic parsing resume %s: %v", filename, r)
			profile = candidate.NewFailedProfile(filename, "Resume Upload - Failed")
		}
	}()

	raw, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		logx.Errorf("Error decoding file %s: %v", filename, err)
		return candidate.NewFailedProfile(filename, "Resume Upload - Failed")
	}

	text := p.texts.ExtractText(raw, filename)
	if !extract.UsableText(text) {
		logx.Warnf("Insufficient text extracted from %s", filename)
		return candidate.NewFailedProfile(filename, "Resume Upload - Failed")
	}

	return p.parser.Parse(text, filename)
}

// ============================================================================
// Phase 2: Validation
// ============================================================================

// acceptedProfile is a profile that passed critical validation, tagged with
// its input index for later joins.
type acceptedProfile struct {
	inputIndex int
	profile    *candidate.CandidateProfile
}

// validate checks every profile and splits critical failures from warnings.
// Duplicate emails are checked against already-accepted profiles in this
// batch only, first occurrence wins.
func (p *Pipeline) validate(profiles []*candidate.CandidateProfile, filenames []string) ([]ingest.ValidationResult, []acceptedProfile) {
	validations := make([]ingest.ValidationResult, 0, len(profiles))
	accepted := make([]acceptedProfile, 0, len(profiles))
	seenEmails := make(map[string]bool)

	for i, profile := range profiles {
		issues := []string{}

		failed := profile.IsExtractionFailed()
		if profile.Name == "" || failed {
			issues = append(issues, ingest.IssueInvalidName)
		}

		if profile.Email.IsEmpty() && !failed {
			issues = append(issues, ingest.IssueMissingEmail)
		}
		if !profile.Email.IsEmpty() && !profile.Email.IsValid() {
			issues = append(issues, ingest.IssueInvalidEmail)
		}

		if !profile.Email.IsEmpty() {
			if seenEmails[profile.Email.Normalize().String()] {
				issues = append(issues, ingest.IssueDuplicateEmail)
			}
		}

		if len(profile.Skills) == 0 {
			issues = append(issues, ingest.IssueNoSkills)
		}

		if !profile.HasValidExperience() {
			issues = append(issues, ingest.IssueInvalidExperience)
		}

		result := ingest.ValidationResult{
			Filename:        filenames[i],
			CandidateName:   profile.Name,
			Email:           profile.Email.String(),
			Issues:          issues,
			SkillsCount:     len(profile.Skills),
			ExperienceYears: profile.ExperienceYears,
		}
		result.Success = !result.HasCriticalIssue()

		if result.Success {
			accepted = append(accepted, acceptedProfile{inputIndex: i, profile: profile})
			if !profile.Email.IsEmpty() {
				seenEmails[profile.Email.Normalize().String()] = true
			}
		}

		validations = append(validations, result)
	}

	logx.Infof("Validation: %d/%d candidates passed", len(accepted), len(profiles))
	return validations, accepted
}

// ============================================================================
// Phase 3: Batched Persistence
// ============================================================================

// store writes accepted candidates in transactional batches. A failed batch
// degrades to serialized per-record inserts so one bad row cannot sink its
// siblings.
func (p *Pipeline) store(ctx context.Context, accepted []acceptedProfile) []storageOutcome {
	outcomes := make([]storageOutcome, 0, len(accepted))

	for batchStart := 0; batchStart < len(accepted); batchStart += p.cfg.BatchSize {
		batchEnd := batchStart + p.cfg.BatchSize
		if batchEnd > len(accepted) {
			batchEnd = len(accepted)
		}
		batch := accepted[batchStart:batchEnd]

		profiles := make([]*candidate.CandidateProfile, 0, len(batch))
		for _, a := range batch {
			profiles = append(profiles, a.profile)
		}

		ids, err := p.candidates.CreateBulk(ctx, profiles)
		if err == nil {
			for j, a := range batch {
				outcomes = append(outcomes, storageOutcome{
					inputIndex:  a.inputIndex,
					candidateID: ids[j],
					profile:     a.profile,
					success:     true,
				})
			}
			logx.Infof("Stored batch %d: %d candidates", batchStart/p.cfg.BatchSize+1, len(ids))
			continue
		}

		logx.Errorf("Error storing batch %d: %v", batchStart/p.cfg.BatchSize+1, err)
		for _, a := range batch {
			id, indivErr := p.candidates.Create(ctx, a.profile)
			if indivErr != nil {
				logx.Errorf("Error storing individual candidate %s: %v", a.profile.Name, indivErr)
				outcomes = append(outcomes, storageOutcome{
					inputIndex: a.inputIndex,
					profile:    a.profile,
					errMessage: indivErr.Error(),
				})
				continue
			}
			outcomes = append(outcomes, storageOutcome{
				inputIndex:  a.inputIndex,
				candidateID: id,
				profile:     a.profile,
				success:     true,
			})
		}
	}

	return outcomes
}

// ============================================================================
// Phase 4: Match Scoring
// ============================================================================

// scoreStored scores successfully stored candidates against the posting in
// sub-batches. Scoring failures are logged, never fatal to the run.
func (p *Pipeline) scoreStored(ctx context.Context, outcomes []storageOutcome, posting *job.JobRequirement) {
	stored := make([]*candidate.CandidateProfile, 0, len(outcomes))
	for _, o := range outcomes {
		if o.success {
			stored = append(stored, o.profile)
		}
	}
	if len(stored) == 0 {
		logx.Warnf("No successful candidates to generate match scores for")
		return
	}

	for i := 0; i < len(stored); i += p.cfg.ScoreBatchSize {
		end := i + p.cfg.ScoreBatchSize
		if end > len(stored) {
			end = len(stored)
		}
		if err := p.engine.ScoreBatch(ctx, stored[i:end], posting); err != nil {
			logx.Errorf("Error generating match scores for job %s: %v", posting.ID, err)
		}
	}
}

// ============================================================================
// Result Compilation
// ============================================================================

// compileResults joins validation and storage outcomes back to input order.
func compileResults(validations []ingest.ValidationResult, outcomes []storageOutcome, filenames []string) []ingest.ProcessingResult {
	outcomeByIndex := make(map[int]storageOutcome, len(outcomes))
	for _, o := range outcomes {
		outcomeByIndex[o.inputIndex] = o
	}

	results := make([]ingest.ProcessingResult, 0, len(validations))
	for i, validation := range validations {
		outcome, stored := outcomeByIndex[i]

		success := validation.Success && stored && outcome.success

		result := ingest.ProcessingResult{
			Filename:         filenames[i],
			CandidateName:    validation.CandidateName,
			Email:            validation.Email,
			Success:          success,
			SkillsCount:      validation.SkillsCount,
			ExperienceYears:  validation.ExperienceYears,
			ValidationIssues: validation.Issues,
		}
		if stored {
			result.CandidateID = outcome.candidateID
			result.StorageError = outcome.errMessage
		}
		result.Message = resultMessage(success, validation.Issues, result.StorageError,
			validation.SkillsCount, validation.ExperienceYears)

		results = append(results, result)
	}

	return results
}

func resultMessage(success bool, issues []string, storageError string, skillsCount, experienceYears int) string {
	if success {
		return fmt.Sprintf("Successfully processed - %d skills, %d years experience", skillsCount, experienceYears)
	}

	messages := []string{}
	if len(issues) > 0 {
		messages = append(messages, "Validation issues: "+strings.Join(issues, ", "))
	}
	if storageError != "" {
		messages = append(messages, "Storage error: "+storageError)
	}
	if len(messages) == 0 {
		return "Processing failed"
	}
	return strings.Join(messages, "; ")
}
