package ingest

import (
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
)

// Validation issue messages. CriticalIssues drop the candidate from
// persistence; everything else is a warning carried on the result.
const (
	IssueInvalidName       = "Invalid or missing name"
	IssueMissingEmail      = "Missing email address"
	IssueInvalidEmail      = "Invalid email format"
	IssueDuplicateEmail    = "Duplicate email address"
	IssueNoSkills          = "No skills extracted"
	IssueInvalidExperience = "Invalid experience years"
)

// CriticalIssues lists the validation failures that block persistence.
var CriticalIssues = []string{
	IssueInvalidName,
	IssueDuplicateEmail,
}

// Item is one résumé handed to the pipeline: base64-encoded file content
// plus its filename.
type Item struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ValidationResult captures the validation outcome for one parsed profile.
type ValidationResult struct {
	Filename        string   `json:"filename"`
	CandidateName   string   `json:"candidate_name"`
	Email           string   `json:"email"`
	Success         bool     `json:"success"`
	Issues          []string `json:"issues"`
	SkillsCount     int      `json:"skills_count"`
	ExperienceYears int      `json:"experience_years"`
}

// HasCriticalIssue reports whether any recorded issue blocks persistence.
func (v *ValidationResult) HasCriticalIssue() bool {
	for _, issue := range v.Issues {
		for _, critical := range CriticalIssues {
			if issue == critical {
				return true
			}
		}
	}
	return false
}

// ProcessingResult is the per-item outcome of a bulk run. Every input item
// yields exactly one result, in input order.
type ProcessingResult struct {
	Filename         string             `json:"filename"`
	CandidateName    string             `json:"candidate_name"`
	Email            string             `json:"email"`
	Success          bool               `json:"success"`
	CandidateID      kernel.CandidateID `json:"candidate_id,omitempty"`
	SkillsCount      int                `json:"skills_count"`
	ExperienceYears  int                `json:"experience_years"`
	ValidationIssues []string           `json:"validation_issues"`
	StorageError     string             `json:"storage_error,omitempty"`
	Message          string             `json:"message"`
}

// IssueCount pairs a validation issue with its frequency.
type IssueCount struct {
	Issue string `json:"issue"`
	Count int    `json:"count"`
}

// Distribution summarizes a numeric series over successful results.
type Distribution struct {
	Min    int `json:"min"`
	Max    int `json:"max"`
	Median int `json:"median"`
}

// Statistics is the aggregate summary of one bulk run.
type Statistics struct {
	TotalProcessed         int          `json:"total_processed"`
	Successful             int          `json:"successful"`
	Failed                 int          `json:"failed"`
	SuccessRate            float64      `json:"success_rate"`
	AvgSkillsPerCandidate  float64      `json:"avg_skills_per_candidate"`
	AvgExperienceYears     float64      `json:"avg_experience_years"`
	CommonIssues           []IssueCount `json:"common_issues"`
	SkillDistribution      Distribution `json:"skill_distribution"`
	ExperienceDistribution Distribution `json:"experience_distribution"`
}

// ============================================================================
// Batch Jobs
// ============================================================================

// BatchStatus tracks an asynchronous batch through its lifecycle.
type BatchStatus string

const (
	BatchStatusPending    BatchStatus = "pending"
	BatchStatusProcessing BatchStatus = "processing"
	BatchStatusCompleted  BatchStatus = "completed"
	BatchStatusFailed     BatchStatus = "failed"
)

// BatchJob is an asynchronous bulk-ingestion run tracked in storage while a
// worker processes it off the queue.
type BatchJob struct {
	ID         kernel.BatchJobID `db:"id" json:"id"`
	Status     BatchStatus       `db:"status" json:"status"`
	JobID      *kernel.JobID     `db:"job_id" json:"job_id,omitempty"`
	TotalFiles int               `db:"total_files" json:"total_files"`

	Results    []ProcessingResult `db:"results" json:"results,omitempty"`
	Statistics *Statistics        `db:"statistics" json:"statistics,omitempty"`
	Error      string             `db:"error" json:"error,omitempty"`

	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}

// IsTerminal reports whether the batch has finished, successfully or not.
func (b *BatchJob) IsTerminal() bool {
	return b.Status == BatchStatusCompleted || b.Status == BatchStatusFailed
}

// QueuedBatch is the payload placed on the queue for workers.
type QueuedBatch struct {
	BatchID kernel.BatchJobID `json:"batch_id"`
	Items   []Item            `json:"items"`
	JobID   *kernel.JobID     `json:"job_id,omitempty"`
}
