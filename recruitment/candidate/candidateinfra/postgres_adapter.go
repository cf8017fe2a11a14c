package candidateinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/logx"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{db: db}
}

const candidateColumns = `
	id, name, email, phone, location, current_position,
	experience_years, skills, certifications, languages,
	education_level, salary_expectation, resume_text,
	overall_score, technical_score, source, created_at, updated_at`

const insertCandidateQuery = `
	INSERT INTO candidates (
		id, name, email, phone, location, current_position,
		experience_years, skills, certifications, languages,
		education_level, salary_expectation, resume_text,
		overall_score, technical_score, source, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10,
		$11, $12, $13,
		$14, $15, $16, $17, $18
	)`

// ============================================================================
// CRUD Operations
// ============================================================================

// Create persists a single profile and returns the assigned ID.
func (r *PostgresCandidateRepository) Create(ctx context.Context, profile *candidate.CandidateProfile) (kernel.CandidateID, error) {
	id, args, err := insertArgs(profile)
	if err != nil {
		return "", candidate.ErrInvalidProfileData().WithDetail("error", err.Error())
	}

	if _, err := r.db.ExecContext(ctx, insertCandidateQuery, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return "", candidate.ErrDuplicateEmail().
				WithDetail("email", profile.Email.String())
		}
		logx.Errorf("Failed to create candidate: %v", err)
		return "", candidate.ErrStorageFailed().WithDetail("error", err.Error())
	}

	profile.ID = id
	return id, nil
}

// CreateBulk persists profiles inside one transaction. The batch succeeds or
// fails as a unit; callers fall back to per-record inserts on failure.
func (r *PostgresCandidateRepository) CreateBulk(ctx context.Context, profiles []*candidate.CandidateProfile) ([]kernel.CandidateID, error) {
	if len(profiles) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, candidate.ErrBulkStorageFailed().WithDetail("error", err.Error())
	}
	defer tx.Rollback()

	ids := make([]kernel.CandidateID, 0, len(profiles))
	for _, profile := range profiles {
		id, args, err := insertArgs(profile)
		if err != nil {
			return nil, candidate.ErrInvalidProfileData().WithDetail("error", err.Error())
		}
		if _, err := tx.ExecContext(ctx, insertCandidateQuery, args...); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				return nil, candidate.ErrDuplicateEmail().
					WithDetail("email", profile.Email.String())
			}
			return nil, candidate.ErrBulkStorageFailed().WithDetail("error", err.Error())
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		return nil, candidate.ErrBulkStorageFailed().WithDetail("error", err.Error())
	}

	for i, profile := range profiles {
		profile.ID = ids[i]
	}
	return ids, nil
}

// GetByID retrieves a candidate by ID.
func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.CandidateProfile, error) {
	query := `SELECT` + candidateColumns + ` FROM candidates WHERE id = $1`

	var row candidateRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound().WithDetail("candidate_id", id.String())
		}
		return nil, candidate.ErrStorageFailed().WithDetail("error", err.Error())
	}
	return row.ToDomain()
}

// GetByEmail retrieves a candidate by normalized email.
func (r *PostgresCandidateRepository) GetByEmail(ctx context.Context, email kernel.Email) (*candidate.CandidateProfile, error) {
	query := `SELECT` + candidateColumns + ` FROM candidates WHERE email = $1`

	var row candidateRow
	if err := r.db.GetContext(ctx, &row, query, email.Normalize().String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrCandidateNotFound().WithDetail("email", email.String())
		}
		return nil, candidate.ErrStorageFailed().WithDetail("error", err.Error())
	}
	return row.ToDomain()
}

// ============================================================================
// Pool & Search
// ============================================================================

// GetPool fetches candidates eligible for matching against a job. Candidates
// with an existing application to the job are excluded and the result is
// ordered by overall score, capped at MaxPoolSize.
func (r *PostgresCandidateRepository) GetPool(ctx context.Context, jobID kernel.JobID, filters candidate.PoolFilters) ([]*candidate.CandidateProfile, error) {
	query := `SELECT` + candidateColumns + `
		FROM candidates
		WHERE NOT EXISTS (
			SELECT 1 FROM applications a
			WHERE a.candidate_id = candidates.id AND a.job_id = $1
		)`

	args := []any{jobID.String()}
	argPos := 2

	if filters.ExperienceMin != nil {
		query += fmt.Sprintf(" AND experience_years >= $%d", argPos)
		args = append(args, *filters.ExperienceMin)
		argPos++
	}
	if filters.Location != nil && *filters.Location != "" {
		query += fmt.Sprintf(" AND location ILIKE $%d", argPos)
		args = append(args, "%"+*filters.Location+"%")
		argPos++
	}
	if filters.SalaryMax != nil {
		query += fmt.Sprintf(" AND (salary_expectation IS NULL OR salary_expectation <= $%d)", argPos)
		args = append(args, *filters.SalaryMax)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY overall_score DESC LIMIT $%d", argPos)
	args = append(args, candidate.MaxPoolSize)

	var rows []candidateRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		logx.Errorf("Failed to fetch candidate pool for job %s: %v", jobID, err)
		return nil, candidate.ErrPoolFetchFailed().WithDetail("job_id", jobID.String())
	}

	profiles := make([]*candidate.CandidateProfile, 0, len(rows))
	for i := range rows {
		profile, err := rows[i].ToDomain()
		if err != nil {
			return nil, candidate.ErrStorageFailed().WithDetail("error", err.Error())
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// Search lists candidates matching the request with pagination.
func (r *PostgresCandidateRepository) Search(ctx context.Context, req candidate.SearchRequest) (*kernel.Paginated[candidate.CandidateProfile], error) {
	conditions := []string{"1=1"}
	args := []any{}
	argPos := 1

	if req.Skill != "" {
		conditions = append(conditions, fmt.Sprintf("skills @> $%d::jsonb", argPos))
		skillJSON := fmt.Sprintf(`["%s"]`, strings.ReplaceAll(req.Skill, `"`, `\"`))
		args = append(args, skillJSON)
		argPos++
	}
	if req.ExperienceMin != nil {
		conditions = append(conditions, fmt.Sprintf("experience_years >= $%d", argPos))
		args = append(args, *req.ExperienceMin)
		argPos++
	}
	if req.ExperienceMax != nil {
		conditions = append(conditions, fmt.Sprintf("experience_years <= $%d", argPos))
		args = append(args, *req.ExperienceMax)
		argPos++
	}
	if req.EducationLevel != "" {
		conditions = append(conditions, fmt.Sprintf("education_level = $%d", argPos))
		args = append(args, string(req.EducationLevel))
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM candidates WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, candidate.ErrStorageFailed().WithDetail("error", err.Error())
	}

	pagination := req.Pagination
	if pagination.PageSize <= 0 {
		pagination = kernel.DefaultPagination()
	}
	offset := (pagination.Page - 1) * pagination.PageSize

	query := fmt.Sprintf(`SELECT`+candidateColumns+`
		FROM candidates
		WHERE %s
		ORDER BY overall_score DESC, created_at DESC
		LIMIT $%d OFFSET $%d`, where, argPos, argPos+1)
	args = append(args, pagination.PageSize, offset)

	var rows []candidateRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, candidate.ErrStorageFailed().WithDetail("error", err.Error())
	}

	items := make([]candidate.CandidateProfile, 0, len(rows))
	for i := range rows {
		profile, err := rows[i].ToDomain()
		if err != nil {
			return nil, candidate.ErrStorageFailed().WithDetail("error", err.Error())
		}
		items = append(items, *profile)
	}

	return kernel.NewPaginated(items, pagination, total), nil
}

// insertArgs assigns the profile an ID when missing, stamps timestamps and
// builds the positional arguments for insertCandidateQuery.
func insertArgs(profile *candidate.CandidateProfile) (kernel.CandidateID, []any, error) {
	id := profile.ID
	if id.IsEmpty() {
		id = kernel.CandidateID(uuid.NewString())
	}

	skills, certifications, languages, err := marshalListFields(profile)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	createdAt := profile.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	args := []any{
		id.String(),
		profile.Name,
		nullString(profile.Email.Normalize().String()),
		nullString(profile.Phone.String()),
		nullString(profile.Location.String()),
		nullString(profile.CurrentPosition),
		profile.ExperienceYears,
		skills,
		certifications,
		languages,
		nullString(string(profile.EducationLevel)),
		nullInt(profile.SalaryExpectation),
		profile.ResumeText,
		profile.OverallScore,
		profile.TechnicalScore,
		nullString(profile.Source),
		createdAt,
		now,
	}
	return id, args, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
