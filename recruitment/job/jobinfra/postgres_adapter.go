package jobinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/ThirupathiS-45/Recruitment-Agent/pkg/kernel"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/candidate"
	"github.com/ThirupathiS-45/Recruitment-Agent/recruitment/job"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PostgresJobRepository struct {
	db *sqlx.DB
}

func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

type jobRow struct {
	ID                   string         `db:"id"`
	Title                string         `db:"title"`
	RequiredSkills       []byte         `db:"required_skills"`
	PreferredSkills      []byte         `db:"preferred_skills"`
	ExperienceMin        int            `db:"experience_min"`
	ExperienceMax        sql.NullInt64  `db:"experience_max"`
	Location             sql.NullString `db:"location"`
	RemoteOK             bool           `db:"remote_ok"`
	EducationRequirement sql.NullString `db:"education_requirement"`
	SalaryMin            sql.NullInt64  `db:"salary_min"`
	SalaryMax            sql.NullInt64  `db:"salary_max"`
	Status               string         `db:"status"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

func (r *jobRow) ToDomain() (*job.JobRequirement, error) {
	posting := &job.JobRequirement{
		ID:                   kernel.JobID(r.ID),
		Title:                r.Title,
		ExperienceMin:        r.ExperienceMin,
		Location:             kernel.Location(r.Location.String),
		RemoteOK:             r.RemoteOK,
		EducationRequirement: candidate.EducationLevel(r.EducationRequirement.String),
		Status:               job.Status(r.Status),
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
	if r.ExperienceMax.Valid {
		max := int(r.ExperienceMax.Int64)
		posting.ExperienceMax = &max
	}
	if r.SalaryMin.Valid {
		min := int(r.SalaryMin.Int64)
		posting.SalaryMin = &min
	}
	if r.SalaryMax.Valid {
		max := int(r.SalaryMax.Int64)
		posting.SalaryMax = &max
	}
	if err := json.Unmarshal(r.RequiredSkills, &posting.RequiredSkills); err != nil {
		return nil, job.ErrStorageFailed().WithDetail("error", err.Error())
	}
	if err := json.Unmarshal(r.PreferredSkills, &posting.PreferredSkills); err != nil {
		return nil, job.ErrStorageFailed().WithDetail("error", err.Error())
	}
	return posting, nil
}

const jobColumns = `
	id, title, required_skills, preferred_skills,
	experience_min, experience_max, location, remote_ok,
	education_requirement, salary_min, salary_max,
	status, created_at, updated_at`

// Create persists a posting and returns the assigned ID.
func (r *PostgresJobRepository) Create(ctx context.Context, posting *job.JobRequirement) (kernel.JobID, error) {
	id := posting.ID
	if id.IsEmpty() {
		id = kernel.JobID(uuid.NewString())
	}

	required, err := json.Marshal(orEmpty(posting.RequiredSkills))
	if err != nil {
		return "", job.ErrInvalidJobData().WithDetail("field", "required_skills")
	}
	preferred, err := json.Marshal(orEmpty(posting.PreferredSkills))
	if err != nil {
		return "", job.ErrInvalidJobData().WithDetail("field", "preferred_skills")
	}

	query := `
		INSERT INTO jobs (
			id, title, required_skills, preferred_skills,
			experience_min, experience_max, location, remote_ok,
			education_requirement, salary_min, salary_max,
			status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11,
			$12, NOW(), NOW()
		)`

	_, err = r.db.ExecContext(ctx, query,
		id.String(),
		posting.Title,
		required,
		preferred,
		posting.ExperienceMin,
		nullInt(posting.ExperienceMax),
		nullString(posting.Location.String()),
		posting.RemoteOK,
		nullString(string(posting.EducationRequirement)),
		nullInt(posting.SalaryMin),
		nullInt(posting.SalaryMax),
		string(posting.Status),
	)
	if err != nil {
		return "", job.ErrStorageFailed().WithDetail("error", err.Error())
	}

	posting.ID = id
	return id, nil
}

// GetByID retrieves a posting by ID.
func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.JobRequirement, error) {
	query := `SELECT` + jobColumns + ` FROM jobs WHERE id = $1`

	var row jobRow
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id.String())
		}
		return nil, job.ErrStorageFailed().WithDetail("error", err.Error())
	}
	return row.ToDomain()
}

// List pages through postings, newest first.
func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.JobRequirement], error) {
	if pagination.PageSize <= 0 {
		pagination = kernel.DefaultPagination()
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM jobs`); err != nil {
		return nil, job.ErrStorageFailed().WithDetail("error", err.Error())
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	query := `SELECT` + jobColumns + ` FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	var rows []jobRow
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, offset); err != nil {
		return nil, job.ErrStorageFailed().WithDetail("error", err.Error())
	}

	items := make([]job.JobRequirement, 0, len(rows))
	for i := range rows {
		posting, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, *posting)
	}
	return kernel.NewPaginated(items, pagination, total), nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
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
