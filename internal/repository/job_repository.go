package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsworks/employment-service/internal/domain"
)

// JobFilter narrows job posting listings.
type JobFilter struct {
	Status       *domain.JobStatus
	DepartmentID *string
	Search       string
	Page         Page
}

// JobRepository persists job postings.
type JobRepository interface {
	Create(ctx context.Context, job *domain.JobPosting) error
	Update(ctx context.Context, job *domain.JobPosting) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.JobPosting, error)
	List(ctx context.Context, filter JobFilter) ([]domain.JobPosting, int, error)
}

type jobRepository struct {
	db DBTX
}

// NewJobRepository builds the repository.
func NewJobRepository(db DBTX) JobRepository {
	return &jobRepository{db: db}
}

const jobColumns = `id, title, department_id, description, requirements, location, employment_type, openings,
        status, posted_by, created_at, updated_at`

func (r *jobRepository) Create(ctx context.Context, job *domain.JobPosting) error {
	const query = `
        INSERT INTO job_postings (title, department_id, description, requirements, location, employment_type,
            openings, status, posted_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		job.Title,
		job.DepartmentID,
		job.Description,
		job.Requirements,
		job.Location,
		job.EmploymentType,
		job.Openings,
		job.Status,
		job.PostedBy,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobPosting) error {
	const query = `
        UPDATE job_postings SET title=$1, department_id=$2, description=$3, requirements=$4, location=$5,
            employment_type=$6, openings=$7, status=$8, updated_at=NOW()
        WHERE id=$9
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		job.Title,
		job.DepartmentID,
		job.Description,
		job.Requirements,
		job.Location,
		job.EmploymentType,
		job.Openings,
		job.Status,
		job.ID,
	).Scan(&job.UpdatedAt)
}

func (r *jobRepository) Delete(ctx context.Context, id string) error {
	return affectedOrNoRows(r.db.Exec(ctx, `DELETE FROM job_postings WHERE id=$1`, id))
}

func (r *jobRepository) GetByID(ctx context.Context, id string) (*domain.JobPosting, error) {
	job, err := scanJob(r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *jobRepository) List(ctx context.Context, filter JobFilter) ([]domain.JobPosting, int, error) {
	var where whereBuilder
	if filter.Status != nil {
		where.add("status=$%d", *filter.Status)
	}
	if filter.DepartmentID != nil {
		where.add("department_id=$%d", *filter.DepartmentID)
	}
	if filter.Search != "" {
		where.add(`(LOWER(title) LIKE $%[1]d ESCAPE '\' OR LOWER(description) LIKE $%[1]d ESCAPE '\')`, likePattern(filter.Search))
	}

	listSQL, countSQL := where.paged(`SELECT `+jobColumns+` FROM job_postings`, `SELECT COUNT(*) FROM job_postings`,
		"created_at DESC", filter.Page)
	total, err := count(ctx, r.db, countSQL, where.args)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, listSQL, where.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.JobPosting{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, job)
	}
	return result, total, rows.Err()
}

func scanJob(row pgx.Row) (domain.JobPosting, error) {
	var job domain.JobPosting
	err := row.Scan(
		&job.ID,
		&job.Title,
		&job.DepartmentID,
		&job.Description,
		&job.Requirements,
		&job.Location,
		&job.EmploymentType,
		&job.Openings,
		&job.Status,
		&job.PostedBy,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	return job, err
}
