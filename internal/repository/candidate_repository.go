package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsworks/employment-service/internal/domain"
)

// CandidateFilter narrows candidate listings for one job.
type CandidateFilter struct {
	JobID  string
	Status *domain.CandidateStatus
	Page   Page
}

// CandidateRepository persists job applications.
type CandidateRepository interface {
	Create(ctx context.Context, c *domain.Candidate) error
	Update(ctx context.Context, c *domain.Candidate) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Candidate, error)
	List(ctx context.Context, filter CandidateFilter) ([]domain.Candidate, int, error)
}

type candidateRepository struct {
	db DBTX
}

// NewCandidateRepository builds the repository.
func NewCandidateRepository(db DBTX) CandidateRepository {
	return &candidateRepository{db: db}
}

const candidateColumns = `id, job_id, name, email, phone, resume_url, cover_letter, status, notes, applied_at, updated_at`

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	const query = `
        INSERT INTO candidates (job_id, name, email, phone, resume_url, cover_letter, status, notes)
        VALUES ($1,$2,LOWER($3),$4,$5,$6,$7,$8)
        RETURNING id, email, applied_at, updated_at`
	return r.db.QueryRow(ctx, query,
		c.JobID,
		c.Name,
		c.Email,
		c.Phone,
		c.ResumeURL,
		c.CoverLetter,
		c.Status,
		c.Notes,
	).Scan(&c.ID, &c.Email, &c.AppliedAt, &c.UpdatedAt)
}

func (r *candidateRepository) Update(ctx context.Context, c *domain.Candidate) error {
	const query = `
        UPDATE candidates SET name=$1, phone=$2, resume_url=$3, cover_letter=$4, status=$5, notes=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		c.Name,
		c.Phone,
		c.ResumeURL,
		c.CoverLetter,
		c.Status,
		c.Notes,
		c.ID,
	).Scan(&c.UpdatedAt)
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	return affectedOrNoRows(r.db.Exec(ctx, `DELETE FROM candidates WHERE id=$1`, id))
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	c, err := scanCandidate(r.db.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepository) List(ctx context.Context, filter CandidateFilter) ([]domain.Candidate, int, error) {
	var where whereBuilder
	where.add("job_id=$%d", filter.JobID)
	if filter.Status != nil {
		where.add("status=$%d", *filter.Status)
	}

	listSQL, countSQL := where.paged(`SELECT `+candidateColumns+` FROM candidates`, `SELECT COUNT(*) FROM candidates`,
		"applied_at DESC", filter.Page)
	total, err := count(ctx, r.db, countSQL, where.args)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, listSQL, where.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, c)
	}
	return result, total, rows.Err()
}

func scanCandidate(row pgx.Row) (domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID,
		&c.JobID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.ResumeURL,
		&c.CoverLetter,
		&c.Status,
		&c.Notes,
		&c.AppliedAt,
		&c.UpdatedAt,
	)
	return c, err
}
