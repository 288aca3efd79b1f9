package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsworks/employment-service/internal/domain"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, includeInactive bool) ([]domain.Department, error)
}

type departmentRepository struct {
	db DBTX
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(db DBTX) DepartmentRepository {
	return &departmentRepository{db: db}
}

const departmentSelect = `
        SELECT d.id, d.name, d.description, d.is_active,
               (SELECT COUNT(*) FROM employees e WHERE e.department_id = d.id AND e.status = 'Active'),
               d.created_at, d.updated_at
        FROM departments d`

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	return r.db.QueryRow(ctx, `
        INSERT INTO departments (name, description, is_active)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`,
		dept.Name, dept.Description, dept.IsActive,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	return r.db.QueryRow(ctx, `
        UPDATE departments SET name=$2, description=$3, is_active=$4, updated_at=NOW()
        WHERE id=$1
        RETURNING updated_at`,
		dept.ID, dept.Name, dept.Description, dept.IsActive,
	).Scan(&dept.UpdatedAt)
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	dept, err := scanDepartment(r.db.QueryRow(ctx, departmentSelect+` WHERE d.id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, includeInactive bool) ([]domain.Department, error) {
	query := departmentSelect
	if !includeInactive {
		query += ` WHERE d.is_active`
	}
	rows, err := r.db.Query(ctx, query+` ORDER BY LOWER(d.name)`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Department, error) {
		return scanDepartment(row)
	})
}

func scanDepartment(row pgx.Row) (domain.Department, error) {
	var dept domain.Department
	err := row.Scan(&dept.ID, &dept.Name, &dept.Description, &dept.IsActive, &dept.Headcount, &dept.CreatedAt, &dept.UpdatedAt)
	return dept, err
}
