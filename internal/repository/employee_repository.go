package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsworks/employment-service/internal/domain"
)

// EmployeeFilter captures HR search parameters.
type EmployeeFilter struct {
	DepartmentID *string
	Status       *domain.EmployeeStatus
	Search       string
	Page         Page
}

// EmployeeRepository encapsulates employee persistence.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	Update(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, int, error)
	ListByStatus(ctx context.Context, status domain.EmployeeStatus) ([]domain.Employee, error)
}

type employeeRepository struct {
	db DBTX
}

// NewEmployeeRepository instantiates repository.
func NewEmployeeRepository(db DBTX) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, user_id, employee_code, first_name, last_name, email, phone, department_id,
        designation, date_of_joining, salary, status, address, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	const query = `
        INSERT INTO employees (user_id, employee_code, first_name, last_name, email, phone, department_id,
            designation, date_of_joining, salary, status, address)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		emp.UserID,
		emp.Code,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Phone,
		emp.DepartmentID,
		emp.Designation,
		emp.DateOfJoining,
		emp.Salary,
		emp.Status,
		emp.Address,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	const query = `
        UPDATE employees SET user_id=$1, first_name=$2, last_name=$3, email=$4, phone=$5, department_id=$6,
            designation=$7, date_of_joining=$8, salary=$9, status=$10, address=$11, updated_at=NOW()
        WHERE id=$12
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		emp.UserID,
		emp.FirstName,
		emp.LastName,
		emp.Email,
		emp.Phone,
		emp.DepartmentID,
		emp.Designation,
		emp.DateOfJoining,
		emp.Salary,
		emp.Status,
		emp.Address,
		emp.ID,
	).Scan(&emp.UpdatedAt)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return r.fetchSingle(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id)
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (*domain.Employee, error) {
	return r.fetchSingle(ctx, `SELECT `+employeeColumns+` FROM employees WHERE user_id=$1`, userID)
}

func (r *employeeRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Employee, error) {
	emp, err := scanEmployee(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, int, error) {
	var where whereBuilder
	if filter.DepartmentID != nil {
		where.add("department_id=$%d", *filter.DepartmentID)
	}
	if filter.Status != nil {
		where.add("status=$%d", *filter.Status)
	}
	if filter.Search != "" {
		where.add(`(LOWER(first_name || ' ' || last_name) LIKE $%[1]d ESCAPE '\' OR LOWER(email) LIKE $%[1]d ESCAPE '\'
            OR LOWER(employee_code) LIKE $%[1]d ESCAPE '\')`, likePattern(filter.Search))
	}

	listSQL, countSQL := where.paged(`SELECT `+employeeColumns+` FROM employees`, `SELECT COUNT(*) FROM employees`,
		"first_name, last_name", filter.Page)
	total, err := count(ctx, r.db, countSQL, where.args)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, listSQL, where.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	emps, err := scanEmployees(rows)
	return emps, total, err
}

func (r *employeeRepository) ListByStatus(ctx context.Context, status domain.EmployeeStatus) ([]domain.Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE status=$1 ORDER BY employee_code`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func scanEmployees(rows pgx.Rows) ([]domain.Employee, error) {
	result := []domain.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, emp)
	}
	return result, rows.Err()
}

func scanEmployee(row pgx.Row) (domain.Employee, error) {
	var emp domain.Employee
	err := row.Scan(
		&emp.ID,
		&emp.UserID,
		&emp.Code,
		&emp.FirstName,
		&emp.LastName,
		&emp.Email,
		&emp.Phone,
		&emp.DepartmentID,
		&emp.Designation,
		&emp.DateOfJoining,
		&emp.Salary,
		&emp.Status,
		&emp.Address,
		&emp.CreatedAt,
		&emp.UpdatedAt,
	)
	return emp, err
}
