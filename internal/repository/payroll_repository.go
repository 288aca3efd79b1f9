package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsworks/employment-service/internal/domain"
)

// PayrollFilter narrows payroll listings.
type PayrollFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Status     *domain.PayrollStatus
	Page       Page
}

// PayrollRepository persists monthly payroll records.
type PayrollRepository interface {
	Create(ctx context.Context, p *domain.Payroll) error
	// Update rewrites the amounts and notes of a Draft record; ErrStaleStatus when it is no longer Draft.
	Update(ctx context.Context, p *domain.Payroll) error
	// UpdateStatus moves the record to p.Status only if it is still from; ErrStaleStatus otherwise.
	UpdateStatus(ctx context.Context, p *domain.Payroll, from domain.PayrollStatus) error
	// Delete removes a Draft record; ErrStaleStatus when it is no longer Draft.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Payroll, error)
	List(ctx context.Context, filter PayrollFilter) ([]domain.Payroll, int, error)
	// EmployeeIDsForPeriod returns the employees that already have a record for month/year.
	EmployeeIDsForPeriod(ctx context.Context, month, year int) (map[string]struct{}, error)
}

type payrollRepository struct {
	db DBTX
}

// NewPayrollRepository builds the repository.
func NewPayrollRepository(db DBTX) PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `id, employee_id, period_month, period_year, basic_salary, allowances, deductions, bonus, tax,
        net_salary, status, paid_at, notes, created_at, updated_at`

func (r *payrollRepository) Create(ctx context.Context, p *domain.Payroll) error {
	const query = `
        INSERT INTO payrolls (employee_id, period_month, period_year, basic_salary, allowances, deductions, bonus, tax,
            net_salary, status, paid_at, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		p.EmployeeID,
		p.Month,
		p.Year,
		p.BasicSalary,
		p.Allowances,
		p.Deductions,
		p.Bonus,
		p.Tax,
		p.NetSalary,
		p.Status,
		p.PaidAt,
		p.Notes,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *payrollRepository) Update(ctx context.Context, p *domain.Payroll) error {
	const query = `
        UPDATE payrolls SET basic_salary=$1, allowances=$2, deductions=$3, bonus=$4, tax=$5, net_salary=$6,
            notes=$7, updated_at=NOW()
        WHERE id=$8 AND status='Draft'
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		p.BasicSalary,
		p.Allowances,
		p.Deductions,
		p.Bonus,
		p.Tax,
		p.NetSalary,
		p.Notes,
		p.ID,
	).Scan(&p.UpdatedAt)
	return staleOnNoRows(err)
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, p *domain.Payroll, from domain.PayrollStatus) error {
	const query = `
        UPDATE payrolls SET status=$1, paid_at=$2, updated_at=NOW()
        WHERE id=$3 AND status=$4
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query, p.Status, p.PaidAt, p.ID, from).Scan(&p.UpdatedAt)
	return staleOnNoRows(err)
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	err := affectedOrNoRows(r.db.Exec(ctx, `DELETE FROM payrolls WHERE id=$1 AND status='Draft'`, id))
	return staleOnNoRows(err)
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (*domain.Payroll, error) {
	p, err := scanPayroll(r.db.QueryRow(ctx, `SELECT `+payrollColumns+` FROM payrolls WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payrollRepository) List(ctx context.Context, filter PayrollFilter) ([]domain.Payroll, int, error) {
	var where whereBuilder
	if filter.EmployeeID != nil {
		where.add("employee_id=$%d", *filter.EmployeeID)
	}
	if filter.Month != nil {
		where.add("period_month=$%d", *filter.Month)
	}
	if filter.Year != nil {
		where.add("period_year=$%d", *filter.Year)
	}
	if filter.Status != nil {
		where.add("status=$%d", *filter.Status)
	}

	listSQL, countSQL := where.paged(`SELECT `+payrollColumns+` FROM payrolls`, `SELECT COUNT(*) FROM payrolls`,
		"period_year DESC, period_month DESC, created_at DESC", filter.Page)
	total, err := count(ctx, r.db, countSQL, where.args)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, listSQL, where.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Payroll{}
	for rows.Next() {
		p, err := scanPayroll(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, p)
	}
	return result, total, rows.Err()
}

func (r *payrollRepository) EmployeeIDsForPeriod(ctx context.Context, month, year int) (map[string]struct{}, error) {
	rows, err := r.db.Query(ctx, `SELECT employee_id FROM payrolls WHERE period_month=$1 AND period_year=$2`, month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := map[string]struct{}{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func scanPayroll(row pgx.Row) (domain.Payroll, error) {
	var p domain.Payroll
	err := row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.Month,
		&p.Year,
		&p.BasicSalary,
		&p.Allowances,
		&p.Deductions,
		&p.Bonus,
		&p.Tax,
		&p.NetSalary,
		&p.Status,
		&p.PaidAt,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
