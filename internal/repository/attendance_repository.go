package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emsworks/employment-service/internal/domain"
)

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
	Status     *domain.AttendanceStatus
	Page       Page
}

// AttendanceRepository persists daily attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, att *domain.Attendance) error
	Update(ctx context.Context, att *domain.Attendance) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Attendance, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (*domain.Attendance, error)
	List(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, int, error)
}

type attendanceRepository struct {
	db DBTX
}

// NewAttendanceRepository builds the repository.
func NewAttendanceRepository(db DBTX) AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, employee_id, work_date, check_in, check_out, work_hours, status, notes, created_at, updated_at`

func (r *attendanceRepository) Create(ctx context.Context, att *domain.Attendance) error {
	const query = `
        INSERT INTO attendance (employee_id, work_date, check_in, check_out, work_hours, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		att.EmployeeID,
		att.Date,
		att.CheckIn,
		att.CheckOut,
		att.WorkHours,
		att.Status,
		att.Notes,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
}

func (r *attendanceRepository) Update(ctx context.Context, att *domain.Attendance) error {
	const query = `
        UPDATE attendance SET work_date=$1, check_in=$2, check_out=$3, work_hours=$4, status=$5, notes=$6,
            updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		att.Date,
		att.CheckIn,
		att.CheckOut,
		att.WorkHours,
		att.Status,
		att.Notes,
		att.ID,
	).Scan(&att.UpdatedAt)
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	return affectedOrNoRows(r.db.Exec(ctx, `DELETE FROM attendance WHERE id=$1`, id))
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (*domain.Attendance, error) {
	att, err := scanAttendance(r.db.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (*domain.Attendance, error) {
	const query = `SELECT ` + attendanceColumns + ` FROM attendance WHERE employee_id=$1 AND work_date=$2`
	att, err := scanAttendance(r.db.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]domain.Attendance, int, error) {
	var where whereBuilder
	if filter.EmployeeID != nil {
		where.add("employee_id=$%d", *filter.EmployeeID)
	}
	if filter.From != nil {
		where.add("work_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		where.add("work_date <= $%d", *filter.To)
	}
	if filter.Status != nil {
		where.add("status=$%d", *filter.Status)
	}

	listSQL, countSQL := where.paged(`SELECT `+attendanceColumns+` FROM attendance`, `SELECT COUNT(*) FROM attendance`,
		"work_date DESC, created_at DESC", filter.Page)
	total, err := count(ctx, r.db, countSQL, where.args)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, listSQL, where.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := []domain.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, err
		}
		result = append(result, att)
	}
	return result, total, rows.Err()
}

func scanAttendance(row pgx.Row) (domain.Attendance, error) {
	var att domain.Attendance
	err := row.Scan(
		&att.ID,
		&att.EmployeeID,
		&att.Date,
		&att.CheckIn,
		&att.CheckOut,
		&att.WorkHours,
		&att.Status,
		&att.Notes,
		&att.CreatedAt,
		&att.UpdatedAt,
	)
	return att, err
}
