package repository

import (
	"context"
	"time"

	"github.com/emsworks/employment-service/internal/domain"
)

// StatsRepository aggregates dashboard counters.
type StatsRepository interface {
	OrgStats(ctx context.Context, today time.Time) (domain.OrgStats, error)
	EmployeeStats(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) (domain.EmployeeStats, error)
}

type statsRepository struct {
	db DBTX
}

// NewStatsRepository builds the repository.
func NewStatsRepository(db DBTX) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) OrgStats(ctx context.Context, today time.Time) (domain.OrgStats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM employees),
            (SELECT COUNT(*) FROM employees WHERE status='Active'),
            (SELECT COUNT(*) FROM departments WHERE is_active),
            (SELECT COUNT(*) FROM leave_requests WHERE status='Pending'),
            (SELECT COUNT(*) FROM attendance WHERE work_date=$1 AND status IN ('Present','HalfDay')),
            (SELECT COUNT(*) FROM job_postings WHERE status='Open'),
            (SELECT COUNT(*) FROM tasks WHERE status <> 'Completed')`
	var s domain.OrgStats
	err := r.db.QueryRow(ctx, query, today).Scan(
		&s.TotalEmployees,
		&s.ActiveEmployees,
		&s.Departments,
		&s.PendingLeaves,
		&s.PresentToday,
		&s.OpenJobs,
		&s.OpenTasks,
	)
	return s, err
}

func (r *statsRepository) EmployeeStats(ctx context.Context, employeeID string, monthStart, monthEnd time.Time) (domain.EmployeeStats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM leave_requests WHERE employee_id=$1 AND status='Pending'),
            (SELECT COUNT(*) FROM tasks WHERE assigned_to=$1 AND status <> 'Completed'),
            (SELECT COUNT(*) FROM attendance
                WHERE employee_id=$1 AND work_date BETWEEN $2 AND $3 AND status IN ('Present','HalfDay'))`
	var s domain.EmployeeStats
	err := r.db.QueryRow(ctx, query, employeeID, monthStart, monthEnd).Scan(
		&s.PendingLeaves,
		&s.OpenTasks,
		&s.DaysPresentMonth,
	)
	if err != nil {
		return s, err
	}

	s.ApprovedLeaveDays, err = r.approvedLeaveDays(ctx, employeeID, monthStart, monthEnd)
	return s, err
}

// approvedLeaveDays sums approved leave falling inside [from, to]; leave crossing the bounds counts only its inner days.
func (r *statsRepository) approvedLeaveDays(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	rows, err := r.db.Query(ctx, `
        SELECT start_date, end_date FROM leave_requests
        WHERE employee_id=$1 AND status='Approved' AND start_date <= $3 AND end_date >= $2`,
		employeeID, from, to)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	days := 0
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return 0, err
		}
		days += domain.OverlapDays(start, end, from, to)
	}
	return days, rows.Err()
}
