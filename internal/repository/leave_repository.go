package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emsworks/employment-service/internal/domain"
)

// LeaveFilter narrows leave request listings.
type LeaveFilter struct {
	EmployeeID *string
	Status     *domain.LeaveStatus
	Type       *domain.LeaveType
	Page       Page
}

// LeaveRepository persists leave requests.
type LeaveRepository interface {
	Create(ctx context.Context, leave *domain.LeaveRequest) error
	// Update writes leave only while its stored status is still from; otherwise it returns ErrStaleStatus.
	Update(ctx context.Context, leave *domain.LeaveRequest, from domain.LeaveStatus) error
	// Delete removes the request. A non-empty onlyIf restricts the delete to that status and
	// reports ErrStaleStatus when nothing matched.
	Delete(ctx context.Context, id string, onlyIf domain.LeaveStatus) error
	GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error)
	List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, int, error)
	// ListBlocking returns the employee's Pending or Approved requests intersecting [start, end].
	ListBlocking(ctx context.Context, employeeID string, start, end time.Time) ([]domain.LeaveRequest, error)
}

type leaveRepository struct {
	db DBTX
}

// NewLeaveRepository builds the repository.
func NewLeaveRepository(db DBTX) LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, total_days, reason, status,
        reviewed_by, review_comment, reviewed_at, created_at, updated_at`

func (r *leaveRepository) Create(ctx context.Context, leave *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (employee_id, leave_type, start_date, end_date, total_days, reason, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		leave.EmployeeID,
		leave.Type,
		leave.StartDate,
		leave.EndDate,
		leave.TotalDays,
		leave.Reason,
		leave.Status,
	).Scan(&leave.ID, &leave.CreatedAt, &leave.UpdatedAt)
}

func (r *leaveRepository) Update(ctx context.Context, leave *domain.LeaveRequest, from domain.LeaveStatus) error {
	const query = `
        UPDATE leave_requests SET leave_type=$1, start_date=$2, end_date=$3, total_days=$4, reason=$5, status=$6,
            reviewed_by=$7, review_comment=$8, reviewed_at=$9, updated_at=NOW()
        WHERE id=$10 AND status=$11
        RETURNING updated_at`
	err := r.db.QueryRow(ctx, query,
		leave.Type,
		leave.StartDate,
		leave.EndDate,
		leave.TotalDays,
		leave.Reason,
		leave.Status,
		leave.ReviewedBy,
		leave.ReviewComment,
		leave.ReviewedAt,
		leave.ID,
		from,
	).Scan(&leave.UpdatedAt)
	return staleOnNoRows(err)
}

func (r *leaveRepository) Delete(ctx context.Context, id string, onlyIf domain.LeaveStatus) error {
	if onlyIf == "" {
		return affectedOrNoRows(r.db.Exec(ctx, `DELETE FROM leave_requests WHERE id=$1`, id))
	}
	err := affectedOrNoRows(r.db.Exec(ctx, `DELETE FROM leave_requests WHERE id=$1 AND status=$2`, id, onlyIf))
	return staleOnNoRows(err)
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	leave, err := scanLeave(r.db.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id=$1`, id))
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, int, error) {
	var where whereBuilder
	if filter.EmployeeID != nil {
		where.add("employee_id=$%d", *filter.EmployeeID)
	}
	if filter.Status != nil {
		where.add("status=$%d", *filter.Status)
	}
	if filter.Type != nil {
		where.add("leave_type=$%d", *filter.Type)
	}

	listSQL, countSQL := where.paged(`SELECT `+leaveColumns+` FROM leave_requests`, `SELECT COUNT(*) FROM leave_requests`,
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
	leaves, err := scanLeaves(rows)
	return leaves, total, err
}

func (r *leaveRepository) ListBlocking(ctx context.Context, employeeID string, start, end time.Time) ([]domain.LeaveRequest, error) {
	const query = `SELECT ` + leaveColumns + ` FROM leave_requests
        WHERE employee_id=$1 AND status IN ('Pending','Approved') AND start_date <= $3 AND end_date >= $2
        ORDER BY start_date`
	rows, err := r.db.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeaves(rows)
}

func scanLeaves(rows pgx.Rows) ([]domain.LeaveRequest, error) {
	result := []domain.LeaveRequest{}
	for rows.Next() {
		leave, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, leave)
	}
	return result, rows.Err()
}

func scanLeave(row pgx.Row) (domain.LeaveRequest, error) {
	var leave domain.LeaveRequest
	err := row.Scan(
		&leave.ID,
		&leave.EmployeeID,
		&leave.Type,
		&leave.StartDate,
		&leave.EndDate,
		&leave.TotalDays,
		&leave.Reason,
		&leave.Status,
		&leave.ReviewedBy,
		&leave.ReviewComment,
		&leave.ReviewedAt,
		&leave.CreatedAt,
		&leave.UpdatedAt,
	)
	return leave, err
}
