package dto

import (
	"time"

	"github.com/emsworks/employment-service/internal/domain"
)

// LeaveRequest payload for POST /leaves. Dates use YYYY-MM-DD.
type LeaveRequest struct {
	LeaveType domain.LeaveType `json:"leave_type"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Reason    string           `json:"reason"`
}

// LeaveResponse view of a leave request.
type LeaveResponse struct {
	ID            string             `json:"id"`
	EmployeeID    string             `json:"employee_id"`
	LeaveType     domain.LeaveType   `json:"leave_type"`
	StartDate     string             `json:"start_date"`
	EndDate       string             `json:"end_date"`
	TotalDays     int                `json:"total_days"`
	Reason        string             `json:"reason"`
	Status        domain.LeaveStatus `json:"status"`
	ReviewedBy    *string            `json:"reviewed_by,omitempty"`
	ReviewComment string             `json:"review_comment,omitempty"`
	ReviewedAt    *time.Time         `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// NewLeaveResponse maps a leave request.
func NewLeaveResponse(l *domain.LeaveRequest) LeaveResponse {
	return LeaveResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		LeaveType:     l.Type,
		StartDate:     dateString(l.StartDate),
		EndDate:       dateString(l.EndDate),
		TotalDays:     l.TotalDays,
		Reason:        l.Reason,
		Status:        l.Status,
		ReviewedBy:    l.ReviewedBy,
		ReviewComment: l.ReviewComment,
		ReviewedAt:    l.ReviewedAt,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

// NewLeaveList maps leave requests.
func NewLeaveList(leaves []domain.LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for i := range leaves {
		out = append(out, NewLeaveResponse(&leaves[i]))
	}
	return out
}
