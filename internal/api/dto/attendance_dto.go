package dto

import (
	"time"

	"github.com/emsworks/employment-service/internal/domain"
)

// CheckRequest is the optional body of check-in and check-out.
type CheckRequest struct {
	Notes string `json:"notes"`
}

// AttendanceRequest payload for manual entries. Date uses YYYY-MM-DD, times RFC 3339.
type AttendanceRequest struct {
	EmployeeID string                   `json:"employee_id"`
	Date       *string                  `json:"date"`
	CheckIn    *time.Time               `json:"check_in"`
	CheckOut   *time.Time               `json:"check_out"`
	Status     *domain.AttendanceStatus `json:"status"`
	Notes      *string                  `json:"notes"`
}

// AttendanceResponse view of an attendance record.
type AttendanceResponse struct {
	ID         string                  `json:"id"`
	EmployeeID string                  `json:"employee_id"`
	Date       string                  `json:"date"`
	CheckIn    *time.Time              `json:"check_in"`
	CheckOut   *time.Time              `json:"check_out"`
	WorkHours  float64                 `json:"work_hours"`
	Status     domain.AttendanceStatus `json:"status"`
	Notes      string                  `json:"notes"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// NewAttendanceResponse maps an attendance record.
func NewAttendanceResponse(a *domain.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Date:       dateString(a.Date),
		CheckIn:    a.CheckIn,
		CheckOut:   a.CheckOut,
		WorkHours:  a.WorkHours,
		Status:     a.Status,
		Notes:      a.Notes,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// NewAttendanceList maps attendance records.
func NewAttendanceList(records []domain.Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, NewAttendanceResponse(&records[i]))
	}
	return out
}
