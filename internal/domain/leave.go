package domain

import "time"

// LeaveType enumerates kinds of absence.
type LeaveType string

const (
	LeaveSick   LeaveType = "Sick"
	LeaveCasual LeaveType = "Casual"
	LeaveAnnual LeaveType = "Annual"
	LeaveUnpaid LeaveType = "Unpaid"
)

// Valid reports whether t is a known leave type.
func (t LeaveType) Valid() bool {
	switch t {
	case LeaveSick, LeaveCasual, LeaveAnnual, LeaveUnpaid:
		return true
	}
	return false
}

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

// Valid reports whether s is a known status.
func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected:
		return true
	}
	return false
}

// LeaveRequest is a date-ranged absence request.
type LeaveRequest struct {
	ID            string
	EmployeeID    string
	Type          LeaveType
	StartDate     time.Time
	EndDate       time.Time
	TotalDays     int
	Reason        string
	Status        LeaveStatus
	ReviewedBy    *string
	ReviewComment string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Blocking reports whether the request still reserves its dates.
func (l *LeaveRequest) Blocking() bool {
	return l.Status == LeavePending || l.Status == LeaveApproved
}
