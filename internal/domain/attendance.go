package domain

import (
	"math"
	"time"
)

// AttendanceStatus classifies a day of attendance.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceHalfDay AttendanceStatus = "HalfDay"
	AttendanceLeave   AttendanceStatus = "Leave"
)

// Valid reports whether s is a known status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceHalfDay, AttendanceLeave:
		return true
	}
	return false
}

// Attendance is one employee's record for one calendar date.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	WorkHours  float64
	Status     AttendanceStatus
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WorkHours returns the hours between checkIn and checkOut rounded to two decimals.
// A checkOut before checkIn yields zero.
func WorkHours(checkIn, checkOut time.Time) float64 {
	if checkOut.Before(checkIn) {
		return 0
	}
	return math.Round(checkOut.Sub(checkIn).Hours()*100) / 100
}

// RecomputeWorkHours refreshes WorkHours from the check-in and check-out times.
func (a *Attendance) RecomputeWorkHours() {
	if a.CheckIn == nil || a.CheckOut == nil {
		a.WorkHours = 0
		return
	}
	a.WorkHours = WorkHours(*a.CheckIn, *a.CheckOut)
}
