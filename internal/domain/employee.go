package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeStatus tracks employment state.
type EmployeeStatus string

const (
	EmployeeStatusActive     EmployeeStatus = "Active"
	EmployeeStatusInactive   EmployeeStatus = "Inactive"
	EmployeeStatusTerminated EmployeeStatus = "Terminated"
)

// Valid reports whether s is a known status.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusTerminated:
		return true
	}
	return false
}

// Employee is the HR record of a person employed by the company.
type Employee struct {
	ID            string
	UserID        *string
	Code          string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DepartmentID  *string
	Designation   string
	DateOfJoining time.Time
	Salary        decimal.Decimal
	Status        EmployeeStatus
	Address       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FullName joins first and last name.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
