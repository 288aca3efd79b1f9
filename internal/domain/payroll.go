package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus is the processing state of a payroll record.
type PayrollStatus string

const (
	PayrollDraft     PayrollStatus = "Draft"
	PayrollProcessed PayrollStatus = "Processed"
	PayrollPaid      PayrollStatus = "Paid"
)

// Valid reports whether s is a known status.
func (s PayrollStatus) Valid() bool {
	switch s {
	case PayrollDraft, PayrollProcessed, PayrollPaid:
		return true
	}
	return false
}

// CanTransitionTo reports whether a record may move from s to next.
// Payroll only moves forward one step at a time.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	switch s {
	case PayrollDraft:
		return next == PayrollProcessed
	case PayrollProcessed:
		return next == PayrollPaid
	}
	return false
}

// Payroll holds one employee's salary components for one month.
type Payroll struct {
	ID          string
	EmployeeID  string
	Month       int
	Year        int
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	Bonus       decimal.Decimal
	Tax         decimal.Decimal
	NetSalary   decimal.Decimal
	Status      PayrollStatus
	PaidAt      *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ComputeNet returns basic + allowances + bonus - deductions - tax.
func (p *Payroll) ComputeNet() decimal.Decimal {
	return p.BasicSalary.
		Add(p.Allowances).
		Add(p.Bonus).
		Sub(p.Deductions).
		Sub(p.Tax).
		Round(2)
}

// Period renders the payroll month as YYYY-MM.
func (p *Payroll) Period() string {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
