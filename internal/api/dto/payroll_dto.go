package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emsworks/employment-service/internal/domain"
)

// CreatePayrollRequest payload for POST /payroll. Amounts accept JSON numbers or strings.
type CreatePayrollRequest struct {
	EmployeeID  string           `json:"employee_id"`
	Month       int              `json:"month"`
	Year        int              `json:"year"`
	BasicSalary *decimal.Decimal `json:"basic_salary"`
	Allowances  decimal.Decimal  `json:"allowances"`
	Deductions  decimal.Decimal  `json:"deductions"`
	Bonus       decimal.Decimal  `json:"bonus"`
	Tax         decimal.Decimal  `json:"tax"`
	Notes       string           `json:"notes"`
}

// UpdatePayrollRequest payload for PUT /payroll/:id.
type UpdatePayrollRequest struct {
	BasicSalary *decimal.Decimal `json:"basic_salary"`
	Allowances  *decimal.Decimal `json:"allowances"`
	Deductions  *decimal.Decimal `json:"deductions"`
	Bonus       *decimal.Decimal `json:"bonus"`
	Tax         *decimal.Decimal `json:"tax"`
	Notes       *string          `json:"notes"`
}

// GeneratePayrollRequest payload for POST /payroll/generate.
type GeneratePayrollRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// PayrollResponse view of a payroll record. Amounts are fixed two-decimal strings.
type PayrollResponse struct {
	ID          string               `json:"id"`
	EmployeeID  string               `json:"employee_id"`
	Month       int                  `json:"month"`
	Year        int                  `json:"year"`
	Period      string               `json:"period"`
	BasicSalary string               `json:"basic_salary"`
	Allowances  string               `json:"allowances"`
	Deductions  string               `json:"deductions"`
	Bonus       string               `json:"bonus"`
	Tax         string               `json:"tax"`
	NetSalary   string               `json:"net_salary"`
	Status      domain.PayrollStatus `json:"status"`
	PaidAt      *time.Time           `json:"paid_at,omitempty"`
	Notes       string               `json:"notes"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// GenerateResponse reports a batch run.
type GenerateResponse struct {
	Month   int               `json:"month"`
	Year    int               `json:"year"`
	Created []PayrollResponse `json:"created"`
	Skipped int               `json:"skipped"`
}

// NewPayrollResponse maps a payroll record.
func NewPayrollResponse(p *domain.Payroll) PayrollResponse {
	return PayrollResponse{
		ID:          p.ID,
		EmployeeID:  p.EmployeeID,
		Month:       p.Month,
		Year:        p.Year,
		Period:      p.Period(),
		BasicSalary: p.BasicSalary.StringFixed(2),
		Allowances:  p.Allowances.StringFixed(2),
		Deductions:  p.Deductions.StringFixed(2),
		Bonus:       p.Bonus.StringFixed(2),
		Tax:         p.Tax.StringFixed(2),
		NetSalary:   p.NetSalary.StringFixed(2),
		Status:      p.Status,
		PaidAt:      p.PaidAt,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewPayrollList maps payroll records.
func NewPayrollList(records []domain.Payroll) []PayrollResponse {
	out := make([]PayrollResponse, 0, len(records))
	for i := range records {
		out = append(out, NewPayrollResponse(&records[i]))
	}
	return out
}
