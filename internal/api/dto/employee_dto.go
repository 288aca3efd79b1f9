package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emsworks/employment-service/internal/domain"
)

// DepartmentRequest payload for department create and update.
type DepartmentRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// DepartmentResponse view of a department.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	Headcount   int       `json:"headcount"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDepartmentResponse maps a department.
func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		IsActive:    d.IsActive,
		Headcount:   d.Headcount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// NewDepartmentList maps departments.
func NewDepartmentList(depts []domain.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(depts))
	for i := range depts {
		out = append(out, NewDepartmentResponse(&depts[i]))
	}
	return out
}

// CreateEmployeeRequest payload for POST /employees. Dates use YYYY-MM-DD.
type CreateEmployeeRequest struct {
	FirstName     string                `json:"first_name"`
	LastName      string                `json:"last_name"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	DepartmentID  *string               `json:"department_id"`
	Designation   string                `json:"designation"`
	DateOfJoining string                `json:"date_of_joining"`
	Salary        decimal.Decimal       `json:"salary"`
	Status        domain.EmployeeStatus `json:"status"`
	Address       string                `json:"address"`
	Password      string                `json:"password"`
	Role          domain.Role           `json:"role"`
}

// UpdateEmployeeRequest payload for PUT /employees/:id. Omitted fields are unchanged.
type UpdateEmployeeRequest struct {
	FirstName     *string                `json:"first_name"`
	LastName      *string                `json:"last_name"`
	Email         *string                `json:"email"`
	Phone         *string                `json:"phone"`
	DepartmentID  *string                `json:"department_id"`
	Designation   *string                `json:"designation"`
	DateOfJoining *string                `json:"date_of_joining"`
	Salary        *decimal.Decimal       `json:"salary"`
	Status        *domain.EmployeeStatus `json:"status"`
	Address       *string                `json:"address"`
}

// EmployeeResponse view of an employee.
type EmployeeResponse struct {
	ID            string                `json:"id"`
	UserID        *string               `json:"user_id,omitempty"`
	Code          string                `json:"employee_code"`
	FirstName     string                `json:"first_name"`
	LastName      string                `json:"last_name"`
	FullName      string                `json:"full_name"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	DepartmentID  *string               `json:"department_id,omitempty"`
	Designation   string                `json:"designation"`
	DateOfJoining string                `json:"date_of_joining"`
	Salary        string                `json:"salary"`
	Status        domain.EmployeeStatus `json:"status"`
	Address       string                `json:"address"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// NewEmployeeResponse maps an employee.
func NewEmployeeResponse(e *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		Code:          e.Code,
		FirstName:     e.FirstName,
		LastName:      e.LastName,
		FullName:      e.FullName(),
		Email:         e.Email,
		Phone:         e.Phone,
		DepartmentID:  e.DepartmentID,
		Designation:   e.Designation,
		DateOfJoining: dateString(e.DateOfJoining),
		Salary:        e.Salary.StringFixed(2),
		Status:        e.Status,
		Address:       e.Address,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

// NewEmployeeList maps employees.
func NewEmployeeList(emps []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(emps))
	for i := range emps {
		out = append(out, NewEmployeeResponse(&emps[i]))
	}
	return out
}

// MeResponse is the body of GET /auth/me.
type MeResponse struct {
	User     UserResponse      `json:"user"`
	Employee *EmployeeResponse `json:"employee"`
}
