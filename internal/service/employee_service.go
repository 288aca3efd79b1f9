package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emsworks/employment-service/internal/auth"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// EmployeeService manages employee records and their login accounts.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	tx          repository.TxRunner
	bcryptCost  int
	loc         *time.Location
	now         func() time.Time
}

// EmployeeDependencies bundles repositories for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
	TxRunner       repository.TxRunner
	BcryptCost     int
	Location       *time.Location
}

// EmployeeInput describes a new employee. When Password is set a login account is created and linked.
type EmployeeInput struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	DepartmentID  *string
	Designation   string
	DateOfJoining *time.Time
	Salary        decimal.Decimal
	Status        domain.EmployeeStatus
	Address       string
	Password      string
	Role          domain.Role
}

// EmployeeUpdateInput holds optional employee changes.
type EmployeeUpdateInput struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Phone         *string
	DepartmentID  *string
	Designation   *string
	DateOfJoining *time.Time
	Salary        *decimal.Decimal
	Status        *domain.EmployeeStatus
	Address       *string
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	return &EmployeeService{
		employees:   deps.EmployeeRepo,
		departments: deps.DepartmentRepo,
		tx:          deps.TxRunner,
		bcryptCost:  deps.BcryptCost,
		loc:         loc,
		now:         time.Now,
	}
}

// Create adds an employee, optionally together with a login account, in one transaction.
func (s *EmployeeService) Create(ctx context.Context, actor Actor, input EmployeeInput) (*domain.Employee, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = domain.EmployeeStatusActive
	}
	if input.Role == "" {
		input.Role = domain.RoleEmployee
	}
	if input.DepartmentID != nil && *input.DepartmentID == "" {
		input.DepartmentID = nil
	}

	errs := fieldErrors{}
	errs.require("first_name", input.FirstName)
	errs.email("email", input.Email)
	errs.check(!input.Salary.IsNegative(), "salary", "must not be negative")
	errs.check(input.Status.Valid(), "status", "must be one of Active, Inactive, Terminated")
	if input.Password != "" {
		if err := auth.ValidatePassword(input.Password); err != nil {
			errs["password"] = err.Error()
		}
		errs.check(input.Role.Valid(), "role", "must be one of admin, hr, employee")
	}
	if err := errs.err("invalid employee"); err != nil {
		return nil, err
	}
	if input.Password != "" && input.Role != domain.RoleEmployee && actor.User.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("only admins can create admin or hr accounts")
	}
	if err := s.checkDepartment(ctx, input.DepartmentID); err != nil {
		return nil, err
	}

	joined := domain.DateOf(s.now(), s.loc)
	if input.DateOfJoining != nil {
		joined = domain.TruncateDate(*input.DateOfJoining)
	}
	emp := &domain.Employee{
		Code:          generateEmployeeCode(),
		FirstName:     strings.TrimSpace(input.FirstName),
		LastName:      strings.TrimSpace(input.LastName),
		Email:         normalizeEmail(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		DepartmentID:  input.DepartmentID,
		Designation:   strings.TrimSpace(input.Designation),
		DateOfJoining: joined,
		Salary:        input.Salary.Round(2),
		Status:        input.Status,
		Address:       strings.TrimSpace(input.Address),
	}

	var passwordHash string
	if input.Password != "" {
		hash, err := auth.HashPassword(input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		passwordHash = hash
	}

	err := s.tx.RunInTx(ctx, func(repos repository.Repositories) error {
		if passwordHash != "" {
			user := &domain.User{
				Name:         emp.FullName(),
				Email:        emp.Email,
				PasswordHash: passwordHash,
				Role:         input.Role,
				Active:       emp.Status == domain.EmployeeStatusActive,
			}
			if err := repos.Users.Create(ctx, user); err != nil {
				return err
			}
			emp.UserID = &user.ID
		}
		return repos.Employees.Create(ctx, emp)
	})
	if err != nil {
		return nil, conflictOnDuplicate(err, "email already in use", map[string]any{"email": emp.Email})
	}
	return emp, nil
}

// List returns employees matching filter. Managers only.
func (s *EmployeeService) List(ctx context.Context, actor Actor, filter repository.EmployeeFilter) ([]domain.Employee, int, error) {
	if err := requireManager(actor); err != nil {
		return nil, 0, err
	}
	emps, total, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return emps, total, nil
}

// Get fetches an employee. Employees may only read their own record.
func (s *EmployeeService) Get(ctx context.Context, actor Actor, id string) (*domain.Employee, error) {
	if err := canView(actor, id); err != nil {
		return nil, err
	}
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "employee")
	}
	return emp, nil
}

// Me returns the caller's own employee record.
func (s *EmployeeService) Me(_ context.Context, actor Actor) (*domain.Employee, error) {
	return requireEmployee(actor)
}

// Update modifies an employee record. Managers only.
func (s *EmployeeService) Update(ctx context.Context, actor Actor, id string, input EmployeeUpdateInput) (*domain.Employee, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	emp, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "employee")
	}

	errs := fieldErrors{}
	if input.FirstName != nil {
		errs.require("first_name", *input.FirstName)
		emp.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		emp.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Email != nil {
		errs.email("email", *input.Email)
		emp.Email = normalizeEmail(*input.Email)
	}
	if input.Phone != nil {
		emp.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.DepartmentID != nil {
		if *input.DepartmentID == "" {
			emp.DepartmentID = nil
		} else {
			emp.DepartmentID = input.DepartmentID
		}
	}
	if input.Designation != nil {
		emp.Designation = strings.TrimSpace(*input.Designation)
	}
	if input.DateOfJoining != nil {
		emp.DateOfJoining = domain.TruncateDate(*input.DateOfJoining)
	}
	if input.Salary != nil {
		errs.check(!input.Salary.IsNegative(), "salary", "must not be negative")
		emp.Salary = input.Salary.Round(2)
	}
	if input.Status != nil {
		errs.check(input.Status.Valid(), "status", "must be one of Active, Inactive, Terminated")
		emp.Status = *input.Status
	}
	if input.Address != nil {
		emp.Address = strings.TrimSpace(*input.Address)
	}
	if err := errs.err("invalid employee update"); err != nil {
		return nil, err
	}
	if input.DepartmentID != nil {
		if err := s.checkDepartment(ctx, emp.DepartmentID); err != nil {
			return nil, err
		}
	}

	if err := s.employees.Update(ctx, emp); err != nil {
		return nil, conflictOnDuplicate(err, "email already in use", map[string]any{"email": emp.Email})
	}
	return emp, nil
}

// Terminate soft-deletes an employee: the record is kept as Terminated and the linked account is deactivated.
func (s *EmployeeService) Terminate(ctx context.Context, actor Actor, id string) (*domain.Employee, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if actor.Owns(id) {
		return nil, apperrors.NewConflict("cannot terminate your own employee record", nil)
	}

	var emp *domain.Employee
	err := s.tx.RunInTx(ctx, func(repos repository.Repositories) error {
		found, err := repos.Employees.GetByID(ctx, id)
		if err != nil {
			return err
		}
		emp = found
		if emp.Status == domain.EmployeeStatusTerminated {
			return nil
		}
		emp.Status = domain.EmployeeStatusTerminated
		if err := repos.Employees.Update(ctx, emp); err != nil {
			return err
		}
		if emp.UserID == nil {
			return nil
		}
		user, err := repos.Users.GetByID(ctx, *emp.UserID)
		if err != nil {
			return err
		}
		user.Active = false
		return repos.Users.Update(ctx, user)
	})
	if err != nil {
		return nil, notFound(err, "employee")
	}
	return emp, nil
}

func (s *EmployeeService) checkDepartment(ctx context.Context, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	dept, err := s.departments.GetByID(ctx, *id)
	if err != nil {
		if apperrors.IsNoRows(err) {
			return apperrors.NewValidationError("unknown department", map[string]any{"department_id": *id})
		}
		return apperrors.MapError(err)
	}
	if !dept.IsActive {
		return apperrors.NewConflict("department inactive", map[string]any{"department_id": *id})
	}
	return nil
}

func generateEmployeeCode() string {
	return "EMP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
