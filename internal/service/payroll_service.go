package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/events"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

const (
	minPayrollYear = 2000
	maxPayrollYear = 2100
)

// PayslipRenderer turns a payroll record into a printable document.
type PayslipRenderer interface {
	Render(p *domain.Payroll, emp *domain.Employee, dept *domain.Department) ([]byte, error)
}

// PayrollService manages monthly payroll records.
type PayrollService struct {
	payrolls    repository.PayrollRepository
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	tx          repository.TxRunner
	renderer    PayslipRenderer
	events      publisher
	logger      *zap.Logger
	now         func() time.Time
}

// PayrollDependencies bundles collaborators for the payroll service.
type PayrollDependencies struct {
	PayrollRepo    repository.PayrollRepository
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
	TxRunner       repository.TxRunner
	Renderer       PayslipRenderer
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// PayrollInput describes a new payroll record. A nil BasicSalary defaults to the employee's salary.
type PayrollInput struct {
	EmployeeID  string
	Month       int
	Year        int
	BasicSalary *decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	Bonus       decimal.Decimal
	Tax         decimal.Decimal
	Notes       string
}

// PayrollUpdateInput holds optional changes to a draft record.
type PayrollUpdateInput struct {
	BasicSalary *decimal.Decimal
	Allowances  *decimal.Decimal
	Deductions  *decimal.Decimal
	Bonus       *decimal.Decimal
	Tax         *decimal.Decimal
	Notes       *string
}

// GenerateResult reports a batch run.
type GenerateResult struct {
	Month   int
	Year    int
	Created []domain.Payroll
	Skipped int
}

// Payslip is a rendered payslip document.
type Payslip struct {
	FileName string
	Content  []byte
}

// NewPayrollService constructs the service.
func NewPayrollService(deps PayrollDependencies) *PayrollService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayrollService{
		payrolls:    deps.PayrollRepo,
		employees:   deps.EmployeeRepo,
		departments: deps.DepartmentRepo,
		tx:          deps.TxRunner,
		renderer:    deps.Renderer,
		events:      newPublisher(deps.Dispatcher, logger),
		logger:      logger,
		now:         time.Now,
	}
}

// Create adds a draft payroll record. At most one record may exist per employee and month.
func (s *PayrollService) Create(ctx context.Context, actor Actor, input PayrollInput) (*domain.Payroll, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	errs := fieldErrors{}
	errs.require("employee_id", input.EmployeeID)
	checkPeriod(errs, input.Month, input.Year)
	if input.BasicSalary != nil {
		checkAmount(errs, "basic_salary", *input.BasicSalary)
	}
	checkAmount(errs, "allowances", input.Allowances)
	checkAmount(errs, "deductions", input.Deductions)
	checkAmount(errs, "bonus", input.Bonus)
	checkAmount(errs, "tax", input.Tax)
	if err := errs.err("invalid payroll"); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByID(ctx, input.EmployeeID)
	if err != nil {
		return nil, notFound(err, "employee")
	}

	p := &domain.Payroll{
		EmployeeID:  emp.ID,
		Month:       input.Month,
		Year:        input.Year,
		BasicSalary: emp.Salary,
		Allowances:  input.Allowances.Round(2),
		Deductions:  input.Deductions.Round(2),
		Bonus:       input.Bonus.Round(2),
		Tax:         input.Tax.Round(2),
		Status:      domain.PayrollDraft,
		Notes:       strings.TrimSpace(input.Notes),
	}
	if input.BasicSalary != nil {
		p.BasicSalary = input.BasicSalary.Round(2)
	}
	if err := setNet(p); err != nil {
		return nil, err
	}

	if err := s.payrolls.Create(ctx, p); err != nil {
		return nil, conflictOnDuplicate(err, "payroll already exists for this period", map[string]any{
			"employee_id": p.EmployeeID,
			"period":      p.Period(),
		})
	}
	return p, nil
}

// Update edits a draft record and recomputes its net salary.
func (s *PayrollService) Update(ctx context.Context, actor Actor, id string, input PayrollUpdateInput) (*domain.Payroll, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	p, err := s.payrolls.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "payroll")
	}
	if p.Status != domain.PayrollDraft {
		return nil, apperrors.NewConflict("only draft payroll records can be edited", map[string]any{"status": p.Status})
	}

	errs := fieldErrors{}
	apply := func(field string, src *decimal.Decimal, dst *decimal.Decimal) {
		if src == nil {
			return
		}
		checkAmount(errs, field, *src)
		*dst = src.Round(2)
	}
	apply("basic_salary", input.BasicSalary, &p.BasicSalary)
	apply("allowances", input.Allowances, &p.Allowances)
	apply("deductions", input.Deductions, &p.Deductions)
	apply("bonus", input.Bonus, &p.Bonus)
	apply("tax", input.Tax, &p.Tax)
	if input.Notes != nil {
		p.Notes = strings.TrimSpace(*input.Notes)
	}
	if err := errs.err("invalid payroll update"); err != nil {
		return nil, err
	}
	if err := setNet(p); err != nil {
		return nil, err
	}

	if err := s.payrolls.Update(ctx, p); err != nil {
		return nil, conflictOnStale(err, "only draft payroll records can be edited")
	}
	return p, nil
}

// UpdateStatus moves a record one step forward: Draft to Processed, Processed to Paid.
func (s *PayrollService) UpdateStatus(ctx context.Context, actor Actor, id string, next domain.PayrollStatus) (*domain.Payroll, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": "must be one of Draft, Processed, Paid"})
	}
	p, err := s.payrolls.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "payroll")
	}
	if !p.Status.CanTransitionTo(next) {
		return nil, apperrors.NewConflict("invalid payroll status transition", map[string]any{"from": p.Status, "to": next})
	}

	old := p.Status
	p.Status = next
	if next == domain.PayrollPaid {
		now := s.now()
		p.PaidAt = &now
	}
	if err := s.payrolls.UpdateStatus(ctx, p, old); err != nil {
		return nil, conflictOnStale(err, "payroll status changed concurrently")
	}

	s.events.publish(ctx, events.EventPayrollStatusChanged, p.ID, actor, events.PayrollStatusChangedPayload{
		EmployeeID: p.EmployeeID,
		Period:     p.Period(),
		OldStatus:  old,
		NewStatus:  p.Status,
	})
	return p, nil
}

// Delete removes a draft record.
func (s *PayrollService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	p, err := s.payrolls.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "payroll")
	}
	if p.Status != domain.PayrollDraft {
		return apperrors.NewConflict("only draft payroll records can be deleted", map[string]any{"status": p.Status})
	}
	if err := s.payrolls.Delete(ctx, id); err != nil {
		return conflictOnStale(err, "only draft payroll records can be deleted")
	}
	return nil
}

// Generate creates draft records for every active employee lacking one for month/year, in one transaction.
func (s *PayrollService) Generate(ctx context.Context, actor Actor, month, year int) (*GenerateResult, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	errs := fieldErrors{}
	checkPeriod(errs, month, year)
	if err := errs.err("invalid payroll period"); err != nil {
		return nil, err
	}

	result := &GenerateResult{Month: month, Year: year, Created: []domain.Payroll{}}
	err := s.tx.RunInTx(ctx, func(repos repository.Repositories) error {
		active, err := repos.Employees.ListByStatus(ctx, domain.EmployeeStatusActive)
		if err != nil {
			return err
		}
		existing, err := repos.Payrolls.EmployeeIDsForPeriod(ctx, month, year)
		if err != nil {
			return err
		}

		for _, emp := range active {
			if _, ok := existing[emp.ID]; ok {
				result.Skipped++
				continue
			}
			p := domain.Payroll{
				EmployeeID:  emp.ID,
				Month:       month,
				Year:        year,
				BasicSalary: emp.Salary.Round(2),
				Status:      domain.PayrollDraft,
			}
			p.NetSalary = p.ComputeNet()
			if err := repos.Payrolls.Create(ctx, &p); err != nil {
				return fmt.Errorf("create payroll for %s: %w", emp.Code, err)
			}
			result.Created = append(result.Created, p)
		}
		return nil
	})
	if err != nil {
		return nil, conflictOnDuplicate(err, "payroll generation raced with another run", map[string]any{"month": month, "year": year})
	}

	period := (&domain.Payroll{Month: month, Year: year}).Period()
	s.logger.Info("payroll generated",
		zap.String("period", period),
		zap.Int("created", len(result.Created)),
		zap.Int("skipped", result.Skipped),
		zap.String("actor_id", actor.User.ID))
	s.events.publish(ctx, events.EventPayrollGenerated, period, actor, events.PayrollGeneratedPayload{
		Period:  period,
		Created: len(result.Created),
		Skipped: result.Skipped,
	})
	return result, nil
}

// List returns payroll records. Employees only see their own.
func (s *PayrollService) List(ctx context.Context, actor Actor, filter repository.PayrollFilter) ([]domain.Payroll, int, error) {
	if err := scopeToSelf(actor, &filter.EmployeeID); err != nil {
		return nil, 0, err
	}
	records, total, err := s.payrolls.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return records, total, nil
}

// Get fetches a payroll record visible to the caller.
func (s *PayrollService) Get(ctx context.Context, actor Actor, id string) (*domain.Payroll, error) {
	p, err := s.payrolls.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "payroll")
	}
	if err := canView(actor, p.EmployeeID); err != nil {
		return nil, err
	}
	return p, nil
}

// Payslip renders the payslip document for a record visible to the caller.
func (s *PayrollService) Payslip(ctx context.Context, actor Actor, id string) (*Payslip, error) {
	if s.renderer == nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("payslip renderer not configured"))
	}
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	emp, err := s.employees.GetByID(ctx, p.EmployeeID)
	if err != nil {
		return nil, notFound(err, "employee")
	}
	var dept *domain.Department
	if emp.DepartmentID != nil && s.departments != nil {
		if found, err := s.departments.GetByID(ctx, *emp.DepartmentID); err == nil {
			dept = found
		}
	}

	content, err := s.renderer.Render(p, emp, dept)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Payslip{
		FileName: fmt.Sprintf("payslip-%s-%s.pdf", emp.Code, p.Period()),
		Content:  content,
	}, nil
}

func setNet(p *domain.Payroll) error {
	net := p.ComputeNet()
	if net.IsNegative() {
		return apperrors.NewValidationError("net salary cannot be negative", map[string]any{"net_salary": net.StringFixed(2)})
	}
	p.NetSalary = net
	return nil
}

func checkAmount(errs fieldErrors, field string, amount decimal.Decimal) {
	errs.check(!amount.IsNegative(), field, "must not be negative")
}

func checkPeriod(errs fieldErrors, month, year int) {
	errs.check(month >= 1 && month <= 12, "month", "must be between 1 and 12")
	errs.check(year >= minPayrollYear && year <= maxPayrollYear, "year", fmt.Sprintf("must be between %d and %d", minPayrollYear, maxPayrollYear))
}
