package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	"github.com/emsworks/employment-service/internal/service"
)

// PayrollHandler exposes payroll records and payslips.
type PayrollHandler struct {
	payroll *service.PayrollService
}

// NewPayrollHandler constructs handler.
func NewPayrollHandler(payroll *service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payroll: payroll}
}

// Create handles POST /payroll.
func (h *PayrollHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreatePayrollRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	p, err := h.payroll.Create(c.UserContext(), actor, service.PayrollInput{
		EmployeeID:  req.EmployeeID,
		Month:       req.Month,
		Year:        req.Year,
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Bonus:       req.Bonus,
		Tax:         req.Tax,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return created(c, dto.NewPayrollResponse(p))
}

// Update handles PUT /payroll/:id.
func (h *PayrollHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.UpdatePayrollRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	p, err := h.payroll.Update(c.UserContext(), actor, c.Params("id"), service.PayrollUpdateInput{
		BasicSalary: req.BasicSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Bonus:       req.Bonus,
		Tax:         req.Tax,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return respond(c, dto.NewPayrollResponse(p))
}

// UpdateStatus handles PATCH /payroll/:id/status.
func (h *PayrollHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	p, err := h.payroll.UpdateStatus(c.UserContext(), actor, c.Params("id"), domain.PayrollStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, dto.NewPayrollResponse(p))
}

// Delete handles DELETE /payroll/:id.
func (h *PayrollHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.payroll.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Generate handles POST /payroll/generate.
func (h *PayrollHandler) Generate(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.GeneratePayrollRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	result, err := h.payroll.Generate(c.UserContext(), actor, req.Month, req.Year)
	if err != nil {
		return err
	}
	return created(c, dto.GenerateResponse{
		Month:   result.Month,
		Year:    result.Year,
		Created: dto.NewPayrollList(result.Created),
		Skipped: result.Skipped,
	})
}

// List handles GET /payroll.
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	month, err := queryInt(c, "month")
	if err != nil {
		return err
	}
	year, err := queryInt(c, "year")
	if err != nil {
		return err
	}
	status, err := queryEnum[domain.PayrollStatus](c, "status")
	if err != nil {
		return err
	}
	filter := repository.PayrollFilter{
		EmployeeID: queryString(c, "employee_id"),
		Month:      month,
		Year:       year,
		Status:     status,
		Page:       parsePage(c),
	}
	records, total, err := h.payroll.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return listResponse(c, dto.NewPayrollList(records), total, filter.Page)
}

// Get handles GET /payroll/:id.
func (h *PayrollHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	p, err := h.payroll.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewPayrollResponse(p))
}

// Payslip handles GET /payroll/:id/payslip.
func (h *PayrollHandler) Payslip(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	slip, err := h.payroll.Payslip(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", slip.FileName))
	return c.Send(slip.Content)
}
