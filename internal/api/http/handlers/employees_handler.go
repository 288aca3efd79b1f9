package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	"github.com/emsworks/employment-service/internal/service"
)

// EmployeesHandler exposes employee records.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

// Create handles POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateEmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	joined, err := parseOptionalDate("date_of_joining", req.DateOfJoining)
	if err != nil {
		return err
	}

	emp, err := h.employees.Create(c.UserContext(), actor, service.EmployeeInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		DepartmentID:  req.DepartmentID,
		Designation:   req.Designation,
		DateOfJoining: joined,
		Salary:        req.Salary,
		Status:        req.Status,
		Address:       req.Address,
		Password:      req.Password,
		Role:          req.Role,
	})
	if err != nil {
		return err
	}
	return created(c, dto.NewEmployeeResponse(emp))
}

// List handles GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	status, err := queryEnum[domain.EmployeeStatus](c, "status")
	if err != nil {
		return err
	}
	filter := repository.EmployeeFilter{
		DepartmentID: queryString(c, "department_id"),
		Status:       status,
		Search:       c.Query("search"),
		Page:         parsePage(c),
	}
	emps, total, err := h.employees.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return listResponse(c, dto.NewEmployeeList(emps), total, filter.Page)
}

// Me handles GET /employees/me.
func (h *EmployeesHandler) Me(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	emp, err := h.employees.Me(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, dto.NewEmployeeResponse(emp))
}

// Get handles GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	emp, err := h.employees.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewEmployeeResponse(emp))
}

// Update handles PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.UpdateEmployeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	input := service.EmployeeUpdateInput{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		DepartmentID: req.DepartmentID,
		Designation:  req.Designation,
		Salary:       req.Salary,
		Status:       req.Status,
		Address:      req.Address,
	}
	if req.DateOfJoining != nil {
		joined, err := parseDate("date_of_joining", *req.DateOfJoining)
		if err != nil {
			return err
		}
		input.DateOfJoining = &joined
	}

	emp, err := h.employees.Update(c.UserContext(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return respond(c, dto.NewEmployeeResponse(emp))
}

// Delete handles DELETE /employees/:id. The record is kept and marked terminated.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	emp, err := h.employees.Terminate(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewEmployeeResponse(emp))
}
