package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/service"
)

// DepartmentsHandler exposes department endpoints.
type DepartmentsHandler struct {
	departments *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departments *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departments}
}

// List handles GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	includeInactive, err := queryBool(c, "include_inactive")
	if err != nil {
		return err
	}
	depts, err := h.departments.List(c.UserContext(), actor, includeInactive != nil && *includeInactive)
	if err != nil {
		return err
	}
	return respond(c, dto.NewDepartmentList(depts))
}

// Get handles GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	dept, err := h.departments.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewDepartmentResponse(dept))
}

// Create handles POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	dept, err := h.departments.Create(c.UserContext(), actor, departmentInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewDepartmentResponse(dept))
}

// Update handles PUT /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	dept, err := h.departments.Update(c.UserContext(), actor, c.Params("id"), departmentInput(req))
	if err != nil {
		return err
	}
	return respond(c, dto.NewDepartmentResponse(dept))
}

func departmentInput(req dto.DepartmentRequest) service.DepartmentInput {
	return service.DepartmentInput{Name: req.Name, Description: req.Description, IsActive: req.IsActive}
}
