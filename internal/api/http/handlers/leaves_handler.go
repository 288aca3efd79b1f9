package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	"github.com/emsworks/employment-service/internal/service"
)

// LeavesHandler exposes leave requests.
type LeavesHandler struct {
	leaves *service.LeaveService
}

// NewLeavesHandler constructs handler.
func NewLeavesHandler(leaves *service.LeaveService) *LeavesHandler {
	return &LeavesHandler{leaves: leaves}
}

// Apply handles POST /leaves.
func (h *LeavesHandler) Apply(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.LeaveRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return err
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return err
	}

	leave, err := h.leaves.Apply(c.UserContext(), actor, service.LeaveInput{
		Type:      req.LeaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return created(c, dto.NewLeaveResponse(leave))
}

// List handles GET /leaves.
func (h *LeavesHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	status, err := queryEnum[domain.LeaveStatus](c, "status")
	if err != nil {
		return err
	}
	leaveType, err := queryEnum[domain.LeaveType](c, "leave_type")
	if err != nil {
		return err
	}
	filter := repository.LeaveFilter{
		EmployeeID: queryString(c, "employee_id"),
		Status:     status,
		Type:       leaveType,
		Page:       parsePage(c),
	}
	leaves, total, err := h.leaves.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return listResponse(c, dto.NewLeaveList(leaves), total, filter.Page)
}

// Get handles GET /leaves/:id.
func (h *LeavesHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	leave, err := h.leaves.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewLeaveResponse(leave))
}

// Review handles PATCH /leaves/:id/review.
func (h *LeavesHandler) Review(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	leave, err := h.leaves.Review(c.UserContext(), actor, c.Params("id"), domain.LeaveStatus(req.Status), req.Comment)
	if err != nil {
		return err
	}
	return respond(c, dto.NewLeaveResponse(leave))
}

// Delete handles DELETE /leaves/:id.
func (h *LeavesHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.leaves.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
