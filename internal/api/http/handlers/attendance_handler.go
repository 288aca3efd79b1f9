package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	"github.com/emsworks/employment-service/internal/service"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// AttendanceHandler exposes check-in/out and attendance records.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs handler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// CheckIn handles POST /attendance/check-in.
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	req, err := parseCheckRequest(c)
	if err != nil {
		return err
	}
	att, err := h.attendance.CheckIn(c.UserContext(), actor, req.Notes)
	if err != nil {
		return err
	}
	return created(c, dto.NewAttendanceResponse(att))
}

// CheckOut handles POST /attendance/check-out.
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	req, err := parseCheckRequest(c)
	if err != nil {
		return err
	}
	att, err := h.attendance.CheckOut(c.UserContext(), actor, req.Notes)
	if err != nil {
		return err
	}
	return respond(c, dto.NewAttendanceResponse(att))
}

// Today handles GET /attendance/today.
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	att, err := h.attendance.Today(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return respond(c, dto.NewAttendanceResponse(att))
}

// List handles GET /attendance.
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	from, err := queryDate(c, "from")
	if err != nil {
		return err
	}
	to, err := queryDate(c, "to")
	if err != nil {
		return err
	}
	status, err := queryEnum[domain.AttendanceStatus](c, "status")
	if err != nil {
		return err
	}
	filter := repository.AttendanceFilter{
		EmployeeID: queryString(c, "employee_id"),
		From:       from,
		To:         to,
		Status:     status,
		Page:       parsePage(c),
	}
	records, total, err := h.attendance.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return listResponse(c, dto.NewAttendanceList(records), total, filter.Page)
}

// Create handles POST /attendance.
func (h *AttendanceHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.AttendanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Date == nil {
		return apperrors.NewValidationError("invalid attendance", map[string]any{"date": "is required"})
	}
	date, err := parseDate("date", *req.Date)
	if err != nil {
		return err
	}
	input := service.AttendanceInput{
		EmployeeID: req.EmployeeID,
		Date:       date,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
	}
	if req.Status != nil {
		input.Status = *req.Status
	}
	if req.Notes != nil {
		input.Notes = *req.Notes
	}

	att, err := h.attendance.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return created(c, dto.NewAttendanceResponse(att))
}

// Update handles PUT /attendance/:id.
func (h *AttendanceHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.AttendanceRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	input := service.AttendanceUpdateInput{
		CheckIn:  req.CheckIn,
		CheckOut: req.CheckOut,
		Status:   req.Status,
		Notes:    req.Notes,
	}
	if req.Date != nil {
		date, err := parseDate("date", *req.Date)
		if err != nil {
			return err
		}
		input.Date = &date
	}

	att, err := h.attendance.Update(c.UserContext(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return respond(c, dto.NewAttendanceResponse(att))
}

// Delete handles DELETE /attendance/:id.
func (h *AttendanceHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.attendance.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseCheckRequest accepts an empty body.
func parseCheckRequest(c *fiber.Ctx) (dto.CheckRequest, error) {
	var req dto.CheckRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	return req, parseBody(c, &req)
}
