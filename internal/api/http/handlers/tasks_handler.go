package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	"github.com/emsworks/employment-service/internal/service"
)

// TasksHandler exposes task assignment endpoints.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(tasks *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

// Create handles POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := parseTaskInput(c)
	if err != nil {
		return err
	}
	task, err := h.tasks.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return created(c, dto.NewTaskResponse(task))
}

// Update handles PUT /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := parseTaskInput(c)
	if err != nil {
		return err
	}
	task, err := h.tasks.Update(c.UserContext(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return respond(c, dto.NewTaskResponse(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.tasks.Delete(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List handles GET /tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	status, err := queryEnum[domain.TaskStatus](c, "status")
	if err != nil {
		return err
	}
	priority, err := queryEnum[domain.TaskPriority](c, "priority")
	if err != nil {
		return err
	}
	filter := repository.TaskFilter{
		AssignedTo: queryString(c, "assigned_to"),
		Status:     status,
		Priority:   priority,
		Page:       parsePage(c),
	}
	tasks, total, err := h.tasks.List(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return listResponse(c, dto.NewTaskList(tasks), total, filter.Page)
}

// Get handles GET /tasks/:id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	task, err := h.tasks.Get(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewTaskResponse(task))
}

// UpdateStatus handles PATCH /tasks/:id/status.
func (h *TasksHandler) UpdateStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	task, err := h.tasks.UpdateStatus(c.UserContext(), actor, c.Params("id"), domain.TaskStatus(req.Status))
	if err != nil {
		return err
	}
	return respond(c, dto.NewTaskResponse(task))
}

func parseTaskInput(c *fiber.Ctx) (service.TaskInput, error) {
	var req dto.TaskRequest
	if err := parseBody(c, &req); err != nil {
		return service.TaskInput{}, err
	}
	input := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
		Status:      req.Status,
	}
	if req.DueDate != nil {
		if strings.TrimSpace(*req.DueDate) == "" {
			input.ClearDue = true
			return input, nil
		}
		due, err := parseDate("due_date", *req.DueDate)
		if err != nil {
			return service.TaskInput{}, err
		}
		input.DueDate = &due
	}
	return input, nil
}
