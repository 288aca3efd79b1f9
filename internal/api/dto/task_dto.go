package dto

import (
	"time"

	"github.com/emsworks/employment-service/internal/domain"
)

// TaskRequest payload for task create and update. due_date uses YYYY-MM-DD; an empty string clears it.
type TaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	AssignedTo  *string              `json:"assigned_to"`
	Priority    *domain.TaskPriority `json:"priority"`
	Status      *domain.TaskStatus   `json:"status"`
	DueDate     *string              `json:"due_date"`
}

// TaskResponse view of a task.
type TaskResponse struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	AssignedTo  string              `json:"assigned_to"`
	AssignedBy  string              `json:"assigned_by"`
	Priority    domain.TaskPriority `json:"priority"`
	Status      domain.TaskStatus   `json:"status"`
	DueDate     *string             `json:"due_date"`
	CompletedAt *time.Time          `json:"completed_at"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewTaskResponse maps a task.
func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		AssignedBy:  t.AssignedBy,
		Priority:    t.Priority,
		Status:      t.Status,
		DueDate:     datePtr(t.DueDate),
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// NewTaskList maps tasks.
func NewTaskList(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
