package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/events"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// TaskService assigns and tracks work items.
type TaskService struct {
	tasks     repository.TaskRepository
	employees repository.EmployeeRepository
	events    publisher
	now       func() time.Time
}

// TaskInput describes a task create or update. Nil fields are left unchanged on update.
type TaskInput struct {
	Title       *string
	Description *string
	AssignedTo  *string
	Priority    *domain.TaskPriority
	Status      *domain.TaskStatus
	DueDate     *time.Time
	ClearDue    bool
}

// NewTaskService constructs the service.
func NewTaskService(tasks repository.TaskRepository, employees repository.EmployeeRepository, dispatcher events.Dispatcher, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, employees: employees, events: newPublisher(dispatcher, logger), now: time.Now}
}

// Create assigns a new task. Managers only.
func (s *TaskService) Create(ctx context.Context, actor Actor, input TaskInput) (*domain.Task, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	task := &domain.Task{
		AssignedBy: actor.User.ID,
		Priority:   domain.TaskPriorityMedium,
		Status:     domain.TaskPending,
	}
	if err := s.apply(ctx, task, input, true); err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishAssigned(ctx, actor, task)
	return task, nil
}

// Update edits a task. Managers only.
func (s *TaskService) Update(ctx context.Context, actor Actor, id string, input TaskInput) (*domain.Task, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "task")
	}
	previousAssignee, previousStatus := task.AssignedTo, task.Status
	if err := s.apply(ctx, task, input, false); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	if task.AssignedTo != previousAssignee {
		s.publishAssigned(ctx, actor, task)
	}
	if task.Status != previousStatus {
		s.publishStatus(ctx, actor, task, previousStatus)
	}
	return task, nil
}

// Delete removes a task. Managers only.
func (s *TaskService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return notFound(err, "task")
	}
	return nil
}

// List returns tasks. Employees only see tasks assigned to them.
func (s *TaskService) List(ctx context.Context, actor Actor, filter repository.TaskFilter) ([]domain.Task, int, error) {
	if err := scopeToSelf(actor, &filter.AssignedTo); err != nil {
		return nil, 0, err
	}
	tasks, total, err := s.tasks.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return tasks, total, nil
}

// Get fetches a task visible to the caller.
func (s *TaskService) Get(ctx context.Context, actor Actor, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "task")
	}
	if err := canView(actor, task.AssignedTo); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateStatus lets the assignee or a manager move a task. Completion stamps CompletedAt.
func (s *TaskService) UpdateStatus(ctx context.Context, actor Actor, id string, status domain.TaskStatus) (*domain.Task, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": "must be one of Pending, InProgress, Completed"})
	}
	task, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	previous := task.Status
	task.SetStatus(status, s.now())
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	if previous != status {
		s.publishStatus(ctx, actor, task, previous)
	}
	return task, nil
}

func (s *TaskService) apply(ctx context.Context, task *domain.Task, input TaskInput, creating bool) error {
	errs := fieldErrors{}
	if input.Title != nil || creating {
		title := ""
		if input.Title != nil {
			title = strings.TrimSpace(*input.Title)
		}
		errs.require("title", title)
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.AssignedTo != nil || creating {
		assignee := ""
		if input.AssignedTo != nil {
			assignee = strings.TrimSpace(*input.AssignedTo)
		}
		errs.require("assigned_to", assignee)
		task.AssignedTo = assignee
	}
	if input.Priority != nil {
		errs.check(input.Priority.Valid(), "priority", "must be one of Low, Medium, High")
		task.Priority = *input.Priority
	}
	if input.Status != nil {
		errs.check(input.Status.Valid(), "status", "must be one of Pending, InProgress, Completed")
		if input.Status.Valid() {
			task.SetStatus(*input.Status, s.now())
		}
	}
	if input.DueDate != nil {
		due := domain.TruncateDate(*input.DueDate)
		task.DueDate = &due
	} else if input.ClearDue {
		task.DueDate = nil
	}
	if err := errs.err("invalid task"); err != nil {
		return err
	}

	if input.AssignedTo != nil || creating {
		emp, err := s.employees.GetByID(ctx, task.AssignedTo)
		if err != nil {
			if apperrors.IsNoRows(err) {
				return apperrors.NewValidationError("unknown assignee", map[string]any{"assigned_to": task.AssignedTo})
			}
			return apperrors.MapError(err)
		}
		if emp.Status == domain.EmployeeStatusTerminated {
			return apperrors.NewConflict("cannot assign tasks to a terminated employee", map[string]any{"assigned_to": emp.ID})
		}
	}
	return nil
}

func (s *TaskService) publishAssigned(ctx context.Context, actor Actor, task *domain.Task) {
	s.events.publish(ctx, events.EventTaskAssigned, task.ID, actor, events.TaskAssignedPayload{
		AssignedTo: task.AssignedTo,
		Title:      task.Title,
		Priority:   task.Priority,
		DueDate:    formatDate(task.DueDate),
	})
}

func (s *TaskService) publishStatus(ctx context.Context, actor Actor, task *domain.Task, previous domain.TaskStatus) {
	s.events.publish(ctx, events.EventTaskStatusChanged, task.ID, actor, events.TaskStatusChangedPayload{
		AssignedTo: task.AssignedTo,
		OldStatus:  previous,
		NewStatus:  task.Status,
	})
}
