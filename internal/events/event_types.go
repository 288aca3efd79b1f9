package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/emsworks/employment-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeaveRequested         EventType = "leave_requested"
	EventLeaveReviewed          EventType = "leave_reviewed"
	EventPayrollGenerated       EventType = "payroll_generated"
	EventPayrollStatusChanged   EventType = "payroll_status_changed"
	EventTaskAssigned           EventType = "task_assigned"
	EventTaskStatusChanged      EventType = "task_status_changed"
	EventCandidateApplied       EventType = "candidate_applied"
	EventCandidateStatusChanged EventType = "candidate_status_changed"
)

// AllEventTypes lists every event the service publishes.
var AllEventTypes = []EventType{
	EventLeaveRequested,
	EventLeaveReviewed,
	EventPayrollGenerated,
	EventPayrollStatusChanged,
	EventTaskAssigned,
	EventTaskStatusChanged,
	EventCandidateApplied,
	EventCandidateStatusChanged,
}

// Actor identifies who caused an event. UserID is empty for public callers.
type Actor struct {
	UserID string      `json:"user_id,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	EntityID  string    `json:"entity_id"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New stamps a fresh event.
func New(eventType EventType, entityID string, actor Actor, at time.Time, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Actor:     actor,
		Timestamp: at.UTC(),
		Payload:   payload,
	}
}

// LeaveRequestedPayload payload.
type LeaveRequestedPayload struct {
	EmployeeID string           `json:"employee_id"`
	Type       domain.LeaveType `json:"leave_type"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	TotalDays  int              `json:"total_days"`
}

// LeaveReviewedPayload payload.
type LeaveReviewedPayload struct {
	EmployeeID string             `json:"employee_id"`
	Status     domain.LeaveStatus `json:"status"`
	Comment    string             `json:"comment,omitempty"`
}

// PayrollGeneratedPayload payload.
type PayrollGeneratedPayload struct {
	Period  string `json:"period"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
}

// PayrollStatusChangedPayload payload.
type PayrollStatusChangedPayload struct {
	EmployeeID string               `json:"employee_id"`
	Period     string               `json:"period"`
	OldStatus  domain.PayrollStatus `json:"old_status"`
	NewStatus  domain.PayrollStatus `json:"new_status"`
}

// TaskAssignedPayload payload.
type TaskAssignedPayload struct {
	AssignedTo string              `json:"assigned_to"`
	Title      string              `json:"title"`
	Priority   domain.TaskPriority `json:"priority"`
	DueDate    string              `json:"due_date,omitempty"`
}

// TaskStatusChangedPayload payload.
type TaskStatusChangedPayload struct {
	AssignedTo string            `json:"assigned_to"`
	OldStatus  domain.TaskStatus `json:"old_status"`
	NewStatus  domain.TaskStatus `json:"new_status"`
}

// CandidateAppliedPayload payload.
type CandidateAppliedPayload struct {
	JobID string `json:"job_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CandidateStatusChangedPayload payload.
type CandidateStatusChangedPayload struct {
	JobID     string                 `json:"job_id"`
	OldStatus domain.CandidateStatus `json:"old_status"`
	NewStatus domain.CandidateStatus `json:"new_status"`
}
