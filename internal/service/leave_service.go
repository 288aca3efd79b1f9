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

// LeaveService handles leave requests and their review.
type LeaveService struct {
	leaves repository.LeaveRepository
	events publisher
	now    func() time.Time
}

// LeaveInput describes a new leave request.
type LeaveInput struct {
	Type      domain.LeaveType
	StartDate time.Time
	EndDate   time.Time
	Reason    string
}

// NewLeaveService constructs the service.
func NewLeaveService(leaves repository.LeaveRepository, dispatcher events.Dispatcher, logger *zap.Logger) *LeaveService {
	return &LeaveService{leaves: leaves, events: newPublisher(dispatcher, logger), now: time.Now}
}

// Apply files a leave request for the caller. Requests may not overlap the caller's pending or approved leave.
func (s *LeaveService) Apply(ctx context.Context, actor Actor, input LeaveInput) (*domain.LeaveRequest, error) {
	emp, err := requireEmployee(actor)
	if err != nil {
		return nil, err
	}

	errs := fieldErrors{}
	errs.check(input.Type.Valid(), "leave_type", "must be one of Sick, Casual, Annual, Unpaid")
	errs.check(!input.StartDate.IsZero(), "start_date", "is required")
	errs.check(!input.EndDate.IsZero(), "end_date", "is required")
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() {
		errs.check(!input.EndDate.Before(input.StartDate), "end_date", "must not precede start_date")
	}
	if err := errs.err("invalid leave request"); err != nil {
		return nil, err
	}

	start, end := domain.TruncateDate(input.StartDate), domain.TruncateDate(input.EndDate)
	overlapping, err := s.leaves.ListBlocking(ctx, emp.ID, start, end)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if len(overlapping) > 0 {
		return nil, apperrors.NewConflict("leave overlaps an existing request", map[string]any{
			"conflicting_id": overlapping[0].ID,
			"status":         overlapping[0].Status,
		})
	}

	leave := &domain.LeaveRequest{
		EmployeeID: emp.ID,
		Type:       input.Type,
		StartDate:  start,
		EndDate:    end,
		TotalDays:  domain.InclusiveDays(start, end),
		Reason:     strings.TrimSpace(input.Reason),
		Status:     domain.LeavePending,
	}
	if err := s.leaves.Create(ctx, leave); err != nil {
		if apperrors.IsExclusionViolation(err) {
			return nil, apperrors.NewConflict("leave overlaps an existing request", nil)
		}
		return nil, apperrors.MapError(err)
	}

	s.events.publish(ctx, events.EventLeaveRequested, leave.ID, actor, events.LeaveRequestedPayload{
		EmployeeID: leave.EmployeeID,
		Type:       leave.Type,
		StartDate:  formatDate(&leave.StartDate),
		EndDate:    formatDate(&leave.EndDate),
		TotalDays:  leave.TotalDays,
	})
	return leave, nil
}

// List returns leave requests. Employees only see their own.
func (s *LeaveService) List(ctx context.Context, actor Actor, filter repository.LeaveFilter) ([]domain.LeaveRequest, int, error) {
	if err := scopeToSelf(actor, &filter.EmployeeID); err != nil {
		return nil, 0, err
	}
	leaves, total, err := s.leaves.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return leaves, total, nil
}

// Get fetches a leave request visible to the caller.
func (s *LeaveService) Get(ctx context.Context, actor Actor, id string) (*domain.LeaveRequest, error) {
	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "leave request")
	}
	if err := canView(actor, leave.EmployeeID); err != nil {
		return nil, err
	}
	return leave, nil
}

// Review approves or rejects a pending request. Managers only, and never their own request.
func (s *LeaveService) Review(ctx context.Context, actor Actor, id string, status domain.LeaveStatus, comment string) (*domain.LeaveRequest, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if status != domain.LeaveApproved && status != domain.LeaveRejected {
		return nil, apperrors.NewValidationError("invalid review", map[string]any{"status": "must be Approved or Rejected"})
	}

	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "leave request")
	}
	if actor.Owns(leave.EmployeeID) {
		return nil, apperrors.NewForbidden("cannot review your own leave request")
	}
	if leave.Status != domain.LeavePending {
		return nil, apperrors.NewConflict("leave request already reviewed", map[string]any{"status": leave.Status})
	}

	now := s.now()
	reviewer := actor.User.ID
	leave.Status = status
	leave.ReviewedBy = &reviewer
	leave.ReviewComment = strings.TrimSpace(comment)
	leave.ReviewedAt = &now
	if err := s.leaves.Update(ctx, leave, domain.LeavePending); err != nil {
		return nil, conflictOnStale(err, "leave request already reviewed")
	}

	s.events.publish(ctx, events.EventLeaveReviewed, leave.ID, actor, events.LeaveReviewedPayload{
		EmployeeID: leave.EmployeeID,
		Status:     leave.Status,
		Comment:    leave.ReviewComment,
	})
	return leave, nil
}

// Delete cancels a request. Owners may cancel while it is pending; managers may delete any.
func (s *LeaveService) Delete(ctx context.Context, actor Actor, id string) error {
	leave, err := s.leaves.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "leave request")
	}
	var onlyIf domain.LeaveStatus
	if !actor.IsManager() {
		onlyIf = domain.LeavePending
		if !actor.Owns(leave.EmployeeID) {
			return apperrors.NewForbidden("not allowed to delete this leave request")
		}
		if leave.Status != domain.LeavePending {
			return apperrors.NewConflict("only pending requests can be cancelled", map[string]any{"status": leave.Status})
		}
	}
	if err := s.leaves.Delete(ctx, id, onlyIf); err != nil {
		if apperrors.IsNoRows(err) {
			return apperrors.NewNotFound("leave request", nil)
		}
		return conflictOnStale(err, "only pending requests can be cancelled")
	}
	return nil
}
