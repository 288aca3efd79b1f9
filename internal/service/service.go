package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/events"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// Actor is the authenticated caller as seen by service operations.
type Actor struct {
	User *domain.User
	// Employee is the HR record linked to User, nil when the account has none.
	Employee *domain.Employee
}

// IsManager reports whether the actor may manage other people's records.
func (a Actor) IsManager() bool {
	return a.User != nil && a.User.Role.CanManage()
}

// Owns reports whether employeeID is the actor's own record.
func (a Actor) Owns(employeeID string) bool {
	return a.Employee != nil && a.Employee.ID == employeeID
}

func (a Actor) event() events.Actor {
	if a.User == nil {
		return events.Actor{}
	}
	return events.Actor{UserID: a.User.ID, Role: a.User.Role}
}

func requireAdmin(actor Actor) error {
	if actor.User == nil || actor.User.Role != domain.RoleAdmin {
		return apperrors.NewForbidden("admin role required")
	}
	return nil
}

func requireManager(actor Actor) error {
	if !actor.IsManager() {
		return apperrors.NewForbidden("admin or hr role required")
	}
	return nil
}

func requireEmployee(actor Actor) (*domain.Employee, error) {
	if actor.Employee == nil {
		return nil, apperrors.NewNotFound("employee profile", map[string]any{"reason": "no employee record is linked to this account"})
	}
	return actor.Employee, nil
}

// canView applies the shared visibility rule: managers see everything, employees see their own records.
func canView(actor Actor, ownerEmployeeID string) error {
	if actor.IsManager() || actor.Owns(ownerEmployeeID) {
		return nil
	}
	return apperrors.NewForbidden("not allowed to access this record")
}

// scopeToSelf pins list filters to the actor's own employee record unless the actor is a manager.
func scopeToSelf(actor Actor, employeeID **string) error {
	if actor.IsManager() {
		return nil
	}
	emp, err := requireEmployee(actor)
	if err != nil {
		return err
	}
	id := emp.ID
	*employeeID = &id
	return nil
}

// notFound converts missing rows into a NOT_FOUND error naming resource.
func notFound(err error, resource string) error {
	if apperrors.IsNoRows(err) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}

// conflictOnDuplicate converts unique violations into a CONFLICT error with message.
func conflictOnDuplicate(err error, message string, details map[string]any) error {
	if apperrors.IsUniqueViolation(err) {
		return apperrors.NewConflict(message, details)
	}
	return apperrors.MapError(err)
}

// conflictOnStale reports a status-guarded write that lost a race as CONFLICT.
func conflictOnStale(err error, message string) error {
	if errors.Is(err, repository.ErrStaleStatus) {
		return apperrors.NewConflict(message, nil)
	}
	return apperrors.MapError(err)
}

// fieldErrors collects validation failures keyed by field name.
type fieldErrors map[string]any

func (f fieldErrors) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
	}
}

func (f fieldErrors) email(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		f[field] = "is required"
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		f[field] = "must be a valid email address"
	}
}

func (f fieldErrors) check(ok bool, field, message string) {
	if !ok {
		f[field] = message
	}
}

func (f fieldErrors) err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError(message, f)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// publisher delivers events without failing the calling operation.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

func newPublisher(dispatcher events.Dispatcher, logger *zap.Logger) publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return publisher{dispatcher: dispatcher, logger: logger, now: time.Now}
}

func (p publisher) publish(ctx context.Context, eventType events.EventType, entityID string, actor Actor, payload any) {
	if p.dispatcher == nil {
		return
	}
	event := events.New(eventType, entityID, actor.event(), p.now(), payload)
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.logger.Warn("publish event failed",
			zap.String("event_type", string(eventType)),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}
