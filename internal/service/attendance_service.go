package service

import (
	"context"
	"strings"
	"time"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// AttendanceService records daily check-ins and manual attendance entries.
type AttendanceService struct {
	attendance repository.AttendanceRepository
	employees  repository.EmployeeRepository
	loc        *time.Location
	now        func() time.Time
}

// AttendanceInput describes a manual attendance entry.
type AttendanceInput struct {
	EmployeeID string
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     domain.AttendanceStatus
	Notes      string
}

// AttendanceUpdateInput holds optional attendance changes.
type AttendanceUpdateInput struct {
	Date     *time.Time
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *domain.AttendanceStatus
	Notes    *string
}

// NewAttendanceService constructs the service. loc decides which calendar day "today" is.
func NewAttendanceService(attendance repository.AttendanceRepository, employees repository.EmployeeRepository, loc *time.Location) *AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{attendance: attendance, employees: employees, loc: loc, now: time.Now}
}

func (s *AttendanceService) today() (time.Time, time.Time) {
	now := s.now()
	return now, domain.DateOf(now, s.loc)
}

// CheckIn opens today's record for the caller.
func (s *AttendanceService) CheckIn(ctx context.Context, actor Actor, notes string) (*domain.Attendance, error) {
	emp, err := requireEmployee(actor)
	if err != nil {
		return nil, err
	}
	now, today := s.today()
	details := map[string]any{"date": today.Format(domain.DateLayout)}

	if _, err := s.attendance.GetByEmployeeDate(ctx, emp.ID, today); err == nil {
		return nil, apperrors.NewConflict("already checked in today", details)
	} else if !apperrors.IsNoRows(err) {
		return nil, apperrors.MapError(err)
	}

	att := &domain.Attendance{
		EmployeeID: emp.ID,
		Date:       today,
		CheckIn:    &now,
		Status:     domain.AttendancePresent,
		Notes:      strings.TrimSpace(notes),
	}
	if err := s.attendance.Create(ctx, att); err != nil {
		return nil, conflictOnDuplicate(err, "already checked in today", details)
	}
	return att, nil
}

// CheckOut closes today's record and computes work hours.
func (s *AttendanceService) CheckOut(ctx context.Context, actor Actor, notes string) (*domain.Attendance, error) {
	emp, err := requireEmployee(actor)
	if err != nil {
		return nil, err
	}
	now, today := s.today()

	att, err := s.attendance.GetByEmployeeDate(ctx, emp.ID, today)
	if err != nil {
		return nil, notFound(err, "attendance record for today")
	}
	if att.CheckIn == nil {
		return nil, apperrors.NewConflict("no check-in recorded today", nil)
	}
	if att.CheckOut != nil {
		return nil, apperrors.NewConflict("already checked out today", nil)
	}

	att.CheckOut = &now
	att.RecomputeWorkHours()
	if notes = strings.TrimSpace(notes); notes != "" {
		att.Notes = notes
	}
	if err := s.attendance.Update(ctx, att); err != nil {
		return nil, apperrors.MapError(err)
	}
	return att, nil
}

// Today returns the caller's record for today.
func (s *AttendanceService) Today(ctx context.Context, actor Actor) (*domain.Attendance, error) {
	emp, err := requireEmployee(actor)
	if err != nil {
		return nil, err
	}
	_, today := s.today()
	att, err := s.attendance.GetByEmployeeDate(ctx, emp.ID, today)
	if err != nil {
		return nil, notFound(err, "attendance record for today")
	}
	return att, nil
}

// List returns attendance records. Employees only see their own.
func (s *AttendanceService) List(ctx context.Context, actor Actor, filter repository.AttendanceFilter) ([]domain.Attendance, int, error) {
	if err := scopeToSelf(actor, &filter.EmployeeID); err != nil {
		return nil, 0, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, apperrors.NewValidationError("invalid date range", map[string]any{"to": "must not precede from"})
	}
	records, total, err := s.attendance.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return records, total, nil
}

// Create records a manual attendance entry. Managers only.
func (s *AttendanceService) Create(ctx context.Context, actor Actor, input AttendanceInput) (*domain.Attendance, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if input.Status == "" {
		input.Status = domain.AttendancePresent
	}

	errs := fieldErrors{}
	errs.require("employee_id", input.EmployeeID)
	errs.check(!input.Date.IsZero(), "date", "is required")
	errs.check(input.Status.Valid(), "status", "must be one of Present, Absent, HalfDay, Leave")
	checkTimes(errs, input.CheckIn, input.CheckOut)
	if err := errs.err("invalid attendance"); err != nil {
		return nil, err
	}
	if _, err := s.employees.GetByID(ctx, input.EmployeeID); err != nil {
		return nil, notFound(err, "employee")
	}

	att := &domain.Attendance{
		EmployeeID: input.EmployeeID,
		Date:       domain.TruncateDate(input.Date),
		CheckIn:    input.CheckIn,
		CheckOut:   input.CheckOut,
		Status:     input.Status,
		Notes:      strings.TrimSpace(input.Notes),
	}
	att.RecomputeWorkHours()

	details := map[string]any{"employee_id": att.EmployeeID, "date": att.Date.Format(domain.DateLayout)}
	if _, err := s.attendance.GetByEmployeeDate(ctx, att.EmployeeID, att.Date); err == nil {
		return nil, apperrors.NewConflict("attendance already recorded for this date", details)
	} else if !apperrors.IsNoRows(err) {
		return nil, apperrors.MapError(err)
	}
	if err := s.attendance.Create(ctx, att); err != nil {
		return nil, conflictOnDuplicate(err, "attendance already recorded for this date", details)
	}
	return att, nil
}

// Update corrects an attendance record. Managers only.
func (s *AttendanceService) Update(ctx context.Context, actor Actor, id string, input AttendanceUpdateInput) (*domain.Attendance, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	att, err := s.attendance.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "attendance record")
	}

	if input.Date != nil {
		att.Date = domain.TruncateDate(*input.Date)
	}
	if input.CheckIn != nil {
		att.CheckIn = input.CheckIn
	}
	if input.CheckOut != nil {
		att.CheckOut = input.CheckOut
	}
	if input.Status != nil {
		att.Status = *input.Status
	}
	if input.Notes != nil {
		att.Notes = strings.TrimSpace(*input.Notes)
	}

	errs := fieldErrors{}
	errs.check(att.Status.Valid(), "status", "must be one of Present, Absent, HalfDay, Leave")
	checkTimes(errs, att.CheckIn, att.CheckOut)
	if err := errs.err("invalid attendance update"); err != nil {
		return nil, err
	}
	att.RecomputeWorkHours()

	details := map[string]any{"employee_id": att.EmployeeID, "date": att.Date.Format(domain.DateLayout)}
	if input.Date != nil {
		existing, err := s.attendance.GetByEmployeeDate(ctx, att.EmployeeID, att.Date)
		if err == nil && existing.ID != att.ID {
			return nil, apperrors.NewConflict("attendance already recorded for this date", details)
		}
		if err != nil && !apperrors.IsNoRows(err) {
			return nil, apperrors.MapError(err)
		}
	}
	if err := s.attendance.Update(ctx, att); err != nil {
		return nil, conflictOnDuplicate(err, "attendance already recorded for this date", details)
	}
	return att, nil
}

// Delete removes an attendance record. Managers only.
func (s *AttendanceService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	if err := s.attendance.Delete(ctx, id); err != nil {
		return notFound(err, "attendance record")
	}
	return nil
}

func checkTimes(errs fieldErrors, checkIn, checkOut *time.Time) {
	if checkOut != nil && checkIn == nil {
		errs["check_in"] = "is required when check_out is set"
	}
	if checkIn != nil && checkOut != nil && checkOut.Before(*checkIn) {
		errs["check_out"] = "must not precede check_in"
	}
}
