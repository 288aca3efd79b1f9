package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
)

func newAttendanceFixture(t *testing.T, loc *time.Location) (*AttendanceService, *fakeAttendance, *domain.Employee) {
	t.Helper()
	emp := seedEmployee("worker")
	att := newFakeAttendance()
	svc := NewAttendanceService(att, newFakeEmployees(emp), loc)
	return svc, att, emp
}

func TestAttendanceService_CheckInCheckOut(t *testing.T) {
	svc, _, emp := newAttendanceFixture(t, time.UTC)
	ctx := context.Background()
	actor := employeeActor(emp)
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	svc.now = fixedClock(start)
	rec, err := svc.CheckIn(ctx, actor, " early ")
	require.NoError(t, err)
	assert.Equal(t, domain.AttendancePresent, rec.Status)
	assert.Equal(t, "2024-03-04", rec.Date.Format(domain.DateLayout))
	assert.Equal(t, "early", rec.Notes)

	_, err = svc.CheckIn(ctx, actor, "")
	derr := requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, "2024-03-04", derr.Details["date"])

	svc.now = fixedClock(start.Add(8*time.Hour + 15*time.Minute))
	rec, err = svc.CheckOut(ctx, actor, "")
	require.NoError(t, err)
	require.NotNil(t, rec.CheckOut)
	assert.Equal(t, 8.25, rec.WorkHours)
	assert.Equal(t, "early", rec.Notes, "empty notes keep the check-in notes")

	_, err = svc.CheckOut(ctx, actor, "")
	requireStatus(t, err, http.StatusConflict)

	today, err := svc.Today(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, today.ID)
}

func TestAttendanceService_CheckOutWithoutCheckIn(t *testing.T) {
	svc, _, emp := newAttendanceFixture(t, time.UTC)
	svc.now = fixedClock(time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC))

	_, err := svc.CheckOut(context.Background(), employeeActor(emp), "")
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.CheckIn(context.Background(), adminActor(), "")
	requireStatus(t, err, http.StatusNotFound)
}

func TestAttendanceService_TodayFollowsCompanyTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	svc, _, emp := newAttendanceFixture(t, loc)
	svc.now = fixedClock(time.Date(2024, 3, 4, 20, 0, 0, 0, time.UTC))

	rec, err := svc.CheckIn(context.Background(), employeeActor(emp), "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", rec.Date.Format(domain.DateLayout))
}

func TestAttendanceService_ManualEntry(t *testing.T) {
	svc, store, emp := newAttendanceFixture(t, time.UTC)
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	in := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	out := in.Add(4 * time.Hour)

	_, err := svc.Create(ctx, employeeActor(emp), AttendanceInput{EmployeeID: emp.ID, Date: day})
	requireStatus(t, err, http.StatusForbidden)

	_, err = svc.Create(ctx, hrActor(nil), AttendanceInput{EmployeeID: emp.ID, Date: day, CheckIn: &out, CheckOut: &in})
	derr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, derr.Details, "check_out")

	_, err = svc.Create(ctx, hrActor(nil), AttendanceInput{EmployeeID: "emp-missing", Date: day})
	requireStatus(t, err, http.StatusNotFound)

	rec, err := svc.Create(ctx, hrActor(nil), AttendanceInput{EmployeeID: emp.ID, Date: day, CheckIn: &in, CheckOut: &out, Status: domain.AttendanceHalfDay})
	require.NoError(t, err)
	assert.Equal(t, 4.0, rec.WorkHours)
	assert.Equal(t, "2024-03-01", rec.Date.Format(domain.DateLayout))

	_, err = svc.Create(ctx, hrActor(nil), AttendanceInput{EmployeeID: emp.ID, Date: day, Status: domain.AttendanceAbsent})
	requireStatus(t, err, http.StatusConflict)

	later := out.Add(2 * time.Hour)
	updated, err := svc.Update(ctx, hrActor(nil), rec.ID, AttendanceUpdateInput{CheckOut: &later})
	require.NoError(t, err)
	assert.Equal(t, 6.0, updated.WorkHours)

	require.NoError(t, svc.Delete(ctx, hrActor(nil), rec.ID))
	assert.Empty(t, store.byID)
	requireStatus(t, svc.Delete(ctx, hrActor(nil), rec.ID), http.StatusNotFound)
}

func TestAttendanceService_ListScopesEmployees(t *testing.T) {
	svc, store, emp := newAttendanceFixture(t, time.UTC)
	other := seedEmployee("other")
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	store.byID["att-a"] = &domain.Attendance{ID: "att-a", EmployeeID: emp.ID, Date: day, Status: domain.AttendancePresent}
	store.byID["att-b"] = &domain.Attendance{ID: "att-b", EmployeeID: other.ID, Date: day, Status: domain.AttendancePresent}
	ctx := context.Background()

	records, total, err := svc.List(ctx, employeeActor(emp), repository.AttendanceFilter{EmployeeID: &other.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "att-a", records[0].ID, "employee filter is replaced with the caller")

	_, total, err = svc.List(ctx, hrActor(nil), repository.AttendanceFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	from, to := day, day.AddDate(0, 0, -1)
	_, _, err = svc.List(ctx, hrActor(nil), repository.AttendanceFilter{From: &from, To: &to})
	requireStatus(t, err, http.StatusBadRequest)
}
