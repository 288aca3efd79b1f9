package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/events"
	"github.com/emsworks/employment-service/internal/repository"
)

var errDuplicate = &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

type idSeq struct {
	mu sync.Mutex
	n  map[string]int
}

func (s *idSeq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.n == nil {
		s.n = map[string]int{}
	}
	s.n[prefix]++
	return fmt.Sprintf("%s-%d", prefix, s.n[prefix])
}

var ids idSeq

func page[T any](items []T, p repository.Page) ([]T, int) {
	total := len(items)
	limit, offset := p.Limit, p.Offset
	if limit <= 0 {
		limit = 20
	}
	if offset >= total {
		return []T{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return items[offset:end], total
}

// users

type fakeUsers struct {
	byID map[string]*domain.User
}

func newFakeUsers(users ...*domain.User) *fakeUsers {
	f := &fakeUsers{byID: map[string]*domain.User{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return errDuplicate
		}
	}
	u.ID = ids.next("user")
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) List(_ context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	var out []domain.User
	for _, u := range f.byID {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && u.Active != *filter.Active {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, filter.Page)
	return items, total, nil
}

func (f *fakeUsers) snapshot() map[string]*domain.User {
	cp := make(map[string]*domain.User, len(f.byID))
	for k, v := range f.byID {
		u := *v
		cp[k] = &u
	}
	return cp
}

// password resets

type fakeResets struct {
	byID map[string]*repository.PasswordResetToken
}

func newFakeResets() *fakeResets {
	return &fakeResets{byID: map[string]*repository.PasswordResetToken{}}
}

func (f *fakeResets) Create(_ context.Context, t *repository.PasswordResetToken) error {
	t.ID = ids.next("reset")
	t.CreatedAt = time.Now()
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeResets) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	for _, t := range f.byID {
		if t.Token == token {
			cp := *t
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResets) MarkUsed(_ context.Context, id string) error {
	t, ok := f.byID[id]
	if !ok || t.UsedAt != nil {
		return pgx.ErrNoRows
	}
	now := time.Now()
	t.UsedAt = &now
	return nil
}

// departments

type fakeDepartments struct {
	byID map[string]*domain.Department
}

func newFakeDepartments(depts ...*domain.Department) *fakeDepartments {
	f := &fakeDepartments{byID: map[string]*domain.Department{}}
	for _, d := range depts {
		f.byID[d.ID] = d
	}
	return f
}

func (f *fakeDepartments) nameTaken(name, exceptID string) bool {
	for _, d := range f.byID {
		if d.Name == name && d.ID != exceptID {
			return true
		}
	}
	return false
}

func (f *fakeDepartments) Create(_ context.Context, d *domain.Department) error {
	if f.nameTaken(d.Name, "") {
		return errDuplicate
	}
	d.ID = ids.next("dept")
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDepartments) Update(_ context.Context, d *domain.Department) error {
	if _, ok := f.byID[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	if f.nameTaken(d.Name, d.ID) {
		return errDuplicate
	}
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDepartments) GetByID(_ context.Context, id string) (*domain.Department, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDepartments) List(_ context.Context, includeInactive bool) ([]domain.Department, error) {
	out := []domain.Department{}
	for _, d := range f.byID {
		if d.IsActive || includeInactive {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// employees

type fakeEmployees struct {
	byID map[string]*domain.Employee
}

func newFakeEmployees(emps ...*domain.Employee) *fakeEmployees {
	f := &fakeEmployees{byID: map[string]*domain.Employee{}}
	for _, e := range emps {
		f.byID[e.ID] = e
	}
	return f
}

func (f *fakeEmployees) Create(_ context.Context, e *domain.Employee) error {
	for _, existing := range f.byID {
		if existing.Email == e.Email || existing.Code == e.Code {
			return errDuplicate
		}
	}
	e.ID = ids.next("emp")
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEmployees) Update(_ context.Context, e *domain.Employee) error {
	if _, ok := f.byID[e.ID]; !ok {
		return pgx.ErrNoRows
	}
	for _, existing := range f.byID {
		if existing.ID != e.ID && existing.Email == e.Email {
			return errDuplicate
		}
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEmployees) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEmployees) GetByUserID(_ context.Context, userID string) (*domain.Employee, error) {
	for _, e := range f.byID {
		if e.UserID != nil && *e.UserID == userID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeEmployees) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, int, error) {
	var out []domain.Employee
	for _, e := range f.byID {
		if filter.Status != nil && e.Status != *filter.Status {
			continue
		}
		if filter.DepartmentID != nil && (e.DepartmentID == nil || *e.DepartmentID != *filter.DepartmentID) {
			continue
		}
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, filter.Page)
	return items, total, nil
}

func (f *fakeEmployees) ListByStatus(_ context.Context, status domain.EmployeeStatus) ([]domain.Employee, error) {
	out := []domain.Employee{}
	for _, e := range f.byID {
		if e.Status == status {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeEmployees) snapshot() map[string]*domain.Employee {
	cp := make(map[string]*domain.Employee, len(f.byID))
	for k, v := range f.byID {
		e := *v
		cp[k] = &e
	}
	return cp
}

// attendance

type fakeAttendance struct {
	byID map[string]*domain.Attendance
}

func newFakeAttendance() *fakeAttendance {
	return &fakeAttendance{byID: map[string]*domain.Attendance{}}
}

func (f *fakeAttendance) clash(a *domain.Attendance) bool {
	for _, existing := range f.byID {
		if existing.ID != a.ID && existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) {
			return true
		}
	}
	return false
}

func (f *fakeAttendance) Create(_ context.Context, a *domain.Attendance) error {
	if f.clash(a) {
		return errDuplicate
	}
	a.ID = ids.next("att")
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAttendance) Update(_ context.Context, a *domain.Attendance) error {
	if _, ok := f.byID[a.ID]; !ok {
		return pgx.ErrNoRows
	}
	if f.clash(a) {
		return errDuplicate
	}
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAttendance) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAttendance) GetByID(_ context.Context, id string) (*domain.Attendance, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttendance) GetByEmployeeDate(_ context.Context, employeeID string, date time.Time) (*domain.Attendance, error) {
	for _, a := range f.byID {
		if a.EmployeeID == employeeID && a.Date.Equal(date) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAttendance) List(_ context.Context, filter repository.AttendanceFilter) ([]domain.Attendance, int, error) {
	var out []domain.Attendance
	for _, a := range f.byID {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if filter.From != nil && a.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.Date.After(*filter.To) {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	items, total := page(out, filter.Page)
	return items, total, nil
}

// leaves

type fakeLeaves struct {
	byID map[string]*domain.LeaveRequest
	// beforeWrite runs between a service's read and its guarded write.
	beforeWrite func()
}

func newFakeLeaves() *fakeLeaves {
	return &fakeLeaves{byID: map[string]*domain.LeaveRequest{}}
}

func (f *fakeLeaves) Create(_ context.Context, l *domain.LeaveRequest) error {
	l.ID = ids.next("leave")
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLeaves) Update(_ context.Context, l *domain.LeaveRequest, from domain.LeaveStatus) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	stored, ok := f.byID[l.ID]
	if !ok || stored.Status != from {
		return repository.ErrStaleStatus
	}
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLeaves) Delete(_ context.Context, id string, onlyIf domain.LeaveStatus) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	stored, ok := f.byID[id]
	switch {
	case onlyIf != "" && (!ok || stored.Status != onlyIf):
		return repository.ErrStaleStatus
	case !ok:
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeLeaves) GetByID(_ context.Context, id string) (*domain.LeaveRequest, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeaves) List(_ context.Context, filter repository.LeaveFilter) ([]domain.LeaveRequest, int, error) {
	var out []domain.LeaveRequest
	for _, l := range f.byID {
		if filter.EmployeeID != nil && l.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && l.Status != *filter.Status {
			continue
		}
		if filter.Type != nil && l.Type != *filter.Type {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, filter.Page)
	return items, total, nil
}

func (f *fakeLeaves) ListBlocking(_ context.Context, employeeID string, start, end time.Time) ([]domain.LeaveRequest, error) {
	out := []domain.LeaveRequest{}
	for _, l := range f.byID {
		if l.EmployeeID == employeeID && l.Blocking() && domain.RangesOverlap(l.StartDate, l.EndDate, start, end) {
			out = append(out, *l)
		}
	}
	return out, nil
}

// payrolls

type fakePayrolls struct {
	byID map[string]*domain.Payroll
	// beforeWrite runs between a service's read and its guarded write.
	beforeWrite func()
}

func newFakePayrolls(records ...*domain.Payroll) *fakePayrolls {
	f := &fakePayrolls{byID: map[string]*domain.Payroll{}}
	for _, p := range records {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakePayrolls) Create(_ context.Context, p *domain.Payroll) error {
	for _, existing := range f.byID {
		if existing.EmployeeID == p.EmployeeID && existing.Month == p.Month && existing.Year == p.Year {
			return errDuplicate
		}
	}
	p.ID = ids.next("pay")
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePayrolls) Update(_ context.Context, p *domain.Payroll) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	stored, ok := f.byID[p.ID]
	if !ok || stored.Status != domain.PayrollDraft {
		return repository.ErrStaleStatus
	}
	cp := *p
	cp.Status, cp.PaidAt = stored.Status, stored.PaidAt
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePayrolls) UpdateStatus(_ context.Context, p *domain.Payroll, from domain.PayrollStatus) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	stored, ok := f.byID[p.ID]
	if !ok || stored.Status != from {
		return repository.ErrStaleStatus
	}
	cp := *stored
	cp.Status, cp.PaidAt = p.Status, p.PaidAt
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePayrolls) Delete(_ context.Context, id string) error {
	if f.beforeWrite != nil {
		f.beforeWrite()
	}
	stored, ok := f.byID[id]
	if !ok || stored.Status != domain.PayrollDraft {
		return repository.ErrStaleStatus
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePayrolls) GetByID(_ context.Context, id string) (*domain.Payroll, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (f *fakePayrolls) List(_ context.Context, filter repository.PayrollFilter) ([]domain.Payroll, int, error) {
	var out []domain.Payroll
	for _, p := range f.byID {
		if filter.EmployeeID != nil && p.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Month != nil && p.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && p.Year != *filter.Year {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, filter.Page)
	return items, total, nil
}

func (f *fakePayrolls) EmployeeIDsForPeriod(_ context.Context, month, year int) (map[string]struct{}, error) {
	out := map[string]struct{}{}
	for _, p := range f.byID {
		if p.Month == month && p.Year == year {
			out[p.EmployeeID] = struct{}{}
		}
	}
	return out, nil
}

func (f *fakePayrolls) snapshot() map[string]*domain.Payroll {
	cp := make(map[string]*domain.Payroll, len(f.byID))
	for k, v := range f.byID {
		p := *v
		cp[k] = &p
	}
	return cp
}

// transactions: the fake restores every map when fn fails.

type fakeTx struct {
	users     *fakeUsers
	employees *fakeEmployees
	payrolls  *fakePayrolls
	runs      int
}

func (f *fakeTx) RunInTx(_ context.Context, fn func(repository.Repositories) error) error {
	f.runs++
	users, emps, pays := f.users.snapshot(), f.employees.snapshot(), f.payrolls.snapshot()
	err := fn(repository.Repositories{Users: f.users, Employees: f.employees, Payrolls: f.payrolls})
	if err != nil {
		f.users.byID, f.employees.byID, f.payrolls.byID = users, emps, pays
	}
	return err
}

// jobs and candidates

type fakeJobs struct {
	byID map[string]*domain.JobPosting
}

func newFakeJobs(jobs ...*domain.JobPosting) *fakeJobs {
	f := &fakeJobs{byID: map[string]*domain.JobPosting{}}
	for _, j := range jobs {
		f.byID[j.ID] = j
	}
	return f
}

func (f *fakeJobs) Create(_ context.Context, j *domain.JobPosting) error {
	j.ID = ids.next("job")
	cp := *j
	f.byID[j.ID] = &cp
	return nil
}

func (f *fakeJobs) Update(_ context.Context, j *domain.JobPosting) error {
	if _, ok := f.byID[j.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *j
	f.byID[j.ID] = &cp
	return nil
}

func (f *fakeJobs) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeJobs) GetByID(_ context.Context, id string) (*domain.JobPosting, error) {
	j, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobs) List(_ context.Context, filter repository.JobFilter) ([]domain.JobPosting, int, error) {
	var out []domain.JobPosting
	for _, j := range f.byID {
		if filter.Status != nil && j.Status != *filter.Status {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].ID < out[k].ID })
	items, total := page(out, filter.Page)
	return items, total, nil
}

type fakeCandidates struct {
	byID map[string]*domain.Candidate
}

func newFakeCandidates() *fakeCandidates {
	return &fakeCandidates{byID: map[string]*domain.Candidate{}}
}

func (f *fakeCandidates) Create(_ context.Context, c *domain.Candidate) error {
	for _, existing := range f.byID {
		if existing.JobID == c.JobID && existing.Email == c.Email {
			return errDuplicate
		}
	}
	c.ID = ids.next("cand")
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCandidates) Update(_ context.Context, c *domain.Candidate) error {
	if _, ok := f.byID[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCandidates) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeCandidates) GetByID(_ context.Context, id string) (*domain.Candidate, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCandidates) List(_ context.Context, filter repository.CandidateFilter) ([]domain.Candidate, int, error) {
	var out []domain.Candidate
	for _, c := range f.byID {
		if c.JobID != filter.JobID {
			continue
		}
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, filter.Page)
	return items, total, nil
}

// tasks

type fakeTasks struct {
	byID map[string]*domain.Task
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{byID: map[string]*domain.Task{}}
}

func (f *fakeTasks) Create(_ context.Context, t *domain.Task) error {
	t.ID = ids.next("task")
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTasks) Update(_ context.Context, t *domain.Task) error {
	if _, ok := f.byID[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeTasks) GetByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTasks) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, int, error) {
	var out []domain.Task
	for _, t := range f.byID {
		if filter.AssignedTo != nil && t.AssignedTo != *filter.AssignedTo {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && t.Priority != *filter.Priority {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	items, total := page(out, filter.Page)
	return items, total, nil
}

// stats

type fakeStats struct {
	org         domain.OrgStats
	self        domain.EmployeeStats
	gotToday    time.Time
	gotEmployee string
	gotFrom     time.Time
	gotTo       time.Time
}

func (f *fakeStats) OrgStats(_ context.Context, today time.Time) (domain.OrgStats, error) {
	f.gotToday = today
	return f.org, nil
}

func (f *fakeStats) EmployeeStats(_ context.Context, employeeID string, from, to time.Time) (domain.EmployeeStats, error) {
	f.gotEmployee, f.gotFrom, f.gotTo = employeeID, from, to
	return f.self, nil
}

// events

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (r *recordingDispatcher) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}

// actors

func ptr[T any](v T) *T { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func adminActor() Actor {
	return Actor{User: &domain.User{ID: "user-admin", Role: domain.RoleAdmin, Active: true}}
}

func hrActor(emp *domain.Employee) Actor {
	return Actor{User: &domain.User{ID: "user-hr", Role: domain.RoleHR, Active: true}, Employee: emp}
}

func employeeActor(emp *domain.Employee) Actor {
	userID := "user-" + emp.ID
	return Actor{User: &domain.User{ID: userID, Role: domain.RoleEmployee, Active: true}, Employee: emp}
}

func seedEmployee(name string) *domain.Employee {
	id := ids.next("emp")
	return &domain.Employee{
		ID:        id,
		Code:      "EMP-" + name,
		FirstName: name,
		Email:     name + "@example.com",
		Status:    domain.EmployeeStatusActive,
	}
}

func repositoryEmployeeFilter() repository.EmployeeFilter {
	return repository.EmployeeFilter{Page: repository.Page{Limit: 20}}
}
