package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/emsworks/employment-service/internal/domain"
)

type employeeFixture struct {
	svc   *EmployeeService
	users *fakeUsers
	emps  *fakeEmployees
	depts *fakeDepartments
	tx    *fakeTx
}

func newEmployeeFixture() employeeFixture {
	f := employeeFixture{
		users: newFakeUsers(),
		emps:  newFakeEmployees(),
		depts: newFakeDepartments(
			&domain.Department{ID: "dept-eng", Name: "Engineering", IsActive: true},
			&domain.Department{ID: "dept-old", Name: "Legacy", IsActive: false},
		),
	}
	f.tx = &fakeTx{users: f.users, employees: f.emps, payrolls: newFakePayrolls()}
	f.svc = NewEmployeeService(EmployeeDependencies{
		EmployeeRepo:   f.emps,
		DepartmentRepo: f.depts,
		TxRunner:       f.tx,
		BcryptCost:     bcrypt.MinCost,
	})
	f.svc.now = fixedClock(time.Date(2024, 3, 4, 23, 30, 0, 0, time.UTC))
	return f
}

func TestEmployeeService_CreateWithAccount(t *testing.T) {
	f := newEmployeeFixture()
	dept := "dept-eng"

	emp, err := f.svc.Create(context.Background(), adminActor(), EmployeeInput{
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "Grace@Example.com",
		DepartmentID: &dept,
		Salary:       decimal.RequireFromString("4200.555"),
		Password:     "password1",
		Role:         domain.RoleHR,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(emp.Code, "EMP-"))
	assert.Len(t, emp.Code, len("EMP-")+8)
	assert.Equal(t, "grace@example.com", emp.Email)
	assert.Equal(t, "4200.56", emp.Salary.StringFixed(2))
	assert.Equal(t, domain.EmployeeStatusActive, emp.Status)
	assert.Equal(t, "2024-03-04", emp.DateOfJoining.Format(domain.DateLayout))

	require.NotNil(t, emp.UserID)
	user := f.users.byID[*emp.UserID]
	require.NotNil(t, user)
	assert.Equal(t, "Grace Hopper", user.Name)
	assert.Equal(t, domain.RoleHR, user.Role)
	assert.True(t, user.Active)
}

func TestEmployeeService_CreateWithoutAccount(t *testing.T) {
	f := newEmployeeFixture()
	emp, err := f.svc.Create(context.Background(), hrActor(nil), EmployeeInput{FirstName: "Linus", Email: "linus@example.com"})
	require.NoError(t, err)
	assert.Nil(t, emp.UserID)
	assert.Empty(t, f.users.byID)
}

func TestEmployeeService_CreateRules(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()

	_, err := f.svc.Create(ctx, employeeActor(seedEmployee("eve")), EmployeeInput{FirstName: "X", Email: "x@example.com"})
	requireStatus(t, err, http.StatusForbidden)

	_, err = f.svc.Create(ctx, hrActor(nil), EmployeeInput{FirstName: "X", Email: "x@example.com", Password: "password1", Role: domain.RoleAdmin})
	requireStatus(t, err, http.StatusForbidden)

	_, err = f.svc.Create(ctx, hrActor(nil), EmployeeInput{FirstName: "", Email: "bad", Salary: decimal.NewFromInt(-1)})
	derr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, derr.Details, "first_name")
	assert.Contains(t, derr.Details, "email")
	assert.Contains(t, derr.Details, "salary")

	unknown := "dept-missing"
	_, err = f.svc.Create(ctx, hrActor(nil), EmployeeInput{FirstName: "X", Email: "x@example.com", DepartmentID: &unknown})
	requireStatus(t, err, http.StatusBadRequest)

	inactive := "dept-old"
	_, err = f.svc.Create(ctx, hrActor(nil), EmployeeInput{FirstName: "X", Email: "x@example.com", DepartmentID: &inactive})
	requireStatus(t, err, http.StatusConflict)
}

func TestEmployeeService_CreateRollsBackAccountOnDuplicate(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()
	_, err := f.svc.Create(ctx, hrActor(nil), EmployeeInput{FirstName: "Ann", Email: "ann@example.com"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, hrActor(nil), EmployeeInput{FirstName: "Ann", Email: "ann@example.com", Password: "password1"})
	requireStatus(t, err, http.StatusConflict)
	assert.Empty(t, f.users.byID, "account created in the failed transaction is rolled back")
	assert.Len(t, f.emps.byID, 1)
}

func TestEmployeeService_GetVisibility(t *testing.T) {
	f := newEmployeeFixture()
	self, other := seedEmployee("self"), seedEmployee("other")
	f.emps.byID[self.ID] = self
	f.emps.byID[other.ID] = other
	ctx := context.Background()

	got, err := f.svc.Get(ctx, employeeActor(self), self.ID)
	require.NoError(t, err)
	assert.Equal(t, self.ID, got.ID)

	_, err = f.svc.Get(ctx, employeeActor(self), other.ID)
	requireStatus(t, err, http.StatusForbidden)

	_, err = f.svc.Get(ctx, hrActor(nil), "emp-missing")
	requireStatus(t, err, http.StatusNotFound)

	me, err := f.svc.Me(ctx, employeeActor(self))
	require.NoError(t, err)
	assert.Equal(t, self.ID, me.ID)

	_, err = f.svc.Me(ctx, adminActor())
	requireStatus(t, err, http.StatusNotFound)

	_, _, err = f.svc.List(ctx, employeeActor(self), repositoryEmployeeFilter())
	requireStatus(t, err, http.StatusForbidden)
}

func TestEmployeeService_Update(t *testing.T) {
	f := newEmployeeFixture()
	emp := seedEmployee("upd")
	f.emps.byID[emp.ID] = emp
	ctx := context.Background()

	salary := decimal.RequireFromString("5100")
	empty := ""
	updated, err := f.svc.Update(ctx, hrActor(nil), emp.ID, EmployeeUpdateInput{
		Designation:  ptr("  Staff Engineer "),
		Salary:       &salary,
		DepartmentID: &empty,
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", updated.Designation)
	assert.True(t, salary.Equal(updated.Salary))
	assert.Nil(t, updated.DepartmentID)

	bad := domain.EmployeeStatus("Retired")
	_, err = f.svc.Update(ctx, hrActor(nil), emp.ID, EmployeeUpdateInput{Status: &bad})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestEmployeeService_Terminate(t *testing.T) {
	f := newEmployeeFixture()
	ctx := context.Background()
	created, err := f.svc.Create(ctx, adminActor(), EmployeeInput{FirstName: "Tom", Email: "tom@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = f.svc.Terminate(ctx, hrActor(nil), created.ID)
	requireStatus(t, err, http.StatusForbidden)

	terminated, err := f.svc.Terminate(ctx, adminActor(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EmployeeStatusTerminated, terminated.Status)
	assert.Equal(t, domain.EmployeeStatusTerminated, f.emps.byID[created.ID].Status, "record is kept")
	assert.False(t, f.users.byID[*created.UserID].Active)

	_, err = f.svc.Terminate(ctx, adminActor(), "emp-missing")
	requireStatus(t, err, http.StatusNotFound)

	self := seedEmployee("root")
	admin := adminActor()
	admin.Employee = self
	_, err = f.svc.Terminate(ctx, admin, self.ID)
	requireStatus(t, err, http.StatusConflict)
}
