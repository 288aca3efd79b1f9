package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentService(t *testing.T) {
	svc := NewDepartmentService(newFakeDepartments())
	ctx := context.Background()
	worker := employeeActor(seedEmployee("dept"))

	_, err := svc.Create(ctx, worker, DepartmentInput{Name: ptr("Sales")})
	requireStatus(t, err, http.StatusForbidden)

	_, err = svc.Create(ctx, hrActor(nil), DepartmentInput{Name: ptr("  ")})
	requireStatus(t, err, http.StatusBadRequest)

	sales, err := svc.Create(ctx, hrActor(nil), DepartmentInput{Name: ptr(" Sales "), Description: ptr("revenue")})
	require.NoError(t, err)
	assert.Equal(t, "Sales", sales.Name)
	assert.True(t, sales.IsActive)

	_, err = svc.Create(ctx, hrActor(nil), DepartmentInput{Name: ptr("Sales")})
	requireStatus(t, err, http.StatusConflict)

	ops, err := svc.Create(ctx, hrActor(nil), DepartmentInput{Name: ptr("Ops")})
	require.NoError(t, err)
	_, err = svc.Update(ctx, hrActor(nil), ops.ID, DepartmentInput{Name: ptr("Sales")})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.Update(ctx, adminActor(), ops.ID, DepartmentInput{IsActive: ptr(false)})
	require.NoError(t, err)

	visible, err := svc.List(ctx, worker, true)
	require.NoError(t, err)
	assert.Len(t, visible, 1, "employees never see inactive departments")

	all, err := svc.List(ctx, hrActor(nil), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Get(ctx, worker, ops.ID)
	requireStatus(t, err, http.StatusNotFound)
	got, err := svc.Get(ctx, hrActor(nil), ops.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
