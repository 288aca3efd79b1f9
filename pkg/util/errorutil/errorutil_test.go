package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

func TestToDomainError_PassesDomainErrorsThrough(t *testing.T) {
	original := apperrors.NewConflict("already checked in", map[string]any{"date": "2024-03-01"})
	wrapped := fmt.Errorf("check in: %w", original)

	got := apperrors.ToDomainError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, "CONFLICT", got.Code)
	assert.Equal(t, http.StatusConflict, got.HTTPStatus)
	assert.Equal(t, "2024-03-01", got.Details["date"])
}

func TestToDomainError_MapsNoRowsToNotFound(t *testing.T) {
	got := apperrors.ToDomainError(fmt.Errorf("get employee: %w", pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, got.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", got.Code)
}

func TestToDomainError_MapsUniqueViolationToConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "attendance_employee_id_work_date_key"}
	got := apperrors.ToDomainError(fmt.Errorf("insert: %w", pgErr))
	assert.Equal(t, http.StatusConflict, got.HTTPStatus)
	assert.True(t, apperrors.IsUniqueViolation(pgErr))
}

func TestToDomainError_MapsFiberErrors(t *testing.T) {
	got := apperrors.ToDomainError(fiber.NewError(http.StatusForbidden, "insufficient role"))
	assert.Equal(t, "FORBIDDEN", got.Code)
	assert.Equal(t, "insufficient role", got.Message)
}

func TestToDomainError_UnknownErrorIsInternal(t *testing.T) {
	cause := errors.New("boom")
	got := apperrors.ToDomainError(cause)
	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
	assert.ErrorIs(t, got, cause)
	assert.Equal(t, "internal server error", got.Message)
}

func TestMapError_Nil(t *testing.T) {
	assert.NoError(t, apperrors.MapError(nil))
	assert.Nil(t, apperrors.ToDomainError(nil))
}

func TestToDomainError_MapsForeignKeyViolationToValidation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "employees_department_id_fkey"}
	got := apperrors.ToDomainError(pgErr)
	assert.Equal(t, apperrors.CodeValidation, got.Code)
	assert.Equal(t, http.StatusBadRequest, got.HTTPStatus)
}

func TestToDomainError_UnmappedFiberStatus(t *testing.T) {
	got := apperrors.ToDomainError(fiber.NewError(http.StatusTooManyRequests, "slow down"))
	assert.Equal(t, "REQUEST_FAILED", got.Code)
	assert.Equal(t, http.StatusTooManyRequests, got.HTTPStatus)

	got = apperrors.ToDomainError(fiber.NewError(http.StatusServiceUnavailable, "down"))
	assert.Equal(t, apperrors.CodeInternal, got.Code)
}

func TestToDomainError_MapsExclusionViolationToConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23P01", ConstraintName: "leave_requests_no_overlap"}
	assert.True(t, apperrors.IsExclusionViolation(fmt.Errorf("insert leave: %w", pgErr)))
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(pgErr).HTTPStatus)
}
