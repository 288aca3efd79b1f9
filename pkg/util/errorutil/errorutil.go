package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error codes rendered in the "code" field of error bodies.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	CodeValidation:   http.StatusBadRequest,
	CodeNotFound:     http.StatusNotFound,
	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,
	CodeConflict:     http.StatusConflict,
	CodeInternal:     http.StatusInternalServerError,
}

// Postgres SQLSTATE values translated into client errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgExclusionViolation  = "23P01"
)

// DomainError is an error that knows how it should be reported to an API client.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *DomainError) Unwrap() error { return e.Err }

func newError(code, message string, details map[string]any, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: statusByCode[code], Details: details, Err: cause}
}

// NewDomainError constructs a DomainError with an explicit status.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return newError(CodeValidation, message, details, nil)
}

// NewNotFound reports that resource does not exist.
func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return newError(CodeNotFound, resource+" not found", details, nil)
}

func NewUnauthorized(message string) error {
	return newError(CodeUnauthorized, message, nil, nil)
}

func NewForbidden(message string) error {
	return newError(CodeForbidden, message, nil, nil)
}

func NewConflict(message string, details map[string]any) error {
	return newError(CodeConflict, message, details, nil)
}

// NewInternalError hides err behind a generic message.
func NewInternalError(err error) error {
	return newError(CodeInternal, "internal server error", nil, err)
}

// IsNoRows reports whether err signals a missing row from pgx or database/sql.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsExclusionViolation reports whether err is a Postgres exclusion constraint violation.
func IsExclusionViolation(err error) bool {
	return pgCode(err) == pgExclusionViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// ToDomainError classifies err. Domain errors pass through, fiber errors keep their status,
// missing rows become NOT_FOUND, constraint violations become CONFLICT or VALIDATION_FAILED,
// and everything else is INTERNAL_ERROR.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return &DomainError{Code: codeForStatus(fiberErr.Code), Message: fiberErr.Message, HTTPStatus: fiberErr.Code}
	}
	if IsNoRows(err) {
		return newError(CodeNotFound, "resource not found", map[string]any{}, err)
	}
	switch pgCode(err) {
	case pgUniqueViolation:
		return newError(CodeConflict, "resource already exists", nil, err)
	case pgExclusionViolation:
		return newError(CodeConflict, "conflicts with an existing record", nil, err)
	case pgForeignKeyViolation:
		return newError(CodeValidation, "referenced record does not exist", nil, err)
	case pgCheckViolation:
		return newError(CodeValidation, "value violates a constraint", nil, err)
	}
	return newError(CodeInternal, "internal server error", nil, err)
}

// MapError converts err into a DomainError, passing nil through.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}

func codeForStatus(status int) string {
	for code, s := range statusByCode {
		if s == status {
			return code
		}
	}
	if status >= http.StatusInternalServerError {
		return CodeInternal
	}
	return "REQUEST_FAILED"
}
