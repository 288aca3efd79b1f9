// Package dto holds the JSON shapes of the HTTP API.
package dto

import (
	"time"

	"github.com/emsworks/employment-service/internal/domain"
)

// ListMeta describes a page of results.
type ListMeta struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// StatusRequest is the body of status-change endpoints.
type StatusRequest struct {
	Status  string  `json:"status"`
	Comment string  `json:"comment"`
	Notes   *string `json:"notes"`
}

func dateString(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}

func datePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}
