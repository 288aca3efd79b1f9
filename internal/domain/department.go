package domain

import "time"

// Department groups employees and job postings.
type Department struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	// Headcount is the number of Active employees; it is read-only and filled on reads.
	Headcount int
	CreatedAt time.Time
	UpdatedAt time.Time
}
