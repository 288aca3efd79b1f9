package domain

import "time"

// JobStatus tells whether a posting accepts applications.
type JobStatus string

const (
	JobOpen   JobStatus = "Open"
	JobClosed JobStatus = "Closed"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	return s == JobOpen || s == JobClosed
}

// EmploymentType describes the contract offered by a posting.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "FullTime"
	EmploymentPartTime   EmploymentType = "PartTime"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
)

// Valid reports whether t is a known employment type.
func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// JobPosting is an open or closed vacancy.
type JobPosting struct {
	ID             string
	Title          string
	DepartmentID   *string
	Description    string
	Requirements   string
	Location       string
	EmploymentType EmploymentType
	Openings       int
	Status         JobStatus
	PostedBy       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CandidateStatus tracks an application through the hiring pipeline.
type CandidateStatus string

const (
	CandidateApplied   CandidateStatus = "Applied"
	CandidateScreening CandidateStatus = "Screening"
	CandidateInterview CandidateStatus = "Interview"
	CandidateOffered   CandidateStatus = "Offered"
	CandidateHired     CandidateStatus = "Hired"
	CandidateRejected  CandidateStatus = "Rejected"
)

// Valid reports whether s is a known status.
func (s CandidateStatus) Valid() bool {
	switch s {
	case CandidateApplied, CandidateScreening, CandidateInterview, CandidateOffered, CandidateHired, CandidateRejected:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed.
func (s CandidateStatus) Terminal() bool {
	return s == CandidateHired || s == CandidateRejected
}

// Candidate is an application to a job posting.
type Candidate struct {
	ID          string
	JobID       string
	Name        string
	Email       string
	Phone       string
	ResumeURL   string
	CoverLetter string
	Status      CandidateStatus
	Notes       string
	AppliedAt   time.Time
	UpdatedAt   time.Time
}
