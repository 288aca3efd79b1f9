package dto

import (
	"time"

	"github.com/emsworks/employment-service/internal/domain"
)

// JobRequest payload for job create and update.
type JobRequest struct {
	Title          *string                `json:"title"`
	DepartmentID   *string                `json:"department_id"`
	Description    *string                `json:"description"`
	Requirements   *string                `json:"requirements"`
	Location       *string                `json:"location"`
	EmploymentType *domain.EmploymentType `json:"employment_type"`
	Openings       *int                   `json:"openings"`
	Status         *domain.JobStatus      `json:"status"`
}

// JobResponse view of a job posting.
type JobResponse struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	DepartmentID   *string               `json:"department_id,omitempty"`
	Description    string                `json:"description"`
	Requirements   string                `json:"requirements"`
	Location       string                `json:"location"`
	EmploymentType domain.EmploymentType `json:"employment_type"`
	Openings       int                   `json:"openings"`
	Status         domain.JobStatus      `json:"status"`
	PostedBy       string                `json:"posted_by,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// NewJobResponse maps a job posting.
func NewJobResponse(j *domain.JobPosting) JobResponse {
	return JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		DepartmentID:   j.DepartmentID,
		Description:    j.Description,
		Requirements:   j.Requirements,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Openings:       j.Openings,
		Status:         j.Status,
		PostedBy:       j.PostedBy,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

// NewPublicJobResponse maps a job posting for the careers page, hiding who posted it.
func NewPublicJobResponse(j *domain.JobPosting) JobResponse {
	resp := NewJobResponse(j)
	resp.PostedBy = ""
	return resp
}

// NewJobList maps job postings with mapper.
func NewJobList(jobs []domain.JobPosting, mapper func(*domain.JobPosting) JobResponse) []JobResponse {
	out := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, mapper(&jobs[i]))
	}
	return out
}

// ApplicationRequest payload for applications.
type ApplicationRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	ResumeURL   string `json:"resume_url"`
	CoverLetter string `json:"cover_letter"`
	Notes       string `json:"notes"`
}

// CandidateResponse view of a candidate.
type CandidateResponse struct {
	ID          string                 `json:"id"`
	JobID       string                 `json:"job_id"`
	Name        string                 `json:"name"`
	Email       string                 `json:"email"`
	Phone       string                 `json:"phone"`
	ResumeURL   string                 `json:"resume_url"`
	CoverLetter string                 `json:"cover_letter"`
	Status      domain.CandidateStatus `json:"status"`
	Notes       string                 `json:"notes,omitempty"`
	AppliedAt   time.Time              `json:"applied_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// NewCandidateResponse maps a candidate.
func NewCandidateResponse(c *domain.Candidate) CandidateResponse {
	return CandidateResponse{
		ID:          c.ID,
		JobID:       c.JobID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		ResumeURL:   c.ResumeURL,
		CoverLetter: c.CoverLetter,
		Status:      c.Status,
		Notes:       c.Notes,
		AppliedAt:   c.AppliedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// NewCandidateList maps candidates.
func NewCandidateList(candidates []domain.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for i := range candidates {
		out = append(out, NewCandidateResponse(&candidates[i]))
	}
	return out
}
