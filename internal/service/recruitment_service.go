package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/events"
	"github.com/emsworks/employment-service/internal/repository"
	apperrors "github.com/emsworks/employment-service/pkg/util/errorutil"
)

// RecruitmentService manages job postings and candidates, including the public careers surface.
type RecruitmentService struct {
	jobs        repository.JobRepository
	candidates  repository.CandidateRepository
	departments repository.DepartmentRepository
	events      publisher
}

// RecruitmentDependencies bundles collaborators for the recruitment service.
type RecruitmentDependencies struct {
	JobRepo        repository.JobRepository
	CandidateRepo  repository.CandidateRepository
	DepartmentRepo repository.DepartmentRepository
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// JobInput describes a job posting create or update. Nil fields are left unchanged on update.
type JobInput struct {
	Title          *string
	DepartmentID   *string
	Description    *string
	Requirements   *string
	Location       *string
	EmploymentType *domain.EmploymentType
	Openings       *int
	Status         *domain.JobStatus
}

// ApplicationInput describes a candidate application.
type ApplicationInput struct {
	Name        string
	Email       string
	Phone       string
	ResumeURL   string
	CoverLetter string
	Notes       string
}

// NewRecruitmentService constructs the service.
func NewRecruitmentService(deps RecruitmentDependencies) *RecruitmentService {
	return &RecruitmentService{
		jobs:        deps.JobRepo,
		candidates:  deps.CandidateRepo,
		departments: deps.DepartmentRepo,
		events:      newPublisher(deps.Dispatcher, deps.Logger),
	}
}

// CreateJob publishes a new posting. Managers only.
func (s *RecruitmentService) CreateJob(ctx context.Context, actor Actor, input JobInput) (*domain.JobPosting, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	job := &domain.JobPosting{
		EmploymentType: domain.EmploymentFullTime,
		Openings:       1,
		Status:         domain.JobOpen,
		PostedBy:       actor.User.ID,
	}
	if err := s.applyJob(ctx, job, input, true); err != nil {
		return nil, err
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}
	return job, nil
}

// UpdateJob edits a posting. Managers only.
func (s *RecruitmentService) UpdateJob(ctx context.Context, actor Actor, id string, input JobInput) (*domain.JobPosting, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job posting")
	}
	if err := s.applyJob(ctx, job, input, false); err != nil {
		return nil, err
	}
	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, apperrors.MapError(err)
	}
	return job, nil
}

// DeleteJob removes a posting together with its candidates. Managers only.
func (s *RecruitmentService) DeleteJob(ctx context.Context, actor Actor, id string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return notFound(err, "job posting")
	}
	return nil
}

// GetJob fetches any posting.
func (s *RecruitmentService) GetJob(ctx context.Context, id string) (*domain.JobPosting, error) {
	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "job posting")
	}
	return job, nil
}

// ListJobs returns postings matching filter.
func (s *RecruitmentService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]domain.JobPosting, int, error) {
	jobs, total, err := s.jobs.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return jobs, total, nil
}

// ListOpenJobs returns postings accepting applications.
func (s *RecruitmentService) ListOpenJobs(ctx context.Context, filter repository.JobFilter) ([]domain.JobPosting, int, error) {
	open := domain.JobOpen
	filter.Status = &open
	return s.ListJobs(ctx, filter)
}

// GetOpenJob fetches a posting for the careers page; closed postings are hidden.
func (s *RecruitmentService) GetOpenJob(ctx context.Context, id string) (*domain.JobPosting, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobOpen {
		return nil, apperrors.NewNotFound("job posting", nil)
	}
	return job, nil
}

// Apply submits a public application. Closed postings and repeat applications are rejected.
func (s *RecruitmentService) Apply(ctx context.Context, jobID string, input ApplicationInput) (*domain.Candidate, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobOpen {
		return nil, apperrors.NewConflict("job posting is closed", map[string]any{"job_id": job.ID})
	}
	input.Notes = ""
	return s.addCandidate(ctx, Actor{}, job, input)
}

// AddCandidate records a candidate on behalf of recruiters. Managers only.
func (s *RecruitmentService) AddCandidate(ctx context.Context, actor Actor, jobID string, input ApplicationInput) (*domain.Candidate, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return s.addCandidate(ctx, actor, job, input)
}

func (s *RecruitmentService) addCandidate(ctx context.Context, actor Actor, job *domain.JobPosting, input ApplicationInput) (*domain.Candidate, error) {
	errs := fieldErrors{}
	errs.require("name", input.Name)
	errs.email("email", input.Email)
	if err := errs.err("invalid application"); err != nil {
		return nil, err
	}

	candidate := &domain.Candidate{
		JobID:       job.ID,
		Name:        strings.TrimSpace(input.Name),
		Email:       normalizeEmail(input.Email),
		Phone:       strings.TrimSpace(input.Phone),
		ResumeURL:   strings.TrimSpace(input.ResumeURL),
		CoverLetter: strings.TrimSpace(input.CoverLetter),
		Status:      domain.CandidateApplied,
		Notes:       strings.TrimSpace(input.Notes),
	}
	if err := s.candidates.Create(ctx, candidate); err != nil {
		return nil, conflictOnDuplicate(err, "this email has already applied to the job", map[string]any{
			"job_id": job.ID,
			"email":  candidate.Email,
		})
	}

	s.events.publish(ctx, events.EventCandidateApplied, candidate.ID, actor, events.CandidateAppliedPayload{
		JobID: job.ID,
		Name:  candidate.Name,
		Email: candidate.Email,
	})
	return candidate, nil
}

// ListCandidates returns candidates for one posting. Managers only.
func (s *RecruitmentService) ListCandidates(ctx context.Context, actor Actor, filter repository.CandidateFilter) ([]domain.Candidate, int, error) {
	if err := requireManager(actor); err != nil {
		return nil, 0, err
	}
	if _, err := s.GetJob(ctx, filter.JobID); err != nil {
		return nil, 0, err
	}
	candidates, total, err := s.candidates.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.MapError(err)
	}
	return candidates, total, nil
}

// GetCandidate fetches a candidate. Managers only.
func (s *RecruitmentService) GetCandidate(ctx context.Context, actor Actor, id string) (*domain.Candidate, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	candidate, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "candidate")
	}
	return candidate, nil
}

// UpdateCandidateStatus moves a candidate through the pipeline. Hired and Rejected are final.
func (s *RecruitmentService) UpdateCandidateStatus(ctx context.Context, actor Actor, id string, status domain.CandidateStatus, notes *string) (*domain.Candidate, error) {
	candidate, err := s.GetCandidate(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{
			"status": "must be one of Applied, Screening, Interview, Offered, Hired, Rejected",
		})
	}
	if candidate.Status.Terminal() && status != candidate.Status {
		return nil, apperrors.NewConflict("candidate status is final", map[string]any{"status": candidate.Status})
	}

	old := candidate.Status
	candidate.Status = status
	if notes != nil {
		candidate.Notes = strings.TrimSpace(*notes)
	}
	if err := s.candidates.Update(ctx, candidate); err != nil {
		return nil, apperrors.MapError(err)
	}

	if old != status {
		s.events.publish(ctx, events.EventCandidateStatusChanged, candidate.ID, actor, events.CandidateStatusChangedPayload{
			JobID:     candidate.JobID,
			OldStatus: old,
			NewStatus: status,
		})
	}
	return candidate, nil
}

// DeleteCandidate removes a candidate. Managers only.
func (s *RecruitmentService) DeleteCandidate(ctx context.Context, actor Actor, id string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	if err := s.candidates.Delete(ctx, id); err != nil {
		return notFound(err, "candidate")
	}
	return nil
}

func (s *RecruitmentService) applyJob(ctx context.Context, job *domain.JobPosting, input JobInput, creating bool) error {
	errs := fieldErrors{}
	if input.Title != nil || creating {
		title := ""
		if input.Title != nil {
			title = strings.TrimSpace(*input.Title)
		}
		errs.require("title", title)
		job.Title = title
	}
	if input.DepartmentID != nil {
		if *input.DepartmentID == "" {
			job.DepartmentID = nil
		} else {
			job.DepartmentID = input.DepartmentID
		}
	}
	if input.Description != nil {
		job.Description = strings.TrimSpace(*input.Description)
	}
	if input.Requirements != nil {
		job.Requirements = strings.TrimSpace(*input.Requirements)
	}
	if input.Location != nil {
		job.Location = strings.TrimSpace(*input.Location)
	}
	if input.EmploymentType != nil {
		errs.check(input.EmploymentType.Valid(), "employment_type", "must be one of FullTime, PartTime, Contract, Internship")
		job.EmploymentType = *input.EmploymentType
	}
	if input.Openings != nil {
		errs.check(*input.Openings >= 1, "openings", "must be at least 1")
		job.Openings = *input.Openings
	}
	if input.Status != nil {
		errs.check(input.Status.Valid(), "status", "must be Open or Closed")
		job.Status = *input.Status
	}
	if err := errs.err("invalid job posting"); err != nil {
		return err
	}

	if input.DepartmentID != nil && job.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *job.DepartmentID); err != nil {
			if apperrors.IsNoRows(err) {
				return apperrors.NewValidationError("unknown department", map[string]any{"department_id": *job.DepartmentID})
			}
			return apperrors.MapError(err)
		}
	}
	return nil
}
