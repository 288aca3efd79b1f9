package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsworks/employment-service/internal/api/dto"
	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/repository"
	"github.com/emsworks/employment-service/internal/service"
)

// RecruitmentHandler exposes job postings, candidates and the public careers surface.
type RecruitmentHandler struct {
	recruitment *service.RecruitmentService
}

// NewRecruitmentHandler constructs handler.
func NewRecruitmentHandler(recruitment *service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{recruitment: recruitment}
}

// CreateJob handles POST /recruitment/jobs.
func (h *RecruitmentHandler) CreateJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	job, err := h.recruitment.CreateJob(c.UserContext(), actor, jobInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewJobResponse(job))
}

// UpdateJob handles PUT /recruitment/jobs/:id.
func (h *RecruitmentHandler) UpdateJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.JobRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	job, err := h.recruitment.UpdateJob(c.UserContext(), actor, c.Params("id"), jobInput(req))
	if err != nil {
		return err
	}
	return respond(c, dto.NewJobResponse(job))
}

// DeleteJob handles DELETE /recruitment/jobs/:id.
func (h *RecruitmentHandler) DeleteJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.recruitment.DeleteJob(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListJobs handles GET /recruitment/jobs.
func (h *RecruitmentHandler) ListJobs(c *fiber.Ctx) error {
	filter, err := parseJobFilter(c)
	if err != nil {
		return err
	}
	jobs, total, err := h.recruitment.ListJobs(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return listResponse(c, dto.NewJobList(jobs, dto.NewJobResponse), total, filter.Page)
}

// GetJob handles GET /recruitment/jobs/:id.
func (h *RecruitmentHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.recruitment.GetJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewJobResponse(job))
}

// ListCandidates handles GET /recruitment/jobs/:id/candidates.
func (h *RecruitmentHandler) ListCandidates(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	status, err := queryEnum[domain.CandidateStatus](c, "status")
	if err != nil {
		return err
	}
	filter := repository.CandidateFilter{JobID: c.Params("id"), Status: status, Page: parsePage(c)}
	candidates, total, err := h.recruitment.ListCandidates(c.UserContext(), actor, filter)
	if err != nil {
		return err
	}
	return listResponse(c, dto.NewCandidateList(candidates), total, filter.Page)
}

// AddCandidate handles POST /recruitment/jobs/:id/candidates.
func (h *RecruitmentHandler) AddCandidate(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	candidate, err := h.recruitment.AddCandidate(c.UserContext(), actor, c.Params("id"), applicationInput(req))
	if err != nil {
		return err
	}
	return created(c, dto.NewCandidateResponse(candidate))
}

// GetCandidate handles GET /recruitment/candidates/:id.
func (h *RecruitmentHandler) GetCandidate(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	candidate, err := h.recruitment.GetCandidate(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewCandidateResponse(candidate))
}

// UpdateCandidateStatus handles PATCH /recruitment/candidates/:id/status.
func (h *RecruitmentHandler) UpdateCandidateStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.StatusRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	candidate, err := h.recruitment.UpdateCandidateStatus(c.UserContext(), actor, c.Params("id"), domain.CandidateStatus(req.Status), req.Notes)
	if err != nil {
		return err
	}
	return respond(c, dto.NewCandidateResponse(candidate))
}

// DeleteCandidate handles DELETE /recruitment/candidates/:id.
func (h *RecruitmentHandler) DeleteCandidate(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	if err := h.recruitment.DeleteCandidate(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListOpenJobs handles GET /careers/jobs.
func (h *RecruitmentHandler) ListOpenJobs(c *fiber.Ctx) error {
	filter, err := parseJobFilter(c)
	if err != nil {
		return err
	}
	jobs, total, err := h.recruitment.ListOpenJobs(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return listResponse(c, dto.NewJobList(jobs, dto.NewPublicJobResponse), total, filter.Page)
}

// GetOpenJob handles GET /careers/jobs/:id.
func (h *RecruitmentHandler) GetOpenJob(c *fiber.Ctx) error {
	job, err := h.recruitment.GetOpenJob(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, dto.NewPublicJobResponse(job))
}

// Apply handles POST /careers/jobs/:id/apply.
func (h *RecruitmentHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplicationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	candidate, err := h.recruitment.Apply(c.UserContext(), c.Params("id"), applicationInput(req))
	if err != nil {
		return err
	}
	return created(c, fiber.Map{"id": candidate.ID, "status": candidate.Status})
}

func parseJobFilter(c *fiber.Ctx) (repository.JobFilter, error) {
	status, err := queryEnum[domain.JobStatus](c, "status")
	if err != nil {
		return repository.JobFilter{}, err
	}
	return repository.JobFilter{
		Status:       status,
		DepartmentID: queryString(c, "department_id"),
		Search:       c.Query("search"),
		Page:         parsePage(c),
	}, nil
}

func jobInput(req dto.JobRequest) service.JobInput {
	return service.JobInput{
		Title:          req.Title,
		DepartmentID:   req.DepartmentID,
		Description:    req.Description,
		Requirements:   req.Requirements,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Openings:       req.Openings,
		Status:         req.Status,
	}
}

func applicationInput(req dto.ApplicationRequest) service.ApplicationInput {
	return service.ApplicationInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ResumeURL:   req.ResumeURL,
		CoverLetter: req.CoverLetter,
		Notes:       req.Notes,
	}
}
