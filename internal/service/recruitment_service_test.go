package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsworks/employment-service/internal/domain"
	"github.com/emsworks/employment-service/internal/events"
	"github.com/emsworks/employment-service/internal/repository"
)

func newRecruitmentFixture() (*RecruitmentService, *fakeJobs, *fakeCandidates, *recordingDispatcher) {
	jobs := newFakeJobs(
		&domain.JobPosting{ID: "job-open", Title: "Backend Engineer", Status: domain.JobOpen, EmploymentType: domain.EmploymentFullTime, Openings: 2},
		&domain.JobPosting{ID: "job-closed", Title: "Designer", Status: domain.JobClosed, EmploymentType: domain.EmploymentContract, Openings: 1},
	)
	candidates := newFakeCandidates()
	recorder := &recordingDispatcher{}
	svc := NewRecruitmentService(RecruitmentDependencies{
		JobRepo:        jobs,
		CandidateRepo:  candidates,
		DepartmentRepo: newFakeDepartments(&domain.Department{ID: "dept-eng", Name: "Engineering", IsActive: true}),
		Dispatcher:     recorder,
	})
	return svc, jobs, candidates, recorder
}

func TestRecruitmentService_JobLifecycle(t *testing.T) {
	svc, jobs, _, _ := newRecruitmentFixture()
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, employeeActor(seedEmployee("dev")), JobInput{Title: ptr("Intern")})
	requireStatus(t, err, http.StatusForbidden)

	_, err = svc.CreateJob(ctx, hrActor(nil), JobInput{Openings: ptr(0)})
	derr := requireStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, derr.Details, "title")
	assert.Contains(t, derr.Details, "openings")

	_, err = svc.CreateJob(ctx, hrActor(nil), JobInput{Title: ptr("QA"), DepartmentID: ptr("dept-nope")})
	requireStatus(t, err, http.StatusBadRequest)

	job, err := svc.CreateJob(ctx, hrActor(nil), JobInput{Title: ptr(" QA Engineer "), DepartmentID: ptr("dept-eng")})
	require.NoError(t, err)
	assert.Equal(t, "QA Engineer", job.Title)
	assert.Equal(t, domain.JobOpen, job.Status)
	assert.Equal(t, domain.EmploymentFullTime, job.EmploymentType)
	assert.Equal(t, 1, job.Openings)
	assert.Equal(t, "user-hr", job.PostedBy)

	closed := domain.JobClosed
	updated, err := svc.UpdateJob(ctx, hrActor(nil), job.ID, JobInput{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, "QA Engineer", updated.Title, "omitted fields are kept")
	assert.Equal(t, domain.JobClosed, updated.Status)

	open, total, err := svc.ListOpenJobs(ctx, repository.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "job-open", open[0].ID)

	require.NoError(t, svc.DeleteJob(ctx, hrActor(nil), job.ID))
	assert.NotContains(t, jobs.byID, job.ID)
	requireStatus(t, svc.DeleteJob(ctx, hrActor(nil), job.ID), http.StatusNotFound)
}

func TestRecruitmentService_PublicApplication(t *testing.T) {
	svc, _, candidates, recorder := newRecruitmentFixture()
	ctx := context.Background()

	_, err := svc.GetOpenJob(ctx, "job-closed")
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.Apply(ctx, "job-closed", ApplicationInput{Name: "Sam", Email: "sam@example.com"})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.Apply(ctx, "job-missing", ApplicationInput{Name: "Sam", Email: "sam@example.com"})
	requireStatus(t, err, http.StatusNotFound)

	cand, err := svc.Apply(ctx, "job-open", ApplicationInput{Name: "Sam", Email: "Sam@Example.com", Notes: "hire me"})
	require.NoError(t, err)
	assert.Equal(t, domain.CandidateApplied, cand.Status)
	assert.Equal(t, "sam@example.com", cand.Email)
	assert.Empty(t, cand.Notes, "public applicants cannot set recruiter notes")

	_, err = svc.Apply(ctx, "job-open", ApplicationInput{Name: "Sam again", Email: "SAM@example.com"})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.Apply(ctx, "job-open", ApplicationInput{Name: "", Email: "nope"})
	requireStatus(t, err, http.StatusBadRequest)

	assert.Len(t, candidates.byID, 1)
	assert.Equal(t, []events.EventType{events.EventCandidateApplied}, recorder.types())
	assert.Empty(t, recorder.events[0].Actor.UserID)
}

func TestRecruitmentService_CandidatePipeline(t *testing.T) {
	svc, _, _, recorder := newRecruitmentFixture()
	ctx := context.Background()

	cand, err := svc.AddCandidate(ctx, hrActor(nil), "job-closed", ApplicationInput{Name: "Kim", Email: "kim@example.com", Notes: "referral"})
	require.NoError(t, err)
	assert.Equal(t, "referral", cand.Notes)

	listed, total, err := svc.ListCandidates(ctx, hrActor(nil), repository.CandidateFilter{JobID: "job-closed"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, cand.ID, listed[0].ID)

	_, _, err = svc.ListCandidates(ctx, hrActor(nil), repository.CandidateFilter{JobID: "job-missing"})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.UpdateCandidateStatus(ctx, hrActor(nil), cand.ID, "Ghosted", nil)
	requireStatus(t, err, http.StatusBadRequest)

	moved, err := svc.UpdateCandidateStatus(ctx, hrActor(nil), cand.ID, domain.CandidateInterview, ptr("strong"))
	require.NoError(t, err)
	assert.Equal(t, domain.CandidateInterview, moved.Status)
	assert.Equal(t, "strong", moved.Notes)

	_, err = svc.UpdateCandidateStatus(ctx, hrActor(nil), cand.ID, domain.CandidateHired, nil)
	require.NoError(t, err)

	_, err = svc.UpdateCandidateStatus(ctx, hrActor(nil), cand.ID, domain.CandidateRejected, nil)
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.GetCandidate(ctx, employeeActor(seedEmployee("peek")), cand.ID)
	requireStatus(t, err, http.StatusForbidden)

	require.NoError(t, svc.DeleteCandidate(ctx, adminActor(), cand.ID))
	_, err = svc.GetCandidate(ctx, adminActor(), cand.ID)
	requireStatus(t, err, http.StatusNotFound)

	assert.Equal(t, []events.EventType{
		events.EventCandidateApplied,
		events.EventCandidateStatusChanged,
		events.EventCandidateStatusChanged,
	}, recorder.types())
}
