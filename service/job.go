package service

import (
	"context"

	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/ecode"
	"github.com/careercode/jobportal/logging/logger"
)

// JobService handles job postings.
type JobService struct {
	jobs repository.JobRepository
}

// NewJobService creates a JobService.
func NewJobService(jobs repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

// List returns every job, or only hrEmail's when given.
func (s *JobService) List(ctx context.Context, hrEmail string) (jobs []*repository.Job, err error) {
	ctx, end := startSpan(ctx, "jobs.list")
	defer end(&err)
	return s.jobs.List(ctx, hrEmail)
}

// Get returns one job.
func (s *JobService) Get(ctx context.Context, id string) (job *repository.Job, err error) {
	ctx, end := startSpan(ctx, "jobs.get")
	defer end(&err)
	return s.jobs.FindByID(ctx, id)
}

// Create validates and stores a posting.
func (s *JobService) Create(ctx context.Context, job *repository.Job) (res *repository.InsertResult, err error) {
	ctx, end := startSpan(ctx, "jobs.create")
	defer end(&err)

	if job == nil {
		return nil, ecode.BadRequest(ecode.FieldIsRequired("body"))
	}
	if err := validate(job, "invalid job"); err != nil {
		return nil, err
	}
	res, err = s.jobs.Create(ctx, job)
	if err != nil {
		return nil, err
	}
	logger.Infof(ctx, "job %s created by %s", res.InsertedID, job.HREmail)
	return res, nil
}

// ListForEmployer returns hrEmail's jobs with their application counts.
func (s *JobService) ListForEmployer(ctx context.Context, hrEmail string) (jobs []*repository.Job, err error) {
	ctx, end := startSpan(ctx, "jobs.list_for_employer")
	defer end(&err)
	if hrEmail == "" {
		return nil, ecode.BadRequest(ecode.FieldIsRequired("email"))
	}
	return s.jobs.ListWithApplicationCounts(ctx, hrEmail)
}
