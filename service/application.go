package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/careercode/jobportal/config"
	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/ecode"
	"github.com/careercode/jobportal/logging/logger"
)

// ApplicationService handles job applications.
type ApplicationService struct {
	apps repository.ApplicationRepository
	jobs repository.JobRepository
	cfg  *config.Application
}

// NewApplicationService creates an ApplicationService.
func NewApplicationService(apps repository.ApplicationRepository, jobs repository.JobRepository, cfg *config.Application) *ApplicationService {
	return &ApplicationService{apps: apps, jobs: jobs, cfg: cfg}
}

// ListByApplicant returns the applicant's applications enriched with job details.
func (s *ApplicationService) ListByApplicant(ctx context.Context, email string) (apps []*repository.Application, err error) {
	ctx, end := startSpan(ctx, "applications.list_by_applicant")
	defer end(&err)
	if email == "" {
		return nil, ecode.BadRequest(ecode.FieldIsRequired("email"))
	}
	return s.apps.ListByApplicant(ctx, email)
}

// ListByJob returns the applications for jobID. Only the job's owner may list them.
func (s *ApplicationService) ListByJob(ctx context.Context, caller, jobID string) (apps []*repository.Application, err error) {
	ctx, end := startSpan(ctx, "applications.list_by_job")
	defer end(&err)

	if _, err := s.ownedJob(ctx, caller, jobID); err != nil {
		return nil, err
	}
	return s.apps.ListByJob(ctx, jobID)
}

// Get returns one application to its applicant or to the owner of its job.
func (s *ApplicationService) Get(ctx context.Context, caller, id string) (app *repository.Application, err error) {
	ctx, end := startSpan(ctx, "applications.get")
	defer end(&err)

	app, err = s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Applicant == caller {
		return app, nil
	}
	job, err := s.referencedJob(ctx, app)
	if err != nil {
		return nil, err
	}
	if job.HREmail != caller {
		return nil, ecode.Forbidden(ecode.NotOwned("application " + id))
	}
	return app, nil
}

// Create stores an application for the caller. The referenced job must exist.
func (s *ApplicationService) Create(ctx context.Context, caller string, app *repository.Application) (res *repository.InsertResult, err error) {
	ctx, end := startSpan(ctx, "applications.create")
	defer end(&err)

	if app == nil {
		return nil, ecode.BadRequest(ecode.FieldIsRequired("body"))
	}
	if err := validate(app, "invalid application"); err != nil {
		return nil, err
	}
	if app.Applicant != caller {
		return nil, ecode.Forbidden("applicant must be the authenticated user")
	}
	if app.Status == "" {
		app.Status = s.cfg.DefaultStatus
	} else if !s.cfg.IsValidStatus(app.Status) {
		return nil, s.invalidStatus(app.Status)
	}

	if _, err := s.jobs.FindByID(ctx, app.JobID); err != nil {
		if errors.Is(err, ecode.ErrNotFound) {
			return nil, ecode.Dangling(fmt.Sprintf("job %s does not exist", app.JobID))
		}
		return nil, err
	}

	res, err = s.apps.Create(ctx, app)
	if err != nil {
		return nil, err
	}
	logger.Infof(ctx, "application %s created for job %s", res.InsertedID, app.JobID)
	return res, nil
}

// UpdateStatus sets the status of application id. Only the job's owner may do so.
func (s *ApplicationService) UpdateStatus(ctx context.Context, caller, id, status string) (res *repository.UpdateResult, err error) {
	ctx, end := startSpan(ctx, "applications.update_status")
	defer end(&err)

	if status == "" {
		return nil, ecode.BadRequest(ecode.FieldIsRequired("status")).
			WithFields(map[string]string{"status": ecode.FieldIsRequired("status")})
	}
	if !s.cfg.IsValidStatus(status) {
		return nil, s.invalidStatus(status)
	}

	app, err := s.apps.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job, err := s.referencedJob(ctx, app)
	if err != nil {
		return nil, err
	}
	if job.HREmail != caller {
		return nil, ecode.Forbidden(ecode.NotOwned("job " + app.JobID))
	}

	res, err = s.apps.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	logger.Infof(ctx, "application %s status set to %s", id, status)
	return res, nil
}

// ownedJob loads jobID and checks caller owns it.
func (s *ApplicationService) ownedJob(ctx context.Context, caller, jobID string) (*repository.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.HREmail != caller {
		return nil, ecode.Forbidden(ecode.NotOwned("job " + jobID))
	}
	return job, nil
}

// referencedJob loads the job app points at; a missing job is a DanglingReference.
func (s *ApplicationService) referencedJob(ctx context.Context, app *repository.Application) (*repository.Job, error) {
	job, err := s.jobs.FindByID(ctx, app.JobID)
	if err == nil {
		return job, nil
	}
	if errors.Is(err, ecode.ErrNotFound) || errors.Is(err, ecode.ErrBadRequest) {
		return nil, ecode.Newf(ecode.DanglingReference,
			"application %s references missing job %s", app.ID.Hex(), app.JobID)
	}
	return nil, err
}

func (s *ApplicationService) invalidStatus(status string) error {
	msg := fmt.Sprintf("status %q is not one of %v", status, s.cfg.Statuses)
	return ecode.BadRequest(msg).WithFields(map[string]string{"status": msg})
}
