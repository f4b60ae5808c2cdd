// Package service holds the job portal's business rules: payload validation,
// ownership of job-scoped data and referential checks between applications
// and jobs.
package service

import (
	"context"

	"github.com/careercode/jobportal/config"
	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/ecode"
	"github.com/careercode/jobportal/logging/observes"
	"github.com/careercode/jobportal/validation/validator"
)

// Service groups the domain services.
type Service struct {
	Job         *JobService
	Application *ApplicationService
}

// New creates the services over the repositories.
func New(jobs repository.JobRepository, apps repository.ApplicationRepository, cfg *config.Application) *Service {
	return &Service{
		Job:         NewJobService(jobs),
		Application: NewApplicationService(apps, jobs, cfg),
	}
}

func startSpan(ctx context.Context, name string) (context.Context, func(*error)) {
	ctx, span := observes.StartSpan(ctx, observes.LayerService, name)
	return ctx, func(errp *error) { observes.EndSpan(span, *errp) }
}

// validate returns a BadRequest carrying per-field messages, or nil.
func validate(v any, msg string) error {
	if fields := validator.ValidateStruct(v); len(fields) > 0 {
		return ecode.BadRequest(msg).WithFields(fields)
	}
	return nil
}
