// Package handler provides the HTTP handlers of the job portal API.
package handler

import (
	"context"
	"errors"

	"github.com/careercode/jobportal/ctxutil"
	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/ecode"
	"github.com/careercode/jobportal/logging/logger"
	"github.com/careercode/jobportal/middleware"
	"github.com/careercode/jobportal/net/resp"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// JobService is what the job handlers need from the service layer.
type JobService interface {
	List(ctx context.Context, hrEmail string) ([]*repository.Job, error)
	Get(ctx context.Context, id string) (*repository.Job, error)
	Create(ctx context.Context, job *repository.Job) (*repository.InsertResult, error)
	ListForEmployer(ctx context.Context, hrEmail string) ([]*repository.Job, error)
}

// ApplicationService is what the application handlers need from the service layer.
type ApplicationService interface {
	ListByApplicant(ctx context.Context, email string) ([]*repository.Application, error)
	ListByJob(ctx context.Context, caller, jobID string) ([]*repository.Application, error)
	Get(ctx context.Context, caller, id string) (*repository.Application, error)
	Create(ctx context.Context, caller string, app *repository.Application) (*repository.InsertResult, error)
	UpdateStatus(ctx context.Context, caller, id, status string) (*repository.UpdateResult, error)
}

// Handler aggregates all HTTP handlers.
type Handler struct {
	Job         *JobHandler
	Application *ApplicationHandler
}

// NewHandler creates a new handler instance with all sub-handlers initialized.
func NewHandler(jobs JobService, apps ApplicationService) *Handler {
	return &Handler{
		Job:         NewJobHandler(jobs),
		Application: NewApplicationHandler(apps),
	}
}

// RegisterRoutes registers all API routes. Gates come from m.
func (h *Handler) RegisterRoutes(r gin.IRouter, m *middleware.Middleware) {
	auth := m.Auth()
	owner := m.EmailVerify()

	jobs := r.Group("/jobs")
	{
		jobs.GET("", h.Job.List)
		jobs.POST("", h.Job.Create)
		jobs.GET("/applications", auth, owner, h.Job.ListForEmployer)
		jobs.GET("/:id", auth, owner, h.Job.Get)
	}

	apps := r.Group("/applications", auth)
	{
		apps.GET("", owner, h.Application.ListByApplicant)
		apps.POST("", h.Application.Create)
		apps.GET("/job/:job_id", h.Application.ListByJob)
		apps.GET("/:id", h.Application.Get)
		apps.PATCH("/:id", h.Application.UpdateStatus)
	}
}

// fail writes err as the error envelope. Server errors are logged and
// attached to the gin context for reporting.
func fail(c *gin.Context, err error, msg string) {
	ex := resp.FromError(err)
	if ex.Status >= 500 {
		logger.WithFields(ctxutil.FromGinContext(c), logrus.Fields{"error": err.Error()}).Error(msg)
		_ = c.Error(err)
	}
	resp.Fail(c.Writer, ex)
}

// bind decodes the JSON body into v. Coded decode errors, such as rejected
// field names, keep their message and fields.
func bind(c *gin.Context, v any) bool {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return true
	}
	var e *ecode.Error
	if errors.As(err, &e) {
		resp.Fail(c.Writer, resp.FromError(e))
		return false
	}
	resp.Fail(c.Writer, resp.BadRequest("invalid request body"))
	return false
}

func caller(c *gin.Context) string {
	return ctxutil.GetEmail(ctxutil.FromGinContext(c))
}
