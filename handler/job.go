package handler

import (
	"net/http"

	"github.com/careercode/jobportal/consts"
	"github.com/careercode/jobportal/ctxutil"
	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/net/resp"
	"github.com/gin-gonic/gin"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	svc JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(svc JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// List handles GET /jobs, optionally filtered by ?email=.
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.svc.List(ctxutil.FromGinContext(c), c.Query(consts.EmailQueryKey))
	if err != nil {
		fail(c, err, "failed to list jobs")
		return
	}
	resp.Success(c.Writer, jobs)
}

// ListForEmployer handles GET /jobs/applications.
func (h *JobHandler) ListForEmployer(c *gin.Context) {
	jobs, err := h.svc.ListForEmployer(ctxutil.FromGinContext(c), c.Query(consts.EmailQueryKey))
	if err != nil {
		fail(c, err, "failed to list employer jobs")
		return
	}
	resp.Success(c.Writer, jobs)
}

// Get handles GET /jobs/:id.
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.svc.Get(ctxutil.FromGinContext(c), c.Param(consts.IDParam))
	if err != nil {
		fail(c, err, "failed to get job")
		return
	}
	resp.Success(c.Writer, job)
}

// Create handles POST /jobs.
func (h *JobHandler) Create(c *gin.Context) {
	var job repository.Job
	if !bind(c, &job) {
		return
	}
	res, err := h.svc.Create(ctxutil.FromGinContext(c), &job)
	if err != nil {
		fail(c, err, "failed to create job")
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, res)
}
