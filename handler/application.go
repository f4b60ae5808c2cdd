package handler

import (
	"net/http"

	"github.com/careercode/jobportal/consts"
	"github.com/careercode/jobportal/ctxutil"
	"github.com/careercode/jobportal/data/repository"
	"github.com/careercode/jobportal/net/resp"
	"github.com/gin-gonic/gin"
)

// ApplicationHandler handles HTTP requests for job applications.
type ApplicationHandler struct {
	svc ApplicationService
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(svc ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// statusBody is the PATCH payload.
type statusBody struct {
	Status string `json:"status"`
}

// ListByApplicant handles GET /applications?email=.
func (h *ApplicationHandler) ListByApplicant(c *gin.Context) {
	apps, err := h.svc.ListByApplicant(ctxutil.FromGinContext(c), c.Query(consts.EmailQueryKey))
	if err != nil {
		fail(c, err, "failed to list applications")
		return
	}
	resp.Success(c.Writer, apps)
}

// ListByJob handles GET /applications/job/:job_id.
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	apps, err := h.svc.ListByJob(ctxutil.FromGinContext(c), caller(c), c.Param(consts.JobIDParam))
	if err != nil {
		fail(c, err, "failed to list job applications")
		return
	}
	resp.Success(c.Writer, apps)
}

// Get handles GET /applications/:id.
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.svc.Get(ctxutil.FromGinContext(c), caller(c), c.Param(consts.IDParam))
	if err != nil {
		fail(c, err, "failed to get application")
		return
	}
	resp.Success(c.Writer, app)
}

// Create handles POST /applications.
func (h *ApplicationHandler) Create(c *gin.Context) {
	var app repository.Application
	if !bind(c, &app) {
		return
	}
	res, err := h.svc.Create(ctxutil.FromGinContext(c), caller(c), &app)
	if err != nil {
		fail(c, err, "failed to create application")
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, res)
}

// UpdateStatus handles PATCH /applications/:id.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var body statusBody
	if !bind(c, &body) {
		return
	}
	res, err := h.svc.UpdateStatus(ctxutil.FromGinContext(c), caller(c), c.Param(consts.IDParam), body.Status)
	if err != nil {
		fail(c, err, "failed to update application status")
		return
	}
	resp.Success(c.Writer, res)
}
