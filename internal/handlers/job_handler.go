package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/middleware"
	"github.com/medihire/medihire/internal/services"
)

// JobHandler serves the public job surface: search, detail, sitemap
// and the apply entry point.
type JobHandler struct {
	Jobs         *services.JobService
	Applications *services.ApplicationService
}

func NewJobHandler(jobs *services.JobService, applications *services.ApplicationService) *JobHandler {
	return &JobHandler{Jobs: jobs, Applications: applications}
}

// Search is GET /jobs.
func (h *JobHandler) Search(c *gin.Context) {
	var q dtos.JobSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Jobs.Search(&q)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail is GET /jobs/:id.
func (h *JobHandler) Detail(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.Jobs.GetDetail(id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// Sitemap is GET /jobs/sitemap.
func (h *JobHandler) Sitemap(c *gin.Context) {
	entries, err := h.Jobs.Sitemap()
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// Apply is POST /jobs/:id/apply.
func (h *JobHandler) Apply(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	read, err := h.Applications.Apply(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, read)
}
