package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/middleware"
	"github.com/medihire/medihire/internal/services"
)

// BizHandler serves the company surface under /biz: job management,
// applicant tracking, talent scouting, verification and reports.
type BizHandler struct {
	Jobs          *services.JobService
	Applications  *services.ApplicationService
	Scouts        *services.ScoutService
	Verifications *services.VerificationService
	Reports       *services.ReportService
}

func NewBizHandler(
	jobs *services.JobService,
	applications *services.ApplicationService,
	scouts *services.ScoutService,
	verifications *services.VerificationService,
	reports *services.ReportService,
) *BizHandler {
	return &BizHandler{
		Jobs:          jobs,
		Applications:  applications,
		Scouts:        scouts,
		Verifications: verifications,
		Reports:       reports,
	}
}

// ListJobs is GET /biz/jobs.
func (h *BizHandler) ListJobs(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Jobs.CompanyJobs(middleware.UserIDFrom(c), page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateJob is POST /biz/jobs.
func (h *BizHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	job, err := h.Jobs.Create(middleware.UserIDFrom(c), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

// UpdateJob is PATCH /biz/jobs/:id.
func (h *BizHandler) UpdateJob(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	job, err := h.Jobs.Update(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// PublishJob is POST /biz/jobs/:id/publish.
func (h *BizHandler) PublishJob(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.Jobs.Publish(middleware.UserIDFrom(c), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CloseJob is POST /biz/jobs/:id/close.
func (h *BizHandler) CloseJob(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.Jobs.Close(middleware.UserIDFrom(c), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListApplicants is GET /biz/applicants.
func (h *BizHandler) ListApplicants(c *gin.Context) {
	var filter dtos.ApplicantFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Applications.ListForCompany(middleware.UserIDFrom(c), &filter)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetApplicant is GET /biz/applicants/:id.
func (h *BizHandler) GetApplicant(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	detail, err := h.Applications.GetDetailForCompany(middleware.UserIDFrom(c), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ChangeApplicantStatus is PATCH /biz/applicants/:id/status.
func (h *BizHandler) ChangeApplicantStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	detail, err := h.Applications.ChangeStatus(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// AddApplicantNote is POST /biz/applicants/:id/notes.
func (h *BizHandler) AddApplicantNote(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.ApplicationNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	note, err := h.Applications.AddNote(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// SearchTalents is GET /biz/talents.
func (h *BizHandler) SearchTalents(c *gin.Context) {
	var q dtos.TalentSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Scouts.SearchTalents(middleware.UserIDFrom(c), &q)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendScout is POST /biz/scouts.
func (h *BizHandler) SendScout(c *gin.Context) {
	var req dtos.ScoutCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	scout, err := h.Scouts.Send(middleware.UserIDFrom(c), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, scout)
}

// ListScouts is GET /biz/scouts.
func (h *BizHandler) ListScouts(c *gin.Context) {
	var filter dtos.ScoutFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Scouts.ListForCompany(middleware.UserIDFrom(c), &filter)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitVerification is POST /biz/verify.
func (h *BizHandler) SubmitVerification(c *gin.Context) {
	var req dtos.VerificationSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	verification, err := h.Verifications.Submit(middleware.UserIDFrom(c), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, verification)
}

// VerificationStatus is GET /biz/verify.
func (h *BizHandler) VerificationStatus(c *gin.Context) {
	verification, err := h.Verifications.Status(middleware.UserIDFrom(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, verification)
}

// CreateReport is POST /biz/reports. Any authenticated user may file one.
func (h *BizHandler) CreateReport(c *gin.Context) {
	var req dtos.ReportCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	userID := middleware.UserIDFrom(c)
	report, err := h.Reports.Create(&userID, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}
