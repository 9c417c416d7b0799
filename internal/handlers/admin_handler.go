package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/middleware"
	"github.com/medihire/medihire/internal/services"
)

// AdminHandler serves the back office under /admin.
type AdminHandler struct {
	Admin         *services.AdminService
	Verifications *services.VerificationService
	Reports       *services.ReportService
}

func NewAdminHandler(
	admin *services.AdminService,
	verifications *services.VerificationService,
	reports *services.ReportService,
) *AdminHandler {
	return &AdminHandler{Admin: admin, Verifications: verifications, Reports: reports}
}

// Dashboard is GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dash, err := h.Admin.Dashboard()
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// ListVerifications is GET /admin/verifications.
func (h *AdminHandler) ListVerifications(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Verifications.ListPending(page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReviewVerification is POST /admin/verifications/:id/review.
func (h *AdminHandler) ReviewVerification(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.VerificationReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	verification, err := h.Verifications.Review(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, verification)
}

// ListReports is GET /admin/reports.
func (h *AdminHandler) ListReports(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Reports.ListPending(page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ProcessReport is POST /admin/reports/:id/process.
func (h *AdminHandler) ProcessReport(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.ReportProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	report, err := h.Reports.Process(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ModerationJobs is GET /admin/jobs.
func (h *AdminHandler) ModerationJobs(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Admin.ModerationJobs(page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// BlindJob is POST /admin/jobs/:id/blind.
func (h *AdminHandler) BlindJob(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.Admin.BlindJob(middleware.UserIDFrom(c), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// UnblindJob is POST /admin/jobs/:id/unblind.
func (h *AdminHandler) UnblindJob(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	job, err := h.Admin.UnblindJob(middleware.UserIDFrom(c), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// ListUsers is GET /admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var filter dtos.UserAdminFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Admin.ListUsers(&filter)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetUserStatus is PATCH /admin/users/:id/status.
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	user, err := h.Admin.SetUserStatus(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logs is GET /admin/logs.
func (h *AdminHandler) Logs(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Admin.Logs(page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
