package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/middleware"
	"github.com/medihire/medihire/internal/services"
)

// MeHandler serves the authenticated candidate surface under /me.
type MeHandler struct {
	Resumes       *services.ResumeService
	Applications  *services.ApplicationService
	Scouts        *services.ScoutService
	Notifications *services.NotificationService
	Favorites     *services.FavoriteService
}

func NewMeHandler(
	resumes *services.ResumeService,
	applications *services.ApplicationService,
	scouts *services.ScoutService,
	notifications *services.NotificationService,
	favorites *services.FavoriteService,
) *MeHandler {
	return &MeHandler{
		Resumes:       resumes,
		Applications:  applications,
		Scouts:        scouts,
		Notifications: notifications,
		Favorites:     favorites,
	}
}

// ListResumes is GET /me/resumes.
func (h *MeHandler) ListResumes(c *gin.Context) {
	resumes, err := h.Resumes.List(middleware.UserIDFrom(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": resumes})
}

// CreateResume is POST /me/resumes.
func (h *MeHandler) CreateResume(c *gin.Context) {
	var req dtos.ResumeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resume, err := h.Resumes.Create(middleware.UserIDFrom(c), &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resume)
}

// GetResume is GET /me/resumes/:id.
func (h *MeHandler) GetResume(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	resume, err := h.Resumes.Get(middleware.UserIDFrom(c), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// UpdateResume is PATCH /me/resumes/:id.
func (h *MeHandler) UpdateResume(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.ResumeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resume, err := h.Resumes.Update(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// SetResumeVisibility is PATCH /me/resumes/:id/visibility.
func (h *MeHandler) SetResumeVisibility(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.ResumeVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resume, err := h.Resumes.SetVisibility(middleware.UserIDFrom(c), id, req.Visibility)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resume)
}

// ListApplications is GET /me/applications.
func (h *MeHandler) ListApplications(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Applications.ListMine(middleware.UserIDFrom(c), page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetApplication is GET /me/applications/:id.
func (h *MeHandler) GetApplication(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	detail, err := h.Applications.GetMine(middleware.UserIDFrom(c), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListScouts is GET /me/scouts.
func (h *MeHandler) ListScouts(c *gin.Context) {
	var filter dtos.ScoutFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Scouts.ListForUser(middleware.UserIDFrom(c), &filter)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetScout is GET /me/scouts/:id. Reading a fresh scout marks it VIEWED.
func (h *MeHandler) GetScout(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	scout, err := h.Scouts.GetForUser(middleware.UserIDFrom(c), id)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, scout)
}

// RespondScout is POST /me/scouts/:id/respond.
func (h *MeHandler) RespondScout(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req dtos.ScoutRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	scout, err := h.Scouts.Respond(middleware.UserIDFrom(c), id, &req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, scout)
}

// ListNotifications is GET /me/notifications.
func (h *MeHandler) ListNotifications(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Notifications.List(middleware.UserIDFrom(c), page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReadNotification is POST /me/notifications/:id/read.
func (h *MeHandler) ReadNotification(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.Notifications.MarkRead(middleware.UserIDFrom(c), id); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ReadAllNotifications is POST /me/notifications/read-all.
func (h *MeHandler) ReadAllNotifications(c *gin.Context) {
	updated, err := h.Notifications.MarkAllRead(middleware.UserIDFrom(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "updated": updated})
}

// ToggleFavorite is POST /me/favorites/:job_id.
func (h *MeHandler) ToggleFavorite(c *gin.Context) {
	jobID, ok := pathUUID(c, "job_id")
	if !ok {
		return
	}
	favorited, err := h.Favorites.Toggle(middleware.UserIDFrom(c), jobID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}

// RemoveFavorite is DELETE /me/favorites/:job_id.
func (h *MeHandler) RemoveFavorite(c *gin.Context) {
	jobID, ok := pathUUID(c, "job_id")
	if !ok {
		return
	}
	if err := h.Favorites.Remove(middleware.UserIDFrom(c), jobID); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListFavorites is GET /me/favorites.
func (h *MeHandler) ListFavorites(c *gin.Context) {
	var page dtos.PageQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Favorites.List(middleware.UserIDFrom(c), page)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
