package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/dtos"
	"github.com/medihire/medihire/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// Signup is POST /auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dtos.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Auth.Signup(&req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login is POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Auth.Login(&req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh is POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dtos.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadJSON(c, err)
		return
	}
	resp, err := h.Auth.Refresh(req.RefreshToken)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout is POST /auth/logout. Tokens are stateless, so this only
// acknowledges; clients drop their copies.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
