package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/apperr"
	"github.com/medihire/medihire/internal/auth"
	"github.com/medihire/medihire/internal/models"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

func AuthRequired(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
			return
		}
		claims, err := issuer.ParseAccess(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			abort(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
			return
		}
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

func RequirePerson() gin.HandlerFunc {
	return requireRoles(models.RolePerson)
}

func RequireCompany() gin.HandlerFunc {
	return requireRoles(models.RoleCompanyUnverified, models.RoleCompanyVerified)
}

func RequireAdmin() gin.HandlerFunc {
	return requireRoles(models.RoleAdmin, models.RoleCS)
}

func requireRoles(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := RoleFrom(c)
		for _, r := range allowed {
			if role == r {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, "FORBIDDEN", "insufficient role")
	}
}

// UserIDFrom returns the authenticated user id set by AuthRequired.
func UserIDFrom(c *gin.Context) uuid.UUID {
	v, _ := c.Get(CtxUserID)
	id, _ := v.(uuid.UUID)
	return id
}

func RoleFrom(c *gin.Context) models.Role {
	v, _ := c.Get(CtxRole)
	r, _ := v.(models.Role)
	return r
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": &apperr.Error{Code: code, Message: message}})
}
