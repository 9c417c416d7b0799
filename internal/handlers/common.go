package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medihire/medihire/internal/apperr"
)

// pathUUID parses a uuid path parameter, writing the error envelope on
// failure. Callers must return when ok is false.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		apperr.Respond(c, apperr.BadRequest("INVALID_ID", "malformed "+name))
		return uuid.Nil, false
	}
	return id, true
}
