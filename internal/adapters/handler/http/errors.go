package http

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/gym-occupancy/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
)

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSample):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sample", "details": err.Error()})

	case errors.Is(err, domain.ErrStorageUnavailable):
		log.Error("storage unavailable",
			"request_id", c.GetString(middleware.ContextRequestIDKey),
			"path", c.Request.URL.Path,
			"err", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "occupancy data unavailable"})

	default:
		log.Error("request failed",
			"request_id", c.GetString(middleware.ContextRequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
