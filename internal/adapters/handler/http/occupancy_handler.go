package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/gym-occupancy/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

var errBadReference = errors.New("invalid reference format, expected RFC3339")

type OccupancyHandler struct {
	svc *services.DashboardService
}

func NewOccupancyHandler(svc *services.DashboardService) *OccupancyHandler {
	return &OccupancyHandler{svc: svc}
}

func (h *OccupancyHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/occupancy", h.GetSeries)
	r.GET("/occupancy/daily", h.GetDailyAverages)
	r.GET("/dashboard", h.GetDashboard)
}

func (h *OccupancyHandler) GetSeries(c *gin.Context) {
	input, err := seriesInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, err := h.svc.GetSeries(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, series)
}

func (h *OccupancyHandler) GetDailyAverages(c *gin.Context) {
	days, err := h.svc.GetDailyAverages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (h *OccupancyHandler) GetDashboard(c *gin.Context) {
	input, err := seriesInput(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dash, err := h.svc.GetDashboard(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dash)
}

// seriesInput reads ?range= and ?reference=. An unusable range is not an
// error: it falls back to domain.DefaultWindowDays.
func seriesInput(c *gin.Context) (domain.SeriesInput, error) {
	selector := c.Query("range")
	days, ok := domain.ParseWindowSelector(selector)
	if !ok && selector != "" {
		log.Debug("unrecognized range selector, using default",
			"request_id", c.GetString(middleware.ContextRequestIDKey),
			"range", selector,
			"days", days)
	}

	input := domain.SeriesInput{WindowDays: days}

	if ref := c.Query("reference"); ref != "" {
		t, err := time.Parse(time.RFC3339, ref)
		if err != nil {
			return input, errBadReference
		}
		input.Reference = t
	}

	return input, nil
}
