package http

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/gym-occupancy/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

type SampleHandler struct {
	svc *services.SampleService
}

func NewSampleHandler(svc *services.SampleService) *SampleHandler {
	return &SampleHandler{svc: svc}
}

type recordSampleRequest struct {
	Timestamp      time.Time `json:"timestamp" binding:"required"`
	OccupancyLevel *int      `json:"occupancy_level" binding:"required"`
}

func (h *SampleHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/samples", h.Record)
}

func (h *SampleHandler) Record(c *gin.Context) {
	var req recordSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	sample, err := h.svc.Record(c.Request.Context(), services.RecordSampleInput{
		Timestamp:      req.Timestamp,
		OccupancyLevel: *req.OccupancyLevel,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	client, _ := middleware.GetClient(c)
	log.Debug("sample recorded", "id", sample.ID, "level", sample.OccupancyLevel, "client", client)

	c.JSON(http.StatusCreated, sample)
}
