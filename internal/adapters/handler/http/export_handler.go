package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

type ExportHandler struct {
	svc *services.ExportService
}

func NewExportHandler(svc *services.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/export", h.Export)
}

// Export buffers the dump so a storage error can still produce a proper
// status code instead of a truncated 200.
func (h *ExportHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	n, err := h.svc.Export(c.Request.Context(), &buf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="data.json"`)
	c.Header("X-Sample-Count", fmt.Sprintf("%d", n))
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}
