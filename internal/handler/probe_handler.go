package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Unknowmyt1M/DIRECTTOYT/internal/extractor"
	"github.com/Unknowmyt1M/DIRECTTOYT/internal/metrics"
)

// ProbeHandler serves the metadata endpoints.
type ProbeHandler struct {
	probe *extractor.Probe
}

func NewProbeHandler(probe *extractor.Probe) *ProbeHandler {
	return &ProbeHandler{probe: probe}
}

type probeRequest struct {
	URL string `json:"url"`
}

// GetMetadata returns the rich field set for display before download.
func (h *ProbeHandler) GetMetadata(c *gin.Context) {
	var req probeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	meta, err := h.probe.Metadata(c.Request.Context(), req.URL)
	if err != nil {
		metrics.Probes.WithLabelValues(metrics.OutcomeFailure).Inc()
		writeError(c, err)
		return
	}

	metrics.Probes.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusOK, meta)
}

// GetVideoInfo returns the display metadata with the selected
// thumbnail.
func (h *ProbeHandler) GetVideoInfo(c *gin.Context) {
	var req probeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request payload: "+err.Error())
		return
	}

	info, err := h.probe.VideoInfo(c.Request.Context(), req.URL)
	if err != nil {
		metrics.Probes.WithLabelValues(metrics.OutcomeFailure).Inc()
		writeError(c, err)
		return
	}

	metrics.Probes.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.JSON(http.StatusOK, info)
}
