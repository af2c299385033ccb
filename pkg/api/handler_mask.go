package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/logshield/pkg/metrics"
)

// maskHandler handles POST /api/v1/mask.
func (s *Server) maskHandler(c *gin.Context) {
	var req MaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		abortWithError(c, http.StatusBadRequest, "message is required")
		return
	}

	start := time.Now()
	result := s.masking.Redact(req.Message)
	metrics.RecordMasking(result, time.Since(start))

	// The plan is ordered by descending offset; report it front to back.
	redactions := make([]Redaction, len(result.Plan))
	for i, r := range result.Plan {
		redactions[len(result.Plan)-1-i] = Redaction{
			Kind:   string(r.Span.Kind),
			Start:  r.Span.Start,
			Length: r.Span.Length,
		}
	}

	c.JSON(http.StatusOK, &MaskResponse{
		Masked:     result.Text,
		Redactions: redactions,
	})
}

// detectorsHandler handles GET /api/v1/detectors.
func (s *Server) detectorsHandler(c *gin.Context) {
	detectors := s.masking.Catalog().Detectors()
	resp := &DetectorsResponse{Detectors: make([]DetectorInfo, len(detectors))}
	for i, d := range detectors {
		resp.Detectors[i] = DetectorInfo{
			Kind:        string(d.Kind()),
			Priority:    d.Priority(),
			Description: d.Description(),
			Custom:      d.Kind().IsCustom(),
		}
	}
	c.JSON(http.StatusOK, resp)
}
