package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/codeready-toolchain/logshield/pkg/database"
)

// maxListLimit caps the limit query parameter.
const maxListLimit = 1000

// listEntriesHandler handles GET /api/v1/entries.
// Query parameters: category (exact match), limit (1..1000).
func (s *Server) listEntriesHandler(c *gin.Context) {
	if s.dbClient == nil {
		abortWithError(c, http.StatusServiceUnavailable, "database sink is not enabled")
		return
	}

	opts := database.ListOptions{Category: c.Query("category")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			abortWithError(c, http.StatusBadRequest, "limit must be an integer between 1 and 1000")
			return
		}
		opts.Limit = limit
	}

	entries, err := s.dbClient.Entries.List(c.Request.Context(), opts)
	if err != nil {
		abortWithInternalError(c, "Failed to list log entries", err)
		return
	}
	if entries == nil {
		entries = []database.LogEntry{}
	}
	c.JSON(http.StatusOK, &EntriesResponse{Entries: entries})
}
