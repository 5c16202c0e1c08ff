package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cleaning-coordination-backend/internal/banner"
)

// GetBanner handles GET /api/dashboard/banner?role=&online=. It loads
// today's sessions, builds the evaluation context, and returns the derived
// banner. Role defaults to cleaner; online defaults to true since an offline
// client computes its banner locally.
func (h *Handler) GetBanner(c *gin.Context) {
	role := banner.Role(c.DefaultQuery("role", string(banner.RoleCleaner)))
	online := c.DefaultQuery("online", "true") != "false"

	now := h.now()
	sessions, err := h.store.TodaySessions(c.Request.Context(), now)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	result := banner.Calculate(banner.ContextFor(sessions, now, role, online))
	c.JSON(http.StatusOK, result)
}
