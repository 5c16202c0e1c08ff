package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cleaning-coordination-backend/internal/model"
)

// ListNotifications handles GET /api/notifications?since=RFC3339.
func (h *Handler) ListNotifications(c *gin.Context) {
	q := h.store.DB().Order("sent_at DESC").Limit(100)

	if sinceParam := c.Query("since"); sinceParam != "" {
		since, err := time.Parse(time.RFC3339, sinceParam)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'since' timestamp format. Use RFC3339."})
			return
		}
		q = q.Where("sent_at >= ?", since)
	}

	var notifications []model.Notification
	if err := q.Find(&notifications).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}
