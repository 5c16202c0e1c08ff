package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cleaning-coordination-backend/internal/model"
	"cleaning-coordination-backend/internal/store"
)

type createSessionRequest struct {
	PropertyID            uuid.UUID `json:"property_id" binding:"required"`
	CleanerID             uuid.UUID `json:"cleaner_id"`
	ScheduledCleaningTime time.Time `json:"scheduled_cleaning_time" binding:"required"`
	CheckinTime           time.Time `json:"checkin_time"`
	CheckoutTime          time.Time `json:"checkout_time"`
	GuestCount            int       `json:"guest_count" binding:"min=0"`
}

// CreateSession handles POST /api/sessions.
func (h *Handler) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := model.CleaningSession{
		ID:                    uuid.New(),
		PropertyID:            req.PropertyID,
		CleanerID:             req.CleanerID,
		ScheduledCleaningTime: req.ScheduledCleaningTime,
		CheckinTime:           req.CheckinTime,
		CheckoutTime:          req.CheckoutTime,
		Status:                model.SessionScheduled,
		GuestCount:            req.GuestCount,
	}
	if err := h.store.DB().Create(&session).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// ListSessions handles GET /api/sessions?date=YYYY-MM-DD; without a date it
// returns today's sessions. Metadata is attached either way.
func (h *Handler) ListSessions(c *gin.Context) {
	now := h.now()
	if dateParam := c.Query("date"); dateParam != "" {
		day, err := time.ParseInLocation("2006-01-02", dateParam, now.Location())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid 'date' format. Use YYYY-MM-DD."})
			return
		}
		// Anchor the day query at the requested date, keeping the current
		// clock for metadata derivation.
		now = time.Date(day.Year(), day.Month(), day.Day(),
			now.Hour(), now.Minute(), now.Second(), 0, now.Location())
	}

	sessions, err := h.store.TodaySessions(c.Request.Context(), now)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// sessionResponse adds the computed linen list to a session payload.
type sessionResponse struct {
	model.CleaningSession
	Linen []linenLine `json:"linen"`
}

type linenLine struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// GetSession handles GET /api/sessions/:session_id.
func (h *Handler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.store.SessionByID(c.Request.Context(), id)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	store.AttachMetadata(session, h.now())

	var requirements []model.LinenRequirement
	if err := h.store.DB().Where("property_id = ?", session.PropertyID).Find(&requirements).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve linen requirements"})
		return
	}

	resp := sessionResponse{CleaningSession: *session, Linen: make([]linenLine, 0, len(requirements))}
	for _, r := range requirements {
		resp.Linen = append(resp.Linen, linenLine{Item: r.Item, Quantity: r.QuantityFor(session.GuestCount)})
	}
	c.JSON(http.StatusOK, resp)
}

// StartSession handles POST /api/sessions/:session_id/start.
func (h *Handler) StartSession(c *gin.Context) {
	h.lifecycle(c, func(id uuid.UUID) (*model.CleaningSession, error) {
		return h.store.StartSession(c.Request.Context(), id, h.now())
	})
}

// PauseSession handles POST /api/sessions/:session_id/pause.
func (h *Handler) PauseSession(c *gin.Context) {
	h.lifecycle(c, func(id uuid.UUID) (*model.CleaningSession, error) {
		return h.store.PauseSession(c.Request.Context(), id, h.now())
	})
}

// ResumeSession handles POST /api/sessions/:session_id/resume.
func (h *Handler) ResumeSession(c *gin.Context) {
	h.lifecycle(c, func(id uuid.UUID) (*model.CleaningSession, error) {
		return h.store.ResumeSession(c.Request.Context(), id, h.now())
	})
}

type completeSessionRequest struct {
	PhotosCompleted bool `json:"photos_completed"`
}

// CompleteSession handles POST /api/sessions/:session_id/complete.
func (h *Handler) CompleteSession(c *gin.Context) {
	var req completeSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	h.lifecycle(c, func(id uuid.UUID) (*model.CleaningSession, error) {
		return h.store.CompleteSession(c.Request.Context(), id, h.now(), req.PhotosCompleted)
	})
}

// CancelSession handles POST /api/sessions/:session_id/cancel.
func (h *Handler) CancelSession(c *gin.Context) {
	h.lifecycle(c, func(id uuid.UUID) (*model.CleaningSession, error) {
		return h.store.CancelSession(c.Request.Context(), id)
	})
}

func (h *Handler) lifecycle(c *gin.Context, op func(uuid.UUID) (*model.CleaningSession, error)) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	session, err := op(id)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	store.AttachMetadata(session, h.now())
	c.JSON(http.StatusOK, session)
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return uuid.Nil, false
	}
	return id, true
}
