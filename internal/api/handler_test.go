package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"cleaning-coordination-backend/internal/model"
	"cleaning-coordination-backend/internal/store"
)

// newTestHandler wires a handler against an in-memory SQLite store with a
// fixed clock, plus a bare router exposing the same routes as NewRouter.
func newTestHandler(t *testing.T, now time.Time) (*Handler, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Property{},
		&model.LinenRequirement{},
		&model.CleaningSession{},
		&model.Notification{},
		&model.PushSubscription{},
	))

	handler := NewHandler(store.NewGormStore(db), nil)
	handler.now = func() time.Time { return now }

	r := gin.New()
	api := r.Group("/api")
	{
		api.GET("/properties", handler.GetProperties)
		api.POST("/properties", handler.CreateProperty)
		api.GET("/properties/:property_id", handler.GetProperty)
		api.GET("/properties/:property_id/linen", handler.GetLinen)
		api.PUT("/properties/:property_id/linen", handler.PutLinen)
		api.GET("/sessions", handler.ListSessions)
		api.POST("/sessions", handler.CreateSession)
		api.GET("/sessions/:session_id", handler.GetSession)
		api.POST("/sessions/:session_id/start", handler.StartSession)
		api.POST("/sessions/:session_id/pause", handler.PauseSession)
		api.POST("/sessions/:session_id/resume", handler.ResumeSession)
		api.POST("/sessions/:session_id/complete", handler.CompleteSession)
		api.POST("/sessions/:session_id/cancel", handler.CancelSession)
		api.GET("/dashboard/banner", handler.GetBanner)
		api.GET("/notifications", handler.ListNotifications)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.GET("/subscriptions", handler.GetSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}
	return handler, r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createProperty(t *testing.T, r *gin.Engine, rooms int) model.Property {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/properties", gin.H{
		"owner_id":   uuid.New(),
		"name":       "Garden Studio",
		"address":    "12 Vine St",
		"room_count": rooms,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var property model.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &property))
	return property
}

func createSession(t *testing.T, r *gin.Engine, propertyID uuid.UUID, scheduled time.Time, guests int) model.CleaningSession {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/sessions", gin.H{
		"property_id":             propertyID,
		"cleaner_id":              uuid.New(),
		"scheduled_cleaning_time": scheduled,
		"guest_count":             guests,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var session model.CleaningSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	return session
}
