package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutSubscription_BadRequest(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	_, r := newTestHandler(t, now)

	w := doJSON(t, r, http.MethodPut, "/api/subscriptions", gin.H{"endpoint": "https://push.example/x"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing keys must be rejected")
}

func TestSubscriptionRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	_, r := newTestHandler(t, now)

	property := createProperty(t, r, 2)
	endpoint := "https://push.example/sub-1"

	w := doJSON(t, r, http.MethodPut, "/api/subscriptions", gin.H{
		"endpoint":              endpoint,
		"p256dh":                "key",
		"auth":                  "secret",
		"subscribed_properties": []uuid.UUID{property.ID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/subscriptions?endpoint="+url.QueryEscape(endpoint), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		SubscribedProperties []uuid.UUID `json:"subscribed_properties"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.SubscribedProperties, 1)
	assert.Equal(t, property.ID, resp.SubscribedProperties[0])

	w = doJSON(t, r, http.MethodDelete, "/api/subscriptions", gin.H{"endpoint": endpoint})
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/subscriptions?endpoint="+url.QueryEscape(endpoint), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVAPIDPublicKey_Unconfigured(t *testing.T) {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	_, r := newTestHandler(t, now)

	w := doJSON(t, r, http.MethodGet, "/api/vapid_public_key", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
