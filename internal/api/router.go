package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"cleaning-coordination-backend/config"
	"cleaning-coordination-backend/internal/mw"
	"cleaning-coordination-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, s store.Store, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/properties", caching, handler.GetProperties)
		api.POST("/properties", handler.CreateProperty)
		api.GET("/properties/:property_id", caching, handler.GetProperty)
		api.GET("/properties/:property_id/linen", caching, handler.GetLinen)
		api.PUT("/properties/:property_id/linen", handler.PutLinen)

		api.GET("/sessions", handler.ListSessions)
		api.POST("/sessions", handler.CreateSession)
		api.GET("/sessions/:session_id", handler.GetSession)
		api.POST("/sessions/:session_id/start", handler.StartSession)
		api.POST("/sessions/:session_id/pause", handler.PauseSession)
		api.POST("/sessions/:session_id/resume", handler.ResumeSession)
		api.POST("/sessions/:session_id/complete", handler.CompleteSession)
		api.POST("/sessions/:session_id/cancel", handler.CancelSession)

		// The dashboard banner is recomputed per request; never cached.
		api.GET("/dashboard/banner", handler.GetBanner)

		api.GET("/notifications", handler.ListNotifications)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
