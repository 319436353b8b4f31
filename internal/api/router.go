package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"freight-marketplace-backend/config"
	"freight-marketplace-backend/internal/mw"
	"freight-marketplace-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	// The consumer is a browser UI, so CORS is on for the whole surface.
	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	handler := NewHandler(s)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)
	respCache := mw.NewResponseCache(time.Duration(cfg.CacheTTLSeconds) * time.Second)
	caching := respCache.Middleware()
	busting := respCache.Bust()

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// Fleet listing is the hot read path; every mutation below busts
		// the cache because bookings change truck capacity and status.
		api.GET("/trucks", caching, handler.GetTrucks)
		api.GET("/trucks/:truck_id", caching, handler.GetTruck)
		api.POST("/trucks", busting, handler.PostTruck)
		api.POST("/trucks/:truck_id/bookings", busting, handler.BookTruck)

		api.GET("/bookings", handler.GetBookings)
		api.GET("/bookings/:booking_id", handler.GetBooking)
		api.PATCH("/bookings/:booking_id/status", busting, handler.UpdateBookingStatus)
		api.POST("/bookings/:booking_id/messages", handler.PostBookingMessage)

		api.GET("/requests", handler.GetRequests)
		api.POST("/requests/:booking_id/decision", busting, handler.RespondToRequest)

		api.GET("/earnings", handler.GetEarnings)
	}

	return r
}
