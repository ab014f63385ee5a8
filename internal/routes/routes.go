package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/speckit/speckit-backend/internal/handler"
	"github.com/speckit/speckit-backend/internal/middleware"
	"github.com/speckit/speckit-backend/pkg/jwt"
)

// Handlers every HTTP handler the API mounts
type Handlers struct {
	Listing     *handler.ListingHandler
	Scrap       *handler.ScrapHandler
	Calendar    *handler.CalendarHandler
	Thermometer *handler.ThermometerHandler
}

// Setup configures all API routes
func Setup(router *gin.Engine, h Handlers, jwtManager *jwt.Manager, redisClient *redis.Client, writesPerMinute int) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	api := router.Group("/api/v1")
	auth := middleware.JWTAuth(jwtManager)
	limit := middleware.RateLimitPerUser(redisClient, writesPerMinute)

	// 공고 (비로그인 허용, 로그인 시 스크랩 여부 표시)
	listings := api.Group("/listings", middleware.OptionalJWTAuth(jwtManager))
	{
		listings.GET("/random", h.Listing.DailyPicks)
		listings.GET("/random/:source", h.Listing.DailyPick)
		listings.GET("/:source", h.Listing.List)
		listings.GET("/:source/best", h.Listing.Best)
		listings.GET("/:source/:id", h.Listing.Detail)
		listings.POST("/:source", auth, limit, h.Listing.Ingest)
	}

	// 내 정보 (로그인 필요)
	me := api.Group("/me", auth)
	{
		me.GET("/scraps", h.Scrap.List)
		me.POST("/scraps", limit, h.Scrap.Toggle)

		me.GET("/keywords", h.Listing.MyKeywords)

		me.GET("/calendar", h.Calendar.Month)

		me.GET("/thermometers", h.Thermometer.List)
		me.POST("/thermometers", limit, h.Thermometer.Add)
		me.GET("/thermometers/count", h.Thermometer.Counts)
		me.GET("/thermometers/rank", h.Thermometer.Rank)
		me.PATCH("/thermometers/:id", limit, h.Thermometer.Patch)
		me.DELETE("/thermometers/:id", limit, h.Thermometer.Remove)
	}
}
