package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/nutrilog-app/nutrilog-engine/internal/adapters/handler/http/middleware"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/services"
)

type RouterDependencies struct {
	AuthHandler    *AuthHandler
	ProfileHandler *ProfileHandler
	LogHandler     *LogHandler
	SummaryHandler *SummaryHandler
	TokenService   *services.TokenService
	DB             *sqlx.DB
	Redis          *redis.Client
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		dbStatus := "connected"
		if err := deps.DB.Ping(); err != nil {
			dbStatus = "unreachable"
		}

		redisStatus := "connected"
		if deps.Redis == nil || deps.Redis.Ping(c.Request.Context()).Err() != nil {
			redisStatus = "unreachable"
		}

		statusCode := 200
		if dbStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = 503
		}

		c.JSON(statusCode, gin.H{
			"status":   "ok",
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).String(),
		})
	})

	apiV1 := router.Group("/api/v1")

	// Anonymous auth endpoints are limited per client IP.
	public := apiV1.Group("")
	if deps.Redis != nil {
		public.Use(middleware.RateLimiterMiddleware(deps.Redis, 20, 1*time.Minute))
	}
	deps.AuthHandler.RegisterRoutes(public)

	// The limiter sits after the auth middleware so authenticated traffic
	// is counted per user, and rejected tokens never consume a budget.
	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService))
	if deps.Redis != nil {
		protected.Use(middleware.RateLimiterMiddleware(deps.Redis, 100, 1*time.Minute))
	}
	{
		deps.ProfileHandler.RegisterRoutes(protected)
		deps.LogHandler.RegisterRoutes(protected)
		deps.SummaryHandler.RegisterRoutes(protected)
	}

	return router
}
