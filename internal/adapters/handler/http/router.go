package http

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/gym-occupancy/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type SampleCounter interface {
	Count(ctx context.Context) (int, error)
}

type RouterDependencies struct {
	OccupancyHandler *OccupancyHandler
	SampleHandler    *SampleHandler
	ExportHandler    *ExportHandler

	// DB is nil when running on in-memory storage.
	DB      Pinger
	Samples SampleCounter
	Redis   *redis.Client

	// Tokens guards POST /samples. Without it the route is not registered.
	Tokens *services.TokenService

	RateLimit       int
	IngestRateLimit int
	Logger          *log.Logger
	StartTime       time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID())

	if deps.Logger != nil {
		router.Use(middleware.RequestLogger(deps.Logger))
	}

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length, Accept-Encoding, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()

		dbStatus := "memory"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		body := gin.H{}
		if deps.Samples != nil && dbStatus != "unreachable" {
			if n, err := deps.Samples.Count(ctx); err == nil {
				body["samples"] = n
			} else {
				log.Warn("health sample count failed", "err", err)
			}
		}

		status, code := "ok", http.StatusOK
		if dbStatus == "unreachable" {
			status, code = "error", http.StatusServiceUnavailable
		} else if redisStatus == "unreachable" {
			status = "degraded"
		}

		body["status"] = status
		body["database"] = dbStatus
		body["redis"] = redisStatus
		body["uptime"] = time.Since(deps.StartTime).String()
		c.JSON(code, body)
	})

	apiV1 := router.Group("/api/v1")

	read := apiV1.Group("")
	if deps.Redis != nil && deps.RateLimit > 0 {
		read.Use(middleware.RateLimiter(deps.Redis, middleware.RateLimitPolicy{
			Scope: "api", Limit: deps.RateLimit, Window: time.Minute,
		}))
	}
	deps.OccupancyHandler.RegisterRoutes(read)
	deps.ExportHandler.RegisterRoutes(read)

	if deps.Tokens == nil {
		log.Warn("no ingest token secret configured, POST /api/v1/samples is disabled")
		return router
	}

	ingest := apiV1.Group("")
	if deps.Redis != nil && deps.IngestRateLimit > 0 {
		ingest.Use(middleware.RateLimiter(deps.Redis, middleware.RateLimitPolicy{
			Scope: "ingest", Limit: deps.IngestRateLimit, Window: time.Minute,
		}))
	}
	ingest.Use(middleware.IngestAuth(deps.Tokens))
	deps.SampleHandler.RegisterRoutes(ingest)

	return router
}
