package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/comitanigiacomo/kanso-diet/docs"
	"github.com/comitanigiacomo/kanso-diet/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
)

const defaultRateLimit = 100

type RouterDependencies struct {
	AuthHandler     *AuthHandler
	DayHandler      *DayHandler
	MealHandler     *MealHandler
	HistoryHandler  *HistoryHandler
	SettingsHandler *SettingsHandler
	StatsHandler    *StatsHandler
	ImportHandler   *ImportHandler
	TokenService    *services.TokenService

	// StorePing reports whether the state store is reachable.
	StorePing func(ctx context.Context) error
	Redis     *redis.Client
	RateLimit int
	StartTime time.Time
	Logger    *zap.Logger
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	log := logger.Named(deps.Logger, "http")

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))
	router.MaxMultipartMemory = services.MaxUploadBytes

	var limiter gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.Redis != nil {
		limit := deps.RateLimit
		if limit <= 0 {
			limit = defaultRateLimit
		}
		limiter = middleware.RateLimiterMiddleware(deps.Redis, limit, 1*time.Minute, log)
	}

	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		storeStatus := "connected"
		if deps.StorePing != nil {
			if err := deps.StorePing(ctx); err != nil {
				log.Warn("health check: store unreachable", zap.Error(err))
				storeStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		statusCode := http.StatusOK
		if storeStatus == "unreachable" || redisStatus == "unreachable" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, gin.H{
			"status": "ok",
			"store":  storeStatus,
			"redis":  redisStatus,
			"uptime": time.Since(deps.StartTime).String(),
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")

	public := apiV1.Group("")
	public.Use(limiter)
	deps.AuthHandler.RegisterRoutes(public)

	protected := apiV1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenService), limiter)
	{
		deps.DayHandler.RegisterRoutes(protected)
		deps.MealHandler.RegisterRoutes(protected)
		deps.HistoryHandler.RegisterRoutes(protected)
		deps.SettingsHandler.RegisterRoutes(protected)
		deps.StatsHandler.RegisterRoutes(protected)
		deps.ImportHandler.RegisterRoutes(protected)
	}

	return router
}
