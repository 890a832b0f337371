package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-diet/internal/adapters/ai"
	"github.com/comitanigiacomo/kanso-diet/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-diet/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-diet/internal/adapters/imaging"
	"github.com/comitanigiacomo/kanso-diet/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-diet/internal/config"
	"github.com/comitanigiacomo/kanso-diet/internal/core/domain"
	"github.com/comitanigiacomo/kanso-diet/internal/core/services"
	"github.com/comitanigiacomo/kanso-diet/internal/core/workers"
	"github.com/comitanigiacomo/kanso-diet/pkg/logger"
)

const imageQueueSize = 100

func main() {
	startTime := time.Now()

	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		panic(err)
	}

	log := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = log.Sync() }()

	gin.SetMode(gin.ReleaseMode)

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := repository.Open(connectCtx, cfg.Store, log)
	cancelConnect()
	if err != nil {
		log.Fatal("failed to open state store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close()

	log.Info("state store ready", zap.String("driver", cfg.Store.Driver))

	var kv domain.KeyValueStore = store
	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		rdb, err = cache.NewRedisClient(context.Background(), cfg.Redis, log)
		if err != nil {
			log.Warn("redis unavailable, running without cache and rate limiting", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
			kv = repository.NewCachedStore(store, rdb, log)
		}
	}

	owner, err := ownerCredential(cfg.Auth)
	if err != nil {
		log.Fatal("invalid owner credential", zap.Error(err))
	}

	stateRepo := repository.NewStateRepository(kv, log)
	ws := services.NewWorkspace(stateRepo, cfg.Clock.Location())

	var extractor domain.MealExtractor
	var images *services.ImageService
	if cfg.AI.Enabled() {
		client := ai.NewClient(cfg.AI, log)
		extractor = client
		images = services.NewImageService(client, imaging.NewJPEGCompressor())
		log.Info("meal import enabled", zap.String("text_model", cfg.AI.TextModel), zap.String("image_model", cfg.AI.ImageModel))
	} else {
		log.Warn("GEMINI_API_KEY not set, meal import and images are disabled")
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	var queue services.ImageQueue
	var worker *workers.ImageWorker
	if images.Enabled() {
		worker = workers.NewImageWorker(services.NewMealService(ws, nil, log), images, imageQueueSize, log)
		worker.Start(workerCtx)
		queue = worker
	}

	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	diaryService := services.NewDiaryService(ws, log)
	mealService := services.NewMealService(ws, queue, log)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(services.NewAuthService(owner, tokenService)),
		DayHandler:      adapterHTTP.NewDayHandler(diaryService, ws.Location()),
		MealHandler:     adapterHTTP.NewMealHandler(mealService, diaryService),
		HistoryHandler:  adapterHTTP.NewHistoryHandler(services.NewHistoryService(ws)),
		SettingsHandler: adapterHTTP.NewSettingsHandler(services.NewSettingsService(ws)),
		StatsHandler:    adapterHTTP.NewStatsHandler(services.NewStatsService(ws), ws.Location()),
		ImportHandler:   adapterHTTP.NewImportHandler(services.NewImportService(extractor, images, mealService, log)),
		TokenService:    tokenService,
		StorePing:       store.Ping,
		Redis:           rdb,
		StartTime:       startTime,
		Logger:          log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("kanso diet running", zap.String("addr", "http://localhost:"+cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("critical server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("stop signal received, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	stopWorker()
	if worker != nil {
		worker.Wait()
	}

	log.Info("server stopped gracefully")
}

// ownerCredential prefers a precomputed bcrypt hash over a plain password.
func ownerCredential(cfg config.AuthConfig) (*domain.OwnerCredential, error) {
	if cfg.OwnerPasswordHash != "" {
		return &domain.OwnerCredential{PasswordHash: []byte(cfg.OwnerPasswordHash)}, nil
	}
	return domain.NewOwnerCredential(cfg.OwnerPassword)
}
