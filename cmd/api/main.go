package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/gym-occupancy/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/gym-occupancy/internal/adapters/handler/http"
	"github.com/comitanigiacomo/gym-occupancy/internal/adapters/repository"
	"github.com/comitanigiacomo/gym-occupancy/internal/config"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/domain"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/services"
	"github.com/comitanigiacomo/gym-occupancy/internal/core/workers"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Stamp,
		Level:           cfg.LogLevel,
	})
	log.SetDefault(logger)

	if cfg.LogLevel > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := adapterHTTP.RouterDependencies{
		RateLimit:       cfg.RateLimit,
		IngestRateLimit: cfg.IngestRateLimit,
		Logger:          logger,
		StartTime:       startTime,
	}

	if cfg.IngestTokenSecret != "" {
		deps.Tokens = services.NewTokenService(cfg.IngestTokenSecret, cfg.IngestTokenIssuer, cfg.IngestTokenTTL)
	}

	var repo domain.SampleRepository
	switch cfg.Storage {
	case config.StorageMemory:
		log.Warn("running on in-memory storage, data is lost on exit")
		repo = repository.NewInMemorySampleRepository()

	default:
		log.Info("connecting to database", "host", cfg.DBHost, "db", cfg.DBName)
		db, err := repository.ConnectPostgres(cfg.DSN())
		if err != nil {
			log.Fatal("database unavailable", "err", err)
		}
		defer db.Close()

		log.Info("database connected")
		repo = repository.NewPostgresSampleRepository(db)
		deps.DB = db
	}

	var refresher services.CacheRefresher
	rdb, err := cache.NewRedisClient(ctx, cache.Options{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn("redis unavailable, running without cache or rate limiting", "err", err)
	} else {
		defer rdb.Close()

		cached := repository.NewCachedSampleRepository(repo, rdb, cfg.CacheTTL)
		worker := workers.NewCacheRefreshWorker(cached, cfg.CacheRefreshInterval)
		worker.Start(ctx)

		repo = cached
		refresher = worker
		deps.Redis = rdb
	}

	deps.Samples = repo
	deps.OccupancyHandler = adapterHTTP.NewOccupancyHandler(services.NewDashboardService(repo, cfg.Location, time.Now))
	deps.SampleHandler = adapterHTTP.NewSampleHandler(services.NewSampleService(repo, refresher))
	deps.ExportHandler = adapterHTTP.NewExportHandler(services.NewExportService(repo))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      adapterHTTP.NewRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("gym occupancy api listening", "addr", "http://localhost:"+cfg.Port, "tz", cfg.Location)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "err", err)
		return
	}

	log.Info("server stopped gracefully")
}
