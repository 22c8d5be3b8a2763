package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/robert-bryson/rsmb.tv/api"
	"github.com/robert-bryson/rsmb.tv/config"
	"github.com/robert-bryson/rsmb.tv/flightdata"
	"github.com/robert-bryson/rsmb.tv/pkg/cache"
	"github.com/robert-bryson/rsmb.tv/pkg/health"
	"github.com/robert-bryson/rsmb.tv/pkg/logger"
	"github.com/robert-bryson/rsmb.tv/sheetsync"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Config{
		Level:  cfg.LoggingConfig.Level,
		Format: cfg.LoggingConfig.Format,
	})

	store := flightdata.NewStore()
	if err := store.Load(cfg.DataConfig.AirportsPath, cfg.DataConfig.FlightsPath); err != nil {
		logger.Fatal(err, "Failed to load flight dataset")
	}
	airports, flights, visited := store.Counts()
	logger.Info("Flight dataset loaded", "airports", airports, "flights", flights, "visited_airports", visited)

	var cacheManager *cache.CacheManager
	var redisClient *redis.Client
	if cfg.RedisConfig.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Host + ":" + cfg.RedisConfig.Port,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		cacheManager = cache.NewCacheManager(cache.NewRedisCache(redisClient, cfg.RedisConfig.Prefix))
		logger.Info("Response cache enabled", "addr", redisClient.Options().Addr)
	}

	onSwap := func() {
		if cacheManager == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cacheManager.Clear(ctx); err != nil {
			logger.Error(err, "Failed to clear response cache after sync")
		}
	}

	var syncService *sheetsync.Service
	var cronRunner *cron.Cron
	if cfg.SyncConfig.Enabled {
		syncService = sheetsync.New(cfg.SyncConfig, store, onSwap)
		cronRunner = cron.New()
		if _, err := syncService.Schedule(cronRunner); err != nil {
			logger.Fatal(err, "Failed to schedule sheet sync", "schedule", cfg.SyncConfig.CronSchedule)
		}
		cronRunner.Start()
		defer cronRunner.Stop()
		logger.Info("Sheet sync scheduled", "schedule", cfg.SyncConfig.CronSchedule)
	}

	checkers := []health.Checker{
		&health.DatasetChecker{Store: store, Name: "dataset"},
	}
	if redisClient != nil {
		checkers = append(checkers, &health.RedisChecker{Client: redisClient, Name: "redis"})
	}
	healthService := health.NewService(checkers...)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	api.RegisterRoutes(router, store, cacheManager, syncService, healthService, cfg)

	srv := &http.Server{
		Addr:    cfg.HTTPBindAddr + ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err, "Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error(err, "Server forced to shutdown")
	}
	logger.Info("Server exited")
}
