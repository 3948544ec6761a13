package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-result-portal/api/swagger"
	"github.com/noah-isme/sma-result-portal/internal/handler"
	internalmiddleware "github.com/noah-isme/sma-result-portal/internal/middleware"
	"github.com/noah-isme/sma-result-portal/internal/repository"
	"github.com/noah-isme/sma-result-portal/internal/service"
	"github.com/noah-isme/sma-result-portal/pkg/cache"
	"github.com/noah-isme/sma-result-portal/pkg/config"
	"github.com/noah-isme/sma-result-portal/pkg/database"
	"github.com/noah-isme/sma-result-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-result-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-result-portal/pkg/middleware/requestid"
)

// @title Student Result Portal API
// @version 1.0.0
// @description Result lookup by registration number and date of birth
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Lookup.CacheEnabled {
		client, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, result cache disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Lookup.CacheTTL, logr, cfg.Lookup.CacheEnabled)

	resultRepo := repository.NewResultRepository(db)
	resultSvc := service.NewResultService(resultRepo, cacheSvc, metricsSvc, logr)

	resultHandler := handler.NewResultHandler(resultSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, resultRepo)
	limiter := internalmiddleware.NewRateLimiter(cfg.Lookup.RatePerMinute, cfg.Lookup.RateBurst)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.POST("/check_result", internalmiddleware.RateLimit(limiter), resultHandler.CheckResult)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "db_driver", cfg.Database.Driver, "cache", cacheSvc.Enabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
