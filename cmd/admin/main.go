package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-result-portal/internal/repository"
	"github.com/noah-isme/sma-result-portal/internal/service"
	"github.com/noah-isme/sma-result-portal/pkg/cache"
	"github.com/noah-isme/sma-result-portal/pkg/config"
	"github.com/noah-isme/sma-result-portal/pkg/database"
	"github.com/noah-isme/sma-result-portal/pkg/logger"
	"github.com/noah-isme/sma-result-portal/pkg/storage"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.New(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var cacheRepo service.CacheRepository
	if cfg.Lookup.CacheEnabled {
		client, err := cache.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, cached results will not be invalidated", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, nil, cfg.Lookup.CacheTTL, logr, cfg.Lookup.CacheEnabled)
	adminSvc := service.NewAdminService(repository.NewAdminRepository(db), cacheSvc, validator.New(), logr)

	store, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		logr.Fatal("failed to prepare export directory", zap.Error(err))
	}
	cli := &app{svc: adminSvc, store: store, stdout: os.Stdout}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := cli.run(ctx, os.Args[1:]); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
