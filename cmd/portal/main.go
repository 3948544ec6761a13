package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-result-portal/internal/portal"
	"github.com/noah-isme/sma-result-portal/pkg/config"
	"github.com/noah-isme/sma-result-portal/pkg/logger"
	csrfmiddleware "github.com/noah-isme/sma-result-portal/pkg/middleware/csrf"
	reqidmiddleware "github.com/noah-isme/sma-result-portal/pkg/middleware/requestid"
)

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

	renderer, err := portal.NewRenderer(cfg.Portal.Location())
	if err != nil {
		logr.Sugar().Fatalw("failed to load templates", "error", err)
	}

	client := portal.NewClient(cfg.Portal.LookupBaseURL, &http.Client{Timeout: cfg.Portal.LookupTimeout}, logr)
	validator := portal.NewInputValidator(nil)
	pages := portal.NewHandler(cfg.CollegeName, renderer, func() *portal.Controller {
		return portal.NewController(validator, client, renderer, logr)
	}, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	if cfg.Portal.CSRFKey != "" {
		r.Use(csrfmiddleware.New(csrfmiddleware.Options{
			AuthKey: []byte(cfg.Portal.CSRFKey),
			Secure:  cfg.Env == config.EnvProduction,
		}))
	} else {
		logr.Warn("PORTAL_CSRF_KEY not set, lookup forms are unprotected")
	}
	pages.Register(r)

	addr := fmt.Sprintf(":%d", cfg.Portal.Port)
	logr.Sugar().Infow("portal starting", "addr", addr, "lookup", cfg.Portal.LookupBaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("portal failed", "error", err)
	}
}
