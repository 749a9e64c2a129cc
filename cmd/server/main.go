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
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	_ "github.com/tbourn/glue-gateway/docs" // swagger docs
	"github.com/tbourn/glue-gateway/internal/catalog"
	"github.com/tbourn/glue-gateway/internal/config"
	httpapi "github.com/tbourn/glue-gateway/internal/http"
	"github.com/tbourn/glue-gateway/internal/observability"
	"github.com/tbourn/glue-gateway/internal/repo"
	"github.com/tbourn/glue-gateway/internal/sysutil"
)

//	@title			Glue Gateway API
//	@version		1.0.0
//	@description	HTTP gateway over the AWS Glue crawler and connection API. Every Glue call is answered with a Success, Error or Exception envelope.

//	@license.name	MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

var version = "1.0.0"

const shutdownTimeout = 15 * time.Second

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty, nil)
	gin.SetMode(cfg.GinMode)

	log.Info().
		Str("version", version).
		Str("region", cfg.AWS.Region).
		Bool("audit", cfg.Audit.Enabled).
		Msg("glue gateway starting")

	ctx := context.Background()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	// One Glue client per process, shared by every request.
	client, err := catalog.NewClient(ctx, cfg.AWS)
	if err != nil {
		log.Fatal().Err(err).Msg("glue client setup failed")
	}
	gw := catalog.NewGateway(client, catalog.WithPasswordRedaction(cfg.AWS.RedactPasswords))

	var db *gorm.DB
	if cfg.Audit.Enabled {
		db, err = repo.OpenSQLite(cfg.Audit.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.Audit.DBPath).Msg("open audit db")
		}
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("migrate audit db")
		}
	}

	r := gin.New()
	httpapi.RegisterRoutes(r, gw, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownOTel(ctx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	log.Info().Msg("stopped")
}
