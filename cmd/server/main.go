package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/RawdodReverend/EXIF-STRIP/imaging/application"
	"github.com/RawdodReverend/EXIF-STRIP/imaging/codec"
	"github.com/RawdodReverend/EXIF-STRIP/internal/config"
	"github.com/RawdodReverend/EXIF-STRIP/internal/middleware"
	"github.com/RawdodReverend/EXIF-STRIP/internal/rest"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	caps := codec.DetectCapabilities()
	if caps.HEIF {
		log.Info().Msg("HEIF/AVIF codecs available")
	} else {
		log.Info().Msg("HEIF/AVIF codecs not available; HEIC uploads will be rejected")
	}

	reg := codec.NewRegistry(caps, codec.Limits{
		MaxPixels:    cfg.MaxPixels,
		MaxDimension: cfg.MaxDimension,
	})

	inspector := application.NewInspector(reg)
	stripper := application.NewStripper(reg, application.StripperConfig{
		JPEGQuality:    cfg.JPEGQuality,
		GIFPaletteSize: cfg.GIFPaletteSize,
	})
	orchestrator := application.NewOrchestrator(stripper, cfg.BatchParallelism)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	service := gin.New()
	service.Use(middleware.LoggingMiddleware())
	service.Use(gin.CustomRecovery(middleware.HandlePanics()))
	service.MaxMultipartMemory = cfg.MaxUploadBytes

	rest.NewApi(service, inspector, orchestrator, cfg.MaxUploadBytes)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: service,
	}

	go func() {
		log.Info().Msg("Starting server on port :" + cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
