package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/curve-number-etl/internal/adapter/cache"
	"github.com/couchcryptid/curve-number-etl/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/curve-number-etl/internal/adapter/kafka"
	"github.com/couchcryptid/curve-number-etl/internal/adapter/tiffstore"
	"github.com/couchcryptid/curve-number-etl/internal/config"
	"github.com/couchcryptid/curve-number-etl/internal/observability"
	"github.com/couchcryptid/curve-number-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	store := tiffstore.New(cfg.RasterInputDir, cfg.RasterOutputDir, logger)
	source := cache.NewCachedSource(store, cfg.RasterCacheSize, metrics)
	logger.Info("raster store ready",
		"input_dir", cfg.RasterInputDir,
		"output_dir", cfg.RasterOutputDir,
		"cache_size", cfg.RasterCacheSize,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(source, store, pipeline.TransformerOptions{
		Workers:        cfg.BandWorkers,
		Timeout:        cfg.ProductTimeout,
		FillSoilNoData: cfg.FillSoilNoData,
	}, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
