package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/kumorigo/amedas-etl/internal/adapter/http"
	kafkaadapter "github.com/kumorigo/amedas-etl/internal/adapter/kafka"
	"github.com/kumorigo/amedas-etl/internal/adapter/mysql"
	"github.com/kumorigo/amedas-etl/internal/config"
	"github.com/kumorigo/amedas-etl/internal/observability"
	"github.com/kumorigo/amedas-etl/internal/pipeline"
	"github.com/rs/xid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Tag every log line of this process with a unique run ID so restarts
	// are distinguishable in aggregated logs.
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat).With("run_id", xid.New().String())
	metrics := observability.NewMetrics()

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(logger)

	// The Kafka sink always runs; MySQL joins the fan-out when configured.
	loaders := pipeline.MultiLoader{writer}
	var store *mysql.Store
	if cfg.MySQLEnabled {
		store, err = mysql.NewStore(cfg.MySQLDSN, logger, metrics)
		if err != nil {
			logger.Error("failed to connect mysql", "error", err)
			os.Exit(1)
		}
		loaders = append(loaders, store)
		logger.Info("mysql sink enabled")
	} else {
		logger.Info("mysql sink disabled")
	}

	p := pipeline.New(reader, transformer, loaders, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger, metrics)

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
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("mysql close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
