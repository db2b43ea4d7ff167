package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/skyquorum/climate-oracle/internal/adapter/http"
	kafkaadapter "github.com/skyquorum/climate-oracle/internal/adapter/kafka"
	"github.com/skyquorum/climate-oracle/internal/catalog"
	"github.com/skyquorum/climate-oracle/internal/config"
	"github.com/skyquorum/climate-oracle/internal/engine"
	"github.com/skyquorum/climate-oracle/internal/observability"
	"github.com/skyquorum/climate-oracle/internal/registry"
	"github.com/skyquorum/climate-oracle/internal/subnet"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	reg := registry.New(cfg.EmissionPerTempo, cfg.ChallengeHistoryLimit)
	if cfg.SeedRegistry {
		if err := registry.Seed(reg, cat); err != nil {
			logger.Error("failed to seed registry", "error", err)
			os.Exit(1)
		}
		logger.Info("registry seeded",
			"miners", len(reg.Miners()),
			"validators", len(reg.Validators()))
	}

	// Result publishing is feature-flagged via KAFKA_BROKERS / KAFKA_ENABLED.
	var sink subnet.ResultSink
	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		sink = publisher
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaResultsTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	orch := subnet.New(engine.New(cat), reg, logger, metrics, sink)
	metrics.RegisteredMiners.Set(float64(len(reg.Miners())))
	metrics.RegisteredValidators.Set(float64(len(reg.Validators())))

	srv := httpadapter.NewServer(cfg.HTTPAddr, orch, orch, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
