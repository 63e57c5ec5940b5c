// cmd/prd-server/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"prd-advisors/internal/advisor"
	"prd-advisors/internal/aggregator"
	"prd-advisors/internal/api"
	"prd-advisors/internal/common/camunda"
	"prd-advisors/internal/common/config"
	"prd-advisors/internal/common/database"
	"prd-advisors/internal/common/logger"
	"prd-advisors/internal/common/observability"
	"prd-advisors/internal/service"
	"prd-advisors/internal/session"
	generateprd "prd-advisors/internal/workers/prd/generate-prd"
	"prd-advisors/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.NewWithOutput(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting prd server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(observability.Options{
		ServiceName:    cfg.Tracing.ServiceName,
		TracingEnabled: cfg.Tracing.Enabled,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		Logger:         log,
	})
	defer obs.Shutdown()

	reg, err := registry.FromFile(cfg.Advisors.RegistryPath)
	if err != nil {
		zapLog.Fatal("advisor registry invalid", zap.Error(err))
	}
	zapLog.Info("advisor registry loaded", zap.Strings("advisors", reg.Keys()))

	ctx := context.Background()

	// --- Session store ---
	var (
		store session.Store
		ready api.ReadinessCheck
		rdb   *database.RedisClient
	)
	ttl := config.GetDuration(cfg.Session.TTL)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb = database.NewRedis(cfg.Database.Redis)
		if err := rdb.ConnectWithRetry(ctx, 10, 2*time.Second); err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		zapLog.Info("Redis connected successfully")
		store = session.NewRedisStore(rdb.Client, ttl)
		ready = rdb.Ping
	default:
		store = session.NewMemoryStore(ttl)
	}

	// --- Generation pipeline ---
	client := advisor.NewClient(advisor.LoadConfig(cfg.Advisors), log, obs)
	agg := aggregator.New(aggregator.DefaultConfig(), reg, client, log, obs)
	gen := service.NewGenerator(agg, store, log)

	// --- Workflow worker ---
	var (
		zeebe  *camunda.Client
		worker *camunda.Worker
	)
	if cfg.Camunda.Enabled && config.IsWorkerEnabled(cfg, generateprd.TaskType) {
		zeebe, err = camunda.NewClient(ctx, cfg.Camunda.BrokerAddress, config.GetDuration(cfg.Camunda.RequestTimeout))
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")

		wcfg := config.GetWorkerConfig(cfg, generateprd.TaskType)
		handler := generateprd.NewHandler(&generateprd.Config{Timeout: config.GetDuration(wcfg.Timeout)}, gen, log)
		worker = camunda.StartWorker(zeebe.GetClient(), generateprd.TaskType, wcfg.MaxJobsActive, config.GetDuration(wcfg.Timeout), handler, log)
	}

	// --- HTTP API ---
	srv := api.NewServer(&api.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}, gen, log, ready)

	go func() {
		if err := srv.ListenAndServe(); err != nil {
			zapLog.Fatal("api server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping api server", zap.Error(err))
	}
	if worker != nil {
		worker.Stop()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zapLog.Error("Error closing Redis client", zap.Error(err))
		}
	}

	zapLog.Info("prd server stopped gracefully")
}
