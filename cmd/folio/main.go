package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"folio/internal/amqp"
	"folio/internal/api"
	"folio/internal/cache"
	"folio/internal/cli"
	"folio/internal/core"
	"folio/internal/events"
	apphttp "folio/internal/http"
	"folio/internal/log"
	"folio/internal/middleware/ratelimit"
)

const cvCacheSize = 16

func main() {
	cli.LoadEnvFile()

	bootLogger := cli.SetupLogger("info", log.ComponentApp, os.Stdout)
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentApp, os.Stdout)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var publisher events.Publisher = events.Nop{}
	if cfg.EventsEnabled() {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("Mutation events enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("Mutation events disabled - no AMQP_URL provided")
	}

	client, err := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithMetrics(api.NewMetrics(registry)),
		api.WithPublisher(publisher),
		api.WithLogger(logger),
	)
	if err != nil {
		logger.Error("Failed to create API client", log.FieldError, err)
		os.Exit(1)
	}

	cvCache, stopCache, err := cache.New[core.CV](context.Background(), cache.Config{
		Type:       cache.BackendType(cfg.CacheBackend),
		TTL:        cfg.CVCacheTTL,
		MaxEntries: cvCacheSize,
		RedisAddr:  cfg.RedisAddr,
		KeyPrefix:  "folio:cv:",
	}, logger)
	if err != nil {
		logger.Error("Failed to initialize CV cache", log.FieldError, err, "backend", cfg.CacheBackend)
		os.Exit(1)
	}
	defer stopCache()

	srv, err := apphttp.NewServer(apphttp.Options{
		Addr:            ":" + cfg.Port,
		DefaultLanguage: cfg.DefaultLanguage,
		GoogleClientID:  cfg.GoogleClientID,
		SessionMaxAge:   cfg.SessionMaxAge,
		RateLimit:       ratelimit.DefaultConfig(),
	}, apphttp.Deps{
		API:      client,
		Tokens:   repo,
		CVCache:  cvCache,
		Ready:    repo.Ping,
		Registry: registry,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("Failed to create HTTP server", log.FieldError, err)
		os.Exit(1)
	}

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting folio server",
		"port", cfg.Port, "api", cfg.APIBaseURL, "cache", cfg.CacheBackend, log.FieldOperation, log.OpStartup)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
