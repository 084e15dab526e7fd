package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"folio/internal/amqp"
	"folio/internal/cli"
	"folio/internal/log"
	"folio/internal/worker"
)

const purgeInterval = time.Hour

func main() {
	cli.LoadEnvFile()

	bootLogger := cli.SetupLogger("info", log.ComponentWorker, os.Stdout)
	cfg := cli.LoadAndValidateConfig(bootLogger)
	logger := cli.SetupLogger(cfg.LogLevel, log.ComponentWorker, os.Stdout)
	logger.Info("Starting folio-worker", log.FieldOperation, log.OpStartup)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	activity := worker.NewActivityWorker(repo, repo, cfg.SessionMaxAge, logger, cfg.CLISessionKey)

	var amqpClient *amqp.Client
	if cfg.EventsEnabled() {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", log.FieldError, err)
			os.Exit(1)
		}
		defer amqpClient.Close()
	} else {
		logger.Info("Skipping event consumption - no AMQP_URL provided")
	}

	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, nil)

	g, gctx := errgroup.WithContext(ctx)
	if amqpClient != nil {
		g.Go(func() error {
			return amqpClient.Consume(gctx, activity.HandleEvent)
		})
	}
	g.Go(func() error {
		return activity.RunPurgeLoop(gctx, purgeInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
