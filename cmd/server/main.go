package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nftmarket/internal/application/dto"
	"nftmarket/internal/infrastructure/config"
	"nftmarket/internal/infrastructure/di"
	"nftmarket/internal/infrastructure/logging"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, cfgErr := config.LoadConfig()
	if cfgErr != nil {
		log.WithFields(log.Fields{
			"code":     cfgErr.Code,
			"metadata": cfgErr.Metadata,
		}).Fatal(cfgErr.Message)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.WithError(err).Fatal("logger setup failed")
	}
	logger.WithFields(log.Fields{
		"mirror_node_url":  cfg.MirrorNodeURL,
		"ipfs_gateway_url": cfg.IPFSGatewayURL,
		"concurrency":      cfg.AggregateConcurrency,
		"cache":            cfg.MetadataCacheType,
	}).Info("owned asset aggregation config")

	container, buildErr := di.Build(cfg, logger)
	if buildErr != nil {
		logger.WithError(buildErr).Fatal("dependency wiring error")
	}
	defer func() {
		if container.Redis != nil {
			if err := container.Redis.Close(); err != nil {
				logger.WithError(err).Warn("redis close warning")
			}
		}
		if container.Database != nil {
			if err := container.Database.Close(); err != nil {
				logger.WithError(err).Warn("database close warning")
			}
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.WithField("database_target", cfg.DatabaseTarget).Info("persistence initialization starting")
	persistenceErr := container.InitializePersistenceUseCase.Execute(ctx, dto.InitializePersistenceCommand{
		ReadinessTimeout:       cfg.DBReadinessTimeout,
		ReadinessRetryInterval: cfg.DBReadinessRetryInterval,
	})
	if persistenceErr != nil {
		logger.WithFields(log.Fields{
			"code":    persistenceErr.Code,
			"details": persistenceErr.Details,
		}).Error("persistence initialization failed")
		os.Exit(1)
	}
	logger.WithField("database_target", cfg.DatabaseTarget).Info("persistence initialization completed")

	if container.SnapshotRefresher.Enabled() {
		go func() {
			if err := container.SnapshotRefresher.Start(ctx); err != nil {
				logger.WithError(err).Error("snapshot refresher failed to start")
			}
		}()
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- container.Server.Start()
	}()

	select {
	case err := <-serverErrCh:
		if err != nil {
			logger.WithError(err).Error("server startup failed")
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := container.Server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("graceful shutdown failed")
			os.Exit(1)
		}

		if err := <-serverErrCh; err != nil {
			logger.WithError(err).Error("server stopped with error")
			os.Exit(1)
		}

		logger.Info("server stopped")
	}
}
