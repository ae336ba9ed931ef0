package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/perawallet/pera-wallet-sub032/internal/algorand"
	"github.com/perawallet/pera-wallet-sub032/internal/api"
	"github.com/perawallet/pera-wallet-sub032/internal/fee"
	"github.com/perawallet/pera-wallet-sub032/internal/graceful"
	"github.com/perawallet/pera-wallet-sub032/internal/health"
	"github.com/perawallet/pera-wallet-sub032/internal/logging"
	"github.com/perawallet/pera-wallet-sub032/internal/metrics"
	"github.com/perawallet/pera-wallet-sub032/internal/status"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := newConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.LogFormat)

	metricsServer := metrics.StartMetricsServer(
		cfg.Metrics,
		[]string{metrics.ServiceHTTP, metrics.ServiceNetwork},
		logger,
	)
	defer func() {
		if metricsServer != nil {
			if err := metricsServer.Stop(context.Background()); err != nil {
				logger.Errorf("failed to stop metrics server: %v", err)
			}
		}
	}()

	feeCfg, err := loadFeeConfig(cfg.FeeConfigPath)
	if err != nil {
		logger.Fatalf("failed to load fee config: %v", err)
	}

	client, err := algorand.NewClient(cfg.Algod.Address, cfg.Algod.Token)
	if err != nil {
		logger.Fatalf("failed to initialize algod client: %v", err)
	}

	node, err := algorand.NewCachedProvider(client, cfg.BlockCacheSize, metrics.NewRewardMetrics())
	if err != nil {
		logger.Fatalf("failed to initialize block cache: %v", err)
	}

	calculator := fee.NewCalculator(feeCfg)
	network := algorand.NewNetwork(
		node,
		calculator,
		status.NewStatus(node),
		metrics.NewNetworkMetrics(),
		logger,
	)

	srv := api.NewServer(cfg.Server, node, node, network, calculator, logger)

	healthServer := health.New(cfg.HealthPort)
	go func() {
		er := healthServer.Start(ctx, logger)
		if er != nil {
			logger.Errorf("health server failed: %v", er)
		}
	}()

	go graceful.CancelOnSignal(ctx, graceful.MakeSigintChan(), cancel, logger)

	err = srv.Start(ctx)
	if err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
