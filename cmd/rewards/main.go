package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/perawallet/pera-wallet-sub032/internal/algorand"
	"github.com/perawallet/pera-wallet-sub032/internal/graceful"
	"github.com/perawallet/pera-wallet-sub032/internal/health"
	"github.com/perawallet/pera-wallet-sub032/internal/logging"
	"github.com/perawallet/pera-wallet-sub032/internal/metrics"
	"github.com/perawallet/pera-wallet-sub032/internal/reward"
	"github.com/perawallet/pera-wallet-sub032/internal/round"
	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := newConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewLogger(cfg.LogFormat)

	metricsServer := metrics.StartMetricsServer(cfg.Metrics, []string{metrics.ServiceRewards}, logger)
	defer func() {
		if metricsServer != nil {
			if err := metricsServer.Stop(context.Background()); err != nil {
				logger.Errorf("failed to stop metrics server: %v", err)
			}
		}
	}()

	rewardMetrics := metrics.NewRewardMetrics()

	client, err := algorand.NewClient(cfg.Algod.Address, cfg.Algod.Token)
	if err != nil {
		logger.Fatalf("failed to initialize algod client: %v", err)
	}

	// Every calculator asks for the same block each round.
	node, err := algorand.NewCachedProvider(client, cfg.BlockCacheSize, rewardMetrics)
	if err != nil {
		logger.Fatalf("failed to initialize block cache: %v", err)
	}

	startRound, err := node.LastRound(ctx)
	if err != nil {
		logger.Fatalf("failed to get last round: %v", err)
	}

	observer := round.NewObserver(node, startRound, rewardMetrics, logger).
		WithRetryInterval(cfg.RetryInterval)

	for _, address := range cfg.Addresses {
		account, er := node.AccountInformation(ctx, address)
		if er != nil {
			logger.Fatalf("failed to get account %s: %v", address, er)
		}

		calc := reward.NewCalculator(node, account, logEstimate(logger), rewardMetrics, logger)
		observer.Subscribe(refreshingHandler(node, calc, logger))
		logger.WithField("address", address).Info("watching pending rewards")
	}

	healthServer := health.New(cfg.HealthPort)
	go func() {
		er := healthServer.Start(ctx, logger)
		if er != nil {
			logger.Errorf("health server failed: %v", er)
		}
	}()

	go graceful.CancelOnSignal(ctx, graceful.MakeSigintChan(), cancel, logger)

	logger.WithField("round", startRound).Info("round observer started")
	err = observer.Run(ctx)
	if err != nil {
		logger.Fatalf("round observer failed: %v", err)
	}
}

type accountSource interface {
	AccountInformation(ctx context.Context, address string) (types.Account, error)
}

// refreshingHandler reloads the account before every round so the estimate
// follows balance changes. A failed reload keeps the previous account. While
// the calculator is busy the round goes straight to it to be dropped, without
// a reload.
func refreshingHandler(source accountSource, calc *reward.Calculator, logger *logrus.Logger) round.Handler {
	return func(ctx context.Context, r uint64) {
		if calc.State() != reward.StateIdle {
			calc.HandleRound(ctx, r)
			return
		}

		address := calc.Account().Address
		account, err := source.AccountInformation(ctx, address)
		if err != nil {
			logger.WithError(err).WithField("address", address).Debug("failed to refresh account")
		} else {
			calc.UpdateAccount(account)
		}
		calc.HandleRound(ctx, r)
	}
}

func logEstimate(logger *logrus.Logger) reward.Listener {
	return func(e reward.Estimate) {
		logger.WithFields(logrus.Fields{
			"address":       e.Address,
			"round":         e.Round,
			"pending_algos": e.PendingAlgos.String(),
		}).Info("pending rewards updated")
	}
}
