package metrics

// Package metrics provides Prometheus metrics collection for the wallet services.
//
// This package includes:
// - HTTP request metrics (count, latency, errors)
// - Reward calculator and round observer metrics
// - Signing and fee check metrics for the send flow
// - Metrics HTTP server on configurable port
//
// Usage:
//   import "github.com/perawallet/pera-wallet-sub032/internal/metrics"
//
//   // Start metrics server
//   metricsServer := metrics.StartMetricsServer(cfg.Metrics, []string{metrics.ServiceHTTP}, logger)
//   defer metricsServer.Stop(context.Background())
//
//   // Add middleware to Echo
//   e.Use(metrics.HTTPMiddleware())

const (
	ServiceHTTP    = "http"
	ServiceRewards = "rewards"
	ServiceNetwork = "network"
)

const namespace = "wallet"
