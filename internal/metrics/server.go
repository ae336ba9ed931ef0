package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Enabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	Host    string `envconfig:"METRICS_HOST" default:"0.0.0.0"`
	Port    string `envconfig:"METRICS_PORT" default:"88"`
}

type Server struct {
	srv    *http.Server
	logger *logrus.Logger
}

// StartMetricsServer registers the metrics of services and serves /metrics in
// the background. It returns nil when metrics are disabled.
func StartMetricsServer(cfg Config, services []string, logger *logrus.Logger) *Server {
	if !cfg.Enabled {
		logger.Info("metrics server disabled")
		return nil
	}

	RegisterMetrics(services, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s := &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}

	go func() {
		logger.Infof("metrics server listening on %s", s.srv.Addr)
		err := s.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("metrics server failed: %v", err)
		}
	}()
	return s
}

func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}
	return nil
}
