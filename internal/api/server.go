package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/perawallet/pera-wallet-sub032/internal/fee"
	"github.com/perawallet/pera-wallet-sub032/internal/metrics"
	"github.com/perawallet/pera-wallet-sub032/internal/reward"
	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

type Config struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"SERVER_PORT" default:"8080"`
}

// Node is the account and params source the handlers read from.
type Node interface {
	AccountInformation(ctx context.Context, address string) (types.Account, error)
	TransactionParams(ctx context.Context) (types.TransactionParams, error)
	LastRound(ctx context.Context) (uint64, error)
}

// FeeEstimator sizes a draft itself when the caller has no signed length.
type FeeEstimator interface {
	CheckFee(ctx context.Context, draft types.TransactionDraft) (uint64, uint64, error)
}

type Server struct {
	cfg        Config
	node       Node
	rewards    reward.Fetcher
	estimator  FeeEstimator
	calculator *fee.Calculator
	logger     *logrus.Logger
	e          *echo.Echo
}

func NewServer(
	cfg Config,
	node Node,
	rewards reward.Fetcher,
	estimator FeeEstimator,
	calculator *fee.Calculator,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		cfg:        cfg,
		node:       node,
		rewards:    rewards,
		estimator:  estimator,
		calculator: calculator,
		logger:     logger,
	}
	s.e = s.routes()
	return s
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(metrics.HTTPMiddleware())

	v1 := e.Group("/v1")
	v1.POST("/fee/check", s.checkFee)
	v1.GET("/accounts/:address/minimum-balance", s.minimumBalance)
	v1.GET("/accounts/:address/rewards", s.rewardsEstimate)
	return e
}

func (s *Server) Handler() http.Handler {
	return s.e
}

// Start serves the API until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			s.logger.Errorf("failed to shutdown api server: %v", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.logger.Infof("api server listening on %s", addr)
	err := s.e.Start(addr)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}
