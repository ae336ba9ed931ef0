package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const defaultPort = 8081

type Server struct {
	port int
	e    *echo.Echo
}

func New(port int) *Server {
	if port == 0 {
		port = defaultPort
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return &Server{
		port: port,
		e:    e,
	}
}

// Handler is exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start serves /healthz until ctx is done.
func (s *Server) Start(ctx context.Context, logger *logrus.Logger) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.e.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("failed to stop health server: %v", err)
		}
	}()

	logger.Infof("health server listening on :%d", s.port)
	err := s.e.Start(fmt.Sprintf(":%d", s.port))
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}
