package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func MakeSigintChan() chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}

// CancelOnSignal calls cancel on the first SIGINT/SIGTERM, or returns once
// ctx is done.
func CancelOnSignal(ctx context.Context, sigCh <-chan os.Signal, cancel context.CancelFunc, logger *logrus.Logger) {
	select {
	case sig := <-sigCh:
		logger.Infof("received exit signal: %v", sig)
		cancel()
	case <-ctx.Done():
	}
}
