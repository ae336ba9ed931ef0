package graceful

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelOnSignal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		CancelOnSignal(ctx, sigCh, cancel, logrus.New())
	}()

	sigCh <- syscall.SIGTERM

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("CancelOnSignal did not return")
	}
	require.Error(t, ctx.Err())
}

func TestCancelOnSignal_ContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	CancelOnSignal(ctx, make(chan os.Signal), func() { called = true }, logrus.New())
	assert.False(t, called)
}
