package round

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type step struct {
	round uint64
	err   error
}

type scriptedProvider struct {
	mu    sync.Mutex
	steps []step
	calls []uint64
}

func (p *scriptedProvider) StatusAfterBlock(ctx context.Context, round uint64) (uint64, error) {
	p.mu.Lock()
	p.calls = append(p.calls, round)
	if len(p.steps) == 0 {
		p.mu.Unlock()
		<-ctx.Done()
		return 0, ctx.Err()
	}
	s := p.steps[0]
	p.steps = p.steps[1:]
	p.mu.Unlock()
	return s.round, s.err
}

type recorder struct {
	mu     sync.Mutex
	rounds []uint64
}

func (r *recorder) handle(_ context.Context, round uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds = append(r.rounds, round)
}

func (r *recorder) snapshot() []uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]uint64, len(r.rounds))
	copy(out, r.rounds)
	return out
}

type gauge struct {
	mu   sync.Mutex
	last uint64
}

func (g *gauge) SetLastRound(round uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = round
}

func runObserver(t *testing.T, o *Observer) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- o.Run(ctx)
	}()
	return cancel, done
}

func stop(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("observer did not stop")
	}
}

func TestObserver_PublishesEachRoundOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &scriptedProvider{steps: []step{{round: 101}, {round: 102}, {round: 105}}}
	g := &gauge{}
	o := NewObserver(provider, 100, g, logrus.New())

	rec := &recorder{}
	o.Subscribe(rec.handle)

	cancel, done := runObserver(t, o)
	require.Eventually(t, func() bool { return o.LastRound() == 105 }, 5*time.Second, 10*time.Millisecond)
	stop(t, cancel, done)

	got := rec.snapshot()
	assert.ElementsMatch(t, []uint64{101, 102, 103, 104, 105}, got)
	assert.Equal(t, uint64(105), g.last)
}

func TestObserver_SkipsLargeBacklog(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &scriptedProvider{steps: []step{{round: 500}}}
	o := NewObserver(provider, 100, nil, logrus.New())

	rec := &recorder{}
	o.Subscribe(rec.handle)

	cancel, done := runObserver(t, o)
	require.Eventually(t, func() bool { return o.LastRound() == 500 }, 5*time.Second, 10*time.Millisecond)
	stop(t, cancel, done)

	assert.Equal(t, []uint64{500}, rec.snapshot())
}

func TestObserver_RetriesAfterError(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &scriptedProvider{steps: []step{
		{err: errors.New("node unavailable")},
		{round: 11},
	}}
	o := NewObserver(provider, 10, nil, logrus.New()).WithRetryInterval(time.Millisecond)

	rec := &recorder{}
	o.Subscribe(rec.handle)

	cancel, done := runObserver(t, o)
	require.Eventually(t, func() bool { return o.LastRound() == 11 }, 5*time.Second, 10*time.Millisecond)
	stop(t, cancel, done)

	assert.Equal(t, []uint64{11}, rec.snapshot())

	provider.mu.Lock()
	defer provider.mu.Unlock()
	require.GreaterOrEqual(t, len(provider.calls), 2)
	assert.Equal(t, []uint64{10, 10}, provider.calls[:2])
}

func TestObserver_Unsubscribe(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &scriptedProvider{steps: []step{{round: 2}}}
	o := NewObserver(provider, 1, nil, logrus.New())

	kept := &recorder{}
	removed := &recorder{}
	o.Subscribe(kept.handle)
	id := o.Subscribe(removed.handle)
	o.Unsubscribe(id)

	cancel, done := runObserver(t, o)
	require.Eventually(t, func() bool { return o.LastRound() == 2 }, 5*time.Second, 10*time.Millisecond)
	stop(t, cancel, done)

	assert.Equal(t, []uint64{2}, kept.snapshot())
	assert.Empty(t, removed.snapshot())
}

func TestObserver_WaitsForHandlers(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &scriptedProvider{steps: []step{{round: 2}}}
	o := NewObserver(provider, 1, nil, logrus.New())

	started := make(chan struct{})
	var finished bool
	var mu sync.Mutex
	o.Subscribe(func(ctx context.Context, round uint64) {
		close(started)
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		mu.Lock()
		finished = true
		mu.Unlock()
	})

	cancel, done := runObserver(t, o)
	<-started
	stop(t, cancel, done)

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, finished, "Run returned before its handlers")
}

func TestObserver_HandlerPanicIsContained(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &scriptedProvider{steps: []step{{round: 2}, {round: 3}}}
	o := NewObserver(provider, 1, nil, logrus.New())

	rec := &recorder{}
	o.Subscribe(func(ctx context.Context, round uint64) {
		panic("boom")
	})
	o.Subscribe(rec.handle)

	cancel, done := runObserver(t, o)
	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, 5*time.Second, 10*time.Millisecond)
	stop(t, cancel, done)

	assert.ElementsMatch(t, []uint64{2, 3}, rec.snapshot())
}
