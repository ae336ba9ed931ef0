package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

type MockProvider struct {
	responses []types.PendingTransaction
	err       error
	calls     int
}

func (m *MockProvider) PendingTransaction(ctx context.Context, txID string) (types.PendingTransaction, error) {
	m.calls++
	if m.err != nil {
		return types.PendingTransaction{}, m.err
	}
	i := min(m.calls-1, len(m.responses)-1)
	return m.responses[i], nil
}

func TestStatus_WaitConfirmed(t *testing.T) {
	tests := []struct {
		name      string
		provider  *MockProvider
		want      uint64
		wantErr   error
		wantCalls int
	}{
		{
			name: "confirmed after pending",
			provider: &MockProvider{responses: []types.PendingTransaction{
				{}, {}, {ConfirmedRound: 1234},
			}},
			want:      1234,
			wantCalls: 3,
		},
		{
			name: "pool error",
			provider: &MockProvider{responses: []types.PendingTransaction{
				{PoolError: "overspend"},
			}},
			wantErr:   ErrRejected,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatus(tt.provider).WithInterval(time.Millisecond)

			got, err := s.WaitConfirmed(context.Background(), "TXID")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCalls, tt.provider.calls)
		})
	}
}

func TestStatus_WaitConfirmedProviderError(t *testing.T) {
	boom := errors.New("node down")
	s := NewStatus(&MockProvider{err: boom}).WithInterval(time.Millisecond)

	_, err := s.WaitConfirmed(context.Background(), "TXID")
	require.ErrorIs(t, err, boom)
}

func TestStatus_WaitConfirmedContextDone(t *testing.T) {
	s := NewStatus(&MockProvider{responses: []types.PendingTransaction{{}}}).WithInterval(time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := s.WaitConfirmed(ctx, "TXID")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
