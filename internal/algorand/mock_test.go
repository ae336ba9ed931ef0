package algorand

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

var errNotFound = errors.New("not found")

// MockNode is an in-memory NodeProvider.
type MockNode struct {
	mu sync.Mutex

	accounts   map[string]types.Account
	params     types.TransactionParams
	totalMoney uint64
	blocks     map[uint64]types.BlockRewards
	lastRound  uint64

	accountErr error
	paramsErr  error
	sendErr    error

	blockCalls int
	sent       [][]byte
}

func newMockNode() *MockNode {
	return &MockNode{
		accounts: make(map[string]types.Account),
		blocks:   make(map[uint64]types.BlockRewards),
		params: types.TransactionParams{
			FeePerByte:  0,
			MinFee:      1000,
			FirstRound:  1000,
			LastRound:   2000,
			GenesisID:   "testnet-v1.0",
			GenesisHash: bytes.Repeat([]byte{0x01}, 32),
		},
		lastRound: 1000,
	}
}

func (m *MockNode) AccountInformation(ctx context.Context, address string) (types.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accountErr != nil {
		return types.Account{}, m.accountErr
	}
	acc, ok := m.accounts[address]
	if !ok {
		return types.Account{}, errNotFound
	}
	return acc, nil
}

func (m *MockNode) TransactionParams(ctx context.Context) (types.TransactionParams, error) {
	if m.paramsErr != nil {
		return types.TransactionParams{}, m.paramsErr
	}
	return m.params, nil
}

func (m *MockNode) TotalSupply(ctx context.Context) (uint64, error) {
	return m.totalMoney, nil
}

func (m *MockNode) BlockRewards(ctx context.Context, round uint64) (types.BlockRewards, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blockCalls++
	b, ok := m.blocks[round]
	if !ok {
		return types.BlockRewards{}, errNotFound
	}
	return b, nil
}

func (m *MockNode) LastRound(ctx context.Context) (uint64, error) {
	return m.lastRound, nil
}

func (m *MockNode) StatusAfterBlock(ctx context.Context, round uint64) (uint64, error) {
	return round + 1, nil
}

func (m *MockNode) SendRawTransaction(ctx context.Context, signed []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return "", m.sendErr
	}
	m.sent = append(m.sent, signed)
	return "TXID", nil
}

func (m *MockNode) PendingTransaction(ctx context.Context, txID string) (types.PendingTransaction, error) {
	return types.PendingTransaction{ConfirmedRound: m.lastRound + 1}, nil
}
