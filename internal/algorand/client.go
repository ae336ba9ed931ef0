package algorand

import (
	"context"
	"fmt"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

// NodeProvider is the slice of the algod API the wallet core consumes.
type NodeProvider interface {
	AccountInformation(ctx context.Context, address string) (types.Account, error)
	TransactionParams(ctx context.Context) (types.TransactionParams, error)
	TotalSupply(ctx context.Context) (uint64, error)
	BlockRewards(ctx context.Context, round uint64) (types.BlockRewards, error)
	LastRound(ctx context.Context) (uint64, error)
	StatusAfterBlock(ctx context.Context, round uint64) (uint64, error)
	SendRawTransaction(ctx context.Context, signed []byte) (string, error)
	PendingTransaction(ctx context.Context, txID string) (types.PendingTransaction, error)
}

// Client implements NodeProvider on top of the algod REST client.
type Client struct {
	algod *algod.Client
}

func NewClient(address, token string) (*Client, error) {
	c, err := algod.MakeClient(address, token)
	if err != nil {
		return nil, fmt.Errorf("algorand: failed to create algod client: %w", err)
	}
	return &Client{
		algod: c,
	}, nil
}

func (c *Client) AccountInformation(ctx context.Context, address string) (types.Account, error) {
	acc, err := c.algod.AccountInformation(address).Do(ctx)
	if err != nil {
		return types.Account{}, fmt.Errorf("algorand: failed to get account %s: %w", address, err)
	}
	return accountFromModel(acc), nil
}

func (c *Client) TransactionParams(ctx context.Context) (types.TransactionParams, error) {
	sp, err := c.algod.SuggestedParams().Do(ctx)
	if err != nil {
		return types.TransactionParams{}, fmt.Errorf("algorand: failed to get suggested params: %w", err)
	}
	return paramsFromSDK(sp), nil
}

func (c *Client) TotalSupply(ctx context.Context) (uint64, error) {
	supply, err := c.algod.Supply().Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("algorand: failed to get supply: %w", err)
	}
	return supply.TotalMoney, nil
}

func (c *Client) BlockRewards(ctx context.Context, round uint64) (types.BlockRewards, error) {
	block, err := c.algod.Block(round).Do(ctx)
	if err != nil {
		return types.BlockRewards{}, fmt.Errorf("algorand: failed to get block %d: %w", round, err)
	}
	return blockRewardsFromSDK(block), nil
}

func (c *Client) LastRound(ctx context.Context) (uint64, error) {
	status, err := c.algod.Status().Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("algorand: failed to get node status: %w", err)
	}
	return status.LastRound, nil
}

func (c *Client) StatusAfterBlock(ctx context.Context, round uint64) (uint64, error) {
	status, err := c.algod.StatusAfterBlock(round).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("algorand: failed to wait for block after %d: %w", round, err)
	}
	return status.LastRound, nil
}

func (c *Client) SendRawTransaction(ctx context.Context, signed []byte) (string, error) {
	txID, err := c.algod.SendRawTransaction(signed).Do(ctx)
	if err != nil {
		return "", fmt.Errorf("algorand: failed to broadcast transaction: %w", err)
	}
	return txID, nil
}

func (c *Client) PendingTransaction(ctx context.Context, txID string) (types.PendingTransaction, error) {
	info, _, err := c.algod.PendingTransactionInformation(txID).Do(ctx)
	if err != nil {
		return types.PendingTransaction{}, fmt.Errorf("algorand: failed to get pending transaction %s: %w", txID, err)
	}
	return types.PendingTransaction{
		ConfirmedRound: info.ConfirmedRound,
		PoolError:      info.PoolError,
	}, nil
}
