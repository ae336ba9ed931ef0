package algorand

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/perawallet/pera-wallet-sub032/internal/types"
)

const DefaultBlockCacheSize = 256

type CacheMetrics interface {
	RecordBlockCache(hit bool)
}

// CachedProvider memoises block reward state per round. A block never
// changes once produced, so entries are never invalidated.
type CachedProvider struct {
	NodeProvider
	blocks  *lru.Cache
	metrics CacheMetrics
}

func NewCachedProvider(provider NodeProvider, size int, metrics CacheMetrics) (*CachedProvider, error) {
	if size <= 0 {
		size = DefaultBlockCacheSize
	}
	blocks, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("algorand: failed to create block cache: %w", err)
	}
	return &CachedProvider{
		NodeProvider: provider,
		blocks:       blocks,
		metrics:      metrics,
	}, nil
}

func (p *CachedProvider) BlockRewards(ctx context.Context, round uint64) (types.BlockRewards, error) {
	if v, ok := p.blocks.Get(round); ok {
		p.record(true)
		return v.(types.BlockRewards), nil
	}
	p.record(false)

	block, err := p.NodeProvider.BlockRewards(ctx, round)
	if err != nil {
		return types.BlockRewards{}, err
	}
	p.blocks.Add(round, block)
	return block, nil
}

func (p *CachedProvider) record(hit bool) {
	if p.metrics != nil {
		p.metrics.RecordBlockCache(hit)
	}
}
