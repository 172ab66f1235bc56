package poolclient

import (
	"feeScope/internal/fixed"
	"feeScope/internal/model"
	"feeScope/internal/snapshot"
)

// StableClient serves stable swap pools.
type StableClient struct {
	base
}

func NewStable(snap *snapshot.Snapshot, assets []model.Asset) *StableClient {
	return &StableClient{base: newBase(model.PoolTypeStable, snap, assets)}
}

// Fees returns the peg adjusted pool fee computed at normalization.
func (c *StableClient) Fees(_ model.PoolPair, address string) (model.FeeResult, error) {
	found, err := findPool(c.Pools(), c.poolType, address)
	if err != nil {
		return model.FeeResult{}, err
	}
	pool := found.(*model.StablePool)
	return model.FeeResult{Fee: fixed.ToPct(pool.PegFee).String()}, nil
}

func (c *StableClient) WithAssets(assets []model.Asset) Client {
	return NewStable(c.snap, assets)
}
