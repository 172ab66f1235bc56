package poolclient

import (
	"feeScope/internal/model"
	"feeScope/internal/snapshot"
)

// LendingWrappedClient lists lending wrapper pools. Their fees are not modelled.
type LendingWrappedClient struct {
	base
}

func NewLendingWrapped(snap *snapshot.Snapshot, assets []model.Asset) *LendingWrappedClient {
	return &LendingWrappedClient{base: newBase(model.PoolTypeLendingWrapped, snap, assets)}
}

func (c *LendingWrappedClient) Fees(_ model.PoolPair, address string) (model.FeeResult, error) {
	if _, err := findPool(c.Pools(), c.poolType, address); err != nil {
		return model.FeeResult{}, err
	}
	return model.FeeResult{}, nil
}

func (c *LendingWrappedClient) WithAssets(assets []model.Asset) Client {
	return NewLendingWrapped(c.snap, assets)
}
