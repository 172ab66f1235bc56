package poolclient

import (
	"feeScope/internal/fixed"
	"feeScope/internal/model"
	"feeScope/internal/snapshot"
)

// WeightedClient serves liquidity bootstrapping pools.
type WeightedClient struct {
	base
}

func NewWeighted(snap *snapshot.Snapshot, assets []model.Asset) *WeightedClient {
	return &WeightedClient{base: newBase(model.PoolTypeWeighted, snap, assets)}
}

// Fees returns the pool's own fee and, while the pool still repays its
// target, the protocol repay fee.
func (c *WeightedClient) Fees(_ model.PoolPair, address string) (model.FeeResult, error) {
	found, err := findPool(c.Pools(), c.poolType, address)
	if err != nil {
		return model.FeeResult{}, err
	}
	pool := found.(*model.WeightedPool)

	result := model.FeeResult{
		ExchangeFee: fixed.FractionPct(pool.FeeRange.Numerator, pool.FeeRange.Denominator, feePlaces).String(),
	}
	if pool.RepayFeeApplies {
		repay := c.snap.Constants.Weighted.RepayFee
		result.RepayFee = fixed.FractionPct(repay.Numerator, repay.Denominator, feePlaces).String()
	}
	return result, nil
}

func (c *WeightedClient) WithAssets(assets []model.Asset) Client {
	return NewWeighted(c.snap, assets)
}
