package poolclient

import (
	"feeScope/internal/fixed"
	"feeScope/internal/model"
	"feeScope/internal/snapshot"
)

// feePlaces is the fractional precision of static fee percentages.
const feePlaces = 6

// ConstantProductClient serves permissionless x*y=k pools. A pool is listed
// only while all of its tokens are registry assets.
type ConstantProductClient struct {
	base
}

func NewConstantProduct(snap *snapshot.Snapshot, assets []model.Asset) *ConstantProductClient {
	return &ConstantProductClient{base: newBase(model.PoolTypeConstantProduct, snap, assets)}
}

func (c *ConstantProductClient) Pools() []model.Pool {
	all := c.base.Pools()
	out := make([]model.Pool, 0, len(all))
	for _, pool := range all {
		if c.inRegistry(pool) {
			out = append(out, pool)
		}
	}
	return out
}

// Fees returns the protocol-wide exchange fee; the pair does not affect it.
func (c *ConstantProductClient) Fees(_ model.PoolPair, address string) (model.FeeResult, error) {
	if _, err := findPool(c.Pools(), c.poolType, address); err != nil {
		return model.FeeResult{}, err
	}
	fee := c.snap.Constants.ConstantProduct.ExchangeFee
	return model.FeeResult{
		ExchangeFee: fixed.FractionPct(fee.Numerator, fee.Denominator, feePlaces).String(),
	}, nil
}

func (c *ConstantProductClient) WithAssets(assets []model.Asset) Client {
	return NewConstantProduct(c.snap, assets)
}
