package poolclient

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"feeScope/internal/fixed"
	"feeScope/internal/model"
	"feeScope/internal/poolmath"
	"feeScope/internal/snapshot"
)

const (
	// HubOracleSource and HubOraclePeriod select the samples dynamic fees read.
	HubOracleSource = "omnipool"
	HubOraclePeriod = "Short"
)

// HubAssetClient serves the hub-and-spoke pool and its dynamic fees.
type HubAssetClient struct {
	base
}

func NewHubAsset(snap *snapshot.Snapshot, assets []model.Asset) *HubAssetClient {
	return &HubAssetClient{base: newBase(model.PoolTypeHubAsset, snap, assets)}
}

// feeRange is a [min, point, max] fee triple in percent.
type feeRange struct {
	min   decimal.Decimal
	point decimal.Decimal
	max   decimal.Decimal
}

// Fees recalculates both dynamic fee curves at the snapshot block.
//
// The asset fee is charged on assetOut and the protocol fee on assetIn; both
// start from the dynamic fee state recorded for assetOut. Without that state
// both curves report their configured minimum. Selling the hub asset carries
// no protocol fee.
func (c *HubAssetClient) Fees(pair model.PoolPair, address string) (model.FeeResult, error) {
	found, err := findPool(c.Pools(), c.poolType, address)
	if err != nil {
		return model.FeeResult{}, err
	}
	pool := found.(*model.HubAssetPool)

	var state *model.DynamicFeeState
	if asset, ok := c.asset(pair.AssetOut); ok {
		state = asset.DynamicFee
	}
	constants := c.snap.Constants

	assetFee, err := c.curve(poolmath.AssetFeeCurve, constants.AssetFee, state, pool.HubAssetID, pair.AssetOut, pair.BalanceOut)
	if err != nil {
		return model.FeeResult{}, fmt.Errorf("asset fee: %w", err)
	}

	protocolFee := feeRange{min: decimal.Zero, point: decimal.Zero, max: decimal.Zero}
	if pair.AssetIn != pool.HubAssetID {
		protocolFee, err = c.curve(poolmath.ProtocolFeeCurve, constants.ProtocolFee, state, pool.HubAssetID, pair.AssetIn, pair.BalanceIn)
		if err != nil {
			return model.FeeResult{}, fmt.Errorf("protocol fee: %w", err)
		}
	}

	return model.FeeResult{
		AssetFee:    assetFee.point.String(),
		ProtocolFee: protocolFee.point.String(),
		Min:         assetFee.min.Add(protocolFee.min).String(),
		Max:         assetFee.max.Add(protocolFee.max).String(),
	}, nil
}

func (c *HubAssetClient) curve(curve poolmath.FeeCurve, params model.DynamicFeeParams, state *model.DynamicFeeState, hubAssetID, asset string, balance *big.Int) (feeRange, error) {
	minPct := fixed.PctFromPermill(params.MinFee)
	maxPct := fixed.PctFromPermill(params.MaxFee)
	if state == nil {
		return feeRange{min: minPct, point: minPct, max: maxPct}, nil
	}

	entry, err := c.snap.Oracle.LookupPair(HubOracleSource, HubOraclePeriod, asset, hubAssetID)
	if err != nil {
		return feeRange{}, err
	}
	amountIn, amountOut, liquidity := entry.Volume.InB, entry.Volume.OutB, entry.Liquidity.B
	if asset == c.snap.Constants.HubAsset.SystemAssetID {
		amountIn, amountOut, liquidity = entry.Volume.InA, entry.Volume.OutA, entry.Liquidity.A
	}

	previous := state.AssetFee
	if curve == poolmath.ProtocolFeeCurve {
		previous = state.ProtocolFee
	}
	block := c.snap.Meta.ParaBlockNumber
	var blocks uint64
	if block > state.UpdatedAt {
		blocks = block - state.UpdatedAt
	}
	current := decimal.Zero
	if balance != nil {
		current = decimal.NewFromBigInt(balance, 0)
	}

	point, err := poolmath.RecalculateFee(poolmath.FeeInput{
		Curve:                 curve,
		OracleAmountIn:        amountIn,
		OracleAmountOut:       amountOut,
		OracleLiquidity:       liquidity,
		DecimalsConst:         poolmath.DecimalsConst,
		CurrentBalance:        current,
		PreviousFeePct:        fixed.PctFromPermill(previous),
		BlockDifference:       blocks,
		MinFeePct:             minPct,
		MaxFeePct:             maxPct,
		DecayRate:             params.DecayRate,
		AmplificationConstant: params.AmplificationConstant,
	})
	if err != nil {
		return feeRange{}, err
	}
	return feeRange{min: minPct, point: point, max: maxPct}, nil
}

func (c *HubAssetClient) WithAssets(assets []model.Asset) Client {
	return NewHubAsset(c.snap, assets)
}
