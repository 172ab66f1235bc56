package poolmath

import (
	"fmt"

	"github.com/shopspring/decimal"

	"feeScope/internal/fixed"
)

// DecimalsConst is the fractional precision of the dynamic fee volume ratio.
const DecimalsConst int32 = 9

// FeeCurve selects which side of the oracle volume drives a fee.
type FeeCurve int

const (
	// AssetFeeCurve rises when the asset is bought out of the pool.
	AssetFeeCurve FeeCurve = iota
	// ProtocolFeeCurve rises when the asset is sold into the pool.
	ProtocolFeeCurve
)

// FeeInput is everything one dynamic fee recalculation needs. Fee values are
// percentages; DecayRate and AmplificationConstant are plain factors.
type FeeInput struct {
	Curve                 FeeCurve
	OracleAmountIn        decimal.Decimal
	OracleAmountOut       decimal.Decimal
	OracleLiquidity       decimal.Decimal
	DecimalsConst         int32
	CurrentBalance        decimal.Decimal
	PreviousFeePct        decimal.Decimal
	BlockDifference       uint64
	MinFeePct             decimal.Decimal
	MaxFeePct             decimal.Decimal
	DecayRate             decimal.Decimal
	AmplificationConstant decimal.Decimal
}

// RecalculateFee advances a dynamic fee by BlockDifference blocks.
//
// Per block the fee moves by amplification * x - decay, where x is the net
// oracle outflow (asset curve) or inflow (protocol curve) relative to
// max(oracle liquidity, current balance). The result stays within
// [MinFeePct, MaxFeePct] and is truncated to permill precision.
func RecalculateFee(in FeeInput) (decimal.Decimal, error) {
	if in.MinFeePct.GreaterThan(in.MaxFeePct) {
		return decimal.Zero, fmt.Errorf("min fee %s above max fee %s", in.MinFeePct, in.MaxFeePct)
	}
	places := in.DecimalsConst
	if places <= 0 {
		places = DecimalsConst
	}

	prev := fixed.FromPct(in.PreviousFeePct)
	lo := fixed.FromPct(in.MinFeePct)
	hi := fixed.FromPct(in.MaxFeePct)

	if in.BlockDifference == 0 {
		return toPermillPct(fixed.Clamp(prev, lo, hi)), nil
	}

	liquidity := decimal.Max(in.OracleLiquidity, in.CurrentBalance)
	x := decimal.Zero
	if liquidity.IsPositive() {
		net := in.OracleAmountOut.Sub(in.OracleAmountIn)
		if in.Curve == ProtocolFeeCurve {
			net = net.Neg()
		}
		var err error
		x, err = fixed.Div(net, liquidity, places, fixed.RoundDown)
		if err != nil {
			return decimal.Zero, err
		}
	}

	perBlock := in.AmplificationConstant.Mul(x).Sub(in.DecayRate)
	next := prev.Add(perBlock.Mul(decimal.NewFromInt(int64(in.BlockDifference))))
	return toPermillPct(fixed.Clamp(next, lo, hi)), nil
}

func toPermillPct(f decimal.Decimal) decimal.Decimal {
	return fixed.ToPct(fixed.Round(f, fixed.PermillPlaces, fixed.RoundDown))
}
