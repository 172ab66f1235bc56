package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// Fraction is a small numerator/denominator fee, e.g. 3/1000.
type Fraction struct {
	Numerator   int64
	Denominator int64
}

// PoolLimits are the static trade limits of one pool family.
type PoolLimits struct {
	MaxInRatio       uint64
	MaxOutRatio      uint64
	MinPoolLiquidity *big.Int
	MinTradingLimit  *big.Int
}

// DynamicFeeParams parameterizes one dynamic fee curve. Fees are in permill.
type DynamicFeeParams struct {
	MinFee                int64
	MaxFee                int64
	DecayRate             decimal.Decimal
	AmplificationConstant decimal.Decimal
}

type ConstantProductConstants struct {
	Limits        PoolLimits
	ExchangeFee   Fraction
	NativeAssetID string
	OracleSource  string
}

type WeightedConstants struct {
	Limits   PoolLimits
	RepayFee Fraction
}

type StableConstants struct {
	Limits             PoolLimits
	AmplificationRange [2]uint64
}

type HubAssetConstants struct {
	Limits           PoolLimits
	SystemAssetID    string
	HubAssetID       string
	MinWithdrawalFee int64 // permill
	BurnProtocolFee  int64 // permill
}

// Constants are the protocol parameters exported with a snapshot.
type Constants struct {
	ConstantProduct ConstantProductConstants
	Weighted        WeightedConstants
	Stable          StableConstants
	HubAsset        HubAssetConstants
	AssetFee        DynamicFeeParams
	ProtocolFee     DynamicFeeParams
}

// Meta pins the snapshot to a block. It is the only notion of "now".
type Meta struct {
	ParaBlockNumber  uint64
	ParaBlockHash    common.Hash
	RelayBlockNumber uint64
}
