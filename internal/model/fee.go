package model

import "math/big"

// PoolPair is the trade a fee is quoted for.
type PoolPair struct {
	AssetIn    string
	AssetOut   string
	BalanceIn  *big.Int
	BalanceOut *big.Int
}

// PoolRef identifies a pool in a fee query.
type PoolRef struct {
	Type    PoolType
	Address string
}

// FeeResult holds fee percentages as decimal strings. Which fields are set
// depends on the pool type: hub asset pools fill AssetFee, ProtocolFee, Min
// and Max; stable pools fill Fee; constant product and weighted pools fill
// ExchangeFee (weighted also RepayFee); lending pools leave it empty.
type FeeResult struct {
	AssetFee    string `json:"assetFee,omitempty"`
	ProtocolFee string `json:"protocolFee,omitempty"`
	Min         string `json:"min,omitempty"`
	Max         string `json:"max,omitempty"`
	Fee         string `json:"fee,omitempty"`
	ExchangeFee string `json:"exchangeFee,omitempty"`
	RepayFee    string `json:"repayFee,omitempty"`
}

// IsEmpty reports whether no fee component is set.
func (r FeeResult) IsEmpty() bool {
	return r == FeeResult{}
}
