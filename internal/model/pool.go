package model

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// TradeableDefault allows buy, sell, add and remove liquidity.
const TradeableDefault uint8 = 15

// PoolToken is an asset held by a pool together with its pool balance.
type PoolToken struct {
	ID                 string
	Decimals           uint8
	Symbol             string
	Balance            *big.Int
	Tradeable          uint8
	ExistentialDeposit *big.Int
	IsSufficient       bool
	Class              AssetClass
}

// WeightedPoolToken carries the token weight in TotalWeight units.
type WeightedPoolToken struct {
	PoolToken
	Weight uint64
}

// HubAssetPoolToken carries hub reserve and share accounting.
type HubAssetPoolToken struct {
	PoolToken
	HubReserves    decimal.Decimal
	Shares         decimal.Decimal
	Cap            decimal.Decimal
	ProtocolShares decimal.Decimal
}

// PoolBase holds the fields every pool family shares.
type PoolBase struct {
	ID              string
	Address         string
	Type            PoolType
	MaxInRatio      uint64
	MaxOutRatio     uint64
	MinTradingLimit *big.Int
}

// Pool is one of ConstantProductPool, WeightedPool, StablePool,
// HubAssetPool or LendingWrappedPool. The set is closed.
type Pool interface {
	Base() *PoolBase
	TokenIDs() []string
	pool()
}

// ConstantProductPool is a permissionless x*y=k pool.
type ConstantProductPool struct {
	PoolBase
	Tokens []PoolToken
}

// LendingWrappedPool wraps a lending market position; fees are not modelled.
type LendingWrappedPool struct {
	PoolBase
	Tokens []PoolToken
}

// WeightedPool is a two-token bootstrapping pool with linearly shifting weights.
// Tokens[0] is the accumulated token, Tokens[1] the distributed token.
type WeightedPool struct {
	PoolBase
	Tokens          []WeightedPoolToken
	FeeRange        Fraction
	RepayFeeApplies bool
	StartBlock      uint64
	EndBlock        uint64
	InitialWeight   uint64
	FinalWeight     uint64
	RepayTarget     *big.Int
	FeeCollector    string
}

// StablePool is a stable swap pool. Tokens ends with the synthetic pool
// share token; Amplification, Pegs and PegFee are derived at the snapshot block.
type StablePool struct {
	PoolBase
	Tokens               []PoolToken
	InitialAmplification *big.Int
	FinalAmplification   *big.Int
	InitialBlock         uint64
	FinalBlock           uint64
	Amplification        *big.Int
	Fee                  int64 // permill
	MaxFee               int64 // permill, 0 means uncapped
	TotalIssuance        *big.Int
	PegSources           []PegSource
	RecentPegs           []Peg
	MaxPegUpdate         int64 // permill
	Pegs                 []Peg
	PegFee               decimal.Decimal // fraction of one
}

// HubAssetPool routes every trade through the hub asset.
type HubAssetPool struct {
	PoolBase
	Tokens     []HubAssetPoolToken
	HubAssetID string
}

func (p *PoolBase) Base() *PoolBase { return p }

func (*ConstantProductPool) pool() {}
func (*LendingWrappedPool) pool()  {}
func (*WeightedPool) pool()        {}
func (*StablePool) pool()          {}
func (*HubAssetPool) pool()        {}

func (p *ConstantProductPool) TokenIDs() []string { return poolTokenIDs(p.Tokens) }
func (p *LendingWrappedPool) TokenIDs() []string  { return poolTokenIDs(p.Tokens) }
func (p *StablePool) TokenIDs() []string          { return poolTokenIDs(p.Tokens) }

func (p *WeightedPool) TokenIDs() []string {
	ids := make([]string, 0, len(p.Tokens))
	for _, token := range p.Tokens {
		ids = append(ids, token.ID)
	}
	return ids
}

func (p *HubAssetPool) TokenIDs() []string {
	ids := make([]string, 0, len(p.Tokens))
	for _, token := range p.Tokens {
		ids = append(ids, token.ID)
	}
	return ids
}

// Token returns the hub pool token with the given id.
func (p *HubAssetPool) Token(id string) (HubAssetPoolToken, bool) {
	for _, token := range p.Tokens {
		if token.ID == id {
			return token, true
		}
	}
	return HubAssetPoolToken{}, false
}

// ShareToken returns the synthetic pool share token, if the pool was augmented.
func (p *StablePool) ShareToken() (PoolToken, bool) {
	if len(p.Tokens) == 0 || p.Tokens[len(p.Tokens)-1].ID != p.ID {
		return PoolToken{}, false
	}
	return p.Tokens[len(p.Tokens)-1], true
}

// AssetTokens returns the pool tokens without the synthetic share token.
func (p *StablePool) AssetTokens() []PoolToken {
	if _, ok := p.ShareToken(); ok {
		return p.Tokens[:len(p.Tokens)-1]
	}
	return p.Tokens
}

func poolTokenIDs(tokens []PoolToken) []string {
	ids := make([]string, 0, len(tokens))
	for _, token := range tokens {
		ids = append(ids, token.ID)
	}
	return ids
}
