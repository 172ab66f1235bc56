package model

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// OracleVolume is the EMA trade volume on both sides of a pair.
type OracleVolume struct {
	InA  decimal.Decimal
	OutA decimal.Decimal
	InB  decimal.Decimal
	OutB decimal.Decimal
}

// OracleLiquidity is the EMA liquidity on both sides of a pair.
type OracleLiquidity struct {
	A decimal.Decimal
	B decimal.Decimal
}

// OracleEntry is one EMA oracle sample. Assets[0] is the A side.
type OracleEntry struct {
	Source    string
	Period    string
	Assets    [2]string
	Price     Ratio
	Volume    OracleVolume
	Liquidity OracleLiquidity
	UpdatedAt uint64
}

// MmOracleEntry is the latest quote of a market maker oracle contract.
type MmOracleEntry struct {
	Address   common.Address
	Price     *big.Int
	Decimals  uint8
	UpdatedAt uint64
}
