package model

import "math/big"

// Ratio is an exact numerator/denominator pair.
type Ratio struct {
	Numerator   *big.Int
	Denominator *big.Int
}

// NewRatio builds a Ratio from int64 parts.
func NewRatio(n, d int64) Ratio {
	return Ratio{Numerator: big.NewInt(n), Denominator: big.NewInt(d)}
}

// Rat returns the ratio as a big.Rat. A zero denominator yields nil.
func (r Ratio) Rat() *big.Rat {
	if r.Numerator == nil || r.Denominator == nil || r.Denominator.Sign() == 0 {
		return nil
	}
	return new(big.Rat).SetFrac(r.Numerator, r.Denominator)
}

// IsPositive reports whether both parts are set and above zero.
func (r Ratio) IsPositive() bool {
	return r.Numerator != nil && r.Denominator != nil && r.Numerator.Sign() > 0 && r.Denominator.Sign() > 0
}

// Peg is a stable pool reference rate and the block it was last moved at.
type Peg struct {
	Ratio
	UpdatedAt uint64
}

// PegSourceKind tells where a latest peg comes from.
type PegSourceKind string

const (
	PegSourceOracle   PegSourceKind = "Oracle"
	PegSourceMmOracle PegSourceKind = "MmOracle"
	PegSourceValue    PegSourceKind = "Value"
)

// PegSource configures the latest peg of one stable pool asset.
type PegSource struct {
	Kind         PegSourceKind
	OracleName   string
	OraclePeriod string
	OracleAsset  string
	Value        *Ratio
}
