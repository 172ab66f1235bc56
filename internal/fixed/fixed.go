// Package fixed implements the decimal arithmetic used for fees, weights and pegs.
// Every conversion is exact or rounds with an explicit mode; nothing goes
// through float64.
package fixed

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// Permill is the parts-per-million denominator used by on-chain fees.
	Permill = 1_000_000

	// PermillPlaces is the number of fractional digits a permill fraction carries.
	PermillPlaces = 6
)

// Rounding selects how a result is cut to a fixed number of fractional digits.
// Ledger values are truncated with RoundDown.
type Rounding int

const (
	RoundDown Rounding = iota
	roundUp
	roundHalfUp
)

var (
	hundred = decimal.NewFromInt(100)
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
)

// MaxU128 returns 2^128-1, the largest balance the ledger can represent.
func MaxU128() *big.Int {
	return new(big.Int).Set(maxU128)
}

// ParseDecimal parses a string-encoded decimal value. Empty input is zero.
func ParseDecimal(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal: %s", value)
	}
	return d, nil
}

// ParseBigInt parses a base-10 integer. Empty input is zero.
func ParseBigInt(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return big.NewInt(0), nil
	}
	parsed, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid int: %s", value)
	}
	return parsed, nil
}

// FromPermill converts a parts-per-million integer into a fraction of one.
func FromPermill(ppm int64) decimal.Decimal {
	return decimal.New(ppm, -PermillPlaces)
}

// PctFromPermill converts a parts-per-million integer into a percentage.
// 2500 ppm is 0.25%.
func PctFromPermill(ppm int64) decimal.Decimal {
	return decimal.New(ppm, -(PermillPlaces - 2))
}

// ToPct converts a fraction of one into a percentage.
func ToPct(fraction decimal.Decimal) decimal.Decimal {
	return fraction.Mul(hundred)
}

// FromPct converts a percentage into a fraction of one.
func FromPct(pct decimal.Decimal) decimal.Decimal {
	return pct.Shift(-2)
}

// Round cuts d to places fractional digits using mode.
func Round(d decimal.Decimal, places int32, mode Rounding) decimal.Decimal {
	switch mode {
	case roundUp:
		return d.RoundUp(places)
	case roundHalfUp:
		return d.Round(places)
	default:
		return d.RoundDown(places)
	}
}

// Div divides a by b keeping places fractional digits, rounded with mode.
// Division by zero returns an error.
func Div(a, b decimal.Decimal, places int32, mode Rounding) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, fmt.Errorf("division by zero")
	}
	// QuoRem truncates toward zero at the requested precision.
	q, r := a.QuoRem(b, places)
	if r.IsZero() || mode == RoundDown {
		return q, nil
	}
	ulp := decimal.New(1, -places)
	if a.Sign()*b.Sign() < 0 {
		ulp = ulp.Neg()
	}
	switch mode {
	case roundUp:
		return q.Add(ulp), nil
	case roundHalfUp:
		// |r| is below |b| * ulp; round away when 2|r| reaches that bound.
		if r.Abs().Mul(decimal.NewFromInt(2)).GreaterThanOrEqual(b.Abs().Mul(ulp.Abs())) {
			return q.Add(ulp), nil
		}
	}
	return q, nil
}

// FromRat converts a rational into a decimal with places fractional digits, rounded down.
func FromRat(r *big.Rat, places int32) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	num := decimal.NewFromBigInt(r.Num(), 0)
	den := decimal.NewFromBigInt(r.Denom(), 0)
	q, _ := num.QuoRem(den, places)
	return q
}

// ToRat converts a decimal into an exact rational.
func ToRat(d decimal.Decimal) *big.Rat {
	return d.Rat()
}

// FractionPct converts numerator/denominator into a percentage with places
// fractional digits, rounded down. A zero denominator yields zero.
func FractionPct(numerator, denominator int64, places int32) decimal.Decimal {
	if denominator == 0 {
		return decimal.Zero
	}
	pct, _ := Div(decimal.NewFromInt(numerator).Mul(hundred), decimal.NewFromInt(denominator), places, RoundDown)
	return pct
}

// Clamp bounds d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}
