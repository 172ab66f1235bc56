package poolmath

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"feeScope/internal/fixed"
	"feeScope/internal/model"
)

const pegFeePlaces = 18

// DefaultPegs returns n pegs of 1:1 stamped at block.
func DefaultPegs(n int, block uint64) []model.Peg {
	pegs := make([]model.Peg, n)
	for i := range pegs {
		pegs[i] = model.Peg{Ratio: model.NewRatio(1, 1), UpdatedAt: block}
	}
	return pegs
}

// RecalculatePegs moves every recent peg toward its latest value. A peg may
// change by at most maxPegUpdate (a fraction of one, relative to the recent
// peg) per block elapsed since it was last moved. The returned fee is
// poolFee plus the sum of the relative moves applied, bounded to
// [poolFee, maxFee] and truncated to permill precision. A zero maxFee means
// 100%; a maxFee below poolFee is an error.
func RecalculatePegs(recent, latest []model.Peg, block uint64, maxPegUpdate, poolFee, maxFee decimal.Decimal) (decimal.Decimal, []model.Peg, error) {
	if len(recent) != len(latest) {
		return decimal.Zero, nil, fmt.Errorf("peg count mismatch: recent %d, latest %d", len(recent), len(latest))
	}
	if maxPegUpdate.IsNegative() {
		return decimal.Zero, nil, fmt.Errorf("negative max peg update: %s", maxPegUpdate)
	}
	upper := maxFee
	if upper.IsZero() {
		upper = decimal.NewFromInt(1)
	}
	if upper.LessThan(poolFee) {
		return decimal.Zero, nil, fmt.Errorf("max fee %s below pool fee %s", upper, poolFee)
	}

	limit := fixed.ToRat(maxPegUpdate)
	moved := new(big.Rat)
	updated := make([]model.Peg, len(recent))

	for i := range recent {
		current := recent[i].Rat()
		target := latest[i].Rat()
		if current == nil || current.Sign() <= 0 {
			return decimal.Zero, nil, fmt.Errorf("peg %d: invalid recent ratio", i)
		}
		if target == nil || target.Sign() <= 0 {
			return decimal.Zero, nil, fmt.Errorf("peg %d: invalid latest ratio", i)
		}

		if current.Cmp(target) == 0 || block <= recent[i].UpdatedAt {
			updated[i] = clonePeg(recent[i])
			continue
		}

		gap := new(big.Rat).Sub(target, current)
		gap.Abs(gap)
		gap.Quo(gap, current)

		elapsed := new(big.Rat).SetInt(new(big.Int).SetUint64(block - recent[i].UpdatedAt))
		allowed := new(big.Rat).Mul(limit, elapsed)

		if gap.Cmp(allowed) <= 0 {
			updated[i] = model.Peg{Ratio: cloneRatio(latest[i].Ratio), UpdatedAt: block}
			moved.Add(moved, gap)
			continue
		}

		factor := big.NewRat(1, 1)
		if target.Cmp(current) > 0 {
			factor.Add(factor, allowed)
		} else {
			factor.Sub(factor, allowed)
		}
		next := new(big.Rat).Mul(current, factor)
		updated[i] = model.Peg{
			Ratio: model.Ratio{
				Numerator:   new(big.Int).Set(next.Num()),
				Denominator: new(big.Int).Set(next.Denom()),
			},
			UpdatedAt: block,
		}
		moved.Add(moved, allowed)
	}

	fee := poolFee.Add(fixed.FromRat(moved, pegFeePlaces))
	fee = fixed.Clamp(fee, poolFee, upper)
	return fixed.Round(fee, fixed.PermillPlaces, fixed.RoundDown), updated, nil
}

func clonePeg(p model.Peg) model.Peg {
	return model.Peg{Ratio: cloneRatio(p.Ratio), UpdatedAt: p.UpdatedAt}
}

func cloneRatio(r model.Ratio) model.Ratio {
	return model.Ratio{
		Numerator:   new(big.Int).Set(r.Numerator),
		Denominator: new(big.Int).Set(r.Denominator),
	}
}
