// Package poolmath reproduces the ledger's per-pool-type fee and parameter math.
package poolmath

import "math/big"

// LinearRamp moves from initial toward final as at advances from start to end.
// It returns initial for at <= start and final for at >= end. In between the
// step is truncated toward initial, so the result never passes final.
func LinearRamp(initial, final *big.Int, start, end, at uint64) *big.Int {
	if at <= start {
		return new(big.Int).Set(initial)
	}
	if at >= end {
		return new(big.Int).Set(final)
	}

	diff := new(big.Int).Sub(final, initial)
	diff.Abs(diff)
	step := diff.Mul(diff, new(big.Int).SetUint64(at-start))
	step.Quo(step, new(big.Int).SetUint64(end-start))

	if final.Cmp(initial) >= 0 {
		return step.Add(initial, step)
	}
	return step.Sub(initial, step)
}
