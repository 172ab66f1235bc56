package poolmath

import (
	"fmt"
	"math/big"
)

// TotalWeight is 100% in weight units: 10^8, i.e. 100.000000%.
const TotalWeight uint64 = 100_000_000

// LinearWeight is the accumulated token weight of a weighted pool at block at.
func LinearWeight(start, end, initialWeight, finalWeight, at uint64) (uint64, error) {
	if initialWeight > TotalWeight || finalWeight > TotalWeight {
		return 0, fmt.Errorf("weight exceeds total: initial %d, final %d", initialWeight, finalWeight)
	}
	w := LinearRamp(
		new(big.Int).SetUint64(initialWeight),
		new(big.Int).SetUint64(finalWeight),
		start, end, at,
	)
	return w.Uint64(), nil
}

// PairWeights returns the accumulated and distributed token weights at block at.
// They always sum to TotalWeight.
func PairWeights(start, end, initialWeight, finalWeight, at uint64) (accumulated, distributed uint64, err error) {
	accumulated, err = LinearWeight(start, end, initialWeight, finalWeight, at)
	if err != nil {
		return 0, 0, err
	}
	return accumulated, TotalWeight - accumulated, nil
}
