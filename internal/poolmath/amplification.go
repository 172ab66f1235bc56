package poolmath

import "math/big"

// Amplification is the stable pool amplification at block at, ramping from
// initial at initialBlock to final at finalBlock.
func Amplification(initial, final *big.Int, initialBlock, finalBlock, at uint64) *big.Int {
	return LinearRamp(initial, final, initialBlock, finalBlock, at)
}
