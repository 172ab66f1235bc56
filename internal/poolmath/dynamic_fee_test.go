package poolmath

import (
	"testing"

	"github.com/shopspring/decimal"
)

func baseInput() FeeInput {
	return FeeInput{
		Curve:                 AssetFeeCurve,
		OracleLiquidity:       decimal.NewFromInt(1_000_000),
		DecimalsConst:         DecimalsConst,
		CurrentBalance:        decimal.NewFromInt(500_000),
		PreviousFeePct:        decimal.RequireFromString("0.25"),
		MinFeePct:             decimal.RequireFromString("0.25"),
		MaxFeePct:             decimal.RequireFromString("5"),
		DecayRate:             decimal.RequireFromString("0.0005"),
		AmplificationConstant: decimal.NewFromInt(2),
	}
}

func TestRecalculateFeeRisesWithOutflow(t *testing.T) {
	in := baseInput()
	in.OracleAmountIn = decimal.NewFromInt(1_000)
	in.OracleAmountOut = decimal.NewFromInt(6_000)
	in.BlockDifference = 2

	// x = 5000 / 1e6 = 0.005; per block 2 * 0.005 - 0.0005 = 0.0095.
	// 0.0025 + 2 * 0.0095 = 0.0215 -> 2.15%.
	got, err := RecalculateFee(in)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("2.15")) {
		t.Fatalf("fee mismatch: %s", got)
	}

	in.Curve = ProtocolFeeCurve
	got, err = RecalculateFee(in)
	if err != nil {
		t.Fatalf("recalculate protocol: %v", err)
	}
	if !got.Equal(in.MinFeePct) {
		t.Fatalf("protocol fee should fall to min, got %s", got)
	}
}

func TestRecalculateFeeStaysWithinBounds(t *testing.T) {
	in := baseInput()
	for _, out := range []int64{0, 10, 1_000, 100_000, 10_000_000} {
		for _, blocks := range []uint64{0, 1, 5, 1_000} {
			for _, curve := range []FeeCurve{AssetFeeCurve, ProtocolFeeCurve} {
				in.Curve = curve
				in.OracleAmountOut = decimal.NewFromInt(out)
				in.OracleAmountIn = decimal.NewFromInt(2_000)
				in.BlockDifference = blocks
				got, err := RecalculateFee(in)
				if err != nil {
					t.Fatalf("recalculate: %v", err)
				}
				if got.LessThan(in.MinFeePct) || got.GreaterThan(in.MaxFeePct) {
					t.Fatalf("fee %s outside [%s, %s]", got, in.MinFeePct, in.MaxFeePct)
				}
			}
		}
	}
}

func TestRecalculateFeeZeroBlocksKeepsPrevious(t *testing.T) {
	in := baseInput()
	in.PreviousFeePct = decimal.RequireFromString("1.2345")
	in.OracleAmountOut = decimal.NewFromInt(900_000)
	got, err := RecalculateFee(in)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("1.2345")) {
		t.Fatalf("fee mismatch: %s", got)
	}
}

func TestRecalculateFeeDecaysWithoutVolume(t *testing.T) {
	in := baseInput()
	in.PreviousFeePct = decimal.RequireFromString("1")
	in.BlockDifference = 4
	got, err := RecalculateFee(in)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	// 0.01 - 4 * 0.0005 = 0.008
	if !got.Equal(decimal.RequireFromString("0.8")) {
		t.Fatalf("fee mismatch: %s", got)
	}
}

func TestRecalculateFeeZeroLiquidity(t *testing.T) {
	in := baseInput()
	in.OracleLiquidity = decimal.Zero
	in.CurrentBalance = decimal.Zero
	in.OracleAmountOut = decimal.NewFromInt(1)
	in.PreviousFeePct = decimal.RequireFromString("3")
	in.BlockDifference = 1
	got, err := RecalculateFee(in)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("2.95")) {
		t.Fatalf("fee mismatch: %s", got)
	}
}

func TestRecalculateFeeRejectsInvertedBounds(t *testing.T) {
	in := baseInput()
	in.MinFeePct = decimal.NewFromInt(6)
	if _, err := RecalculateFee(in); err == nil {
		t.Fatalf("expected error for min above max")
	}
}
