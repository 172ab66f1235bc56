package poolmath

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"

	"feeScope/internal/model"
)

func peg(n, d int64, at uint64) model.Peg {
	return model.Peg{Ratio: model.NewRatio(n, d), UpdatedAt: at}
}

func TestDefaultPegs(t *testing.T) {
	pegs := DefaultPegs(3, 77)
	if len(pegs) != 3 {
		t.Fatalf("expected 3 pegs, got %d", len(pegs))
	}
	for _, p := range pegs {
		if p.Numerator.Int64() != 1 || p.Denominator.Int64() != 1 || p.UpdatedAt != 77 {
			t.Fatalf("unexpected default peg: %+v", p)
		}
	}
}

func TestRecalculatePegsReachesTargetWithinLimit(t *testing.T) {
	recent := []model.Peg{peg(1, 1, 90), peg(1, 1, 90)}
	latest := []model.Peg{peg(1, 1, 95), peg(101, 100, 95)}

	// 10 blocks at 1% per block allows a 10% move; the gap is 1%.
	fee, pegs, err := RecalculatePegs(recent, latest, 100, decimal.RequireFromString("0.01"), decimal.RequireFromString("0.0005"), decimal.Zero)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if pegs[0].UpdatedAt != 90 {
		t.Fatalf("unchanged peg should keep its block, got %d", pegs[0].UpdatedAt)
	}
	if pegs[1].Rat().Cmp(big.NewRat(101, 100)) != 0 || pegs[1].UpdatedAt != 100 {
		t.Fatalf("peg should reach target: %+v", pegs[1])
	}
	if !fee.Equal(decimal.RequireFromString("0.0105")) {
		t.Fatalf("fee mismatch: %s", fee)
	}
}

func TestRecalculatePegsIsRateLimited(t *testing.T) {
	recent := []model.Peg{peg(1, 1, 99)}
	latest := []model.Peg{peg(2, 1, 100)}

	fee, pegs, err := RecalculatePegs(recent, latest, 100, decimal.RequireFromString("0.001"), decimal.RequireFromString("0.0004"), decimal.RequireFromString("0.01"))
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if pegs[0].Rat().Cmp(big.NewRat(1001, 1000)) != 0 {
		t.Fatalf("peg should move 0.1%%: %s", pegs[0].Rat())
	}
	if !fee.Equal(decimal.RequireFromString("0.0014")) {
		t.Fatalf("fee mismatch: %s", fee)
	}

	down, pegs, err := RecalculatePegs([]model.Peg{peg(1, 1, 98)}, []model.Peg{peg(1, 2, 100)}, 100, decimal.RequireFromString("0.001"), decimal.Zero, decimal.Zero)
	if err != nil {
		t.Fatalf("recalculate down: %v", err)
	}
	if pegs[0].Rat().Cmp(big.NewRat(998, 1000)) != 0 {
		t.Fatalf("peg should move down 0.2%%: %s", pegs[0].Rat())
	}
	if !down.Equal(decimal.RequireFromString("0.002")) {
		t.Fatalf("fee mismatch: %s", down)
	}
}

func TestRecalculatePegsFeeBounds(t *testing.T) {
	recent := []model.Peg{peg(1, 1, 0), peg(1, 1, 0)}
	latest := []model.Peg{peg(3, 1, 0), peg(1, 3, 0)}
	poolFee := decimal.RequireFromString("0.0002")
	maxFee := decimal.RequireFromString("0.05")

	fee, _, err := RecalculatePegs(recent, latest, 1_000, decimal.RequireFromString("0.01"), poolFee, maxFee)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !fee.Equal(maxFee) {
		t.Fatalf("fee should be capped at %s, got %s", maxFee, fee)
	}

	fee, pegs, err := RecalculatePegs(recent, recent, 1_000, decimal.RequireFromString("0.01"), poolFee, maxFee)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !fee.Equal(poolFee) {
		t.Fatalf("fee without movement should equal pool fee, got %s", fee)
	}
	if pegs[0].UpdatedAt != 0 {
		t.Fatalf("unchanged peg block moved")
	}
}

func TestRecalculatePegsSameBlock(t *testing.T) {
	recent := []model.Peg{peg(1, 1, 100)}
	latest := []model.Peg{peg(2, 1, 100)}
	fee, pegs, err := RecalculatePegs(recent, latest, 100, decimal.RequireFromString("0.5"), decimal.RequireFromString("0.001"), decimal.Zero)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if pegs[0].Rat().Cmp(big.NewRat(1, 1)) != 0 {
		t.Fatalf("peg must not move without elapsed blocks")
	}
	if !fee.Equal(decimal.RequireFromString("0.001")) {
		t.Fatalf("fee mismatch: %s", fee)
	}
}

func TestRecalculatePegsErrors(t *testing.T) {
	if _, _, err := RecalculatePegs([]model.Peg{peg(1, 1, 0)}, nil, 1, decimal.Zero, decimal.Zero, decimal.Zero); err == nil {
		t.Fatalf("expected count mismatch error")
	}
	if _, _, err := RecalculatePegs([]model.Peg{peg(1, 0, 0)}, []model.Peg{peg(1, 1, 0)}, 1, decimal.Zero, decimal.Zero, decimal.Zero); err == nil {
		t.Fatalf("expected invalid recent ratio error")
	}
	if _, _, err := RecalculatePegs([]model.Peg{peg(1, 1, 0)}, []model.Peg{peg(0, 1, 0)}, 1, decimal.Zero, decimal.Zero, decimal.Zero); err == nil {
		t.Fatalf("expected invalid latest ratio error")
	}
}

func TestRecalculatePegsMaxFeeBelowPoolFee(t *testing.T) {
	recent := []model.Peg{peg(1, 1, 0)}
	latest := []model.Peg{peg(2, 1, 0)}
	poolFee := decimal.RequireFromString("0.02")

	if _, _, err := RecalculatePegs(recent, latest, 10, decimal.RequireFromString("0.01"), poolFee, decimal.RequireFromString("0.01")); err == nil {
		t.Fatalf("expected error for max fee below pool fee")
	}

	fee, _, err := RecalculatePegs(recent, latest, 10, decimal.RequireFromString("0.01"), poolFee, poolFee)
	if err != nil {
		t.Fatalf("recalculate: %v", err)
	}
	if !fee.Equal(poolFee) {
		t.Fatalf("fee should stay at the pool fee, got %s", fee)
	}
}
