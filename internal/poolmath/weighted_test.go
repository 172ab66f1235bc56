package poolmath

import (
	"math/big"
	"testing"
)

func TestPairWeightsScenario(t *testing.T) {
	acc, dist, err := PairWeights(100, 200, 20_000_000, 80_000_000, 150)
	if err != nil {
		t.Fatalf("pair weights: %v", err)
	}
	if acc != 50_000_000 || dist != 50_000_000 {
		t.Fatalf("weights mismatch: accumulated %d, distributed %d", acc, dist)
	}
}

func TestPairWeightsSumToTotal(t *testing.T) {
	cases := []struct {
		start, end     uint64
		initial, final uint64
	}{
		{start: 100, end: 200, initial: 20_000_000, final: 80_000_000},
		{start: 10, end: 1_000_003, initial: 90_000_000, final: 10_000_000},
		{start: 5, end: 8, initial: 33_333_333, final: 66_666_667},
		{start: 0, end: 0, initial: 50_000_000, final: 1},
	}
	for _, tc := range cases {
		for block := uint64(0); block < tc.end+5; block += 1 + tc.end/97 {
			acc, dist, err := PairWeights(tc.start, tc.end, tc.initial, tc.final, block)
			if err != nil {
				t.Fatalf("pair weights: %v", err)
			}
			if acc+dist != TotalWeight {
				t.Fatalf("sum %d at block %d for %+v", acc+dist, block, tc)
			}
		}
	}
}

func TestLinearWeightClampAndMonotonic(t *testing.T) {
	const start, end = 1_000, 2_000
	const initial, final = 10_000_000, 70_000_000

	for _, block := range []uint64{0, 500, start} {
		w, _ := LinearWeight(start, end, initial, final, block)
		if w != initial {
			t.Fatalf("block %d: expected initial weight, got %d", block, w)
		}
	}
	for _, block := range []uint64{end, end + 1, 10 * end} {
		w, _ := LinearWeight(start, end, initial, final, block)
		if w != final {
			t.Fatalf("block %d: expected final weight, got %d", block, w)
		}
	}

	prev := uint64(initial)
	for block := uint64(start + 1); block < end; block++ {
		w, _ := LinearWeight(start, end, initial, final, block)
		if w <= initial || w >= final {
			t.Fatalf("block %d: weight %d not strictly inside (%d, %d)", block, w, initial, final)
		}
		if w < prev {
			t.Fatalf("block %d: weight decreased from %d to %d", block, prev, w)
		}
		prev = w
	}
}

func TestLinearWeightDecreasing(t *testing.T) {
	prev := uint64(80_000_000)
	for block := uint64(101); block < 200; block++ {
		w, _ := LinearWeight(100, 200, 80_000_000, 20_000_000, block)
		if w >= 80_000_000 || w <= 20_000_000 {
			t.Fatalf("block %d: weight %d outside bounds", block, w)
		}
		if w > prev {
			t.Fatalf("block %d: weight increased", block)
		}
		prev = w
	}
}

func TestLinearWeightRejectsOverweight(t *testing.T) {
	if _, err := LinearWeight(0, 10, TotalWeight+1, 0, 5); err == nil {
		t.Fatalf("expected error for weight above total")
	}
}

func TestAmplificationRamp(t *testing.T) {
	initial := big.NewInt(100)
	final := big.NewInt(1_000)

	if got := Amplification(initial, final, 50, 150, 10); got.Cmp(initial) != 0 {
		t.Fatalf("before start: %s", got)
	}
	if got := Amplification(initial, final, 50, 150, 50); got.Cmp(initial) != 0 {
		t.Fatalf("at start: %s", got)
	}
	if got := Amplification(initial, final, 50, 150, 150); got.Cmp(final) != 0 {
		t.Fatalf("at end: %s", got)
	}
	if got := Amplification(initial, final, 50, 150, 10_000); got.Cmp(final) != 0 {
		t.Fatalf("after end: %s", got)
	}
	if got := Amplification(initial, final, 50, 150, 100); got.Int64() != 550 {
		t.Fatalf("midpoint: %s", got)
	}

	prev := int64(100)
	for block := uint64(51); block < 150; block++ {
		got := Amplification(initial, final, 50, 150, block).Int64()
		if got <= 100 || got >= 1_000 || got < prev {
			t.Fatalf("block %d: amplification %d", block, got)
		}
		prev = got
	}

	// Ramping down truncates toward the initial value.
	if got := Amplification(big.NewInt(1_000), big.NewInt(997), 0, 2, 1); got.Int64() != 999 {
		t.Fatalf("ramp down midpoint: %s", got)
	}
}

func TestLinearRampDoesNotAliasInputs(t *testing.T) {
	initial := big.NewInt(5)
	got := LinearRamp(initial, big.NewInt(9), 10, 20, 0)
	got.SetInt64(42)
	if initial.Int64() != 5 {
		t.Fatalf("initial mutated to %s", initial)
	}
}
