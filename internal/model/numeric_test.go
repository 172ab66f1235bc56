package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNumericAcceptsNumbersStringsAndNull(t *testing.T) {
	var payload struct {
		A Numeric `json:"a"`
		B Numeric `json:"b"`
		C Numeric `json:"c"`
		D Numeric `json:"d"`
	}
	data := []byte(`{"a": 12, "b": "340282366920938463463374607431768211455", "c": null, "d": 0.25}`)
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if v, err := payload.A.Uint64(); err != nil || v != 12 {
		t.Fatalf("a mismatch: %d %v", v, err)
	}
	big, err := payload.B.BigInt()
	if err != nil || big.String() != "340282366920938463463374607431768211455" {
		t.Fatalf("b mismatch: %v %v", big, err)
	}
	if !payload.C.IsZero() {
		t.Fatalf("c should be absent")
	}
	if d, err := payload.D.Decimal(); err != nil || d.String() != "0.25" {
		t.Fatalf("d mismatch: %v %v", d, err)
	}
}

func TestNumericEncodesAsString(t *testing.T) {
	out, err := json.Marshal(struct {
		V Numeric `json:"v"`
	}{V: "1000"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"v":"1000"}` {
		t.Fatalf("unexpected encoding: %s", out)
	}
}

func TestRawPegJSON(t *testing.T) {
	var pegs []RawPeg
	if err := json.Unmarshal([]byte(`[[["1","2"],"100"],[[3,4],200]]`), &pegs); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(pegs) != 2 {
		t.Fatalf("expected 2 pegs, got %d", len(pegs))
	}
	if pegs[1].Numerator != "3" || pegs[1].Denominator != "4" || pegs[1].UpdatedAt != "200" {
		t.Fatalf("peg mismatch: %+v", pegs[1])
	}

	out, err := json.Marshal(pegs[0])
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `[["1","2"],"100"]` {
		t.Fatalf("unexpected encoding: %s", out)
	}

	var bad RawPeg
	if err := json.Unmarshal([]byte(`[["1"],"100"]`), &bad); err == nil {
		t.Fatalf("expected error for short ratio")
	}
}

func TestParsePoolType(t *testing.T) {
	cases := map[string]PoolType{
		"xyk":             PoolTypeConstantProduct,
		"XYK":             PoolTypeConstantProduct,
		"ConstantProduct": PoolTypeConstantProduct,
		"lbp":             PoolTypeWeighted,
		"Stableswap":      PoolTypeStable,
		"STABLE":          PoolTypeStable,
		"Omnipool":        PoolTypeHubAsset,
		"hubAsset":        PoolTypeHubAsset,
		"Aave":            PoolTypeLendingWrapped,
	}
	for tag, want := range cases {
		got, err := ParsePoolType(tag)
		if err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
		if got != want {
			t.Fatalf("%s: got %s, want %s", tag, got, want)
		}
	}

	if _, err := ParsePoolType("curve"); !errors.Is(err, ErrUnknownPoolType) {
		t.Fatalf("expected ErrUnknownPoolType, got %v", err)
	}
	if _, err := ParsePoolType(""); !errors.Is(err, ErrUnknownPoolType) {
		t.Fatalf("expected ErrUnknownPoolType for empty tag, got %v", err)
	}
}

func TestAssetClassTradable(t *testing.T) {
	for _, tag := range []string{"Token", "Bond", "External", "StableSwap", "Erc20"} {
		class, err := ParseAssetClass(tag)
		if err != nil {
			t.Fatalf("%s: %v", tag, err)
		}
		if !class.Tradable() {
			t.Fatalf("%s should be tradable", tag)
		}
	}
	class, err := ParseAssetClass("XYK")
	if err != nil {
		t.Fatalf("xyk: %v", err)
	}
	if class.Tradable() {
		t.Fatalf("share tokens are not tradable")
	}
}
