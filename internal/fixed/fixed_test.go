package fixed

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPctFromPermill(t *testing.T) {
	cases := []struct {
		ppm  int64
		want string
	}{
		{ppm: 2500, want: "0.25"},
		{ppm: 50000, want: "5"},
		{ppm: 1, want: "0.0001"},
		{ppm: 0, want: "0"},
	}
	for _, tc := range cases {
		if got := PctFromPermill(tc.ppm).String(); got != tc.want {
			t.Fatalf("PctFromPermill(%d) = %s, want %s", tc.ppm, got, tc.want)
		}
	}
}

func TestPermillPctRoundTrip(t *testing.T) {
	for _, ppm := range []int64{0, 1, 250, 2500, 999_999} {
		if got := FromPct(PctFromPermill(ppm)); !got.Equal(FromPermill(ppm)) {
			t.Fatalf("pct round trip %d: %s != %s", ppm, got, FromPermill(ppm))
		}
		if got := ToPct(FromPermill(ppm)); !got.Equal(PctFromPermill(ppm)) {
			t.Fatalf("fraction round trip %d: %s != %s", ppm, got, PctFromPermill(ppm))
		}
	}
}

func TestRoundModes(t *testing.T) {
	d := decimal.RequireFromString("0.25059")
	if got := Round(d, 3, RoundDown).String(); got != "0.25" {
		t.Fatalf("round down: %s", got)
	}
	if got := Round(d, 3, roundUp).String(); got != "0.251" {
		t.Fatalf("round up: %s", got)
	}
	if got := Round(d, 4, roundHalfUp).String(); got != "0.2506" {
		t.Fatalf("round half up: %s", got)
	}
}

func TestDivRounding(t *testing.T) {
	one := decimal.NewFromInt(1)
	three := decimal.NewFromInt(3)
	two := decimal.NewFromInt(2)

	cases := []struct {
		name string
		a, b decimal.Decimal
		mode Rounding
		want string
	}{
		{name: "down", a: two, b: three, mode: RoundDown, want: "0.666"},
		{name: "up", a: one, b: three, mode: roundUp, want: "0.334"},
		{name: "half up", a: two, b: three, mode: roundHalfUp, want: "0.667"},
		{name: "half up below", a: one, b: three, mode: roundHalfUp, want: "0.333"},
		{name: "exact", a: one, b: decimal.NewFromInt(4), mode: roundUp, want: "0.25"},
		{name: "negative up", a: one.Neg(), b: three, mode: roundUp, want: "-0.334"},
	}
	for _, tc := range cases {
		got, err := Div(tc.a, tc.b, 3, tc.mode)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestDivByZero(t *testing.T) {
	if _, err := Div(decimal.NewFromInt(1), decimal.Zero, 2, RoundDown); err == nil {
		t.Fatalf("expected division by zero error")
	}
}

func TestFractionPct(t *testing.T) {
	if got := FractionPct(3, 1000, 18); !got.Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("3/1000 = %s", got)
	}
	if got := FractionPct(1, 3, 4); !got.Equal(decimal.RequireFromString("33.3333")) {
		t.Fatalf("1/3 = %s", got)
	}
	if got := FractionPct(1, 0, 4); !got.IsZero() {
		t.Fatalf("zero denominator should yield zero, got %s", got)
	}
}

func TestParse(t *testing.T) {
	if _, err := ParseDecimal("abc"); err == nil {
		t.Fatalf("expected parse error")
	}
	d, err := ParseDecimal(" 1.50 ")
	if err != nil || !d.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("parse decimal: %v %s", err, d)
	}
	n, err := ParseBigInt("340282366920938463463374607431768211455")
	if err != nil || n.Cmp(MaxU128()) != 0 {
		t.Fatalf("parse u128 max: %v %s", err, n)
	}
	if _, err := ParseBigInt("1.5"); err == nil {
		t.Fatalf("expected int parse error")
	}
}

func TestClamp(t *testing.T) {
	lo := decimal.NewFromInt(1)
	hi := decimal.NewFromInt(5)
	if got := Clamp(decimal.NewFromInt(9), lo, hi); !got.Equal(hi) {
		t.Fatalf("clamp high: %s", got)
	}
	if got := Clamp(decimal.Zero, lo, hi); !got.Equal(lo) {
		t.Fatalf("clamp low: %s", got)
	}
	if got := Clamp(decimal.NewFromInt(3), lo, hi); !got.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("clamp mid: %s", got)
	}
}
