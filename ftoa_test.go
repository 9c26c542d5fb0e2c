// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfloat

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func mustParse(t *testing.T, s string, prec uint) *Float {
	t.Helper()
	x, err := ParseFloat(s, 10, prec, ToNearestEven)
	if err != nil {
		t.Fatalf("ParseFloat(%q): %v", s, err)
	}
	return x
}

func TestDigitsSpecials(t *testing.T) {
	for i, tc := range []struct {
		x     *Float
		base  int
		n     int
		want  string
		wantE int
	}{
		{new(Float).SetNaN(), 10, 0, "nan", 0},
		{new(Float).SetNaN(), 2, 5, "nan", 0},
		{new(Float).SetInf(false), 10, 0, "inf", 0},
		{new(Float).SetInf(true), 16, 3, "-inf", 0},
		{new(Float).SetZero(false), 10, 0, "0", 0},
		{new(Float).SetZero(false), 10, 4, "0000", 0},
		{new(Float).SetZero(true), 16, 0, "-0", 0},
		{new(Float).SetZero(true), 10, 2, "-00", 0},
	} {
		digs, e, err := tc.x.Digits(tc.base, tc.n, ToNearestEven)
		if err != nil || digs != tc.want || e != tc.wantE {
			t.Errorf("case %d: got %q, %d, %v; want %q, %d", i, digs, e, err, tc.want, tc.wantE)
		}
	}
}

func TestDigitsErrors(t *testing.T) {
	x := mustParse(t, "1.5", 64)
	for i, tc := range []struct {
		base, n int
		rnd     RoundingMode
		param   string
	}{
		{1, 0, ToNearestEven, "base"},
		{MaxBase + 1, 0, ToNearestEven, "base"},
		{10, 1, ToNearestEven, "digits"},
		{10, -3, ToNearestEven, "digits"},
		{10, 0, Faithful, "rnd"},
		{10, 0, ToNearestAway, "rnd"},
	} {
		_, _, err := x.Digits(tc.base, tc.n, tc.rnd)
		var re *RangeError
		if !errors.As(err, &re) || re.Param != tc.param {
			t.Errorf("case %d: err = %v, want RangeError on %q", i, err, tc.param)
		}
	}
}

// decRound mirrors the Digits rounding contract on a decimal oracle
// value: n significant digits with rnd applied to the tail.
func decRound(d decimal.Decimal, n int, rnd RoundingMode) (string, int) {
	c := new(big.Int).Abs(d.Coefficient())
	e := len(c.String()) + int(d.Exponent())
	places := int32(n - e)

	var r decimal.Decimal
	switch rnd {
	case ToNearestEven:
		r = d.RoundBank(places)
	case ToZero:
		r = d.RoundDown(places)
	case AwayFromZero:
		r = d.RoundUp(places)
	case ToPositiveInf:
		r = d.RoundCeil(places)
	case ToNegativeInf:
		r = d.RoundFloor(places)
	}

	rc := new(big.Int).Abs(r.Coefficient())
	digs := rc.String()
	e = len(digs) + int(r.Exponent())
	switch {
	case len(digs) > n:
		// the rounding carried into a new decade
		digs = digs[:n]
	case len(digs) < n:
		for len(digs) < n {
			digs += "0"
		}
	}
	if d.IsNegative() {
		digs = "-" + digs
	}
	return digs, e
}

// TestDigitsDecimalOracle drives Digits over dyadic decimal values,
// which are exact in both representations, and compares every rounding
// mode against the decimal package.
func TestDigitsDecimalOracle(t *testing.T) {
	values := []string{
		"1", "-1", "8", "1024", "123.4375", "-123.4375",
		"0.5", "-0.5", "0.25", "0.015625", "-2048.09375",
		"0.00030517578125", // 2**-15 × 10
		"0.99609375",       // 255/256: rounding carries at few digits
		"-0.99609375",
		"524287.99951171875",
		"33554432", "-67108864.5",
	}
	for _, s := range values {
		x := mustParse(t, s, 128)
		d, err := decimal.NewFromString(s)
		if err != nil {
			t.Fatalf("decimal.NewFromString(%q): %v", s, err)
		}
		for n := 2; n <= 12; n++ {
			for _, mode := range allModes {
				digs, e, err := x.Digits(10, n, mode)
				if err != nil {
					t.Fatalf("Digits(%q, %d, %v): %v", s, n, mode, err)
				}
				wantDigs, wantE := decRound(d, n, mode)
				if digs != wantDigs || e != wantE {
					t.Errorf("Digits(%q, %d, %v) = %q, %d; want %q, %d",
						s, n, mode, digs, e, wantDigs, wantE)
				}
			}
		}
	}
}

func TestDigitsShortest(t *testing.T) {
	for i, tc := range []struct {
		s     string
		prec  uint
		base  int
		want  string
		wantE int
	}{
		{"0.1", 53, 10, "1", 0},
		{"-0.5", 64, 10, "-5", 0},
		{"2048", 64, 10, "2048", 4},
		{"0.25", 64, 10, "25", 0},
		{"255", 64, 16, "ff", 2},
		{"0.5", 64, 2, "1", 0},
		{"1e100", 53, 10, "1", 101},
	} {
		x := mustParse(t, tc.s, tc.prec)
		digs, e, err := x.Digits(tc.base, 0, ToNearestEven)
		if err != nil || digs != tc.want || e != tc.wantE {
			t.Errorf("case %d: Digits(%q) = %q, %d, %v; want %q, %d",
				i, tc.s, digs, e, err, tc.want, tc.wantE)
		}
	}

	// the shortest digits of double π are the famous 16
	pi := newFloat(53).SetFloat64(math.Pi, ToNearestEven)
	digs, e, err := pi.Digits(10, 0, ToNearestEven)
	if err != nil || digs != "3141592653589793" || e != 1 {
		t.Errorf("Digits(π) = %q, %d, %v", digs, e, err)
	}
}

// TestDigitsRoundTripAllPrecs checks the shortest-string contract: the
// digits parse back to the exact value at the source precision.
func TestDigitsRoundTripAllPrecs(t *testing.T) {
	x := mustParse(t, "2.718281828459045235360287471352662497757", 200)
	for _, prec := range []uint{2, 7, 24, 53, 64, 100, 200} {
		v := newFloat(uint32(prec)).Set(x, ToNearestEven)
		for _, base := range []int{2, 3, 10, 16, 36, 62} {
			digs, e, err := v.Digits(base, 0, ToNearestEven)
			if err != nil {
				t.Fatalf("prec %d base %d: %v", prec, base, err)
			}
			s := fmt.Sprintf("%s@%d", digs, e-len(digs))
			back, err := ParseFloat(s, base, prec, ToNearestEven)
			if err != nil {
				t.Fatalf("prec %d base %d: ParseFloat(%q): %v", prec, base, s, err)
			}
			if back.Cmp(v) != 0 {
				t.Errorf("prec %d base %d: %q does not round-trip", prec, base, s)
			}
		}
	}
}

// TestText compares the Text formats against math/big for values that
// are constructed identically on both sides.
func TestText(t *testing.T) {
	values := []string{
		"0", "-0", "1", "-1", "0.5", "0.05", "0.6", "0.4", "1.5",
		"9999.99", "0.000012345", "12345678901234567890", "1e-7",
		"1e21", "-1.25e-10", "3.14159265358979323846", "1e100",
	}
	formats := []struct {
		format byte
		prec   int
	}{
		{'e', 0}, {'e', 3}, {'e', 10},
		{'E', 2},
		{'f', 0}, {'f', 2}, {'f', 10},
		{'g', 0}, {'g', 3}, {'g', 10},
		{'G', 5},
		{'e', -1}, {'f', -1}, {'g', -1},
		{'b', 0}, {'p', 0},
	}
	for _, s := range values {
		for _, prec := range []uint{24, 53, 113} {
			x := mustParse(t, s, prec)
			b, _, err := big.ParseFloat(s, 10, prec, big.ToNearestEven)
			if err != nil {
				t.Fatal(err)
			}
			for _, f := range formats {
				got := x.Text(f.format, f.prec)
				want := b.Text(f.format, f.prec)
				if got != want {
					t.Errorf("%q prec %d: Text(%q, %d) = %q, want %q",
						s, prec, f.format, f.prec, got, want)
				}
			}
		}
	}
}

func TestTextSpecials(t *testing.T) {
	if got := new(Float).SetNaN().Text('g', -1); got != "NaN" {
		t.Errorf("NaN = %q", got)
	}
	if got := new(Float).SetInf(false).Text('e', 3); got != "+Inf" {
		t.Errorf("+Inf = %q", got)
	}
	if got := new(Float).SetInf(true).Text('f', 0); got != "-Inf" {
		t.Errorf("-Inf = %q", got)
	}
	if got := new(Float).SetZero(true).Text('g', -1); got != "-0" {
		t.Errorf("-0 = %q", got)
	}
	x := mustParse(t, "1.5", 64)
	if got := x.Text('x', 5); got != "%!x(*mpfloat.Float)" {
		t.Errorf("unknown format = %q", got)
	}
}

func TestFormat(t *testing.T) {
	values := []string{"0", "1", "-1", "1.5", "-0.05", "1234.5678", "1e30"}
	specs := []string{
		"%e", "%E", "%f", "%F", "%g", "%G", "%v", "%b", "%p",
		"%.2e", "%.0f", "%.3g", "%12.4e", "%-12.4f|", "%+g", "% g", "%012.3f",
	}
	for _, s := range values {
		x := mustParse(t, s, 64)
		b, _, err := big.ParseFloat(s, 10, 64, big.ToNearestEven)
		if err != nil {
			t.Fatal(err)
		}
		for _, spec := range specs {
			got := fmt.Sprintf(spec, x)
			want := fmt.Sprintf(spec, b)
			if got != want {
				t.Errorf("Sprintf(%q, %s) = %q, want %q", spec, s, got, want)
			}
		}
	}

	// unsupported verb
	x := mustParse(t, "1.5", 64)
	if got := fmt.Sprintf("%d", x); got != "%!d(*mpfloat.Float=1.5)" {
		t.Errorf("%%d = %q", got)
	}
}

func TestStringDefault(t *testing.T) {
	x := mustParse(t, "12.25", 64)
	if got := x.String(); got != "12.25" {
		t.Errorf("String() = %q", got)
	}
}
