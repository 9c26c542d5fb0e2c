// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfloat

import (
	"math/rand"
	"testing"
)

func TestSqrtExact(t *testing.T) {
	// perfect squares come out exact
	for _, v := range []uint64{0, 1, 4, 9, 16, 100, 65536, 1 << 31, 3000000000} {
		x := newFloat(128).SetUint64(v*v, ToNearestEven)
		z := newFloat(128).Sqrt(x, ToNearestEven)
		want := newFloat(128).SetUint64(v, ToNearestEven)
		if z.Cmp(want) != 0 {
			t.Errorf("√%d = %s, want %d", v*v, z, v)
		}
	}
	// dyadic squares too
	x := mustParse(t, "2.25", 64)
	z := newFloat(64).Sqrt(x, ToNearestEven)
	if want := mustParse(t, "1.5", 64); z.Cmp(want) != 0 {
		t.Errorf("√2.25 = %s", z)
	}
}

func TestSqrtSpecials(t *testing.T) {
	z := newFloat(64)

	if !z.Sqrt(new(Float).SetNaN(), ToNearestEven).IsNaN() {
		t.Error("√NaN is not NaN")
	}
	if !z.Sqrt(newFloat(64).SetInt64(-4, ToNearestEven), ToNearestEven).IsNaN() {
		t.Error("√-4 is not NaN")
	}
	if !z.Sqrt(new(Float).SetInf(true), ToNearestEven).IsNaN() {
		t.Error("√-Inf is not NaN")
	}
	if v := z.Sqrt(new(Float).SetInf(false), ToNearestEven); !v.IsInf() || v.Signbit() {
		t.Errorf("√+Inf = %v", v)
	}
	if v := z.Sqrt(new(Float).SetZero(false), ToNearestEven); !v.IsZero() || v.Signbit() {
		t.Errorf("√+0 = %v", v)
	}
	if v := z.Sqrt(new(Float).SetZero(true), ToNearestEven); !v.IsZero() || !v.Signbit() {
		t.Errorf("√-0 = %v", v)
	}
}

// TestSqrtResidual bounds the relative error of z = √x by squaring z at
// doubled precision: |z² - x| must stay below 4·x·2**-prec.
func TestSqrtResidual(t *testing.T) {
	rnd := rand.New(rand.NewSource(30))
	for i := 0; i < 200; i++ {
		prec := uint32(2 + rnd.Intn(500))
		x, _ := randPair(t, rnd, uint(prec))
		x.Abs(x, ToNearestEven)
		if x.IsZero() {
			continue
		}

		z := newFloat(prec).Sqrt(x, ToNearestEven)

		wide := 2*prec + 8
		sq := newFloat(wide).Mul(z, z, ToNearestEven) // exact: 2·prec bits suffice
		diff := newFloat(wide).Sub(sq, x, ToNearestEven)
		bound := newFloat(wide).SetMantExp(x, 2-int(prec), ToNearestEven)
		if diff.CmpAbs(bound) > 0 {
			t.Errorf("prec %d: √%s = %s: residual %s exceeds bound %s",
				prec, x.Text('p', 0), z.Text('p', 0), diff.Text('p', 0), bound.Text('p', 0))
		}
	}
}

// TestSqrtIdempotentPrec checks the aliasing and precision-adoption
// contract of Sqrt.
func TestSqrtIdempotentPrec(t *testing.T) {
	x := mustParse(t, "2", 100)

	// z aliasing x
	z := newFloat(100).Set(x, ToNearestEven)
	z.Sqrt(z, ToNearestEven)
	ref := newFloat(100).Sqrt(x, ToNearestEven)
	if z.Cmp(ref) != 0 {
		t.Errorf("aliased Sqrt = %s, want %s", z, ref)
	}

	// zero-precision destination adopts x's precision
	var a Float
	a.Sqrt(x, ToNearestEven)
	if a.Prec() != 100 || a.Cmp(ref) != 0 {
		t.Errorf("adopted prec = %d", a.Prec())
	}

	// destination precision wins over the operand's
	b := newFloat(20).Sqrt(x, ToNearestEven)
	c := newFloat(20).Set(ref, ToNearestEven)
	if b.Cmp(c) != 0 {
		t.Errorf("√2 at prec 20 = %s, want %s", b, c)
	}
}

func TestSqrtOddExponents(t *testing.T) {
	// exercise both parities of the exponent split around very large and
	// very small magnitudes
	for _, e := range []int{-5001, -5000, -1, 0, 1, 4999, 5000} {
		x := mustParse(t, "1.5", 120)
		x.SetMantExp(x, e, ToNearestEven)
		z := newFloat(120).Sqrt(x, ToNearestEven)

		wide := uint32(256)
		sq := newFloat(wide).Mul(z, z, ToNearestEven)
		diff := newFloat(wide).Sub(sq, x, ToNearestEven)
		bound := newFloat(wide).SetMantExp(x, 2-120, ToNearestEven)
		if diff.CmpAbs(bound) > 0 {
			t.Errorf("exp %d: residual too large: %s", e, diff.Text('p', 0))
		}
	}
}

func TestSqrtMonotone(t *testing.T) {
	// √ is monotone; correctly rounded neighbors must not invert
	rnd := rand.New(rand.NewSource(31))
	for i := 0; i < 200; i++ {
		v := rnd.Uint64()
		x := newFloat(64).SetUint64(v, ToNearestEven)
		y := newFloat(64).SetUint64(v+uint64(1+rnd.Intn(1000)), ToNearestEven)
		sx := newFloat(64).Sqrt(x, ToNearestEven)
		sy := newFloat(64).Sqrt(y, ToNearestEven)
		if sx.Cmp(sy) > 0 {
			t.Errorf("√%d > √ of larger operand (%s > %s)", v, sx.Text('p', 0), sy.Text('p', 0))
		}
	}
}
