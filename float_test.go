// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfloat

import (
	"errors"
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"testing"
)

// Most value-level tests check against math/big.Float: for finite
// operands and a common precision the two must agree bit for bit, which
// the 'b' format exposes directly.

var allModes = [...]RoundingMode{ToNearestEven, ToZero, ToPositiveInf, ToNegativeInf, AwayFromZero}

func bigMode(rnd RoundingMode) big.RoundingMode {
	switch rnd {
	case ToNearestEven:
		return big.ToNearestEven
	case ToZero:
		return big.ToZero
	case ToPositiveInf:
		return big.ToPositiveInf
	case ToNegativeInf:
		return big.ToNegativeInf
	case AwayFromZero:
		return big.AwayFromZero
	}
	panic("no big.RoundingMode for " + rnd.String())
}

// toBig returns the exact value of finite x as a big.Float of the same
// precision.
func toBig(t *testing.T, x *Float) *big.Float {
	t.Helper()
	b, _, err := big.ParseFloat(x.Text('b', 0), 0, uint(x.prec), big.ToNearestEven)
	if err != nil {
		t.Fatalf("ParseFloat(%q): %v", x.Text('b', 0), err)
	}
	return b
}

// eqBig compares x against the reference result b: same bits via the
// 'b' format, same rounding accuracy.
func eqBig(t *testing.T, op string, x *Float, b *big.Float) {
	t.Helper()
	if got, want := x.Text('b', 0), b.Text('b', 0); got != want {
		t.Errorf("%s = %s, want %s", op, got, want)
	}
	if got, want := int(x.Acc()), int(b.Acc()); got != want {
		t.Errorf("%s: acc = %v, want %v", op, x.Acc(), b.Acc())
	}
}

func TestNewBounds(t *testing.T) {
	for _, prec := range []uint{0, 1} {
		_, err := New(prec)
		var re *RangeError
		if !errors.As(err, &re) {
			t.Errorf("New(%d): err = %v, want RangeError", prec, err)
		} else if re.Param != "prec" {
			t.Errorf("New(%d): param = %q, want %q", prec, re.Param, "prec")
		}
	}
	z, err := New(MinPrec)
	if err != nil || z.Prec() != MinPrec {
		t.Errorf("New(MinPrec) = %v, %v", z, err)
	}
	if !z.IsZero() || z.Signbit() {
		t.Errorf("New(MinPrec) is not +0: %v", z)
	}
	if err := CheckPrec(1000); err != nil {
		t.Errorf("CheckPrec(1000) = %v", err)
	}
}

func TestZeroValue(t *testing.T) {
	var x Float
	if !x.IsZero() || x.Sign() != 0 || x.Signbit() {
		t.Errorf("zero value is not +0")
	}
	if s := x.String(); s != "0" {
		t.Errorf("zero value String = %q", s)
	}
	// the first setter determines the precision
	x.SetUint64(123, ToNearestEven)
	if x.Prec() != 64 {
		t.Errorf("prec after SetUint64 = %d, want 64", x.Prec())
	}
}

func TestSetUint64Rounding(t *testing.T) {
	rnd := rand.New(rand.NewSource(10))
	for i := 0; i < 1000; i++ {
		v := rnd.Uint64()
		prec := uint(2 + rnd.Intn(70))
		for _, mode := range allModes {
			z := newFloat(uint32(prec)).SetUint64(v, mode)
			b := new(big.Float).SetPrec(prec).SetMode(bigMode(mode)).SetUint64(v)
			eqBig(t, "SetUint64("+strconv.FormatUint(v, 10)+")", z, b)
		}
	}
}

func TestSetInt64Rounding(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		v := int64(rnd.Uint64())
		prec := uint(2 + rnd.Intn(70))
		for _, mode := range allModes {
			z := newFloat(uint32(prec)).SetInt64(v, mode)
			b := new(big.Float).SetPrec(prec).SetMode(bigMode(mode)).SetInt64(v)
			eqBig(t, "SetInt64("+strconv.FormatInt(v, 10)+")", z, b)
		}
	}
}

func TestSetFloat64(t *testing.T) {
	values := []float64{0, 1, -1, 0.1, -0.1, 0.5, 1.5, math.Pi, math.E,
		math.MaxFloat64, math.SmallestNonzeroFloat64, 1e300, -1e-300}
	for _, v := range values {
		for _, prec := range []uint{2, 24, 53, 64} {
			for _, mode := range allModes {
				z := newFloat(uint32(prec)).SetFloat64(v, mode)
				b := new(big.Float).SetPrec(prec).SetMode(bigMode(mode)).SetFloat64(v)
				eqBig(t, "SetFloat64("+strconv.FormatFloat(v, 'g', -1, 64)+")", z, b)
			}
		}
	}

	// specials
	z := new(Float).SetFloat64(math.NaN(), ToNearestEven)
	if !z.IsNaN() {
		t.Error("SetFloat64(NaN) is not NaN")
	}
	z.SetFloat64(math.Inf(-1), ToNearestEven)
	if !z.IsInf() || !z.Signbit() {
		t.Error("SetFloat64(-Inf) is not -Inf")
	}
	z.SetFloat64(math.Copysign(0, -1), ToNearestEven)
	if !z.IsZero() || !z.Signbit() {
		t.Error("SetFloat64(-0) is not -0")
	}
}

func TestSetFloat64LowPrec(t *testing.T) {
	// 0.1 rounded to 24 bits is float32(0.1), which is above 0.1
	z := newFloat(24).SetFloat64(0.1, ToNearestEven)
	f, acc := z.Float64()
	if f != float64(float32(0.1)) || acc != Exact {
		t.Errorf("got %g (%v), want %g (Exact)", f, acc, float64(float32(0.1)))
	}
	if z.Acc() != Above {
		t.Errorf("acc = %v, want Above", z.Acc())
	}
}

func TestSetInt(t *testing.T) {
	rnd := rand.New(rand.NewSource(12))
	for i := 0; i < 500; i++ {
		v := new(big.Int).Rand(rnd, new(big.Int).Lsh(big.NewInt(1), 200))
		if i%2 == 0 {
			v.Neg(v)
		}
		prec := uint(2 + rnd.Intn(100))
		for _, mode := range allModes {
			z := newFloat(uint32(prec)).SetInt(v, mode)
			b := new(big.Float).SetPrec(prec).SetMode(bigMode(mode)).SetInt(v)
			eqBig(t, "SetInt("+v.String()+")", z, b)
		}
	}
}

func TestSetAndCopy(t *testing.T) {
	x := newFloat(100).SetFloat64(math.Pi, ToNearestEven)

	// Set at lower precision rounds
	z := newFloat(10).Set(x, ToZero)
	b := new(big.Float).SetPrec(10).SetMode(big.ToZero).Set(toBig(t, x))
	eqBig(t, "Set", z, b)

	// Copy adopts the precision
	var c Float
	c.Copy(x)
	if c.Prec() != 100 || c.Cmp(x) != 0 {
		t.Errorf("Copy: prec = %d, cmp = %d", c.Prec(), c.Cmp(x))
	}

	// Set into a zero-precision destination adopts x's precision
	var d Float
	d.Set(x, ToNearestEven)
	if d.Prec() != 100 || d.Cmp(x) != 0 || d.Acc() != Exact {
		t.Errorf("Set into zero prec: prec = %d, acc = %v", d.Prec(), d.Acc())
	}
}

func TestAbsNeg(t *testing.T) {
	x := newFloat(64).SetFloat64(-1.5, ToNearestEven)
	z := newFloat(64).Abs(x, ToNearestEven)
	if z.Sign() != 1 || z.Signbit() {
		t.Errorf("Abs(-1.5) = %v", z)
	}
	z.Neg(z, ToNearestEven)
	if z.Sign() != -1 {
		t.Errorf("Neg(1.5) = %v", z)
	}
	// -0 and specials
	z.SetZero(true).Abs(z, ToNearestEven)
	if z.Signbit() {
		t.Error("Abs(-0) is negative")
	}
	z.SetInf(false).Neg(z, ToNearestEven)
	if !z.IsInf() || !z.Signbit() {
		t.Errorf("Neg(+Inf) = %v", z)
	}
	z.SetNaN().Neg(z, ToNearestEven)
	if !z.IsNaN() || z.Signbit() {
		t.Errorf("Neg(NaN) = %v", z)
	}

	// Neg rounds with the flipped sign: -(1 + ulp tail) under
	// ToNegativeInf rounds the magnitude up
	x = newFloat(64).SetUint64(1<<63|1, ToNearestEven)
	z = newFloat(8).Neg(x, ToNegativeInf)
	b := new(big.Float).SetPrec(8).SetMode(big.ToNegativeInf).Neg(toBig(t, x))
	eqBig(t, "Neg", z, b)
}

func TestMantExp(t *testing.T) {
	x := newFloat(64).SetFloat64(12.5, ToNearestEven)
	var m Float
	exp := x.MantExp(&m)
	if exp != 4 {
		t.Errorf("MantExp(12.5) exp = %d, want 4", exp)
	}
	f, _ := m.Float64()
	if f != 12.5/16 {
		t.Errorf("MantExp(12.5) mant = %g, want %g", f, 12.5/16)
	}
	if m.Prec() != 64 {
		t.Errorf("mant prec = %d, want 64", m.Prec())
	}

	// reassemble
	var z Float
	z.SetMantExp(&m, exp, ToNearestEven)
	if z.Cmp(x) != 0 {
		t.Errorf("SetMantExp(MantExp(x)) = %v, want %v", &z, x)
	}

	// specials have exponent 0
	for _, x := range []*Float{new(Float).SetZero(true), new(Float).SetInf(true), new(Float).SetNaN()} {
		if e := x.MantExp(nil); e != 0 {
			t.Errorf("MantExp(%v) = %d, want 0", x, e)
		}
	}

	// x and mant may be the same
	x.SetFloat64(12.5, ToNearestEven)
	if e := x.MantExp(x); e != 4 || x.exp != 0 {
		t.Errorf("aliased MantExp: exp = %d, x.exp = %d", e, x.exp)
	}
}

func TestExponentOverflow(t *testing.T) {
	// largest: 0.5 × 2**MaxExp doubled
	one := newFloat(16).SetUint64(1, ToNearestEven)
	x := newFloat(16).SetMantExp(one, MaxExp-1, ToNearestEven)
	if x.MantExp(nil) != MaxExp {
		t.Fatalf("x exp = %d, want MaxExp", x.MantExp(nil))
	}
	two := newFloat(16).SetUint64(2, ToNearestEven)

	z := newFloat(16).Mul(x, two, ToNearestEven)
	if !z.IsInf() || z.Signbit() || z.Acc() != Above {
		t.Errorf("overflow ToNearestEven: %v (%v)", z, z.Acc())
	}

	// ToZero clamps to the largest finite value
	z.Mul(x, two, ToZero)
	if z.IsInf() || z.Acc() != Below || z.MantExp(nil) != MaxExp {
		t.Errorf("overflow ToZero: %v (%v)", z, z.Acc())
	}
	// all mantissa bits set
	if got, _, err := z.Digits(2, 16, ToNearestEven); err != nil || got != "1111111111111111" {
		t.Errorf("largest mantissa = %q, %v", got, err)
	}

	// a negative overflow under ToPositiveInf also clamps
	nx := newFloat(16).Neg(x, ToNearestEven)
	z.Mul(nx, two, ToPositiveInf)
	if z.IsInf() || z.Acc() != Above || z.Sign() != -1 {
		t.Errorf("negative overflow ToPositiveInf: %v (%v)", z, z.Acc())
	}
	// and AwayFromZero produces -Inf
	z.Mul(nx, two, AwayFromZero)
	if !z.IsInf() || !z.Signbit() || z.Acc() != Below {
		t.Errorf("negative overflow AwayFromZero: %v (%v)", z, z.Acc())
	}
}

func TestExponentUnderflow(t *testing.T) {
	// smallest: 0.5 × 2**MinExp
	one := newFloat(16).SetUint64(1, ToNearestEven)
	x := newFloat(16).SetMantExp(one, MinExp-1, ToNearestEven)
	if x.MantExp(nil) != MinExp {
		t.Fatalf("x exp = %d, want MinExp", x.MantExp(nil))
	}
	two := newFloat(16).SetUint64(2, ToNearestEven)

	z := newFloat(16).Quo(x, two, ToNearestEven)
	if !z.IsZero() || z.Signbit() || z.Acc() != Below {
		t.Errorf("underflow ToNearestEven: %v (%v)", z, z.Acc())
	}

	// AwayFromZero keeps the smallest magnitude
	z.Quo(x, two, AwayFromZero)
	if z.Cmp(x) != 0 || z.Acc() != Above {
		t.Errorf("underflow AwayFromZero: %v (%v)", z, z.Acc())
	}

	// a negative underflow under ToNegativeInf keeps the magnitude
	nx := newFloat(16).Neg(x, ToNearestEven)
	z.Quo(nx, two, ToNegativeInf)
	if z.Cmp(nx) != 0 || z.Acc() != Below {
		t.Errorf("negative underflow ToNegativeInf: %v (%v)", z, z.Acc())
	}
	// and ToPositiveInf flushes it to -0
	z.Quo(nx, two, ToPositiveInf)
	if !z.IsZero() || !z.Signbit() || z.Acc() != Above {
		t.Errorf("negative underflow ToPositiveInf: %v (%v)", z, z.Acc())
	}
}

func TestFloat64(t *testing.T) {
	for _, s := range []string{
		"0", "1", "-1", "0.5", "1.5", "12345.6789",
		"1e300", "-1e300", "1e-300", "1e-310", "-1e-310", "4.9e-324",
		"1e-323", "2.4e-324", "1e-350", "2e308", "-2e308",
	} {
		x, err := ParseFloat(s, 10, 200, ToNearestEven)
		if err != nil {
			t.Fatalf("ParseFloat(%q): %v", s, err)
		}
		b, _, err := big.ParseFloat(s, 10, 200, big.ToNearestEven)
		if err != nil {
			t.Fatalf("big.ParseFloat(%q): %v", s, err)
		}
		got, gotAcc := x.Float64()
		want, wantAcc := b.Float64()
		if got != want || math.Signbit(got) != math.Signbit(want) || int(gotAcc) != int(wantAcc) {
			t.Errorf("Float64(%q) = %g (%v), want %g (%v)", s, got, gotAcc, want, wantAcc)
		}
	}

	// specials
	if f, acc := new(Float).SetNaN().Float64(); !math.IsNaN(f) || acc != Exact {
		t.Errorf("NaN.Float64() = %g (%v)", f, acc)
	}
	if f, acc := new(Float).SetInf(true).Float64(); !math.IsInf(f, -1) || acc != Exact {
		t.Errorf("-Inf.Float64() = %g (%v)", f, acc)
	}
	if f, acc := new(Float).SetZero(true).Float64(); f != 0 || !math.Signbit(f) || acc != Exact {
		t.Errorf("-0.Float64() = %g (%v)", f, acc)
	}
}

func TestClear(t *testing.T) {
	z := newFloat(64).SetFloat64(1.5, ToNearestEven)
	z.Clear()
	if !z.IsZero() || z.Signbit() || z.Prec() != 64 {
		t.Errorf("after Clear: %v, prec %d", z, z.Prec())
	}
	z.Clear() // idempotent
	z.SetUint64(7, ToNearestEven)
	f, _ := z.Float64()
	if f != 7 {
		t.Errorf("reuse after Clear = %g", f)
	}
}

func TestReservedModesPanic(t *testing.T) {
	for _, rnd := range []RoundingMode{Faithful, ToNearestAway, RoundingMode(42)} {
		func() {
			defer func() {
				err, ok := recover().(error)
				var re *RangeError
				if !ok || !errors.As(err, &re) || re.Param != "rnd" {
					t.Errorf("Set(%v): recover = %v, want RangeError", rnd, err)
				}
			}()
			new(Float).SetUint64(1, rnd)
		}()
	}
	if err := CheckRounding(AwayFromZero); err != nil {
		t.Errorf("CheckRounding(AwayFromZero) = %v", err)
	}
	if err := CheckRounding(Faithful); err == nil {
		t.Error("CheckRounding(Faithful) = nil")
	}
}

func TestModeAccuracyStrings(t *testing.T) {
	if ToNearestEven.String() != "ToNearestEven" || AwayFromZero.String() != "AwayFromZero" {
		t.Error("RoundingMode.String broken")
	}
	if RoundingMode(99).String() != "RoundingMode(99)" {
		t.Errorf("RoundingMode(99).String() = %q", RoundingMode(99).String())
	}
	if Below.String() != "Below" || Exact.String() != "Exact" || Above.String() != "Above" {
		t.Error("Accuracy.String broken")
	}
}
