// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfloat

import "math"

var threeFloat = new(Float).SetInt64(3, ToNearestEven)

// Sqrt sets z to the rounded square root of x, and returns it. If z's
// precision is 0, it is changed to x's precision before the operation.
// Rounding is performed per rnd; z.Acc() reports the resulting error.
//
// The square root of a negative operand (including -Inf, but not -0) is
// NaN. √±0 = ±0 and √+Inf = +Inf, following IEEE 754-2008.
func (z *Float) Sqrt(x *Float, rnd RoundingMode) *Float {
	if debugFloat {
		x.validate()
	}
	roundingOK(rnd)

	if z.prec == 0 {
		z.prec = x.prec
	}

	if x.form == nan || x.Sign() == -1 {
		return z.SetNaN()
	}

	// √±0 = ±0, √+Inf = +Inf
	if x.form != finite {
		z.acc = Exact
		z.form = x.form
		z.neg = x.neg
		return z
	}

	// MantExp sets the argument's precision to the receiver's, and
	// when z > 0.5 * x.prec this will lower z's precision. Restore it
	// after the MantExp call.
	prec := z.prec
	b := x.MantExp(z)
	z.prec = prec

	// Compute √(z·2**b) as
	//
	//	√( z)·2**(½b)     if b is even
	//	√(2z)·2**(⌊½b⌋)   if b > 0 is odd
	//	√(z/2)·2**(⌈½b⌉)  if b < 0 is odd
	switch b % 2 {
	case 0:
		// nothing to do
	case 1:
		z.exp++
	case -1:
		z.exp--
	}
	// 0.25 <= z < 2.0

	// Solving 1/x² - z = 0 avoids Quo calls and is faster, especially
	// for high precisions.
	z.sqrtInverse(z, rnd)

	// re-attach halved exponent
	return z.SetMantExp(z, b/2, rnd)
}

// Compute √x (to z.prec precision) by solving
//
//	1/t² - x = 0
//
// for t (using Newton's method), and then inverting.
func (z *Float) sqrtInverse(x *Float, rnd RoundingMode) {
	// let
	//	f(t) = 1/t² - x
	// then
	//	g(t) = f(t)/f'(t) = -½t(1 - xt²)
	// and the next guess is given by
	//	t2 = t - g(t) = ½t(3 - xt²)
	u := newFloat(z.prec)
	v := newFloat(z.prec)
	ng := func(t *Float) *Float {
		u.prec = t.prec
		v.prec = t.prec
		u.Mul(t, t, ToNearestEven)           // u = t²
		u.Mul(x, u, ToNearestEven)           //   = xt²
		v.Sub(threeFloat, u, ToNearestEven)  // v = 3 - xt²
		u.Mul(t, v, ToNearestEven)           // u = t(3 - xt²)
		u.exp--                              //   = ½t(3 - xt²)
		return t.Set(u, ToNearestEven)
	}

	// The initial estimate carries float64 precision; each pass through
	// ng doubles the precision of the iterate until it exceeds the
	// target (plus guard bits).
	xf, _ := x.Float64()
	sqi := new(Float)
	sqi.SetFloat64(1/math.Sqrt(xf), ToNearestEven)
	for prec := z.prec + 32; sqi.prec < prec; {
		sqi.prec *= 2
		sqi = ng(sqi)
	}
	// sqi = 1/√x

	// x/√x = √x
	z.Mul(x, sqi, rnd)
}
