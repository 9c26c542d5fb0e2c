// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements the basic arithmetic operations on Floats:
// magnitude-level helpers (uadd, usub, umul, uquo, ucmp) working on
// finite operands with non-empty mantissas, and the public operations
// layered on top of them handling signs and special values.

package mpfloat

// ucmp returns -1, 0, or +1, depending on whether |x| < |y|,
// |x| == |y|, or |x| > |y|. x and y must have a non-empty mantissa and
// valid exponent.
func (x *Float) ucmp(y *Float) int {
	if debugFloat {
		validateBinaryOperands(x, y)
	}

	switch {
	case x.exp < y.exp:
		return -1
	case x.exp > y.exp:
		return +1
	}
	// x.exp == y.exp

	// compare mantissas
	i := len(x.mant)
	j := len(y.mant)
	for i > 0 || j > 0 {
		var xm, ym Word
		if i > 0 {
			i--
			xm = x.mant[i]
		}
		if j > 0 {
			j--
			ym = y.mant[j]
		}
		switch {
		case xm < ym:
			return -1
		case xm > ym:
			return +1
		}
	}

	return 0
}

// Handling of sign bit as defined by IEEE 754-2008, section 6.3:
//
//	When neither the inputs nor result are NaN, the sign of a product or
//	quotient is the exclusive OR of the operands' signs; the sign of a sum,
//	or of a difference x−y regarded as a sum x+(−y), differs from at most
//	one of the addends' signs; and the sign of the result of conversions,
//	the quantize operation, the roundToIntegral operations, and the
//	roundToIntegralExact (see 5.3.1) is the sign of the first or only operand.
//	These rules shall apply even when operands or results are zero or infinite.
//
//	When the sum of two operands with opposite signs (or the difference of
//	two operands with like signs) is exactly zero, the sign of that sum (or
//	difference) shall be +0 in all rounding-direction attributes except
//	roundTowardNegative; under that attribute, the sign of an exact zero
//	sum (or difference) shall be −0.

// z = x + y, ignoring signs of x and y for the addition but using the
// sign of z for rounding the result. x and y must have a non-empty
// mantissa and valid exponent.
func (z *Float) uadd(x, y *Float, rnd RoundingMode) {
	// Note: This implementation requires 2 shifts (one for alignment)
	// in the general case. It is also pessimistic in that it allocates
	// the result mantissa at full length even when parts cancel.

	if debugFloat {
		validateBinaryOperands(x, y)
	}

	// compute exponents ex, ey for mantissa with "binary point"
	// on the right (mantissa.0) - use int64 to avoid overflow
	ex := int64(x.exp) - int64(len(x.mant))*_W
	ey := int64(y.exp) - int64(len(y.mant))*_W

	al := alias(z.mant, x.mant) || alias(z.mant, y.mant)

	switch {
	case ex < ey:
		if al {
			t := nat(nil).shl(y.mant, uint(ey-ex))
			z.mant = z.mant.add(x.mant, t)
		} else {
			z.mant = z.mant.shl(y.mant, uint(ey-ex))
			z.mant = z.mant.add(x.mant, z.mant)
		}
	default:
		// ex == ey, no shift needed
		z.mant = z.mant.add(x.mant, y.mant)
	case ex > ey:
		if al {
			t := nat(nil).shl(x.mant, uint(ex-ey))
			z.mant = z.mant.add(t, y.mant)
		} else {
			z.mant = z.mant.shl(x.mant, uint(ex-ey))
			z.mant = z.mant.add(z.mant, y.mant)
		}
		ex = ey
	}
	// len(z.mant) > 0

	z.setExpAndRound(ex+int64(len(z.mant))*_W-fnorm(z.mant), rnd, 0)
}

// z = x - y for |x| > |y|, ignoring signs of x and y for the
// subtraction but using the sign of z for rounding the result. x and y
// must have a non-empty mantissa and valid exponent.
func (z *Float) usub(x, y *Float, rnd RoundingMode) {
	// This code is symmetric to uadd. We have not factored the common
	// code out because the operations on the mantissa are different.

	if debugFloat {
		validateBinaryOperands(x, y)
	}

	ex := int64(x.exp) - int64(len(x.mant))*_W
	ey := int64(y.exp) - int64(len(y.mant))*_W

	al := alias(z.mant, x.mant) || alias(z.mant, y.mant)

	switch {
	case ex < ey:
		if al {
			t := nat(nil).shl(y.mant, uint(ey-ex))
			z.mant = t.sub(x.mant, t)
		} else {
			z.mant = z.mant.shl(y.mant, uint(ey-ex))
			z.mant = z.mant.sub(x.mant, z.mant)
		}
	default:
		// ex == ey, no shift needed
		z.mant = z.mant.sub(x.mant, y.mant)
	case ex > ey:
		if al {
			t := nat(nil).shl(x.mant, uint(ex-ey))
			z.mant = t.sub(t, y.mant)
		} else {
			z.mant = z.mant.shl(x.mant, uint(ex-ey))
			z.mant = z.mant.sub(z.mant, y.mant)
		}
		ex = ey
	}

	// operands may have canceled each other out
	if len(z.mant) == 0 {
		z.acc = Exact
		z.form = zero
		z.neg = false
		return
	}
	// len(z.mant) > 0

	z.setExpAndRound(ex+int64(len(z.mant))*_W-fnorm(z.mant), rnd, 0)
}

// z = x * y, ignoring signs of x and y for the multiplication but using
// the sign of z for rounding the result. x and y must have a non-empty
// mantissa and valid exponent.
func (z *Float) umul(x, y *Float, rnd RoundingMode) {
	if debugFloat {
		validateBinaryOperands(x, y)
	}

	// Note: This is doing too much work if the precision of z is less
	// than the sum of the precisions of x and y which is often the
	// case (e.g., if all floats have the same precision).

	e := int64(x.exp) + int64(y.exp)
	z.mant = z.mant.mul(x.mant, y.mant)

	z.setExpAndRound(e-fnorm(z.mant), rnd, 0)
}

// z = x / y, ignoring signs of x and y for the division but using the
// sign of z for rounding the result. x and y must have a non-empty
// mantissa and valid exponent.
func (z *Float) uquo(x, y *Float, rnd RoundingMode) {
	if debugFloat {
		validateBinaryOperands(x, y)
	}

	// mantissa length in words for desired result precision + 1
	// (at least one extra bit so we get the rounding bit after
	// the division)
	n := int(z.prec/_W) + 1

	// compute adjusted x.mant such that we get enough result precision
	xadj := x.mant
	if d := n - len(x.mant) + len(y.mant); d > 0 {
		// d extra words needed => add d "0 digits" to x
		xadj = make(nat, len(x.mant)+d)
		copy(xadj[d:], x.mant)
	}

	// Compute d before division since there may be aliasing of x.mant
	// (via xadj) or y.mant with z.mant.
	d := len(xadj) - len(y.mant)

	// divide
	var r nat
	z.mant, r = z.mant.div(nil, xadj, y.mant)
	e := int64(x.exp) - int64(y.exp) - int64(d-len(z.mant))*_W

	// The result is long enough to include (at least) the rounding bit.
	// If there's a non-zero remainder, the corresponding fractional part
	// (if it were computed), would have a non-zero sticky bit (if it
	// were zero, it couldn't have a non-zero remainder).
	var sbit uint
	if len(r) > 0 {
		sbit = 1
	}

	z.setExpAndRound(e-fnorm(z.mant), rnd, sbit)
}

// Add sets z to the rounded sum x+y and returns z. If z's precision is
// 0, it is changed to the larger of x's or y's precision before the
// operation. Rounding is performed per rnd at z's precision; z.Acc()
// reports the direction of the rounding error. If either operand is
// NaN, or if x and y are infinities of opposite sign, z is set to NaN
// without further effect.
func (z *Float) Add(x, y *Float, rnd RoundingMode) *Float {
	if debugFloat {
		x.validate()
		y.validate()
	}
	roundingOK(rnd)

	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}

	if x.form == nan || y.form == nan {
		return z.SetNaN()
	}

	if x.form == finite && y.form == finite {
		// x + y (common case)

		// Below we set z.neg = x.neg, and when z aliases y this will
		// change the y operand's sign. This is fine, because if an
		// operand aliases z, its form and neg are unchanged by uadd
		// and usub and we only rely on x.neg and y.neg being read
		// before those calls.
		yneg := y.neg
		z.neg = x.neg
		if x.neg == yneg {
			// x + y == x + y
			// (-x) + (-y) == -(x + y)
			z.uadd(x, y, rnd)
		} else {
			// x + (-y) == x - y == -(y - x)
			// (-x) + y == y - x == -(x - y)
			if x.ucmp(y) > 0 {
				z.usub(x, y, rnd)
			} else {
				z.neg = !z.neg
				z.usub(y, x, rnd)
			}
		}
		if z.form == zero && rnd == ToNegativeInf && !z.neg {
			z.neg = true
		}
		return z
	}

	if x.form == zero && y.form == zero {
		// ±0 + ±0: IEEE 754-2008, section 6.3
		neg := x.neg && y.neg
		if x.neg != y.neg && rnd == ToNegativeInf {
			neg = true
		}
		return z.SetZero(neg)
	}

	if x.form == inf && y.form == inf && x.neg != y.neg {
		// x = ±Inf, y = ∓Inf: the sum is undefined
		return z.SetNaN()
	}

	if x.form == inf || y.form == zero {
		return z.Set(x, rnd) // ±Inf + y = ±Inf; x + ±0 = x
	}

	// y.form == inf || x.form == zero
	return z.Set(y, rnd) // x + ±Inf = ±Inf; ±0 + y = y
}

// Sub sets z to the rounded difference x-y and returns z. Precision,
// rounding, accuracy reporting and NaN handling are as for Add. If x
// and y are infinities of equal sign, z is set to NaN.
func (z *Float) Sub(x, y *Float, rnd RoundingMode) *Float {
	if debugFloat {
		x.validate()
		y.validate()
	}
	roundingOK(rnd)

	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}

	if x.form == nan || y.form == nan {
		return z.SetNaN()
	}

	if x.form == finite && y.form == finite {
		// x - y (common case)
		yneg := y.neg
		z.neg = x.neg
		if x.neg != yneg {
			// x - (-y) == x + y
			// (-x) - y == -(x + y)
			z.uadd(x, y, rnd)
		} else {
			// x - y == x - y == -(y - x)
			// (-x) - (-y) == y - x == -(x - y)
			if x.ucmp(y) > 0 {
				z.usub(x, y, rnd)
			} else {
				z.neg = !z.neg
				z.usub(y, x, rnd)
			}
		}
		if z.form == zero && rnd == ToNegativeInf && !z.neg {
			z.neg = true
		}
		return z
	}

	if x.form == zero && y.form == zero {
		// ±0 - ±0: IEEE 754-2008, section 6.3
		neg := x.neg && !y.neg
		if x.neg == y.neg && rnd == ToNegativeInf {
			neg = true
		}
		return z.SetZero(neg)
	}

	if x.form == inf && y.form == inf && x.neg == y.neg {
		// x = ±Inf, y = ±Inf: the difference is undefined
		return z.SetNaN()
	}

	if x.form == inf || y.form == zero {
		return z.Set(x, rnd) // ±Inf - y = ±Inf; x - ±0 = x
	}

	// y.form == inf || x.form == zero
	return z.Neg(y, rnd) // x - ±Inf = ∓Inf; ±0 - y = -y
}

// Mul sets z to the rounded product x×y and returns z. Precision,
// rounding and accuracy reporting are as for Add. A NaN operand, or a
// product of zero and an infinity, sets z to NaN.
func (z *Float) Mul(x, y *Float, rnd RoundingMode) *Float {
	if debugFloat {
		x.validate()
		y.validate()
	}
	roundingOK(rnd)

	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}

	if x.form == nan || y.form == nan {
		return z.SetNaN()
	}

	z.neg = x.neg != y.neg

	if x.form == finite && y.form == finite {
		// x * y (common case)
		z.umul(x, y, rnd)
		return z
	}

	z.acc = Exact
	if x.form == zero && y.form == inf || x.form == inf && y.form == zero {
		// ±0 × ±Inf, ±Inf × ±0: the product is undefined
		return z.SetNaN()
	}

	if x.form == inf || y.form == inf {
		// ±Inf × y, x × ±Inf
		z.form = inf
		return z
	}

	// ±0 × y, x × ±0
	z.form = zero
	return z
}

// Quo sets z to the rounded quotient x/y and returns z. Precision,
// rounding and accuracy reporting are as for Add. A NaN operand, 0/0
// and ∞/∞ set z to NaN; a finite nonzero x divided by ±0 yields ±Inf
// with the usual sign rule.
func (z *Float) Quo(x, y *Float, rnd RoundingMode) *Float {
	if debugFloat {
		x.validate()
		y.validate()
	}
	roundingOK(rnd)

	if z.prec == 0 {
		z.prec = umax32(x.prec, y.prec)
	}

	if x.form == nan || y.form == nan {
		return z.SetNaN()
	}

	z.neg = x.neg != y.neg

	if x.form == finite && y.form == finite {
		// x / y (common case)
		z.uquo(x, y, rnd)
		return z
	}

	z.acc = Exact
	if x.form == zero && y.form == zero || x.form == inf && y.form == inf {
		// 0/0, Inf/Inf: the quotient is undefined
		return z.SetNaN()
	}

	if x.form == zero || y.form == inf {
		// ±0 / y, x / ±Inf
		z.form = zero
		return z
	}

	// x / ±0, ±Inf / y
	z.form = inf
	return z
}

// Cmp compares x and y and returns:
//   - -1 if x < y
//   - 0 if x == y (note that ±0 compare equal)
//   - +1 if x > y
//
// NaN is unordered: if either operand is NaN the result is 0, and
// callers that may see NaNs must test with IsNaN first.
func (x *Float) Cmp(y *Float) int {
	if debugFloat {
		x.validate()
		y.validate()
	}

	if x.form == nan || y.form == nan {
		return 0
	}

	mx := x.ord()
	my := y.ord()
	switch {
	case mx < my:
		return -1
	case mx > my:
		return +1
	}
	// mx == my

	// only if |mx| == 1 we have to compare the mantissae
	switch mx {
	case -1:
		return y.ucmp(x)
	case +1:
		return x.ucmp(y)
	}

	return 0
}

// CmpAbs compares |x| and |y| with the same result convention as Cmp.
// As with Cmp, a NaN operand makes the result 0.
func (x *Float) CmpAbs(y *Float) int {
	if debugFloat {
		x.validate()
		y.validate()
	}

	if x.form == nan || y.form == nan {
		return 0
	}

	// zero < finite < inf
	mx := x.umag()
	my := y.umag()
	switch {
	case mx < my:
		return -1
	case mx > my:
		return +1
	}

	if mx == 1 {
		return x.ucmp(y)
	}
	return 0
}

// ord classifies x and returns:
//
//	-2 if -Inf == x
//	-1 if -Inf < x < 0
//	 0 if x == 0 (signed or unsigned)
//	+1 if 0 < x < +Inf
//	+2 if x == +Inf
//
// x must not be NaN.
func (x *Float) ord() int {
	var m int
	switch x.form {
	case finite:
		m = 1
	case zero:
		return 0
	case inf:
		m = 2
	}
	if x.neg {
		m = -m
	}
	return m
}

// umag ranks the magnitude class of x: 0 for zero, 1 for finite, 2 for
// infinite. x must not be NaN.
func (x *Float) umag() int {
	switch x.form {
	case zero:
		return 0
	case inf:
		return 2
	}
	return 1
}

func validateBinaryOperands(x, y *Float) {
	if !debugFloat {
		// avoid performance bugs: validateBinaryOperands must only be
		// called in debug mode
		panic("validateBinaryOperands called but debugFloat is not set")
	}
	if len(x.mant) == 0 {
		panic("empty mantissa for x")
	}
	if len(y.mant) == 0 {
		panic("empty mantissa for y")
	}
}
