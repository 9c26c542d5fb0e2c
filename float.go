// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements multi-precision binary floating-point numbers.
// Like ints, a float value is a constant quotient mant/2**x with
// additional rounding and exponent handling; the overall structure
// follows math/big.Float with an added quiet NaN form and per-operation
// rounding modes.

package mpfloat

import (
	"fmt"
	"math"
	"math/big"
	"math/bits"
)

const debugFloat = true // enable for debugging

// A nonzero finite Float represents a multi-precision floating point
// number
//
//	sign × mantissa × 2**exponent
//
// with 0.5 <= mantissa < 1.0, and MinExp <= exponent <= MaxExp.
// A Float may also be zero (+0, -0), infinite (+Inf, -Inf) or NaN.
//
// Each Float value also has a precision, set once at construction: the
// number of mantissa bits available to represent the value. Operations
// that produce a Float round their exact result to the destination's
// precision using the rounding mode passed to the operation, and record
// the rounding direction in the destination's Accuracy. Reserved
// rounding modes (Faithful, ToNearestAway) are rejected everywhere.
//
// The zero (uninitialized) value for a Float is ready to use and
// represents the number +0 with precision 0; a precision-0 destination
// adopts a precision from its first operation as documented on each
// setter. Values constructed with New carry a validated precision and a
// pre-allocated limb store.
//
// Operations always take the form z.Op(args..., rnd) where z is the
// destination; z may alias any of its operands. Floats are not safe for
// concurrent mutation; the caller synchronizes writes.
type Float struct {
	mant nat
	exp  int32
	prec uint32
	acc  Accuracy
	form form
	neg  bool
}

// Exponent and precision limits.
const (
	MaxExp  = math.MaxInt32  // largest supported exponent
	MinExp  = math.MinInt32  // smallest supported exponent
	MaxPrec = math.MaxUint32 // largest (theoretically) supported precision
	MinPrec = 2              // smallest supported precision
)

// Internal representation details:
//
//	  sign × mantissa × 2**exponent
//
// The form value order is relevant: it ranks the zero, finite and inf
// magnitude classes. Only finite values carry a meaningful mantissa and
// exponent; the mantissa is stored in a little-endian Word slice whose
// most significant bit (msb) is always 1, with the least significant
// bits below the precision always 0.
type form byte

const (
	zero form = iota
	finite
	inf
	nan
)

// New returns a Float of the given precision, set to +0. The precision
// is fixed for the lifetime of the value; re-rounding a value at a
// different precision means constructing a new Float and assigning to
// it with Set.
//
// New fails with a RangeError if prec is outside [MinPrec, MaxPrec] and
// with an AllocationError if the limb store for prec cannot be
// addressed on this platform.
func New(prec uint) (*Float, error) {
	if err := CheckPrec(prec); err != nil {
		return nil, err
	}
	return newFloat(uint32(prec)), nil
}

// CheckPrec reports whether a Float of the given precision can be
// constructed: a RangeError if prec is outside [MinPrec, MaxPrec], an
// AllocationError if the limb store would exceed the address space, and
// nil otherwise.
func CheckPrec(prec uint) error {
	if prec < MinPrec || uint64(prec) > MaxPrec {
		return &RangeError{Param: "prec", Value: int64(prec), Min: MinPrec, Max: MaxPrec}
	}
	if n := (uint64(prec) + _W - 1) / _W; n >= math.MaxInt/_S {
		return &AllocationError{Words: n}
	}
	return nil
}

// newFloat returns a zero Float of the given precision with a
// pre-allocated limb store. Internal callers guarantee that prec is
// valid.
func newFloat(prec uint32) *Float {
	z := &Float{prec: prec}
	z.mant = z.mant.make(int((uint64(prec) + _W - 1) / _W))[:0]
	return z
}

// Clear releases x's limb store and resets x to +0, keeping its
// precision. Clearing is optional (the garbage collector reclaims
// unreferenced stores eventually) and idempotent.
func (x *Float) Clear() {
	x.mant = nil
	x.exp = 0
	x.acc = Exact
	x.form = zero
	x.neg = false
}

// Prec returns the mantissa precision of x in bits.
// The result may be 0 for |x| == 0 and |x| == Inf.
func (x *Float) Prec() uint {
	return uint(x.prec)
}

// Acc returns the accuracy of x produced by the most recent operation,
// unless explicitly documented otherwise by that operation.
func (x *Float) Acc() Accuracy {
	return x.acc
}

// Sign returns:
//   - -1 if x < 0
//   - 0 if x is ±0 or NaN
//   - +1 if x > 0
func (x *Float) Sign() int {
	if debugFloat {
		x.validate()
	}
	if x.form == zero || x.form == nan {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// Signbit reports whether x is negative or negative zero.
// The sign of a NaN is never set.
func (x *Float) Signbit() bool {
	return x.neg
}

// IsInf reports whether x is +Inf or -Inf.
func (x *Float) IsInf() bool {
	return x.form == inf
}

// IsNaN reports whether x is a NaN.
func (x *Float) IsNaN() bool {
	return x.form == nan
}

// IsZero reports whether x is +0 or -0.
func (x *Float) IsZero() bool {
	return x.form == zero
}

// debugging support
func (x *Float) validate() {
	if !debugFloat {
		// avoid performance bugs: validate must only be called in debug mode
		panic("validate called but debugFloat is not set")
	}
	if msg := x.validate0(); msg != "" {
		panic(msg)
	}
}

func (x *Float) validate0() string {
	if x.form != finite {
		return ""
	}
	m := len(x.mant)
	if m == 0 {
		return "nonzero finite number with empty mantissa"
	}
	const msb = 1 << (_W - 1)
	if x.mant[m-1]&msb == 0 {
		return fmt.Sprintf("msb not set in last word %#x of mantissa", x.mant[m-1])
	}
	if x.prec == 0 {
		return "zero precision finite number"
	}
	return ""
}

// round rounds z according to rnd to z.prec bits and sets z.acc
// accordingly. z's mantissa must be normalized (with the msb set) or
// empty. sbit summarizes any discarded bits beyond the present
// mantissa; it must be 0 or 1, and the present mantissa must then be
// wider than z.prec.
//
// CAUTION: The rounding decision of ToNegativeInf and ToPositiveInf
// depends on the sign of z, which must be set correctly before round is
// called.
func (z *Float) round(rnd RoundingMode, sbit uint) {
	if debugFloat {
		z.validate()
	}

	z.acc = Exact
	if z.form != finite {
		// ±0, ±Inf or NaN => nothing left to do
		return
	}
	// z.form == finite && len(z.mant) > 0
	// m > 0 implies z.prec > 0 (checked by validate)

	m := uint32(len(z.mant)) // present mantissa length in words
	bits := m * _W           // present mantissa bits; bits > 0
	if bits <= z.prec {
		// mantissa fits => nothing to do
		return
	}
	// bits > z.prec

	// Rounding is based on two bits: the rounding bit (rbit) and the
	// sticky bit (sbit). The rbit is the bit immediately before the
	// z.prec leading mantissa bits (the "0.5"). The sbit is set if any
	// of the bits before the rbit is set (the "0.25", "0.125", etc.):
	//
	//   rbit  sbit  => "fractional part"
	//
	//   0     0        == 0
	//   0     1        >  0  , < 0.5
	//   1     0        == 0.5
	//   1     1        >  0.5, < 1.0

	// bits > z.prec: mantissa too large => round
	r := uint(bits - z.prec - 1) // rounding bit position; r >= 0
	rbit := z.mant.bit(r) & 1    // rounding bit; be safe and ensure it's a single bit
	// The sticky bit is only needed for rounding ToNearestEven
	// or when the rounding bit is zero. Avoid computation otherwise.
	if sbit == 0 && (rbit == 0 || rnd == ToNearestEven || rnd == ToNearestAway) {
		sbit = z.mant.sticky(r)
	}
	sbit &= 1 // be safe and ensure it's a single bit

	// cut off extra words
	n := (z.prec + (_W - 1)) / _W // mantissa length in words for desired precision
	if m > n {
		copy(z.mant, z.mant[m-n:]) // move n last words to front
		z.mant = z.mant[:n]
	}

	// determine number of trailing zero bits (ntz) and compute lsb mask of mantissa's least-significant word
	ntz := n*_W - z.prec // 0 <= ntz < _W
	lsb := Word(1) << ntz

	// round if result is inexact
	if rbit|sbit != 0 {
		// Make rounding decision: The result mantissa is truncated ("rounded down")
		// by default. Decide if we need to increment, or "round up", the (unsigned)
		// mantissa.
		inc := false
		switch rnd {
		case ToNegativeInf:
			inc = z.neg
		case ToZero:
			// nothing to do
		case ToNearestEven:
			inc = rbit != 0 && (sbit != 0 || z.mant[0]&lsb != 0)
		case ToNearestAway:
			// reserved for public use, but required internally
			inc = rbit != 0
		case ToPositiveInf:
			inc = !z.neg
		case AwayFromZero:
			inc = true
		}
		z.acc = makeAcc(inc != z.neg)

		// round up if necessary
		if inc {
			// add 1 to mantissa
			if addVW(z.mant, z.mant, lsb) != 0 {
				// mantissa overflow => adjust exponent
				if z.exp >= MaxExp {
					// exponent overflow
					z.overflow(rnd)
					return
				}
				z.exp++
				// adjust mantissa: divide by 2 to compensate for exponent adjustment
				shrVU(z.mant, z.mant, 1)
				// set msb == carry == 1 from the mantissa overflow above
				const msb = 1 << (_W - 1)
				z.mant[n-1] |= msb
			}
		}
	}

	// zero out trailing bits in least-significant word
	z.mant[0] &^= lsb - 1

	if debugFloat {
		z.validate()
	}
}

// overflow handles exponent overflow per IEEE 754-2008 section 7.4:
// modes that never round an overflowing magnitude up clamp to the
// largest finite value of z's precision, all others produce an infinity
// of the correct sign.
func (z *Float) overflow(rnd RoundingMode) {
	if rnd == ToZero || (rnd == ToNegativeInf && !z.neg) || (rnd == ToPositiveInf && z.neg) {
		z.setLargest()
		z.acc = makeAcc(z.neg)
		return
	}
	z.form = inf
	z.acc = makeAcc(!z.neg)
}

// underflow is the mirror image of overflow: modes that must round a
// nonzero discarded magnitude away from zero produce the smallest
// representable magnitude, all others a zero of the correct sign.
func (z *Float) underflow(rnd RoundingMode) {
	if rnd == AwayFromZero || (rnd == ToPositiveInf && !z.neg) || (rnd == ToNegativeInf && z.neg) {
		z.setSmallest()
		z.acc = makeAcc(!z.neg)
		return
	}
	z.form = zero
	z.acc = makeAcc(z.neg)
}

// setLargest sets z's mantissa and exponent to the largest finite value
// representable at z's precision, keeping z's sign.
func (z *Float) setLargest() {
	z.form = finite
	z.exp = MaxExp
	n := int((uint64(z.prec) + _W - 1) / _W)
	z.mant = z.mant.make(n)
	for i := range z.mant {
		z.mant[i] = _M
	}
	// clear bits below the precision
	ntz := uint(n)*_W - uint(z.prec)
	z.mant[0] &^= Word(1)<<ntz - 1
}

// setSmallest sets z's mantissa and exponent to the smallest nonzero
// magnitude (0.5 × 2**MinExp), keeping z's sign.
func (z *Float) setSmallest() {
	z.form = finite
	z.exp = MinExp
	n := int((uint64(z.prec) + _W - 1) / _W)
	z.mant = z.mant.make(n)
	clear(z.mant)
	z.mant[n-1] = 1 << (_W - 1)
}

// setExpAndRound sets z's exponent to exp and rounds z, handling
// exponent range violations per z's sign and rnd.
func (z *Float) setExpAndRound(exp int64, rnd RoundingMode, sbit uint) {
	if exp < MinExp {
		z.underflow(rnd)
		return
	}
	if exp > MaxExp {
		z.overflow(rnd)
		return
	}
	z.form = finite
	z.exp = int32(exp)
	z.round(rnd, sbit)
}

// fnorm normalizes mantissa m by shifting it to the left such that the
// msb of the most-significant word (msw) is 1. It returns the shift
// amount. It assumes that len(m) != 0.
func fnorm(m nat) int64 {
	if debugFloat && (len(m) == 0 || m[len(m)-1] == 0) {
		panic("msw of mantissa is 0")
	}
	s := nlz(m[len(m)-1])
	if s > 0 {
		c := shlVU(m, m, s)
		if debugFloat && c != 0 {
			panic("nlz or shlVU incorrect")
		}
	}
	return int64(s)
}

// copyVal copies x's value into z without rounding. If z has no
// precision yet, it adopts x's.
func (z *Float) copyVal(x *Float) {
	z.acc = Exact
	if z == x {
		return
	}
	z.form = x.form
	z.neg = x.neg
	if x.form == finite {
		z.exp = x.exp
		z.mant = z.mant.set(x.mant)
	}
	if z.prec == 0 {
		z.prec = x.prec
	}
}

// Set sets z to the (possibly rounded) value of x and returns z. If z's
// precision is 0, it is changed to the precision of x before setting z
// (and rounding will have no effect). Rounding is performed per rnd;
// z.Acc() reports the resulting error relative to the exact value of x.
// Special values (±0, ±Inf, NaN) are copied unchanged.
func (z *Float) Set(x *Float, rnd RoundingMode) *Float {
	if debugFloat {
		x.validate()
	}
	roundingOK(rnd)
	z.copyVal(x)
	if z.prec < x.prec {
		z.round(rnd, 0)
	}
	return z
}

// Copy sets z to x, with the same precision, rounding accuracy and
// value as x, and returns z. Copy replaces z wholesale: it is the one
// assignment that adopts the source's precision instead of rounding to
// the destination's.
func (z *Float) Copy(x *Float) *Float {
	if debugFloat {
		x.validate()
	}
	if z != x {
		z.prec = x.prec
		z.copyVal(x)
		z.acc = x.acc
	}
	return z
}

// SetZero sets z to a zero of the given sign, keeping z's precision,
// and returns z.
func (z *Float) SetZero(signbit bool) *Float {
	z.acc = Exact
	z.form = zero
	z.neg = signbit
	return z
}

// SetInf sets z to the infinite Float -Inf if signbit is set, or +Inf
// otherwise, and returns z.
func (z *Float) SetInf(signbit bool) *Float {
	z.acc = Exact
	z.form = inf
	z.neg = signbit
	return z
}

// SetNaN sets z to NaN and returns z. NaN carries no sign and no
// meaningful accuracy; z.Acc() after SetNaN is always Exact.
func (z *Float) SetNaN() *Float {
	z.acc = Exact
	z.form = nan
	z.neg = false
	return z
}

// setBits64 sets z to the value of neg × x.
func (z *Float) setBits64(neg bool, x uint64, rnd RoundingMode) *Float {
	if z.prec == 0 {
		z.prec = 64
	}
	z.acc = Exact
	z.neg = neg
	if x == 0 {
		z.form = zero
		return z
	}
	// x != 0
	z.form = finite
	s := bits.LeadingZeros64(x)
	z.mant = z.mant.setUint64(x << uint(s))
	z.exp = int32(64 - s) // always fits
	if z.prec < 64 {
		z.round(rnd, 0)
	}
	return z
}

// SetUint64 sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to 64 (and rounding will have no
// effect).
func (z *Float) SetUint64(x uint64, rnd RoundingMode) *Float {
	roundingOK(rnd)
	return z.setBits64(false, x, rnd)
}

// SetInt64 sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to 64 (and rounding will have no
// effect).
func (z *Float) SetInt64(x int64, rnd RoundingMode) *Float {
	roundingOK(rnd)
	u := x
	if u < 0 {
		u = -u
	}
	// We cannot simply call z.SetUint64(uint64(u)) and change
	// the sign afterwards because the sign affects rounding.
	return z.setBits64(x < 0, uint64(u), rnd)
}

// SetFloat64 sets z to the (possibly rounded) value of x and returns z.
// If z's precision is 0, it is changed to 53 (and rounding will have no
// effect). NaN, infinite and zero arguments map to the corresponding
// special value, preserving the sign of zeros and infinities.
func (z *Float) SetFloat64(x float64, rnd RoundingMode) *Float {
	roundingOK(rnd)
	if z.prec == 0 {
		z.prec = 53
	}
	if math.IsNaN(x) {
		return z.SetNaN()
	}
	z.acc = Exact
	z.neg = math.Signbit(x) // handle -0, -Inf correctly
	if x == 0 {
		z.form = zero
		return z
	}
	if math.IsInf(x, 0) {
		z.form = inf
		return z
	}
	// normalized x != 0
	z.form = finite
	fmant, exp := math.Frexp(x) // 0.5 <= |fmant| < 1.0
	// bits 52..0 of Float64bits(fmant) hold the fraction; bit 63 below
	// restores the implicit leading 1 at the top of the mantissa word.
	z.mant = z.mant.setUint64(1<<63 | math.Float64bits(fmant)<<11)
	z.exp = int32(exp) // always fits
	if z.prec < 53 {
		z.round(rnd, 0)
	}
	return z
}

// SetInt sets z to the (possibly rounded) value of x and returns z. If
// z's precision is 0, it is changed to the larger of x.BitLen() or 64
// (and rounding will have no effect).
func (z *Float) SetInt(x *big.Int, rnd RoundingMode) *Float {
	roundingOK(rnd)
	bl := uint32(x.BitLen())
	if z.prec == 0 {
		z.prec = umax32(bl, 64)
	}
	z.acc = Exact
	z.neg = x.Sign() < 0
	if bl == 0 {
		z.form = zero
		return z
	}
	// x != 0
	z.mant = z.mant.set(nat(x.Bits()))
	fnorm(z.mant)
	z.setExpAndRound(int64(bl), rnd, 0)
	return z
}

// MantExp breaks x into its mantissa and exponent components and
// returns the exponent. If a non-nil mant argument is provided its
// value is set to the mantissa of x, with the same precision as x:
//
//	x == mant × 2**exp, with 0.5 <= |mant| < 1.0
//
// Special cases are:
//
//	(  ±0).MantExp(mant) = 0, with mant set to   ±0
//	(±Inf).MantExp(mant) = 0, with mant set to ±Inf
//	( NaN).MantExp(mant) = 0, with mant set to  NaN
//
// x and mant may be the same in which case x is set to its mantissa
// value.
func (x *Float) MantExp(mant *Float) (exp int) {
	if debugFloat {
		x.validate()
	}
	if x.form == finite {
		exp = int(x.exp)
	}
	if mant != nil {
		mant.Copy(x)
		if mant.form == finite {
			mant.exp = 0
		}
	}
	return
}

// SetMantExp sets z to mant × 2**exp and returns z. The result z has
// the same precision as z had (or mant's if z had none) and is rounded
// per rnd. Exponent over- and underflow is handled like any other
// rounding overflow. Special cases are:
//
//	z.SetMantExp(  ±0, exp) =   ±0
//	z.SetMantExp(±Inf, exp) = ±Inf
//	z.SetMantExp( NaN, exp) =  NaN
//
// z and mant may be the same in which case z's exponent is shifted by
// exp.
func (z *Float) SetMantExp(mant *Float, exp int, rnd RoundingMode) *Float {
	if debugFloat {
		mant.validate()
	}
	roundingOK(rnd)
	z.Set(mant, rnd)
	if z.form != finite {
		return z
	}
	z.setExpAndRound(int64(z.exp)+int64(exp), rnd, 0)
	return z
}

// Abs sets z to the (possibly rounded) value |x| and returns z.
// |NaN| is NaN.
func (z *Float) Abs(x *Float, rnd RoundingMode) *Float {
	if debugFloat {
		x.validate()
	}
	roundingOK(rnd)
	z.copyVal(x)
	if z.form != nan {
		z.neg = false
	}
	if z.prec < x.prec {
		z.round(rnd, 0)
	}
	return z
}

// Neg sets z to the (possibly rounded) value of x with its sign
// negated, and returns z. The sign is flipped before rounding so that
// directed modes see the result's sign. Negating a NaN yields NaN.
func (z *Float) Neg(x *Float, rnd RoundingMode) *Float {
	if debugFloat {
		x.validate()
	}
	roundingOK(rnd)
	z.copyVal(x)
	if z.form != nan {
		z.neg = !z.neg
	}
	if z.prec < x.prec {
		z.round(rnd, 0)
	}
	return z
}

// msb64 returns the 64 most significant bits of x, left aligned.
func (x nat) msb64() uint64 {
	i := len(x) - 1
	if i < 0 {
		return 0
	}
	v := uint64(x[i]) << (64 - _W)
	if _W == 32 && i > 0 {
		v |= uint64(x[i-1])
	}
	return v
}

// Float64 returns the float64 value nearest to x (rounding half to
// even) and an Accuracy describing the direction of the rounding error.
// Results beyond float64 range become ±Inf with an away-from-zero
// accuracy; magnitudes below the subnormal range become ±0. NaN maps to
// NaN with Exact accuracy.
func (x *Float) Float64() (float64, Accuracy) {
	if debugFloat {
		x.validate()
	}
	switch x.form {
	case zero:
		z := 0.0
		if x.neg {
			z = math.Copysign(0, -1)
		}
		return z, Exact
	case inf:
		z := math.Inf(1)
		if x.neg {
			z = -z
		}
		return z, Exact
	case nan:
		return math.NaN(), Exact
	}
	// x.form == finite

	e := int64(x.exp)

	// underflow below half the smallest subnormal
	if e < -1074 {
		return math.Copysign(0, signum(x.neg)), makeAcc(x.neg)
	}
	// half-way between 0 and the smallest subnormal: even rounding
	// picks 0 at the tie, the subnormal above it
	if e == -1074 {
		if x.mant.sticky(uint(len(x.mant))*_W-1) == 0 {
			// |x| == 2**-1075 exactly
			return math.Copysign(0, signum(x.neg)), makeAcc(x.neg)
		}
		z := math.Copysign(math.SmallestNonzeroFloat64, signum(x.neg))
		return z, makeAcc(!x.neg)
	}

	// p is the effective float64 precision at x's magnitude:
	// 53 for normal values, fewer for subnormals.
	p := 53
	if e < -1021 {
		p = int(e) + 1074
	}

	var r Float
	r.prec = uint32(p)
	r.Set(x, ToNearestEven)
	acc := r.acc
	e = int64(r.exp) // rounding may have bumped the exponent

	// overflow
	if e > 1024 {
		z := math.Inf(1)
		if x.neg {
			z = -z
		}
		return z, makeAcc(!x.neg)
	}
	// rounding to p subnormal bits may also have restored a full
	// normal mantissa; recompute p in that case
	if e >= -1021 {
		p = 53
	}

	m := r.mant.msb64() >> (64 - uint(p)) // p most significant mantissa bits
	z := math.Ldexp(float64(m), int(e)-p)
	if math.IsInf(z, 0) {
		acc = makeAcc(!x.neg)
	}
	if x.neg {
		z = -z
	}
	return z, acc
}

func signum(neg bool) float64 {
	if neg {
		return -1
	}
	return 1
}
