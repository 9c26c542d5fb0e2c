// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package context provides IEEE-754 style contexts for mpfloat.Floats.
//
// A Context bundles a precision and a rounding mode, both validated
// once when the context is created. It is the natural boundary where
// caller-supplied parameters are checked: contexts reject reserved
// rounding modes and out-of-range precisions up front, and the
// conversion helpers return the core package's tagged errors
// (RangeError, ParseError, ...) for bad bases or digit counts.
//
// All factory functions of the form
//
//	func (c *Context) NewT(x T) *mpfloat.Float
//
// create a new mpfloat.Float of c's precision set to the value of x
// and rounded using c's rounding mode.
//
// Operators that set a receiver z to a function of other arguments like
//
//	func (c *Context) UnaryOp(z, x *mpfloat.Float) *mpfloat.Float
//	func (c *Context) BinaryOp(z, x, y *mpfloat.Float) *mpfloat.Float
//
// set z to the result of z.Op(args, c.Mode()) and return z. Invalid
// operations produce a quiet NaN, exactly as in the core package, so
// a chain of contextual operations never needs mid-flight error
// checks; test the final result with IsNaN.
package context

import (
	"math/big"

	"github.com/apnum/mpfloat"
)

// A Context is an immutable precision and rounding mode pair.
type Context struct {
	prec uint32
	mode mpfloat.RoundingMode
}

// New creates a new context with the given precision and rounding
// mode. It fails with a RangeError if prec is outside
// [mpfloat.MinPrec, mpfloat.MaxPrec] or if mode is reserved or
// unknown, and with an AllocationError if values of the given
// precision cannot be allocated on this platform.
func New(prec uint, mode mpfloat.RoundingMode) (*Context, error) {
	if err := mpfloat.CheckPrec(prec); err != nil {
		return nil, err
	}
	if err := mpfloat.CheckRounding(mode); err != nil {
		return nil, err
	}
	return &Context{prec: uint32(prec), mode: mode}, nil
}

// Mode returns the rounding mode of c.
func (c *Context) Mode() mpfloat.RoundingMode {
	return c.mode
}

// Prec returns the precision of c in bits.
func (c *Context) Prec() uint {
	return uint(c.prec)
}

// New returns a new mpfloat.Float with value +0 and c's precision.
func (c *Context) New() *mpfloat.Float {
	f, err := mpfloat.New(uint(c.prec))
	if err != nil {
		// c's precision was validated when c was created
		panic(err)
	}
	return f
}

// NewInt returns a new *mpfloat.Float set to the (possibly rounded)
// value of x.
func (c *Context) NewInt(x *big.Int) *mpfloat.Float {
	return c.New().SetInt(x, c.mode)
}

// NewInt64 returns a new *mpfloat.Float set to the (possibly rounded)
// value of x.
func (c *Context) NewInt64(x int64) *mpfloat.Float {
	return c.New().SetInt64(x, c.mode)
}

// NewUint64 returns a new *mpfloat.Float set to the (possibly rounded)
// value of x.
func (c *Context) NewUint64(x uint64) *mpfloat.Float {
	return c.New().SetUint64(x, c.mode)
}

// NewFloat64 returns a new *mpfloat.Float set to the (possibly
// rounded) value of x.
func (c *Context) NewFloat64(x float64) *mpfloat.Float {
	return c.New().SetFloat64(x, c.mode)
}

// Parse returns a new *mpfloat.Float set to the value of s in the
// given base, rounded using c's precision and rounding mode. It fails
// with a RangeError for an invalid base and a ParseError for malformed
// input.
func (c *Context) Parse(s string, base int) (*mpfloat.Float, error) {
	return mpfloat.ParseFloat(s, base, uint(c.prec), c.mode)
}

// Format returns the digit string and exponent of x in the given base
// with n significant digits (0 for the shortest round-tripping
// string), applying c's rounding mode to the discarded tail. It fails
// with a RangeError for an invalid base or digit count.
func (c *Context) Format(x *mpfloat.Float, base, n int) (string, int, error) {
	return x.Digits(base, n, c.mode)
}

// Round sets z to the value of x rounded using c's rounding mode at
// z's precision, and returns z.
func (c *Context) Round(z, x *mpfloat.Float) *mpfloat.Float {
	return z.Set(x, c.mode)
}

// Add sets z to the rounded sum x+y and returns z.
func (c *Context) Add(z, x, y *mpfloat.Float) *mpfloat.Float {
	return z.Add(x, y, c.mode)
}

// Sub sets z to the rounded difference x-y and returns z.
func (c *Context) Sub(z, x, y *mpfloat.Float) *mpfloat.Float {
	return z.Sub(x, y, c.mode)
}

// Mul sets z to the rounded product x×y and returns z.
func (c *Context) Mul(z, x, y *mpfloat.Float) *mpfloat.Float {
	return z.Mul(x, y, c.mode)
}

// Quo sets z to the rounded quotient x/y and returns z.
func (c *Context) Quo(z, x, y *mpfloat.Float) *mpfloat.Float {
	return z.Quo(x, y, c.mode)
}

// Neg sets z to the (possibly rounded) value of x with its sign
// negated, and returns z.
func (c *Context) Neg(z, x *mpfloat.Float) *mpfloat.Float {
	return z.Neg(x, c.mode)
}

// Abs sets z to the (possibly rounded) value |x| (the absolute value
// of x) and returns z.
func (c *Context) Abs(z, x *mpfloat.Float) *mpfloat.Float {
	return z.Abs(x, c.mode)
}

// Sqrt sets z to the rounded square root of x, and returns z. The
// square root of a negative operand is NaN.
func (c *Context) Sqrt(z, x *mpfloat.Float) *mpfloat.Float {
	return z.Sqrt(x, c.mode)
}
