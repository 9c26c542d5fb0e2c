// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math

import "github.com/apnum/mpfloat"

// Sqrt sets z to the rounded square root of x, and returns it.
//
// If z's precision is 0, it is changed to x's precision before the
// operation. The square root of a negative operand is NaN.
//
// This function is a proxy for z.Sqrt(x, rnd).
func Sqrt(z, x *mpfloat.Float, rnd mpfloat.RoundingMode) *mpfloat.Float {
	return z.Sqrt(x, rnd)
}

// Abs sets z to the rounded value |x|, and returns it.
//
// This function is a proxy for z.Abs(x, rnd).
func Abs(z, x *mpfloat.Float, rnd mpfloat.RoundingMode) *mpfloat.Float {
	return z.Abs(x, rnd)
}
