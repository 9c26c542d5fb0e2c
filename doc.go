// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package mpfloat implements arbitrary-precision binary floating-point
arithmetic with explicit, per-operation rounding control.

A Float is a binary floating-point number: a sign, a mantissa of a
fixed number of bits (the precision, chosen at construction), and a
32-bit exponent. Special values -0, +0, ±Inf and NaN are represented
and propagate through arithmetic the way IEEE 754-2008 prescribes;
invalid operations (∞−∞, 0×∞, 0/0, ∞/∞, √-1) produce a quiet NaN
rather than a panic or an error.

The structure of the API follows math/big: operations are methods on
the destination, and incoming operands are never the result.

	func (z *Float) SetV(v V, rnd RoundingMode) *Float      // z = v
	func (z *Float) Unary(x *Float, rnd RoundingMode) *Float    // z = unary x
	func (z *Float) Binary(x, y *Float, rnd RoundingMode) *Float // z = x binary y
	func (x *Float) Pred() P                                 // p = pred(x)

The receiver z denotes the result and may alias any operand, so it is
perfectly fine to write

	sum.Add(sum, x, mpfloat.ToNearestEven)

to accumulate values in a sum.

Unlike math/big, the rounding mode is not an attribute of the value:
every operation that can round takes the mode as an argument, and two
calls on the same destination may round differently. The exact result
of an operation is computed first and rounded once to the
destination's precision; the destination records the direction of the
rounding error, readable through Acc. Five modes are operational
(ToNearestEven, ToZero, ToPositiveInf, ToNegativeInf, AwayFromZero);
Faithful and ToNearestAway are declared but reserved, and rejected by
every entry point.

Construction goes through New, which validates the precision once:

	z, err := mpfloat.New(100)        // 100-bit Float, set to +0
	z.SetFloat64(0.1, mpfloat.ToZero) // nearest 100-bit value below 0.1

The zero value of Float is also usable and denotes +0; it adopts a
default precision from its first setter, as documented per method.

String conversions work in any base from 2 to 62 in both directions:
SetString parses, and Digits produces a correctly rounded digit string
of any requested length (or the shortest string that round-trips).
Text, String, Append and the fmt interfaces provide conventional
decimal and binary formatting on top of Digits' machinery.

The subpackage math computes transcendental constants (π) to arbitrary
precision; the subpackage context bundles a validated precision and
rounding mode for IEEE-754-style contextual operation.

Float values are not safe for concurrent mutation; the caller
synchronizes writes.
*/
package mpfloat
