// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfloat

import (
	"errors"
	"fmt"
)

// A RangeError reports a caller-supplied parameter outside its allowed
// bounds. It is returned before any engine work begins, so the
// destination operand is left untouched.
type RangeError struct {
	Param    string // "prec", "base", "digits" or "rnd"
	Value    int64
	Min, Max int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("mpfloat: %s %d out of range [%d, %d]", e.Param, e.Value, e.Min, e.Max)
}

// A ParseError reports a malformed numeric string. It wraps the
// underlying scan error.
type ParseError struct {
	Input string
	Base  int
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("mpfloat: parsing %q (base %d): %v", e.Input, e.Base, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// An AllocationError reports that the limb store required for a
// precision cannot be addressed on this platform.
type AllocationError struct {
	Words uint64 // requested limb count
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("mpfloat: cannot allocate a %d word limb store", e.Words)
}

// A ConversionError reports a failure inside digit string generation.
type ConversionError struct {
	Base int
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("mpfloat: base %d conversion: %v", e.Base, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// A ConvergenceError reports that an iterative algorithm did not settle
// within its iteration bound. It indicates a broken internal invariant
// rather than bad input and should not occur for accepted precisions.
type ConvergenceError struct {
	Op   string
	Prec uint
	Iter int
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("mpfloat: %s did not converge at precision %d after %d iterations", e.Op, e.Prec, e.Iter)
}

// scan errors wrapped by ParseError
var (
	errNoDigits = errors.New("number has no digits")
	errNoExpDig = errors.New("exponent has no digits")
)
