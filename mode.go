// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfloat

import "strconv"

// RoundingMode determines how the result of an operation is rounded to
// the destination's precision. Operations take the mode as an explicit
// argument; it is not part of a Float's state.
type RoundingMode byte

// These constants define supported rounding modes.
const (
	ToNearestEven RoundingMode = iota // == IEEE 754-2008 roundTiesToEven
	ToZero                            // == IEEE 754-2008 roundTowardZero
	ToPositiveInf                     // == IEEE 754-2008 roundTowardPositive
	ToNegativeInf                     // == IEEE 754-2008 roundTowardNegative
	AwayFromZero                      // no IEEE 754-2008 equivalent

	// Reserved modes, declared for interface stability but rejected by
	// every operation: Faithful has no fixed semantics yet, and
	// ToNearestAway is restricted to internal use.
	Faithful
	ToNearestAway // == IEEE 754-2008 roundTiesToAway
)

func (m RoundingMode) String() string {
	switch m {
	case ToNearestEven:
		return "ToNearestEven"
	case ToZero:
		return "ToZero"
	case ToPositiveInf:
		return "ToPositiveInf"
	case ToNegativeInf:
		return "ToNegativeInf"
	case AwayFromZero:
		return "AwayFromZero"
	case Faithful:
		return "Faithful"
	case ToNearestAway:
		return "ToNearestAway"
	}
	return "RoundingMode(" + strconv.Itoa(int(m)) + ")"
}

// CheckRounding reports a RangeError if rnd is not one of the five
// operational rounding modes. Faithful and ToNearestAway are reserved
// and rejected like out-of-range values.
func CheckRounding(rnd RoundingMode) error {
	if rnd > AwayFromZero {
		return &RangeError{Param: "rnd", Value: int64(rnd), Min: int64(ToNearestEven), Max: int64(AwayFromZero)}
	}
	return nil
}

// roundingOK is the internal counterpart of CheckRounding: entry points
// that cannot return an error treat a reserved mode as programmer error.
func roundingOK(rnd RoundingMode) {
	if err := CheckRounding(rnd); err != nil {
		panic(err)
	}
}

// Accuracy describes the rounding error, if any, of the most recent
// operation that produced a Float: the result is smaller (Below),
// identical (Exact), or larger (Above) than the exact value.
type Accuracy int8

// Constants describing the Accuracy of a Float.
const (
	Below Accuracy = -1
	Exact Accuracy = 0
	Above Accuracy = +1
)

func (a Accuracy) String() string {
	switch {
	case a < 0:
		return "Below"
	case a > 0:
		return "Above"
	}
	return "Exact"
}

func makeAcc(above bool) Accuracy {
	if above {
		return Above
	}
	return Below
}
