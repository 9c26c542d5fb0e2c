// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements string-to-Float conversion functions.

package mpfloat

import (
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"
)

const (
	// MaxBase is the largest number base accepted for string
	// conversions.
	MaxBase = 10 + ('z' - 'a' + 1) + ('Z' - 'A' + 1)

	// maxBaseSmall is the largest case-insensitive base: at or below
	// it, upper- and lower-case letters denote the same digit values.
	maxBaseSmall = 10 + ('z' - 'a' + 1)
)

// digitAlphabet lists the digit characters in value order. For bases
// <= maxBaseSmall, upper-case input letters alias their lower-case
// values on scanning.
const digitAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SetString sets z to the exact value of s, rounded to z's precision
// per rnd, and returns z. If z's precision is 0, it is changed to 64.
//
// s must be a floating-point number string of the form
//
//	number   = [ sign ] ( mantissa [ exponent ] | "inf" | "nan" ) .
//	sign     = "+" | "-" .
//	mantissa = digits "." digits | digits "." | digits | "." digits .
//	exponent = ( "e" | "E" | "p" | "P" | "@" ) [ sign ] decimals .
//
// in the given base, 2 through MaxBase. Digit values 10 and up are
// denoted by letters: case-insensitive through base 36; above that,
// 'a'-'z' denote 10 through 35 and 'A'-'Z' denote 36 through 61.
// An "e"/"E" exponent (decimal bases only) and an "@" exponent (any
// base) scale by powers of the mantissa base; a "p"/"P" exponent scales
// by powers of two. The exponent value itself is always decimal.
//
// The value of s is evaluated exactly as a rational number and then
// rounded once. An invalid base or rounding mode yields a RangeError,
// malformed input a ParseError; on error the returned *Float is nil and
// the value of z is undefined.
func (z *Float) SetString(s string, base int, rnd RoundingMode) (*Float, error) {
	if base < 2 || base > MaxBase {
		return nil, &RangeError{Param: "base", Value: int64(base), Min: 2, Max: MaxBase}
	}
	if err := CheckRounding(rnd); err != nil {
		return nil, err
	}
	r := strings.NewReader(s)
	f, err := z.scan(r, base, rnd)
	if err == nil {
		// entire string must have been consumed
		var ch byte
		if ch, err = r.ReadByte(); err == nil {
			err = fmt.Errorf("unexpected character %q", ch)
		} else if err == io.EOF {
			err = nil
		}
	}
	if err != nil {
		return nil, &ParseError{Input: s, Base: base, Err: err}
	}
	return f, nil
}

// ParseFloat is like f.SetString(s, base, rnd) with f set to the given
// precision.
func ParseFloat(s string, base int, prec uint, rnd RoundingMode) (*Float, error) {
	f, err := New(prec)
	if err != nil {
		return nil, err
	}
	return f.SetString(s, base, rnd)
}

// scan reads the longest prefix of r representing a floating point
// number, and sets z to the rounded value scanned. It is the
// implementation behind SetString and UnmarshalText; base and rnd have
// been validated by the caller.
func (z *Float) scan(r io.ByteScanner, base int, rnd RoundingMode) (f *Float, err error) {
	if z.prec == 0 {
		z.prec = 64
	}

	// sign
	z.neg, err = scanSign(r)
	if err != nil {
		return
	}

	// special values
	if special, err2 := scanSpecial(r, z); special || err2 != nil {
		return z, err2
	}

	// mantissa
	var fcount int // fractional digit count; negative for fractions
	z.mant, fcount, err = z.mant.scan(r, base)
	if err != nil {
		return
	}

	// exponent
	var exp int64
	var ebase int
	exp, ebase, err = scanExponent(r, base)
	if err != nil {
		return
	}

	// special-case 0
	if len(z.mant) == 0 {
		z.acc = Exact
		z.form = zero
		f = z
		return
	}
	// len(z.mant) > 0

	// The mantissa digits form an integer d; the value of the number is
	//
	//	d × base**fcount × base**exp   if ebase == base
	//	d × base**fcount × 2**exp      if ebase == 2
	bexp := int64(fcount)
	exp2 := int64(0)
	if ebase == 2 {
		exp2 = exp
	} else {
		bexp += exp
	}

	// for power-of-two bases the base exponent folds into the binary one
	if base&(base-1) == 0 {
		exp2 += bexp * int64(bits.TrailingZeros(uint(base)))
		bexp = 0
	}

	z.form = finite

	switch {
	case bexp == 0:
		// d × 2**exp2: exact up to rounding
		e := int64(z.mant.bitLen()) + exp2
		fnorm(z.mant)
		z.setExpAndRound(e, rnd, 0)

	case bexp > 0:
		// multiply by base**bexp: still exact
		p := nat(nil).expWW(Word(base), uint64(bexp))
		z.mant = nat(nil).mul(z.mant, p)
		e := int64(z.mant.bitLen()) + exp2
		fnorm(z.mant)
		z.setExpAndRound(e, rnd, 0)

	default:
		// divide by base**-bexp; scale the dividend so that the
		// quotient has at least z.prec+2 bits: the rounding bit plus
		// one, with the remainder folded into the sticky bit
		p := nat(nil).expWW(Word(base), uint64(-bexp))
		s := int64(p.bitLen()) - int64(z.mant.bitLen()) + int64(z.prec) + 2
		if s < 0 {
			s = 0
		}
		q, rem := nat(nil).div(nil, nat(nil).shl(z.mant, uint(s)), p)
		var sbit uint
		if len(rem) > 0 {
			sbit = 1
		}
		e := int64(q.bitLen()) + exp2 - s
		z.mant = z.mant.set(q)
		fnorm(z.mant)
		z.setExpAndRound(e, rnd, sbit)
	}

	f = z
	return
}

func scanSign(r io.ByteScanner) (neg bool, err error) {
	var ch byte
	if ch, err = r.ReadByte(); err != nil {
		return
	}
	switch ch {
	case '-':
		neg = true
	case '+':
		// nothing to do
	default:
		err = r.UnreadByte()
	}
	return
}

// scanSpecial recognizes "inf" and "nan" (any case) and sets z
// accordingly, keeping the already scanned sign for infinities. It
// reports whether a special value was consumed.
func scanSpecial(r io.ByteScanner, z *Float) (bool, error) {
	ch, err := r.ReadByte()
	if err != nil {
		if err == io.EOF {
			err = errNoDigits
		}
		return false, err
	}
	var word string
	switch lower(ch) {
	case 'i':
		word = "inf"
	case 'n':
		word = "nan"
	default:
		return false, r.UnreadByte()
	}
	for i := 1; i < len(word); i++ {
		ch, err = r.ReadByte()
		if err != nil || lower(ch) != word[i] {
			return false, fmt.Errorf("expected %q", word)
		}
	}
	if word == "inf" {
		z.SetInf(z.neg)
	} else {
		z.SetNaN()
	}
	return true, nil
}

func lower(ch byte) byte {
	return ('a' - 'A') | ch
}

// scan scans the longest prefix of r representing an unsigned mantissa
// in the given base, with an optional radix point. It returns the
// mantissa digits as an integer and, if a radix point was present, a
// negative count reporting the number of fractional digits. At least
// one digit must be present.
func (z nat) scan(r io.ByteScanner, base int) (res nat, count int, err error) {
	if base < 2 || base > MaxBase {
		panic(fmt.Sprintf("invalid base %d", base))
	}

	b1 := Word(base)
	bn, n := maxPow(b1) // at most n digits in base b1 fit into a Word
	di := Word(0)       // 0 <= di < b1**i < bn
	i := 0              // 0 <= i < n
	dp := -1            // position of radix point; valid if >= 0

	// scan mantissa
	z = z[:0]
	fracOk := true
	var ch byte
	ch, err = r.ReadByte()
	for err == nil {
		if ch == '.' && fracOk {
			fracOk = false
			dp = count
		} else {
			// convert ch into a digit value d1
			var d1 Word
			switch {
			case '0' <= ch && ch <= '9':
				d1 = Word(ch - '0')
			case 'a' <= ch && ch <= 'z':
				d1 = Word(ch - 'a' + 10)
			case 'A' <= ch && ch <= 'Z':
				if base <= maxBaseSmall {
					d1 = Word(ch - 'A' + 10)
				} else {
					d1 = Word(ch - 'A' + maxBaseSmall)
				}
			default:
				d1 = MaxBase + 1
			}
			if d1 >= b1 {
				// ch does not belong to the number anymore
				err = r.UnreadByte()
				break
			}
			count++

			// collect d1 in di
			di = di*b1 + d1
			i++

			// if di is "full", add it to the result
			if i == n {
				z = z.mulAddWW(z, bn, di)
				di = 0
				i = 0
			}
		}
		ch, err = r.ReadByte()
	}
	if err == io.EOF {
		err = nil
	}
	if err != nil {
		return
	}

	if count == 0 {
		err = errNoDigits // fail on "." as well
		return
	}

	// add remaining digits to result
	if i > 0 {
		z = z.mulAddWW(z, pow(b1, i), di)
	}
	res = z.norm()

	// adjust count for fraction, if any
	if dp >= 0 {
		// 0 <= dp <= count
		count = dp - count
	}

	return
}

// scanExponent scans the longest prefix of r representing an exponent.
// If no exponent marker is present, it returns exp == 0 and ebase ==
// base. The returned ebase is the scale base: the mantissa base for
// "e"/"E"/"@" markers, 2 for "p"/"P". The exponent digits themselves
// are always decimal.
func scanExponent(r io.ByteScanner, base int) (exp int64, ebase int, err error) {
	ebase = base

	var ch byte
	if ch, err = r.ReadByte(); err != nil {
		if err == io.EOF {
			err = nil
		}
		return
	}

	switch ch {
	case 'e', 'E':
		if base > 10 {
			// the character is a digit in this base; it cannot
			// introduce an exponent
			err = r.UnreadByte()
			return
		}
	case '@':
		// any base
	case 'p', 'P':
		if base > 25 {
			// same reasoning as for 'e'
			err = r.UnreadByte()
			return
		}
		ebase = 2
	default:
		err = r.UnreadByte()
		return
	}

	// sign
	var digits []byte
	ch, err = r.ReadByte()
	if err == nil && (ch == '+' || ch == '-') {
		if ch == '-' {
			digits = append(digits, '-')
		}
		ch, err = r.ReadByte()
	}

	// digits
	hasDigits := false
	for err == nil && '0' <= ch && ch <= '9' {
		digits = append(digits, ch)
		hasDigits = true
		ch, err = r.ReadByte()
	}
	if err == nil {
		err = r.UnreadByte() // ch is not part of the exponent
	} else if err == io.EOF {
		err = nil
	}
	if err != nil {
		return
	}
	if !hasDigits {
		err = errNoExpDig
		return
	}

	exp, err = strconv.ParseInt(string(digits), 10, 64)
	return
}
