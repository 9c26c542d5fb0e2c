// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements Float-to-string conversion functions.

package mpfloat

import (
	"bytes"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Digits returns the significand of x as a base-b digit string together
// with an exponent e such that
//
//	x = ±0.<digits> × base**e
//
// A negative x, including -0, carries a leading '-'; infinities return
// "inf" or "-inf" and NaN returns "nan", all with exponent 0, as does
// ±0 itself.
//
// If n == 0, Digits returns the shortest digit string that reads back
// as x when parsed at x's precision with ToNearestEven; otherwise
// exactly n digits are produced, with rnd applied to the discarded tail
// of the exact base-b expansion. n == 1 is rejected with a RangeError:
// a single digit cannot carry a correctly rounded carry in all cases.
func (x *Float) Digits(base, n int, rnd RoundingMode) (string, int, error) {
	if debugFloat {
		x.validate()
	}
	if base < 2 || base > MaxBase {
		return "", 0, &RangeError{Param: "base", Value: int64(base), Min: 2, Max: MaxBase}
	}
	if n < 0 || n == 1 {
		return "", 0, &RangeError{Param: "digits", Value: int64(n), Min: 2, Max: math.MaxInt32}
	}
	if err := CheckRounding(rnd); err != nil {
		return "", 0, err
	}

	switch x.form {
	case nan:
		return "nan", 0, nil
	case inf:
		if x.neg {
			return "-inf", 0, nil
		}
		return "inf", 0, nil
	case zero:
		s := "0"
		if n > 1 {
			s = strings.Repeat("0", n)
		}
		if x.neg {
			s = "-" + s
		}
		return s, 0, nil
	}
	// x.form == finite

	var digs string
	var e int
	if n == 0 {
		digs, e = x.fdigitsShortest(base)
	} else {
		digs, e, _ = x.fdigits(base, n, rnd)
	}
	if x.neg {
		digs = "-" + digs
	}
	return digs, e, nil
}

// fdigits returns the n-digit base-b digit string of the magnitude of
// finite nonzero x and the base-b exponent e such that
//
//	|x| = 0.<digits> × base**e
//
// rnd is applied to the discarded tail of the exact expansion, taking
// x's sign into account for the directed modes. The returned Accuracy
// is Exact when the digits represent |x| without error. n must be >= 1.
func (x *Float) fdigits(base, n int, rnd RoundingMode) (string, int, Accuracy) {
	if debugFloat && (x.form != finite || n < 1) {
		panic("fdigits: invalid argument")
	}

	b := big.NewInt(int64(base))

	// |x| = m × 2**e2 with m an integer
	m := new(big.Int).SetBits(x.mant)
	e2 := int64(x.exp) - int64(len(x.mant))*_W

	// Find the base-b exponent E with base**(E-1) <= |x| < base**E.
	// The float64 estimate is off by at most a few units; the exact
	// comparisons below correct it.
	e := int64(math.Ceil(float64(x.exp) * math.Ln2 / math.Log(float64(base))))
	for cmpScaled(m, e2, b, e) >= 0 { // |x| >= base**e
		e++
	}
	for cmpScaled(m, e2, b, e-1) < 0 { // |x| < base**(e-1)
		e--
	}

	// Scale |x| by base**(n-e) so that the integer part has exactly n
	// digits, and split into quotient and remainder:
	//
	//	num/den = |x| × base**(n-e), q = ⌊num/den⌋
	num := new(big.Int).Set(m)
	den := big.NewInt(1)
	if k := int64(n) - e; k > 0 {
		num.Mul(num, new(big.Int).Exp(b, big.NewInt(k), nil))
	} else if k < 0 {
		den.Mul(den, new(big.Int).Exp(b, big.NewInt(-k), nil))
	}
	if e2 > 0 {
		num.Lsh(num, uint(e2))
	} else if e2 < 0 {
		den.Lsh(den, uint(-e2))
	}
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))

	// rounding decision on the discarded fraction r/den
	acc := Exact
	if r.Sign() != 0 {
		inc := false
		switch rnd {
		case ToNearestEven:
			switch new(big.Int).Lsh(r, 1).Cmp(den) { // 2r vs den
			case +1:
				inc = true
			case 0:
				inc = q.Bit(0) != 0
			}
		case ToZero:
			// nothing to do
		case ToPositiveInf:
			inc = !x.neg
		case ToNegativeInf:
			inc = x.neg
		case AwayFromZero:
			inc = true
		}
		acc = makeAcc(inc != x.neg)
		if inc {
			q.Add(q, oneInt)
		}
	}

	digs := nat(q.Bits()).utoa(base)
	if len(digs) > n {
		// rounding carried into a new leading digit
		// (base**n reached); q == base**n, so digs is 1 followed
		// by n zeros
		digs = digs[:n]
		e++
	}
	if debugFloat && len(digs) != n {
		panic("fdigits: wrong digit count")
	}

	return string(digs), int(e), acc
}

var oneInt = big.NewInt(1)

// cmpScaled reports the sign of m × 2**e2 - b**e.
func cmpScaled(m *big.Int, e2 int64, b *big.Int, e int64) int {
	lhs := new(big.Int).Set(m)
	rhs := big.NewInt(1)
	if e > 0 {
		rhs.Exp(b, big.NewInt(e), nil)
	} else if e < 0 {
		lhs.Mul(lhs, new(big.Int).Exp(b, big.NewInt(-e), nil))
	}
	if e2 > 0 {
		lhs.Lsh(lhs, uint(e2))
	} else if e2 < 0 {
		rhs.Lsh(rhs, uint(-e2))
	}
	return lhs.Cmp(rhs)
}

// fdigitsShortest returns the shortest base-b digit string (and
// exponent) that reads back as x when parsed at x's precision with
// ToNearestEven. The candidate digit strings are the nearest-rounded
// prefixes of the exact expansion, grown one digit at a time.
func (x *Float) fdigitsShortest(base int) (string, int) {
	// enough digits always identify the value uniquely
	maxd := int(float64(x.prec)/math.Log2(float64(base))) + 2

	v := newFloat(x.prec)
	for d := 1; d < maxd; d++ {
		digs, e, acc := x.fdigits(base, d, ToNearestEven)
		if acc == Exact {
			// the expansion terminates here; drop trailing zeros
			return strings.TrimRight(digs, "0"), e
		}
		// does it read back as x?
		s := digs + "@" + strconv.Itoa(e-d)
		if _, err := v.SetString(s, base, ToNearestEven); err == nil && v.Cmp(x) == 0 {
			return digs, e
		}
	}
	digs, e, _ := x.fdigits(base, maxd, ToNearestEven)
	return digs, e
}

// Text converts the floating-point number x to a string according to
// the given format and precision prec. The format is one of:
//
//	'e'	-d.dddde±dd, decimal exponent, at least two (possibly 0) exponent digits
//	'E'	-d.ddddE±dd, decimal exponent, at least two (possibly 0) exponent digits
//	'f'	-ddddd.dddd, no exponent
//	'g'	like 'e' for large exponents, like 'f' otherwise
//	'G'	like 'E' for large exponents, like 'f' otherwise
//	'b'	-ddddddp±dd, decimal mantissa of exactly x.Prec() bits, binary exponent
//	'p'	-0x.dddp±dd, hexadecimal mantissa, binary exponent
//
// For the decimal formats, prec is the number of digits after the
// radix point ('e', 'E', 'f') or the total number of significant
// digits ('g', 'G'); a negative prec selects the shortest
// representation that parses back to x exactly. Decimal digits are
// rounded to nearest, ties to even; use Digits for directed rounding.
// prec is ignored for the 'b' and 'p' formats.
func (x *Float) Text(format byte, prec int) string {
	cap := 10
	if prec > 0 {
		cap += prec
	}
	return string(x.Append(make([]byte, 0, cap), format, prec))
}

// String formats x like x.Text('g', 10).
func (x *Float) String() string {
	return x.Text('g', 10)
}

// Append appends to buf the string form of the floating-point number
// x, as generated by x.Text, and returns the extended buffer.
func (x *Float) Append(buf []byte, format byte, prec int) []byte {
	if x.form == nan {
		return append(buf, "NaN"...)
	}

	// sign
	if x.neg {
		buf = append(buf, '-')
	}

	if x.form == inf {
		if !x.neg {
			buf = append(buf, '+')
		}
		return append(buf, "Inf"...)
	}

	// pick off easy formats
	switch format {
	case 'b':
		return x.fmtB(buf)
	case 'p':
		return x.fmtP(buf)
	}

	// decimal digit generation; digs == "" for ±0
	var digs string // mantissa digits, without sign
	var e int       // x = ±0.<digs> × 10**e
	shortest := false
	if prec < 0 {
		shortest = true
		if x.form == finite {
			digs, e = x.fdigitsShortest(10)
		}
		// precision for the shortest representation mode
		switch format {
		case 'e', 'E':
			prec = len(digs) - 1
		case 'f':
			prec = max(len(digs)-e, 0)
		case 'g', 'G':
			prec = len(digs)
		default:
			return fmtUnknown(buf, format, x)
		}
	} else if x.form == finite {
		// round to the number of significant digits the format displays
		switch format {
		case 'e', 'E':
			// one digit before and prec digits after the radix point
			digs, e, _ = x.fdigits(10, 1+prec, ToNearestEven)
		case 'f':
			// magnitude-dependent digit count
			digs, e = x.fixedDigits(prec)
		case 'g', 'G':
			n := prec
			if n == 0 {
				n = 1
			}
			digs, e, _ = x.fdigits(10, n, ToNearestEven)
			digs = strings.TrimRight(digs, "0")
		default:
			return fmtUnknown(buf, format, x)
		}
	}

	switch format {
	case 'e', 'E':
		return fmtE(buf, format, prec, e, digs)
	case 'f':
		return fmtF(buf, prec, e, digs)
	case 'g', 'G':
		// trim trailing fractional zeros in %e format
		eprec := prec
		if eprec > len(digs) && len(digs) >= e {
			eprec = len(digs)
		}
		// %e is used if the exponent from the conversion is less than
		// -4 or greater than or equal to the precision. If precision
		// was the shortest possible, use eprec = 6 for this decision.
		if shortest {
			eprec = 6
		}
		exp := e - 1
		if exp < -4 || exp >= eprec {
			if prec > len(digs) {
				prec = len(digs)
			}
			return fmtE(buf, format+'e'-'g', prec-1, e, digs)
		}
		if prec > e {
			prec = len(digs)
		}
		return fmtF(buf, max(prec-e, 0), e, digs)
	}

	return fmtUnknown(buf, format, x)
}

func fmtUnknown(buf []byte, format byte, x *Float) []byte {
	if x.neg {
		buf = buf[:len(buf)-1] // sign was added prematurely - remove it again
	}
	return append(buf, "%!"+string(format)+"(*mpfloat.Float)"...)
}

// fixedDigits produces the digits for the 'f' format with prec digits
// after the radix point: the significant digit count depends on the
// magnitude of x. x must be finite and nonzero.
func (x *Float) fixedDigits(prec int) (digs string, e int) {
	// exponent only: one truncated digit is enough to learn e
	_, e, _ = x.fdigits(10, 1, ToZero)
	n := e + prec // significant digits wanted
	switch {
	case n >= 1:
		digs, e, _ = x.fdigits(10, n, ToNearestEven)
	case n == 0:
		// |x| is just below the last displayed position; it shows up
		// only if it rounds up to 10**-prec
		d, _, acc := x.fdigits(10, 1, ToZero)
		if d[0] > '5' || d[0] == '5' && acc != Exact {
			digs, e = "1", -prec+1
		}
	default:
		// |x| < half of the last displayed position: all zeros
	}
	return digs, e
}

// %e: d.ddddde±dd
func fmtE(buf []byte, format byte, prec int, e int, digs string) []byte {
	// first digit
	ch := byte('0')
	if len(digs) > 0 {
		ch = digs[0]
	}
	buf = append(buf, ch)

	// .moredigits
	if prec > 0 {
		buf = append(buf, '.')
		i := 1
		m := min(len(digs), prec+1)
		if i < m {
			buf = append(buf, digs[i:m]...)
			i = m
		}
		for ; i <= prec; i++ {
			buf = append(buf, '0')
		}
	}

	// e±
	buf = append(buf, format)
	var exp int64
	if len(digs) > 0 {
		exp = int64(e) - 1 // -1 because first digit is printed before '.'
	}
	if exp < 0 {
		buf = append(buf, '-')
		exp = -exp
	} else {
		buf = append(buf, '+')
	}
	if exp < 10 {
		buf = append(buf, '0') // at least 2 exponent digits
	}
	return strconv.AppendInt(buf, exp, 10)
}

// %f: ddddddd.ddddd
func fmtF(buf []byte, prec int, e int, digs string) []byte {
	// integer, padded with zeros as needed
	if e > 0 {
		m := min(len(digs), e)
		buf = append(buf, digs[:m]...)
		for ; m < e; m++ {
			buf = append(buf, '0')
		}
	} else {
		buf = append(buf, '0')
	}

	// fraction
	if prec > 0 {
		buf = append(buf, '.')
		for i := 0; i < prec; i++ {
			ch := byte('0')
			if j := e + i; 0 <= j && j < len(digs) {
				ch = digs[j]
			}
			buf = append(buf, ch)
		}
	}

	return buf
}

// fmtB appends the string of x in the format mantissa "p" exponent with
// a decimal mantissa and a binary exponent, and returns the extended
// buffer. The mantissa is normalized such that it uses exactly
// x.Prec() bits; the sign of x is ignored, and x must not be an Inf.
func (x *Float) fmtB(buf []byte) []byte {
	if x.form == zero {
		return append(buf, '0')
	}

	if debugFloat && x.form != finite {
		panic("non-finite float")
	}
	// x != 0

	// adjust mantissa to use exactly x.prec bits
	m := x.mant
	switch w := uint32(len(x.mant)) * _W; {
	case w < x.prec:
		m = nat(nil).shl(m, uint(x.prec-w))
	case w > x.prec:
		m = nat(nil).shr(m, uint(w-x.prec))
	}

	buf = append(buf, m.utoa(10)...)
	buf = append(buf, 'p')
	e := int64(x.exp) - int64(x.prec)
	if e >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, e, 10)
}

// fmtP appends the string of x in the format "0x." mantissa "p"
// exponent with a hexadecimal mantissa and a binary exponent, and
// returns the extended buffer. The mantissa is normalized such that
// 0.5 <= 0.mantissa < 1.0; the sign of x is ignored, and x must not be
// an Inf.
func (x *Float) fmtP(buf []byte) []byte {
	if x.form == zero {
		return append(buf, '0')
	}

	if debugFloat && x.form != finite {
		panic("non-finite float")
	}
	// x != 0

	m := x.mant

	// remove trailing 0 words early
	// (no need to convert to hex 0's and trim later)
	i := 0
	for i < len(m) && m[i] == 0 {
		i++
	}
	m = m[i:]

	buf = append(buf, "0x."...)
	buf = append(buf, bytes.TrimRight(m.utoa(16), "0")...)
	buf = append(buf, 'p')
	if x.exp >= 0 {
		buf = append(buf, '+')
	}
	return strconv.AppendInt(buf, int64(x.exp), 10)
}

// Format implements fmt.Formatter. It accepts all the regular formats
// for floating-point numbers ('b', 'e', 'E', 'f', 'g', 'G') as well as
// 'p' and 'v'. 'v' is handled like 'g'. Format also supports the
// output field width, space or zero padding, left/right justification,
// and the '+' flag for a leading sign.
func (x *Float) Format(s fmt.State, format rune) {
	prec, hasPrec := s.Precision()
	if !hasPrec {
		prec = 6 // default precision for 'e', 'f'
	}

	switch format {
	case 'e', 'E', 'f', 'b', 'p':
		// nothing to do
	case 'F':
		// (*Float).Text doesn't support 'F'; handle like 'f'
		format = 'f'
	case 'v':
		// handle like 'g'
		format = 'g'
		fallthrough
	case 'g', 'G':
		if !hasPrec {
			prec = -1 // default precision for 'g', 'G': shortest
		}
	default:
		fmt.Fprintf(s, "%%!%c(*mpfloat.Float=%s)", format, x.String())
		return
	}
	var buf []byte
	buf = x.Append(buf, byte(format), prec)
	if len(buf) == 0 {
		buf = []byte("?") // should never happen, but don't crash
	}
	// len(buf) > 0

	var sign string
	switch {
	case buf[0] == '-':
		sign = "-"
		buf = buf[1:]
	case buf[0] == '+':
		// +Inf
		sign = "+"
		if s.Flag(' ') {
			sign = " "
		}
		buf = buf[1:]
	case s.Flag('+'):
		sign = "+"
	case s.Flag(' '):
		sign = " "
	}

	var padding int
	if width, hasWidth := s.Width(); hasWidth && width > len(sign)+len(buf) {
		padding = width - len(sign) - len(buf)
	}

	switch {
	case s.Flag('0') && x.form == finite:
		// 0-padding on left
		writeMultiple(s, sign, 1)
		writeMultiple(s, "0", padding)
		s.Write(buf)
	case s.Flag('-'):
		// padding on right
		writeMultiple(s, sign, 1)
		s.Write(buf)
		writeMultiple(s, " ", padding)
	default:
		// padding on left
		writeMultiple(s, " ", padding)
		writeMultiple(s, sign, 1)
		s.Write(buf)
	}
}

// write count copies of text to s
func writeMultiple(s fmt.State, text string, count int) {
	if len(text) > 0 {
		b := []byte(text)
		for ; count > 0; count-- {
			s.Write(b)
		}
	}
}
