// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mpfloat

import (
	"fmt"
	"math/big"
	"math/bits"
)

// A Word is a single limb of a mantissa. It is an alias for big.Word so
// that limb vectors convert to big.Int digit slices without copying.
type Word = big.Word

// A nat is the limb store backing a Float's significand: an unsigned
// integer
//
//	x = x[n-1]·_B^(n-1) + x[n-2]·_B^(n-2) + ... + x[1]·_B + x[0]
//
// stored in a little-endian Word slice. The normalized representation
// of 0 is the empty or nil slice: operations producing a nat trim
// leading (most significant) zero words.
type nat []Word

var natOne = nat{1}

func (z nat) make(n int) nat {
	if n <= cap(z) {
		return z[:n]
	}
	const e = 4 // extra capacity
	return make(nat, n, n+e)
}

func (z nat) setWord(x Word) nat {
	if x == 0 {
		return z[:0]
	}
	z = z.make(1)
	z[0] = x
	return z
}

func (z nat) setUint64(x uint64) nat {
	if w := Word(x); uint64(w) == x {
		return z.setWord(w)
	}
	// _W == 32
	z = z.make(2)
	z[0] = Word(x)
	z[1] = Word(x >> 32)
	return z
}

func (z nat) set(x nat) nat {
	z = z.make(len(x))
	copy(z, x)
	return z
}

func (z nat) norm() nat {
	i := len(z)
	for i > 0 && z[i-1] == 0 {
		i--
	}
	return z[:i]
}

func (x nat) bitLen() int {
	if i := len(x) - 1; i >= 0 {
		return i*_W + bits.Len(uint(x[i]))
	}
	return 0
}

// bit returns the value of the i'th bit of x, with lsb == bit 0.
func (x nat) bit(i uint) uint {
	j := i / _W
	if j >= uint(len(x)) {
		return 0
	}
	// 0 <= j < len(x)
	return uint(x[j] >> (i % _W) & 1)
}

// sticky reports whether any of the i least significant bits of x is
// set: 1 if so, 0 otherwise.
func (x nat) sticky(i uint) uint {
	j := i / _W
	if j >= uint(len(x)) {
		if len(x) == 0 {
			return 0
		}
		return 1
	}
	// 0 <= j < len(x)
	for _, w := range x[:j] {
		if w != 0 {
			return 1
		}
	}
	if x[j]<<(_W-i%_W) != 0 {
		return 1
	}
	return 0
}

func (x nat) cmp(y nat) (r int) {
	m := len(x)
	n := len(y)
	if m != n || m == 0 {
		switch {
		case m < n:
			r = -1
		case m > n:
			r = 1
		}
		return
	}
	i := m - 1
	for i > 0 && x[i] == y[i] {
		i--
	}
	switch {
	case x[i] < y[i]:
		r = -1
	case x[i] > y[i]:
		r = 1
	}
	return
}

func (z nat) add(x, y nat) nat {
	m := len(x)
	n := len(y)

	switch {
	case m < n:
		return z.add(y, x)
	case m == 0:
		// n == 0 because m >= n; result is 0
		return z[:0]
	case n == 0:
		// result is x
		return z.set(x)
	}
	// m > 0

	z = z.make(m + 1)
	c := addVV(z[0:n], x, y)
	if m > n {
		c = addVW(z[n:m], x[n:], c)
	}
	z[m] = c

	return z.norm()
}

// sub computes x - y for x >= y.
func (z nat) sub(x, y nat) nat {
	m := len(x)
	n := len(y)

	switch {
	case m < n:
		panic("mpfloat: underflow in nat.sub")
	case m == 0:
		// n == 0 because m >= n; result is 0
		return z[:0]
	case n == 0:
		// result is x
		return z.set(x)
	}
	// m > 0

	z = z.make(m)
	c := subVV(z[0:n], x, y)
	if m > n {
		c = subVW(z[n:], x[n:], c)
	}
	if c != 0 {
		panic("mpfloat: underflow in nat.sub")
	}

	return z.norm()
}

func (z nat) shl(x nat, s uint) nat {
	m := len(x)
	if m == 0 {
		return z[:0]
	}
	// m > 0

	n := m + int(s/_W)
	z = z.make(n + 1)
	z[n] = shlVU(z[n-m:n], x, s%_W)
	for i := 0; i < n-m; i++ {
		z[i] = 0
	}

	return z.norm()
}

func (z nat) shr(x nat, s uint) nat {
	m := len(x)
	n := m - int(s/_W)
	if n <= 0 {
		return z[:0]
	}
	// n > 0

	z = z.make(n)
	shrVU(z, x[m-n:], s%_W)

	return z.norm()
}

func (z nat) mulAddWW(x nat, y, r Word) nat {
	m := len(x)
	if m == 0 || y == 0 {
		return z.setWord(r)
	}
	// m > 0

	z = z.make(m + 1)
	z[m] = mulAddVWW(z[0:m], x, y, r)

	return z.norm()
}

func (z nat) mul(x, y nat) nat {
	m := len(x)
	n := len(y)

	switch {
	case m < n:
		return z.mul(y, x)
	case m == 0 || n == 0:
		return z[:0]
	case n == 1:
		return z.mulAddWW(x, y[0], 0)
	}
	// m >= n > 1

	// use a fresh result vector if z aliases an operand
	if alias(z, x) || alias(z, y) {
		z = nil
	}
	z = z.make(m + n)
	clear(z)
	for i, d := range y {
		if d != 0 {
			z[m+i] = addMulVVW(z[i:i+m], x, d)
		}
	}

	return z.norm()
}

// div sets z to the quotient x/y and z2 to the remainder x%y for y > 0.
// The heavy lifting is delegated to big.Int; Word aliases big.Word, so
// the operands cross over without copying.
func (z nat) div(z2, x, y nat) (q, r nat) {
	if len(y) == 0 {
		panic("mpfloat: division by zero")
	}
	if x.cmp(y) < 0 {
		return z[:0], z2.set(x)
	}

	var u, v, rem big.Int
	u.SetBits(x)
	v.SetBits(y)
	quo, _ := new(big.Int).QuoRem(&u, &v, &rem)

	q = nat(quo.Bits()).norm()
	r = nat(rem.Bits()).norm()
	return
}

func (z nat) divW(x nat, y Word) (q nat, r Word) {
	m := len(x)
	switch {
	case y == 0:
		panic("mpfloat: division by zero")
	case y == 1:
		return z.set(x), 0
	case m == 0:
		return z[:0], 0
	}
	// m > 0

	z = z.make(m)
	r = divWVW(z, 0, x, y)
	return z.norm(), r
}

// expWW returns b**n.
func (z nat) expWW(b Word, n uint64) nat {
	z = z.setWord(1)
	p := nat(nil).setWord(b)
	for ; n > 0; n >>= 1 {
		if n&1 != 0 {
			z = z.mul(z, p)
		}
		p = nat(nil).mul(p, p)
	}
	return z
}

// utoa converts x to an ASCII digit representation in the given base,
// using lower-case letters for digit values 10..35 and upper-case
// letters above that. base must be in [2, MaxBase].
func (x nat) utoa(base int) []byte {
	if base < 2 || base > MaxBase {
		panic(fmt.Sprintf("invalid base %d", base))
	}
	if len(x) == 0 {
		return []byte("0")
	}

	b := Word(base)
	bb, ndigits := maxPow(b)

	// n is larger than the worst-case digit count plus the leading
	// zeros written by the last chunk below.
	n := x.bitLen() + ndigits
	s := make([]byte, n)
	i := n

	q := nat(nil).set(x)
	for len(q) > 0 {
		var r Word
		q, r = q.divW(q, bb)
		for j := 0; j < ndigits && i > 0; j++ {
			i--
			s[i] = digitAlphabet[r%b]
			r /= b
		}
	}

	// strip the leading zeros of the most significant chunk
	for i < n && s[i] == '0' {
		i++
	}
	return s[i:]
}

// maxPow returns (b**n, n) such that b**n is the largest power of b
// fitting into a Word.
func maxPow(b Word) (p Word, n int) {
	p, n = b, 1
	for max := _M / b; p <= max; {
		p *= b
		n++
	}
	return
}

// pow returns x**n for n > 0, where x**n must fit into a Word.
func pow(x Word, n int) (p Word) {
	p = 1
	for n > 0 {
		if n&1 != 0 {
			p *= x
		}
		x *= x
		n >>= 1
	}
	return
}

// alias reports whether x and y share the same base array.
func alias(x, y nat) bool {
	return cap(x) > 0 && cap(y) > 0 && &x[0:cap(x)][cap(x)-1] == &y[0:cap(y)][cap(y)-1]
}

func umax32(x, y uint32) uint32 {
	if x > y {
		return x
	}
	return y
}
