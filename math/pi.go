// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math provides transcendental constants and proxy functions
// for mpfloat.Float values. Functions take the result as their first
// argument and round it per the given mode, like the methods of the
// core package.
package math

import (
	"math/bits"
	"sync"

	"github.com/apnum/mpfloat"
)

// piGuard is the fixed share of the guard bits added to the working
// precision of π; a further bits.Len(prec) bits absorb the error
// growth over the O(log prec) iterations.
const piGuard = 32

// piCache holds the highest-precision π computed so far. Re-rounding
// the cached value is much cheaper than running the iteration again,
// and the lock makes Pi safe for concurrent use.
var piCache struct {
	sync.Mutex
	val *mpfloat.Float
}

// Pi sets z to π rounded to z's precision per rnd and returns z, with
// the rounding direction recorded in z.Acc(). z must carry a nonzero
// precision (i.e. come from mpfloat.New); a zero precision or a
// reserved rounding mode yields a RangeError. A ConvergenceError
// reports an iteration that failed to settle, which indicates a broken
// internal invariant rather than bad input.
func Pi(z *mpfloat.Float, rnd mpfloat.RoundingMode) (*mpfloat.Float, error) {
	if err := mpfloat.CheckRounding(rnd); err != nil {
		return nil, err
	}
	prec := z.Prec()
	if prec == 0 {
		return nil, &mpfloat.RangeError{Param: "prec", Value: 0, Min: mpfloat.MinPrec, Max: mpfloat.MaxPrec}
	}

	// The working precision grows with log2(prec) so that the error
	// accumulated across the iterations stays below the final rounding
	// boundary.
	wp := prec + uint(bits.Len(prec)) + piGuard

	piCache.Lock()
	defer piCache.Unlock()

	if piCache.val == nil || piCache.val.Prec() < wp {
		v, err := agmPi(wp)
		if err != nil {
			return nil, err
		}
		piCache.val = v
	}
	return z.Set(piCache.val, rnd), nil
}

// agmPi computes π to prec bits with the Gauss-Legendre algorithm:
//
//	a(0) = 1, b(0) = 1/√2, t(0) = 1/4, p(0) = 1
//	a(n+1) = (a(n)+b(n))/2
//	b(n+1) = √(a(n)·b(n))
//	t(n+1) = t(n) - p(n)·(a(n)-a(n+1))²
//	p(n+1) = 2·p(n)
//
// and finally π ≈ (a+b)²/(4t). Convergence is quadratic; the iteration
// stops once |a-b| drops below one ulp of the working precision, after
// about log2(prec) rounds. maxIter is a hard cap well above any
// precision the package accepts.
func agmPi(prec uint) (*mpfloat.Float, error) {
	const maxIter = 96

	if err := mpfloat.CheckPrec(prec); err != nil {
		return nil, err
	}
	nrm := mpfloat.ToNearestEven

	a, _ := mpfloat.New(prec)
	b, _ := mpfloat.New(prec)
	t, _ := mpfloat.New(prec)
	p, _ := mpfloat.New(prec)
	u, _ := mpfloat.New(prec)
	v, _ := mpfloat.New(prec)
	eps, _ := mpfloat.New(prec)

	a.SetUint64(1, nrm)
	u.SetUint64(2, nrm)
	b.Sqrt(u, nrm)
	b.Quo(a, b, nrm) // b = 1/√2
	t.SetUint64(1, nrm)
	t.SetMantExp(t, -2, nrm) // t = 1/4
	p.SetUint64(1, nrm)
	eps.SetUint64(1, nrm)
	eps.SetMantExp(eps, -int(prec), nrm)

	for i := 0; ; i++ {
		if i == maxIter {
			return nil, &mpfloat.ConvergenceError{Op: "pi", Prec: prec, Iter: i}
		}

		u.Set(a, nrm) // u = a(n)
		v.Add(a, b, nrm)
		a.SetMantExp(v, -1, nrm) // a(n+1)
		v.Mul(u, b, nrm)
		b.Sqrt(v, nrm) // b(n+1)
		v.Sub(u, a, nrm)
		v.Mul(v, v, nrm)
		v.Mul(v, p, nrm)
		t.Sub(t, v, nrm) // t(n+1)

		v.Sub(a, b, nrm)
		if v.CmpAbs(eps) <= 0 {
			break
		}

		p.SetMantExp(p, 1, nrm) // p(n+1)
	}

	v.Add(a, b, nrm)
	v.Mul(v, v, nrm)        // (a+b)²
	t.SetMantExp(t, 2, nrm) // 4t
	return a.Quo(v, t, nrm), nil
}
