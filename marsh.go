// Copyright 2020 The mpfloat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// This file implements encoding/decoding of Floats.

package mpfloat

import "fmt"

// MarshalText implements the encoding.TextMarshaler interface. Only
// the Float value is marshaled (in the 'b' format, which is lossless
// at the value's own precision); other attributes such as precision
// and accuracy are ignored.
func (x *Float) MarshalText() (text []byte, err error) {
	if x == nil {
		return []byte("<nil>"), nil
	}
	return x.Append(nil, 'b', 0), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. The
// result is rounded to nearest-even at z's precision; if z's precision
// is 0, it is changed to 64 before reading in the value. A marshaled
// value re-read at the precision it was written with is restored
// exactly.
func (z *Float) UnmarshalText(text []byte) error {
	_, err := z.SetString(string(text), 10, ToNearestEven)
	if err != nil {
		err = fmt.Errorf("mpfloat: cannot unmarshal %q into a *mpfloat.Float (%w)", text, err)
	}
	return err
}
