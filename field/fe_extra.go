// Copyright (c) 2021 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "errors"

// SetWideBytes sets v to x, where x is a 64-byte little-endian encoding, which
// is reduced modulo the field order. If x is not of the right length,
// SetWideBytes returns nil and an error, and the receiver is unchanged.
//
// It is meant for hashing uniform bytes to a field element with negligible
// bias.
func (v *Element) SetWideBytes(x []byte) (*Element, error) {
	if len(x) != 64 {
		return nil, errors.New("field: invalid SetWideBytes input size")
	}

	// SetBytes drops the top bit of each half, so pick them up separately.
	lo, _ := new(Element).SetBytes(x[:32])
	loMSB := uint64(x[31] >> 7)
	hi, _ := new(Element).SetBytes(x[32:])
	hiMSB := uint64(x[63] >> 7)

	//   v = lo + loMSB * 2^255 + hi * 2^256 + hiMSB * 2^511
	//     = lo + loMSB * 19 + hi * 38 + hiMSB * 19 * 38
	top := &Element{loMSB*19 + hiMSB*19*38, 0, 0, 0}
	lo.Add(lo, top)
	hi.Mult32(hi, 38)
	v.Add(lo, hi)

	return v, nil
}
