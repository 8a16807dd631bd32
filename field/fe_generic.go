// Copyright (c) 2017 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import "math/bits"

// uint512 is a 512-bit product, least significant word first.
type uint512 [8]uint64

// feMul sets v = a * b. Every 64x64 -> 128 product goes through bits.Mul64,
// which is constant-time on all supported 64-bit architectures.
func feMul(v, a, b *Element) {
	a0, a1, a2, a3 := a.l0, a.l1, a.l2, a.l3
	b0, b1, b2, b3 := b.l0, b.l1, b.l2, b.l3

	var t uint512
	var hi, lo, cc uint64

	// The 16 products ai * bj are accumulated in an order that keeps the
	// carry chains short.

	// a0*b0, a1*b1, a2*b2, a3*b3
	t[1], t[0] = bits.Mul64(a0, b0)
	t[3], t[2] = bits.Mul64(a1, b1)
	t[5], t[4] = bits.Mul64(a2, b2)
	t[7], t[6] = bits.Mul64(a3, b3)

	// a0*b1, a0*b3, a2*b3
	hi, lo = bits.Mul64(a0, b1)
	t[1], cc = bits.Add64(t[1], lo, 0)
	t[2], cc = bits.Add64(t[2], hi, cc)
	hi, lo = bits.Mul64(a0, b3)
	t[3], cc = bits.Add64(t[3], lo, cc)
	t[4], cc = bits.Add64(t[4], hi, cc)
	hi, lo = bits.Mul64(a2, b3)
	t[5], cc = bits.Add64(t[5], lo, cc)
	t[6], cc = bits.Add64(t[6], hi, cc)
	t[7] += cc

	// a1*b0, a3*b0, a3*b2
	hi, lo = bits.Mul64(a1, b0)
	t[1], cc = bits.Add64(t[1], lo, 0)
	t[2], cc = bits.Add64(t[2], hi, cc)
	hi, lo = bits.Mul64(a3, b0)
	t[3], cc = bits.Add64(t[3], lo, cc)
	t[4], cc = bits.Add64(t[4], hi, cc)
	hi, lo = bits.Mul64(a3, b2)
	t[5], cc = bits.Add64(t[5], lo, cc)
	t[6], cc = bits.Add64(t[6], hi, cc)
	t[7] += cc

	// a0*b2, a1*b3
	hi, lo = bits.Mul64(a0, b2)
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a1, b3)
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	// a2*b0, a3*b1
	hi, lo = bits.Mul64(a2, b0)
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a3, b1)
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	// a1*b2, a2*b1
	var x0, x1, x2 uint64
	x1, x0 = bits.Mul64(a1, b2)
	hi, lo = bits.Mul64(a2, b1)
	x0, cc = bits.Add64(x0, lo, 0)
	x1, x2 = bits.Add64(x1, hi, cc)
	t[3], cc = bits.Add64(t[3], x0, 0)
	t[4], cc = bits.Add64(t[4], x1, cc)
	t[5], cc = bits.Add64(t[5], x2, cc)
	t[6], cc = bits.Add64(t[6], 0, cc)
	t[7] += cc

	t.reduceInto(v)
}

// feSquare sets v = a * a. The six cross products are computed once and
// doubled, saving six multiplications over feMul.
func feSquare(v, a *Element) {
	a0, a1, a2, a3 := a.l0, a.l1, a.l2, a.l3

	var t uint512
	var hi, lo, cc uint64

	// a0*a1, a0*a2, a0*a3, a1*a2, a1*a3, a2*a3
	// This partial sum is below 2^448, so nothing spills into t[7].
	t[2], t[1] = bits.Mul64(a0, a1)
	t[4], t[3] = bits.Mul64(a0, a3)
	t[6], t[5] = bits.Mul64(a2, a3)
	hi, lo = bits.Mul64(a0, a2)
	t[2], cc = bits.Add64(t[2], lo, 0)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a1, a3)
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	t[6] += cc
	hi, lo = bits.Mul64(a1, a2)
	t[3], cc = bits.Add64(t[3], lo, 0)
	t[4], cc = bits.Add64(t[4], hi, cc)
	t[5], cc = bits.Add64(t[5], 0, cc)
	t[6] += cc

	// Double the cross products.
	t[7] = t[6] >> 63
	t[6] = (t[6] << 1) | (t[5] >> 63)
	t[5] = (t[5] << 1) | (t[4] >> 63)
	t[4] = (t[4] << 1) | (t[3] >> 63)
	t[3] = (t[3] << 1) | (t[2] >> 63)
	t[2] = (t[2] << 1) | (t[1] >> 63)
	t[1] = t[1] << 1

	// a0*a0, a1*a1, a2*a2, a3*a3
	hi, t[0] = bits.Mul64(a0, a0)
	t[1], cc = bits.Add64(t[1], hi, 0)
	hi, lo = bits.Mul64(a1, a1)
	t[2], cc = bits.Add64(t[2], lo, cc)
	t[3], cc = bits.Add64(t[3], hi, cc)
	hi, lo = bits.Mul64(a2, a2)
	t[4], cc = bits.Add64(t[4], lo, cc)
	t[5], cc = bits.Add64(t[5], hi, cc)
	hi, lo = bits.Mul64(a3, a3)
	t[6], cc = bits.Add64(t[6], lo, cc)
	t[7], _ = bits.Add64(t[7], hi, cc)

	t.reduceInto(v)
}

// reduceInto sets v to t modulo p, below 2^255.
func (t *uint512) reduceInto(v *Element) {
	var h0, h1, h2, h3, lo, cc uint64

	// Fold the high half into the low half with 2^256 = 38 mod p. Each high
	// word times 38 leaves a low word, added in place, and a high word below
	// 38, added one position up.
	h0, lo = bits.Mul64(t[4], 38)
	t[0], cc = bits.Add64(t[0], lo, 0)
	h1, lo = bits.Mul64(t[5], 38)
	t[1], cc = bits.Add64(t[1], lo, cc)
	h2, lo = bits.Mul64(t[6], 38)
	t[2], cc = bits.Add64(t[2], lo, cc)
	h3, lo = bits.Mul64(t[7], 38)
	t[3], cc = bits.Add64(t[3], lo, cc)
	h3 += cc

	// h3 sits at 2^256 and is folded again together with bit 255, using
	// 2^255 = 19 mod p. (2*h3+1)*19 is far below 2^64.
	h3 = (h3 << 1) | (t[3] >> 63)
	t[3] &= maskLow63Bits
	v.l0, cc = bits.Add64(t[0], h3*19, 0)
	v.l1, cc = bits.Add64(t[1], h0, cc)
	v.l2, cc = bits.Add64(t[2], h1, cc)
	v.l3, _ = bits.Add64(t[3], h2, cc)

	// The value is now below 2^255 + 2^199, and one more fold of bit 255
	// brings it below 2^255.
	v.carryPropagate(0)
}
