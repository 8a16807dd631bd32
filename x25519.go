// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package curve25519 provides an implementation of the X25519 function, which
// performs scalar multiplication on the elliptic curve known as Curve25519.
// See RFC 7748.
//
// ScalarMult and ScalarBaseMult are the raw Montgomery ladder: they neither
// clamp the scalar nor check the result. X25519 is the key agreement boundary,
// and applies both.
package curve25519

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"github.com/pkg/errors"

	"github.com/ctcurve/curve25519/edwards25519"
	"github.com/ctcurve/curve25519/field"
)

const (
	// ScalarSize is the size of the scalar input to X25519.
	ScalarSize = 32
	// PointSize is the size of the point input to X25519.
	PointSize = 32
)

// Basepoint is the canonical Curve25519 generator.
var Basepoint []byte

var basePoint = [32]byte{9}

func init() { Basepoint = basePoint[:] }

// ErrLowOrderPoint is returned by X25519 when the shared secret is all zeroes,
// which happens when the peer's point has low order.
var ErrLowOrderPoint = errors.New("curve25519: bad input point: low order point")

// ScalarMult sets dst to the product scalar * point.
//
// Bits 254 down to 0 of scalar are used, and bit 255 is ignored. The scalar
// is not clamped, and an all-zero result is not rejected. dst may alias
// scalar or point.
func ScalarMult(dst, scalar, point *[32]byte) {
	var x1, x2, z2, x3, z3, tmp0, tmp1 field.Element
	x1.SetBytes(point[:])
	x2.One()
	x3.Set(&x1)
	z3.One()

	swap := 0
	for pos := 254; pos >= 0; pos-- {
		b := scalar[pos/8] >> uint(pos&7)
		b &= 1
		swap ^= int(b)
		x2.Swap(&x3, swap)
		z2.Swap(&z3, swap)
		swap = int(b)

		tmp0.Subtract(&x3, &z3)
		tmp1.Subtract(&x2, &z2)
		x2.Add(&x2, &z2)
		z2.Add(&x3, &z3)
		z3.Multiply(&tmp0, &x2)
		z2.Multiply(&z2, &tmp1)
		tmp0.Square(&tmp1)
		tmp1.Square(&x2)
		x3.Add(&z3, &z2)
		z2.Subtract(&z3, &z2)
		x2.Multiply(&tmp1, &tmp0)
		tmp1.Subtract(&tmp1, &tmp0)
		z2.Square(&z2)

		z3.Mult32(&tmp1, 121666)
		x3.Square(&x3)
		tmp0.Add(&tmp0, &z3)
		z3.Multiply(&x1, &z2)
		z2.Multiply(&tmp1, &tmp0)
	}

	x2.Swap(&x3, swap)
	z2.Swap(&z3, swap)

	z2.Invert(&z2)
	x2.Multiply(&x2, &z2)
	copy(dst[:], x2.Bytes())
}

// ScalarBaseMult sets dst to the product scalar * base where base is the
// standard generator.
//
// The result is the same as ScalarMult(dst, scalar, &[32]byte{9}), but it is
// computed with a precomputed table on the equivalent Edwards curve.
func ScalarBaseMult(dst, scalar *[32]byte) {
	checkBasepoint()

	s := *scalar
	s[31] &= 127

	var p edwards25519.Point
	p.ScalarBaseMult(&s)
	copy(dst[:], p.BytesMontgomery())
}

// X25519 returns the result of the scalar multiplication (scalar * point),
// according to RFC 7748, Section 5. scalar, point and the return value are
// slices of 32 bytes.
//
// scalar can be generated at random, for example with crypto/rand. point should
// be either Basepoint or the output of another X25519 call.
//
// If point is Basepoint (but not if it's a different slice with the same
// contents) a precomputed implementation might be used for performance.
//
// If the result is all zeroes, ErrLowOrderPoint is returned.
func X25519(scalar, point []byte) ([]byte, error) {
	// Outline the body of function, to let the allocation be inlined in the
	// caller, and possibly avoid escaping to the heap.
	var dst [32]byte
	return x25519(&dst, scalar, point)
}

func x25519(dst *[32]byte, scalar, point []byte) ([]byte, error) {
	var in [32]byte
	if l := len(scalar); l != ScalarSize {
		return nil, errors.Errorf("curve25519: bad scalar length: %d, expected %d", l, ScalarSize)
	}
	if l := len(point); l != PointSize {
		return nil, errors.Errorf("curve25519: bad point length: %d, expected %d", l, PointSize)
	}
	copy(in[:], scalar)
	clamp(&in)
	if &point[0] == &Basepoint[0] {
		ScalarBaseMult(dst, &in)
	} else {
		var base, zero [32]byte
		copy(base[:], point)
		ScalarMult(dst, &in, &base)
		if subtle.ConstantTimeCompare(dst[:], zero[:]) == 1 {
			return nil, ErrLowOrderPoint
		}
	}
	return dst[:], nil
}

// clamp applies the RFC 7748 decodeScalar25519 bit fixing: the low three bits
// are cleared, bit 255 is cleared and bit 254 is set.
func clamp(k *[32]byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

func checkBasepoint() {
	if subtle.ConstantTimeCompare(Basepoint, []byte{
		0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}) != 1 {
		panic("curve25519: global Basepoint value was modified")
	}
}

// GenerateKey returns a new private scalar read from rand, and the matching
// public key X25519(priv, Basepoint). If rand is nil, crypto/rand.Reader is
// used.
//
// The private scalar is returned as read, and is clamped on every use.
func GenerateKey(random io.Reader) (priv, pub []byte, err error) {
	if random == nil {
		random = rand.Reader
	}
	priv = make([]byte, ScalarSize)
	if _, err := io.ReadFull(random, priv); err != nil {
		return nil, nil, errors.Wrap(err, "curve25519: reading private key")
	}
	pub, err = X25519(priv, Basepoint)
	if err != nil {
		return nil, nil, err
	}
	return priv, pub, nil
}
