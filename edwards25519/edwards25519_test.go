// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edwards25519

import (
	"encoding/hex"
	"math/big"
	"math/rand"
	"reflect"
	"testing"
	"testing/quick"

	"github.com/ctcurve/curve25519/field"
)

var B = NewGeneratorPoint()
var I = NewIdentityPoint()

func checkOnCurve(t *testing.T, points ...*Point) {
	t.Helper()
	for i, p := range points {
		var XX, YY, ZZ, ZZZZ field.Element
		XX.Square(&p.x)
		YY.Square(&p.y)
		ZZ.Square(&p.z)
		ZZZZ.Square(&ZZ)
		// -x² + y² = 1 + dx²y²
		// -(X/Z)² + (Y/Z)² = 1 + d(X/Z)²(Y/Z)²
		// (-X² + Y²)/Z² = 1 + (dX²Y²)/Z⁴
		// (-X² + Y²)*Z² = Z⁴ + dX²Y²
		var lhs, rhs field.Element
		lhs.Subtract(&YY, &XX).Multiply(&lhs, &ZZ)
		rhs.Multiply(d, &XX).Multiply(&rhs, &YY).Add(&rhs, &ZZZZ)
		if lhs.Equal(&rhs) != 1 {
			t.Errorf("X, Y, and Z do not specify a point on the curve\nX = %v\nY = %v\nZ = %v", p.x, p.y, p.z)
		}
		// xy = T/Z
		lhs.Multiply(&p.x, &p.y)
		rhs.Multiply(&p.z, &p.t)
		if lhs.Equal(&rhs) != 1 {
			t.Errorf("point %d is not valid\nX = %v\nY = %v\nZ = %v", i, p.x, p.y, p.z)
		}
	}
}

// Generate returns a random multiple of the generator, with a scalar below
// 2^255.
func (Point) Generate(rand *rand.Rand, size int) reflect.Value {
	var s [32]byte
	rand.Read(s[:])
	s[31] &= 127
	return reflect.ValueOf(*new(Point).ScalarBaseMult(&s))
}

func fieldFromDecimal(t *testing.T, s string) *field.Element {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("not a valid decimal: %s", s)
	}
	buf := make([]byte, 32)
	n.FillBytes(buf)
	for i := 0; i < 16; i++ {
		buf[i], buf[31-i] = buf[31-i], buf[i]
	}
	fe, err := new(field.Element).SetBytes(buf)
	if err != nil {
		t.Fatal(err)
	}
	return fe
}

func TestGenerator(t *testing.T) {
	// These are the coordinates of B from RFC 8032, Section 5.1.
	x := fieldFromDecimal(t, "15112221349535400772501151409588531511454012693041857206046113283949847762202")
	y := fieldFromDecimal(t, "46316835694926478169428394003475163141307993866256225615783033603165251855960")

	if B.x.Equal(x) != 1 {
		t.Errorf("B.x = %v, want %v", B.x, x)
	}
	if B.y.Equal(y) != 1 {
		t.Errorf("B.y = %v, want %v", B.y, y)
	}
	if B.z.Equal(feOne) != 1 {
		t.Errorf("B.z = %v, want 1", B.z)
	}
	checkOnCurve(t, B)
}

func TestCurveConstant(t *testing.T) {
	// d = -121665/121666
	var num, den, want field.Element
	num.Mult32(feOne, 121665)
	num.Negate(&num)
	den.Mult32(feOne, 121666)
	want.Multiply(&num, den.Invert(&den))
	if d.Equal(&want) != 1 {
		t.Errorf("d = %v, want %v", d, want)
	}
	var two field.Element
	two.Add(feOne, feOne)
	if want.Multiply(d, &two); d2.Equal(&want) != 1 {
		t.Errorf("d2 = %v, want %v", d2, want)
	}
}

func TestAddSubNegOnBasePoint(t *testing.T) {
	checkLhs, checkRhs := &Point{}, &Point{}

	checkLhs.Add(B, B)
	tmpP2 := new(projP2).FromP3(B)
	tmpP1xP1 := new(projP1xP1).Double(tmpP2)
	checkRhs.fromP1xP1(tmpP1xP1)
	if checkLhs.Equal(checkRhs) != 1 {
		t.Error("B + B != [2]B")
	}
	checkOnCurve(t, checkLhs, checkRhs)

	Bneg := new(Point).Negate(B)
	checkOnCurve(t, Bneg)

	checkLhs.Subtract(B, B)
	checkRhs.Add(B, Bneg)
	if checkLhs.Equal(checkRhs) != 1 {
		t.Error("B - B != B + (-B)")
	}
	if I.Equal(checkLhs) != 1 {
		t.Error("B - B != 0")
	}
	if I.Equal(checkRhs) != 1 {
		t.Error("B + (-B) != 0")
	}
	checkOnCurve(t, checkLhs, checkRhs)
}

func TestMixedAdditionMatchesProjective(t *testing.T) {
	mixed := func(p, q Point) bool {
		pc := new(projCached).FromP3(&q)
		ac := new(affineCached).FromP3(&q)

		var r1, r2, r3, r4 Point
		r1.fromP1xP1(new(projP1xP1).Add(&p, pc))
		r2.fromP1xP1(new(projP1xP1).AddAffine(&p, ac))
		r3.fromP1xP1(new(projP1xP1).Sub(&p, pc))
		r4.fromP1xP1(new(projP1xP1).SubAffine(&p, ac))

		var sum, diff Point
		sum.Add(&p, &q)
		diff.Subtract(&p, &q)

		checkOnCurve(t, &r1, &r2, &r3, &r4)
		return r1.Equal(&r2) == 1 && r1.Equal(&sum) == 1 &&
			r3.Equal(&r4) == 1 && r3.Equal(&diff) == 1
	}
	if err := quick.Check(mixed, quickCheckConfig32); err != nil {
		t.Error(err)
	}
}

func TestDoubleIdentityAndLowOrder(t *testing.T) {
	// The doubling formula has no exceptional cases, so it also handles the
	// identity and the point of order two (0, -1).
	var p1 projP1xP1
	var out Point

	p1.Double(new(projP2).Zero())
	if out.fromP1xP1(&p1).Equal(I) != 1 {
		t.Error("2 * 0 != 0")
	}

	orderTwo, err := new(Point).SetBytes(decodeHex("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"))
	if err != nil {
		t.Fatal(err)
	}
	checkOnCurve(t, orderTwo)
	p1.Double(new(projP2).FromP3(orderTwo))
	if out.fromP1xP1(&p1).Equal(I) != 1 {
		t.Error("2 * (0, -1) != 0")
	}
	if orderTwo.Equal(I) != 0 {
		t.Error("(0, -1) == 0")
	}
}

func TestConversions(t *testing.T) {
	conversions := func(p Point) bool {
		var back Point
		back.fromP2(new(projP2).FromP3(&p))
		checkOnCurve(t, &back)
		return back.Equal(&p) == 1
	}
	if err := quick.Check(conversions, quickCheckConfig32); err != nil {
		t.Error(err)
	}
}

func TestExtendedCoordinates(t *testing.T) {
	X, Y, Z, T := B.ExtendedCoordinates()
	p, err := new(Point).SetExtendedCoordinates(X, Y, Z, T)
	if err != nil {
		t.Fatal(err)
	}
	if p.Equal(B) != 1 {
		t.Error("ExtendedCoordinates round-trip failed")
	}

	// Scaling all coordinates by the same factor is the same point.
	var two, X2, Y2, Z2, T2 field.Element
	two.Add(feOne, feOne)
	X2.Multiply(X, &two)
	Y2.Multiply(Y, &two)
	Z2.Multiply(Z, &two)
	T2.Multiply(T, &two)
	if p, err := new(Point).SetExtendedCoordinates(&X2, &Y2, &Z2, &T2); err != nil || p.Equal(B) != 1 {
		t.Errorf("scaled coordinates rejected: %v", err)
	}

	// A T that doesn't match XY/Z is rejected.
	if _, err := new(Point).SetExtendedCoordinates(X, Y, Z, &two); err == nil {
		t.Error("inconsistent T accepted")
	}
	var zero field.Element
	if _, err := new(Point).SetExtendedCoordinates(&zero, &zero, &zero, &zero); err == nil {
		t.Error("all-zero coordinates accepted")
	}
}

func TestBytesMontgomery(t *testing.T) {
	// The generator maps to u = 9.
	want := decodeHex("0900000000000000000000000000000000000000000000000000000000000000")
	if got := B.BytesMontgomery(); hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("B.BytesMontgomery() = %x, want %x", got, want)
	}

	if got := I.BytesMontgomery(); hex.EncodeToString(got) != hex.EncodeToString(make([]byte, 32)) {
		t.Errorf("I.BytesMontgomery() = %x, want zero", got)
	}

	// v and -v share a u-coordinate.
	negation := func(p Point) bool {
		n := new(Point).Negate(&p)
		return hex.EncodeToString(p.BytesMontgomery()) == hex.EncodeToString(n.BytesMontgomery())
	}
	if err := quick.Check(negation, quickCheckConfig32); err != nil {
		t.Error(err)
	}
}

func TestMultByCofactor(t *testing.T) {
	eight := [32]byte{8}
	multByCofactor := func(p Point) bool {
		var got, want Point
		got.MultByCofactor(&p)
		want.ScalarMult(&eight, &p)
		checkOnCurve(t, &got)
		return got.Equal(&want) == 1
	}
	if err := quick.Check(multByCofactor, quickCheckConfig32); err != nil {
		t.Error(err)
	}

	p := new(Point).MultByCofactor(B)
	if got := hex.EncodeToString(p.Bytes()); got != "b4b937fca95b2f1e93e41e62fc3c78818ff38a66096fad6e7973e5c90006d321" {
		t.Errorf("8 * B = %s", got)
	}
}

func TestUninitializedPointPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("use of an uninitialized Point did not panic")
		}
	}()
	var p Point
	p.Bytes()
}

func decodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
