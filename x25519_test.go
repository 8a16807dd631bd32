// Copyright (c) 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package curve25519

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"io"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/require"
	xcurve25519 "golang.org/x/crypto/curve25519"
)

func decodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func to32(t *testing.T, b []byte) *[32]byte {
	t.Helper()
	require.Len(t, b, 32)
	var out [32]byte
	copy(out[:], b)
	return &out
}

// RFC 7748, Section 5.2.
var rfcVectors = []struct {
	scalar, point, out string
}{
	{
		"a546e36bf0527c9d3b16154b82465edd62144c0ac1fc5a18506a2244ba449ac4",
		"e6db6867583030db3594c1a424b15f7c726624ec26b3353b10a903a6d0ab1c4c",
		"c3da55379de9c6908e94ea4df28d084f32eccf03491c71f754b4075577a28552",
	},
	{
		"4b66e9d4d1b4673c5ad22691957d6af5c11b6421e0ea01d42ca4169e7918ba0d",
		"e5210f12786811d3f4b7959d0538ae2c31dbe7106fc03c3efc4cd549c715a493",
		"95cbde9476e8907d7aade45cb4b873f88b595a68799fa152e6f8f7647aac7957",
	},
}

func TestX25519Vectors(t *testing.T) {
	for _, v := range rfcVectors {
		out, err := X25519(decodeHex(t, v.scalar), decodeHex(t, v.point))
		require.NoError(t, err)
		require.Equal(t, v.out, hex.EncodeToString(out))
	}
}

func TestScalarMultVectors(t *testing.T) {
	// ScalarMult does not clamp, so the scalar is clamped here as X25519
	// would do.
	for _, v := range rfcVectors {
		scalar := to32(t, decodeHex(t, v.scalar))
		clamp(scalar)
		var dst [32]byte
		ScalarMult(&dst, scalar, to32(t, decodeHex(t, v.point)))
		require.Equal(t, v.out, hex.EncodeToString(dst[:]))
	}
}

func TestX25519Iterated(t *testing.T) {
	// RFC 7748, Section 5.2: k and u both start as 9, then each round sets
	// k = X25519(k, u) and u to the old k.
	checkpoints := map[int]string{
		1:       "422c8e7a6227d7bca1350b3e2bb7279f7897b87bb6854b783c60e80311ae3079",
		1000:    "684cf59ba83309552800ef566f2f4d3c1c3887c49360e3875f2eb94d99532c51",
		1000000: "7c3911e0ab2586fd864497297e575e6f3bc601c0883c30df5f4dd2d24f665424",
	}
	rounds := 1000000
	if testing.Short() {
		rounds = 1000
	}

	k := make([]byte, 32)
	k[0] = 9
	u := make([]byte, 32)
	u[0] = 9
	for i := 1; i <= rounds; i++ {
		out, err := X25519(k, u)
		require.NoError(t, err)
		u, k = k, out
		if want, ok := checkpoints[i]; ok {
			require.Equal(t, want, hex.EncodeToString(k), "after %d iterations", i)
		}
	}
}

func TestX25519IteratedMatchesXCrypto(t *testing.T) {
	k := make([]byte, 32)
	k[0] = 9
	u := make([]byte, 32)
	u[0] = 9
	wantK, wantU := append([]byte(nil), k...), append([]byte(nil), u...)
	for i := 1; i <= 1000; i++ {
		out, err := X25519(k, u)
		require.NoError(t, err)
		want, err := xcurve25519.X25519(wantK, wantU)
		require.NoError(t, err)
		require.Equal(t, want, out, "after %d iterations", i)
		u, k = k, out
		wantU, wantK = wantK, want
	}
}

func TestX25519Base(t *testing.T) {
	x := make([]byte, ScalarSize)
	x[0] = 1
	for i := 0; i < 200; i++ {
		var err error
		x, err = X25519(x, Basepoint)
		require.NoError(t, err)
	}
	const expectedHex = "89161fde887b2b53de549af483940106ecc114d6982daa98256de23bdf77661a"
	require.Equal(t, expectedHex, hex.EncodeToString(x))
}

func TestDiffieHellman(t *testing.T) {
	// RFC 7748, Section 6.1.
	alicePriv := decodeHex(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	bobPriv := decodeHex(t, "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb")

	alicePub, err := X25519(alicePriv, Basepoint)
	require.NoError(t, err)
	require.Equal(t, "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a", hex.EncodeToString(alicePub))

	bobPub, err := X25519(bobPriv, Basepoint)
	require.NoError(t, err)
	require.Equal(t, "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f", hex.EncodeToString(bobPub))

	aliceShared, err := X25519(alicePriv, bobPub)
	require.NoError(t, err)
	bobShared, err := X25519(bobPriv, alicePub)
	require.NoError(t, err)

	const shared = "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742"
	require.Equal(t, shared, hex.EncodeToString(aliceShared))
	require.Equal(t, shared, hex.EncodeToString(bobShared))
}

func TestKeyExchange(t *testing.T) {
	clientPriv, clientPub, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	serverPriv, serverPub, err := GenerateKey(nil)
	require.NoError(t, err)

	clientKey, err := X25519(clientPriv, serverPub)
	require.NoError(t, err)
	serverKey, err := X25519(serverPriv, clientPub)
	require.NoError(t, err)

	require.NotEqual(t, make([]byte, 32), clientKey)
	require.Equal(t, clientKey, serverKey)
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestGenerateKey(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 32)
	priv, pub, err := GenerateKey(bytes.NewReader(seed))
	require.NoError(t, err)
	require.Equal(t, seed, priv)

	want, err := xcurve25519.X25519(seed, xcurve25519.Basepoint)
	require.NoError(t, err)
	require.Equal(t, want, pub)

	priv, pub, err = GenerateKey(bytes.NewReader(seed[:31]))
	require.Error(t, err)
	require.Nil(t, priv)
	require.Nil(t, pub)

	_, _, err = GenerateKey(errReader{})
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestBadLengths(t *testing.T) {
	for _, tt := range []struct {
		name          string
		scalar, point []byte
	}{
		{"short scalar", make([]byte, 31), Basepoint},
		{"long scalar", make([]byte, 33), Basepoint},
		{"nil scalar", nil, Basepoint},
		{"short point", make([]byte, 32), make([]byte, 31)},
		{"nil point", make([]byte, 32), nil},
	} {
		out, err := X25519(tt.scalar, tt.point)
		require.Error(t, err, tt.name)
		require.Nil(t, out, tt.name)
	}
}

func TestLowOrderPoints(t *testing.T) {
	scalar := make([]byte, ScalarSize)
	_, err := io.ReadFull(rand.Reader, scalar)
	require.NoError(t, err)

	for _, point := range []string{
		// 0
		"0000000000000000000000000000000000000000000000000000000000000000",
		// 1
		"0100000000000000000000000000000000000000000000000000000000000000",
		// p - 1, of order two
		"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
		// of order eight
		"e0eb7a7c3b41b8ae1656e3faf19fc46ada098deb9c32b1fd866205165f49b800",
		"5f9c95bca3508c24b1d0b1559c83ef5b04445cc4581c8e86d8224eddd09f1157",
	} {
		out, err := X25519(scalar, decodeHex(t, point))
		require.ErrorIs(t, err, ErrLowOrderPoint, point)
		require.Nil(t, out)

		// The raw ladder returns zero without complaint, once the scalar is
		// a multiple of the cofactor.
		clamped := to32(t, scalar)
		clamp(clamped)
		var dst [32]byte
		ScalarMult(&dst, clamped, to32(t, decodeHex(t, point)))
		require.Equal(t, make([]byte, 32), dst[:], point)
	}
}

func TestScalarMultEdgeCases(t *testing.T) {
	var zero, dst [32]byte
	var nine = [32]byte{9}

	// Scalar zero yields the neutral element, encoded as zero.
	ScalarMult(&dst, &zero, &nine)
	require.Equal(t, zero, dst)

	// Scalar one is the identity map on u.
	ScalarMult(&dst, &[32]byte{1}, &nine)
	require.Equal(t, nine, dst)

	// Bit 255 of the scalar is ignored.
	var s, high [32]byte
	_, err := io.ReadFull(rand.Reader, s[:])
	require.NoError(t, err)
	s[31] &= 127
	high = s
	high[31] |= 128
	var out1, out2 [32]byte
	ScalarMult(&out1, &s, &nine)
	ScalarMult(&out2, &high, &nine)
	require.Equal(t, out1, out2)

	// So is bit 255 of the point.
	highPoint := nine
	highPoint[31] |= 128
	ScalarMult(&out2, &s, &highPoint)
	require.Equal(t, out1, out2)
}

func TestScalarMultNoMutation(t *testing.T) {
	noMutation := func(scalar, point [32]byte) bool {
		s, p := scalar, point
		var dst1, dst2 [32]byte
		ScalarMult(&dst1, &scalar, &point)
		ScalarMult(&dst2, &scalar, &point)
		if scalar != s || point != p || dst1 != dst2 {
			return false
		}

		// dst may alias the inputs.
		aliased := point
		ScalarMult(&aliased, &scalar, &aliased)
		if aliased != dst1 {
			return false
		}
		aliased = scalar
		ScalarMult(&aliased, &aliased, &point)
		return aliased == dst1
	}
	require.NoError(t, quick.Check(noMutation, &quick.Config{MaxCount: 64}))
}

func TestScalarBaseMultMatchesScalarMult(t *testing.T) {
	basepoint := [32]byte{9}
	matches := func(scalar [32]byte) bool {
		var want, got [32]byte
		ScalarMult(&want, &scalar, &basepoint)
		ScalarBaseMult(&got, &scalar)
		return want == got
	}
	require.NoError(t, quick.Check(matches, &quick.Config{MaxCount: 256}))

	// Scalar zero maps to the identity, which encodes as zero.
	var zero, dst [32]byte
	ScalarBaseMult(&dst, &zero)
	require.Equal(t, zero, dst)
}

func TestBasepointFastPath(t *testing.T) {
	// A copy of Basepoint goes through the ladder, Basepoint itself through
	// the Edwards table.
	scalar := make([]byte, ScalarSize)
	for i := 0; i < 32; i++ {
		_, err := io.ReadFull(rand.Reader, scalar)
		require.NoError(t, err)

		fast, err := X25519(scalar, Basepoint)
		require.NoError(t, err)
		slow, err := X25519(scalar, append([]byte{}, Basepoint...))
		require.NoError(t, err)
		require.Equal(t, slow, fast)
	}
}

func TestX25519MatchesXCrypto(t *testing.T) {
	matches := func(scalar, point [32]byte) bool {
		want, wantErr := xcurve25519.X25519(scalar[:], point[:])
		got, err := X25519(scalar[:], point[:])
		if wantErr != nil || err != nil {
			return wantErr != nil && err != nil
		}
		return bytes.Equal(want, got)
	}
	require.NoError(t, quick.Check(matches, &quick.Config{MaxCount: 512}))
}

func BenchmarkScalarBaseMult(b *testing.B) {
	var in, out [32]byte
	in[0] = 1

	b.SetBytes(32)
	for i := 0; i < b.N; i++ {
		ScalarBaseMult(&out, &in)
	}
}

func BenchmarkX25519(b *testing.B) {
	scalar := make([]byte, ScalarSize)
	if _, err := io.ReadFull(rand.Reader, scalar); err != nil {
		b.Fatal(err)
	}
	point, err := X25519(scalar, Basepoint)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := X25519(scalar, point); err != nil {
			b.Fatal(err)
		}
	}
}
