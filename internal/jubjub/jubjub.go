// Package jubjub implements plain (out-of-circuit) arithmetic on the JubJub
// twisted-Edwards curve whose base field is BLS12-381's scalar field Fr.
// The in-circuit counterpart lives in internal/gadgets, built on gnark's
// std/algebra/native/twistededwards gadget over the same curve.
package jubjub

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/xorshift"
)

// Point is an affine point (x, y) on -x^2 + y^2 = 1 + d*x^2*y^2 over Fr.
// The identity element is (0, 1).
type Point struct {
	X, Y fr.Element
}

// d is JubJub's twisted-Edwards parameter, d = -(10240/10241) mod r, the
// same constant used by the Sapling JubJub curve (a = -1).
var curveD fr.Element

func init() {
	num := fr.NewElement(10240)
	num.Neg(&num)
	den := fr.NewElement(10241)
	den.Inverse(&den)
	curveD.Mul(&num, &den)
}

// Identity returns the curve's neutral element (0, 1).
func Identity() Point {
	var p Point
	p.X.SetZero()
	p.Y.SetOne()
	return p
}

// Add computes the complete twisted-Edwards addition law; it has no
// exceptional cases, including at the identity.
func Add(p, q Point) Point {
	var y1y2, x1x2, dx1x2y1y2 fr.Element
	y1y2.Mul(&p.Y, &q.Y)
	x1x2.Mul(&p.X, &q.X)
	dx1x2y1y2.Mul(&curveD, &x1x2)
	dx1x2y1y2.Mul(&dx1x2y1y2, &y1y2)

	var d1, d2, one fr.Element
	one.SetOne()
	d1.Add(&dx1x2y1y2, &one)
	d1.Inverse(&d1)

	d2.Neg(&dx1x2y1y2)
	d2.Add(&d2, &one)
	d2.Inverse(&d2)

	var x1y2, y1x2 fr.Element
	x1y2.Mul(&p.X, &q.Y)
	y1x2.Mul(&p.Y, &q.X)

	var out Point
	out.X.Add(&x1y2, &y1x2)
	out.X.Mul(&out.X, &d1)

	out.Y.Add(&y1y2, &x1x2)
	out.Y.Mul(&out.Y, &d2)
	return out
}

// Double returns p + p.
func Double(p Point) Point {
	return Add(p, p)
}

// Neg returns the additive inverse of p, (-x, y).
func Neg(p Point) Point {
	var out Point
	out.X.Neg(&p.X)
	out.Y = p.Y
	return out
}

// ScalarMul computes bits-encoded * p by double-and-add, consuming bits in
// little-endian order (bits[0] is the least significant bit), matching the
// protocol's plain-arithmetic convention (SPEC_FULL §4.A).
func ScalarMul(p Point, bits []bool) Point {
	acc := Identity()
	base := p
	for i, b := range bits {
		if b {
			acc = Add(acc, base)
		}
		if i != len(bits)-1 {
			base = Double(base)
		}
	}
	return acc
}

// onCurveY solves y^2 = (1+x^2)/(1-d*x^2) for a y with the given x,
// returning ok=false when x admits no solution (1-d*x^2 is zero or the
// right-hand side is a non-residue).
func onCurveY(x fr.Element) (fr.Element, bool) {
	var xx, num, den, one fr.Element
	one.SetOne()
	xx.Square(&x)
	num.Add(&one, &xx)
	den.Mul(&curveD, &xx)
	den.Neg(&den)
	den.Add(&den, &one)
	if den.IsZero() {
		return fr.Element{}, false
	}
	den.Inverse(&den)
	var ySq fr.Element
	ySq.Mul(&num, &den)
	var y fr.Element
	if y.Sqrt(&ySq) == nil {
		return fr.Element{}, false
	}
	return y, true
}

// PointFromRNG draws a deterministic curve point by try-and-increment: it
// consumes four 64-bit limbs (reduced mod r) as a candidate x-coordinate and retries with
// further draws until a valid y exists. Used only for protocol-fixed
// generators (G_addr, G_v, G_r, the Pedersen table) derived from the
// xorshift seed — never for proof randomness.
func PointFromRNG(rng *xorshift.RNG) Point {
	for {
		limbs := rng.Fill(4)
		var x fr.Element
		x.SetBigInt(limbsToBigInt(limbs))
		if y, ok := onCurveY(x); ok {
			return Point{X: x, Y: y}
		}
	}
}

func limbsToBigInt(limbs []uint64) *big.Int {
	out := new(big.Int)
	for i := len(limbs) - 1; i >= 0; i-- {
		out.Lsh(out, 64)
		out.Or(out, new(big.Int).SetUint64(limbs[i]))
	}
	return out
}

// DerivePoints draws the first n points of the canonical deterministic
// sequence seeded from xorshift.Seed. Because the underlying stream is
// stateless across calls (always restarted fresh), DerivePoints(m) and
// DerivePoints(n) agree on their first min(m,n) elements for any m, n — so
// callers needing different prefixes of the same sequence (the three fixed
// generators, then the Pedersen table's 128 chunk bases) stay consistent
// without sharing RNG state.
func DerivePoints(n int) []Point {
	rng := xorshift.New()
	out := make([]Point, n)
	for i := range out {
		out[i] = PointFromRNG(rng)
	}
	return out
}

// FixedGenerators deterministically derives G_v and G_r from chunk bases 1
// and 2 of the canonical sequence — the same two points
// internal/pedersen's constant table builds its chunk-1 and chunk-2
// multiples from, so a caller here and the table always agree. G_addr is
// not a third, independent point: the protocol reuses G_v as the
// address-derivation base (addr = addr_sk * G_v), so it is returned as the
// same value as G_v. All participants MUST derive these identically.
func FixedGenerators() (gAddr, gV, gR Point) {
	pts := DerivePoints(3)
	gV = pts[1]
	gR = pts[2]
	gAddr = gV
	return gAddr, gV, gR
}

// BitsLE decodes a field element's canonical integer representation into
// n bits, least-significant bit first — the protocol's standard
// value-decoding convention (SPEC_FULL §9), shared by every package that
// needs to feed a plain fr.Element into ScalarMul or a Pedersen hash.
func BitsLE(v fr.Element, n int) []bool {
	bi := v.BigInt(new(big.Int))
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = bi.Bit(i) == 1
	}
	return out
}

// AddrFromSK derives the public address point addr = addr_sk * G_addr from
// a 256-bit secret key, consuming sk bits most-significant-bit first per
// SPEC_FULL §9 (bit ordering is protocol-critical).
func AddrFromSK(skBitsMSBFirst []bool) Point {
	gAddr, _, _ := FixedGenerators()
	bitsLE := make([]bool, len(skBitsMSBFirst))
	for i, b := range skBitsMSBFirst {
		bitsLE[len(skBitsMSBFirst)-1-i] = b
	}
	return ScalarMul(gAddr, bitsLE)
}

// AddrFromSKField derives the public address point from a secret key
// already encoded as a field element, by decoding it to 256
// most-significant-bit-first bits and delegating to AddrFromSK.
func AddrFromSKField(sk fr.Element) Point {
	bi := sk.BigInt(new(big.Int))
	bits := make([]bool, 256)
	for i := 0; i < 256; i++ {
		bits[i] = bi.Bit(255-i) == 1
	}
	return AddrFromSK(bits)
}
