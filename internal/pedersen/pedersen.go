// Package pedersen implements the protocol's Pedersen hash and Pedersen
// commitment over JubJub, built on the fixed generator table derived from
// the protocol seed (see internal/xorshift, internal/jubjub).
package pedersen

import (
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/jubjub"
)

const (
	// PHIN is the Pedersen hash input width in bits.
	PHIN = 512
	// PHOUT is the Pedersen hash/commit output width in bits (one Fr
	// element serialized as 256 bits).
	PHOUT = 256
	// chunks is the number of 4-bit windows PHIN splits into.
	chunks = PHIN / 4
	// perChunk is the number of precomputed multiples per window.
	perChunk = 16
)

// Table holds 128 chunks x 16 multiples x 2 coordinates of Fr, the fixed
// constant table every participant must derive identically from the
// protocol seed.
type Table struct {
	X [chunks][perChunk]fr.Element
	Y [chunks][perChunk]fr.Element
}

var (
	tableOnce sync.Once
	table     *Table
	gV, gR    jubjub.Point
)

// GenerateConstantTable deterministically builds the Pedersen hash table.
// The 128 chunk base points are the first 128 points of the one canonical
// deterministic sequence (internal/jubjub.DerivePoints), so every
// participant regenerating this table from the seed gets the same 128
// bases and hence the same 16-multiple table per chunk. Chunk 1's and
// chunk 2's base points double as G_v and G_r (internal/jubjub.
// FixedGenerators draws the identical prefix of the same sequence), so the
// table and the two commitment generators are never allowed to drift
// apart.
func GenerateConstantTable() *Table {
	bases := jubjub.DerivePoints(chunks)
	var t Table
	for c := 0; c < chunks; c++ {
		base := bases[c]
		acc := jubjub.Identity()
		for m := 0; m < perChunk; m++ {
			t.X[c][m] = acc.X
			t.Y[c][m] = acc.Y
			acc = jubjub.Add(acc, base)
		}
	}
	return &t
}

// Generators returns the fixed table and the commitment generators G_v,
// G_r — the base points of table chunks 1 and 2 per SPEC_FULL §4.B,
// computing them once per process. G_addr (internal/jubjub.FixedGenerators)
// is the same point as G_v, not a third independent one.
func Generators() (*Table, jubjub.Point, jubjub.Point) {
	tableOnce.Do(func() {
		table = GenerateConstantTable()
		_, gV, gR = jubjub.FixedGenerators()
	})
	return table, gV, gR
}

// bitsLE decodes a field element's canonical integer representation into n
// bits, least-significant bit first, matching SPEC_FULL's "LSB-first when
// decoding a value" convention (§9).
func bitsLE(v fr.Element, n int) []bool {
	return jubjub.BitsLE(v, n)
}

// Hash computes the Pedersen hash of a 512-bit input (bit-little-endian
// within each 4-bit chunk, chunk order matching the concatenation order of
// the caller's fields) to an Fr element (the x-coordinate of the
// accumulated point).
func Hash(bits []bool) fr.Element {
	if len(bits) != PHIN {
		panic("pedersen: hash input must be exactly 512 bits")
	}
	t, _, _ := Generators()
	acc := jubjub.Identity()
	for c := 0; c < chunks; c++ {
		b0 := bits[c*4]
		b1 := bits[c*4+1]
		b2 := bits[c*4+2]
		b3 := bits[c*4+3]
		idx := 0
		if b0 {
			idx |= 1
		}
		if b1 {
			idx |= 2
		}
		if b2 {
			idx |= 4
		}
		if b3 {
			idx |= 8
		}
		chunkPoint := jubjub.Point{X: t.X[c][idx], Y: t.Y[c][idx]}
		acc = jubjub.Add(acc, chunkPoint)
	}
	return acc.X
}

// Commit computes com(v, r) = v*G_v + r*G_r for a 128-bit value v and a
// 256-bit blinding r, each decoded least-significant bit first.
func Commit(value fr.Element, blind fr.Element) jubjub.Point {
	_, gv, gr := Generators()
	vBits := bitsLE(value, 128)
	rBits := bitsLE(blind, 256)
	left := jubjub.ScalarMul(gv, vBits)
	right := jubjub.ScalarMul(gr, rBits)
	return jubjub.Add(left, right)
}

// BuildCoin computes coin = PedersenHash(rcm(128) ‖ value(128) ‖ addrX(256))
// per SPEC_FULL §3, the coin commitment bound to a recipient address.
func BuildCoin(rcm, value fr.Element, addrX fr.Element) fr.Element {
	bits := make([]bool, 0, PHIN)
	bits = append(bits, bitsLE(rcm, 128)...)
	bits = append(bits, bitsLE(value, 128)...)
	bits = append(bits, bitsLE(addrX, 256)...)
	return Hash(bits)
}

// BuildNullifier computes null = PedersenHash(rcm(128) ‖ value(128) ‖
// addr_sk(256)) per SPEC_FULL §3.
func BuildNullifier(rcm, value fr.Element, addrSK fr.Element) fr.Element {
	bits := make([]bool, 0, PHIN)
	bits = append(bits, bitsLE(rcm, 128)...)
	bits = append(bits, bitsLE(value, 128)...)
	bits = append(bits, bitsLE(addrSK, 256)...)
	return Hash(bits)
}

// CombineNodes computes the Merkle internal-node hash PedersenHash(left(256)
// ‖ right(256)) used by internal/merkle.
func CombineNodes(left, right fr.Element) fr.Element {
	bits := make([]bool, 0, PHIN)
	bits = append(bits, bitsLE(left, 256)...)
	bits = append(bits, bitsLE(right, 256)...)
	return Hash(bits)
}
