// Package c2b implements the C2B ("withdraw") circuit: spending a coin out
// of the Merkle tree and revealing its amount in cleartext. Grounded on
// original_source/src/c2b.rs; shares its nullifier and Merkle-membership
// gadgets with internal/circuits/c2p.
package c2b

import (
	"github.com/consensys/gnark/frontend"

	"github.com/privacycash/protocol/internal/gadgets"
)

// Depth is the fixed Merkle tree depth this circuit's path wiring is
// compiled for, matching the protocol's default tree (SPEC_FULL §3).
const Depth = 60

// Circuit is the C2B Groth16 circuit. Public inputs, in order: Ba (clear),
// Va (clear), Nullifier, Root — matching SPEC_FULL §4.D.4.
type Circuit struct {
	// Public
	Ba        frontend.Variable `gnark:",public"`
	Va        frontend.Variable `gnark:",public"`
	Nullifier frontend.Variable `gnark:",public"`
	Root      frontend.Variable `gnark:",public"`

	// Private
	Rcm    frontend.Variable
	AddrSK frontend.Variable
	Path   [Depth]frontend.Variable
	Loc    [Depth]frontend.Variable
}

// Define implements the C2B constraint system. Ba is carried as a public
// input for parity with SPEC_FULL's witness layout even though the
// circuit itself places no constraint on it beyond disclosure. The
// contract credits Va, not Ba, to the withdrawing address.
func (c *Circuit) Define(api frontend.API) error {
	curve, err := gadgets.NewEdCurve(api)
	if err != nil {
		return err
	}
	gens := gadgets.LoadFixedGenerators()
	table := gadgets.LoadPedersenTable()

	rcmBits := gadgets.UnpackLE(api, c.Rcm, 128)
	vaBits := gadgets.UnpackLE(api, c.Va, 128)
	addrSKBits := gadgets.UnpackLE(api, c.AddrSK, 256)

	// nullifier = PedersenHash(rcm || va || addr_sk)
	nullInput := concat(rcmBits, vaBits, addrSKBits)
	nullifier := gadgets.PedersenHash(api, curve, table, nullInput)
	api.AssertIsEqual(nullifier, c.Nullifier)

	// addr = addr_sk * G_addr ; coin = PedersenHash(rcm || va || addr.x)
	addr := gadgets.FixedBaseScalarMul(api, curve, gens.AddrX, gens.AddrY, addrSKBits)
	addrXBits := gadgets.UnpackLE(api, addr.X, 256)
	coinInput := concat(rcmBits, vaBits, addrXBits)
	coin := gadgets.PedersenHash(api, curve, table, coinInput)
	coinBits := gadgets.UnpackLE(api, coin, 256)

	siblings := make([][]frontend.Variable, Depth)
	loc := make([]frontend.Variable, Depth)
	for i := 0; i < Depth; i++ {
		siblings[i] = gadgets.UnpackLE(api, c.Path[i], 256)
		loc[i] = c.Loc[i]
	}
	rootBits := gadgets.MerkleFold(api, curve, table, coinBits, siblings, loc)
	root := api.FromBinary(rootBits...)
	api.AssertIsEqual(root, c.Root)

	return nil
}

func concat(parts ...[]frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, 0, 512)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
