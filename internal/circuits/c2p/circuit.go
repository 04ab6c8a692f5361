// Package c2p implements the C2P ("receive") circuit: spending a coin from
// the Merkle tree back into a fresh, re-blinded public-balance delta.
// Grounded on original_source/src/c2p.rs for witness/public layout and on
// internal/gadgets.MerkleFold for the authentication-path walk.
package c2p

import (
	"github.com/consensys/gnark/frontend"
	tedwards "github.com/consensys/gnark/std/algebra/native/twistededwards"

	"github.com/privacycash/protocol/internal/gadgets"
)

// Depth is the fixed Merkle tree depth this circuit's path wiring is
// compiled for, matching the protocol's default tree (SPEC_FULL §3).
const Depth = 60

// Circuit is the C2P Groth16 circuit. Public inputs, in order: DeltaBa
// (x,y), Nullifier, Root — matching SPEC_FULL §4.D.2.
type Circuit struct {
	// Public
	DeltaBaX, DeltaBaY frontend.Variable `gnark:",public"`
	Nullifier          frontend.Variable `gnark:",public"`
	Root               frontend.Variable `gnark:",public"`

	// Private
	Rcm    frontend.Variable
	RcmNew frontend.Variable
	Va     frontend.Variable
	AddrSK frontend.Variable
	Path   [Depth]frontend.Variable
	Loc    [Depth]frontend.Variable
}

// Define implements the C2P constraint system.
func (c *Circuit) Define(api frontend.API) error {
	curve, err := gadgets.NewEdCurve(api)
	if err != nil {
		return err
	}
	gens := gadgets.LoadFixedGenerators()
	table := gadgets.LoadPedersenTable()

	rcmBits := gadgets.UnpackLE(api, c.Rcm, 128)
	rcmNewBits := gadgets.UnpackLE(api, c.RcmNew, 128)
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

	// delta_ba = va*G_v + rcm_new*G_r (freshly blinded, hides the amount
	// received)
	dbLeft := gadgets.FixedBaseScalarMul(api, curve, gens.VX, gens.VY, vaBits)
	dbRight := gadgets.FixedBaseScalarMul(api, curve, gens.RX, gens.RY, rcmNewBits)
	db := curve.Add(tedwards.Point{X: dbLeft.X, Y: dbLeft.Y}, tedwards.Point{X: dbRight.X, Y: dbRight.Y})
	api.AssertIsEqual(db.X, c.DeltaBaX)
	api.AssertIsEqual(db.Y, c.DeltaBaY)

	return nil
}

func concat(parts ...[]frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, 0, 512)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
