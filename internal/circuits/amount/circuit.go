// Package amount implements the Amount auxiliary circuit: proving that a
// disclosed (rP, enc) pair was honestly derived from a witnessed
// (va, rcm, addr, r), without touching a coin or the balance domain at
// all. Grounded on original_source/src/common_verify/amount.rs.
package amount

import (
	"github.com/consensys/gnark/frontend"

	"github.com/privacycash/protocol/internal/gadgets"
)

// Circuit is the Amount Groth16 circuit. Public inputs, in order: RP
// (x,y), Enc — matching SPEC_FULL §4.D.5.
type Circuit struct {
	// Public
	RPX, RPY frontend.Variable `gnark:",public"`
	Enc      frontend.Variable `gnark:",public"`

	// Private
	Rcm          frontend.Variable
	Va           frontend.Variable
	AddrX, AddrY frontend.Variable
	R            frontend.Variable
}

// Define implements the Amount constraint system.
func (c *Circuit) Define(api frontend.API) error {
	curve, err := gadgets.NewEdCurve(api)
	if err != nil {
		return err
	}
	gens := gadgets.LoadFixedGenerators()

	rBits := gadgets.UnpackLE(api, c.R, 256)

	// rP = r*G_addr
	rP := gadgets.FixedBaseScalarMul(api, curve, gens.AddrX, gens.AddrY, rBits)
	api.AssertIsEqual(rP.X, c.RPX)
	api.AssertIsEqual(rP.Y, c.RPY)

	// rQ = r*addr ; enc = rQ.x + va*2^128 + rcm
	addrPoint := gadgets.Point{X: c.AddrX, Y: c.AddrY}
	rQ := gadgets.VariableBaseScalarMul(api, curve, addrPoint, rBits)
	shift := api.Mul(c.Va, pow2_128())
	enc := api.Add(rQ.X, api.Add(shift, c.Rcm))
	api.AssertIsEqual(enc, c.Enc)

	return nil
}

func pow2_128() frontend.Variable {
	return "340282366920938463463374607431768211456"
}
