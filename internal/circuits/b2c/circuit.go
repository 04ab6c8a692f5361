// Package b2c implements the B2C ("deposit") circuit: moving a cleartext
// amount from outside the balance domain directly into a private coin.
// Grounded on original_source/src/b2c.rs and on internal/circuits/p2c,
// which shares every gadget but the balance-sufficiency check.
package b2c

import (
	"github.com/consensys/gnark/frontend"

	"github.com/privacycash/protocol/internal/gadgets"
)

// Circuit is the B2C Groth16 circuit. Public inputs, in order: Va (clear),
// Coin, RP (x,y), Enc, Addr (x,y) — matching SPEC_FULL §4.D.3.
type Circuit struct {
	// Public
	Va           frontend.Variable `gnark:",public"`
	Coin         frontend.Variable `gnark:",public"`
	RPX, RPY     frontend.Variable `gnark:",public"`
	Enc          frontend.Variable `gnark:",public"`
	AddrX, AddrY frontend.Variable `gnark:",public"`

	// Private
	Rcm    frontend.Variable
	R      frontend.Variable
	AddrSK frontend.Variable
}

// Define implements the B2C constraint system.
func (c *Circuit) Define(api frontend.API) error {
	curve, err := gadgets.NewEdCurve(api)
	if err != nil {
		return err
	}
	gens := gadgets.LoadFixedGenerators()
	table := gadgets.LoadPedersenTable()

	vaBits := gadgets.UnpackLE(api, c.Va, 128)
	rcmBits := gadgets.UnpackLE(api, c.Rcm, 128)
	rBits := gadgets.UnpackLE(api, c.R, 256)
	addrSKBits := gadgets.UnpackLE(api, c.AddrSK, 256)

	// coin = PedersenHash(rcm || va || addr.x)
	addrXBits := gadgets.UnpackLE(api, c.AddrX, 256)
	coinInput := concat(rcmBits, vaBits, addrXBits)
	coin := gadgets.PedersenHash(api, curve, table, coinInput)
	api.AssertIsEqual(coin, c.Coin)

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

	// addr_sk*G_addr must equal the public addr (resolved open question,
	// SPEC_FULL §9, shared with p2c).
	derivedAddr := gadgets.FixedBaseScalarMul(api, curve, gens.AddrX, gens.AddrY, addrSKBits)
	api.AssertIsEqual(derivedAddr.X, c.AddrX)
	api.AssertIsEqual(derivedAddr.Y, c.AddrY)

	return nil
}

func concat(parts ...[]frontend.Variable) []frontend.Variable {
	out := make([]frontend.Variable, 0, 512)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func pow2_128() frontend.Variable {
	return "340282366920938463463374607431768211456"
}
