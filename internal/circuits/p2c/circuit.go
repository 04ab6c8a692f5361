// Package p2c implements the P2C ("send") circuit: moving value out of a
// public balance commitment into a private coin. Grounded on
// original_source/src/p2c.rs for witness/public layout, and on the
// teacher's internal/zerocash/circuit.go Define-method idiom.
package p2c

import (
	"github.com/consensys/gnark/frontend"
	tedwards "github.com/consensys/gnark/std/algebra/native/twistededwards"

	"github.com/privacycash/protocol/internal/gadgets"
)

// Circuit is the P2C Groth16 circuit. Public inputs, in order: Hb (x,y),
// Coin, DeltaBa (x,y), RP (x,y), Enc, Addr (x,y) — matching SPEC_FULL
// §4.D.1.
type Circuit struct {
	// Public
	HbX, HbY           frontend.Variable `gnark:",public"`
	Coin               frontend.Variable `gnark:",public"`
	DeltaBaX, DeltaBaY frontend.Variable `gnark:",public"`
	RPX, RPY           frontend.Variable `gnark:",public"`
	Enc                frontend.Variable `gnark:",public"`
	AddrX, AddrY       frontend.Variable `gnark:",public"`

	// Private
	Rh     frontend.Variable // 256-bit blinding for the balance commitment
	Rcm    frontend.Variable // 128-bit blinding for the coin/delta commitment
	Ba     frontend.Variable // sender's cleartext-witnessed balance (128-bit)
	Va     frontend.Variable // amount sent (128-bit)
	R      frontend.Variable // 256-bit fresh encryption scalar
	AddrSK frontend.Variable // 256-bit secret key
}

// Define implements the P2C constraint system.
func (c *Circuit) Define(api frontend.API) error {
	curve, err := gadgets.NewEdCurve(api)
	if err != nil {
		return err
	}
	gens := gadgets.LoadFixedGenerators()
	table := gadgets.LoadPedersenTable()

	baBits := gadgets.UnpackLE(api, c.Ba, 128)
	vaBits := gadgets.UnpackLE(api, c.Va, 128)
	gadgets.AssertNonLessThan(api, c.Ba, c.Va, 128)

	rhBits := gadgets.UnpackLE(api, c.Rh, 256)
	rcmBits := gadgets.UnpackLE(api, c.Rcm, 128)
	rBits := gadgets.UnpackLE(api, c.R, 256)
	addrSKBits := gadgets.UnpackLE(api, c.AddrSK, 256)

	// hb = ba*G_v + rh*G_r
	hbLeft := gadgets.FixedBaseScalarMul(api, curve, gens.VX, gens.VY, baBits)
	hbRight := gadgets.FixedBaseScalarMul(api, curve, gens.RX, gens.RY, rhBits)
	hb := curve.Add(tedwards.Point{X: hbLeft.X, Y: hbLeft.Y}, tedwards.Point{X: hbRight.X, Y: hbRight.Y})
	api.AssertIsEqual(hb.X, c.HbX)
	api.AssertIsEqual(hb.Y, c.HbY)

	// coin = PedersenHash(rcm || va || addr.x)
	addrXBits := gadgets.UnpackLE(api, c.AddrX, 256)
	coinInput := concat(rcmBits, vaBits, addrXBits)
	coin := gadgets.PedersenHash(api, curve, table, coinInput)
	api.AssertIsEqual(coin, c.Coin)

	// delta_ba = va*G_v + rcm*G_r
	dbLeft := gadgets.FixedBaseScalarMul(api, curve, gens.VX, gens.VY, vaBits)
	dbRight := gadgets.FixedBaseScalarMul(api, curve, gens.RX, gens.RY, rcmBits)
	db := curve.Add(tedwards.Point{X: dbLeft.X, Y: dbLeft.Y}, tedwards.Point{X: dbRight.X, Y: dbRight.Y})
	api.AssertIsEqual(db.X, c.DeltaBaX)
	api.AssertIsEqual(db.Y, c.DeltaBaY)

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
	// SPEC_FULL §9): binds knowledge of addr_sk to the disclosed address.
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
	// 2^128 as a field constant.
	return "340282366920938463463374607431768211456"
}
