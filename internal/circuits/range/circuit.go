// Package range implements the Range auxiliary circuit: proving a
// witnessed value va falls within disclosed bounds [low, up] and that a
// disclosed commitment hv opens to (va, rh). Grounded on
// original_source/src/common_verify/range.rs.
package rangeproof

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	tedwards "github.com/consensys/gnark/std/algebra/native/twistededwards"

	"github.com/privacycash/protocol/internal/gadgets"
)

// shift2p128 and its negation disambiguate sign when comparing values that
// may be encoded as either side of the field's midpoint (SPEC_FULL §4.A).
var (
	shift2p128    = new(big.Int).Lsh(big.NewInt(1), 128)
	negShift2p128 = new(big.Int).Neg(shift2p128)
)

// Circuit is the Range Groth16 circuit. Public inputs, in order: Up, Low,
// HvX, HvY — matching SPEC_FULL §4.D.5.
type Circuit struct {
	// Public
	Up       frontend.Variable `gnark:",public"`
	Low      frontend.Variable `gnark:",public"`
	HvX, HvY frontend.Variable `gnark:",public"`

	// Private
	Va frontend.Variable
	Rh frontend.Variable
}

// Define implements the Range constraint system: low <= va <= up and
// hv = va*G_v + rh*G_r.
func (c *Circuit) Define(api frontend.API) error {
	curve, err := gadgets.NewEdCurve(api)
	if err != nil {
		return err
	}
	gens := gadgets.LoadFixedGenerators()

	gadgets.AssertNonLessWithMinus(api, c.Up, c.Va, shift2p128, negShift2p128)
	gadgets.AssertNonLessWithMinus(api, c.Va, c.Low, shift2p128, negShift2p128)

	vaBits := gadgets.UnpackLE(api, c.Va, 256)
	rhBits := gadgets.UnpackLE(api, c.Rh, 256)

	left := gadgets.FixedBaseScalarMul(api, curve, gens.VX, gens.VY, vaBits)
	right := gadgets.FixedBaseScalarMul(api, curve, gens.RX, gens.RY, rhBits)
	hv := curve.Add(tedwards.Point{X: left.X, Y: left.Y}, tedwards.Point{X: right.X, Y: right.Y})
	api.AssertIsEqual(hv.X, c.HvX)
	api.AssertIsEqual(hv.Y, c.HvY)

	return nil
}
