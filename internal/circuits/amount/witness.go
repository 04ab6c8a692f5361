package amount

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/jubjub"
)

var pow2_128Int = new(big.Int).Lsh(big.NewInt(1), 128)

// Public is the plain-Go Amount public-input tuple: RP, Enc, matching
// SPEC_FULL §4.D.5's wire order.
type Public struct {
	RP  jubjub.Point
	Enc fr.Element
}

// Private is the plain-Go Amount witness.
type Private struct {
	Rcm    fr.Element
	Va     fr.Element
	AddrSK fr.Element
	R      fr.Element
}

// Build computes rP and enc for a disclosed amount sent to addr, and
// returns the public tuple plus the full assignment ready for proving.
func Build(priv Private, addr jubjub.Point) (Public, *Circuit) {
	gAddr, _, _ := jubjub.FixedGenerators()
	rP := jubjub.ScalarMul(gAddr, jubjub.BitsLE(priv.R, 256))
	rQ := jubjub.ScalarMul(addr, jubjub.BitsLE(priv.R, 256))

	var shift, enc fr.Element
	shift.SetBigInt(pow2_128Int)
	enc.Mul(&priv.Va, &shift)
	enc.Add(&enc, &rQ.X)
	enc.Add(&enc, &priv.Rcm)

	pub := Public{RP: rP, Enc: enc}

	c := &Circuit{
		RPX: rP.X.String(), RPY: rP.Y.String(),
		Enc: enc.String(),

		Rcm: priv.Rcm.String(), Va: priv.Va.String(),
		AddrX: addr.X.String(), AddrY: addr.Y.String(),
		R: priv.R.String(),
	}
	return pub, c
}

// PublicAssignment builds a public-fields-only Circuit.
func (pub Public) PublicAssignment() *Circuit {
	return &Circuit{
		RPX: pub.RP.X.String(), RPY: pub.RP.Y.String(),
		Enc: pub.Enc.String(),
	}
}
