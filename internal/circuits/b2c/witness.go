package b2c

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/jubjub"
	"github.com/privacycash/protocol/internal/pedersen"
)

var pow2_128Int = new(big.Int).Lsh(big.NewInt(1), 128)

// Public is the plain-Go B2C public-input tuple, matching SPEC_FULL
// §4.D.3's wire order.
type Public struct {
	Va   fr.Element
	Coin fr.Element
	RP   jubjub.Point
	Enc  fr.Element
	Addr jubjub.Point
}

// Private is the plain-Go B2C witness.
type Private struct {
	Rcm    fr.Element
	R      fr.Element
	AddrSK fr.Element
}

// Build computes the public tuple for a deposit of value va into addr's
// coin pool, and the full assignment ready for proving.
func Build(priv Private, va fr.Element, addr jubjub.Point) (Public, *Circuit) {
	coin := pedersen.BuildCoin(priv.Rcm, va, addr.X)

	gAddr, _, _ := jubjub.FixedGenerators()
	rP := jubjub.ScalarMul(gAddr, jubjub.BitsLE(priv.R, 256))
	rQ := jubjub.ScalarMul(addr, jubjub.BitsLE(priv.R, 256))

	var shift, enc fr.Element
	shift.SetBigInt(pow2_128Int)
	enc.Mul(&va, &shift)
	enc.Add(&enc, &rQ.X)
	enc.Add(&enc, &priv.Rcm)

	pub := Public{Va: va, Coin: coin, RP: rP, Enc: enc, Addr: addr}

	c := &Circuit{
		Va:   va.String(),
		Coin: coin.String(),
		RPX:  rP.X.String(), RPY: rP.Y.String(),
		Enc:  enc.String(),
		AddrX: addr.X.String(), AddrY: addr.Y.String(),

		Rcm: priv.Rcm.String(), R: priv.R.String(), AddrSK: priv.AddrSK.String(),
	}
	return pub, c
}

// PublicAssignment builds a public-fields-only Circuit.
func (pub Public) PublicAssignment() *Circuit {
	return &Circuit{
		Va:   pub.Va.String(),
		Coin: pub.Coin.String(),
		RPX:  pub.RP.X.String(), RPY: pub.RP.Y.String(),
		Enc:  pub.Enc.String(),
		AddrX: pub.Addr.X.String(), AddrY: pub.Addr.Y.String(),
	}
}
