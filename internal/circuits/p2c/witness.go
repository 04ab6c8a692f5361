package p2c

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/jubjub"
	"github.com/privacycash/protocol/internal/pedersen"
)

var pow2_128Int = new(big.Int).Lsh(big.NewInt(1), 128)

// Public is the plain-Go P2C public-input tuple, in the wire order
// SPEC_FULL §4.D.1 specifies, plus BlockNumber: not a circuit public input
// (the proof carries no constraint on it) but part of the disclosed
// SenderProof bundle the contract's replay check consumes (SPEC_FULL
// §4.F).
type Public struct {
	Hb          jubjub.Point
	Coin        fr.Element
	DeltaBa     jubjub.Point
	RP          jubjub.Point
	Enc         fr.Element
	Addr        jubjub.Point
	BlockNumber uint64
}

// Private is the plain-Go P2C witness: everything the sender knows but
// never discloses.
type Private struct {
	Rh     fr.Element
	Rcm    fr.Element
	Ba     fr.Element
	Va     fr.Element
	R      fr.Element
	AddrSK fr.Element
}

// Build computes the public tuple for a send of priv.Va out of a balance
// of priv.Ba into a coin owned by addr, and returns both the public tuple and
// the full assignment ready for proving. addr must be the address derived
// from priv.AddrSK: the circuit asserts addr_sk*G_addr == addr, so any other
// address yields an unprovable witness. blockNumber is carried through to
// Public.BlockNumber for the contract's replay check; it plays no part in
// the circuit itself.
func Build(priv Private, addr jubjub.Point, blockNumber uint64) (Public, *Circuit) {
	_, gV, gR := pedersen.Generators()

	hb := jubjub.Add(jubjub.ScalarMul(gV, jubjub.BitsLE(priv.Ba, 128)), jubjub.ScalarMul(gR, jubjub.BitsLE(priv.Rh, 256)))
	coin := pedersen.BuildCoin(priv.Rcm, priv.Va, addr.X)
	deltaBa := jubjub.Add(jubjub.ScalarMul(gV, jubjub.BitsLE(priv.Va, 128)), jubjub.ScalarMul(gR, jubjub.BitsLE(priv.Rcm, 128)))

	gAddr, _, _ := jubjub.FixedGenerators()
	rP := jubjub.ScalarMul(gAddr, jubjub.BitsLE(priv.R, 256))
	rQ := jubjub.ScalarMul(addr, jubjub.BitsLE(priv.R, 256))

	var shift, enc fr.Element
	shift.SetBigInt(pow2_128Int)
	enc.Mul(&priv.Va, &shift)
	enc.Add(&enc, &rQ.X)
	enc.Add(&enc, &priv.Rcm)

	pub := Public{Hb: hb, Coin: coin, DeltaBa: deltaBa, RP: rP, Enc: enc, Addr: addr, BlockNumber: blockNumber}

	c := &Circuit{
		HbX: hb.X.String(), HbY: hb.Y.String(),
		Coin:     coin.String(),
		DeltaBaX: deltaBa.X.String(), DeltaBaY: deltaBa.Y.String(),
		RPX: rP.X.String(), RPY: rP.Y.String(),
		Enc:  enc.String(),
		AddrX: addr.X.String(), AddrY: addr.Y.String(),

		Rh: priv.Rh.String(), Rcm: priv.Rcm.String(), Ba: priv.Ba.String(),
		Va: priv.Va.String(), R: priv.R.String(), AddrSK: priv.AddrSK.String(),
	}
	return pub, c
}

// PublicAssignment builds a public-fields-only Circuit suitable for
// frontend.NewWitness(..., frontend.PublicOnly()).
func (pub Public) PublicAssignment() *Circuit {
	return &Circuit{
		HbX: pub.Hb.X.String(), HbY: pub.Hb.Y.String(),
		Coin:     pub.Coin.String(),
		DeltaBaX: pub.DeltaBa.X.String(), DeltaBaY: pub.DeltaBa.Y.String(),
		RPX: pub.RP.X.String(), RPY: pub.RP.Y.String(),
		Enc:  pub.Enc.String(),
		AddrX: pub.Addr.X.String(), AddrY: pub.Addr.Y.String(),
	}
}
