package rangeproof

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/jubjub"
	"github.com/privacycash/protocol/internal/pedersen"
)

// Public is the plain-Go Range public-input tuple: Up, Low, Hv, matching
// SPEC_FULL §4.D.5's wire order.
type Public struct {
	Up  fr.Element
	Low fr.Element
	Hv  jubjub.Point
}

// Private is the plain-Go Range witness: the bounded value and its
// commitment blinding factor.
type Private struct {
	Va fr.Element
	Rh fr.Element
}

// Build computes hv = com(va, rh) and returns the public tuple plus the
// full assignment proving low <= va <= up.
func Build(priv Private, low, up fr.Element) (Public, *Circuit) {
	hv := pedersen.Commit(priv.Va, priv.Rh)

	pub := Public{Up: up, Low: low, Hv: hv}

	c := &Circuit{
		Up: up.String(), Low: low.String(),
		HvX: hv.X.String(), HvY: hv.Y.String(),

		Va: priv.Va.String(), Rh: priv.Rh.String(),
	}
	return pub, c
}

// PublicAssignment builds a public-fields-only Circuit.
func (pub Public) PublicAssignment() *Circuit {
	return &Circuit{
		Up: pub.Up.String(), Low: pub.Low.String(),
		HvX: pub.Hv.X.String(), HvY: pub.Hv.Y.String(),
	}
}
