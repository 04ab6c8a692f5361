package greater

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Public is the plain-Go Greater public input: the disclosed amount va.
type Public struct {
	Va fr.Element
}

// Private is the plain-Go Greater witness: the undisclosed balance ba.
type Private struct {
	Ba fr.Element
}

// Build returns the public tuple and full assignment proving ba >= va.
func Build(priv Private, va fr.Element) (Public, *Circuit) {
	pub := Public{Va: va}
	c := &Circuit{
		Va: va.String(),
		Ba: priv.Ba.String(),
	}
	return pub, c
}

// PublicAssignment builds a public-fields-only Circuit.
func (pub Public) PublicAssignment() *Circuit {
	return &Circuit{Va: pub.Va.String()}
}
