package c2p

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/jubjub"
	"github.com/privacycash/protocol/internal/merkle"
	"github.com/privacycash/protocol/internal/pedersen"
)

// Public is the plain-Go C2P public-input tuple, matching SPEC_FULL
// §4.D.2's wire order.
type Public struct {
	DeltaBa   jubjub.Point
	Nullifier fr.Element
	Root      fr.Element
}

// Private is the plain-Go C2P witness: the spent coin's opening plus its
// authentication path.
type Private struct {
	Rcm    fr.Element
	RcmNew fr.Element
	Va     fr.Element
	AddrSK fr.Element
	Path   *merkle.Path
}

// Build spends the coin described by priv (whose authentication path must
// already have been fetched from the tree) into a freshly blinded
// delta_ba, returning the public tuple and the full assignment ready for
// proving.
func Build(priv Private) (Public, *Circuit, error) {
	if len(priv.Path.Siblings) != Depth {
		return Public{}, nil, fmt.Errorf("c2p: path has depth %d, want %d", len(priv.Path.Siblings), Depth)
	}

	addr := jubjub.AddrFromSKField(priv.AddrSK)
	coin := pedersen.BuildCoin(priv.Rcm, priv.Va, addr.X)
	nullifier := pedersen.BuildNullifier(priv.Rcm, priv.Va, priv.AddrSK)
	root := merkle.Fold(coin, priv.Path)

	_, gV, gR := pedersen.Generators()
	deltaBa := jubjub.Add(jubjub.ScalarMul(gV, jubjub.BitsLE(priv.Va, 128)), jubjub.ScalarMul(gR, jubjub.BitsLE(priv.RcmNew, 128)))

	pub := Public{DeltaBa: deltaBa, Nullifier: nullifier, Root: root}

	c := &Circuit{
		DeltaBaX: deltaBa.X.String(), DeltaBaY: deltaBa.Y.String(),
		Nullifier: nullifier.String(),
		Root:      root.String(),

		Rcm: priv.Rcm.String(), RcmNew: priv.RcmNew.String(),
		Va: priv.Va.String(), AddrSK: priv.AddrSK.String(),
	}
	for i := 0; i < Depth; i++ {
		c.Path[i] = priv.Path.Siblings[i].String()
		if priv.Path.Index.Test(uint(i)) {
			c.Loc[i] = 1
		} else {
			c.Loc[i] = 0
		}
	}
	return pub, c, nil
}

// PublicAssignment builds a public-fields-only Circuit.
func (pub Public) PublicAssignment() *Circuit {
	return &Circuit{
		DeltaBaX: pub.DeltaBa.X.String(), DeltaBaY: pub.DeltaBa.Y.String(),
		Nullifier: pub.Nullifier.String(),
		Root:      pub.Root.String(),
	}
}
