package c2b

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/jubjub"
	"github.com/privacycash/protocol/internal/merkle"
	"github.com/privacycash/protocol/internal/pedersen"
)

// Public is the plain-Go C2B public-input tuple, matching SPEC_FULL
// §4.D.4's wire order.
type Public struct {
	Ba        fr.Element
	Va        fr.Element
	Nullifier fr.Element
	Root      fr.Element
}

// Private is the plain-Go C2B witness: the spent coin's blinding, the
// owner's secret key, and the coin's authentication path.
type Private struct {
	Rcm    fr.Element
	AddrSK fr.Element
	Path   *merkle.Path
}

// Build spends the coin of value va described by priv, disclosing ba and
// va in cleartext, and returns the public tuple and the full assignment
// ready for proving.
func Build(priv Private, ba fr.Element, va fr.Element) (Public, *Circuit, error) {
	if len(priv.Path.Siblings) != Depth {
		return Public{}, nil, fmt.Errorf("c2b: path has depth %d, want %d", len(priv.Path.Siblings), Depth)
	}

	addr := jubjub.AddrFromSKField(priv.AddrSK)
	coin := pedersen.BuildCoin(priv.Rcm, va, addr.X)
	nullifier := pedersen.BuildNullifier(priv.Rcm, va, priv.AddrSK)
	root := merkle.Fold(coin, priv.Path)

	pub := Public{Ba: ba, Va: va, Nullifier: nullifier, Root: root}

	c := &Circuit{
		Ba:        ba.String(),
		Va:        va.String(),
		Nullifier: nullifier.String(),
		Root:      root.String(),

		Rcm: priv.Rcm.String(), AddrSK: priv.AddrSK.String(),
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
		Ba:        pub.Ba.String(),
		Va:        pub.Va.String(),
		Nullifier: pub.Nullifier.String(),
		Root:      pub.Root.String(),
	}
}
