package p2c_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/privacycash/protocol/internal/circuits/p2c"
	"github.com/privacycash/protocol/internal/jubjub"
)

func TestP2CEndToEnd(t *testing.T) {
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, &p2c.Circuit{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	skA := fr.NewElement(111)
	skB := fr.NewElement(222)
	addrB := jubjub.AddrFromSKField(skB)

	priv := p2c.Private{
		Rh:     fr.Element{},
		Rcm:    fr.NewElement(5),
		Ba:     fr.NewElement(100),
		Va:     fr.NewElement(40),
		R:      fr.NewElement(9),
		AddrSK: skA,
	}
	pub, assignment := p2c.Build(priv, addrB, 1)

	witness, err := frontend.NewWitness(assignment, ecc.BLS12_381.ScalarField())
	if err != nil {
		t.Fatalf("new witness: %v", err)
	}
	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}

	publicWitness, err := frontend.NewWitness(pub.PublicAssignment(), ecc.BLS12_381.ScalarField(), frontend.PublicOnly())
	if err != nil {
		t.Fatalf("public witness: %v", err)
	}
	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestP2CRejectsInsufficientBalance(t *testing.T) {
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, &p2c.Circuit{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	pk, _, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	skA := fr.NewElement(111)
	skB := fr.NewElement(222)
	addrB := jubjub.AddrFromSKField(skB)

	priv := p2c.Private{
		Rh:     fr.Element{},
		Rcm:    fr.NewElement(5),
		Ba:     fr.NewElement(10),
		Va:     fr.NewElement(40), // va > ba
		R:      fr.NewElement(9),
		AddrSK: skA,
	}
	_, assignment := p2c.Build(priv, addrB, 1)

	witness, err := frontend.NewWitness(assignment, ecc.BLS12_381.ScalarField())
	if err != nil {
		t.Fatalf("new witness: %v", err)
	}
	if _, err := groth16.Prove(ccs, pk, witness); err == nil {
		t.Fatal("expected proving to fail when va > ba, got nil error")
	}
}
