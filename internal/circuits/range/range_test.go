package rangeproof_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	rangeproof "github.com/privacycash/protocol/internal/circuits/range"
)

func TestRangeEndToEnd(t *testing.T) {
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, &rangeproof.Circuit{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	priv := rangeproof.Private{Va: fr.NewElement(50), Rh: fr.NewElement(6)}
	pub, assignment := rangeproof.Build(priv, fr.NewElement(0), fr.NewElement(1000))

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

func TestRangeRejectsOutOfBounds(t *testing.T) {
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, &rangeproof.Circuit{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	pk, _, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	priv := rangeproof.Private{Va: fr.NewElement(5000), Rh: fr.NewElement(6)}
	_, assignment := rangeproof.Build(priv, fr.NewElement(0), fr.NewElement(1000))

	witness, err := frontend.NewWitness(assignment, ecc.BLS12_381.ScalarField())
	if err != nil {
		t.Fatalf("new witness: %v", err)
	}
	if _, err := groth16.Prove(ccs, pk, witness); err == nil {
		t.Fatal("expected proving to fail when va is outside [low, up], got nil error")
	}
}
