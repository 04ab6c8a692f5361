package c2b_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/privacycash/protocol/internal/circuits/c2b"
	"github.com/privacycash/protocol/internal/jubjub"
	"github.com/privacycash/protocol/internal/merkle"
	"github.com/privacycash/protocol/internal/pedersen"
)

func TestC2BEndToEnd(t *testing.T) {
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, &c2b.Circuit{})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	skA := fr.NewElement(777)
	addrA := jubjub.AddrFromSKField(skA)

	rcm := fr.NewElement(3)
	va := fr.NewElement(50)
	coin := pedersen.BuildCoin(rcm, va, addrA.X)

	tr := merkle.New(c2b.Depth)
	if _, err := tr.Append(coin); err != nil {
		t.Fatalf("append: %v", err)
	}
	path, err := tr.Path()
	if err != nil {
		t.Fatalf("path: %v", err)
	}

	priv := c2b.Private{Rcm: rcm, AddrSK: skA, Path: path}
	pub, assignment, err := c2b.Build(priv, va, va)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

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
