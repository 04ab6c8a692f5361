package paramio_test

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/circuits/greater"
	"github.com/privacycash/protocol/internal/paramio"
)

func TestResolverProveVerifyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	r := paramio.NewResolver(dir, nil)

	priv := greater.Private{Ba: fr.NewElement(100)}
	pub, assignment := greater.Build(priv, fr.NewElement(40))

	proofHex, err := r.Prove("greater", &greater.Circuit{}, assignment)
	if err != nil {
		t.Fatalf("prove: %v", err)
	}
	if err := r.Verify("greater", &greater.Circuit{}, pub.PublicAssignment(), proofHex); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestResolverReusesPersistedKeys(t *testing.T) {
	dir := t.TempDir()

	r1 := paramio.NewResolver(dir, nil)
	priv := greater.Private{Ba: fr.NewElement(100)}
	pub, assignment := greater.Build(priv, fr.NewElement(40))
	if _, err := r1.Prove("greater", &greater.Circuit{}, assignment); err != nil {
		t.Fatalf("first prove: %v", err)
	}

	r2 := paramio.NewResolver(dir, nil)
	proofHex, err := r2.Prove("greater", &greater.Circuit{}, assignment)
	if err != nil {
		t.Fatalf("second resolver prove (should load persisted keys): %v", err)
	}
	if err := r2.Verify("greater", &greater.Circuit{}, pub.PublicAssignment(), proofHex); err != nil {
		t.Fatalf("second resolver verify: %v", err)
	}
}

func TestResolverRejectsBadProof(t *testing.T) {
	dir := t.TempDir()
	r := paramio.NewResolver(dir, nil)

	priv := greater.Private{Ba: fr.NewElement(100)}
	pub, assignment := greater.Build(priv, fr.NewElement(40))
	if _, err := r.Prove("greater", &greater.Circuit{}, assignment); err != nil {
		t.Fatalf("prove: %v", err)
	}

	_, otherAssignment := greater.Build(greater.Private{Ba: fr.NewElement(200)}, fr.NewElement(50))
	proofHex, err := r.Prove("greater", &greater.Circuit{}, otherAssignment)
	if err != nil {
		t.Fatalf("prove other: %v", err)
	}
	if err := r.Verify("greater", &greater.Circuit{}, pub.PublicAssignment(), proofHex); err == nil {
		t.Fatal("verify accepted a proof for mismatched public inputs")
	}
}
