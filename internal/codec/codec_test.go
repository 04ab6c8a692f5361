package codec_test

import (
	"errors"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/codec"
	"github.com/privacycash/protocol/internal/errs"
	"github.com/privacycash/protocol/internal/jubjub"
)

func TestElementRoundTrip(t *testing.T) {
	v := fr.NewElement(123456789)
	s := codec.EncodeElement(v)
	got, err := codec.DecodeElement(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != v {
		t.Fatalf("round trip = %v, want %v", got, v)
	}
}

func TestDecodeElementRejectsWrongLength(t *testing.T) {
	_, err := codec.DecodeElement("ab")
	if !errors.Is(err, errs.ErrHexLength) {
		t.Fatalf("err = %v, want ErrHexLength", err)
	}
}

func TestDecodeElementRejectsBadHex(t *testing.T) {
	bad := make([]byte, 64)
	for i := range bad {
		bad[i] = 'z'
	}
	_, err := codec.DecodeElement(string(bad))
	if !errors.Is(err, errs.ErrHexDecode) {
		t.Fatalf("err = %v, want ErrHexDecode", err)
	}
}

func TestPointRoundTrip(t *testing.T) {
	p := jubjub.Identity()
	s := codec.EncodePoint(p)
	got, err := codec.DecodePoint(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.X != p.X || got.Y != p.Y {
		t.Fatalf("round trip = %v, want %v", got, p)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef}
	s := codec.EncodeBytes(b)
	got, err := codec.DecodeBytes(s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got) != string(b) {
		t.Fatalf("round trip = %x, want %x", got, b)
	}
}

func TestChecksumDeterministic(t *testing.T) {
	b := []byte("parameter artifact")
	a := codec.Checksum(b)
	c := codec.Checksum(b)
	if a != c {
		t.Fatal("checksum not deterministic")
	}
}
