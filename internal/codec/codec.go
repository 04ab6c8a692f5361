// Package codec provides the hex wire framing for the protocol's field
// elements, curve points, and opaque proof/parameter byte blobs, plus a
// blake2b checksum for parameter artifacts. Grounded on the teacher's
// internal/zerocash byte-oriented (de)serialization helpers, generalized
// to the element/point shapes this protocol actually needs.
package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/blake2b"

	"github.com/privacycash/protocol/internal/errs"
	"github.com/privacycash/protocol/internal/jubjub"
)

// elementHexLen is the hex length of one canonical 32-byte Fr element.
const elementHexLen = 64

// EncodeElement hex-encodes a field element's canonical big-endian byte
// representation.
func EncodeElement(v fr.Element) string {
	b := v.Bytes()
	return hex.EncodeToString(b[:])
}

// DecodeElement parses a hex-encoded field element produced by
// EncodeElement.
func DecodeElement(s string) (fr.Element, error) {
	var out fr.Element
	if len(s) != elementHexLen {
		return out, fmt.Errorf("%w: element hex must be %d chars, got %d", errs.ErrHexLength, elementHexLen, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("%w: %v", errs.ErrHexDecode, err)
	}
	out.SetBytes(b)
	return out, nil
}

// EncodePoint hex-encodes a JubJub point as X (32 bytes) followed by Y (32
// bytes).
func EncodePoint(p jubjub.Point) string {
	return EncodeElement(p.X) + EncodeElement(p.Y)
}

// DecodePoint parses a hex-encoded point produced by EncodePoint.
func DecodePoint(s string) (jubjub.Point, error) {
	var out jubjub.Point
	if len(s) != 2*elementHexLen {
		return out, fmt.Errorf("%w: point hex must be %d chars, got %d", errs.ErrHexLength, 2*elementHexLen, len(s))
	}
	x, err := DecodeElement(s[:elementHexLen])
	if err != nil {
		return out, err
	}
	y, err := DecodeElement(s[elementHexLen:])
	if err != nil {
		return out, err
	}
	out.X, out.Y = x, y
	return out, nil
}

// EncodeBytes hex-encodes an arbitrary byte blob (a serialized proof or an
// encrypted note ciphertext).
func EncodeBytes(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeBytes parses a hex-encoded byte blob produced by EncodeBytes.
func DecodeBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrHexDecode, err)
	}
	return b, nil
}

// Checksum returns the blake2b-256 digest of a byte blob such as a
// parameter artifact. internal/paramio does not call it: key files are
// handed to gnark's deserializer without a stored digest being checked.
func Checksum(b []byte) [32]byte {
	return blake2b.Sum256(b)
}
