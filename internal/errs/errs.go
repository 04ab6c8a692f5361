// Package errs defines the sentinel error kinds used across the protocol
// core, so callers can branch on failure reason with errors.Is instead of
// string matching.
package errs

import "errors"

// Encoding errors: malformed external byte/hex representations.
var (
	ErrHexLength      = errors.New("errs: hex string has wrong length")
	ErrHexDecode      = errors.New("errs: invalid hex encoding")
	ErrFieldOutOfRange = errors.New("errs: field element out of range")
)

// Parameter errors: the circuit parameter artifacts.
var (
	ErrParamMissing  = errors.New("errs: parameter file missing")
	ErrParamCorrupt  = errors.New("errs: parameter file corrupt")
	ErrUnknownCircuit = errors.New("errs: unknown circuit slot")
)

// Circuit synthesis / verification errors.
var (
	ErrWitnessUnsatisfiable = errors.New("errs: witness does not satisfy circuit constraints")
	ErrProofInvalid         = errors.New("errs: proof failed verification")
)

// Contract-level rejection reasons.
var (
	ErrDuplicateCoin      = errors.New("errs: coin already in coin set")
	ErrDuplicateNullifier = errors.New("errs: nullifier already spent")
	ErrStaleRoot           = errors.New("errs: root does not match current tree root")
	ErrReplay              = errors.New("errs: block_number does not advance last_spent")
	ErrUnknownAddress      = errors.New("errs: address has no balance entry")
	ErrBalanceMismatch     = errors.New("errs: disclosed balance commitment does not match current state")
)
