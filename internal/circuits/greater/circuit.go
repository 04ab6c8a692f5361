// Package greater implements the Greater auxiliary circuit: proving a
// witnessed balance ba is at least a disclosed amount va, without
// revealing ba. Grounded on
// original_source/src/common_verify/greater.rs.
package greater

import (
	"github.com/consensys/gnark/frontend"

	"github.com/privacycash/protocol/internal/gadgets"
)

// Circuit is the Greater Groth16 circuit. Public input: Va. Private
// witness: Ba. Matching SPEC_FULL §4.D.5.
type Circuit struct {
	Va frontend.Variable `gnark:",public"`
	Ba frontend.Variable
}

// Define implements the Greater constraint system: ba >= va, both
// 128-bit values.
func (c *Circuit) Define(api frontend.API) error {
	gadgets.UnpackLE(api, c.Ba, 128)
	gadgets.UnpackLE(api, c.Va, 128)
	gadgets.AssertNonLessThan(api, c.Ba, c.Va, 128)
	return nil
}
