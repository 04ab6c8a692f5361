// Package contract implements the privacy contract state machine: the
// public balance ledger, the coin/nullifier sets, and the incremental
// Merkle tree, wired to Groth16 verification for all four transfer
// circuits. Grounded on the teacher's internal/zerocash.Ledger (state
// shape and mutex-guarded apply-if-valid idiom), generalized from the
// auction's bid ledger to the confidential-transfer balance/coin model.
package contract

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/circuits/b2c"
	"github.com/privacycash/protocol/internal/circuits/c2b"
	"github.com/privacycash/protocol/internal/circuits/c2p"
	"github.com/privacycash/protocol/internal/circuits/p2c"
	"github.com/privacycash/protocol/internal/errs"
	"github.com/privacycash/protocol/internal/jubjub"
	"github.com/privacycash/protocol/internal/log"
	"github.com/privacycash/protocol/internal/merkle"
	"github.com/privacycash/protocol/internal/paramio"
	"github.com/privacycash/protocol/internal/pedersen"
)

// Address is a user's public key on the JubJub curve (addr = addr_sk *
// G_addr).
type Address = jubjub.Point

// Contract holds the full on-chain state: one public balance commitment
// and one spend counter per address, the coin and nullifier sets, and the
// coin accumulator tree. All mutation goes through Send/Receive/
// Deposit/Withdraw, each guarded by mu so state reads and writes are
// atomic with respect to concurrent submissions.
type Contract struct {
	mu     sync.Mutex
	params *paramio.Resolver
	logger *log.Logger

	tree       *merkle.Tree
	balances   map[Address]jubjub.Point
	lastSpent  map[Address]uint64
	coins      map[fr.Element]struct{}
	nullifiers map[fr.Element]struct{}
}

// New constructs an empty contract with a tree of the given depth.
func New(depth int, params *paramio.Resolver, logger *log.Logger) *Contract {
	return &Contract{
		params:     params,
		logger:     logger,
		tree:       merkle.New(depth),
		balances:   make(map[Address]jubjub.Point),
		lastSpent:  make(map[Address]uint64),
		coins:      make(map[fr.Element]struct{}),
		nullifiers: make(map[fr.Element]struct{}),
	}
}

// PathForLastCoin returns the authentication path of the most recently
// appended coin. Valid only until the next Send/Deposit call appends
// another coin — callers that need to spend a specific coin later must
// capture and store this path immediately after the coin's creation.
func (c *Contract) PathForLastCoin() (*merkle.Path, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Path()
}

// Root returns the current tree root.
func (c *Contract) Root() fr.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tree.Root()
}

// Balance returns an address's current balance commitment, or the
// identity point if the address has never been credited.
func (c *Contract) Balance(addr Address) jubjub.Point {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.balanceOrIdentity(addr)
}

// balanceOrIdentity reads balances[addr], substituting the curve identity
// for an absent entry: the map's Go zero value (0, 0) is not itself a
// point on the curve and must never be treated as one.
func (c *Contract) balanceOrIdentity(addr Address) jubjub.Point {
	if bal, ok := c.balances[addr]; ok {
		return bal
	}
	return jubjub.Identity()
}

// LastSpent returns the block_number of addr's most recent accepted Send,
// or 0 if addr has never sent. A future Send for addr must disclose a
// strictly greater block_number or it is rejected as a replay.
func (c *Contract) LastSpent(addr Address) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSpent[addr]
}

func (c *Contract) audit(action, outcome string, fields map[string]any) {
	if c.logger != nil {
		c.logger.Audit(action, outcome, fields)
	}
}

// Send applies a P2C transaction. The disclosed Hb must open to the
// sender's exact current balance commitment — this is what binds the
// proof's witnessed (ba, rh) to on-chain state and stops a sender from
// proving sufficiency against a stale or fabricated balance. pub.
// BlockNumber must strictly exceed last_spent[sender] (absence counts as
// never spent), rejecting a replayed send before either the balance check
// or the pairing check runs. The proof is verified with sender as its addr
// input, so only the holder of sender's secret key can produce an
// accepted proof. The new balance is Hb - delta_ba and the
// resulting coin is inserted into the tree. Duplicate-coin, replay,
// ownership, and proof checks all run before any state mutation; the coin
// set is consulted before proof verification per SPEC_FULL §9 so a
// replayed coin is rejected cheaply without re-running the pairing check.
func (c *Contract) Send(sender Address, pub p2c.Public, proofHex string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.coins[pub.Coin]; dup {
		c.audit("send", "rejected", map[string]any{"reason": "duplicate coin"})
		return errs.ErrDuplicateCoin
	}
	if last, ok := c.lastSpent[sender]; ok && pub.BlockNumber <= last {
		c.audit("send", "rejected", map[string]any{"reason": "replay"})
		return errs.ErrReplay
	}
	if current := c.balanceOrIdentity(sender); current != pub.Hb {
		c.audit("send", "rejected", map[string]any{"reason": "balance mismatch"})
		return errs.ErrBalanceMismatch
	}
	pub.Addr = sender
	if err := c.params.Verify("p2c", &p2c.Circuit{}, pub.PublicAssignment(), proofHex); err != nil {
		c.audit("send", "rejected", map[string]any{"reason": err.Error()})
		return err
	}

	c.balances[sender] = jubjub.Add(pub.Hb, jubjub.Neg(pub.DeltaBa))
	c.lastSpent[sender] = pub.BlockNumber
	c.coins[pub.Coin] = struct{}{}
	if _, err := c.tree.Append(pub.Coin); err != nil {
		c.audit("send", "failed", map[string]any{"reason": err.Error()})
		return fmt.Errorf("contract: send: %w", err)
	}

	c.audit("send", "applied", map[string]any{"sender": sender.X.String(), "coin": pub.Coin.String(), "block_number": pub.BlockNumber})
	return nil
}

// Receive applies a C2P transaction: spends a coin via its nullifier and
// credits the receiver's balance with a freshly blinded delta_ba.
// Duplicate-nullifier and stale-root checks run before proof
// verification.
func (c *Contract) Receive(receiver Address, pub c2p.Public, proofHex string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.nullifiers[pub.Nullifier]; dup {
		c.audit("receive", "rejected", map[string]any{"reason": "duplicate nullifier"})
		return errs.ErrDuplicateNullifier
	}
	root := c.tree.Root()
	if !pub.Root.Equal(&root) {
		c.audit("receive", "rejected", map[string]any{"reason": "stale root"})
		return errs.ErrStaleRoot
	}
	if err := c.params.Verify("c2p", &c2p.Circuit{}, pub.PublicAssignment(), proofHex); err != nil {
		c.audit("receive", "rejected", map[string]any{"reason": err.Error()})
		return err
	}

	c.nullifiers[pub.Nullifier] = struct{}{}
	c.balances[receiver] = jubjub.Add(c.balanceOrIdentity(receiver), pub.DeltaBa)

	c.audit("receive", "applied", map[string]any{"receiver": receiver.X.String(), "nullifier": pub.Nullifier.String()})
	return nil
}

// Deposit applies a B2C transaction: mints a coin for a cleartext amount
// arriving from outside the coin domain (no balance is debited; funds
// come from a cleartext source the contract does not model).
func (c *Contract) Deposit(pub b2c.Public, proofHex string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.coins[pub.Coin]; dup {
		c.audit("deposit", "rejected", map[string]any{"reason": "duplicate coin"})
		return errs.ErrDuplicateCoin
	}
	if err := c.params.Verify("b2c", &b2c.Circuit{}, pub.PublicAssignment(), proofHex); err != nil {
		c.audit("deposit", "rejected", map[string]any{"reason": err.Error()})
		return err
	}

	c.coins[pub.Coin] = struct{}{}
	if _, err := c.tree.Append(pub.Coin); err != nil {
		return fmt.Errorf("contract: deposit: %w", err)
	}

	c.audit("deposit", "applied", map[string]any{"va": pub.Va.String(), "coin": pub.Coin.String()})
	return nil
}

// Withdraw applies a C2B transaction: spends a coin via its nullifier and
// credits `to`'s public balance with the disclosed cleartext amount
// (zero-blinding commitment com(va, 0), added homomorphically).
func (c *Contract) Withdraw(to Address, pub c2b.Public, proofHex string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, dup := c.nullifiers[pub.Nullifier]; dup {
		c.audit("withdraw", "rejected", map[string]any{"reason": "duplicate nullifier"})
		return errs.ErrDuplicateNullifier
	}
	root := c.tree.Root()
	if !pub.Root.Equal(&root) {
		c.audit("withdraw", "rejected", map[string]any{"reason": "stale root"})
		return errs.ErrStaleRoot
	}
	if err := c.params.Verify("c2b", &c2b.Circuit{}, pub.PublicAssignment(), proofHex); err != nil {
		c.audit("withdraw", "rejected", map[string]any{"reason": err.Error()})
		return err
	}

	c.nullifiers[pub.Nullifier] = struct{}{}
	credit := pedersen.Commit(pub.Va, fr.Element{})
	c.balances[to] = jubjub.Add(c.balanceOrIdentity(to), credit)

	c.audit("withdraw", "applied", map[string]any{"to": to.X.String(), "nullifier": pub.Nullifier.String()})
	return nil
}
