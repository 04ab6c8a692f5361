// Package merkle implements the protocol's append-only, fixed-depth
// incremental Merkle tree. Internal nodes combine via the Pedersen hash
// (internal/pedersen.CombineNodes); leaves are coin commitments.
//
// Optional tree slots are modeled with Slot, a tagged Empty|Filled variant,
// per SPEC_FULL §9's resolved design note: an empty subtree at level k is
// never the same value as the zero digest.
package merkle

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/privacycash/protocol/internal/pedersen"
)

// ErrTreeFull is returned by Append once the tree has reached 2^Depth
// leaves.
var ErrTreeFull = errors.New("merkle: tree is full")

// ErrEmptyTree is returned by Path when no leaf has been inserted yet.
var ErrEmptyTree = errors.New("merkle: cannot build a path into an empty tree")

// Slot is an optional Merkle digest: either Empty (no value at this slot
// yet) or Filled holding a value. The zero value of Slot is Empty; never
// compare a Slot's Value directly without checking Present.
type Slot struct {
	Present bool
	Value   fr.Element
}

// Filled constructs a present slot.
func Filled(v fr.Element) Slot { return Slot{Present: true, Value: v} }

// emptyRoots[k] is the root of an empty subtree of height k; emptyRoots[0]
// is the zero digest (E_0 = 0 per SPEC_FULL §3).
func emptyRoots(depth int) []fr.Element {
	out := make([]fr.Element, depth+1)
	out[0] = fr.Element{} // zero
	for i := 1; i <= depth; i++ {
		out[i] = pedersen.CombineNodes(out[i-1], out[i-1])
	}
	return out
}

// Tree is an incremental Merkle tree of fixed depth.
type Tree struct {
	depth   int
	left    Slot
	right   Slot
	parents []Slot
	roots   []fr.Element
	size    int
}

// New creates an empty tree of the given depth.
func New(depth int) *Tree {
	return &Tree{depth: depth, roots: emptyRoots(depth)}
}

// Depth returns the tree's fixed depth.
func (t *Tree) Depth() int { return t.depth }

// Size returns the number of leaves appended so far.
func (t *Tree) Size() int { return t.size }

func (t *Tree) isComplete() bool {
	if !t.left.Present || !t.right.Present {
		return false
	}
	if len(t.parents) != t.depth-1 {
		return false
	}
	for _, p := range t.parents {
		if !p.Present {
			return false
		}
	}
	return true
}

// Append inserts a new leaf, returning its index. Returns ErrTreeFull once
// 2^Depth leaves have been inserted.
func (t *Tree) Append(leaf fr.Element) (int, error) {
	if t.isComplete() {
		return 0, ErrTreeFull
	}

	idx := t.size
	t.size++

	if !t.left.Present {
		t.left = Filled(leaf)
		return idx, nil
	}
	if !t.right.Present {
		t.right = Filled(leaf)
		return idx, nil
	}

	combined := pedersen.CombineNodes(t.left.Value, t.right.Value)
	t.left = Filled(leaf)
	t.right = Slot{}

	for i := 0; i < t.depth; i++ {
		if i < len(t.parents) {
			if t.parents[i].Present {
				combined = pedersen.CombineNodes(t.parents[i].Value, combined)
				t.parents[i] = Slot{}
				continue
			}
			t.parents[i] = Filled(combined)
			break
		}
		t.parents = append(t.parents, Filled(combined))
		break
	}
	return idx, nil
}

// leftOrEmpty/rightOrEmpty return the current left/right leaf or the empty digest at
// height 0 if absent.
func (t *Tree) leftOrEmpty() fr.Element {
	if t.left.Present {
		return t.left.Value
	}
	return t.roots[0]
}

func (t *Tree) rightOrEmpty() fr.Element {
	if t.right.Present {
		return t.right.Value
	}
	return t.roots[0]
}

// Root computes the current tree root, padding any incomplete subtree with
// precomputed empty-subtree roots.
func (t *Tree) Root() fr.Element {
	root := pedersen.CombineNodes(t.leftOrEmpty(), t.rightOrEmpty())
	d := 1
	for _, p := range t.parents {
		if p.Present {
			root = pedersen.CombineNodes(p.Value, root)
		} else {
			root = pedersen.CombineNodes(root, t.roots[d])
		}
		d++
	}
	for d < t.depth {
		root = pedersen.CombineNodes(root, t.roots[d])
		d++
	}
	return root
}

// Path is an authentication path: Depth sibling digests plus a matching
// boolean index vector (true = current node is on the right), ordered
// root-side first (reversed from the bottom-up construction order).
type Path struct {
	Siblings []fr.Element
	Index    *bitset.BitSet
}

// Path builds the authentication path for the most recently appended leaf
// (the current `left` or `right` slot).
func (t *Tree) Path() (*Path, error) {
	if !t.left.Present {
		return nil, ErrEmptyTree
	}

	siblings := make([]fr.Element, 0, t.depth)
	index := bitset.New(uint(t.depth))
	pos := 0

	if t.right.Present {
		index.Set(uint(pos))
		siblings = append(siblings, t.left.Value)
	} else {
		siblings = append(siblings, t.roots[0])
	}
	pos++

	for _, p := range t.parents {
		if p.Present {
			index.Set(uint(pos))
			siblings = append(siblings, p.Value)
		} else {
			siblings = append(siblings, t.roots[pos])
		}
		pos++
	}

	for pos < t.depth {
		siblings = append(siblings, t.roots[pos])
		pos++
	}

	// Reverse so the root-side sibling comes first.
	for i, j := 0, len(siblings)-1; i < j; i, j = i+1, j-1 {
		siblings[i], siblings[j] = siblings[j], siblings[i]
	}
	reversedIndex := bitset.New(uint(t.depth))
	for i := 0; i < t.depth; i++ {
		if index.Test(uint(i)) {
			reversedIndex.Set(uint(t.depth - 1 - i))
		}
	}

	return &Path{Siblings: siblings, Index: reversedIndex}, nil
}

// Fold walks leaf up through path using the path's index bits (true =
// sibling is on the left, leaf/current node on the right) and returns the
// resulting root. This mirrors the circuit-side Merkle walk exactly, so
// both Verify and the C2P/C2B circuit gadgets agree on one fixture.
func Fold(leaf fr.Element, path *Path) fr.Element {
	cur := leaf
	for i := len(path.Siblings) - 1; i >= 0; i-- {
		sib := path.Siblings[i]
		if path.Index.Test(uint(i)) {
			cur = pedersen.CombineNodes(sib, cur)
		} else {
			cur = pedersen.CombineNodes(cur, sib)
		}
	}
	return cur
}

// Verify folds leaf up through path and checks the result equals root.
func Verify(leaf fr.Element, path *Path, root fr.Element) bool {
	computed := Fold(leaf, path)
	return computed.Equal(&root)
}
