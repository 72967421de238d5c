package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// Tree implements an adaptive (FGK-style) Huffman code tree.
//
// A Tree starts out as a lone NYT ("Not Yet Transmitted") leaf.  Every call
// to Update adds exactly one to the weight of one symbol and restructures the
// tree so that the canonical order (deepest level first, left to right within
// a level) stays non-decreasing in weight.  Two parties that feed the same
// symbols to Update in the same order observe identical trees at every step,
// which is what lets an encoder and a decoder agree on codes without ever
// transmitting a frequency table.
//
// Codes must always be read from the tree *before* the symbol is passed to
// Update.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	nodes []node
	order []nodeID
	table map[Symbol]nodeID
	root  nodeID
	nyt   nodeID

	// Paranoid makes Update verify every invariant after each call and
	// panic if one is broken.  It is quadratic-ish and meant for tests.
	Paranoid bool
}

// NewTree returns a Tree consisting only of the NYT leaf.
func NewTree() *Tree {
	t := new(Tree)
	t.Reset()
	return t
}

// Reset discards all state and returns the Tree to a lone NYT leaf.
func (t *Tree) Reset() {
	paranoid := t.Paranoid
	*t = Tree{
		nodes:    t.nodes[:0],
		order:    t.order[:0],
		table:    make(map[Symbol]nodeID),
		Paranoid: paranoid,
	}
	t.nyt = t.newLeaf(NYT, 0)
	t.root = t.nyt
	t.order = append(t.order, t.nyt)
	t.renumber(0)
}

// Update records one more occurrence of symbol and restores every tree
// invariant.  Call it exactly once per symbol, after the symbol's code has
// been produced (encoder) or consumed (decoder).
func (t *Tree) Update(symbol Symbol) {
	assert.Assertf(symbol.IsValid(), "Update called with invalid symbol %d", int32(symbol))

	if t.root == t.nyt {
		leaf := t.newLeaf(symbol, 1)
		t.root = t.newInternal(t.nyt, leaf, 1)
		t.table[symbol] = leaf
		t.spliceNYT(leaf, t.root)
		t.checkIfParanoid()
		return
	}

	q, found := t.table[symbol]
	if !found {
		// Split the NYT leaf: its old slot under q receives a new internal
		// node whose children are NYT and the new symbol.  q's own weight
		// is now one short; the rebalancing pass from q fixes that.
		q = t.nodes[t.nyt].parent
		leaf := t.newLeaf(symbol, 1)
		inner := t.newInternal(t.nyt, leaf, 1)
		t.setLeft(q, inner)
		t.table[symbol] = leaf
		t.spliceNYT(leaf, inner)
	} else if t.isNYTSibling(q) && t.nodes[q].parent == t.blockEnd(q) {
		// The parent already closes q's weight block, so bumping q in
		// place keeps the order valid without swapping q away from NYT.
		t.nodes[q].weight++
		q = t.nodes[q].parent
	}

	t.rebalance(q)
	t.checkIfParanoid()
}

// rebalance is the increment/swap loop that propagates a one-unit weight
// increase from q up to the root.
func (t *Tree) rebalance(q nodeID) {
	for q != noNode {
		m := t.incrementUntilBlocked(q)
		if m == noNode {
			return
		}

		// b must be found before m's weight changes.
		b := t.blockEnd(m)
		t.nodes[m].weight++
		t.swap(m, b)
		q = t.nodes[m].parent
	}
}

// incrementUntilBlocked walks from q towards the root, incrementing every
// node whose weight is strictly below its canonical successor's.  It returns
// the first node that is not incrementable (left unincremented), or noNode if
// the whole path, root included, has been incremented.
func (t *Tree) incrementUntilBlocked(q nodeID) nodeID {
	for cur := q; cur != noNode; cur = t.nodes[cur].parent {
		if cur != t.root {
			succ := t.successor(cur)
			if t.nodes[cur].weight >= t.nodes[succ].weight {
				return cur
			}
		}
		t.nodes[cur].weight++
	}
	return noNode
}

// swap exchanges the subtrees rooted at m and b.  The canonical order keeps
// its slots: m takes b's rank and b takes m's, descendants keep theirs.
func (t *Tree) swap(m nodeID, b nodeID) {
	if m == b {
		return
	}
	assert.Assertf(m != t.root && b != t.root, "cannot swap the root (m=%d, b=%d)", m, b)
	assert.Assertf(!t.isAncestor(m, b) && !t.isAncestor(b, m), "cannot swap node %d with its relative %d", m, b)

	pm, pb := t.nodes[m].parent, t.nodes[b].parent
	if pm == pb {
		p := &t.nodes[pm]
		p.left, p.right = p.right, p.left
	} else {
		if t.nodes[pm].left == m {
			t.setLeft(pm, b)
		} else {
			t.setRight(pm, b)
		}
		if t.nodes[pb].left == b {
			t.setLeft(pb, m)
		} else {
			t.setRight(pb, m)
		}
	}
	t.exchangeRanks(m, b)
}

func (t *Tree) isNYTSibling(id nodeID) bool {
	p := t.nodes[id].parent
	if p == noNode {
		return false
	}
	return t.nodes[p].left == t.nyt && t.nodes[p].right == id
}

func (t *Tree) checkIfParanoid() {
	if !t.Paranoid {
		return
	}
	err := t.Check()
	assert.Assertf(err == nil, "adaptive Huffman tree invariant broken: %v", err)
}

// Contains returns true if symbol has already been passed to Update.
func (t *Tree) Contains(symbol Symbol) bool {
	_, found := t.table[symbol]
	return found
}

// Lookup returns the current code for symbol, if symbol has been seen.
func (t *Tree) Lookup(symbol Symbol) (Code, bool) {
	id, found := t.table[symbol]
	if !found {
		return Code{}, false
	}
	return t.codeOf(id), true
}

// NYTCode returns the current code of the NYT leaf.  For a tree that has not
// seen any symbol yet this is the empty code.
func (t *Tree) NYTCode() Code {
	return t.codeOf(t.nyt)
}

// Len returns the number of distinct symbols seen so far.
func (t *Tree) Len() int {
	return len(t.table)
}

// Weight returns the root weight, i.e. the number of calls to Update.
func (t *Tree) Weight() uint64 {
	return t.nodes[t.root].weight
}

// Height returns the length of the longest code in the tree.  The NYT leaf
// always sits on the deepest level.
func (t *Tree) Height() int {
	return t.depthOf(t.nyt)
}

// codeOf derives the root-to-node path of id by walking parent links and
// reversing.  Codes are never cached: one swap can change many of them.
func (t *Tree) codeOf(id nodeID) Code {
	var reversed Code
	for cur := id; cur != t.root; {
		p := t.nodes[cur].parent
		if t.nodes[p].left == cur {
			reversed.appendBit(0)
		} else {
			reversed.appendBit(1)
		}
		cur = p
	}
	return reversed.Reversed()
}

// Cursor returns a Cursor positioned at the root of the tree.  A Cursor is
// invalidated by the next call to Update.
func (t *Tree) Cursor() Cursor {
	return Cursor{t: t, at: t.root}
}

// Cursor walks the tree one bit at a time, the way a decoder consumes a code.
type Cursor struct {
	t  *Tree
	at nodeID
}

// Leaf reports whether the Cursor rests on a leaf and, if so, its symbol.  The
// NYT leaf is reported as NYT.
func (c Cursor) Leaf() (Symbol, bool) {
	n := &c.t.nodes[c.at]
	if n.kind != leafNode {
		return InvalidSymbol, false
	}
	return n.symbol, true
}

// Step follows one edge: 0 to the left child, 1 to the right child.  Stepping
// from a leaf is a programming error.
func (c *Cursor) Step(bit uint) {
	n := &c.t.nodes[c.at]
	assert.Assertf(n.kind == internalNode, "Cursor.Step called on a leaf")
	if bit&1 == 0 {
		c.at = n.left
	} else {
		c.at = n.right
	}
}
