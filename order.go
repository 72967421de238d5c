package huffman

import (
	"github.com/chronos-tachyon/assert"
)

// Tree.order is the canonical order: lightest node first, root last, the two
// children of every internal node side by side and before their parent.  It
// is maintained in place rather than recomputed: a new symbol inserts two
// nodes at the front and a swap exchanges two slots.  Recomputing it from
// the tree shape after a swap would reorder equal weights and lose the
// weight order one level down.
//
// Walking the tree level by level, deepest level first and left to right
// within a level, also visits nodes in non-decreasing weight; Check verifies
// both orders.

// spliceNYT records the split of the NYT leaf into inner, whose children are
// the NYT leaf and leaf.  NYT keeps rank 0, leaf and inner take ranks 1 and 2,
// and every other node moves up by two.
func (t *Tree) spliceNYT(leaf nodeID, inner nodeID) {
	assert.Assertf(len(t.order) != 0 && t.order[0] == t.nyt, "NYT leaf is not first in canonical order")
	n := len(t.order)
	t.order = append(t.order, noNode, noNode)
	copy(t.order[3:], t.order[1:n])
	t.order[1] = leaf
	t.order[2] = inner
	t.renumber(1)
}

func (t *Tree) renumber(from int) {
	for rank := from; rank < len(t.order); rank++ {
		t.nodes[t.order[rank]].rank = int32(rank)
	}
}

// exchangeRanks swaps the slots of a and b in the canonical order.
func (t *Tree) exchangeRanks(a nodeID, b nodeID) {
	ra, rb := t.nodes[a].rank, t.nodes[b].rank
	t.order[ra], t.order[rb] = b, a
	t.nodes[a].rank, t.nodes[b].rank = rb, ra
}

// successor returns the node immediately after id in canonical order, or
// noNode for the root.
func (t *Tree) successor(id nodeID) nodeID {
	next := int(t.nodes[id].rank) + 1
	if next >= len(t.order) {
		return noNode
	}
	return t.order[next]
}

// blockEnd returns the last node of id's weight block: walking forward in
// canonical order from id while the weight stays equal, the last node before
// the weight strictly increases (or the end of the order).
func (t *Tree) blockEnd(id nodeID) nodeID {
	weight := t.nodes[id].weight
	rank := int(t.nodes[id].rank)
	for rank+1 < len(t.order) && t.nodes[t.order[rank+1]].weight == weight {
		rank++
	}
	return t.order[rank]
}

// levelOrder lists every node by decreasing depth, left to right within a
// level.  The walk is a breadth-first traversal that enqueues right before
// left, so each level comes out right to left; reversing the visit sequence
// yields the level order.
func (t *Tree) levelOrder() []nodeID {
	queue := make([]nodeID, 0, len(t.order))
	queue = append(queue, t.root)
	for head := 0; head < len(queue); head++ {
		id := queue[head]
		n := &t.nodes[id]
		if n.kind != internalNode {
			continue
		}
		assert.Assertf(n.left != noNode && n.right != noNode, "internal node %d has a missing child", id)
		queue = append(queue, n.right, n.left)
	}

	for i, j := 0, len(queue)-1; i < j; i, j = i+1, j-1 {
		queue[i], queue[j] = queue[j], queue[i]
	}
	return queue
}
