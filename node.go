package huffman

// nodeID is the index of a node in Tree.nodes.
type nodeID int32

const noNode = nodeID(-1)

type nodeKind uint8

const (
	leafNode nodeKind = iota
	internalNode
)

func (kind nodeKind) String() string {
	if kind == internalNode {
		return "internal"
	}
	return "leaf"
}

// node is either an internal node (left and right are both set) or a leaf
// (symbol is set, left and right are noNode).  The NYT leaf carries the NYT
// pseudo-symbol.
type node struct {
	kind   nodeKind
	weight uint64
	parent nodeID
	left   nodeID
	right  nodeID
	symbol Symbol

	// rank is the node's position in Tree.order.
	rank int32
}

func (t *Tree) newLeaf(symbol Symbol, weight uint64) nodeID {
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		kind:   leafNode,
		weight: weight,
		parent: noNode,
		left:   noNode,
		right:  noNode,
		symbol: symbol,
	})
	return id
}

func (t *Tree) newInternal(left nodeID, right nodeID, weight uint64) nodeID {
	id := nodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		kind:   internalNode,
		weight: weight,
		parent: noNode,
		left:   noNode,
		right:  noNode,
		symbol: InvalidSymbol,
	})
	t.setLeft(id, left)
	t.setRight(id, right)
	return id
}

func (t *Tree) setLeft(parent nodeID, child nodeID) {
	t.nodes[parent].left = child
	t.nodes[child].parent = parent
}

func (t *Tree) setRight(parent nodeID, child nodeID) {
	t.nodes[parent].right = child
	t.nodes[child].parent = parent
}

func (t *Tree) isLeaf(id nodeID) bool {
	return t.nodes[id].kind == leafNode
}

// depthOf returns the number of edges between id and the root.
func (t *Tree) depthOf(id nodeID) int {
	depth := 0
	for cur := t.nodes[id].parent; cur != noNode; cur = t.nodes[cur].parent {
		depth++
	}
	return depth
}

// isAncestor returns true if a is a proper ancestor of b.
func (t *Tree) isAncestor(a nodeID, b nodeID) bool {
	for cur := t.nodes[b].parent; cur != noNode; cur = t.nodes[cur].parent {
		if cur == a {
			return true
		}
	}
	return false
}
