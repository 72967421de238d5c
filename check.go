package huffman

import (
	"fmt"
	"sort"
)

// InvariantError describes a broken structural invariant of a Tree.  Seeing
// one means the tree engine has a bug; it is never caused by input data.
type InvariantError struct {
	Invariant string
	Message   string
}

// Error fulfills the error interface.
func (err *InvariantError) Error() string {
	return "huffman: " + err.Invariant + " invariant violated: " + err.Message
}

var _ error = (*InvariantError)(nil)

func invariantErrorf(invariant string, format string, args ...interface{}) *InvariantError {
	return &InvariantError{Invariant: invariant, Message: fmt.Sprintf(format, args...)}
}

// Check verifies every structural invariant of the tree:
//
//   - every internal node has two children and weighs their sum
//   - exactly one NYT leaf exists, it weighs 0, and it is the left child of
//     the deepest, leftmost internal node
//   - the canonical order covers every node, is non-decreasing in weight,
//     keeps siblings side by side and ranks every node below its parent
//   - the level order (deepest level first, left to right) is
//     non-decreasing in weight
//   - the leaf codes are prefix-free
//   - the symbol table maps every seen symbol to its leaf
//
// Check returns nil or an *InvariantError.
func (t *Tree) Check() error {
	if t.nodes[t.root].parent != noNode {
		return invariantErrorf("root", "root %d has parent %d", t.root, t.nodes[t.root].parent)
	}
	if len(t.order) == 0 || t.order[len(t.order)-1] != t.root {
		return invariantErrorf("order", "root %d is not last in canonical order", t.root)
	}

	var nytCount int
	var leafCount int
	seen := make(map[nodeID]struct{}, len(t.order))
	for rank, id := range t.order {
		if _, dup := seen[id]; dup {
			return invariantErrorf("order", "node %d appears twice in canonical order", id)
		}
		seen[id] = struct{}{}

		n := &t.nodes[id]
		if int(n.rank) != rank {
			return invariantErrorf("order", "node %d has rank %d but sits at position %d", id, n.rank, rank)
		}
		if rank > 0 {
			if prev := &t.nodes[t.order[rank-1]]; prev.weight > n.weight {
				return invariantErrorf("order", "weight decreases from %d to %d at rank %d", prev.weight, n.weight, rank)
			}
		}
		if n.parent != noNode {
			if t.nodes[n.parent].rank <= n.rank {
				return invariantErrorf("order", "node %d at rank %d is not below its parent at rank %d", id, n.rank, t.nodes[n.parent].rank)
			}
			if rank%2 == 0 && t.nodes[t.order[rank+1]].parent != n.parent {
				return invariantErrorf("sibling", "nodes at ranks %d and %d are not siblings", rank, rank+1)
			}
		}

		switch n.kind {
		case internalNode:
			if n.left == noNode || n.right == noNode {
				return invariantErrorf("full", "internal node %d has a missing child", id)
			}
			if t.nodes[n.left].parent != id || t.nodes[n.right].parent != id {
				return invariantErrorf("parent", "children of node %d do not point back to it", id)
			}
			if sum := t.nodes[n.left].weight + t.nodes[n.right].weight; sum != n.weight {
				return invariantErrorf("weight", "node %d weighs %d but its children sum to %d", id, n.weight, sum)
			}
		case leafNode:
			if n.left != noNode || n.right != noNode {
				return invariantErrorf("full", "leaf %d has children", id)
			}
			if n.symbol == NYT {
				nytCount++
				if id != t.nyt {
					return invariantErrorf("nyt", "stray NYT leaf %d (expected %d)", id, t.nyt)
				}
				if n.weight != 0 {
					return invariantErrorf("nyt", "NYT leaf weighs %d", n.weight)
				}
				continue
			}
			leafCount++
			if mapped, found := t.table[n.symbol]; !found || mapped != id {
				return invariantErrorf("table", "leaf %d for %v is not registered in the symbol table", id, n.symbol)
			}
		}
	}

	if len(seen) != t.reachable() {
		return invariantErrorf("order", "canonical order has %d nodes, tree has %d", len(seen), t.reachable())
	}
	if nytCount != 1 {
		return invariantErrorf("nyt", "found %d NYT leaves", nytCount)
	}
	if leafCount != len(t.table) {
		return invariantErrorf("table", "symbol table has %d entries for %d leaves", len(t.table), leafCount)
	}

	if t.order[0] != t.nyt {
		return invariantErrorf("nyt", "NYT leaf is not first in canonical order")
	}

	levels := t.levelOrder()
	for i := 1; i < len(levels); i++ {
		prev, n := &t.nodes[levels[i-1]], &t.nodes[levels[i]]
		if prev.weight > n.weight {
			return invariantErrorf("order", "weight decreases from %d to %d at level-order position %d", prev.weight, n.weight, i)
		}
	}

	if t.nyt != t.root {
		p := t.nodes[t.nyt].parent
		if t.nodes[p].left != t.nyt {
			return invariantErrorf("nyt", "NYT leaf is not a left child")
		}
		if first := t.firstInternal(levels); first != p {
			return invariantErrorf("nyt", "NYT parent %d is not the deepest, leftmost internal node %d", p, first)
		}
	}

	return t.checkPrefixFree()
}

func (t *Tree) reachable() int {
	count := 0
	stack := []nodeID{t.root}
	for len(stack) != 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		if n := &t.nodes[id]; n.kind == internalNode {
			stack = append(stack, n.left, n.right)
		}
	}
	return count
}

func (t *Tree) firstInternal(levels []nodeID) nodeID {
	for _, id := range levels {
		if t.nodes[id].kind == internalNode {
			return id
		}
	}
	return noNode
}

// checkPrefixFree sorts the leaf codes lexicographically; a code that is a
// prefix of any other is then a prefix of its immediate successor.
func (t *Tree) checkPrefixFree() error {
	codes := make([]Code, 0, len(t.table)+1)
	for _, id := range t.order {
		if t.isLeaf(id) {
			codes = append(codes, t.codeOf(id))
		}
	}
	sort.Slice(codes, func(i, j int) bool {
		return codes[i].Less(codes[j])
	})
	for i := 1; i < len(codes); i++ {
		if a, b := codes[i-1], codes[i]; b.HasPrefix(a) {
			return invariantErrorf("prefix", "code %s is a prefix of %s", a, b)
		}
	}
	return nil
}
