package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// LeafInfo describes one symbol leaf of a Tree.
type LeafInfo struct {
	Symbol Symbol
	Weight uint64
	Code   Code
}

// Leaves returns every symbol leaf (NYT excluded), heaviest first, ties
// broken by ascending symbol.
func (t *Tree) Leaves() []LeafInfo {
	out := make([]LeafInfo, 0, len(t.table))
	for symbol, id := range t.table {
		out = append(out, LeafInfo{
			Symbol: symbol,
			Weight: t.nodes[id].weight,
			Code:   t.codeOf(id),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.Symbol < b.Symbol
	})
	return out
}

// Dump writes a programmer-readable debugging dump of the Tree's current
// state to the given writer, one line per node in canonical order.
func (t *Tree) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Tree{\n")
	fmt.Fprintf(&buf, "\tWeight() = %d\n", t.Weight())
	fmt.Fprintf(&buf, "\tLen() = %d\n", t.Len())
	fmt.Fprintf(&buf, "\tHeight() = %d\n", t.Height())
	for rank, id := range t.order {
		n := &t.nodes[id]
		if n.kind == internalNode {
			fmt.Fprintf(&buf, "\t[%d] internal weight=%d code=%s\n", rank, n.weight, t.codeOf(id))
		} else {
			fmt.Fprintf(&buf, "\t[%d] leaf %v weight=%d code=%s\n", rank, n.symbol, n.weight, t.codeOf(id))
		}
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// WriteDot writes the tree as a Graphviz digraph.  Every node is labelled
// with its weight, code and depth; leaves also carry their symbol.
func (t *Tree) WriteDot(w io.Writer) (int64, error) {
	type frame struct {
		id     nodeID
		parent int
		code   Code
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")

	// Explicit stack, right child pushed first so the left subtree is
	// numbered first.  Deep trees must not recurse.
	stack := []frame{{id: t.root}}
	serial := 0
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		serial++

		n := &t.nodes[top.id]
		label := "w=" + strconv.FormatUint(n.weight, 10) +
			"\\ncode=" + top.code.String()[1:top.code.Size+1] +
			"\\ndepth=" + strconv.Itoa(top.code.Size)
		shape := "ellipse"
		if n.kind == leafNode {
			label += "\\n" + dotEscape(n.symbol.String())
			shape = "box"
		}
		fmt.Fprintf(&buf, "\t%d [label=\"%s\" shape=%s];\n", serial, label, shape)
		if top.parent != 0 {
			fmt.Fprintf(&buf, "\t%d -> %d;\n", top.parent, serial)
		}

		if n.kind == internalNode {
			stack = append(stack,
				frame{id: n.right, parent: serial, code: extendCode(top.code, 1)},
				frame{id: n.left, parent: serial, code: extendCode(top.code, 0)})
		}
	}

	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

func extendCode(hc Code, bit uint) Code {
	out := Code{Size: hc.Size, Bits: append([]uint64(nil), hc.Bits...)}
	out.appendBit(bit)
	return out
}

func dotEscape(str string) string {
	var buf bytes.Buffer
	for _, ch := range str {
		switch ch {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteRune(ch)
		default:
			buf.WriteRune(ch)
		}
	}
	return buf.String()
}
