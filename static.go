package huffman

import (
	"container/heap"
	"math"
)

// Cost returns the number of code bits the current tree assigns to the
// symbols seen so far: the sum of weight × code length over all leaves.
func (t *Tree) Cost() uint64 {
	var total uint64
	for _, id := range t.table {
		total += t.nodes[id].weight * uint64(t.depthOf(id))
	}
	return total
}

// StaticCost returns the number of code bits that an optimal static Huffman
// code, built with full knowledge of the current symbol weights, would need
// for the same symbols.  Table transmission is not counted.  Cost() is never
// smaller than StaticCost().
func (t *Tree) StaticCost() uint64 {
	nodes := make([]symbolAndFreq, 0, len(t.table))
	for symbol, id := range t.table {
		nodes = append(nodes, symbolAndFreq{symbol, t.nodes[id].weight})
	}
	sizes := staticCodeSizes(nodes)

	var total uint64
	for _, item := range nodes {
		total += item.freq * uint64(sizes[item.symbol])
	}
	return total
}

// staticCodeSizes computes the code length of every symbol of an optimal
// static Huffman code for the given frequencies.
func staticCodeSizes(nodes []symbolAndFreq) map[Symbol]int {
	sizes := make(map[Symbol]int, len(nodes))
	if len(nodes) <= 2 {
		for _, item := range nodes {
			sizes[item.symbol] = 1
		}
		return sizes
	}

	// Step 1: build a minheap.

	h := freqHeap{append([]symbolAndFreq(nil), nodes...)}
	h.Init()

	// Step 2: repeatedly combine the two lightest entries into a synthetic
	// symbol.  Synthetic symbols are negative, starting at math.MinInt32,
	// so they never collide with real ones.

	type syntheticSymbol struct {
		left  Symbol
		right Symbol
	}

	syntheticSymbols := make([]syntheticSymbol, 0, len(nodes)-1)
	nextSyntheticSymbol := Symbol(math.MinInt32)

	for h.Len() > 1 {
		a := heap.Pop(&h).(symbolAndFreq)
		b := heap.Pop(&h).(symbolAndFreq)

		// Saturating addition.
		freqSum := a.freq + b.freq
		if freqSum < a.freq {
			freqSum = math.MaxUint64
		}

		syntheticSymbols = append(syntheticSymbols, syntheticSymbol{a.symbol, b.symbol})
		heap.Push(&h, symbolAndFreq{nextSyntheticSymbol, freqSum})
		nextSyntheticSymbol++
	}

	root := heap.Pop(&h).(symbolAndFreq)

	// Step 3: walk the tree with an explicit stack; the stack depth is the
	// code length.
	//
	//   x=0 → just arrived
	//   x=1 → left child done
	//   x=2 → both children done

	type stackItem struct {
		s Symbol
		x byte
	}

	stack := []stackItem{{s: root.symbol}}
	children := func(s Symbol) syntheticSymbol {
		return syntheticSymbols[int64(s)-math.MinInt32]
	}
	processChild := func(child Symbol) {
		if child < 0 {
			stack = append(stack, stackItem{s: child})
			return
		}
		sizes[child] = len(stack)
	}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			processChild(children(top.s).left)
		case 1:
			processChild(children(top.s).right)
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
	return sizes
}

// type symbolAndFreq + type freqHeap {{{

type symbolAndFreq struct {
	symbol Symbol
	freq   uint64
}

type freqHeap struct {
	list []symbolAndFreq
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return uint32(a.symbol) < uint32(b.symbol)
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(symbolAndFreq))
}

func (h *freqHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
