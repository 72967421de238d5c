package huffman_test

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	huffman "github.com/chronos-tachyon/adaptivehuffman"
)

func ExampleCompress() {
	var compressed bytes.Buffer
	stats, err := huffman.Compress(&compressed, strings.NewReader("aaaab"))
	if err != nil {
		panic(err)
	}
	fmt.Printf("% x\n", compressed.Bytes())
	fmt.Println(stats.Symbols, stats.Distinct, stats.Bits)

	var text strings.Builder
	if _, err := huffman.Decompress(&text, &compressed); err != nil {
		panic(err)
	}
	fmt.Println(text.String())
	// Output:
	// 61 e6 20 04
	// 5 2 20
	// aaaab
}

func ExampleTree() {
	tree := huffman.NewTree()
	for _, ch := range "aabbb" {
		tree.Update(huffman.Symbol(ch))
	}
	_, _ = tree.Dump(os.Stdout)
	// Output:
	// Tree{
	// 	Weight() = 5
	// 	Len() = 2
	// 	Height() = 2
	// 	[0] leaf NYT weight=0 code="00"
	// 	[1] leaf 'a' weight=2 code="01"
	// 	[2] internal weight=2 code="0"
	// 	[3] leaf 'b' weight=3 code="1"
	// 	[4] internal weight=5 code=""
	// }
}
