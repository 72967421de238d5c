// Package huffman implements adaptive (dynamic) Huffman coding of Unicode
// text.  Encoder and decoder each grow the same code tree from the symbols
// seen so far, so no frequency table is ever transmitted and the text is
// compressed in a single pass.
//
// The alphabet is the set of Unicode scalar values.  The first occurrence of
// a symbol is sent as the code of the NYT ("Not Yet Transmitted") leaf
// followed by the symbol's literal UTF-8 bytes; later occurrences are sent as
// the symbol's current code.  The stream ends with zero padding to a byte
// boundary and one byte holding the number of padding bits:
//
//     [coded bits ...][zero padding][padding count, 0..7]
//
// The tree is updated with the one-increment-per-symbol FGK procedure.  Its
// canonical node order is maintained across swaps, and the tree's level order
// (deepest level first, left to right within a level) stays non-decreasing
// in weight.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Adaptive_Huffman_coding>
//
//     Knuth, "Dynamic Huffman Coding", J. Algorithms 6 (1985) 163–180
//
package huffman
