package huffman

import (
	"strconv"
)

// Symbol represents a symbol in the adaptive code's alphabet: one Unicode
// scalar value.  Negative symbols are not valid.
type Symbol rune

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(0x10ffff)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.
const InvalidSymbol = Symbol(-1)

// NYT is the pseudo-symbol carried by the Not-Yet-Transmitted leaf.  It is
// what a Cursor reports when a code path ends on that leaf.
const NYT = InvalidSymbol

const (
	surrogateMin = Symbol(0xd800)
	surrogateMax = Symbol(0xdfff)
)

// IsValid returns true if this Symbol is a Unicode scalar value, i.e. it can
// be carried by the codec.
func (s Symbol) IsValid() bool {
	if s < 0 || s > MaxSymbol {
		return false
	}
	return s < surrogateMin || s > surrogateMax
}

// String returns a quoted, human-readable form of the symbol.
func (s Symbol) String() string {
	if s == NYT {
		return "NYT"
	}
	if !s.IsValid() {
		return "Symbol(" + strconv.FormatInt(int64(s), 10) + ")"
	}
	return strconv.QuoteRune(rune(s))
}
