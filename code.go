package huffman

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

const bitsPerWord = 64

// Code represents a sequence of bits.  Adaptive codes have no fixed upper
// bound on their length (a badly skewed tree can be as deep as the alphabet
// is wide), so the bits are stored in as many words as needed.
type Code struct {
	// Size holds the number of valid bits.
	Size int

	// Bits holds the actual values of the bits, 64 to a word.  The least
	// significant bit of Bits[0] is the first bit.
	Bits []uint64
}

// MakeCode is a convenience function that constructs a Code of at most 64
// bits.  The least significant bit of bits is the first bit.
func MakeCode(size int, bits uint64) Code {
	if size <= 0 {
		return Code{}
	}
	if size < bitsPerWord {
		bits &= (uint64(1) << size) - 1
	}
	return Code{Size: size, Bits: []uint64{bits}}
}

// ParseCode constructs a Code from a string of '0' and '1' characters, first
// bit first.
func ParseCode(str string) (Code, error) {
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc.appendBit(0)
		case '1':
			hc.appendBit(1)
		default:
			return Code{}, errors.Errorf("invalid character %q at index %d in code %q", str[i], i, str)
		}
	}
	return hc, nil
}

// Bit returns the i'th bit of the code, counting from the first bit.
func (hc Code) Bit(i int) uint {
	return uint(hc.Bits[i/bitsPerWord]>>(uint(i)%bitsPerWord)) & 1
}

// Reversed returns the corresponding Code with the bits in reverse order.
func (hc Code) Reversed() Code {
	out := Code{Bits: make([]uint64, 0, len(hc.Bits))}
	for i := hc.Size - 1; i >= 0; i-- {
		out.appendBit(hc.Bit(i))
	}
	return out
}

// HasPrefix returns true if prefix is a (not necessarily proper) prefix of
// this Code.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	fullWords := prefix.Size / bitsPerWord
	for i := 0; i < fullWords; i++ {
		if hc.Bits[i] != prefix.Bits[i] {
			return false
		}
	}
	if rest := uint(prefix.Size % bitsPerWord); rest != 0 {
		mask := (uint64(1) << rest) - 1
		if hc.Bits[fullWords]&mask != prefix.Bits[fullWords]&mask {
			return false
		}
	}
	return true
}

// Equal returns true if both codes hold the same bit sequence.
func (hc Code) Equal(other Code) bool {
	return hc.Size == other.Size && hc.HasPrefix(other)
}

// Less orders codes lexicographically by bit, a code sorting before every
// longer code it is a prefix of.
func (hc Code) Less(other Code) bool {
	for i := 0; i < hc.Size && i < other.Size; i++ {
		if a, b := hc.Bit(i), other.Bit(i); a != b {
			return a < b
		}
	}
	return hc.Size < other.Size
}

// Words calls fn once per stored word, in order, with the word's bits
// rearranged so that the first bit is the most significant of the n low bits.
// This is the order in which bit writers emit multi-bit values.
func (hc Code) Words(fn func(msbFirst uint64, n uint8) error) error {
	remaining := hc.Size
	for _, word := range hc.Bits {
		if remaining <= 0 {
			break
		}
		n := remaining
		if n > bitsPerWord {
			n = bitsPerWord
		}
		if err := fn(reverseBits(n, word), uint8(n)); err != nil {
			return err
		}
		remaining -= n
	}
	return nil
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	var buf strings.Builder
	buf.Grow(hc.Size + 2)
	buf.WriteByte('"')
	for i := 0; i < hc.Size; i++ {
		buf.WriteByte('0' + byte(hc.Bit(i)))
	}
	buf.WriteByte('"')
	return buf.String()
}

var _ fmt.Stringer = Code{}

func (hc *Code) appendBit(bit uint) {
	index, shift := hc.Size/bitsPerWord, uint(hc.Size%bitsPerWord)
	if index == len(hc.Bits) {
		hc.Bits = append(hc.Bits, 0)
	}
	hc.Bits[index] |= uint64(bit&1) << shift
	hc.Size++
}
