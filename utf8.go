package huffman

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// minBySize is the smallest codepoint that legitimately needs a sequence of
// the given length; anything smaller is an overlong form.
var minBySize = [5]Symbol{0, 0, 0x80, 0x800, 0x10000}

// SequenceLength classifies a UTF-8 leading byte by its high-order bits and
// returns the total length of the sequence it starts (1 to 4).  It returns
// false for continuation bytes and for bytes that cannot start a sequence.
func SequenceLength(lead byte) (int, bool) {
	switch {
	case lead&0x80 == 0x00:
		return 1, true
	case lead&0xe0 == 0xc0:
		return 2, true
	case lead&0xf0 == 0xe0:
		return 3, true
	case lead&0xf8 == 0xf0:
		return 4, true
	default:
		return 0, false
	}
}

// AppendSymbol appends the UTF-8 encoding of symbol to dst.
func AppendSymbol(dst []byte, symbol Symbol) []byte {
	return utf8.AppendRune(dst, rune(symbol))
}

// decodeSymbol reassembles one codepoint from its leading byte and the
// continuation bytes returned by next.  Errors returned by next are passed
// through untouched (so the caller decides what a short read means);
// malformed sequences yield a *DecodeError with Offset -1.
func decodeSymbol(lead byte, next func() (byte, error)) (Symbol, error) {
	size, ok := SequenceLength(lead)
	if !ok {
		return InvalidSymbol, &DecodeError{Offset: -1, Reason: fmt.Sprintf("invalid leading byte 0x%02x", lead)}
	}
	if size == 1 {
		return Symbol(lead), nil
	}

	value := Symbol(lead & (0xff >> uint(size+1)))
	for i := 1; i < size; i++ {
		b, err := next()
		if err != nil {
			return InvalidSymbol, err
		}
		if b&0xc0 != 0x80 {
			return InvalidSymbol, &DecodeError{Offset: -1, Reason: fmt.Sprintf("invalid continuation byte 0x%02x", b)}
		}
		value = (value << 6) | Symbol(b&0x3f)
	}

	if value < minBySize[size] {
		return InvalidSymbol, &DecodeError{Offset: -1, Reason: fmt.Sprintf("overlong %d-byte encoding of U+%04X", size, value)}
	}
	if !value.IsValid() {
		return InvalidSymbol, &DecodeError{Offset: -1, Reason: fmt.Sprintf("U+%04X is not a Unicode scalar value", value)}
	}
	return value, nil
}

// SymbolReader decodes a UTF-8 byte stream into Symbols, one codepoint at a
// time.
type SymbolReader struct {
	r      io.ByteReader
	offset int64
}

// NewSymbolReader returns a SymbolReader over r.  If r is not already an
// io.ByteReader it is wrapped in a bufio.Reader of the given size.
func NewSymbolReader(r io.Reader, size int) *SymbolReader {
	br, ok := r.(io.ByteReader)
	if !ok {
		if size <= 0 {
			size = DefaultBufferSize
		}
		br = bufio.NewReaderSize(r, size)
	}
	return &SymbolReader{r: br}
}

// Offset returns the number of bytes consumed so far.
func (sr *SymbolReader) Offset() int64 {
	return sr.offset
}

// ReadSymbol decodes the next codepoint.  It returns io.EOF at a clean end of
// input and a *DecodeError for malformed or truncated sequences.
func (sr *SymbolReader) ReadSymbol() (Symbol, error) {
	start := sr.offset
	lead, err := sr.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return InvalidSymbol, io.EOF
		}
		return InvalidSymbol, errors.Wrap(err, "read text")
	}
	sr.offset++

	symbol, err := decodeSymbol(lead, func() (byte, error) {
		b, err := sr.r.ReadByte()
		if err == nil {
			sr.offset++
		}
		return b, err
	})
	switch {
	case err == nil:
		return symbol, nil
	case err == io.EOF:
		return InvalidSymbol, &DecodeError{Offset: start, Reason: "truncated multi-byte sequence"}
	default:
		var de *DecodeError
		if errors.As(err, &de) {
			de.Offset = start
			return InvalidSymbol, de
		}
		return InvalidSymbol, errors.Wrap(err, "read text")
	}
}
