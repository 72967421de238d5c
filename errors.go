package huffman

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrDecode is matched (via errors.Is) by every *DecodeError.
	ErrDecode = errors.New("huffman: malformed UTF-8")

	// ErrIncompleteStream indicates that the compressed stream ended in
	// the middle of a code or of a raw symbol.  The stream cannot be
	// decoded any further.
	ErrIncompleteStream = errors.New("huffman: incomplete stream")

	// ErrCorruptStream indicates that the compressed stream's trailer is
	// not a valid padding count.
	ErrCorruptStream = errors.New("huffman: corrupt stream trailer")
)

// DecodeError reports malformed UTF-8, either in the text being compressed or
// in a raw symbol carried by a compressed stream.
type DecodeError struct {
	// Offset is the byte offset of the offending sequence's first byte
	// within the text source, or -1 if it was carried by raw bits in a
	// compressed stream.
	Offset int64

	// Reason describes what was wrong with the sequence.
	Reason string
}

// Error fulfills the error interface.
func (err *DecodeError) Error() string {
	if err.Offset < 0 {
		return "huffman: malformed UTF-8 in raw symbol: " + err.Reason
	}
	return "huffman: malformed UTF-8 at offset " + strconv.FormatInt(err.Offset, 10) + ": " + err.Reason
}

// Is makes errors.Is(err, ErrDecode) true for every *DecodeError.
func (err *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

var _ error = (*DecodeError)(nil)
