// Package bitstream implements the bit-granularity framing used by adaptive
// Huffman streams.
//
// Bits are packed most significant bit first.  When a stream ends, the last
// partial byte is padded with zero bits and one more byte is appended that
// records how many padding bits were added (0 to 7):
//
//     [data bits ...][zero padding][padding count]
//
// The trailer lets a Reader stop exactly after the last useful bit instead of
// decoding padding as data.
//
package bitstream

import (
	"bufio"
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

// DefaultBufferSize is the block size used to amortize system calls when no
// explicit size is given.
const DefaultBufferSize = 64 << 10

// Writer accumulates bits and writes completed bytes to an underlying sink.
type Writer struct {
	buf    *bufio.Writer
	bw     *bitio.Writer
	bits   uint64
	closed bool
}

// NewWriter returns a Writer that buffers up to size bytes before writing to
// w.  A size of 0 or less selects DefaultBufferSize.
func NewWriter(w io.Writer, size int) *Writer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	buf := bufio.NewWriterSize(w, size)
	return &Writer{buf: buf, bw: bitio.NewWriter(buf)}
}

// WriteBit writes the low bit of bit.
func (w *Writer) WriteBit(bit uint) error {
	if w.closed {
		return errors.New("bitstream: write after Close")
	}
	w.bits++
	return w.bw.WriteBool(bit&1 == 1)
}

// WriteBits writes the n low bits of v, most significant first.
func (w *Writer) WriteBits(v uint64, n uint8) error {
	if w.closed {
		return errors.New("bitstream: write after Close")
	}
	if n == 0 {
		return nil
	}
	w.bits += uint64(n)
	return w.bw.WriteBits(v, n)
}

// Bits returns the number of data bits written so far (padding excluded).
func (w *Writer) Bits() uint64 {
	return w.bits
}

// Close pads the last partial byte with zeros, appends the padding-count
// trailer and flushes.  It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	padding, err := w.bw.Align()
	if err != nil {
		return err
	}
	if err := w.bw.WriteByte(padding); err != nil {
		return err
	}
	return w.buf.Flush()
}
