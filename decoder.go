package huffman

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/adaptivehuffman/internal/bitstream"
)

// Decoder implements a streaming decoder for adaptive Huffman codes.  It
// rebuilds the encoder's tree symbol by symbol, so it needs nothing but the
// compressed bits.
type Decoder struct {
	tree  *Tree
	r     *bitstream.Reader
	stats Stats
	err   error
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	o := buildOptions(opts)
	tree := NewTree()
	tree.Paranoid = o.paranoid
	return &Decoder{
		tree: tree,
		r:    bitstream.NewReader(r, o.bufferSize),
	}
}

// ReadSymbol decodes the next symbol.  It returns io.EOF exactly after the
// last useful bit, ErrIncompleteStream if the stream stops part way through
// a symbol, and a *DecodeError if a raw symbol is not valid UTF-8.  Errors
// are sticky.
func (d *Decoder) ReadSymbol() (Symbol, error) {
	if d.err != nil {
		return InvalidSymbol, d.err
	}
	symbol, err := d.next()
	if err != nil {
		d.err = err
		return InvalidSymbol, err
	}
	if !d.tree.Contains(symbol) {
		d.stats.Distinct++
	}
	d.tree.Update(symbol)
	d.stats.Symbols++
	return symbol, nil
}

// Stats returns statistics about the symbols decoded so far.
func (d *Decoder) Stats() Stats {
	s := d.stats
	s.Bits = d.r.Bits()
	return s
}

// Tree exposes the decoder's tree.  It must not be modified.
func (d *Decoder) Tree() *Tree {
	return d.tree
}

func (d *Decoder) next() (Symbol, error) {
	cur := d.tree.Cursor()
	atStart := true
	for {
		if symbol, ok := cur.Leaf(); ok {
			if symbol != NYT {
				return symbol, nil
			}
			return d.readRaw(atStart)
		}

		bit, err := d.r.ReadBit()
		if err == io.EOF && atStart {
			return InvalidSymbol, io.EOF
		}
		if err != nil {
			return InvalidSymbol, streamError(err)
		}
		atStart = false
		cur.Step(bit)
	}
}

// readRaw reads one symbol framed as its literal UTF-8 bytes.
func (d *Decoder) readRaw(atStart bool) (Symbol, error) {
	lead, err := d.r.ReadBits(8)
	if err == io.EOF && atStart {
		return InvalidSymbol, io.EOF
	}
	if err != nil {
		return InvalidSymbol, streamError(err)
	}

	symbol, err := decodeSymbol(byte(lead), func() (byte, error) {
		b, err := d.r.ReadBits(8)
		return byte(b), err
	})
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return InvalidSymbol, de
		}
		return InvalidSymbol, streamError(err)
	}
	return symbol, nil
}

func streamError(err error) error {
	switch {
	case err == io.EOF, err == io.ErrUnexpectedEOF, errors.Is(err, bitstream.ErrNoTrailer):
		return errors.WithStack(ErrIncompleteStream)
	case errors.Is(err, bitstream.ErrBadTrailer):
		return errors.WithStack(ErrCorruptStream)
	default:
		return errors.Wrap(err, "read compressed stream")
	}
}

// Decompress reads an adaptive Huffman stream from src and writes the
// decoded UTF-8 text to dst.  On error, whatever was written to dst should be
// discarded.
func Decompress(dst io.Writer, src io.Reader, opts ...Option) (Stats, error) {
	o := buildOptions(opts)
	d := NewDecoder(src, opts...)
	bw := bufio.NewWriterSize(dst, o.bufferSize)
	scratch := make([]byte, 0, 4)
	for {
		symbol, err := d.ReadSymbol()
		if err == io.EOF {
			break
		}
		if err != nil {
			return d.Stats(), err
		}
		scratch = AppendSymbol(scratch[:0], symbol)
		if _, err := bw.Write(scratch); err != nil {
			return d.Stats(), errors.Wrap(err, "write text")
		}
	}
	if err := bw.Flush(); err != nil {
		return d.Stats(), errors.Wrap(err, "write text")
	}
	return d.Stats(), nil
}
