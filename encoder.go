package huffman

import (
	"io"

	"github.com/pkg/errors"

	"github.com/chronos-tachyon/adaptivehuffman/internal/bitstream"
)

// Encoder implements a streaming encoder for adaptive Huffman codes.
//
// Each symbol is written as its current code if it has been seen before, or
// as the NYT code followed by its raw UTF-8 bytes if not; the tree is then
// updated.  Close must be called to flush the final byte and the trailer.
type Encoder struct {
	tree   *Tree
	w      *bitstream.Writer
	stats  Stats
	raw    []byte
	err    error
	closed bool
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	o := buildOptions(opts)
	tree := NewTree()
	tree.Paranoid = o.paranoid
	return &Encoder{
		tree: tree,
		w:    bitstream.NewWriter(w, o.bufferSize),
		raw:  make([]byte, 0, 4),
	}
}

// WriteSymbol encodes one symbol.
func (e *Encoder) WriteSymbol(symbol Symbol) error {
	if e.err != nil {
		return e.err
	}
	if !symbol.IsValid() {
		return errors.Errorf("huffman: cannot encode invalid symbol %d", int32(symbol))
	}

	if hc, found := e.tree.Lookup(symbol); found {
		e.err = e.writeCode(hc)
	} else {
		e.err = e.writeCode(e.tree.NYTCode())
		if e.err == nil {
			e.err = e.writeRaw(symbol)
		}
		e.stats.Distinct++
	}
	if e.err != nil {
		e.err = errors.Wrap(e.err, "write compressed stream")
		return e.err
	}

	e.tree.Update(symbol)
	e.stats.Symbols++
	return nil
}

// Close flushes all pending bits, pads the final byte and writes the
// padding-count trailer.  It does not close the underlying writer.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	if e.err != nil {
		return e.err
	}
	if err := e.w.Close(); err != nil {
		e.err = errors.Wrap(err, "write compressed stream")
		return e.err
	}
	e.closed = true
	e.err = errors.New("huffman: write to closed Encoder")
	return nil
}

// Stats returns statistics about the symbols encoded so far.
func (e *Encoder) Stats() Stats {
	s := e.stats
	s.Bits = e.w.Bits()
	return s
}

// Tree exposes the encoder's tree.  It must not be modified.
func (e *Encoder) Tree() *Tree {
	return e.tree
}

func (e *Encoder) writeCode(hc Code) error {
	return hc.Words(e.w.WriteBits)
}

func (e *Encoder) writeRaw(symbol Symbol) error {
	e.raw = AppendSymbol(e.raw[:0], symbol)
	for _, b := range e.raw {
		if err := e.w.WriteBits(uint64(b), 8); err != nil {
			return err
		}
	}
	return nil
}

// Compress reads UTF-8 text from src and writes its adaptive Huffman
// encoding to dst.  On error, whatever was written to dst is not a valid
// stream and should be discarded.
func Compress(dst io.Writer, src io.Reader, opts ...Option) (Stats, error) {
	o := buildOptions(opts)
	sr := NewSymbolReader(src, o.bufferSize)
	e := NewEncoder(dst, opts...)
	for {
		symbol, err := sr.ReadSymbol()
		if err == io.EOF {
			break
		}
		if err != nil {
			return e.Stats(), err
		}
		if err := e.WriteSymbol(symbol); err != nil {
			return e.Stats(), err
		}
	}
	err := e.Close()
	return e.Stats(), err
}
