package huffman

import (
	"github.com/chronos-tachyon/adaptivehuffman/internal/bitstream"
)

// DefaultBufferSize is the I/O block size used when no WithBufferSize option
// is given.
const DefaultBufferSize = bitstream.DefaultBufferSize

type options struct {
	bufferSize int
	paranoid   bool
}

// Option configures an Encoder, a Decoder, Compress or Decompress.
type Option func(*options)

// WithBufferSize sets the size of the byte buffers placed in front of the
// underlying reader and writer.  Values of 0 or less select
// DefaultBufferSize.
func WithBufferSize(n int) Option {
	return func(o *options) {
		o.bufferSize = n
	}
}

// WithParanoid makes the tree verify all of its invariants after every
// symbol.  This is slow and is meant for testing.
func WithParanoid(on bool) Option {
	return func(o *options) {
		o.paranoid = on
	}
}

func buildOptions(opts []Option) options {
	o := options{bufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bufferSize <= 0 {
		o.bufferSize = DefaultBufferSize
	}
	return o
}

// Stats summarizes one compression or decompression pass.
type Stats struct {
	// Symbols is the number of symbols coded.
	Symbols uint64

	// Distinct is the number of symbols that were sent raw, i.e. the size
	// of the alphabet seen.
	Distinct uint64

	// Bits is the number of useful bits in the compressed stream, padding
	// and trailer excluded.
	Bits uint64
}

// CompressedSize is the size in bytes of the compressed stream described by
// these Stats, trailer included.
func (s Stats) CompressedSize() uint64 {
	return (s.Bits+7)/8 + 1
}
