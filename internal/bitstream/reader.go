package bitstream

import (
	"bufio"
	"io"

	"github.com/icza/bitio"
	"github.com/pkg/errors"
)

var (
	// ErrNoTrailer is returned when the byte stream is empty; even an
	// empty payload carries its padding-count byte.
	ErrNoTrailer = errors.New("bitstream: missing padding-count trailer")

	// ErrBadTrailer is returned when the trailer is not a valid padding
	// count for the payload in front of it.
	ErrBadTrailer = errors.New("bitstream: invalid padding-count trailer")
)

// Reader reads bits, most significant first, and reports io.EOF exactly after
// the last useful bit of the stream.
type Reader struct {
	src  *trailerSource
	br   *bitio.Reader
	read uint64
}

// NewReader returns a Reader that reads from r through a buffer of size
// bytes.  A size of 0 or less selects DefaultBufferSize.
func NewReader(r io.Reader, size int) *Reader {
	if size <= 0 {
		size = DefaultBufferSize
	}
	src := &trailerSource{r: bufio.NewReaderSize(r, size)}
	return &Reader{src: src, br: bitio.NewReader(src)}
}

// ReadBit returns the next bit.
func (r *Reader) ReadBit() (uint, error) {
	if r.exhausted() {
		return 0, io.EOF
	}
	bit, err := r.br.ReadBool()
	if err != nil {
		return 0, err
	}
	// The byte just fetched may have been the last one, in which case the
	// bit we got could be padding.
	if r.exhausted() {
		return 0, io.EOF
	}
	r.read++
	if bit {
		return 1, nil
	}
	return 0, nil
}

// ReadBits reads n bits and assembles them most significant first.  It
// returns io.EOF if no bit at all was available and io.ErrUnexpectedEOF if
// the stream ended part way through.
func (r *Reader) ReadBits(n uint8) (uint64, error) {
	var v uint64
	for i := uint8(0); i < n; i++ {
		bit, err := r.ReadBit()
		if err == io.EOF && i != 0 {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, err
		}
		v = (v << 1) | uint64(bit)
	}
	return v, nil
}

// Bits returns the number of bits read so far.
func (r *Reader) Bits() uint64 {
	return r.read
}

func (r *Reader) exhausted() bool {
	return r.src.final && r.read >= r.src.limit
}

// trailerSource hands out payload bytes one at a time while looking two bytes
// ahead, so that by the time the last payload byte is handed out the trailer
// has been read and the exact number of useful bits is known.
type trailerSource struct {
	r      *bufio.Reader
	served uint64
	final  bool
	limit  uint64
	err    error
}

func (s *trailerSource) ReadByte() (byte, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.final {
		return 0, io.EOF
	}

	b, err := s.r.ReadByte()
	if err == io.EOF {
		s.err = ErrNoTrailer
		return 0, s.err
	}
	if err != nil {
		s.err = err
		return 0, err
	}

	ahead, err := s.r.Peek(2)
	if len(ahead) < 2 && err != io.EOF {
		s.err = err
		return 0, err
	}

	switch len(ahead) {
	case 0:
		// b is the trailer of an empty payload.
		if b != 0 {
			s.err = ErrBadTrailer
			return 0, s.err
		}
		s.final = true
		return 0, io.EOF

	case 1:
		// b is the last payload byte and ahead[0] the trailer.
		padding := ahead[0]
		if padding > 7 {
			s.err = ErrBadTrailer
			return 0, s.err
		}
		if _, err := s.r.Discard(1); err != nil {
			s.err = err
			return 0, err
		}
		s.served++
		s.final = true
		s.limit = s.served*8 - uint64(padding)
		return b, nil

	default:
		s.served++
		return b, nil
	}
}

func (s *trailerSource) Read(p []byte) (int, error) {
	for i := range p {
		b, err := s.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

var (
	_ io.ByteReader = (*trailerSource)(nil)
	_ io.Reader     = (*trailerSource)(nil)
)
