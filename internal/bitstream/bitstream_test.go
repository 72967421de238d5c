package bitstream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter_Padding(t *testing.T) {
	type testRow struct {
		name   string
		bits   string
		expect []byte
	}

	testData := [...]testRow{
		{name: "empty", bits: "", expect: []byte{0x00}},
		{name: "one-bit", bits: "1", expect: []byte{0x80, 0x07}},
		{name: "full-byte", bits: "01100001", expect: []byte{0x61, 0x00}},
		{name: "eleven-bits", bits: "01100001111", expect: []byte{0x61, 0xe0, 0x05}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, 0)
			for _, ch := range row.bits {
				require.NoError(t, w.WriteBit(uint(ch-'0')))
			}
			require.Equal(t, uint64(len(row.bits)), w.Bits())
			require.NoError(t, w.Close())
			require.NoError(t, w.Close())
			require.Equal(t, row.expect, buf.Bytes())
			require.Error(t, w.WriteBit(1))
		})
	}
}

func TestWriter_WriteBits(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 16)
	require.NoError(t, w.WriteBits(0x5, 3))
	require.NoError(t, w.WriteBits(0, 0))
	require.NoError(t, w.WriteBits(0xabcd, 16))
	require.NoError(t, w.Close())
	// 101 1010101111001101 ·00000, 5 padding bits
	require.Equal(t, []byte{0xb5, 0x79, 0xa0, 0x05}, buf.Bytes())
}

func TestReader_StopsAtLastUsefulBit(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x61, 0xe0, 0x05}), 0)

	v, err := r.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint64(0x61), v)

	for i := 0; i < 3; i++ {
		bit, err := r.ReadBit()
		require.NoError(t, err)
		require.Equal(t, uint(1), bit)
	}

	_, err = r.ReadBit()
	require.Equal(t, io.EOF, err)
	_, err = r.ReadBit()
	require.Equal(t, io.EOF, err)
	require.Equal(t, uint64(11), r.Bits())
}

func TestReader_UnexpectedEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xc0, 0x06}), 0)
	_, err := r.ReadBits(8)
	require.Equal(t, io.ErrUnexpectedEOF, err)

	r = NewReader(bytes.NewReader([]byte{0x00}), 0)
	_, err = r.ReadBits(8)
	require.Equal(t, io.EOF, err)
}

func TestReader_Trailer(t *testing.T) {
	type testRow struct {
		name   string
		input  []byte
		expect error
	}

	testData := [...]testRow{
		{name: "missing", input: nil, expect: ErrNoTrailer},
		{name: "too-large", input: []byte{0xff, 0x08}, expect: ErrBadTrailer},
		{name: "padding-on-empty", input: []byte{0x01}, expect: ErrBadTrailer},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(row.input), 0)
			_, err := r.ReadBit()
			require.ErrorIs(t, err, row.expect)
		})
	}
}

func TestRoundTrip_AcrossBufferBoundaries(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 16)
	var expect []uint
	for i := 0; i < 1001; i++ {
		bit := uint((i*7 + i/3) & 1)
		expect = append(expect, bit)
		require.NoError(t, w.WriteBit(bit))
	}
	require.NoError(t, w.Close())

	// A tiny read buffer makes the trailer look-ahead straddle refills.
	r := NewReader(&buf, 16)
	for i, want := range expect {
		bit, err := r.ReadBit()
		require.NoError(t, err, "bit %d", i)
		require.Equal(t, want, bit, "bit %d", i)
	}
	_, err := r.ReadBit()
	require.Equal(t, io.EOF, err)
}
