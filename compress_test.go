package huffman_test

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	huffman "github.com/chronos-tachyon/adaptivehuffman"
)

func compress(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	stats, err := huffman.Compress(&buf, strings.NewReader(text), huffman.WithParanoid(true))
	require.NoError(t, err)
	require.Equal(t, uint64(len([]rune(text))), stats.Symbols)
	require.Equal(t, uint64(buf.Len()), stats.CompressedSize())
	return buf.Bytes()
}

func decompress(t *testing.T, data []byte) (string, error) {
	t.Helper()
	var buf strings.Builder
	_, err := huffman.Decompress(&buf, bytes.NewReader(data), huffman.WithParanoid(true))
	return buf.String(), err
}

func TestCompress_WireFormat(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		expect []byte
	}

	testData := [...]testRow{
		// Only the padding-count byte.
		{name: "empty", input: "", expect: []byte{0x00}},
		// 'a' raw, then three times code "1": 01100001 111·00000, 5 padding bits.
		{name: "aaaa", input: "aaaa", expect: []byte{0x61, 0xe0, 0x05}},
		// then NYT "0" + 'b' raw: 01100001 11100110 0010·0000, 4 padding bits.
		{name: "aaaab", input: "aaaab", expect: []byte{0x61, 0xe6, 0x20, 0x04}},
		// A multi-byte first symbol is sent as all of its UTF-8 bytes.
		{name: "two-byte", input: "é", expect: []byte{0xc3, 0xa9, 0x00}},
		{name: "four-byte", input: "😀", expect: []byte{0xf0, 0x9f, 0x98, 0x80, 0x00}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			data := compress(t, row.input)
			require.Equal(t, row.expect, data)

			text, err := decompress(t, data)
			require.NoError(t, err)
			require.Equal(t, row.input, text)
		})
	}
}

func TestCompress_RoundTrip(t *testing.T) {
	inputs := []string{
		"a",
		"ab",
		"abracadabra",
		"caebdccbd",
		"the quick brown fox jumps over the lazy dog\n",
		"Ελληνικά, русский, 日本語, עברית, and 🎉 emoji 🎉🎉",
		strings.Repeat("to be or not to be, ", 50),
		"\x00\x01\x7f",
	}
	for _, input := range inputs {
		data := compress(t, input)
		text, err := decompress(t, data)
		require.NoError(t, err)
		require.Equal(t, input, text)
	}
}

func TestCompress_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefghij KLMNOP\n\tñßøæ€ΩЯあ中😀🚀")
	for n := 0; n < 40; n++ {
		length := rng.Intn(600)
		var sb strings.Builder
		for i := 0; i < length; i++ {
			// Square the uniform draw to skew towards the front.
			f := rng.Float64()
			sb.WriteRune(alphabet[int(f*f*float64(len(alphabet)))])
		}
		input := sb.String()

		data := compress(t, input)
		text, err := decompress(t, data)
		require.NoError(t, err)
		require.Equal(t, input, text)
	}
}

func TestCompress_SkewedBeatsUniform(t *testing.T) {
	const length = 1000
	alphabet := "abcdefghij"

	var uniform, skewed strings.Builder
	for i := 0; i < length; i++ {
		uniform.WriteByte(alphabet[i%len(alphabet)])
	}
	for i := 0; i < length-len(alphabet)+1; i++ {
		skewed.WriteByte('a')
	}
	skewed.WriteString(alphabet[1:])
	require.Equal(t, uniform.Len(), skewed.Len())

	u := compress(t, uniform.String())
	s := compress(t, skewed.String())
	require.Less(t, len(s), len(u))
}

func TestCompress_MalformedText(t *testing.T) {
	var buf bytes.Buffer
	_, err := huffman.Compress(&buf, strings.NewReader("ok\xffno"))
	require.Error(t, err)
	require.True(t, errors.Is(err, huffman.ErrDecode))

	var de *huffman.DecodeError
	require.True(t, errors.As(err, &de))
	require.Equal(t, int64(2), de.Offset)
}

func TestDecompress_Errors(t *testing.T) {
	type testRow struct {
		name   string
		input  []byte
		expect error
	}

	testData := [...]testRow{
		{name: "no-bytes", input: []byte{}, expect: huffman.ErrIncompleteStream},
		{name: "trailer-too-large", input: []byte{0x61, 0xe0, 0x09}, expect: huffman.ErrCorruptStream},
		{name: "padding-without-payload", input: []byte{0x03}, expect: huffman.ErrCorruptStream},
		// "aaaab" with the trailer claiming no padding: the four padding
		// bits walk to NYT and then run out in the middle of a raw byte.
		{name: "padding-read-as-data", input: []byte{0x61, 0xe6, 0x20, 0x00}, expect: huffman.ErrIncompleteStream},
		// "é" cut after its first byte.
		{name: "truncated-raw", input: []byte{0xc3, 0x00}, expect: huffman.ErrIncompleteStream},
		{name: "bad-raw-lead", input: []byte{0xff, 0x00}, expect: huffman.ErrDecode},
		{name: "bad-raw-continuation", input: []byte{0xc3, 0x41, 0x00}, expect: huffman.ErrDecode},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := decompress(t, row.input)
			require.Error(t, err)
			require.True(t, errors.Is(err, row.expect), "expected %v, got %v", row.expect, err)
		})
	}
}

func TestDecompress_Truncated(t *testing.T) {
	input := "abracadabra, abracadabra!"
	data := compress(t, input)

	// Dropping payload bytes must never yield the original text silently.
	for cut := 1; cut < len(data)-1; cut++ {
		truncated := append(append([]byte(nil), data[:cut]...), 0x00)
		text, err := decompress(t, truncated)
		if err == nil {
			require.NotEqual(t, input, text)
			require.True(t, strings.HasPrefix(input, text), "cut=%d produced %q", cut, text)
		}
	}
}

func TestDecoder_StopsAtEnd(t *testing.T) {
	data := compress(t, "aaaab")
	d := huffman.NewDecoder(bytes.NewReader(data))

	var got []huffman.Symbol
	for {
		symbol, err := d.ReadSymbol()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, symbol)
	}
	require.Equal(t, []huffman.Symbol{'a', 'a', 'a', 'a', 'b'}, got)

	stats := d.Stats()
	require.Equal(t, uint64(5), stats.Symbols)
	require.Equal(t, uint64(2), stats.Distinct)
	require.Equal(t, uint64(20), stats.Bits)

	// io.EOF is sticky.
	_, err := d.ReadSymbol()
	require.Equal(t, io.EOF, err)
}

func TestEncoder_TreesStayInSync(t *testing.T) {
	input := []huffman.Symbol("she sells sea shells by the sea shore")
	var buf bytes.Buffer
	e := huffman.NewEncoder(&buf)
	for _, symbol := range input {
		require.NoError(t, e.WriteSymbol(symbol))
	}
	require.NoError(t, e.Close())
	require.NoError(t, e.Close())
	require.Error(t, e.WriteSymbol('x'))

	d := huffman.NewDecoder(&buf)
	for _, expect := range input {
		symbol, err := d.ReadSymbol()
		require.NoError(t, err)
		require.Equal(t, expect, symbol)
	}

	var encDump, decDump strings.Builder
	_, _ = e.Tree().Dump(&encDump)
	_, _ = d.Tree().Dump(&decDump)
	require.Equal(t, encDump.String(), decDump.String())
	require.Equal(t, e.Stats().Distinct, d.Stats().Distinct)
	require.Equal(t, e.Stats().Bits, d.Stats().Bits)
}

func TestEncoder_InvalidSymbol(t *testing.T) {
	e := huffman.NewEncoder(io.Discard)
	require.Error(t, e.WriteSymbol(huffman.Symbol(0xd800)))
	require.Error(t, e.WriteSymbol(huffman.NYT))
}
