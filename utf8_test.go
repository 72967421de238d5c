package huffman

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestSequenceLength(t *testing.T) {
	type testRow struct {
		lead byte
		size int
		ok   bool
	}

	testData := [...]testRow{
		{lead: 0x00, size: 1, ok: true},
		{lead: 'a', size: 1, ok: true},
		{lead: 0x7f, size: 1, ok: true},
		{lead: 0x80, size: 0, ok: false},
		{lead: 0xbf, size: 0, ok: false},
		{lead: 0xc3, size: 2, ok: true},
		{lead: 0xe4, size: 3, ok: true},
		{lead: 0xf0, size: 4, ok: true},
		{lead: 0xf8, size: 0, ok: false},
		{lead: 0xff, size: 0, ok: false},
	}
	for _, row := range testData {
		size, ok := SequenceLength(row.lead)
		if size != row.size || ok != row.ok {
			t.Errorf("SequenceLength(%#02x): expected (%d, %t), got (%d, %t)", row.lead, row.size, row.ok, size, ok)
		}
	}
}

func TestSymbolReader(t *testing.T) {
	input := "aé€😀"
	sr := NewSymbolReader(strings.NewReader(input), 0)
	for _, expect := range input {
		actual, err := sr.ReadSymbol()
		if err != nil {
			t.Fatalf("ReadSymbol: %v", err)
		}
		if actual != Symbol(expect) {
			t.Errorf("expected %v, got %v", Symbol(expect), actual)
		}
	}
	if _, err := sr.ReadSymbol(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	if sr.Offset() != int64(len(input)) {
		t.Errorf("expected offset %d, got %d", len(input), sr.Offset())
	}
}

func TestSymbolReader_Malformed(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		offset int64
	}

	testData := [...]testRow{
		{name: "continuation-as-lead", input: "a\x80", offset: 1},
		{name: "invalid-lead", input: "ab\xff", offset: 2},
		{name: "bad-continuation", input: "\xc3A", offset: 0},
		{name: "truncated", input: "xy\xe2\x82", offset: 2},
		{name: "overlong", input: "\xc0\x80", offset: 0},
		{name: "surrogate", input: "\xed\xa0\x80", offset: 0},
		{name: "too-large", input: "\xf4\x90\x80\x80", offset: 0},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			sr := NewSymbolReader(strings.NewReader(row.input), 0)
			var err error
			for err == nil {
				_, err = sr.ReadSymbol()
			}
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DecodeError, got %v", err)
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("errors.Is(err, ErrDecode) is false for %v", err)
			}
			if de.Offset != row.offset {
				t.Errorf("expected offset %d, got %d (%v)", row.offset, de.Offset, err)
			}
		})
	}
}

func TestAppendSymbol(t *testing.T) {
	for _, ch := range "aé€\U0001f600" {
		encoded := AppendSymbol(nil, Symbol(ch))
		if string(encoded) != string(ch) {
			t.Errorf("AppendSymbol(%v): got % x", Symbol(ch), encoded)
		}
	}
}
