package der

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriteTagged(t *testing.T) {
	tests := []struct {
		name string
		fn   func(w *Writer)
		want []byte
	}{
		{"empty primitive", func(w *Writer) { w.WriteTagged(0, nil) }, []byte{0x80, 0x00}},
		{"one byte", func(w *Writer) { w.WriteTagged(1, []byte{0x2a}) }, []byte{0x81, 0x01, 0x2a}},
		{"constructed", func(w *Writer) { w.WriteTaggedConstructed(2, []byte{0x80, 0x00}) }, []byte{0xa2, 0x02, 0x80, 0x00}},
		{"uint zero", func(w *Writer) { w.WriteTaggedUint(1, 0) }, []byte{0x81, 0x01, 0x00}},
		{"uint 1024", func(w *Writer) { w.WriteTaggedUint(1, 1024) }, []byte{0x81, 0x02, 0x04, 0x00}},
		{"uint sign pad", func(w *Writer) { w.WriteTaggedUint(1, 128) }, []byte{0x81, 0x02, 0x00, 0x80}},
		{"sequence", func(w *Writer) { w.Sequence(func(w *Writer) { w.WriteTagged(0, nil) }) }, []byte{0x30, 0x02, 0x80, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.fn)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Fatalf("got %x, want %x", got, tt.want)
			}
		})
	}
}

func TestWriteLongLength(t *testing.T) {
	for _, n := range []int{127, 128, 255, 256, 70000} {
		value := make([]byte, n)
		got, err := Encode(func(w *Writer) { w.WriteTagged(0, value) })
		if err != nil {
			t.Fatalf("len %d: %v", n, err)
		}
		if len(got) != EncodedLen(n) {
			t.Fatalf("len %d: encoded %d bytes, EncodedLen says %d", n, len(got), EncodedLen(n))
		}
		switch {
		case n < 128:
			if got[1] != byte(n) {
				t.Fatalf("len %d: short form byte %x", n, got[1])
			}
		case n < 256:
			if got[1] != 0x81 || got[2] != byte(n) {
				t.Fatalf("len %d: got header %x", n, got[:3])
			}
		case n < 65536:
			if got[1] != 0x82 {
				t.Fatalf("len %d: got header %x", n, got[:4])
			}
		default:
			if got[1] != 0x83 {
				t.Fatalf("len %d: got header %x", n, got[:5])
			}
		}
	}
}

func TestWriteInvalidTagNumber(t *testing.T) {
	_, err := Encode(func(w *Writer) { w.WriteTagged(31, nil) })
	if !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("got %v, want %v", err, ErrInvalidTag)
	}
}

func TestAppendUint(t *testing.T) {
	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x80}},
		{131072, []byte{0x02, 0x00, 0x00}},
		{1<<64 - 1, []byte{0x00, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		got := AppendUint(nil, tt.v)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("AppendUint(%d) = %x, want %x", tt.v, got, tt.want)
		}
		back, err := ParseUint(got)
		if err != nil || back != tt.v {
			t.Errorf("ParseUint(%x) = %d, %v", got, back, err)
		}
	}
}

func TestParseUintErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty", nil, ErrInvalidInteger},
		{"negative", []byte{0x80}, ErrNegativeInteger},
		{"redundant zero", []byte{0x00, 0x01}, ErrNonMinimalInteger},
		{"too wide", []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0}, ErrIntegerOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseUint(tt.input); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}
