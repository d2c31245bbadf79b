package der

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadTagged(t *testing.T) {
	r := NewReader([]byte{0x80, 0x02, 0xaa, 0xbb, 0x81, 0x02, 0x04, 0x00})
	v, err := r.ReadTagged(0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v, []byte{0xaa, 0xbb}) {
		t.Fatalf("got %x", v)
	}
	n, err := r.ReadTaggedUint(1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1024 {
		t.Fatalf("got %d, want 1024", n)
	}
	if !r.Empty() {
		t.Fatalf("reader not empty: %d left", r.Len())
	}
}

func TestReadNested(t *testing.T) {
	input := []byte{0xa2, 0x04, 0x80, 0x02, 0x01, 0x02, 0x81, 0x00}
	r := NewReader(input)
	child, err := r.ReadTaggedConstructed(2)
	if err != nil {
		t.Fatal(err)
	}
	if child.Len() != 4 {
		t.Fatalf("child budget %d, want 4", child.Len())
	}
	if _, err := child.ReadTagged(0); err != nil {
		t.Fatal(err)
	}
	if !child.Empty() {
		t.Fatal("child should be exhausted")
	}
	if _, err := r.ReadTagged(1); err != nil {
		t.Fatal(err)
	}
}

func TestReadElementRaw(t *testing.T) {
	input := []byte{0xa0, 0x02, 0x80, 0x00, 0xff}
	r := NewReader(input)
	tag, content, raw, err := r.ReadElement()
	if err != nil {
		t.Fatal(err)
	}
	if tag != ContextConstructedTag(0) {
		t.Fatalf("tag %s", tag)
	}
	if !bytes.Equal(content, input[2:4]) || !bytes.Equal(raw, input[:4]) {
		t.Fatalf("content %x raw %x", content, raw)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  error
	}{
		{"empty", nil, ErrTruncated},
		{"missing length", []byte{0x80}, ErrTruncated},
		{"indefinite", []byte{0x80, 0x80}, ErrIndefiniteLength},
		{"five length bytes", []byte{0x80, 0x85, 1, 0, 0, 0, 0}, ErrLengthTooLong},
		{"truncated length bytes", []byte{0x80, 0x82, 0x01}, ErrTruncated},
		{"non-minimal short", []byte{0x80, 0x81, 0x05, 1, 2, 3, 4, 5}, ErrNonMinimalLength},
		{"non-minimal long", []byte{0x80, 0x82, 0x00, 0x80}, ErrNonMinimalLength},
		{"exceeds budget", []byte{0x80, 0x05, 0x01}, ErrLengthExceedsBudget},
		{"huge length", []byte{0x80, 0x84, 0xff, 0xff, 0xff, 0xff}, ErrLengthExceedsBudget},
		{"high tag number", []byte{0x9f, 0x00}, ErrInvalidTag},
		{"universal class", []byte{0x04, 0x00}, ErrInvalidTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := NewReader(tt.input).ReadElement()
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestChildCannotExceedParent(t *testing.T) {
	// Parent declares 3 bytes, child inside declares 4.
	input := []byte{0xa1, 0x03, 0x80, 0x04, 0x00, 0x00, 0x00}
	r := NewReader(input)
	child, err := r.ReadTaggedConstructed(1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := child.ReadTagged(0); !errors.Is(err, ErrLengthExceedsBudget) {
		t.Fatalf("got %v, want %v", err, ErrLengthExceedsBudget)
	}
}

func TestUnexpectedTag(t *testing.T) {
	r := NewReader([]byte{0x81, 0x00})
	if _, err := r.ReadTagged(0); !errors.Is(err, ErrUnexpectedTag) {
		t.Fatalf("got %v, want %v", err, ErrUnexpectedTag)
	}
	if r.Offset() != 0 {
		t.Fatal("failed read must not consume input")
	}
}

func TestRoundTripLongContent(t *testing.T) {
	value := bytes.Repeat([]byte{0x5a}, 300)
	enc, err := Encode(func(w *Writer) {
		w.Constructed(3, func(w *Writer) { w.WriteTagged(0, value) })
	})
	if err != nil {
		t.Fatal(err)
	}
	r := NewReader(enc)
	child, err := r.ReadTaggedConstructed(3)
	if err != nil {
		t.Fatal(err)
	}
	got, err := child.ReadTagged(0)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, value) {
		t.Fatal("content mismatch")
	}
}
