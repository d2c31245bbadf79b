package der

import "fmt"

// maxLengthBytes bounds long-form lengths to four octets.
const maxLengthBytes = 4

// Reader consumes TLV elements from a byte slice. Every nested element is
// returned as a child Reader whose budget is exactly the declared content
// length, so a child can never read past its parent.
type Reader struct {
	data []byte
	pos  int
}

// NewReader returns a Reader over b.
func NewReader(b []byte) *Reader {
	return &Reader{data: b}
}

// Len returns the number of unread bytes left in this reader's budget.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// Empty reports whether the budget is exhausted.
func (r *Reader) Empty() bool { return r.pos >= len(r.data) }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.pos }

// PeekTag returns the next tag without consuming it.
func (r *Reader) PeekTag() (Tag, error) {
	if r.Empty() {
		return 0, fmt.Errorf("%w: expected tag", ErrTruncated)
	}
	t := Tag(r.data[r.pos])
	if err := validTag(t); err != nil {
		return 0, err
	}
	return t, nil
}

// readLength decodes a length starting at off and returns the length and the
// number of octets it occupied.
func (r *Reader) readLength(off int) (int, int, error) {
	if off >= len(r.data) {
		return 0, 0, fmt.Errorf("%w: expected length", ErrTruncated)
	}
	first := r.data[off]
	if first < 0x80 {
		return int(first), 1, nil
	}
	n := int(first & 0x7f)
	switch {
	case n == 0:
		return 0, 0, ErrIndefiniteLength
	case n > maxLengthBytes:
		return 0, 0, fmt.Errorf("%w: %d length bytes", ErrLengthTooLong, n)
	case off+1+n > len(r.data):
		return 0, 0, fmt.Errorf("%w: length bytes", ErrTruncated)
	}
	var length uint64
	for _, c := range r.data[off+1 : off+1+n] {
		length = length<<8 | uint64(c)
	}
	if length < 0x80 || r.data[off+1] == 0 {
		return 0, 0, ErrNonMinimalLength
	}
	if length > uint64(len(r.data)) {
		return 0, 0, fmt.Errorf("%w: declared %d, %d left", ErrLengthExceedsBudget, length, len(r.data)-off-1-n)
	}
	return int(length), 1 + n, nil
}

// ReadElement consumes the next element and returns its tag, its content and
// the full encoding including tag and length.
func (r *Reader) ReadElement() (Tag, []byte, []byte, error) {
	t, err := r.PeekTag()
	if err != nil {
		return 0, nil, nil, err
	}
	length, lenSize, err := r.readLength(r.pos + 1)
	if err != nil {
		return 0, nil, nil, err
	}
	start := r.pos + 1 + lenSize
	if length > len(r.data)-start {
		return 0, nil, nil, fmt.Errorf("%w: %s declares %d, %d left", ErrLengthExceedsBudget, t, length, len(r.data)-start)
	}
	end := start + length
	raw := r.data[r.pos:end]
	content := r.data[start:end]
	r.pos = end
	return t, content, raw, nil
}

func (r *Reader) expect(want Tag) ([]byte, error) {
	t, err := r.PeekTag()
	if err != nil {
		return nil, err
	}
	if t != want {
		return nil, fmt.Errorf("%w: want %s, got %s", ErrUnexpectedTag, want, t)
	}
	_, content, _, err := r.ReadElement()
	return content, err
}

// ReadTagged consumes the context-specific primitive element [n].
func (r *Reader) ReadTagged(n uint8) ([]byte, error) {
	return r.expect(ContextTag(n))
}

// ReadTaggedUint consumes [n] and decodes it as an unsigned INTEGER.
func (r *Reader) ReadTaggedUint(n uint8) (uint64, error) {
	b, err := r.ReadTagged(n)
	if err != nil {
		return 0, err
	}
	v, err := ParseUint(b)
	if err != nil {
		return 0, fmt.Errorf("[%d]: %w", n, err)
	}
	return v, nil
}

// ReadTaggedConstructed consumes the constructed element [n] and returns a
// Reader bounded to its content.
func (r *Reader) ReadTaggedConstructed(n uint8) (*Reader, error) {
	content, err := r.expect(ContextConstructedTag(n))
	if err != nil {
		return nil, err
	}
	return NewReader(content), nil
}

// ReadSequence consumes a universal SEQUENCE and returns a Reader bounded to
// its content.
func (r *Reader) ReadSequence() (*Reader, error) {
	content, err := r.expect(Sequence)
	if err != nil {
		return nil, err
	}
	return NewReader(content), nil
}
