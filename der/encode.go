package der

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// Writer builds a sequence of TLV elements. Nested constructed elements are
// written through callbacks so their lengths are always exact and minimal.
// The first error sticks and is reported by Bytes.
type Writer struct {
	b *cryptobyte.Builder
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{b: cryptobyte.NewBuilder(nil)}
}

// Encode runs fn against a fresh Writer and returns the produced bytes.
func Encode(fn func(w *Writer)) ([]byte, error) {
	w := NewWriter()
	fn(w)
	return w.Bytes()
}

func (w *Writer) element(t Tag, fn func(child *Writer)) {
	if err := validTag(t); err != nil {
		w.b.SetError(err)
		return
	}
	w.b.AddASN1(asn1.Tag(t), func(child *cryptobyte.Builder) {
		fn(&Writer{b: child})
	})
}

func checkNumber(n uint8) error {
	if n > MaxTagNumber {
		return fmt.Errorf("%w: tag number %d", ErrInvalidTag, n)
	}
	return nil
}

// WriteTagged writes value as the context-specific primitive element [n].
func (w *Writer) WriteTagged(n uint8, value []byte) {
	if err := checkNumber(n); err != nil {
		w.b.SetError(err)
		return
	}
	w.element(ContextTag(n), func(c *Writer) { c.b.AddBytes(value) })
}

// WriteTaggedConstructed writes value, itself a run of encoded elements, as
// the context-specific constructed element [n].
func (w *Writer) WriteTaggedConstructed(n uint8, value []byte) {
	w.Constructed(n, func(c *Writer) { c.b.AddBytes(value) })
}

// WriteTaggedUint writes v as a DER INTEGER body under tag [n].
func (w *Writer) WriteTaggedUint(n uint8, v uint64) {
	w.WriteTagged(n, AppendUint(nil, v))
}

// Constructed writes the constructed element [n] whose content is produced
// by fn.
func (w *Writer) Constructed(n uint8, fn func(w *Writer)) {
	if err := checkNumber(n); err != nil {
		w.b.SetError(err)
		return
	}
	w.element(ContextConstructedTag(n), fn)
}

// Sequence writes a universal SEQUENCE whose content is produced by fn.
func (w *Writer) Sequence(fn func(w *Writer)) {
	w.element(Sequence, fn)
}

// WriteRaw appends already-encoded bytes.
func (w *Writer) WriteRaw(b []byte) {
	w.b.AddBytes(b)
}

// Bytes returns the encoded output or the first error hit while writing.
func (w *Writer) Bytes() ([]byte, error) {
	return w.b.Bytes()
}
