package der

import "fmt"

// Tag is a single DER identifier octet. Only the low-tag-number form is
// supported, so tag numbers range over 0..30.
type Tag uint8

const (
	classContextSpecific Tag = 0x80
	flagConstructed      Tag = 0x20
	numberMask           Tag = 0x1f
	classMask            Tag = 0xc0

	// MaxTagNumber is the largest tag number expressible in one octet.
	MaxTagNumber = 30

	// Sequence is the universal constructed SEQUENCE tag.
	Sequence Tag = 0x30
)

// ContextTag returns the context-specific primitive tag [n].
func ContextTag(n uint8) Tag { return classContextSpecific | Tag(n) }

// ContextConstructedTag returns the context-specific constructed tag [n].
func ContextConstructedTag(n uint8) Tag {
	return classContextSpecific | flagConstructed | Tag(n)
}

// Number returns the tag number.
func (t Tag) Number() uint8 { return uint8(t & numberMask) }

// IsConstructed reports whether the constructed bit is set.
func (t Tag) IsConstructed() bool { return t&flagConstructed != 0 }

// IsContextSpecific reports whether the tag is in the context-specific class.
func (t Tag) IsContextSpecific() bool { return t&classMask == classContextSpecific }

func (t Tag) String() string {
	switch {
	case t == Sequence:
		return "SEQUENCE"
	case t.IsContextSpecific() && t.IsConstructed():
		return fmt.Sprintf("[%d] constructed", t.Number())
	case t.IsContextSpecific():
		return fmt.Sprintf("[%d]", t.Number())
	default:
		return fmt.Sprintf("tag(0x%02x)", uint8(t))
	}
}

func validTag(t Tag) error {
	if t&numberMask == numberMask {
		return fmt.Errorf("%w: high-tag-number form 0x%02x", ErrInvalidTag, uint8(t))
	}
	if t&classMask != classContextSpecific && t != Sequence {
		return fmt.Errorf("%w: 0x%02x", ErrInvalidTag, uint8(t))
	}
	return nil
}

// LengthSize returns the number of octets used to encode a content length.
func LengthSize(n int) int {
	if n < 0x80 {
		return 1
	}
	size := 1
	for v := n; v > 0; v >>= 8 {
		size++
	}
	return size
}

// EncodedLen returns the size of a TLV element with n content bytes.
func EncodedLen(n int) int {
	return 1 + LengthSize(n) + n
}
