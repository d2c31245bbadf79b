package cryptoconditions

import (
	"fmt"

	"github.com/interledger/cryptoconditions/der"
)

// EncodeCondition returns the canonical encoding of c.
func EncodeCondition(c *Condition) ([]byte, error) {
	if c == nil {
		return nil, ErrNilCondition
	}
	return c.Encode(), nil
}

// EncodeFulfillment returns the canonical encoding of f.
func EncodeFulfillment(f Fulfillment) ([]byte, error) {
	if f == nil {
		return nil, ErrNilFulfillment
	}
	return f.Encode(), nil
}

// DecodeCondition parses exactly one condition from b.
func DecodeCondition(b []byte) (*Condition, error) {
	r := der.NewReader(b)
	c, err := decodeCondition(r)
	if err != nil {
		return nil, err
	}
	if !r.Empty() {
		return nil, fmt.Errorf("%w: %d bytes after condition", ErrTrailingData, r.Len())
	}
	return c, nil
}

// DecodeFulfillment parses exactly one fulfillment from b.
func DecodeFulfillment(b []byte) (Fulfillment, error) {
	if len(b) == 0 {
		return nil, ErrEmptyFulfillment
	}
	r := der.NewReader(b)
	f, err := decodeFulfillment(r)
	if err != nil {
		return nil, err
	}
	if !r.Empty() {
		return nil, fmt.Errorf("%w: %d bytes after fulfillment", ErrTrailingData, r.Len())
	}
	return f, nil
}

// readChoice consumes the CHOICE element that wraps every condition and
// fulfillment, returning the type and a reader over its content.
func readChoice(r *der.Reader) (ConditionType, *der.Reader, error) {
	tag, err := r.PeekTag()
	if err != nil {
		return 0, nil, err
	}
	if !tag.IsContextSpecific() || !tag.IsConstructed() {
		return 0, nil, fmt.Errorf("%w: want constructed context tag, got %s", der.ErrUnexpectedTag, tag)
	}
	t := ConditionType(tag.Number())
	if !t.Valid() {
		return 0, nil, fmt.Errorf("%w: code %d", ErrUnknownType, tag.Number())
	}
	content, err := r.ReadTaggedConstructed(tag.Number())
	if err != nil {
		return 0, nil, err
	}
	return t, content, nil
}

func decodeCondition(r *der.Reader) (*Condition, error) {
	t, cr, err := readChoice(r)
	if err != nil {
		return nil, err
	}
	fingerprint, err := cr.ReadTagged(0)
	if err != nil {
		return nil, err
	}
	cost, err := cr.ReadTaggedUint(1)
	if err != nil {
		return nil, err
	}
	var subtypes TypeSet
	if t.IsCompound() {
		bits, err := cr.ReadTagged(2)
		if err != nil {
			return nil, err
		}
		if subtypes, err = ParseBitString(bits); err != nil {
			return nil, err
		}
	}
	if !cr.Empty() {
		return nil, fmt.Errorf("%w: %d bytes inside %s condition", ErrTrailingData, cr.Len(), t)
	}
	return NewCondition(t, fingerprint, cost, subtypes)
}

func decodeFulfillment(r *der.Reader) (Fulfillment, error) {
	t, fr, err := readChoice(r)
	if err != nil {
		return nil, err
	}
	var f Fulfillment
	switch t {
	case PreimageSha256:
		f, err = decodePreimage(fr)
	case PrefixSha256:
		f, err = decodePrefix(fr)
	case ThresholdSha256:
		f, err = decodeThreshold(fr)
	case RsaSha256:
		f, err = decodeRsa(fr)
	case Ed25519Sha256:
		f, err = decodeEd25519(fr)
	default:
		err = fmt.Errorf("%w: code %d", ErrUnknownType, uint8(t))
	}
	if err != nil {
		return nil, err
	}
	if !fr.Empty() {
		return nil, fmt.Errorf("%w: %d bytes inside %s fulfillment", ErrTrailingData, fr.Len(), t)
	}
	return f, nil
}
