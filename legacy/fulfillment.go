package legacy

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/cryptobyte"

	"github.com/interledger/cryptoconditions/crypto"
)

// maxPrefixLength is the longest prefix whose length prefix is accounted
// for in the max fulfillment length.
const maxPrefixLength = 1<<24 - 1

// Fulfillment is a draft-01 fulfillment.
type Fulfillment interface {
	// Type returns the type code.
	Type() uint16
	// Payload returns the type-specific payload carried in the cf: string.
	Payload() []byte
	// Condition derives the condition the fulfillment satisfies.
	Condition() *Condition
	// Validate reports whether the fulfillment holds for message.
	Validate(message []byte) bool
}

// FulfillmentString renders cf:<type>:<payload>.
func FulfillmentString(f Fulfillment) string {
	return fmt.Sprintf("cf:%x:%s", f.Type(), base64.RawURLEncoding.EncodeToString(f.Payload()))
}

// FulfillmentBinary returns the OER form: type then payload.
func FulfillmentBinary(f Fulfillment) []byte {
	return build(func(b *cryptobyte.Builder) { marshalFulfillment(b, f) })
}

func marshalFulfillment(b *cryptobyte.Builder, f Fulfillment) {
	b.AddUint16(f.Type())
	addVarOctet(b, f.Payload())
}

// Preimage reveals a SHA-256 preimage.
type Preimage struct {
	preimage []byte
}

// NewPreimage wraps preimage.
func NewPreimage(preimage []byte) *Preimage {
	return &Preimage{preimage: bytes.Clone(preimage)}
}

func (p *Preimage) Type() uint16    { return TypePreimage }
func (p *Preimage) Payload() []byte { return bytes.Clone(p.preimage) }

func (p *Preimage) Condition() *Condition {
	fp := crypto.Sum256(p.preimage)
	return &Condition{
		Type:                 TypePreimage,
		Features:             FeatureSha256 | FeaturePreimage,
		Fingerprint:          fp[:],
		MaxFulfillmentLength: uint64(len(p.preimage)),
	}
}

// Validate is true for every message.
func (p *Preimage) Validate([]byte) bool { return true }

// Prefix validates its subfulfillment over prefix ‖ message. Draft-01 has
// no maximum message length.
type Prefix struct {
	prefix []byte
	sub    Fulfillment
}

// NewPrefix wraps sub.
func NewPrefix(prefix []byte, sub Fulfillment) (*Prefix, error) {
	if sub == nil {
		return nil, fmt.Errorf("%w: nil subfulfillment", ErrInvalidString)
	}
	if len(prefix) > maxPrefixLength {
		return nil, ErrPrefixTooLong
	}
	return &Prefix{prefix: bytes.Clone(prefix), sub: sub}, nil
}

func (p *Prefix) Type() uint16 { return TypePrefix }

func (p *Prefix) Payload() []byte {
	return build(func(b *cryptobyte.Builder) {
		addVarOctet(b, p.prefix)
		marshalFulfillment(b, p.sub)
	})
}

func (p *Prefix) Condition() *Condition {
	sub := p.sub.Condition()
	prefix := build(func(b *cryptobyte.Builder) { addVarOctet(b, p.prefix) })
	fp := crypto.Sum256Concat(prefix, sub.Binary())
	return &Condition{
		Type:                 TypePrefix,
		Features:             FeatureSha256 | FeaturePrefix | sub.Features,
		Fingerprint:          fp[:],
		MaxFulfillmentLength: uint64(len(p.prefix)+lengthPrefixSize(len(p.prefix))) + sub.MaxFulfillmentLength,
	}
}

func (p *Prefix) Validate(message []byte) bool {
	full := make([]byte, 0, len(p.prefix)+len(message))
	full = append(append(full, p.prefix...), message...)
	return p.sub.Validate(full)
}

// ParseFulfillment parses the cf: string form.
func ParseFulfillment(s string) (Fulfillment, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] != "cf" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidString, s)
	}
	rawType, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: type %q", ErrInvalidString, parts[1])
	}
	t, err := checkType(rawType)
	if err != nil {
		return nil, err
	}
	payload, err := base64.RawURLEncoding.Strict().DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrInvalidString, err)
	}
	return fromPayload(t, payload)
}

// DecodeFulfillment parses the OER binary form.
func DecodeFulfillment(b []byte) (Fulfillment, error) {
	s := cryptobyte.String(b)
	f, err := readFulfillment(&s)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(s))
	}
	return f, nil
}

func readFulfillment(s *cryptobyte.String) (Fulfillment, error) {
	var rawType uint16
	if !s.ReadUint16(&rawType) {
		return nil, fmt.Errorf("%w: type", ErrTruncated)
	}
	t, err := checkType(uint64(rawType))
	if err != nil {
		return nil, err
	}
	payload, err := readVarOctet(s)
	if err != nil {
		return nil, err
	}
	return fromPayload(t, payload)
}

func fromPayload(t uint16, payload []byte) (Fulfillment, error) {
	if t == TypePreimage {
		return NewPreimage(payload), nil
	}
	s := cryptobyte.String(payload)
	prefix, err := readVarOctet(&s)
	if err != nil {
		return nil, err
	}
	sub, err := readFulfillment(&s)
	if err != nil {
		return nil, fmt.Errorf("prefix subfulfillment: %w", err)
	}
	if !s.Empty() {
		return nil, fmt.Errorf("%w: %d bytes after subfulfillment", ErrTrailingData, len(s))
	}
	return NewPrefix(prefix, sub)
}

// Validate parses both strings, checks that the fulfillment derives the
// condition and then validates it for message. A derived condition that
// differs from the supplied one is reported as ErrConditionMismatch.
func Validate(fulfillment, condition string, message []byte) (bool, error) {
	f, err := ParseFulfillment(fulfillment)
	if err != nil {
		return false, err
	}
	c, err := ParseCondition(condition)
	if err != nil {
		return false, err
	}
	if !f.Condition().Equal(c) {
		return false, fmt.Errorf("%w: derived %s", ErrConditionMismatch, f.Condition())
	}
	return f.Validate(message), nil
}
