package cryptoconditions

import (
	"bytes"
	"fmt"

	"github.com/interledger/cryptoconditions/der"
)

// PrefixFulfillment proves its subfulfillment over prefix ‖ message, for
// messages up to a maximum length.
type PrefixFulfillment struct {
	prefix           []byte
	maxMessageLength uint64
	sub              Fulfillment
	condition        *Condition
	encoded          []byte
}

// NewPrefixFulfillment wraps sub.
func NewPrefixFulfillment(prefix []byte, maxMessageLength uint64, sub Fulfillment) (*PrefixFulfillment, error) {
	if sub == nil {
		return nil, ErrNilFulfillment
	}
	p := bytes.Clone(prefix)
	cond, err := NewPrefixCondition(p, maxMessageLength, sub.Condition())
	if err != nil {
		return nil, err
	}
	return &PrefixFulfillment{
		prefix:           p,
		maxMessageLength: maxMessageLength,
		sub:              sub,
		condition:        cond,
		encoded: mustEncode(func(w *der.Writer) {
			w.Constructed(uint8(PrefixSha256), func(w *der.Writer) {
				w.WriteTagged(0, p)
				w.WriteTaggedUint(1, maxMessageLength)
				w.WriteTaggedConstructed(2, sub.Encode())
			})
		}),
	}, nil
}

func decodePrefix(r *der.Reader) (*PrefixFulfillment, error) {
	prefix, err := r.ReadTagged(0)
	if err != nil {
		return nil, err
	}
	maxLen, err := r.ReadTaggedUint(1)
	if err != nil {
		return nil, err
	}
	subr, err := r.ReadTaggedConstructed(2)
	if err != nil {
		return nil, err
	}
	sub, err := decodeFulfillment(subr)
	if err != nil {
		return nil, fmt.Errorf("prefix subfulfillment: %w", err)
	}
	if !subr.Empty() {
		return nil, fmt.Errorf("%w: %d bytes after prefix subfulfillment", ErrTrailingData, subr.Len())
	}
	return NewPrefixFulfillment(prefix, maxLen, sub)
}

// Prefix returns a copy of the prefix.
func (f *PrefixFulfillment) Prefix() []byte { return bytes.Clone(f.prefix) }

// MaxMessageLength returns the longest message the fulfillment accepts.
func (f *PrefixFulfillment) MaxMessageLength() uint64 { return f.maxMessageLength }

// Subfulfillment returns the wrapped fulfillment.
func (f *PrefixFulfillment) Subfulfillment() Fulfillment { return f.sub }

func (f *PrefixFulfillment) Type() ConditionType   { return PrefixSha256 }
func (f *PrefixFulfillment) Condition() *Condition { return f.condition }
func (f *PrefixFulfillment) Encode() []byte        { return bytes.Clone(f.encoded) }
func (f *PrefixFulfillment) EncodedLen() int       { return len(f.encoded) }

// Verify checks the subfulfillment over prefix ‖ message. Messages longer
// than the maximum fail without an error.
func (f *PrefixFulfillment) Verify(c *Condition, message []byte) (bool, error) {
	if ok, err := checkCondition(f, c); !ok {
		return false, err
	}
	if uint64(len(message)) > f.maxMessageLength {
		return false, nil
	}
	full := make([]byte, 0, len(f.prefix)+len(message))
	full = append(append(full, f.prefix...), message...)
	return f.sub.Verify(f.sub.Condition(), full)
}
