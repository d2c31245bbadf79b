// Package cryptoconditions implements crypto-conditions: conditions that
// commit to the criteria a message must meet, fulfillments that prove them,
// and the canonical binary encoding both travel in.
package cryptoconditions

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rsa"
	"fmt"
	"slices"

	"github.com/interledger/cryptoconditions/crypto"
	"github.com/interledger/cryptoconditions/der"
)

// FingerprintSize is the size of every condition fingerprint.
const FingerprintSize = crypto.DigestSize

// Condition is an immutable commitment identified by its type, cost and
// fingerprint. Conditions built from live parameters also remember their
// fingerprint contents; conditions decoded from bytes or a URI do not.
// All derived values are computed at construction.
type Condition struct {
	typ         ConditionType
	cost        uint64
	fingerprint [FingerprintSize]byte
	subtypes    TypeSet
	contents    []byte
	derived     bool
	encoded     []byte
}

// NewCondition builds a condition from its wire-level fields. The result
// carries no fingerprint contents.
func NewCondition(t ConditionType, fingerprint []byte, cost uint64, subtypes TypeSet) (*Condition, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownType, uint8(t))
	}
	if len(fingerprint) != FingerprintSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidFingerprint, len(fingerprint))
	}
	if !t.IsCompound() && subtypes != 0 {
		return nil, fmt.Errorf("%w: %s has no subtypes", ErrInvalidSubtypes, t)
	}
	if subtypes.Has(t) {
		return nil, fmt.Errorf("%w: %s lists itself", ErrInvalidSubtypes, t)
	}
	c := &Condition{typ: t, cost: cost, subtypes: subtypes}
	copy(c.fingerprint[:], fingerprint)
	c.encoded = c.encode()
	return c, nil
}

func newDerivedCondition(t ConditionType, contents []byte, cost uint64, subtypes TypeSet) *Condition {
	c := &Condition{
		typ:         t,
		cost:        cost,
		fingerprint: crypto.Sum256(contents),
		subtypes:    subtypes,
		contents:    contents,
		derived:     true,
	}
	c.encoded = c.encode()
	return c
}

// NewPreimageCondition commits to preimage.
func NewPreimageCondition(preimage []byte) *Condition {
	return newDerivedCondition(PreimageSha256, bytes.Clone(preimage), uint64(len(preimage)), 0)
}

// NewPrefixCondition commits to sub evaluated over prefix followed by a
// message of at most maxMessageLength bytes.
func NewPrefixCondition(prefix []byte, maxMessageLength uint64, sub *Condition) (*Condition, error) {
	if sub == nil {
		return nil, ErrNilCondition
	}
	cost, err := prefixCost(len(prefix), maxMessageLength, sub.cost)
	if err != nil {
		return nil, err
	}
	contents := mustEncode(func(w *der.Writer) {
		w.Sequence(func(w *der.Writer) {
			w.WriteTagged(0, prefix)
			w.WriteTaggedUint(1, maxMessageLength)
			w.WriteTaggedConstructed(2, sub.encoded)
		})
	})
	return newDerivedCondition(PrefixSha256, contents, cost, childSubtypes(PrefixSha256, sub)), nil
}

// NewThresholdCondition commits to any threshold of subs. The order of subs
// does not affect the result.
func NewThresholdCondition(threshold int, subs []*Condition) (*Condition, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	if threshold > len(subs) {
		return nil, fmt.Errorf("%w: %d of %d", ErrThresholdTooLarge, threshold, len(subs))
	}
	costs := make([]uint64, len(subs))
	encodings := make([][]byte, len(subs))
	for i, s := range subs {
		if s == nil {
			return nil, fmt.Errorf("%w: subcondition %d", ErrNilCondition, i)
		}
		costs[i] = s.cost
		encodings[i] = s.encoded
	}
	cost, err := thresholdCost(threshold, costs)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(encodings, bytes.Compare)
	contents := mustEncode(func(w *der.Writer) {
		w.Sequence(func(w *der.Writer) {
			w.WriteTaggedUint(0, uint64(threshold))
			w.Constructed(1, func(w *der.Writer) {
				for _, e := range encodings {
					w.WriteRaw(e)
				}
			})
		})
	})
	return newDerivedCondition(ThresholdSha256, contents, cost, childSubtypes(ThresholdSha256, subs...)), nil
}

// NewRsaCondition commits to an RSA-PSS public key. The exponent must be
// 65537 and the modulus between 1018 and 4096 bits.
func NewRsaCondition(pub *rsa.PublicKey) (*Condition, error) {
	if err := crypto.CheckRSAPublicKey(pub); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return rsaCondition(pub.N.Bytes()), nil
}

func rsaCondition(modulus []byte) *Condition {
	contents := mustEncode(func(w *der.Writer) {
		w.Sequence(func(w *der.Writer) { w.WriteTagged(0, modulus) })
	})
	return newDerivedCondition(RsaSha256, contents, rsaCost(len(modulus)), 0)
}

// NewEd25519Condition commits to an Ed25519 public key.
func NewEd25519Condition(pub ed25519.PublicKey) (*Condition, error) {
	if err := crypto.CheckEd25519PublicKey(pub); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	contents := mustEncode(func(w *der.Writer) {
		w.Sequence(func(w *der.Writer) { w.WriteTagged(0, pub) })
	})
	return newDerivedCondition(Ed25519Sha256, contents, Ed25519Cost, 0), nil
}

// childSubtypes collects the types and subtypes of children, minus own.
func childSubtypes(own ConditionType, children ...*Condition) TypeSet {
	var s TypeSet
	for _, c := range children {
		s = s.Add(c.typ).Union(c.subtypes)
	}
	return s.Remove(own)
}

// Type returns the condition type.
func (c *Condition) Type() ConditionType { return c.typ }

// Cost returns the verification cost.
func (c *Condition) Cost() uint64 { return c.cost }

// Fingerprint returns the SHA-256 digest of the fingerprint contents.
func (c *Condition) Fingerprint() [FingerprintSize]byte { return c.fingerprint }

// Subtypes returns the types reachable below a compound condition. It is
// empty for simple conditions.
func (c *Condition) Subtypes() TypeSet { return c.subtypes }

// FingerprintContents returns the bytes the fingerprint was computed from.
// The second result is false for conditions decoded from bytes or a URI.
func (c *Condition) FingerprintContents() ([]byte, bool) {
	if !c.derived {
		return nil, false
	}
	return append([]byte{}, c.contents...), true
}

// Encode returns the canonical binary encoding.
func (c *Condition) Encode() []byte { return bytes.Clone(c.encoded) }

// EncodedLen returns the size of the binary encoding.
func (c *Condition) EncodedLen() int { return len(c.encoded) }

// Equals compares type, cost and fingerprint. How either side was built does
// not matter.
func (c *Condition) Equals(o *Condition) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.typ == o.typ && c.cost == o.cost && c.fingerprint == o.fingerprint
}

// compare orders conditions by their encoding.
func (c *Condition) compare(o *Condition) int {
	return bytes.Compare(c.encoded, o.encoded)
}

func (c *Condition) String() string { return c.URI() }

func (c *Condition) encode() []byte {
	return mustEncode(func(w *der.Writer) {
		w.Constructed(uint8(c.typ), func(w *der.Writer) {
			w.WriteTagged(0, c.fingerprint[:])
			w.WriteTaggedUint(1, c.cost)
			if c.typ.IsCompound() {
				w.WriteTagged(2, c.subtypes.BitString())
			}
		})
	})
}

// mustEncode runs an encoder whose tags are all fixed small numbers. The
// writer can then only fail on content beyond 4 GiB.
func mustEncode(fn func(w *der.Writer)) []byte {
	b, err := der.Encode(fn)
	if err != nil {
		panic(fmt.Sprintf("cryptoconditions: encode: %v", err))
	}
	return b
}

func sortConditions(cs []*Condition) {
	slices.SortFunc(cs, (*Condition).compare)
}
