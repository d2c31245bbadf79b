// Package legacy reads and writes the superseded draft-01 string forms of
// crypto-conditions, cc:... for conditions and cf:... for fulfillments.
// Only the preimage and prefix types are supported. New code should use the
// DER encoding and ni: URIs of the parent package; this package exists so
// historical fixtures keep parsing and validating.
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

// Type codes of the supported conditions.
const (
	TypePreimage uint16 = 0
	TypePrefix   uint16 = 1
)

// Features is the bitmask of algorithms a condition needs.
type Features uint8

const (
	FeatureSha256 Features = 1 << iota
	FeaturePreimage
	FeaturePrefix
	FeatureThreshold
	FeatureRsaPss
	FeatureEd25519
)

// Condition is a draft-01 condition.
type Condition struct {
	Type                 uint16
	Features             Features
	Fingerprint          []byte
	MaxFulfillmentLength uint64
}

// String renders cc:<type>:<features>:<fingerprint>:<max length>, with
// type and features in hex.
func (c *Condition) String() string {
	return fmt.Sprintf("cc:%x:%x:%s:%d", c.Type, uint8(c.Features),
		base64.RawURLEncoding.EncodeToString(c.Fingerprint), c.MaxFulfillmentLength)
}

// Binary returns the OER form: type, features, fingerprint, max length.
func (c *Condition) Binary() []byte {
	return build(func(b *cryptobyte.Builder) { c.marshal(b) })
}

func (c *Condition) marshal(b *cryptobyte.Builder) {
	b.AddUint16(c.Type)
	addVarOctet(b, []byte{byte(c.Features)})
	addVarOctet(b, c.Fingerprint)
	addVarUint(b, c.MaxFulfillmentLength)
}

// Equal compares every field.
func (c *Condition) Equal(o *Condition) bool {
	return o != nil && c.Type == o.Type && c.Features == o.Features &&
		c.MaxFulfillmentLength == o.MaxFulfillmentLength &&
		bytes.Equal(c.Fingerprint, o.Fingerprint)
}

func checkType(t uint64) (uint16, error) {
	if t != uint64(TypePreimage) && t != uint64(TypePrefix) {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedType, t)
	}
	return uint16(t), nil
}

// ParseCondition parses the cc: string form.
func ParseCondition(s string) (*Condition, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 5 || parts[0] != "cc" {
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
	features, err := strconv.ParseUint(parts[2], 16, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: features %q", ErrInvalidString, parts[2])
	}
	fp, err := base64.RawURLEncoding.Strict().DecodeString(parts[3])
	if err != nil {
		return nil, fmt.Errorf("%w: fingerprint: %v", ErrInvalidString, err)
	}
	if len(fp) != crypto.DigestSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidFingerprint, len(fp))
	}
	maxLen, err := strconv.ParseUint(parts[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: max fulfillment length %q", ErrInvalidString, parts[4])
	}
	return &Condition{Type: t, Features: Features(features), Fingerprint: fp, MaxFulfillmentLength: maxLen}, nil
}

// DecodeCondition parses the OER binary form.
func DecodeCondition(b []byte) (*Condition, error) {
	s := cryptobyte.String(b)
	c, err := readCondition(&s)
	if err != nil {
		return nil, err
	}
	if !s.Empty() {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, len(s))
	}
	return c, nil
}

func readCondition(s *cryptobyte.String) (*Condition, error) {
	var rawType uint16
	if !s.ReadUint16(&rawType) {
		return nil, fmt.Errorf("%w: type", ErrTruncated)
	}
	t, err := checkType(uint64(rawType))
	if err != nil {
		return nil, err
	}
	features, err := readVarOctet(s)
	if err != nil {
		return nil, err
	}
	if len(features) != 1 {
		return nil, fmt.Errorf("%w: %d-byte feature mask", ErrInvalidString, len(features))
	}
	fp, err := readVarOctet(s)
	if err != nil {
		return nil, err
	}
	if len(fp) != crypto.DigestSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidFingerprint, len(fp))
	}
	maxLen, err := readVarUint(s)
	if err != nil {
		return nil, err
	}
	return &Condition{
		Type:                 t,
		Features:             Features(features[0]),
		Fingerprint:          bytes.Clone(fp),
		MaxFulfillmentLength: maxLen,
	}, nil
}
