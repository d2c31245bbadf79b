package cryptoconditions

import (
	"fmt"
	"math/bits"
	"slices"
	"strings"
)

// ConditionType identifies one of the five condition algorithms. The numeric
// value doubles as the CHOICE tag on the wire and as the bit position in a
// subtypes bit string.
type ConditionType uint8

const (
	PreimageSha256 ConditionType = iota
	PrefixSha256
	ThresholdSha256
	RsaSha256
	Ed25519Sha256

	numTypes = 5
)

var typeNames = [numTypes]string{
	PreimageSha256:  "preimage-sha-256",
	PrefixSha256:    "prefix-sha-256",
	ThresholdSha256: "threshold-sha-256",
	RsaSha256:       "rsa-sha-256",
	Ed25519Sha256:   "ed25519-sha-256",
}

// Valid reports whether t is one of the five known types.
func (t ConditionType) Valid() bool { return t < numTypes }

// IsCompound reports whether conditions of this type have children.
func (t ConditionType) IsCompound() bool {
	return t == PrefixSha256 || t == ThresholdSha256
}

func (t ConditionType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
	return typeNames[t]
}

// ParseConditionType resolves a type name, ignoring case.
func ParseConditionType(name string) (ConditionType, error) {
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return ConditionType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// TypeSet is a set of condition types, bit i holding type i.
type TypeSet uint8

// NewTypeSet returns the set holding types.
func NewTypeSet(types ...ConditionType) TypeSet {
	var s TypeSet
	for _, t := range types {
		s = s.Add(t)
	}
	return s
}

// Add returns s with t included.
func (s TypeSet) Add(t ConditionType) TypeSet { return s | 1<<t }

// Remove returns s without t.
func (s TypeSet) Remove(t ConditionType) TypeSet { return s &^ (1 << t) }

// Has reports whether t is in s.
func (s TypeSet) Has(t ConditionType) bool { return s&(1<<t) != 0 }

// Union returns the union of both sets.
func (s TypeSet) Union(o TypeSet) TypeSet { return s | o }

// Len returns the number of types in s.
func (s TypeSet) Len() int { return bits.OnesCount8(uint8(s)) }

// Types returns the members of s in ascending code order.
func (s TypeSet) Types() []ConditionType {
	out := make([]ConditionType, 0, s.Len())
	for t := ConditionType(0); t < numTypes; t++ {
		if s.Has(t) {
			out = append(out, t)
		}
	}
	return out
}

// String joins the member names, sorted alphabetically, with commas. This is
// the form used by the subtypes URI parameter.
func (s TypeSet) String() string {
	names := make([]string, 0, s.Len())
	for _, t := range s.Types() {
		names = append(names, t.String())
	}
	slices.Sort(names)
	return strings.Join(names, ",")
}

// BitString returns the DER BIT STRING body for s. The first octet counts
// the unused trailing bits, which is 7 minus the highest code present; type
// code i is bit i counted from the most significant bit. The empty set is the
// single octet 0x00.
func (s TypeSet) BitString() []byte {
	if s == 0 {
		return []byte{0x00}
	}
	var content byte
	highest := 0
	for _, t := range s.Types() {
		content |= 0x80 >> t
		highest = int(t)
	}
	return []byte{byte(7 - highest), content}
}

// ParseBitString decodes a subtypes BIT STRING body.
func ParseBitString(b []byte) (TypeSet, error) {
	switch len(b) {
	case 1:
		if b[0] != 0 {
			return 0, fmt.Errorf("%w: single octet 0x%02x", ErrInvalidBitString, b[0])
		}
		return 0, nil
	case 2:
	default:
		return 0, fmt.Errorf("%w: %d octets", ErrInvalidBitString, len(b))
	}
	pad := b[0]
	if pad < 8-numTypes || pad > 7 {
		return 0, fmt.Errorf("%w: %d unused bits", ErrInvalidBitString, pad)
	}
	if b[1]&(1<<pad-1) != 0 {
		return 0, fmt.Errorf("%w: unused bits set", ErrInvalidBitString)
	}
	var s TypeSet
	for t := ConditionType(0); t < numTypes; t++ {
		if b[1]&(0x80>>t) != 0 {
			s = s.Add(t)
		}
	}
	return s, nil
}

// parseTypeNames parses the comma-separated URI form of a set.
func parseTypeNames(list string) (TypeSet, error) {
	var s TypeSet
	if list == "" {
		return s, nil
	}
	for _, name := range strings.Split(list, ",") {
		t, err := ParseConditionType(strings.TrimSpace(name))
		if err != nil {
			return 0, err
		}
		s = s.Add(t)
	}
	return s, nil
}
