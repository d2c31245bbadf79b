package legacy

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
)

// The draft-01 binary forms use a small subset of OER: big-endian uint16
// type codes, length-prefixed octet strings and length-prefixed unsigned
// integers. A length below 128 is one octet; longer lengths are 0x80|n
// followed by n big-endian octets.

const maxLengthOctets = 4

func addLength(b *cryptobyte.Builder, n int) {
	if n < 0x80 {
		b.AddUint8(uint8(n))
		return
	}
	var buf [maxLengthOctets]byte
	i := len(buf)
	for v := n; v > 0; v >>= 8 {
		i--
		buf[i] = byte(v)
	}
	b.AddUint8(0x80 | uint8(len(buf)-i))
	b.AddBytes(buf[i:])
}

func addVarOctet(b *cryptobyte.Builder, v []byte) {
	addLength(b, len(v))
	b.AddBytes(v)
}

func addVarUint(b *cryptobyte.Builder, v uint64) {
	var buf [8]byte
	i := len(buf) - 1
	buf[i] = byte(v)
	for v >>= 8; v > 0; v >>= 8 {
		i--
		buf[i] = byte(v)
	}
	addVarOctet(b, buf[i:])
}

// lengthPrefixSize returns how many octets the length prefix of an n-byte
// octet string occupies.
func lengthPrefixSize(n int) int {
	switch {
	case n < 0x80:
		return 1
	case n <= 0xff:
		return 2
	case n <= 0xffff:
		return 3
	default:
		return 4
	}
}

func readLength(s *cryptobyte.String) (int, error) {
	var first uint8
	if !s.ReadUint8(&first) {
		return 0, fmt.Errorf("%w: length", ErrTruncated)
	}
	if first < 0x80 {
		return int(first), nil
	}
	n := int(first & 0x7f)
	if n == 0 || n > maxLengthOctets {
		return 0, fmt.Errorf("%w: %d length octets", ErrInvalidString, n)
	}
	var raw []byte
	if !s.ReadBytes(&raw, n) {
		return 0, fmt.Errorf("%w: length octets", ErrTruncated)
	}
	if raw[0] == 0 {
		return 0, ErrNonMinimalLength
	}
	length := 0
	for _, c := range raw {
		length = length<<8 | int(c)
	}
	if length < 0x80 {
		return 0, ErrNonMinimalLength
	}
	return length, nil
}

func readVarOctet(s *cryptobyte.String) ([]byte, error) {
	n, err := readLength(s)
	if err != nil {
		return nil, err
	}
	var out []byte
	if !s.ReadBytes(&out, n) {
		return nil, fmt.Errorf("%w: %d-byte octet string", ErrTruncated, n)
	}
	return out, nil
}

func readVarUint(s *cryptobyte.String) (uint64, error) {
	raw, err := readVarOctet(s)
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 || len(raw) > 8 {
		return 0, fmt.Errorf("%w: %d-byte integer", ErrInvalidString, len(raw))
	}
	var v uint64
	for _, c := range raw {
		v = v<<8 | uint64(c)
	}
	return v, nil
}

func build(fn func(b *cryptobyte.Builder)) []byte {
	b := cryptobyte.NewBuilder(nil)
	fn(b)
	return b.BytesOrPanic()
}
