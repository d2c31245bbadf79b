package der

// AppendUint appends the DER INTEGER body of v: big-endian, minimal, with a
// leading zero octet when the top bit would otherwise read as a sign.
func AppendUint(dst []byte, v uint64) []byte {
	var buf [9]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte(v)
		v >>= 8
		if v == 0 {
			break
		}
	}
	if buf[i]&0x80 != 0 {
		i--
		buf[i] = 0
	}
	return append(dst, buf[i:]...)
}

// ParseUint decodes a DER INTEGER body that must hold a non-negative value.
func ParseUint(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, ErrInvalidInteger
	}
	if b[0]&0x80 != 0 {
		return 0, ErrNegativeInteger
	}
	if len(b) > 1 && b[0] == 0 && b[1]&0x80 == 0 {
		return 0, ErrNonMinimalInteger
	}
	if b[0] == 0 {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, ErrIntegerOverflow
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v, nil
}
