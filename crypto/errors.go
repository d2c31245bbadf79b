package crypto

import "errors"

var (
	// ErrRSAExponent is returned for RSA keys whose public exponent is not 65537.
	ErrRSAExponent = errors.New("crypto: rsa public exponent must be 65537")

	// ErrRSAModulusSize is returned for RSA moduli outside (1017, 4096] bits.
	ErrRSAModulusSize = errors.New("crypto: rsa modulus size out of range")

	// ErrNilKey is returned when a nil key is supplied.
	ErrNilKey = errors.New("crypto: nil key")

	// ErrEd25519KeySize is returned for Ed25519 keys of the wrong length.
	ErrEd25519KeySize = errors.New("crypto: invalid ed25519 key size")
)
