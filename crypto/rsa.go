package crypto

import (
	stdcrypto "crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"math/big"
)

const (
	// RSAPublicExponent is the only public exponent accepted for RSA keys.
	RSAPublicExponent = 65537

	// MinRSAModulusBits is the exclusive lower bound on the modulus size.
	MinRSAModulusBits = 1017
	// MaxRSAModulusBits is the inclusive upper bound on the modulus size.
	MaxRSAModulusBits = 4096

	// RSASaltLength is the PSS salt length used for signing and verification.
	RSASaltLength = 32
)

var pssOptions = rsa.PSSOptions{SaltLength: RSASaltLength, Hash: stdcrypto.SHA256}

// CheckRSAPublicKey validates the exponent and modulus size of a live key.
func CheckRSAPublicKey(pub *rsa.PublicKey) error {
	if pub == nil || pub.N == nil {
		return ErrNilKey
	}
	if pub.E != RSAPublicExponent {
		return fmt.Errorf("%w: got %d", ErrRSAExponent, pub.E)
	}
	if bits := pub.N.BitLen(); bits <= MinRSAModulusBits || bits > MaxRSAModulusBits {
		return fmt.Errorf("%w: %d bits", ErrRSAModulusSize, bits)
	}
	return nil
}

// RSAPublicKeyFromModulus builds a public key from an unsigned big-endian
// modulus and the fixed exponent 65537.
func RSAPublicKeyFromModulus(modulus []byte) *rsa.PublicKey {
	return &rsa.PublicKey{N: new(big.Int).SetBytes(modulus), E: RSAPublicExponent}
}

// VerifyRSAPSS checks an RSASSA-PSS signature over the raw message. The
// SHA-256 digest is computed here; callers must not pre-hash. Signatures
// whose length differs from the modulus length are rejected.
func VerifyRSAPSS(pub *rsa.PublicKey, message, sig []byte) bool {
	if pub == nil || pub.N == nil || len(sig) != pub.Size() {
		return false
	}
	digest := sha256.Sum256(message)
	return rsa.VerifyPSS(pub, stdcrypto.SHA256, digest[:], sig, &pssOptions) == nil
}

// SignRSAPSS produces an RSASSA-PSS signature over the raw message.
func SignRSAPSS(priv *rsa.PrivateKey, message []byte) ([]byte, error) {
	if priv == nil {
		return nil, ErrNilKey
	}
	digest := sha256.Sum256(message)
	sig, err := rsa.SignPSS(rand.Reader, priv, stdcrypto.SHA256, digest[:], &pssOptions)
	if err != nil {
		return nil, fmt.Errorf("crypto: rsa-pss sign: %w", err)
	}
	return sig, nil
}
