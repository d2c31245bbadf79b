// Package crypto provides the stateless digest and signature primitives the
// condition types are built on: SHA-256 fingerprints, Ed25519 and RSA-PSS
// (SHA-256, MGF1-SHA-256, 32-byte salt) signatures. Every function is pure;
// there is no shared digest or signer state.
package crypto

import "crypto/sha256"

// DigestSize is the size of a SHA-256 digest.
const DigestSize = sha256.Size

// Sum256 returns the SHA-256 digest of data.
func Sum256(data []byte) [DigestSize]byte {
	return sha256.Sum256(data)
}

// Sum256Concat hashes the concatenation of parts without building it.
func Sum256Concat(parts ...[]byte) [DigestSize]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	var out [DigestSize]byte
	h.Sum(out[:0])
	return out
}
