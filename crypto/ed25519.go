package crypto

import (
	"crypto/ed25519"
	"fmt"
)

const (
	// Ed25519PublicKeySize is the size of an encoded Ed25519 public key.
	Ed25519PublicKeySize = ed25519.PublicKeySize
	// Ed25519SignatureSize is the size of an Ed25519 signature.
	Ed25519SignatureSize = ed25519.SignatureSize
)

// VerifyEd25519 checks sig over the raw message. Ed25519 hashes internally
// with SHA-512, so callers pass the message itself, never a digest.
// Malformed keys or signatures simply fail verification.
func VerifyEd25519(publicKey, message, sig []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, sig)
}

// SignEd25519 signs message with a 64-byte Ed25519 private key.
func SignEd25519(privateKey ed25519.PrivateKey, message []byte) ([]byte, error) {
	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: private key is %d bytes, want %d", ErrEd25519KeySize, len(privateKey), ed25519.PrivateKeySize)
	}
	return ed25519.Sign(privateKey, message), nil
}

// CheckEd25519PublicKey validates the length of an encoded public key.
func CheckEd25519PublicKey(publicKey []byte) error {
	if len(publicKey) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: public key is %d bytes, want %d", ErrEd25519KeySize, len(publicKey), ed25519.PublicKeySize)
	}
	return nil
}
