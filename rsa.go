package cryptoconditions

import (
	"bytes"
	"crypto/rsa"
	"fmt"

	"github.com/interledger/cryptoconditions/crypto"
	"github.com/interledger/cryptoconditions/der"
)

// RsaFulfillment is an RSASSA-PSS (SHA-256) signature with the public key it
// verifies under.
type RsaFulfillment struct {
	modulus   []byte
	signature []byte
	pub       *rsa.PublicKey
	condition *Condition
	encoded   []byte
}

// NewRsaFulfillment pairs pub with signature. The key must pass the same
// checks as NewRsaCondition.
func NewRsaFulfillment(pub *rsa.PublicKey, signature []byte) (*RsaFulfillment, error) {
	cond, err := NewRsaCondition(pub)
	if err != nil {
		return nil, err
	}
	modulus := pub.N.Bytes()
	sig := bytes.Clone(signature)
	return &RsaFulfillment{
		modulus:   modulus,
		signature: sig,
		pub:       crypto.RSAPublicKeyFromModulus(modulus),
		condition: cond,
		encoded: mustEncode(func(w *der.Writer) {
			w.Constructed(uint8(RsaSha256), func(w *der.Writer) {
				w.WriteTagged(0, modulus)
				w.WriteTagged(1, sig)
			})
		}),
	}, nil
}

// SignRsa signs message with priv and returns the fulfillment.
func SignRsa(priv *rsa.PrivateKey, message []byte) (*RsaFulfillment, error) {
	if priv == nil {
		return nil, fmt.Errorf("%w: nil private key", ErrInvalidPublicKey)
	}
	sig, err := crypto.SignRSAPSS(priv, message)
	if err != nil {
		return nil, err
	}
	return NewRsaFulfillment(&priv.PublicKey, sig)
}

func decodeRsa(r *der.Reader) (*RsaFulfillment, error) {
	modulus, err := r.ReadTagged(0)
	if err != nil {
		return nil, err
	}
	if len(modulus) == 0 || modulus[0] == 0 {
		return nil, fmt.Errorf("%w: modulus is not minimal", ErrInvalidPublicKey)
	}
	sig, err := r.ReadTagged(1)
	if err != nil {
		return nil, err
	}
	return NewRsaFulfillment(crypto.RSAPublicKeyFromModulus(modulus), sig)
}

// PublicKey returns the signer's public key.
func (f *RsaFulfillment) PublicKey() *rsa.PublicKey {
	return crypto.RSAPublicKeyFromModulus(f.modulus)
}

// Signature returns a copy of the signature.
func (f *RsaFulfillment) Signature() []byte { return bytes.Clone(f.signature) }

func (f *RsaFulfillment) Type() ConditionType   { return RsaSha256 }
func (f *RsaFulfillment) Condition() *Condition { return f.condition }
func (f *RsaFulfillment) Encode() []byte        { return bytes.Clone(f.encoded) }
func (f *RsaFulfillment) EncodedLen() int       { return len(f.encoded) }

// Verify checks the signature over the raw message.
func (f *RsaFulfillment) Verify(c *Condition, message []byte) (bool, error) {
	if ok, err := checkCondition(f, c); !ok {
		return false, err
	}
	return crypto.VerifyRSAPSS(f.pub, message, f.signature), nil
}
