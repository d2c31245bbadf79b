package cryptoconditions

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/interledger/cryptoconditions/crypto"
	"github.com/interledger/cryptoconditions/der"
)

// Ed25519FulfillmentSize is the encoded size of every Ed25519 fulfillment.
const Ed25519FulfillmentSize = 2 + 2 + crypto.Ed25519PublicKeySize + 2 + crypto.Ed25519SignatureSize

// Ed25519Fulfillment is an Ed25519 signature with its public key.
type Ed25519Fulfillment struct {
	publicKey []byte
	signature []byte
	condition *Condition
	encoded   []byte
}

// NewEd25519Fulfillment pairs pub with signature.
func NewEd25519Fulfillment(pub ed25519.PublicKey, signature []byte) (*Ed25519Fulfillment, error) {
	cond, err := NewEd25519Condition(pub)
	if err != nil {
		return nil, err
	}
	if len(signature) != crypto.Ed25519SignatureSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSignatureSize, len(signature), crypto.Ed25519SignatureSize)
	}
	key, sig := bytes.Clone(pub), bytes.Clone(signature)
	return &Ed25519Fulfillment{
		publicKey: key,
		signature: sig,
		condition: cond,
		encoded: mustEncode(func(w *der.Writer) {
			w.Constructed(uint8(Ed25519Sha256), func(w *der.Writer) {
				w.WriteTagged(0, key)
				w.WriteTagged(1, sig)
			})
		}),
	}, nil
}

// SignEd25519 signs message with priv and returns the fulfillment.
func SignEd25519(priv ed25519.PrivateKey, message []byte) (*Ed25519Fulfillment, error) {
	sig, err := crypto.SignEd25519(priv, message)
	if err != nil {
		return nil, err
	}
	return NewEd25519Fulfillment(priv.Public().(ed25519.PublicKey), sig)
}

func decodeEd25519(r *der.Reader) (*Ed25519Fulfillment, error) {
	pub, err := r.ReadTagged(0)
	if err != nil {
		return nil, err
	}
	sig, err := r.ReadTagged(1)
	if err != nil {
		return nil, err
	}
	return NewEd25519Fulfillment(pub, sig)
}

// PublicKey returns a copy of the public key.
func (f *Ed25519Fulfillment) PublicKey() ed25519.PublicKey { return bytes.Clone(f.publicKey) }

// Signature returns a copy of the signature.
func (f *Ed25519Fulfillment) Signature() []byte { return bytes.Clone(f.signature) }

func (f *Ed25519Fulfillment) Type() ConditionType   { return Ed25519Sha256 }
func (f *Ed25519Fulfillment) Condition() *Condition { return f.condition }
func (f *Ed25519Fulfillment) Encode() []byte        { return bytes.Clone(f.encoded) }
func (f *Ed25519Fulfillment) EncodedLen() int       { return len(f.encoded) }

// Verify checks the signature over the raw message.
func (f *Ed25519Fulfillment) Verify(c *Condition, message []byte) (bool, error) {
	if ok, err := checkCondition(f, c); !ok {
		return false, err
	}
	return crypto.VerifyEd25519(f.publicKey, message, f.signature), nil
}
