package cryptoconditions

import (
	"bytes"

	"github.com/interledger/cryptoconditions/der"
)

// PreimageFulfillment reveals the preimage of a SHA-256 fingerprint.
type PreimageFulfillment struct {
	preimage  []byte
	condition *Condition
	encoded   []byte
}

// NewPreimageFulfillment wraps preimage. Any byte string, including an empty
// one, is a valid preimage.
func NewPreimageFulfillment(preimage []byte) *PreimageFulfillment {
	p := bytes.Clone(preimage)
	return &PreimageFulfillment{
		preimage:  p,
		condition: NewPreimageCondition(p),
		encoded: mustEncode(func(w *der.Writer) {
			w.Constructed(uint8(PreimageSha256), func(w *der.Writer) { w.WriteTagged(0, p) })
		}),
	}
}

func decodePreimage(r *der.Reader) (*PreimageFulfillment, error) {
	preimage, err := r.ReadTagged(0)
	if err != nil {
		return nil, err
	}
	return NewPreimageFulfillment(preimage), nil
}

// Preimage returns a copy of the preimage.
func (f *PreimageFulfillment) Preimage() []byte { return bytes.Clone(f.preimage) }

func (f *PreimageFulfillment) Type() ConditionType   { return PreimageSha256 }
func (f *PreimageFulfillment) Condition() *Condition { return f.condition }
func (f *PreimageFulfillment) Encode() []byte        { return bytes.Clone(f.encoded) }
func (f *PreimageFulfillment) EncodedLen() int       { return len(f.encoded) }

// Verify succeeds for any message once the condition matches: the preimage
// hashing to the committed fingerprint is the whole proof.
func (f *PreimageFulfillment) Verify(c *Condition, _ []byte) (bool, error) {
	if ok, err := checkCondition(f, c); !ok {
		return false, err
	}
	return true, nil
}
