// Package vectors loads crypto-condition conformance fixtures and checks the
// library against them.
package vectors

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	cc "github.com/interledger/cryptoconditions"
	"github.com/interledger/cryptoconditions/crypto"
)

var (
	ErrUnknownFixtureType = errors.New("vectors: unknown fixture type")
	ErrMismatch           = errors.New("vectors: mismatch")
)

// Params are the constructing parameters of a fulfillment. Binary fields are
// unpadded base64url.
type Params struct {
	Type             string    `json:"type"`
	Preimage         string    `json:"preimage,omitempty"`
	Prefix           string    `json:"prefix,omitempty"`
	MaxMessageLength uint64    `json:"maxMessageLength,omitempty"`
	Subfulfillment   *Params   `json:"subfulfillment,omitempty"`
	Threshold        int       `json:"threshold,omitempty"`
	Subfulfillments  []*Params `json:"subfulfillments,omitempty"`
	PublicKey        string    `json:"publicKey,omitempty"`
	Modulus          string    `json:"modulus,omitempty"`
	Signature        string    `json:"signature,omitempty"`
}

// Vector is one fixture file. Hex fields may be upper or lower case.
type Vector struct {
	JSON                Params   `json:"json"`
	Cost                uint64   `json:"cost"`
	Subtypes            []string `json:"subtypes"`
	FingerprintContents string   `json:"fingerprintContents"`
	ConditionBinary     string   `json:"conditionBinary"`
	ConditionURI        string   `json:"conditionUri"`
	Fulfillment         string   `json:"fulfillment"`
	Message             *string  `json:"message,omitempty"`
}

// Load reads a fixture file.
func Load(path string) (*Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var v Vector
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("vectors: %s: %w", filepath.Base(path), err)
	}
	return &v, nil
}

// Files lists the fixture files in dir in name order.
func Files(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func decode64(field, s string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("vectors: %s: %w", field, err)
	}
	return b, nil
}

// Build constructs the fulfillment the parameters describe.
func Build(p *Params) (cc.Fulfillment, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: missing parameters", ErrUnknownFixtureType)
	}
	t, err := cc.ParseConditionType(p.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFixtureType, p.Type)
	}
	switch t {
	case cc.PreimageSha256:
		preimage, err := decode64("preimage", p.Preimage)
		if err != nil {
			return nil, err
		}
		return cc.NewPreimageFulfillment(preimage), nil
	case cc.PrefixSha256:
		prefix, err := decode64("prefix", p.Prefix)
		if err != nil {
			return nil, err
		}
		sub, err := Build(p.Subfulfillment)
		if err != nil {
			return nil, err
		}
		return cc.NewPrefixFulfillment(prefix, p.MaxMessageLength, sub)
	case cc.ThresholdSha256:
		subs := make([]cc.Fulfillment, len(p.Subfulfillments))
		for i, sp := range p.Subfulfillments {
			if subs[i], err = Build(sp); err != nil {
				return nil, fmt.Errorf("subfulfillment %d: %w", i, err)
			}
		}
		return cc.NewThresholdFulfillment(p.Threshold, subs, nil)
	case cc.RsaSha256:
		modulus, err := decode64("modulus", p.Modulus)
		if err != nil {
			return nil, err
		}
		sig, err := decode64("signature", p.Signature)
		if err != nil {
			return nil, err
		}
		return cc.NewRsaFulfillment(crypto.RSAPublicKeyFromModulus(modulus), sig)
	default:
		pub, err := decode64("publicKey", p.PublicKey)
		if err != nil {
			return nil, err
		}
		sig, err := decode64("signature", p.Signature)
		if err != nil {
			return nil, err
		}
		return cc.NewEd25519Fulfillment(pub, sig)
	}
}
