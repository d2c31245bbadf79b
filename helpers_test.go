package cryptoconditions

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"encoding/hex"
	"sync"
	"testing"
)

// rfc8032Seed is the private key seed of RFC 8032 test 1.
const rfc8032Seed = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func testEd25519Key(t testing.TB) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(mustHex(t, rfc8032Seed))
}

var (
	rsaOnce sync.Once
	rsaPriv *rsa.PrivateKey
	rsaErr  error
)

func testRSAKey(t testing.TB) *rsa.PrivateKey {
	t.Helper()
	rsaOnce.Do(func() {
		rsaPriv, rsaErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	if rsaErr != nil {
		t.Fatalf("rsa key: %v", rsaErr)
	}
	return rsaPriv
}

func mustThresholdCondition(t testing.TB, threshold int, subs ...*Condition) *Condition {
	t.Helper()
	c, err := NewThresholdCondition(threshold, subs)
	if err != nil {
		t.Fatalf("NewThresholdCondition: %v", err)
	}
	return c
}
