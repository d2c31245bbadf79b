package cryptoconditions

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rsa"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/interledger/cryptoconditions/crypto"
)

const (
	emptyPreimageCondition = "a0258020e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855810100"
	emptyPrefixContents    = "302e8000810100a227" + emptyPreimageCondition
	emptyPrefixCondition   = "a12a8020bb1ac5260c0141b7e54b26ec2330637c5597bf811951ac09e744ad20ff77e2878102040082020780"
	ed25519Condition       = "a4278020799239aba8fc4ff7eabfbc4c44e69e8bdfed993324e12ed64792abe289cf1d5f8103020000"
)

func TestPreimageCondition(t *testing.T) {
	c := NewPreimageCondition(nil)
	if got := hex.EncodeToString(c.Encode()); got != emptyPreimageCondition {
		t.Fatalf("Encode() = %s, want %s", got, emptyPreimageCondition)
	}
	if c.Cost() != 0 || c.Type() != PreimageSha256 || c.Subtypes() != 0 {
		t.Fatalf("unexpected fields: %v", c)
	}
	contents, ok := c.FingerprintContents()
	if !ok || len(contents) != 0 {
		t.Fatalf("FingerprintContents() = %x, %v", contents, ok)
	}
	if NewPreimageCondition([]byte("hello")).Cost() != 5 {
		t.Fatal("preimage cost is its length")
	}
}

func TestPrefixCondition(t *testing.T) {
	c, err := NewPrefixCondition(nil, 0, NewPreimageCondition(nil))
	if err != nil {
		t.Fatal(err)
	}
	contents, _ := c.FingerprintContents()
	if got := hex.EncodeToString(contents); got != emptyPrefixContents {
		t.Fatalf("contents = %s, want %s", got, emptyPrefixContents)
	}
	if got := hex.EncodeToString(c.Encode()); got != emptyPrefixCondition {
		t.Fatalf("Encode() = %s, want %s", got, emptyPrefixCondition)
	}
	if c.Cost() != 1024 {
		t.Fatalf("cost = %d, want 1024", c.Cost())
	}
	if c.Subtypes() != NewTypeSet(PreimageSha256) {
		t.Fatalf("subtypes = %v", c.Subtypes())
	}
	if _, err := NewPrefixCondition(nil, 0, nil); !errors.Is(err, ErrNilCondition) {
		t.Fatalf("got %v, want %v", err, ErrNilCondition)
	}
}

func TestPrefixCostMonotonic(t *testing.T) {
	base := NewPreimageCondition([]byte("abc"))
	cost := func(prefix []byte, max uint64, sub *Condition) uint64 {
		c, err := NewPrefixCondition(prefix, max, sub)
		if err != nil {
			t.Fatal(err)
		}
		return c.Cost()
	}
	c0 := cost([]byte("p"), 10, base)
	if c0 != 1+10+3+1024 {
		t.Fatalf("cost = %d", c0)
	}
	if cost([]byte("pp"), 10, base) <= c0 {
		t.Fatal("cost must grow with the prefix")
	}
	if cost([]byte("p"), 11, base) <= c0 {
		t.Fatal("cost must grow with the maximum message length")
	}
	if cost([]byte("p"), 10, NewPreimageCondition([]byte("abcd"))) <= c0 {
		t.Fatal("cost must grow with the subcondition cost")
	}
}

func TestPrefixSubtypesExcludeOwnType(t *testing.T) {
	ed, err := NewEd25519Condition(testEd25519Key(t).Public().(ed25519.PublicKey))
	if err != nil {
		t.Fatal(err)
	}
	inner, err := NewPrefixCondition([]byte("a"), 1, ed)
	if err != nil {
		t.Fatal(err)
	}
	outer, err := NewPrefixCondition([]byte("b"), 1, inner)
	if err != nil {
		t.Fatal(err)
	}
	if outer.Subtypes() != NewTypeSet(Ed25519Sha256) {
		t.Fatalf("subtypes = %v", outer.Subtypes())
	}
	th := mustThresholdCondition(t, 1, outer, NewPreimageCondition(nil))
	want := NewTypeSet(PrefixSha256, Ed25519Sha256, PreimageSha256)
	if th.Subtypes() != want {
		t.Fatalf("subtypes = %v, want %v", th.Subtypes(), want)
	}
}

func TestThresholdSinglePreimage(t *testing.T) {
	c := mustThresholdCondition(t, 1, NewPreimageCondition([]byte("author-01")))
	if c.Cost() != 1033 {
		t.Fatalf("cost = %d, want 1033", c.Cost())
	}
	want := "ni:///sha-256;V_njihGKGEMVH7UqGlqYKCUDXwWpgg1idynPzFKNGjI?fpt=threshold-sha-256&cost=1033&subtypes=preimage-sha-256"
	if c.URI() != want {
		t.Fatalf("URI() = %s, want %s", c.URI(), want)
	}
}

// authorCondition is a bare 9-byte preimage condition known only by its
// fingerprint.
func authorCondition(t *testing.T) *Condition {
	t.Helper()
	c, err := NewCondition(PreimageSha256, mustHex(t, "63120bd79f9ef819626bac13470ccba8fdb80b9214cdc288f51940e9efbbc39d"), 9, 0)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestThresholdKnownVector(t *testing.T) {
	c := mustThresholdCondition(t, 1, authorCondition(t))
	contents, ok := c.FingerprintContents()
	if !ok {
		t.Fatal("threshold condition has no fingerprint contents")
	}
	if got := base64.StdEncoding.EncodeToString(contents); got != "MCyAAQGhJ6AlgCBjEgvXn574GWJrrBNHDMuo/bgLkhTNwoj1GUDp77vDnYEBCQ==" {
		t.Fatalf("fingerprint contents = %s", got)
	}
	if got := base64.StdEncoding.EncodeToString(c.Encode()); got != "oiqAIFvpBRUEXf3bc+tHStyatMK/gxA1hyxYfA9U0Bwk4u+SgQIECYICB4A=" {
		t.Fatalf("encoding = %s", got)
	}
	want := "ni:///sha-256;W-kFFQRd_dtz60dK3Jq0wr-DEDWHLFh8D1TQHCTi75I?fpt=threshold-sha-256&cost=1033&subtypes=preimage-sha-256"
	if c.URI() != want {
		t.Fatalf("URI() = %s, want %s", c.URI(), want)
	}
}

func TestEmptyPreimageFingerprintContents(t *testing.T) {
	built := NewPreimageFulfillment(nil).Condition()
	decoded, err := DecodeFulfillment(mustHex(t, "a0028000"))
	if err != nil {
		t.Fatal(err)
	}
	for name, c := range map[string]*Condition{"built": built, "decoded": decoded.Condition()} {
		contents, ok := c.FingerprintContents()
		if !ok || contents == nil || len(contents) != 0 {
			t.Errorf("%s: FingerprintContents() = %#v, %v, want empty, true", name, contents, ok)
		}
	}
	bare, err := DecodeCondition(built.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := bare.FingerprintContents(); ok {
		t.Error("decoded condition reports fingerprint contents")
	}
}

func TestThresholdCost(t *testing.T) {
	subs := []*Condition{
		NewPreimageCondition(make([]byte, 5)),
		NewPreimageCondition(make([]byte, 50)),
		NewPreimageCondition(make([]byte, 20)),
		NewPreimageCondition(make([]byte, 1)),
	}
	tests := []struct {
		threshold int
		want      uint64
	}{
		{1, 50 + 4*1024},
		{2, 50 + 20 + 4*1024},
		{3, 50 + 20 + 5 + 4*1024},
		{4, 50 + 20 + 5 + 1 + 4*1024},
	}
	for _, tt := range tests {
		if got := mustThresholdCondition(t, tt.threshold, subs...).Cost(); got != tt.want {
			t.Fatalf("threshold %d: cost = %d, want %d", tt.threshold, got, tt.want)
		}
	}
}

func TestThresholdPermutationInvariant(t *testing.T) {
	var subs []*Condition
	for i := 0; i < 8; i++ {
		subs = append(subs, NewPreimageCondition([]byte{byte(i), byte(i * 7)}))
	}
	subs = append(subs, mustThresholdCondition(t, 2, subs[0], subs[1], subs[2]))
	want := mustThresholdCondition(t, 3, subs...)
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]*Condition(nil), subs...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := mustThresholdCondition(t, 3, shuffled...)
		if !bytes.Equal(got.Encode(), want.Encode()) {
			t.Fatalf("permutation %d changed the encoding", i)
		}
	}
}

func TestThresholdConditionErrors(t *testing.T) {
	a := NewPreimageCondition([]byte("a"))
	if _, err := NewThresholdCondition(0, []*Condition{a}); !errors.Is(err, ErrInvalidThreshold) {
		t.Fatalf("got %v, want %v", err, ErrInvalidThreshold)
	}
	if _, err := NewThresholdCondition(2, []*Condition{a}); !errors.Is(err, ErrThresholdTooLarge) {
		t.Fatalf("got %v, want %v", err, ErrThresholdTooLarge)
	}
	if _, err := NewThresholdCondition(1, []*Condition{a, nil}); !errors.Is(err, ErrNilCondition) {
		t.Fatalf("got %v, want %v", err, ErrNilCondition)
	}
}

func TestCostOverflow(t *testing.T) {
	if _, err := NewPrefixCondition([]byte("x"), math.MaxUint64, NewPreimageCondition(nil)); !errors.Is(err, ErrCostOverflow) {
		t.Fatalf("got %v, want %v", err, ErrCostOverflow)
	}
	big1, err := NewCondition(PreimageSha256, make([]byte, 32), math.MaxUint64, 0)
	if err != nil {
		t.Fatal(err)
	}
	big2, err := NewCondition(RsaSha256, make([]byte, 32), math.MaxUint64, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewThresholdCondition(1, []*Condition{big1, big2}); !errors.Is(err, ErrCostOverflow) {
		t.Fatalf("got %v, want %v", err, ErrCostOverflow)
	}
}

func TestEd25519Condition(t *testing.T) {
	c, err := NewEd25519Condition(testEd25519Key(t).Public().(ed25519.PublicKey))
	if err != nil {
		t.Fatal(err)
	}
	if got := hex.EncodeToString(c.Encode()); got != ed25519Condition {
		t.Fatalf("Encode() = %s, want %s", got, ed25519Condition)
	}
	if c.Cost() != Ed25519Cost {
		t.Fatalf("cost = %d", c.Cost())
	}
	if _, err := NewEd25519Condition(make([]byte, 31)); !errors.Is(err, ErrInvalidPublicKey) {
		t.Fatalf("got %v, want %v", err, ErrInvalidPublicKey)
	}
}

func TestRsaCondition(t *testing.T) {
	key := testRSAKey(t)
	c, err := NewRsaCondition(&key.PublicKey)
	if err != nil {
		t.Fatal(err)
	}
	if c.Cost() != 256*256 {
		t.Fatalf("cost = %d, want %d", c.Cost(), 256*256)
	}
	tests := []struct {
		name string
		key  *rsa.PublicKey
		want error
	}{
		{"nil", nil, crypto.ErrNilKey},
		{"exponent", &rsa.PublicKey{N: key.N, E: 3}, crypto.ErrRSAExponent},
		{"small modulus", &rsa.PublicKey{N: new(big.Int).Lsh(big.NewInt(1), 1016), E: 65537}, crypto.ErrRSAModulusSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRsaCondition(tt.key)
			if !errors.Is(err, ErrInvalidPublicKey) || !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewConditionValidation(t *testing.T) {
	fp := make([]byte, 32)
	tests := []struct {
		name     string
		typ      ConditionType
		fp       []byte
		subtypes TypeSet
		want     error
	}{
		{"short fingerprint", PreimageSha256, fp[:31], 0, ErrInvalidFingerprint},
		{"long fingerprint", PreimageSha256, append(fp, 0), 0, ErrInvalidFingerprint},
		{"unknown type", ConditionType(5), fp, 0, ErrUnknownType},
		{"simple with subtypes", RsaSha256, fp, NewTypeSet(PreimageSha256), ErrInvalidSubtypes},
		{"compound lists itself", PrefixSha256, fp, NewTypeSet(PrefixSha256), ErrInvalidSubtypes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCondition(tt.typ, tt.fp, 0, tt.subtypes); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConditionEquality(t *testing.T) {
	derived := NewPreimageCondition([]byte("secret"))
	fp := derived.Fingerprint()
	parsed, err := NewCondition(PreimageSha256, fp[:], derived.Cost(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if !derived.Equals(parsed) || !parsed.Equals(derived) {
		t.Fatal("derived and parsed conditions must be equal")
	}
	if _, ok := parsed.FingerprintContents(); ok {
		t.Fatal("parsed condition has no fingerprint contents")
	}
	if !bytes.Equal(derived.Encode(), parsed.Encode()) {
		t.Fatal("encodings differ")
	}
	other, _ := NewCondition(PreimageSha256, fp[:], derived.Cost()+1, 0)
	if derived.Equals(other) {
		t.Fatal("cost must take part in equality")
	}
	var nilCond *Condition
	if derived.Equals(nil) || !nilCond.Equals(nil) {
		t.Fatal("nil handling")
	}
}

func TestEncodeReturnsCopy(t *testing.T) {
	c := NewPreimageCondition(nil)
	b := c.Encode()
	b[0] = 0xff
	if hex.EncodeToString(c.Encode()) != emptyPreimageCondition {
		t.Fatal("caller mutated the cached encoding")
	}
}
