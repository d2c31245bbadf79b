package vectors

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/common"

	cc "github.com/interledger/cryptoconditions"
)

func mismatch(what string, got, want any) error {
	return fmt.Errorf("%w: %s: got %v, want %v", ErrMismatch, what, got, want)
}

func checkBytes(what string, got []byte, wantHex string) error {
	want := common.FromHex(wantHex)
	if !bytes.Equal(got, want) {
		return mismatch(what, common.Bytes2Hex(got), common.Bytes2Hex(want))
	}
	return nil
}

// checkContents compares the fingerprint contents of c. A condition that
// cannot report its contents fails, even when the recorded value is empty.
func checkContents(c *cc.Condition, wantHex string) error {
	contents, ok := c.FingerprintContents()
	if !ok {
		return fmt.Errorf("%w: fingerprint contents: condition has none", ErrMismatch)
	}
	return checkBytes("fingerprint contents", contents, wantHex)
}

// Check builds the fixture's fulfillment and compares every derived value
// with the recorded one. Conditions are also round-tripped through their
// binary and URI forms, and the fulfillment is verified when a message is
// recorded.
func Check(v *Vector) error {
	f, err := Build(&v.JSON)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	cond := f.Condition()
	if cond.Cost() != v.Cost {
		return mismatch("cost", cond.Cost(), v.Cost)
	}
	subtypes := make([]string, 0)
	for _, t := range cond.Subtypes().Types() {
		subtypes = append(subtypes, t.String())
	}
	slices.Sort(subtypes)
	want := slices.Clone(v.Subtypes)
	slices.Sort(want)
	if !slices.Equal(subtypes, want) {
		return mismatch("subtypes", subtypes, want)
	}
	if err := checkContents(cond, v.FingerprintContents); err != nil {
		return err
	}
	if err := checkBytes("condition binary", cond.Encode(), v.ConditionBinary); err != nil {
		return err
	}
	if cond.URI() != v.ConditionURI {
		return mismatch("condition uri", cond.URI(), v.ConditionURI)
	}
	if err := checkBytes("fulfillment", f.Encode(), v.Fulfillment); err != nil {
		return err
	}

	fromBinary, err := cc.DecodeCondition(common.FromHex(v.ConditionBinary))
	if err != nil {
		return fmt.Errorf("decode condition: %w", err)
	}
	fromURI, err := cc.ParseURI(v.ConditionURI)
	if err != nil {
		return fmt.Errorf("parse uri: %w", err)
	}
	if !fromBinary.Equals(cond) || !fromURI.Equals(cond) {
		return mismatch("parsed condition", fromURI, cond)
	}
	parsed, err := cc.DecodeFulfillment(common.FromHex(v.Fulfillment))
	if err != nil {
		return fmt.Errorf("decode fulfillment: %w", err)
	}
	if !bytes.Equal(parsed.Encode(), f.Encode()) {
		return mismatch("re-encoded fulfillment", common.Bytes2Hex(parsed.Encode()), v.Fulfillment)
	}

	if v.Message != nil {
		ok, err := parsed.Verify(fromBinary, common.FromHex(*v.Message))
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: fulfillment does not verify", ErrMismatch)
		}
	}
	return nil
}
