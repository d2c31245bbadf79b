package cryptoconditions

import (
	"bytes"
	"testing"
)

func FuzzDecodeFulfillment(f *testing.F) {
	f.Add(mustHex(f, "a0028000"))
	f.Add(mustHex(f, "a10b8000810100a204a0028000"))
	f.Add(mustHex(f, "a211a00da00b8009617574686f722d3031a100"))
	f.Add(mustHex(f, "a204a000a100"))
	f.Add([]byte{0xa4, 0x80})
	f.Fuzz(func(t *testing.T, data []byte) {
		ful, err := DecodeFulfillment(data)
		if err != nil {
			return
		}
		again, err := DecodeFulfillment(ful.Encode())
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if !bytes.Equal(again.Encode(), ful.Encode()) {
			t.Fatal("canonical encoding is not stable")
		}
		if !again.Condition().Equals(ful.Condition()) {
			t.Fatal("derived condition changed")
		}
	})
}

func FuzzDecodeCondition(f *testing.F) {
	f.Add(mustHex(f, emptyPreimageCondition))
	f.Add(mustHex(f, emptyPrefixCondition))
	f.Add(mustHex(f, ed25519Condition))
	f.Fuzz(func(t *testing.T, data []byte) {
		c, err := DecodeCondition(data)
		if err != nil {
			return
		}
		back, err := ParseURI(c.URI())
		if err != nil {
			t.Fatalf("ParseURI(%s): %v", c.URI(), err)
		}
		if !back.Equals(c) || back.Subtypes() != c.Subtypes() {
			t.Fatal("uri round trip changed the condition")
		}
	})
}
