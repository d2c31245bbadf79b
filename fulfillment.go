package cryptoconditions

import "fmt"

// Fulfillment is the proof for a condition. Implementations are immutable;
// the derived condition and the encoding are computed at construction.
type Fulfillment interface {
	// Type returns the condition type this fulfillment proves.
	Type() ConditionType
	// Condition returns the condition derived from the fulfillment.
	Condition() *Condition
	// Encode returns the canonical binary encoding.
	Encode() []byte
	// EncodedLen returns the size of the binary encoding.
	EncodedLen() int
	// Verify checks the fulfillment against c for message. A nil condition
	// or a type mismatch is an error. A derived condition different from c,
	// or a proof that does not hold, returns false and a nil error.
	Verify(c *Condition, message []byte) (bool, error)
}

// checkCondition is the first step of every Verify: the supplied condition
// must be the one this fulfillment derives. Only a missing or mistyped
// condition is an error.
func checkCondition(f Fulfillment, c *Condition) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("%w: nil condition", ErrTypeMismatch)
	}
	if c.Type() != f.Type() {
		return false, fmt.Errorf("%w: %s fulfillment, %s condition", ErrTypeMismatch, f.Type(), c.Type())
	}
	return f.Condition().Equals(c), nil
}

// deltaSize is how many more bytes carrying f costs over carrying its bare
// condition.
func deltaSize(f Fulfillment) int {
	return f.EncodedLen() - f.Condition().EncodedLen()
}
