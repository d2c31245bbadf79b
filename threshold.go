package cryptoconditions

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/interledger/cryptoconditions/der"
)

// ThresholdFulfillment proves a threshold condition by carrying exactly
// threshold subfulfillments and the bare conditions of the remaining
// children. The threshold is the number of carried subfulfillments.
type ThresholdFulfillment struct {
	subfulfillments []Fulfillment
	subconditions   []*Condition
	condition       *Condition
	encoded         []byte
}

// newThresholdFulfillment assembles a fulfillment from an already chosen
// split. Both sets are kept in ascending order of their encodings.
func newThresholdFulfillment(subfulfillments []Fulfillment, subconditions []*Condition) (*ThresholdFulfillment, error) {
	if len(subfulfillments) == 0 {
		return nil, fmt.Errorf("%w: no subfulfillments", ErrInvalidThreshold)
	}
	fs := slices.Clone(subfulfillments)
	cs := slices.Clone(subconditions)
	children := make([]*Condition, 0, len(fs)+len(cs))
	for i, f := range fs {
		if f == nil {
			return nil, fmt.Errorf("%w: subfulfillment %d", ErrNilFulfillment, i)
		}
		children = append(children, f.Condition())
	}
	children = append(children, cs...)
	cond, err := NewThresholdCondition(len(fs), children)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(fs, func(a, b Fulfillment) int {
		return bytes.Compare(a.Encode(), b.Encode())
	})
	encodings := make([][]byte, len(fs))
	for i, f := range fs {
		encodings[i] = f.Encode()
	}
	sortConditions(cs)

	encoded := mustEncode(func(w *der.Writer) {
		w.Constructed(uint8(ThresholdSha256), func(w *der.Writer) {
			w.Constructed(0, func(w *der.Writer) {
				for _, e := range encodings {
					w.WriteRaw(e)
				}
			})
			w.Constructed(1, func(w *der.Writer) {
				for _, c := range cs {
					w.WriteRaw(c.encoded)
				}
			})
		})
	})
	return &ThresholdFulfillment{
		subfulfillments: fs,
		subconditions:   cs,
		condition:       cond,
		encoded:         encoded,
	}, nil
}

func decodeThreshold(r *der.Reader) (*ThresholdFulfillment, error) {
	fr, err := r.ReadTaggedConstructed(0)
	if err != nil {
		return nil, err
	}
	var fs []Fulfillment
	for !fr.Empty() {
		f, err := decodeFulfillment(fr)
		if err != nil {
			return nil, fmt.Errorf("threshold subfulfillment %d: %w", len(fs), err)
		}
		fs = append(fs, f)
	}
	cr, err := r.ReadTaggedConstructed(1)
	if err != nil {
		return nil, err
	}
	var cs []*Condition
	for !cr.Empty() {
		c, err := decodeCondition(cr)
		if err != nil {
			return nil, fmt.Errorf("threshold subcondition %d: %w", len(cs), err)
		}
		cs = append(cs, c)
	}
	return newThresholdFulfillment(fs, cs)
}

// Threshold returns the number of children that must be fulfilled.
func (f *ThresholdFulfillment) Threshold() int { return len(f.subfulfillments) }

// Subfulfillments returns the carried subfulfillments.
func (f *ThresholdFulfillment) Subfulfillments() []Fulfillment {
	return slices.Clone(f.subfulfillments)
}

// Subconditions returns the children carried as bare conditions.
func (f *ThresholdFulfillment) Subconditions() []*Condition {
	return slices.Clone(f.subconditions)
}

// MaxLength bounds the encoded size of any fulfillment of the same
// condition. See WorstCaseLength.
func (f *ThresholdFulfillment) MaxLength() (int, error) {
	return WorstCaseLength(f.Threshold(), f.subfulfillments, f.subconditions)
}

func (f *ThresholdFulfillment) Type() ConditionType   { return ThresholdSha256 }
func (f *ThresholdFulfillment) Condition() *Condition { return f.condition }
func (f *ThresholdFulfillment) Encode() []byte        { return bytes.Clone(f.encoded) }
func (f *ThresholdFulfillment) EncodedLen() int       { return len(f.encoded) }

// Verify checks that the carried children rebuild c and that every carried
// subfulfillment holds for message.
func (f *ThresholdFulfillment) Verify(c *Condition, message []byte) (bool, error) {
	if ok, err := checkCondition(f, c); !ok {
		return false, err
	}
	for _, sub := range f.subfulfillments {
		ok, err := sub.Verify(sub.Condition(), message)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
