package cryptoconditions

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/holiman/uint256"

	"github.com/interledger/cryptoconditions/crypto"
	"github.com/interledger/cryptoconditions/der"
)

// maxBoundedPreimage caps the preimage length inferred from a bare preimage
// condition's cost when bounding fulfillment sizes.
const maxBoundedPreimage = math.MaxInt32

// NewThresholdFulfillment builds the smallest fulfillment of the threshold
// condition over all fulfillments and conditions. Exactly threshold
// fulfillments are carried: those whose encoding grows the least over their
// bare condition, ties broken by condition fingerprint and then by position.
// The remaining fulfillments are demoted to bare conditions.
func NewThresholdFulfillment(threshold int, fulfillments []Fulfillment, conditions []*Condition) (*ThresholdFulfillment, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	all := make([]*Condition, 0, len(fulfillments)+len(conditions))
	for i, f := range fulfillments {
		if f == nil {
			return nil, fmt.Errorf("%w: fulfillment %d", ErrNilFulfillment, i)
		}
		all = append(all, f.Condition())
	}
	all = append(all, conditions...)
	if len(fulfillments) < threshold {
		return nil, fmt.Errorf("%w: %d of %d", ErrInsufficientFulfillments, len(fulfillments), threshold)
	}
	target, err := NewThresholdCondition(threshold, all)
	if err != nil {
		return nil, err
	}

	chosen, demoted := selectSmallest(threshold, fulfillments)
	tf, err := newThresholdFulfillment(chosen, append(slices.Clone(conditions), demoted...))
	if err != nil {
		return nil, err
	}
	if !tf.condition.Equals(target) {
		return nil, fmt.Errorf("%w: selected children do not rebuild the threshold condition", ErrConditionMismatch)
	}
	return tf, nil
}

// selectSmallest picks the k fulfillments with the smallest size delta.
func selectSmallest(k int, fulfillments []Fulfillment) ([]Fulfillment, []*Condition) {
	order := make([]int, len(fulfillments))
	deltas := make([]int, len(fulfillments))
	fps := make([][FingerprintSize]byte, len(fulfillments))
	for i, f := range fulfillments {
		order[i] = i
		deltas[i] = deltaSize(f)
		fps[i] = f.Condition().Fingerprint()
	}
	slices.SortFunc(order, func(a, b int) int {
		return cmp.Or(
			cmp.Compare(deltas[a], deltas[b]),
			bytes.Compare(fps[a][:], fps[b][:]),
			cmp.Compare(a, b),
		)
	})
	chosen := make([]Fulfillment, 0, k)
	demoted := make([]*Condition, 0, len(fulfillments)-k)
	for rank, i := range order {
		if rank < k {
			chosen = append(chosen, fulfillments[i])
		} else {
			demoted = append(demoted, fulfillments[i].Condition())
		}
	}
	return chosen, demoted
}

// WorstCaseLength bounds the encoded size of any threshold fulfillment over
// the given children before the actual proofs are known. Fulfillments count
// with their real size; bare simple conditions are bounded from their cost.
// Bare compound conditions cannot be bounded and yield
// ErrUnboundedFulfillment.
func WorstCaseLength(threshold int, fulfillments []Fulfillment, conditions []*Condition) (int, error) {
	n := len(fulfillments) + len(conditions)
	if threshold < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	if threshold > n {
		return 0, fmt.Errorf("%w: %d of %d", ErrThresholdTooLarge, threshold, n)
	}
	fLens := make([]int, 0, n)
	cLens := make([]int, 0, n)
	for i, f := range fulfillments {
		if f == nil {
			return 0, fmt.Errorf("%w: fulfillment %d", ErrNilFulfillment, i)
		}
		fLens = append(fLens, f.EncodedLen())
		cLens = append(cLens, f.Condition().EncodedLen())
	}
	for i, c := range conditions {
		if c == nil {
			return 0, fmt.Errorf("%w: condition %d", ErrNilCondition, i)
		}
		l, err := maxFulfillmentLength(c)
		if err != nil {
			return 0, err
		}
		fLens = append(fLens, l)
		cLens = append(cLens, c.EncodedLen())
	}

	s := newWorstCaseSearch(fLens, cLens)
	chosen := s.selection(threshold)
	var fSum, cSum int
	for i := range fLens {
		if chosen[i] {
			fSum += fLens[i]
		} else {
			cSum += cLens[i]
		}
	}
	body := fSum + cSum
	header := 1 + der.LengthSize(body)
	return der.EncodedLen(2*header + body), nil
}

// maxFulfillmentLength bounds the fulfillment size of a bare condition.
func maxFulfillmentLength(c *Condition) (int, error) {
	switch c.Type() {
	case PreimageSha256:
		if c.Cost() > maxBoundedPreimage {
			return 0, fmt.Errorf("%w: preimage cost %d", ErrUnboundedFulfillment, c.Cost())
		}
		return der.EncodedLen(der.EncodedLen(int(c.Cost()))), nil
	case RsaSha256:
		cost := new(uint256.Int).SetUint64(c.Cost())
		root := new(uint256.Int).Sqrt(cost)
		if new(uint256.Int).Mul(root, root).Cmp(cost) != 0 {
			root.AddUint64(root, 1)
		}
		m := root.Uint64()
		if m > crypto.MaxRSAModulusBits/8 {
			return 0, fmt.Errorf("%w: rsa cost %d", ErrUnboundedFulfillment, c.Cost())
		}
		field := der.EncodedLen(int(m))
		return der.EncodedLen(2 * field), nil
	case Ed25519Sha256:
		return Ed25519FulfillmentSize, nil
	default:
		return 0, fmt.Errorf("%w: bare %s condition", ErrUnboundedFulfillment, c.Type())
	}
}

const infeasible = math.MinInt

// worstCaseSearch is a memoised 0/1 knapsack over the children: each child
// either contributes its fulfillment (weight 1 toward the threshold, value
// its size delta) or stays a bare condition. Selection stops as soon as the
// threshold is met, so no spare fulfillment is ever counted.
type worstCaseSearch struct {
	deltas []int
	memo   map[[2]int]int
}

func newWorstCaseSearch(fLens, cLens []int) *worstCaseSearch {
	deltas := make([]int, len(fLens))
	for i := range fLens {
		deltas[i] = fLens[i] - cLens[i]
	}
	return &worstCaseSearch{deltas: deltas, memo: make(map[[2]int]int)}
}

// best returns the largest delta sum reachable from child i on with
// remaining members still to pick, or infeasible.
func (s *worstCaseSearch) best(i, remaining int) int {
	if remaining <= 0 {
		return 0
	}
	if i == len(s.deltas) {
		return infeasible
	}
	key := [2]int{i, remaining}
	if v, ok := s.memo[key]; ok {
		return v
	}
	v := s.best(i+1, remaining)
	if take := s.best(i+1, remaining-1); take != infeasible && take+s.deltas[i] > v {
		v = take + s.deltas[i]
	}
	s.memo[key] = v
	return v
}

func (s *worstCaseSearch) selection(threshold int) []bool {
	chosen := make([]bool, len(s.deltas))
	remaining := threshold
	for i := 0; i < len(s.deltas) && remaining > 0; i++ {
		take := s.best(i+1, remaining-1)
		if take != infeasible && take+s.deltas[i] == s.best(i, remaining) {
			chosen[i] = true
			remaining--
		}
	}
	return chosen
}
