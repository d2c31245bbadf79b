package cryptoconditions

import (
	"slices"

	"github.com/holiman/uint256"
)

const (
	// Ed25519Cost is the fixed cost of an Ed25519 condition.
	Ed25519Cost = 131072
	// compoundOverhead is added per prefix and per threshold child.
	compoundOverhead = 1024
)

// costAccumulator sums cost terms in 256 bits and only narrows once, so an
// overflow anywhere in the sum is detected.
type costAccumulator struct {
	sum uint256.Int
}

func (a *costAccumulator) add(v uint64) {
	a.sum.Add(&a.sum, new(uint256.Int).SetUint64(v))
}

func (a *costAccumulator) addProduct(x, y uint64) {
	p := new(uint256.Int).Mul(new(uint256.Int).SetUint64(x), new(uint256.Int).SetUint64(y))
	a.sum.Add(&a.sum, p)
}

func (a *costAccumulator) result() (uint64, error) {
	if !a.sum.IsUint64() {
		return 0, ErrCostOverflow
	}
	return a.sum.Uint64(), nil
}

func prefixCost(prefixLen int, maxMessageLength, subCost uint64) (uint64, error) {
	var a costAccumulator
	a.add(uint64(prefixLen))
	a.add(maxMessageLength)
	a.add(subCost)
	a.add(compoundOverhead)
	return a.result()
}

// thresholdCost sums the threshold largest child costs and adds the per-child
// overhead.
func thresholdCost(threshold int, costs []uint64) (uint64, error) {
	sorted := slices.Clone(costs)
	slices.Sort(sorted)
	slices.Reverse(sorted)
	var a costAccumulator
	for _, c := range sorted[:threshold] {
		a.add(c)
	}
	a.addProduct(compoundOverhead, uint64(len(costs)))
	return a.result()
}

func rsaCost(modulusLen int) uint64 {
	return uint64(modulusLen) * uint64(modulusLen)
}
