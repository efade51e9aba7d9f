package units

import (
	"fmt"

	"github.com/holiman/uint256"
)

const (
	// GasToInternalMultiplier is how many internal gas units make one gas unit.
	GasToInternalMultiplier uint64 = 1

	// InternalToGasNumerator and InternalToGasDenominator define the fraction
	// of a gas unit one internal gas unit is worth.
	InternalToGasNumerator   uint64 = 1
	InternalToGasDenominator uint64 = 1
)

var (
	// GasToInternal converts budgets into the unit the interpreter charges in.
	GasToInternal = NewRatio[GasUnit, InternalGasUnit](GasToInternalMultiplier, 1)
	// InternalToGas converts charged amounts back into user facing gas.
	InternalToGas = NewRatio[InternalGasUnit, GasUnit](InternalToGasNumerator, InternalToGasDenominator)
)

// Ratio is a fixed rational conversion factor from unit From to unit To.
type Ratio[From, To any] struct {
	numerator, denominator uint64
}

// NewRatio returns a conversion that multiplies by numerator and divides by denominator.
// It panics if denominator is zero, ratios are expected to be program constants.
func NewRatio[From, To any](numerator, denominator uint64) Ratio[From, To] {
	if denominator == 0 {
		panic(fmt.Sprintf("ratio %d/%d has zero denominator", numerator, denominator))
	}
	return Ratio[From, To]{numerator: numerator, denominator: denominator}
}

func (r Ratio[From, To]) Numerator() uint64 {
	return r.numerator
}

func (r Ratio[From, To]) Denominator() uint64 {
	return r.denominator
}

// Convert returns q*numerator/denominator.
// The result is exact when the denominator divides the product and is truncated
// towards zero otherwise. Results that don't fit into 64 bits saturate.
func (r Ratio[From, To]) Convert(q Quantity[From]) Quantity[To] {
	var v uint256.Int
	v.Mul(uint256.NewInt(q.val), uint256.NewInt(r.numerator))
	v.Div(&v, uint256.NewInt(r.denominator))
	return Quantity[To]{val: saturate(&v)}
}

// ToInternal converts gas to internal gas.
func ToInternal(g Gas) InternalGas {
	return GasToInternal.Convert(g)
}

// ToGas converts internal gas to gas, truncating fractional units.
func ToGas(g InternalGas) Gas {
	return InternalToGas.Convert(g)
}
