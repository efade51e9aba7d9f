// Package units defines gas quantities tagged with the unit they are measured in.
//
// A Quantity[U] carries its unit only at the type level. Quantities of different
// units are distinct, non-convertible Go types, so the only way to move a value
// from one unit to another is through a Ratio or Mul.
package units

import (
	"math"
	"strconv"

	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

type (
	// InternalGasUnit is the unit the interpreter charges in.
	InternalGasUnit struct{}
	// GasUnit is the unit exposed to users and budgets.
	GasUnit struct{}
	// ByteUnit measures sizes of priced blobs.
	ByteUnit struct{}
	// InstructionUnit counts executed instructions.
	InstructionUnit struct{}
	// ValueUnit counts values pushed on the operand stack.
	ValueUnit struct{}
	// Per is the unit of Y measured per one X.
	Per[Y, X any] struct{}
)

// Quantity is an amount measured in unit U.
type Quantity[U any] struct {
	// makes Quantity[A] and Quantity[B] non-convertible.
	_   [0]U
	val uint64
}

type (
	InternalGas        = Quantity[InternalGasUnit]
	Gas                = Quantity[GasUnit]
	Bytes              = Quantity[ByteUnit]
	Instructions       = Quantity[InstructionUnit]
	Values             = Quantity[ValueUnit]
	InternalGasPerByte = Quantity[Per[InternalGasUnit, ByteUnit]]
)

// New returns quantity of v units.
func New[U any](v uint64) Quantity[U] {
	return Quantity[U]{val: v}
}

// Max returns the largest representable quantity of unit U.
func Max[U any]() Quantity[U] {
	return Quantity[U]{val: math.MaxUint64}
}

// Uint64 returns the raw amount.
func (q Quantity[U]) Uint64() uint64 {
	return q.val
}

// IsZero returns true if amount is zero.
func (q Quantity[U]) IsZero() bool {
	return q.val == 0
}

// Add returns q+o, saturating at the maximum value.
func (q Quantity[U]) Add(o Quantity[U]) Quantity[U] {
	var sum uint256.Int
	sum.Add(uint256.NewInt(q.val), uint256.NewInt(o.val))
	return Quantity[U]{val: saturate(&sum)}
}

// Sub returns q-o, saturating at zero.
func (q Quantity[U]) Sub(o Quantity[U]) Quantity[U] {
	rst, ok := q.CheckedSub(o)
	if !ok {
		return Quantity[U]{}
	}
	return rst
}

// CheckedSub returns q-o and false if o is larger than q.
func (q Quantity[U]) CheckedSub(o Quantity[U]) (Quantity[U], bool) {
	if o.val > q.val {
		return Quantity[U]{}, false
	}
	return Quantity[U]{val: q.val - o.val}, true
}

// Cmp returns -1, 0 or 1 if q is less than, equal to or greater than o.
func (q Quantity[U]) Cmp(o Quantity[U]) int {
	switch {
	case q.val < o.val:
		return -1
	case q.val > o.val:
		return 1
	}
	return 0
}

// Less is a shortcut for q.Cmp(o) < 0.
func (q Quantity[U]) Less(o Quantity[U]) bool {
	return q.val < o.val
}

func (q Quantity[U]) String() string {
	return strconv.FormatUint(q.val, 10)
}

// Field returns the amount as a log field.
func (q Quantity[U]) Field(name string) zap.Field {
	return zap.Uint64(name, q.val)
}

// Mul multiplies a rate of Y per X by an amount of X, saturating at the maximum value.
func Mul[Y, X any](rate Quantity[Per[Y, X]], x Quantity[X]) Quantity[Y] {
	var product uint256.Int
	product.Mul(uint256.NewInt(rate.val), uint256.NewInt(x.val))
	return Quantity[Y]{val: saturate(&product)}
}

func saturate(v *uint256.Int) uint64 {
	if !v.IsUint64() {
		return math.MaxUint64
	}
	return v.Uint64()
}
