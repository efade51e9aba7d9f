// Package pricing evaluates costs that grow linearly with the size of the input.
package pricing

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-costtables/units"
)

var (
	// ErrBelowMinimum is matched by errors.Is for every *BelowMinimumError.
	ErrBelowMinimum = errors.New("below minimum")
	// ErrAboveMaximum is matched by errors.Is for every *AboveMaximumError.
	ErrAboveMaximum = errors.New("above maximum")
	// ErrInvalidBounds is returned by Validate if min is larger than max.
	ErrInvalidBounds = errors.New("minimum is larger than maximum")
)

// BelowMinimumError is returned if the computed value is less than the configured minimum.
type BelowMinimumError struct {
	Value uint64
	Min   uint64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("value %d is below minimum allowed %d", e.Value, e.Min)
}

func (e *BelowMinimumError) Is(target error) bool {
	return target == ErrBelowMinimum
}

// AboveMaximumError is returned if the computed value is greater than the configured maximum.
type AboveMaximumError struct {
	Value uint64
	Max   uint64
}

func (e *AboveMaximumError) Error() string {
	return fmt.Sprintf("value %d is above maximum allowed %d", e.Value, e.Max)
}

func (e *AboveMaximumError) Is(target error) bool {
	return target == ErrAboveMaximum
}

// LinearEquation computes y = slope*x + offset, measured in Y for an input measured in X.
//
// For example the price of publishing a package is charged per byte with a base cost:
// cost = cost_per_byte * num_bytes + base_cost, where cost_per_byte is measured in Y per X.
//
// Results outside of [min, max] are rejected rather than clamped.
type LinearEquation[Y, X any] struct {
	offset units.Quantity[Y]
	slope  units.Quantity[units.Per[Y, X]]
	min    units.Quantity[Y]
	max    units.Quantity[Y]
}

// NewLinearEquation creates equation. Bounds are not validated, see Validate.
func NewLinearEquation[Y, X any](
	slope units.Quantity[units.Per[Y, X]],
	offset, min, max units.Quantity[Y],
) LinearEquation[Y, X] {
	return LinearEquation[Y, X]{
		offset: offset,
		slope:  slope,
		min:    min,
		max:    max,
	}
}

func (e LinearEquation[Y, X]) Offset() units.Quantity[Y] { return e.offset }

func (e LinearEquation[Y, X]) Slope() units.Quantity[units.Per[Y, X]] { return e.slope }

func (e LinearEquation[Y, X]) Min() units.Quantity[Y] { return e.min }

func (e LinearEquation[Y, X]) Max() units.Quantity[Y] { return e.max }

// Validate returns ErrInvalidBounds if min is larger than max.
// Such an equation rejects every input.
func (e LinearEquation[Y, X]) Validate() error {
	if e.max.Less(e.min) {
		return fmt.Errorf("%w: min %s max %s", ErrInvalidBounds, e.min, e.max)
	}
	return nil
}

// Calculate returns slope*x + offset.
// Intermediate results saturate at the maximal uint64, which is reported as AboveMaximumError
// unless max is the maximal uint64 itself.
func (e LinearEquation[Y, X]) Calculate(x units.Quantity[X]) (units.Quantity[Y], error) {
	y := e.offset.Add(units.Mul(e.slope, x))
	if y.Less(e.min) {
		return units.Quantity[Y]{}, &BelowMinimumError{Value: y.Uint64(), Min: e.min.Uint64()}
	}
	if e.max.Less(y) {
		return units.Quantity[Y]{}, &AboveMaximumError{Value: y.Uint64(), Max: e.max.Uint64()}
	}
	return y, nil
}
