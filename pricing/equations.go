package pricing

import (
	"fmt"

	"github.com/spacemeshos/go-costtables/units"
)

// PublishEquation prices publishing a package in internal gas per published byte.
type PublishEquation = LinearEquation[units.InternalGasUnit, units.ByteUnit]

const (
	// PublishCostPerByte is charged for every byte of a published package.
	PublishCostPerByte uint64 = 80
	// PublishBaseCost is charged once for every publish.
	PublishBaseCost uint64 = 52_000
	// PublishMinCost rejects equations that would make publishing free.
	PublishMinCost = PublishBaseCost
	// PublishMaxCost bounds publishing at roughly 2MiB of package bytes.
	PublishMaxCost = PublishBaseCost + PublishCostPerByte*(2<<20)
)

// DefaultPublish returns equation built from the default publish constants.
func DefaultPublish() PublishEquation {
	return NewLinearEquation(
		units.New[units.Per[units.InternalGasUnit, units.ByteUnit]](PublishCostPerByte),
		units.New[units.InternalGasUnit](PublishBaseCost),
		units.New[units.InternalGasUnit](PublishMinCost),
		units.New[units.InternalGasUnit](PublishMaxCost),
	)
}

// Equations is a set of equations for all operations priced by size.
type Equations struct {
	Publish PublishEquation
}

// DefaultEquations returns equations with default constants.
func DefaultEquations() Equations {
	return Equations{Publish: DefaultPublish()}
}

// Validate checks bounds of every equation.
func (e Equations) Validate() error {
	if err := e.Publish.Validate(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// PublishCost returns cost of publishing a package of the given size.
func (e Equations) PublishCost(size units.Bytes) (units.InternalGas, error) {
	cost, err := e.Publish.Calculate(size)
	if err != nil {
		return units.InternalGas{}, fmt.Errorf("publish %s bytes: %w", size, err)
	}
	return cost, nil
}
