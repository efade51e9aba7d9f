package pricing_test

import (
	"errors"
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/go-costtables/pricing"
	"github.com/spacemeshos/go-costtables/units"
)

type equation = pricing.LinearEquation[units.InternalGasUnit, units.ByteUnit]

func newEquation(offset, slope, min, max uint64) equation {
	return pricing.NewLinearEquation(
		units.New[units.Per[units.InternalGasUnit, units.ByteUnit]](slope),
		units.New[units.InternalGasUnit](offset),
		units.New[units.InternalGasUnit](min),
		units.New[units.InternalGasUnit](max),
	)
}

func TestCalculate(t *testing.T) {
	eq := newEquation(100, 5, 0, 1000)

	t.Run("InRange", func(t *testing.T) {
		y, err := eq.Calculate(units.New[units.ByteUnit](50))
		require.NoError(t, err)
		require.Equal(t, uint64(350), y.Uint64())
	})
	t.Run("AtMaximum", func(t *testing.T) {
		y, err := eq.Calculate(units.New[units.ByteUnit](180))
		require.NoError(t, err)
		require.Equal(t, uint64(1000), y.Uint64())
	})
	t.Run("AboveMaximum", func(t *testing.T) {
		_, err := eq.Calculate(units.New[units.ByteUnit](1000))
		require.ErrorIs(t, err, pricing.ErrAboveMaximum)
		var above *pricing.AboveMaximumError
		require.ErrorAs(t, err, &above)
		require.Equal(t, uint64(5100), above.Value)
		require.Equal(t, uint64(1000), above.Max)
		require.EqualError(t, err, "value 5100 is above maximum allowed 1000")
	})
	t.Run("BelowMinimum", func(t *testing.T) {
		eq := newEquation(100, 5, 200, 1000)
		y, err := eq.Calculate(units.New[units.ByteUnit](20))
		require.NoError(t, err)
		require.Equal(t, uint64(200), y.Uint64())

		_, err = eq.Calculate(units.New[units.ByteUnit](19))
		require.ErrorIs(t, err, pricing.ErrBelowMinimum)
		require.False(t, errors.Is(err, pricing.ErrAboveMaximum))
		var below *pricing.BelowMinimumError
		require.ErrorAs(t, err, &below)
		require.Equal(t, uint64(195), below.Value)
		require.Equal(t, uint64(200), below.Min)
		require.EqualError(t, err, "value 195 is below minimum allowed 200")
	})
	t.Run("Overflow", func(t *testing.T) {
		_, err := eq.Calculate(units.Max[units.ByteUnit]())
		var above *pricing.AboveMaximumError
		require.ErrorAs(t, err, &above)
		require.Equal(t, uint64(math.MaxUint64), above.Value)

		unbounded := newEquation(1, math.MaxUint64, 0, math.MaxUint64)
		y, err := unbounded.Calculate(units.New[units.ByteUnit](2))
		require.NoError(t, err)
		require.Equal(t, units.Max[units.InternalGasUnit](), y)
	})
}

func TestCalculateRange(t *testing.T) {
	f := fuzz.NewWithSeed(42)
	for i := 0; i < 1000; i++ {
		var offset, slope, x, lo, hi uint32
		f.Fuzz(&offset)
		f.Fuzz(&slope)
		f.Fuzz(&x)
		f.Fuzz(&lo)
		f.Fuzz(&hi)
		// all values fit into uint64 without saturation
		min, max := uint64(lo)<<16, uint64(hi)<<16
		eq := newEquation(uint64(offset), uint64(slope), min, max)
		expected := uint64(offset) + uint64(slope)*uint64(x)

		y, err := eq.Calculate(units.New[units.ByteUnit](uint64(x)))
		switch {
		case expected < min:
			require.ErrorIs(t, err, pricing.ErrBelowMinimum)
		case expected > max:
			require.ErrorIs(t, err, pricing.ErrAboveMaximum)
		default:
			require.NoError(t, err)
			require.Equal(t, expected, y.Uint64())
		}
	}
}

func TestCalculateDeterministic(t *testing.T) {
	eq := newEquation(7, 3, 10, 100)
	for x := uint64(0); x < 50; x++ {
		y1, err1 := eq.Calculate(units.New[units.ByteUnit](x))
		y2, err2 := eq.Calculate(units.New[units.ByteUnit](x))
		require.Equal(t, y1, y2)
		require.Equal(t, err1, err2)
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, newEquation(0, 1, 10, 10).Validate())
	require.NoError(t, newEquation(0, 1, 0, 10).Validate())
	require.ErrorIs(t, newEquation(0, 1, 11, 10).Validate(), pricing.ErrInvalidBounds)

	// invalid equation rejects every input
	eq := newEquation(0, 1, 11, 10)
	for _, x := range []uint64{0, 10, 11, 1000} {
		_, err := eq.Calculate(units.New[units.ByteUnit](x))
		require.Error(t, err)
	}
}

func TestAccessors(t *testing.T) {
	eq := newEquation(1, 2, 3, 4)
	require.Equal(t, uint64(1), eq.Offset().Uint64())
	require.Equal(t, uint64(2), eq.Slope().Uint64())
	require.Equal(t, uint64(3), eq.Min().Uint64())
	require.Equal(t, uint64(4), eq.Max().Uint64())
}

func TestDefaultEquations(t *testing.T) {
	eqs := pricing.DefaultEquations()
	require.NoError(t, eqs.Validate())

	cost, err := eqs.PublishCost(units.New[units.ByteUnit](1000))
	require.NoError(t, err)
	require.Equal(t, pricing.PublishBaseCost+1000*pricing.PublishCostPerByte, cost.Uint64())

	cost, err = eqs.PublishCost(units.Bytes{})
	require.NoError(t, err)
	require.Equal(t, pricing.PublishMinCost, cost.Uint64())

	_, err = eqs.PublishCost(units.New[units.ByteUnit](3 << 20))
	require.ErrorIs(t, err, pricing.ErrAboveMaximum)

	eqs.Publish = newEquation(0, 1, 5, 4)
	require.ErrorIs(t, eqs.Validate(), pricing.ErrInvalidBounds)
}
