package costtable

import (
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-costtables/units"
)

// GasCost is a single charge split by what it pays for:
//   - instruction: time spent executing the instruction,
//   - memory: bytes the instruction adds to the stack,
//   - stack height: values pushed, regardless of their size.
type GasCost struct {
	Instruction uint64
	Memory      uint64
	StackHeight uint64
}

func NewGasCost(instruction, memory, stackHeight uint64) GasCost {
	return GasCost{
		Instruction: instruction,
		Memory:      memory,
		StackHeight: stackHeight,
	}
}

// Total returns sum of all components.
// Callers must ensure components can't overflow uint64 together.
func (c GasCost) Total() uint64 {
	return c.Instruction + c.Memory + c.StackHeight
}

// TotalInternal is the same as Total, measured in internal gas.
func (c GasCost) TotalInternal() units.InternalGas {
	return units.New[units.InternalGasUnit](c.Total())
}

// MarshalLogObject implements logging interface.
func (c GasCost) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddUint64("instruction", c.Instruction)
	encoder.AddUint64("memory", c.Memory)
	encoder.AddUint64("stack_height", c.StackHeight)
	return nil
}
