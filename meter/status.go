// Package meter tracks gas consumed by a single execution against its budget.
package meter

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-costtables/costtable"
	"github.com/spacemeshos/go-costtables/log"
	"github.com/spacemeshos/go-costtables/pricing"
	"github.com/spacemeshos/go-costtables/units"
)

// ErrOutOfGas is returned when a charge exceeds the remaining budget.
var ErrOutOfGas = errors.New("out of gas")

// MaxBudget is the largest budget in internal gas.
// Larger budgets are lowered to it so that three charge components never overflow together.
const MaxBudget = math.MaxUint64 / 4

const (
	dimInstruction = "instruction"
	dimStackHeight = "stack_height"
	dimStackSize   = "stack_size"
	dimMemory      = "memory"
)

// Opt is for changing Status during initialization.
type Opt func(*Status)

// WithLogger sets logger for Status.
func WithLogger(logger *zap.Logger) Opt {
	return func(s *Status) {
		s.logger = logger
	}
}

// Status charges execution steps against a budget using tiered costs from a table.
//
// The interpreter decides what to charge and when. Status keeps the counters the tiers are
// indexed by: executed instructions and the high water marks of stack height and stack size.
// Status is not safe for concurrent use, every execution owns its own instance.
type Status struct {
	logger *zap.Logger

	budget    units.InternalGas
	remaining units.InternalGas

	instructions *costtable.Cursor
	stackHeight  *costtable.Cursor
	stackSize    *costtable.Cursor

	instructionsExecuted uint64
	stackHeightCurrent   uint64
	stackHeightHigh      uint64
	stackSizeCurrent     uint64
	stackSizeHigh        uint64
}

// New returns Status with budget converted to internal gas.
func New(table *costtable.Table, budget units.Gas, opts ...Opt) *Status {
	internal := units.ToInternal(budget)
	if internal.Uint64() > MaxBudget {
		internal = units.New[units.InternalGasUnit](MaxBudget)
	}
	s := &Status{
		logger:       log.NewNop(),
		budget:       internal,
		remaining:    internal,
		instructions: table.InstructionCursor(),
		stackHeight:  table.StackHeightCursor(),
		stackSize:    table.StackSizeCursor(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Charge accounts for numInstructions executed instructions that pushed and popped values
// from the stack and grew or shrank it by incrSize and decrSize bytes.
//
// Instructions are charged at the tier of the total number of executed instructions,
// pushed values at the tier of the highest stack height and added bytes at the tier
// of the highest stack size observed so far.
func (s *Status) Charge(numInstructions, pushes, pops, incrSize, decrSize uint64) error {
	s.instructionsExecuted = addSaturating(s.instructionsExecuted, numInstructions)
	s.stackHeightCurrent = subSaturating(addSaturating(s.stackHeightCurrent, pushes), pops)
	s.stackHeightHigh = max(s.stackHeightHigh, s.stackHeightCurrent)
	s.stackSizeCurrent = subSaturating(addSaturating(s.stackSizeCurrent, incrSize), decrSize)
	s.stackSizeHigh = max(s.stackSizeHigh, s.stackSizeCurrent)

	instructionCost := s.tierCost(s.instructions, dimInstruction, s.instructionsExecuted)
	heightCost := s.tierCost(s.stackHeight, dimStackHeight, s.stackHeightHigh)
	sizeCost := s.tierCost(s.stackSize, dimStackSize, s.stackSizeHigh)

	instructionGas := units.Mul(
		units.New[units.Per[units.InternalGasUnit, units.InstructionUnit]](instructionCost),
		units.New[units.InstructionUnit](numInstructions),
	)
	memoryGas := units.Mul(
		units.New[units.Per[units.InternalGasUnit, units.ByteUnit]](sizeCost),
		units.New[units.ByteUnit](incrSize),
	)
	heightGas := units.Mul(
		units.New[units.Per[units.InternalGasUnit, units.ValueUnit]](heightCost),
		units.New[units.ValueUnit](pushes),
	)
	return s.deduct(costtable.NewGasCost(clamp(instructionGas), clamp(memoryGas), clamp(heightGas)))
}

// ChargeGas deducts a precomputed cost, for example of a native function.
func (s *Status) ChargeGas(cost costtable.GasCost) error {
	return s.deduct(costtable.NewGasCost(
		clamp(units.New[units.InternalGasUnit](cost.Instruction)),
		clamp(units.New[units.InternalGasUnit](cost.Memory)),
		clamp(units.New[units.InternalGasUnit](cost.StackHeight)),
	))
}

// ChargePublish deducts the cost of publishing size bytes priced by eq.
// Prices outside of the equation bounds are returned without charging anything.
func (s *Status) ChargePublish(eq pricing.PublishEquation, size units.Bytes) error {
	cost, err := eq.Calculate(size)
	if err != nil {
		return fmt.Errorf("price publish of %s bytes: %w", size, err)
	}
	return s.deduct(costtable.NewGasCost(0, clamp(cost), 0))
}

func (s *Status) tierCost(cursor *costtable.Cursor, dim string, counter uint64) uint64 {
	cost, moved := cursor.Cost(counter)
	if moved {
		tierMoves.WithLabelValues(dim).Inc()
		s.logger.Debug("moved to another tier",
			zap.String("dimension", dim),
			zap.Uint64("counter", counter),
			zap.Uint64("cost", cost),
		)
	}
	return cost
}

func (s *Status) deduct(cost costtable.GasCost) error {
	amount := cost.TotalInternal()
	remaining, ok := s.remaining.CheckedSub(amount)
	if !ok {
		outOfGas.WithLabelValues().Inc()
		s.logger.Debug("out of gas",
			zap.Object("cost", cost),
			amount.Field("charge"),
			s.remaining.Field("remaining"),
			zap.Uint64("instructions", s.instructionsExecuted),
		)
		err := fmt.Errorf("%w: charge %s remaining %s", ErrOutOfGas, amount, s.remaining)
		s.remaining = units.InternalGas{}
		return err
	}
	s.remaining = remaining
	chargeSize.WithLabelValues().Observe(float64(amount.Uint64()))
	chargedGas.WithLabelValues(dimInstruction).Add(float64(cost.Instruction))
	chargedGas.WithLabelValues(dimMemory).Add(float64(cost.Memory))
	chargedGas.WithLabelValues(dimStackHeight).Add(float64(cost.StackHeight))
	return nil
}

// Budget returns the budget in internal gas.
func (s *Status) Budget() units.InternalGas {
	return s.budget
}

// RemainingInternal returns the unspent budget in internal gas.
func (s *Status) RemainingInternal() units.InternalGas {
	return s.remaining
}

// Remaining returns the unspent budget in gas, truncated.
func (s *Status) Remaining() units.Gas {
	return units.ToGas(s.remaining)
}

// Used returns the spent budget in gas, truncated.
func (s *Status) Used() units.Gas {
	return units.ToGas(s.budget.Sub(s.remaining))
}

// InstructionsExecuted returns total number of charged instructions.
func (s *Status) InstructionsExecuted() uint64 {
	return s.instructionsExecuted
}

// StackHeightHighWaterMark returns the highest stack height observed.
func (s *Status) StackHeightHighWaterMark() uint64 {
	return s.stackHeightHigh
}

// StackSizeHighWaterMark returns the largest stack size in bytes observed.
func (s *Status) StackSizeHighWaterMark() uint64 {
	return s.stackSizeHigh
}

// clamp limits a component to one more than the largest budget.
// Any such charge is out of gas and three of them fit into uint64.
func clamp(v units.InternalGas) uint64 {
	return min(v.Uint64(), MaxBudget+1)
}

func addSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func subSaturating(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
