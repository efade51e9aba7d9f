// Package costtable prices interpreter execution with tiered per-unit costs.
//
// A Table is loaded once per configuration and never modified afterwards,
// so a single instance is shared by any number of interpreters without locking.
package costtable

// Costs charged below the lowest tier of each dimension, and by tables without tiers.
const (
	InstructionTierDefault uint64 = 1
	StackHeightTierDefault uint64 = 1
	StackSizeTierDefault   uint64 = 1
)

// Table holds the tiers for instruction count, stack height and stack size.
// The zero value charges the dimension defaults for every counter.
type Table struct {
	instructions Tiers
	stackHeight  Tiers
	stackSize    Tiers
}

// NewTable builds a table from start -> cost mappings, one per dimension.
// Nil or empty mappings charge the dimension default for every counter.
func NewTable(instructions, stackHeight, stackSize map[uint64]uint64) *Table {
	return NewTableFromTiers(NewTiers(instructions), NewTiers(stackHeight), NewTiers(stackSize))
}

// NewTableFromTiers builds a table from already constructed tiers.
func NewTableFromTiers(instructions, stackHeight, stackSize Tiers) *Table {
	return &Table{
		instructions: instructions,
		stackHeight:  stackHeight,
		stackSize:    stackSize,
	}
}

func (t *Table) Instructions() Tiers { return t.instructions }

func (t *Table) StackHeight() Tiers { return t.stackHeight }

func (t *Table) StackSize() Tiers { return t.stackSize }

// InstructionTier returns the cost per instruction after count instructions were executed
// and the count at which the next tier starts.
func (t *Table) InstructionTier(count uint64) (cost, next uint64, bounded bool) {
	return t.instructions.lookup(InstructionTierDefault, count)
}

// StackHeightTier returns the cost per pushed value at the given stack height
// and the height at which the next tier starts.
func (t *Table) StackHeightTier(height uint64) (cost, next uint64, bounded bool) {
	return t.stackHeight.lookup(StackHeightTierDefault, height)
}

// StackSizeTier returns the cost per byte at the given stack size
// and the size at which the next tier starts.
func (t *Table) StackSizeTier(size uint64) (cost, next uint64, bounded bool) {
	return t.stackSize.lookup(StackSizeTierDefault, size)
}

// InstructionCursor returns a cursor over instruction tiers.
func (t *Table) InstructionCursor() *Cursor {
	return newCursor(t.instructions, InstructionTierDefault)
}

// StackHeightCursor returns a cursor over stack height tiers.
func (t *Table) StackHeightCursor() *Cursor {
	return newCursor(t.stackHeight, StackHeightTierDefault)
}

// StackSizeCursor returns a cursor over stack size tiers.
func (t *Table) StackSizeCursor() *Cursor {
	return newCursor(t.stackSize, StackSizeTierDefault)
}

// Equal returns true if both tables charge the same in every dimension.
func (t *Table) Equal(o *Table) bool {
	return t.instructions.Equal(o.instructions) &&
		t.stackHeight.Equal(o.stackHeight) &&
		t.stackSize.Equal(o.stackSize)
}
