// Package insts provides the instruction records consumed by the Tomasulo
// core.
//
// A record carries the immutable fields produced by the trace (operation
// class, architectural registers, program-order index and PC) together with
// the scheduling stamps and dependency slots that the scheduler fills in.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode("icomp 0x400100 in=1,2 out=3")
//	fmt.Printf("Class: %v, In: %v, Out: %v\n", inst.Class, inst.In, inst.Out)
package insts

import "fmt"

// NumRegs is the number of architectural registers. Register id 0 means
// "no register".
const NumRegs = 128

// Class represents an operation class.
type Class uint8

// Operation classes.
const (
	ClassUnknown Class = iota
	ClassICOMP         // Integer computation
	ClassFCOMP         // Floating-point computation
	ClassLOAD          // Load
	ClassSTORE         // Store
	ClassCBRANCH       // Conditional branch
	ClassUBRANCH       // Unconditional branch, jump or call
	ClassTRAP          // Trap
)

var classNames = map[Class]string{
	ClassUnknown: "unknown",
	ClassICOMP:   "icomp",
	ClassFCOMP:   "fcomp",
	ClassLOAD:    "load",
	ClassSTORE:   "store",
	ClassCBRANCH: "cbranch",
	ClassUBRANCH: "ubranch",
	ClassTRAP:    "trap",
}

// String returns the trace mnemonic of the class.
func (c Class) String() string {
	if name, ok := classNames[c]; ok {
		return name
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// Tag identifies an in-flight instruction inside the scheduler. Tags are
// 1-based so that the zero value, NoTag, means "no producer".
type Tag uint32

// NoTag marks a ready operand or an empty slot.
const NoTag Tag = 0

// Instruction is a single trace record.
type Instruction struct {
	Class Class    // Operation class
	In    [3]uint8 // Input registers, 0 = none
	Out   [2]uint8 // Output registers, 0 = none
	Index uint64   // Program-order index
	PC    uint64   // Program counter

	// Scheduling stamps. Zero means the stage has not been reached.
	DispatchCycle uint64
	IssueCycle    uint64
	ExecuteCycle  uint64
	CDBCycle      uint64

	// Q holds the pending producer of each input operand.
	Q [3]Tag
}

// IsBranch returns true for conditional and unconditional branches.
func (i *Instruction) IsBranch() bool {
	return i.Class == ClassCBRANCH || i.Class == ClassUBRANCH
}

// Ready returns true if no operand is waiting for a producer.
func (i *Instruction) Ready() bool {
	return i.Q[0] == NoTag && i.Q[1] == NoTag && i.Q[2] == NoTag
}

// String formats the instruction the way the trace file spells it.
func (i *Instruction) String() string {
	return fmt.Sprintf("%s 0x%x in=%d,%d,%d out=%d,%d (%d)",
		i.Class, i.PC, i.In[0], i.In[1], i.In[2], i.Out[0], i.Out[1], i.Index)
}
