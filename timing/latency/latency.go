// Package latency provides the timing parameters of the Tomasulo core and
// the classification of operation classes onto functional units.
//
// The default values reproduce the reference configuration and can be
// changed via TimingConfig.
package latency

import (
	"github.com/sarchlab/tomasim/insts"
)

// Table provides latency and resource-class lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table with default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing
// configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execution latency in cycles of the functional
// unit that executes the class. Classes that never execute return 0.
func (t *Table) GetLatency(class insts.Class) uint64 {
	switch {
	case t.UsesIntFU(class):
		return t.config.IntFULatency
	case t.UsesFPFU(class):
		return t.config.FPFULatency
	default:
		return 0
	}
}

// UsesIntFU returns true if the class executes on an integer unit.
func (t *Table) UsesIntFU(class insts.Class) bool {
	switch class {
	case insts.ClassICOMP, insts.ClassLOAD, insts.ClassSTORE:
		return true
	default:
		return false
	}
}

// UsesFPFU returns true if the class executes on a floating-point unit.
func (t *Table) UsesFPFU(class insts.Class) bool {
	return class == insts.ClassFCOMP
}

// WritesCDB returns true if the class broadcasts a result on the common
// data bus.
func (t *Table) WritesCDB(class insts.Class) bool {
	switch class {
	case insts.ClassICOMP, insts.ClassLOAD, insts.ClassFCOMP:
		return true
	default:
		return false
	}
}

// IsStoreOp returns true if the class is a store.
func (t *Table) IsStoreOp(class insts.Class) bool {
	return class == insts.ClassSTORE
}

// IsBranchOp returns true if the class is a conditional or unconditional
// branch.
func (t *Table) IsBranchOp(class insts.Class) bool {
	return class == insts.ClassCBRANCH || class == insts.ClassUBRANCH
}

// IsTrap returns true if the class is a trap.
func (t *Table) IsTrap(class insts.Class) bool {
	return class == insts.ClassTRAP
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
