package tomasulo

import (
	"math"

	"github.com/sarchlab/tomasim/insts"
)

// mapTableSize covers every register id a record can carry.
const mapTableSize = math.MaxUint8 + 1

// MapTable records, per architectural register, the in-flight instruction
// that will produce the register's next value.
type MapTable struct {
	producers [mapTableSize]insts.Tag
}

// NewMapTable creates a map table with no producers.
func NewMapTable() *MapTable {
	return &MapTable{}
}

// Producer returns the pending producer of a register, or NoTag.
func (m *MapTable) Producer(reg uint8) insts.Tag {
	return m.producers[reg]
}

// Set renames a register to a new producer. The previous producer, if any,
// is overwritten.
func (m *MapTable) Set(reg uint8, tag insts.Tag) {
	m.producers[reg] = tag
}

// ClearIfProducer clears the entry of a register only if it still names
// the given producer. It returns true if the entry was cleared.
func (m *MapTable) ClearIfProducer(reg uint8, tag insts.Tag) bool {
	if m.producers[reg] != tag {
		return false
	}
	m.producers[reg] = insts.NoTag
	return true
}

// References returns true if any register names the producer.
func (m *MapTable) References(tag insts.Tag) bool {
	for _, p := range m.producers {
		if p == tag {
			return true
		}
	}
	return false
}

// Reset clears every entry.
func (m *MapTable) Reset() {
	m.producers = [mapTableSize]insts.Tag{}
}
