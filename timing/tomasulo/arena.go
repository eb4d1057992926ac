package tomasulo

import (
	"fmt"

	"github.com/sarchlab/tomasim/insts"
)

// Arena owns every instruction fetched by the scheduler. Records are copied
// in, so the feed's own records are never modified. Each copy gets a stable
// tag; the queue, stations, units, bus and map table refer to records only
// through tags.
type Arena struct {
	records []*insts.Instruction
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Add stores a copy of the record with its scheduling state cleared and
// returns the tag of the copy.
func (a *Arena) Add(inst *insts.Instruction) insts.Tag {
	c := *inst
	c.DispatchCycle = 0
	c.IssueCycle = 0
	c.ExecuteCycle = 0
	c.CDBCycle = 0
	c.Q = [3]insts.Tag{}

	a.records = append(a.records, &c)
	return insts.Tag(len(a.records))
}

// Get returns the record behind a tag.
func (a *Arena) Get(tag insts.Tag) *insts.Instruction {
	if tag == insts.NoTag || int(tag) > len(a.records) {
		panic(fmt.Sprintf("tomasulo: invalid tag %d", tag))
	}
	return a.records[tag-1]
}

// Len returns the number of records in the arena.
func (a *Arena) Len() int {
	return len(a.records)
}

// Records returns all records in fetch order.
func (a *Arena) Records() []*insts.Instruction {
	return a.records
}

// Reset drops all records.
func (a *Arena) Reset() {
	a.records = nil
}
