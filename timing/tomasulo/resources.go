package tomasulo

import (
	"fmt"

	"github.com/sarchlab/tomasim/insts"
)

// SlotPool is a fixed-size group of slots that each hold at most one tag.
// Reservation stations and functional units are both slot pools.
type SlotPool struct {
	name  string
	slots []insts.Tag
}

// NewSlotPool creates a pool with size empty slots.
func NewSlotPool(name string, size int) *SlotPool {
	return &SlotPool{
		name:  name,
		slots: make([]insts.Tag, size),
	}
}

// Name returns the pool name used in log messages.
func (p *SlotPool) Name() string {
	return p.name
}

// Len returns the number of slots.
func (p *SlotPool) Len() int {
	return len(p.slots)
}

// At returns the tag held by slot i, or NoTag.
func (p *SlotPool) At(i int) insts.Tag {
	return p.slots[i]
}

// FirstFree returns the lowest-numbered empty slot.
func (p *SlotPool) FirstFree() (int, bool) {
	for i, t := range p.slots {
		if t == insts.NoTag {
			return i, true
		}
	}
	return -1, false
}

// Assign places a tag into slot i. The slot must be empty.
func (p *SlotPool) Assign(i int, tag insts.Tag) {
	if p.slots[i] != insts.NoTag {
		panic(fmt.Sprintf("tomasulo: %s slot %d already holds tag %d",
			p.name, i, p.slots[i]))
	}
	p.slots[i] = tag
}

// Remove empties the slot holding tag. It returns false if no slot holds
// the tag.
func (p *SlotPool) Remove(tag insts.Tag) bool {
	for i, t := range p.slots {
		if t == tag {
			p.slots[i] = insts.NoTag
			return true
		}
	}
	return false
}

// Occupied returns the number of non-empty slots.
func (p *SlotPool) Occupied() int {
	n := 0
	for _, t := range p.slots {
		if t != insts.NoTag {
			n++
		}
	}
	return n
}

// Empty returns true if every slot is empty.
func (p *SlotPool) Empty() bool {
	return p.Occupied() == 0
}

// Tags returns the tags of the occupied slots in slot order.
func (p *SlotPool) Tags() []insts.Tag {
	tags := make([]insts.Tag, 0, len(p.slots))
	for _, t := range p.slots {
		if t != insts.NoTag {
			tags = append(tags, t)
		}
	}
	return tags
}

// Reset empties every slot.
func (p *SlotPool) Reset() {
	for i := range p.slots {
		p.slots[i] = insts.NoTag
	}
}

// Bus is the common data bus. It carries at most one broadcasting
// instruction per cycle.
type Bus struct {
	tag insts.Tag
}

// Busy returns true if an instruction is broadcasting.
func (b *Bus) Busy() bool {
	return b.tag != insts.NoTag
}

// Tag returns the broadcasting instruction, or NoTag.
func (b *Bus) Tag() insts.Tag {
	return b.tag
}

// Put starts a broadcast. The bus must be free.
func (b *Bus) Put(tag insts.Tag) {
	if b.Busy() {
		panic(fmt.Sprintf("tomasulo: bus already carries tag %d", b.tag))
	}
	b.tag = tag
}

// Clear ends the current broadcast.
func (b *Bus) Clear() {
	b.tag = insts.NoTag
}
