package tomasulo

import (
	"fmt"

	"github.com/sarchlab/tomasim/insts"
)

// cdbToRetire ends the broadcast on the bus. Waiting consumers observe the
// result and the producer leaves the map table.
func (s *Scheduler) cdbToRetire() {
	tag := s.bus.Tag()
	if tag == insts.NoTag {
		return
	}

	inst := s.arena.Get(tag)
	s.release(tag, inst)
	s.bus.Clear()

	if s.mapTable.References(tag) {
		panic(fmt.Sprintf("tomasulo: map table still names retired %v", inst))
	}

	s.trace("retire", inst)
}

// release clears every dependency slot and map-table entry that still names
// the producer.
func (s *Scheduler) release(tag insts.Tag, producer *insts.Instruction) {
	s.wakeUp(s.intRS, tag)
	s.wakeUp(s.fpRS, tag)

	for _, reg := range producer.Out {
		if reg != 0 {
			s.mapTable.ClearIfProducer(reg, tag)
		}
	}
}

func (s *Scheduler) wakeUp(stations *SlotPool, producer insts.Tag) {
	for _, t := range stations.Tags() {
		inst := s.arena.Get(t)
		for j := range inst.Q {
			if inst.Q[j] == producer {
				inst.Q[j] = insts.NoTag
			}
		}
	}
}

// executeToCDB retires finished stores and puts the oldest finished
// instruction on the bus.
func (s *Scheduler) executeToCDB() {
	if s.bus.Busy() {
		return
	}

	s.retireStores()

	oldest := insts.NoTag
	var oldestInst *insts.Instruction
	finished := 0

	for _, units := range []*SlotPool{s.intFU, s.fpFU} {
		for _, t := range units.Tags() {
			inst := s.arena.Get(t)
			if !s.table.WritesCDB(inst.Class) || !s.finished(inst) {
				continue
			}

			finished++
			if oldestInst == nil || inst.Index < oldestInst.Index {
				oldest, oldestInst = t, inst
			}
		}
	}

	if oldestInst == nil {
		return
	}

	s.stats.BusConflicts += uint64(finished - 1)

	oldestInst.CDBCycle = s.cycle
	s.bus.Put(oldest)
	s.leave(oldest)
	s.stats.Broadcasts++

	s.trace("broadcast", oldestInst, "contenders", finished)
}

// retireStores frees every finished store from its unit and station. Stores
// produce no value and never use the bus.
func (s *Scheduler) retireStores() {
	for _, t := range s.intFU.Tags() {
		inst := s.arena.Get(t)
		if !s.table.IsStoreOp(inst.Class) || !s.finished(inst) {
			continue
		}

		inst.CDBCycle = s.cycle
		s.leave(t)
		s.release(t, inst)
		s.stats.StoresRetired++

		s.trace("retire-store", inst)
	}
}

// finished returns true if the instruction's latency has elapsed and it has
// not yet left its unit.
func (s *Scheduler) finished(inst *insts.Instruction) bool {
	if inst.CDBCycle != 0 {
		return false
	}
	return inst.ExecuteCycle+s.table.GetLatency(inst.Class) <= s.cycle
}

// leave removes an instruction from its reservation station and functional
// unit.
func (s *Scheduler) leave(tag insts.Tag) {
	if !s.intRS.Remove(tag) {
		s.fpRS.Remove(tag)
	}
	if !s.intFU.Remove(tag) {
		s.fpFU.Remove(tag)
	}
}

// issueToExecute hands ready instructions to free functional units, oldest
// first.
func (s *Scheduler) issueToExecute() {
	s.issue(s.intRS, s.intFU)
	s.issue(s.fpRS, s.fpFU)
}

func (s *Scheduler) issue(stations, units *SlotPool) {
	for u := 0; u < units.Len(); u++ {
		if units.At(u) != insts.NoTag {
			continue
		}

		tag := s.oldestReady(stations)
		if tag == insts.NoTag {
			return
		}

		inst := s.arena.Get(tag)
		inst.ExecuteCycle = s.cycle
		units.Assign(u, tag)

		s.trace("execute", inst, "unit", fmt.Sprintf("%s[%d]", units.Name(), u))
	}
}

// oldestReady returns the oldest instruction in the stations that has been
// issued, is not executing and has all operands available.
func (s *Scheduler) oldestReady(stations *SlotPool) insts.Tag {
	oldest := insts.NoTag
	var oldestInst *insts.Instruction

	for _, t := range stations.Tags() {
		inst := s.arena.Get(t)
		if inst.IssueCycle == 0 || inst.ExecuteCycle != 0 || !inst.Ready() {
			continue
		}

		if oldestInst == nil || inst.Index < oldestInst.Index {
			oldest, oldestInst = t, inst
		}
	}

	return oldest
}

// dispatchToIssue moves the head of the dispatch queue into a reservation
// station, renaming its output registers.
func (s *Scheduler) dispatchToIssue() {
	tag, ok := s.queue.Peek()
	if !ok {
		return
	}

	inst := s.arena.Get(tag)

	if s.table.IsBranchOp(inst.Class) {
		s.queue.Pop()
		s.stats.BranchesDiscarded++
		s.trace("discard-branch", inst)
		return
	}

	var stations *SlotPool
	trackDeps := true

	switch {
	case s.table.UsesIntFU(inst.Class):
		stations = s.intRS
	case s.table.UsesFPFU(inst.Class):
		stations = s.fpRS
		trackDeps = !s.legacyFPDeps
	default:
		panic(fmt.Sprintf("tomasulo: cannot dispatch %v", inst))
	}

	slot, ok := stations.FirstFree()
	if !ok {
		s.stats.DispatchStalls++
		return
	}

	inst.IssueCycle = s.cycle

	if trackDeps {
		for j, reg := range inst.In {
			if reg == 0 {
				continue
			}
			if producer := s.mapTable.Producer(reg); producer != insts.NoTag {
				inst.Q[j] = producer
			}
		}
	}

	for _, reg := range inst.Out {
		if reg != 0 {
			s.mapTable.Set(reg, tag)
		}
	}

	stations.Assign(slot, tag)
	s.queue.Pop()

	s.trace("issue", inst, "station", fmt.Sprintf("%s[%d]", stations.Name(), slot))
}

// fetchToDispatch pulls the next non-trap record from the feed into the
// dispatch queue.
func (s *Scheduler) fetchToDispatch() {
	if s.queue.Full() {
		return
	}

	for s.fetchIndex < s.feed.Len() {
		inst := s.feed.Instruction(s.fetchIndex)
		s.fetchIndex++

		if inst == nil {
			continue
		}

		if s.table.IsTrap(inst.Class) {
			s.stats.TrapsSkipped++
			continue
		}

		if s.arena.Len() > 0 && inst.Index <= s.lastIndex {
			panic(fmt.Sprintf("tomasulo: program-order index %d after %d",
				inst.Index, s.lastIndex))
		}
		s.lastIndex = inst.Index

		tag := s.arena.Add(inst)
		record := s.arena.Get(tag)
		record.DispatchCycle = s.cycle
		s.queue.Push(tag)
		s.stats.Fetched++

		s.trace("dispatch", record)

		return
	}
}
