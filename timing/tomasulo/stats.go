package tomasulo

// Statistics holds scheduler performance statistics.
type Statistics struct {
	// Cycles is the elapsed cycle count, the value Run returns.
	Cycles uint64
	// Fetched is the number of records placed in the dispatch queue.
	Fetched uint64
	// TrapsSkipped is the number of trap records dropped at fetch.
	TrapsSkipped uint64
	// BranchesDiscarded is the number of branches dropped at dispatch.
	BranchesDiscarded uint64
	// Broadcasts is the number of instructions that used the common data bus.
	Broadcasts uint64
	// StoresRetired is the number of stores retired without the bus.
	StoresRetired uint64
	// DispatchStalls is the number of cycles the queue head waited for a
	// reservation station.
	DispatchStalls uint64
	// BusConflicts counts finished instructions that lost bus arbitration,
	// once per losing instruction per cycle.
	BusConflicts uint64
}

// Instructions returns the number of completed instructions.
func (s Statistics) Instructions() uint64 {
	return s.Broadcasts + s.StoresRetired + s.BranchesDiscarded
}

// CPI returns cycles per completed instruction.
func (s Statistics) CPI() float64 {
	n := s.Instructions()
	if n == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(n)
}
