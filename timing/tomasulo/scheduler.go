// Package tomasulo provides a cycle-accurate model of an out-of-order core
// that schedules instructions with Tomasulo's algorithm.
//
// Every cycle the scheduler evaluates its stages from the back of the
// machine to the front:
//
//	CDB -> retire, execute -> CDB, issue -> execute, dispatch -> issue,
//	fetch -> dispatch
//
// so that resources released by a later stage are visible to the earlier
// stages of the same cycle. Contention for functional units and for the
// common data bus is always resolved in favour of the oldest instruction in
// program order.
//
// Usage:
//
//	trace, _ := loader.Load("prog.trace")
//	cycles := tomasulo.Simulate(trace)
package tomasulo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/timing/latency"
)

// Feed hands instruction records to the scheduler in program order.
type Feed interface {
	// Instruction returns the record at index i, or nil if there is none.
	Instruction(i int) *insts.Instruction
	// Len returns the number of records in the trace.
	Len() int
}

// SchedulerOption is a functional option for configuring the Scheduler.
type SchedulerOption func(*Scheduler)

// WithTimingConfig sets the resource sizes and latencies.
func WithTimingConfig(config *latency.TimingConfig) SchedulerOption {
	return func(s *Scheduler) {
		s.table = latency.NewTableWithConfig(config)
	}
}

// WithLatencyTable sets a custom latency table.
func WithLatencyTable(table *latency.Table) SchedulerOption {
	return func(s *Scheduler) {
		s.table = table
	}
}

// WithLogger sets the logger that receives per-stage debug records.
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithLegacyFPDependencyCheck makes floating-point dispatch record no RAW
// dependencies. This reproduces the reference assignment code, whose
// floating-point path tests for an absent producer before recording one.
func WithLegacyFPDependencyCheck() SchedulerOption {
	return func(s *Scheduler) {
		s.legacyFPDeps = true
	}
}

// Scheduler owns the whole state of the Tomasulo core.
type Scheduler struct {
	feed   Feed
	table  *latency.Table
	logger *slog.Logger

	legacyFPDeps bool

	arena    *Arena
	queue    *DispatchQueue
	mapTable *MapTable
	intRS    *SlotPool
	fpRS     *SlotPool
	intFU    *SlotPool
	fpFU     *SlotPool
	bus      Bus

	fetchIndex int
	lastIndex  uint64
	cycle      uint64
	stats      Statistics
}

// NewScheduler creates a scheduler that reads instructions from feed.
func NewScheduler(feed Feed, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		feed:   feed,
		table:  latency.NewTable(),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	config := s.table.Config()
	if err := config.Validate(); err != nil {
		panic(fmt.Sprintf("tomasulo: invalid timing config: %v", err))
	}
	if config.LegacyFPDependencyCheck {
		s.legacyFPDeps = true
	}

	s.arena = NewArena()
	s.queue = NewDispatchQueue(config.InstrQueueSize)
	s.mapTable = NewMapTable()
	s.intRS = NewSlotPool("int-rs", config.IntRSSize)
	s.fpRS = NewSlotPool("fp-rs", config.FPRSSize)
	s.intFU = NewSlotPool("int-fu", config.IntFUSize)
	s.fpFU = NewSlotPool("fp-fu", config.FPFUSize)
	s.cycle = 1

	return s
}

// Simulate runs a trace to completion and returns the elapsed cycle count.
func Simulate(feed Feed, opts ...SchedulerOption) uint64 {
	return NewScheduler(feed, opts...).Run()
}

// Cycle returns the cycle that the next Tick will simulate. After Run it is
// the elapsed cycle count.
func (s *Scheduler) Cycle() uint64 {
	return s.cycle
}

// Tick simulates one cycle.
func (s *Scheduler) Tick() {
	s.cdbToRetire()
	s.executeToCDB()
	s.issueToExecute()
	s.dispatchToIssue()
	s.fetchToDispatch()

	s.cycle++
	s.stats.Cycles = s.cycle
}

// Done returns true once at least one cycle has been simulated, every
// trace record has been fetched, the dispatch queue is empty and no
// reservation station is occupied. Functional units and the bus drain
// with the stations, so they need no separate check.
func (s *Scheduler) Done() bool {
	if s.cycle == 1 {
		return false
	}

	if s.fetchIndex < s.feed.Len() || !s.queue.Empty() {
		return false
	}

	return s.intRS.Empty() && s.fpRS.Empty()
}

// Run simulates cycles until Done and returns the elapsed cycle count.
func (s *Scheduler) Run() uint64 {
	for !s.Done() {
		s.Tick()
	}
	return s.cycle
}

// RunCycles simulates at most the given number of cycles.
// Returns true if still running, false if done.
func (s *Scheduler) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles && !s.Done(); i++ {
		s.Tick()
	}
	return !s.Done()
}

// Stats returns the statistics collected so far.
func (s *Scheduler) Stats() Statistics {
	return s.stats
}

// Instructions returns the scheduler's copies of every fetched record in
// program order, with the scheduling stamps filled in so far. The records of
// the feed are left untouched.
func (s *Scheduler) Instructions() []*insts.Instruction {
	return s.arena.Records()
}

// Producer returns the instruction that currently produces a register, or
// nil.
func (s *Scheduler) Producer(reg uint8) *insts.Instruction {
	return s.lookup(s.mapTable.Producer(reg))
}

// Broadcasting returns the instruction on the common data bus, or nil.
func (s *Scheduler) Broadcasting() *insts.Instruction {
	return s.lookup(s.bus.Tag())
}

// QueueLen returns the number of instructions waiting in the dispatch
// queue.
func (s *Scheduler) QueueLen() int {
	return s.queue.Len()
}

// Occupancy reports how many slots of each pool are in use.
func (s *Scheduler) Occupancy() Occupancy {
	return Occupancy{
		IntRS: s.intRS.Occupied(),
		FPRS:  s.fpRS.Occupied(),
		IntFU: s.intFU.Occupied(),
		FPFU:  s.fpFU.Occupied(),
		Bus:   s.bus.Busy(),
	}
}

// Reset clears all scheduler state so that the feed can be simulated again.
// Records returned by earlier Instructions calls keep their stamps.
func (s *Scheduler) Reset() {
	s.arena.Reset()
	s.queue.Reset()
	s.mapTable.Reset()
	s.intRS.Reset()
	s.fpRS.Reset()
	s.intFU.Reset()
	s.fpFU.Reset()
	s.bus.Clear()

	s.fetchIndex = 0
	s.lastIndex = 0
	s.cycle = 1
	s.stats = Statistics{}
}

// Occupancy is a snapshot of resource usage.
type Occupancy struct {
	IntRS int
	FPRS  int
	IntFU int
	FPFU  int
	Bus   bool
}

func (s *Scheduler) lookup(tag insts.Tag) *insts.Instruction {
	if tag == insts.NoTag {
		return nil
	}
	return s.arena.Get(tag)
}

func (s *Scheduler) trace(msg string, inst *insts.Instruction, args ...any) {
	if !s.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	attrs := append([]any{
		"cycle", s.cycle,
		"index", inst.Index,
		"pc", inst.PC,
		"class", inst.Class.String(),
	}, args...)
	s.logger.Debug(msg, attrs...)
}
