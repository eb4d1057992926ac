// Package core provides the Tomasulo core as an akita ticking component.
// Each tick of the component simulates one scheduler cycle; the component
// stops ticking once the scheduler has drained.
package core

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/timing/tomasulo"
)

// Core wraps a Tomasulo scheduler in an akita component.
type Core struct {
	*sim.TickingComponent

	engine    sim.Engine
	scheduler *tomasulo.Scheduler
}

// Tick simulates one cycle. It returns false once the scheduler is done, so
// that no further tick is scheduled.
func (c *Core) Tick() (madeProgress bool) {
	if c.scheduler.Done() {
		return false
	}

	c.scheduler.Tick()

	return !c.scheduler.Done()
}

// Run kicks the component and runs the engine until the core drains.
// Returns the elapsed cycle count.
func (c *Core) Run() (uint64, error) {
	c.TickNow()

	if err := c.engine.Run(); err != nil {
		return 0, fmt.Errorf("engine run failed: %w", err)
	}

	return c.scheduler.Cycle(), nil
}

// Done returns true if the core has drained.
func (c *Core) Done() bool {
	return c.scheduler.Done()
}

// Cycles returns the elapsed cycle count.
func (c *Core) Cycles() uint64 {
	return c.scheduler.Cycle()
}

// Stats returns the scheduler statistics.
func (c *Core) Stats() tomasulo.Statistics {
	return c.scheduler.Stats()
}

// Instructions returns the fetched records in program order.
func (c *Core) Instructions() []*insts.Instruction {
	return c.scheduler.Instructions()
}

// Scheduler returns the underlying scheduler.
func (c *Core) Scheduler() *tomasulo.Scheduler {
	return c.scheduler
}
