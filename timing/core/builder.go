package core

import (
	"log/slog"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/tomasim/timing/latency"
	"github.com/sarchlab/tomasim/timing/tomasulo"
)

// Builder can create new cores.
type Builder struct {
	engine sim.Engine
	freq   sim.Freq
	config *latency.TimingConfig
	logger *slog.Logger
}

// NewBuilder creates a builder with a 1 GHz clock and the default timing
// configuration.
func NewBuilder() Builder {
	return Builder{
		freq:   1 * sim.GHz,
		config: latency.DefaultTimingConfig(),
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithTimingConfig sets the resource sizes and latencies.
func (b Builder) WithTimingConfig(config *latency.TimingConfig) Builder {
	b.config = config
	return b
}

// WithLogger sets the logger passed to the scheduler.
func (b Builder) WithLogger(logger *slog.Logger) Builder {
	b.logger = logger
	return b
}

// Build creates a core that simulates the given feed.
func (b Builder) Build(name string, feed tomasulo.Feed) *Core {
	if b.engine == nil {
		panic("core: engine is not set")
	}

	opts := []tomasulo.SchedulerOption{tomasulo.WithTimingConfig(b.config)}
	if b.logger != nil {
		opts = append(opts, tomasulo.WithLogger(b.logger))
	}

	c := &Core{
		engine:    b.engine,
		scheduler: tomasulo.NewScheduler(feed, opts...),
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)

	return c
}
