// Package main provides the entry point for TomaSim.
// TomaSim is a cycle-accurate simulator of a Tomasulo out-of-order core.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/pprof"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/loader"
	"github.com/sarchlab/tomasim/timing/core"
	"github.com/sarchlab/tomasim/timing/latency"
	"github.com/sarchlab/tomasim/timing/tomasulo"
)

var (
	configPath = flag.String("config", "", "Path to timing configuration JSON file")
	useEngine  = flag.Bool("engine", false, "Drive the core with the akita event engine")
	dump       = flag.Bool("dump", false, "Print per-instruction scheduling cycles")
	cpuProfile = flag.String("cpuprofile", "", "Write CPU profile to file")
	verbose    = flag.Bool("v", false, "Verbose output (debug log of every stage)")
)

// result is the outcome of one simulation run.
type result struct {
	cycles       uint64
	stats        tomasulo.Statistics
	instructions []*insts.Instruction
}

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: tomasim [options] <trace.txt>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	if *cpuProfile != "" {
		startProfile(*cpuProfile)
	}

	tracePath := flag.Arg(0)

	trace, err := loader.Load(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		atexit.Exit(1)
	}

	config, err := loadTimingConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timing config: %v\n", err)
		atexit.Exit(1)
	}

	logger := newLogger(os.Stderr, *verbose)

	var res result
	if *useEngine {
		res, err = runEngine(trace, config, logger)
	} else {
		res = runPlain(trace, config, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", err)
		atexit.Exit(1)
	}

	printReport(os.Stdout, tracePath, trace, res)
	if *dump {
		printDump(os.Stdout, res.instructions)
	}

	atexit.Exit(0)
}

func startProfile(path string) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
		atexit.Exit(1)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
		atexit.Exit(1)
	}

	atexit.Register(func() {
		pprof.StopCPUProfile()
		_ = f.Close()
	})
}

// loadTimingConfig returns the default configuration when path is empty.
func loadTimingConfig(path string) (*latency.TimingConfig, error) {
	config := latency.DefaultTimingConfig()
	if path != "" {
		var err error
		config, err = latency.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing config: %w", err)
	}

	return config, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runPlain runs the scheduler loop directly.
func runPlain(trace *loader.Trace, config *latency.TimingConfig, logger *slog.Logger) result {
	s := tomasulo.NewScheduler(trace,
		tomasulo.WithTimingConfig(config),
		tomasulo.WithLogger(logger),
	)
	cycles := s.Run()

	return result{
		cycles:       cycles,
		stats:        s.Stats(),
		instructions: s.Instructions(),
	}
}

// runEngine runs the core as an akita component on a serial engine.
func runEngine(trace *loader.Trace, config *latency.TimingConfig, logger *slog.Logger) (result, error) {
	engine := sim.NewSerialEngine()
	c := core.NewBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithTimingConfig(config).
		WithLogger(logger).
		Build("Core", trace)

	cycles, err := c.Run()
	if err != nil {
		return result{}, err
	}

	return result{
		cycles:       cycles,
		stats:        c.Stats(),
		instructions: c.Instructions(),
	}, nil
}

func printReport(w io.Writer, tracePath string, trace *loader.Trace, res result) {
	stats := res.stats

	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Trace: %s\n", tracePath)
	fmt.Fprintf(w, "Trace Records: %d (%d traps)\n", trace.Len(), trace.CountClass(insts.ClassTRAP))
	fmt.Fprintf(w, "Total Instructions: %d\n", stats.Instructions())
	fmt.Fprintf(w, "Total Cycles: %d\n", res.cycles)
	fmt.Fprintf(w, "CPI: %.2f\n", stats.CPI())
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Breakdown:\n")
	fmt.Fprintf(w, "  Broadcasts:         %d\n", stats.Broadcasts)
	fmt.Fprintf(w, "  Stores retired:     %d\n", stats.StoresRetired)
	fmt.Fprintf(w, "  Branches discarded: %d\n", stats.BranchesDiscarded)
	fmt.Fprintf(w, "  Traps skipped:      %d\n", stats.TrapsSkipped)
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Contention:\n")
	fmt.Fprintf(w, "  Dispatch stalls: %d\n", stats.DispatchStalls)
	fmt.Fprintf(w, "  Bus conflicts:   %d\n", stats.BusConflicts)
}

func printDump(w io.Writer, instructions []*insts.Instruction) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Instruction Timing")
	t.AppendHeader(table.Row{"Index", "PC", "Class", "Dispatch", "Issue", "Execute", "CDB"})

	for _, inst := range instructions {
		t.AppendRow(table.Row{
			inst.Index,
			fmt.Sprintf("0x%x", inst.PC),
			inst.Class.String(),
			stamp(inst.DispatchCycle),
			stamp(inst.IssueCycle),
			stamp(inst.ExecuteCycle),
			stamp(inst.CDBCycle),
		})
	}

	t.Render()
}

func stamp(cycle uint64) string {
	if cycle == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", cycle)
}
