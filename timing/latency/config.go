package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds the resource sizes and functional-unit latencies of
// the Tomasulo core.
type TimingConfig struct {
	// InstrQueueSize is the capacity of the dispatch queue. Default: 10.
	InstrQueueSize int `json:"instr_queue_size"`

	// IntRSSize is the number of integer reservation stations. Default: 4.
	IntRSSize int `json:"int_rs_size"`

	// FPRSSize is the number of floating-point reservation stations.
	// Default: 2.
	FPRSSize int `json:"fp_rs_size"`

	// IntFUSize is the number of integer functional units. Default: 2.
	IntFUSize int `json:"int_fu_size"`

	// FPFUSize is the number of floating-point functional units. Default: 1.
	FPFUSize int `json:"fp_fu_size"`

	// IntFULatency is the execution latency of integer units, covering
	// integer computation, loads and stores. Default: 4 cycles.
	IntFULatency uint64 `json:"int_fu_latency"`

	// FPFULatency is the execution latency of floating-point units.
	// Default: 9 cycles.
	FPFULatency uint64 `json:"fp_fu_latency"`

	// LegacyFPDependencyCheck makes floating-point dispatch skip RAW
	// dependency tracking, reproducing the reference assignment code.
	// Default: false.
	LegacyFPDependencyCheck bool `json:"legacy_fp_dependency_check"`
}

// DefaultTimingConfig returns a TimingConfig with the reference core sizes.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		InstrQueueSize: 10,
		IntRSSize:      4,
		FPRSSize:       2,
		IntFUSize:      2,
		FPFUSize:       1,
		IntFULatency:   4,
		FPFULatency:    9,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that every pool has at least one slot and every latency
// is at least one cycle.
func (c *TimingConfig) Validate() error {
	if c.InstrQueueSize <= 0 {
		return fmt.Errorf("instr_queue_size must be > 0")
	}
	if c.IntRSSize <= 0 {
		return fmt.Errorf("int_rs_size must be > 0")
	}
	if c.FPRSSize <= 0 {
		return fmt.Errorf("fp_rs_size must be > 0")
	}
	if c.IntFUSize <= 0 {
		return fmt.Errorf("int_fu_size must be > 0")
	}
	if c.FPFUSize <= 0 {
		return fmt.Errorf("fp_fu_size must be > 0")
	}
	if c.IntFULatency == 0 {
		return fmt.Errorf("int_fu_latency must be > 0")
	}
	if c.FPFULatency == 0 {
		return fmt.Errorf("fp_fu_latency must be > 0")
	}
	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
