package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("Default Timing Values", func() {
		It("should have the reference pool sizes", func() {
			config := table.Config()
			Expect(config.InstrQueueSize).To(Equal(10))
			Expect(config.IntRSSize).To(Equal(4))
			Expect(config.FPRSSize).To(Equal(2))
			Expect(config.IntFUSize).To(Equal(2))
			Expect(config.FPFUSize).To(Equal(1))
		})

		It("should have the reference latencies", func() {
			config := table.Config()
			Expect(config.IntFULatency).To(Equal(uint64(4)))
			Expect(config.FPFULatency).To(Equal(uint64(9)))
			Expect(config.LegacyFPDependencyCheck).To(BeFalse())
		})
	})

	Describe("Class Latencies", func() {
		DescribeTable("GetLatency",
			func(class insts.Class, expected uint64) {
				Expect(table.GetLatency(class)).To(Equal(expected))
			},
			Entry("integer computation", insts.ClassICOMP, uint64(4)),
			Entry("load", insts.ClassLOAD, uint64(4)),
			Entry("store", insts.ClassSTORE, uint64(4)),
			Entry("floating-point computation", insts.ClassFCOMP, uint64(9)),
			Entry("conditional branch", insts.ClassCBRANCH, uint64(0)),
			Entry("unconditional branch", insts.ClassUBRANCH, uint64(0)),
			Entry("trap", insts.ClassTRAP, uint64(0)),
		)
	})

	Describe("Classification", func() {
		It("should map integer classes to integer units", func() {
			Expect(table.UsesIntFU(insts.ClassICOMP)).To(BeTrue())
			Expect(table.UsesIntFU(insts.ClassLOAD)).To(BeTrue())
			Expect(table.UsesIntFU(insts.ClassSTORE)).To(BeTrue())
			Expect(table.UsesIntFU(insts.ClassFCOMP)).To(BeFalse())
		})

		It("should map floating-point computation to floating-point units", func() {
			Expect(table.UsesFPFU(insts.ClassFCOMP)).To(BeTrue())
			Expect(table.UsesFPFU(insts.ClassICOMP)).To(BeFalse())
		})

		It("should not broadcast stores and branches", func() {
			Expect(table.WritesCDB(insts.ClassICOMP)).To(BeTrue())
			Expect(table.WritesCDB(insts.ClassLOAD)).To(BeTrue())
			Expect(table.WritesCDB(insts.ClassFCOMP)).To(BeTrue())
			Expect(table.WritesCDB(insts.ClassSTORE)).To(BeFalse())
			Expect(table.WritesCDB(insts.ClassCBRANCH)).To(BeFalse())
		})

		It("should identify stores, branches and traps", func() {
			Expect(table.IsStoreOp(insts.ClassSTORE)).To(BeTrue())
			Expect(table.IsBranchOp(insts.ClassCBRANCH)).To(BeTrue())
			Expect(table.IsBranchOp(insts.ClassUBRANCH)).To(BeTrue())
			Expect(table.IsBranchOp(insts.ClassLOAD)).To(BeFalse())
			Expect(table.IsTrap(insts.ClassTRAP)).To(BeTrue())
		})
	})

	Describe("Custom Configuration", func() {
		It("should use custom config values", func() {
			config := latency.DefaultTimingConfig()
			config.IntFULatency = 2
			config.FPFULatency = 20
			customTable := latency.NewTableWithConfig(config)

			Expect(customTable.GetLatency(insts.ClassLOAD)).To(Equal(uint64(2)))
			Expect(customTable.GetLatency(insts.ClassFCOMP)).To(Equal(uint64(20)))
		})
	})
})

var _ = Describe("TimingConfig", func() {
	Describe("Default Config", func() {
		It("should create valid default config", func() {
			config := latency.DefaultTimingConfig()
			Expect(config.Validate()).To(Succeed())
		})
	})

	Describe("Validation", func() {
		DescribeTable("rejecting empty pools and zero latencies",
			func(mutate func(*latency.TimingConfig)) {
				config := latency.DefaultTimingConfig()
				mutate(config)
				Expect(config.Validate()).To(HaveOccurred())
			},
			Entry("queue", func(c *latency.TimingConfig) { c.InstrQueueSize = 0 }),
			Entry("int stations", func(c *latency.TimingConfig) { c.IntRSSize = 0 }),
			Entry("fp stations", func(c *latency.TimingConfig) { c.FPRSSize = -1 }),
			Entry("int units", func(c *latency.TimingConfig) { c.IntFUSize = 0 }),
			Entry("fp units", func(c *latency.TimingConfig) { c.FPFUSize = 0 }),
			Entry("int latency", func(c *latency.TimingConfig) { c.IntFULatency = 0 }),
			Entry("fp latency", func(c *latency.TimingConfig) { c.FPFULatency = 0 }),
		)
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := latency.DefaultTimingConfig()
			clone := original.Clone()

			clone.IntFULatency = 100

			Expect(original.IntFULatency).To(Equal(uint64(4)))
			Expect(clone.IntFULatency).To(Equal(uint64(100)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := latency.DefaultTimingConfig()
			original.IntRSSize = 8
			original.FPFULatency = 12
			original.LegacyFPDependencyCheck = true

			path := filepath.Join(tempDir, "timing.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(original))
		})

		It("should keep defaults for missing fields", func() {
			path := filepath.Join(tempDir, "partial.json")
			Expect(os.WriteFile(path, []byte(`{"fp_fu_size": 3}`), 0644)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.FPFUSize).To(Equal(3))
			Expect(loaded.IntFULatency).To(Equal(uint64(4)))
		})

		It("should return error for non-existent file", func() {
			_, err := latency.LoadConfig("/nonexistent/path/timing.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
