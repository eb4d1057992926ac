package loader_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/insts"
	"github.com/sarchlab/tomasim/loader"
)

const sampleTrace = `
# a short loop body
load    0x400000 in=29 out=1
icomp   0x400004 in=1,2 out=3   # add
fcomp   0x400008 in=33,34 out=35
store   0x40000c in=3,29
trap    0x400010
cbranch 0x400014 in=3
`

var _ = Describe("Trace", func() {
	Describe("Add", func() {
		It("should assign program-order indices and PCs", func() {
			t := loader.NewTrace()
			a := t.Add(insts.ClassICOMP, []uint8{1}, []uint8{2})
			b := t.Add(insts.ClassFCOMP, nil, nil)

			Expect(t.Len()).To(Equal(2))
			Expect(a.Index).To(Equal(uint64(0)))
			Expect(b.Index).To(Equal(uint64(1)))
			Expect(b.PC).To(Equal(uint64(loader.DefaultBasePC + 4)))
			Expect(a.In).To(Equal([3]uint8{1, 0, 0}))
			Expect(a.Out).To(Equal([2]uint8{2, 0}))
		})

		It("should return nil past the end", func() {
			t := loader.NewTrace()
			t.Add(insts.ClassICOMP, nil, nil)

			Expect(t.Instruction(0)).NotTo(BeNil())
			Expect(t.Instruction(1)).To(BeNil())
			Expect(t.Instruction(-1)).To(BeNil())
		})
	})

	Describe("Parse", func() {
		It("should parse records in file order", func() {
			t, err := loader.Parse(strings.NewReader(sampleTrace))

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Len()).To(Equal(6))
			Expect(t.Instruction(0).Class).To(Equal(insts.ClassLOAD))
			Expect(t.Instruction(1).In).To(Equal([3]uint8{1, 2, 0}))
			Expect(t.Instruction(5).Index).To(Equal(uint64(5)))
			Expect(t.CountClass(insts.ClassTRAP)).To(Equal(1))
		})

		It("should report the failing line", func() {
			_, err := loader.Parse(strings.NewReader("icomp 0x0\nbogus 0x4\n"))

			Expect(err).To(MatchError(ContainSubstring("line 2")))
		})
	})

	Describe("Load", func() {
		It("should load a trace file", func() {
			path := filepath.Join(GinkgoT().TempDir(), "trace.txt")
			Expect(os.WriteFile(path, []byte(sampleTrace), 0644)).To(Succeed())

			t, err := loader.Load(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(t.Instructions()).To(HaveLen(6))
		})

		It("should fail on a missing file", func() {
			_, err := loader.Load("/nonexistent/trace.txt")

			Expect(err).To(HaveOccurred())
		})
	})
})
