package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tomasim/insts"
)

var _ = Describe("Instruction", func() {
	It("should be ready with no producers", func() {
		var i insts.Instruction
		Expect(i).To(BeZero())
		Expect(i.Ready()).To(BeTrue())
	})

	It("should not be ready while a slot names a producer", func() {
		i := insts.Instruction{}
		i.Q[2] = insts.Tag(7)
		Expect(i.Ready()).To(BeFalse())
	})

	It("should classify branches", func() {
		Expect((&insts.Instruction{Class: insts.ClassCBRANCH}).IsBranch()).To(BeTrue())
		Expect((&insts.Instruction{Class: insts.ClassUBRANCH}).IsBranch()).To(BeTrue())
		Expect((&insts.Instruction{Class: insts.ClassSTORE}).IsBranch()).To(BeFalse())
	})

	It("should print class mnemonics", func() {
		Expect(insts.ClassFCOMP.String()).To(Equal("fcomp"))
		Expect(insts.Class(42).String()).To(Equal("class(42)"))
	})
})
