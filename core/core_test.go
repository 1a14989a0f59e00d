package core_test

import (
	"bufio"
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/stackasm/asm"
	"github.com/sarchlab/stackasm/core"
	"github.com/sarchlab/stackasm/program"
)

const factorial = `
BEGIN
	INPUT AX
	PUSH 1
	POP BX
loop:
	PUSH AX
	PUSH 1
	CMP
	JBE :done
	PUSH BX
	PUSH AX
	MUL
	POP BX
	PUSH AX
	PUSH 1
	SUB
	POP AX
	JMP :loop
done:
	OUTPUT BX
END
`

var _ = Describe("Core", func() {
	var (
		out     *bytes.Buffer
		builder core.Builder
	)

	BeforeEach(func() {
		out = new(bytes.Buffer)
		builder = core.NewBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithInput(strings.NewReader("")).
			WithOutput(out).
			WithPrompt("")
	})

	load := func(c *core.Core, src string) {
		p, err := asm.Assemble(src)
		Expect(err).NotTo(HaveOccurred())
		c.Load(p)
	}

	It("should add two numbers on the engine", func() {
		c := builder.Build("Core")
		load(c, "BEGIN push 3 push 4 ADD pop AX OUTPUT AX END")

		Expect(c.Run()).To(Succeed())
		Expect(out.String()).To(Equal("7\n"))
		Expect(c.Halted()).To(BeTrue())
		Expect(c.Register(program.AX)).To(Equal(7.0))
	})

	It("should skip the instructions jumped over", func() {
		c := builder.Build("Core")
		load(c, "BEGIN JMP :skip push 1 pop AX skip: push 2 pop BX OUTPUT BX END")

		Expect(c.RunDirect()).To(Succeed())
		Expect(c.Register(program.AX)).To(Equal(0.0))
		Expect(c.Register(program.BX)).To(Equal(2.0))
		Expect(out.String()).To(Equal("2\n"))
		Expect(c.Steps()).To(Equal(uint64(5)))
	})

	It("should halt on a division by zero", func() {
		c := builder.Build("Core")
		load(c, "BEGIN push 4 push 0 DIV pop AX OUTPUT AX END")

		err := c.Run()

		Expect(err).To(MatchError(core.ErrDivisionByZero))
		var rtErr *core.RuntimeError
		Expect(errors.As(err, &rtErr)).To(BeTrue())
		Expect(rtErr.IP).To(Equal(3))
		Expect(rtErr.Op).To(Equal(program.OpDiv))
		Expect(c.Halted()).To(BeTrue())
		Expect(c.Steps()).To(Equal(uint64(2)))
		Expect(out.String()).To(BeEmpty())
	})

	It("should refuse a program without BEGIN", func() {
		c := builder.Build("Core")
		load(c, "push 1 pop AX OUTPUT AX END")

		err := c.RunDirect()

		Expect(err).To(MatchError(core.ErrNoBegin))
		Expect(c.Steps()).To(Equal(uint64(0)))
		Expect(out.String()).To(BeEmpty())
	})

	It("should fail on a second BEGIN", func() {
		c := builder.Build("Core")
		load(c, "BEGIN push 1 pop AX BEGIN END")

		Expect(c.RunDirect()).To(MatchError(core.ErrManyBegin))
		Expect(c.Register(program.AX)).To(Equal(1.0))
	})

	It("should start right after BEGIN", func() {
		c := builder.Build("Core")
		c.Load(program.New(
			program.InstImm(program.OpPush, 1),
			program.InstReg(program.OpPop, program.AX),
			program.Inst(program.OpBegin),
			program.InstImm(program.OpPush, 2),
			program.InstReg(program.OpPop, program.BX),
		))

		Expect(c.RunDirect()).To(Succeed())
		Expect(c.Register(program.AX)).To(Equal(0.0))
		Expect(c.Register(program.BX)).To(Equal(2.0))
	})

	It("should stop normally when running off the end", func() {
		c := builder.Build("Core")
		c.Load(program.New(
			program.Inst(program.OpBegin),
			program.InstImm(program.OpPush, 1),
			program.InstReg(program.OpPop, program.AX),
		))

		Expect(c.Run()).To(Succeed())
		Expect(c.Halted()).To(BeTrue())
		Expect(c.IP()).To(Equal(3))
	})

	It("should compute a factorial on the engine and directly", func() {
		engineCore := builder.
			WithInput(strings.NewReader("5")).
			Build("Engine")
		load(engineCore, factorial)
		Expect(engineCore.Run()).To(Succeed())

		direct := new(bytes.Buffer)
		directCore := core.NewBuilder().
			WithInput(strings.NewReader("5")).
			WithOutput(direct).
			WithPrompt("").
			Build("Direct")
		load(directCore, factorial)
		Expect(directCore.RunDirect()).To(Succeed())

		Expect(out.String()).To(Equal("120\n"))
		Expect(direct.String()).To(Equal(out.String()))
		Expect(directCore.Steps()).To(Equal(engineCore.Steps()))
	})

	It("should keep buffered input between machines sharing a reader", func() {
		in := bufio.NewReader(strings.NewReader("3\n4\n"))

		for _, name := range []string{"First", "Second"} {
			c := builder.WithInput(in).Build(name)
			load(c, "BEGIN INPUT AX OUTPUT AX END")
			Expect(c.RunDirect()).To(Succeed())
		}

		Expect(out.String()).To(Equal("3\n4\n"))
	})

	It("should prompt before INPUT", func() {
		c := builder.
			WithInput(strings.NewReader("1")).
			WithPrompt(core.DefaultPrompt).
			Build("Core")
		load(c, "BEGIN INPUT AX OUTPUT AX END")

		Expect(c.RunDirect()).To(Succeed())
		Expect(out.String()).To(Equal("Enter a number\n1\n"))
	})

	It("should overflow a small stack", func() {
		c := builder.WithStackCapacity(2).Build("Core")
		load(c, "BEGIN push 1 push 2 push 3 END")

		Expect(c.RunDirect()).To(MatchError(core.ErrStackOverflow))
		Expect(c.StackValues()).To(Equal([]float64{2, 1}))
	})

	It("should stop at the step limit", func() {
		c := builder.WithStepLimit(10).Build("Core")
		load(c, "BEGIN loop: JMP :loop END")

		Expect(c.Run()).To(MatchError(core.ErrStepLimit))
		Expect(c.Steps()).To(Equal(uint64(10)))
	})

	It("should dump the machine state", func() {
		c := builder.Build("Core")
		load(c, "BEGIN push 3 pop AX push 9 DUMP END")

		Expect(c.RunDirect()).To(Succeed())
		Expect(out.String()).To(MatchRegexp(`(?i)registers`))
		Expect(out.String()).To(ContainSubstring("AX"))
		Expect(out.String()).To(MatchRegexp(`(?i)stack \(1/100\)`))
		Expect(out.String()).To(ContainSubstring("9"))
	})

	It("should keep reporting the fault after halting", func() {
		c := builder.Build("Core")
		load(c, "BEGIN pop AX END")

		err := c.RunDirect()
		Expect(err).To(MatchError(core.ErrStackUnderflow))

		progress, again := c.Step()
		Expect(progress).To(BeFalse())
		Expect(again).To(Equal(err))
		Expect(c.Err()).To(Equal(err))
	})
})
