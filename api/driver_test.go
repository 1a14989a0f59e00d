package api_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/stackasm/api"
	"github.com/sarchlab/stackasm/asm"
	"github.com/sarchlab/stackasm/config"
	"github.com/sarchlab/stackasm/core"
	"github.com/sarchlab/stackasm/program"
)

var _ = Describe("Driver", func() {
	var (
		dir    string
		out    *bytes.Buffer
		report *bytes.Buffer
		cfg    config.Config
	)

	writeSource := func(name, src string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(src), 0o644)).To(Succeed())
		return path
	}

	build := func(input string) api.Driver {
		return api.NewDriverBuilder().
			WithConfig(cfg).
			WithInput(strings.NewReader(input)).
			WithOutput(out).
			WithLintReport(report).
			Build("Driver")
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		out = new(bytes.Buffer)
		report = new(bytes.Buffer)
		cfg = config.Default()
		cfg.InputPrompt = ""
	})

	It("should compile then run a program", func() {
		src := writeSource("add.stk", "BEGIN push 3 push 4 ADD pop AX OUTPUT AX END")
		obj := filepath.Join(dir, "add.out")
		d := build("")

		n, err := d.Compile(src, obj)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(7))

		p, err := program.ReadFile(obj, n)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.At(0)).To(Equal(program.Inst(program.OpBegin)))

		Expect(d.Run(obj, n)).To(Succeed())
		Expect(out.String()).To(Equal("7\n"))
	})

	It("should write the same file for the same source", func() {
		src := writeSource("loop.stk", "BEGIN l: push 1 pop AX JMP :l END")
		first := filepath.Join(dir, "a.out")
		second := filepath.Join(dir, "b.out")
		d := build("")

		_, err := d.Compile(src, first)
		Expect(err).NotTo(HaveOccurred())
		_, err = d.Compile(src, second)
		Expect(err).NotTo(HaveOccurred())

		a, _ := os.ReadFile(first)
		b, _ := os.ReadFile(second)
		Expect(a).To(Equal(b))
	})

	It("should not write anything on a compile error", func() {
		src := writeSource("bad.stk", "BEGIN pop ADD END")
		obj := filepath.Join(dir, "bad.out")

		_, err := build("").Compile(src, obj)

		code, ok := asm.CodeOf(err)
		Expect(ok).To(BeTrue())
		Expect(code).To(Equal(asm.NeedArg))
		Expect(obj).NotTo(BeAnExistingFile())
	})

	It("should refuse a file with an unexpected record count", func() {
		src := writeSource("p.stk", "BEGIN DUMP END")
		obj := filepath.Join(dir, "p.out")
		d := build("")

		n, err := d.Compile(src, obj)
		Expect(err).NotTo(HaveOccurred())

		Expect(d.Run(obj, n+1)).To(MatchError(program.ErrCountMismatch))
		Expect(out.String()).To(BeEmpty())
	})

	It("should execute a source file directly", func() {
		src := writeSource("sq.stk", "BEGIN INPUT AX push AX push AX MUL pop BX OUTPUT BX END")
		cfg.Direct = true

		Expect(build("9").Exec(src)).To(Succeed())
		Expect(out.String()).To(Equal("81\n"))
	})

	It("should read the input left over by an earlier run", func() {
		src := writeSource("echo.stk", "BEGIN INPUT AX OUTPUT AX END")
		d := build("3\n4\n")

		Expect(d.Exec(src)).To(Succeed())
		Expect(d.Exec(src)).To(Succeed())
		Expect(out.String()).To(Equal("3\n4\n"))
	})

	It("should report runtime faults", func() {
		src := writeSource("div.stk", "BEGIN push 1 push 0 DIV END")

		err := build("").Exec(src)

		Expect(err).To(MatchError(core.ErrDivisionByZero))
	})

	It("should reject programs that fail lint", func() {
		obj := filepath.Join(dir, "nobegin.out")
		Expect(program.WriteFile(obj, program.New(
			program.InstImm(program.OpPush, 1),
			program.Inst(program.OpEnd),
		))).To(Succeed())
		cfg.Lint = true

		err := build("").Run(obj, -1)

		Expect(err).To(MatchError(api.ErrLint))
		Expect(report.String()).To(ContainSubstring("NO_BEGIN"))
	})

	It("should run on a shared engine", func() {
		src := writeSource("out.stk", "BEGIN push 2 pop CX OUTPUT CX END")
		d := api.NewDriverBuilder().
			WithEngine(sim.NewSerialEngine()).
			WithConfig(cfg).
			WithOutput(out).
			Build("Driver")

		Expect(d.Exec(src)).To(Succeed())
		Expect(out.String()).To(Equal("2\n"))
	})
})
