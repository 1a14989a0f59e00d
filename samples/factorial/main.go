package main

import (
	_ "embed"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/stackasm/asm"
	"github.com/sarchlab/stackasm/config"
	"github.com/sarchlab/stackasm/program"
)

//go:embed factorial.stk
var source string

var (
	n       = flag.Int("n", 10, "compute n!")
	monitor = flag.Bool("monitor", false, "serve the akita monitor")
)

func main() {
	flag.Parse()

	p, err := asm.Assemble(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	if err := program.List(os.Stdout, p); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	cfg := config.Default()
	cfg.InputPrompt = ""

	engine := sim.NewSerialEngine()
	builder := config.NewMachineBuilder().
		WithEngine(engine)

	var m *monitoring.Monitor
	if *monitor {
		m = monitoring.NewMonitor()
		m.RegisterEngine(engine)
		builder = builder.WithMonitor(m)
	}

	machine := builder.
		WithFreq(1 * sim.GHz).
		WithConfig(cfg).
		WithInput(strings.NewReader(strconv.Itoa(*n))).
		WithOutput(os.Stdout).
		Build("Factorial")
	machine.Load(p)

	if m != nil {
		m.StartServer()
	}

	if err := machine.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}

	fmt.Printf("%d! computed in %d steps\n", *n, machine.Steps())

	atexit.Exit(0)
}
