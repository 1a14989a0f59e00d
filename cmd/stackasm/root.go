package main

import (
	"log/slog"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/spf13/cobra"

	"github.com/sarchlab/stackasm/api"
	"github.com/sarchlab/stackasm/config"
	"github.com/sarchlab/stackasm/core"
)

var (
	configFile string
	verbose    bool
	stackCap   int
	stepLimit  uint64
	direct     bool
	lint       bool
	monitor    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stackasm",
	Short: "Assembler and virtual machine for a small stack language",
	Long: `Stackasm translates programs written in a small stack-machine
assembly language into a numeric intermediate format and executes that
format on a register and stack machine.

A typical session compiles a source file and runs the result:

  stackasm compile fact.stk -o fact.out
  stackasm run fact.out -n 23
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = core.LevelTrace
		}

		handler := slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "machine configuration file (YAML)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "trace every executed instruction")
	flags.IntVar(&stackCap, "stack", 0, "operand stack capacity")
	flags.Uint64Var(&stepLimit, "step-limit", 0, "stop after this many instructions")
	flags.BoolVar(&direct, "direct", false, "run without the simulation engine")
	flags.BoolVar(&lint, "lint", false, "lint the program before running it")
	flags.BoolVar(&monitor, "monitor", false, "serve the akita monitor while running")
}

// loadConfig reads the configuration file, if any, and applies the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()

	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("stack") {
		cfg.StackCapacity = stackCap
	}

	if flags.Changed("step-limit") {
		cfg.StepLimit = stepLimit
	}

	if flags.Changed("direct") {
		cfg.Direct = direct
	}

	if flags.Changed("lint") {
		cfg.Lint = lint
	}

	return cfg, cfg.Validate()
}

func newDriver(cmd *cobra.Command) (api.Driver, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	builder := api.NewDriverBuilder().
		WithConfig(cfg).
		WithInput(cmd.InOrStdin()).
		WithOutput(cmd.OutOrStdout()).
		WithLintReport(cmd.ErrOrStderr())

	if monitor {
		m := monitoring.NewMonitor()
		engine := sim.NewSerialEngine()
		m.RegisterEngine(engine)
		m.StartServer()

		builder = builder.WithEngine(engine).WithMonitor(m)
	}

	return builder.Build("StackAsm"), nil
}
