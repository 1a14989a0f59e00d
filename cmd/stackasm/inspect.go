package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sarchlab/stackasm/program"
	"github.com/sarchlab/stackasm/verify"
)

var (
	lintSteps  int
	lintInputs []float64
	lintReport string
)

// lintCmd represents the lint command
var lintCmd = &cobra.Command{
	Use:   "lint intermediateFile",
	Short: "Check an intermediate file and dry-run it",
	Long: `Lint checks the records of an intermediate file for problems that
would stop the machine (STRUCT) and suspicious control flow (FLOW). Unless
--steps is 0, it then dry-runs the program with the numbers given by
--input and reports the outcome.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := program.ReadFile(args[0], -1)
		if err != nil {
			return err
		}

		report := verify.GenerateReport(p, lintSteps, lintInputs...)
		report.WriteReport(cmd.OutOrStdout())

		if lintReport != "" {
			if err := report.SaveReportToFile(lintReport); err != nil {
				return err
			}
		}

		if !report.Passed() {
			return errors.New("verification failed")
		}

		return nil
	},
}

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list intermediateFile",
	Short: "Print the records of an intermediate file as a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := program.ReadFile(args[0], -1)
		if err != nil {
			return err
		}

		return program.List(cmd.OutOrStdout(), p)
	},
}

func init() {
	lintCmd.Flags().IntVar(&lintSteps, "steps", 10000,
		"instruction budget of the dry run, 0 to skip it")
	lintCmd.Flags().Float64SliceVar(&lintInputs, "input", nil,
		"numbers fed to INPUT during the dry run")
	lintCmd.Flags().StringVar(&lintReport, "report", "",
		"also save the report to this file")
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(listCmd)
}
