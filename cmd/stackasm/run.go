package main

import (
	"github.com/spf13/cobra"
)

var runCount int

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run intermediateFile",
	Short: "Execute an intermediate file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDriver(cmd)
		if err != nil {
			return err
		}

		return d.Run(args[0], runCount)
	},
}

// execCmd represents the exec command
var execCmd = &cobra.Command{
	Use:   "exec sourceFile",
	Short: "Compile a source file and execute it without writing a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDriver(cmd)
		if err != nil {
			return err
		}

		return d.Exec(args[0])
	},
}

func init() {
	runCmd.Flags().IntVarP(&runCount, "count", "n", -1,
		"expected number of records, negative to skip the check")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(execCmd)
}
