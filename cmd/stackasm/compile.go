package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var compileOut string

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile sourceFile",
	Short: "Translate a source file into the intermediate format",
	Long: `Compile reads a source file, resolves its labels and writes one
numeric record per line. The number of records is printed on success and
must be passed to run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDriver(cmd)
		if err != nil {
			return err
		}

		out := compileOut
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".out"
		}

		n, err := d.Compile(args[0], out)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records\n", out, n)

		return nil
	},
}

func init() {
	compileCmd.Flags().StringVarP(&compileOut, "output", "o", "",
		"intermediate file (default: source name with .out)")
	rootCmd.AddCommand(compileCmd)
}
