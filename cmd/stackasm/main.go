// Command stackasm compiles and runs programs for the stack machine.
package main

import (
	"github.com/tebeka/atexit"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Fatalf("%v", err)
	}

	atexit.Exit(0)
}
