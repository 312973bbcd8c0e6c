// Command facore compiles finite automata from CUE definitions and answers
// membership queries against them.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/facore/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	if !cli.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.GetExitCode(err))
}
