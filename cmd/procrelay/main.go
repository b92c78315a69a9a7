// Command procrelay runs a program with its standard streams relayed to
// files and reports the program's exit code as its own.
package main

import (
	"os"

	"github.com/giantswarm/procrelay/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
