// Command spikeglx inspects SpikeGLX recordings.
package main

import (
	"os"

	"github.com/simonhull/spikeglx/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
