// logshield masks personal data in log messages: an HTTP service with
// pluggable sinks, plus a command-line filter for existing log files.
package main

import (
	"os"

	"github.com/codeready-toolchain/logshield/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
