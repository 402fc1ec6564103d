package main

import (
	"os"

	"github.com/rshade/rosterbot/internal/cli"
)

// version is set at build time via -ldflags.
var version = "dev" //nolint:gochecknoglobals // build-time version injection

func main() {
	os.Exit(run())
}

// run executes the root command and maps failure to a non-zero exit code.
func run() int {
	if err := cli.NewRootCmd(version).Execute(); err != nil {
		return 1
	}
	return 0
}
