package main

import (
	"os"

	"github.com/jkroepke/memory-logger/cmd"
)

//nolint:gochecknoglobals
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cmd.Execute(os.Args, os.Stdout, os.Stderr, version, commit, date))
}
