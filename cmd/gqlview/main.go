package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/hanpama/gqlview/internal/ui"
)

var (
	// Version information, set at build time.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		ui.Error(cmd.ErrOrStderr(), err, color.NoColor)
		os.Exit(1)
	}
}
