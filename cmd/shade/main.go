package main

import (
	"runtime"

	"github.com/bnema/shade/internal/build"
	"github.com/bnema/shade/internal/cli/cmd"
)

// Build-time variables set by ldflags
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cmd.SetBuildInfo(build.Info{
		Version:   version,
		Commit:    commit,
		BuildDate: buildDate,
		GoVersion: runtime.Version(),
	})
	cmd.Execute()
}
