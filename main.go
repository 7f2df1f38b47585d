package main

import (
	"os"

	"github.com/ezerfernandes/codeblockedit/internal/cmd"
)

// Set through -ldflags at release time.
//
//nolint:gochecknoglobals
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	info := cmd.BuildInfo{Version: version, Commit: commit, Date: date}

	os.Exit(cmd.Execute(info, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
