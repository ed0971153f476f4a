// cmd/zoolaunch/main.go
package main

import (
	cmd "github.com/mwiater/zoolaunch/internal/cli"
)

// Build-time variables injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Indirection points so tests can observe the wiring.
var (
	setVersionInfo = cmd.SetVersionInfo
	executeCmd     = cmd.Execute
)

// main starts the zoolaunch CLI by delegating to the cobra root command
// defined in the zoolaunch package.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
