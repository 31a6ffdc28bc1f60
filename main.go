package main

import (
	"os"

	"github.com/aptly-dev/pkgstats/cmd"
	"github.com/aptly-dev/pkgstats/pkgstats"
)

// Version variable, filled in at link time
var Version string

func main() {
	if Version == "" {
		Version = "unknown"
	}

	pkgstats.Version = Version

	os.Exit(cmd.Run(cmd.RootCommand(), os.Args[1:], true))
}
