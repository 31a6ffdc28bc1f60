// Package cmd implements console commands
package cmd

import (
	"os"

	"github.com/smira/commander"
	"github.com/smira/flag"
)

// RootCommand creates root command
func RootCommand() *commander.Command {
	return &commander.Command{
		Run:       pkgstatsRun,
		UsageLine: os.Args[0] + " <architecture>",
		Short:     "report packages owning the most files",
		Long: `
pkgstats downloads Contents index for the architecture from Debian mirror,
counts number of files provided by each package and prints ten packages
with the most files.

Mirror, download directory and logging are configured in ~/.pkgstats.conf,
/etc/pkgstats.conf or file named by PKGSTATS_CONFIG.

ex:
  $ pkgstats amd64
`,
		Flag: *flag.NewFlagSet("pkgstats", flag.ExitOnError),
	}
}
