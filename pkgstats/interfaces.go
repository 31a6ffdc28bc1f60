// Package pkgstats provides common infrastructure shared by downloader,
// console and command packages
package pkgstats

import (
	"context"
)

// Version of pkgstats, filled in at link time
var Version string

// Progress is a progress displaying entity, it allows progress bars & simple prints
type Progress interface {
	// Start makes progress start its work
	Start()
	// Shutdown shuts down progress display
	Shutdown()
	// Flush returns when all queued messages are sent
	Flush()
	// InitBar starts progressbar for count bytes or count items
	InitBar(count int64, isBytes bool)
	// ShutdownBar stops progress bar and hides it
	ShutdownBar()
	// SetBar sets current position for progress bar
	SetBar(count int)
	// Printf does printf but in safe manner: not overwriting progress bar
	Printf(msg string, a ...interface{})
	// PrintfStdErr does printf but in safe manner to stderr
	PrintfStdErr(msg string, a ...interface{})
	// ColoredPrintf does printf in colored way + newline
	ColoredPrintf(msg string, a ...interface{})
	// ColoredPrintfStdErr does printf in colored way + newline to stderr
	ColoredPrintfStdErr(msg string, a ...interface{})
}

// Downloader fetches remote index files to local storage
type Downloader interface {
	// Download fetches url and stores it at destination
	Download(ctx context.Context, url string, destination string) error
	// GetProgress returns Progress object
	GetProgress() Progress
	// GetLength returns size by heading object with url
	GetLength(ctx context.Context, url string) (int64, error)
}
