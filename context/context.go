// Package context provides single entry to all resources
package context

import (
	gocontext "context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/aptly-dev/pkgstats/console"
	"github.com/aptly-dev/pkgstats/http"
	"github.com/aptly-dev/pkgstats/pkgstats"
	"github.com/aptly-dev/pkgstats/utils"
	"github.com/pkg/errors"
	"github.com/smira/commander"
)

// ConfigEnvVar names environment variable with location of configuration file
const ConfigEnvVar = "PKGSTATS_CONFIG"

// StatsContext is a common context shared by all commands
type StatsContext struct {
	sync.Mutex

	gocontext.Context
	cancel gocontext.CancelFunc

	config     *utils.ConfigStructure
	progress   pkgstats.Progress
	downloader pkgstats.Downloader
}

// FatalError is type for panicking to abort execution with non-zero
// exit code and print meaningful explanation
type FatalError struct {
	ReturnCode int
	Message    string
}

// UsageError is returned on invalid command line arguments
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string {
	return e.Message
}

// Fatal panics and aborts execution with exit code 1 (2 for usage errors)
func Fatal(err error) {
	returnCode := 1

	var usageErr *UsageError
	if err == commander.ErrFlagError || err == commander.ErrCommandError || errors.As(err, &usageErr) {
		returnCode = 2
	}
	panic(&FatalError{ReturnCode: returnCode, Message: err.Error()})
}

// LoadConfig loads configuration from location in environment or from
// default locations, missing configuration files mean default settings
func LoadConfig() (*utils.ConfigStructure, error) {
	config := utils.NewConfig()

	if location := os.Getenv(ConfigEnvVar); location != "" {
		if err := utils.LoadConfig(location, config); err != nil {
			return nil, fmt.Errorf("error loading config file %s: %s", location, err)
		}
		return config, nil
	}

	configLocations := []string{
		filepath.Join(os.Getenv("HOME"), ".pkgstats.conf"),
		"/etc/pkgstats.conf",
	}

	for _, configLocation := range configLocations {
		err := utils.LoadConfig(configLocation, config)
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading config file %s: %s", configLocation, err)
		}
	}

	return config, nil
}

// NewContext initializes context with configuration, context is cancelled
// on SIGINT/SIGTERM
func NewContext(config *utils.ConfigStructure) *StatsContext {
	ctx, cancel := signal.NotifyContext(gocontext.Background(), os.Interrupt, syscall.SIGTERM)

	return &StatsContext{
		Context: ctx,
		cancel:  cancel,
		config:  config,
	}
}

// Config returns current configuration
func (context *StatsContext) Config() *utils.ConfigStructure {
	context.Lock()
	defer context.Unlock()

	return context.config
}

func (context *StatsContext) _progress() pkgstats.Progress {
	if context.progress == nil {
		context.progress = console.NewProgress()
		context.progress.Start()
	}

	return context.progress
}

// Progress creates or returns Progress object
func (context *StatsContext) Progress() pkgstats.Progress {
	context.Lock()
	defer context.Unlock()

	return context._progress()
}

// Downloader returns instance of current downloader
func (context *StatsContext) Downloader() pkgstats.Downloader {
	context.Lock()
	defer context.Unlock()

	if context.downloader == nil {
		context.downloader = http.NewGrabDownloader(context.config.DownloadLimitBytes(), context._progress())
	}

	return context.downloader
}

// SetProgress replaces Progress, it should be already started
func (context *StatsContext) SetProgress(progress pkgstats.Progress) {
	context.Lock()
	defer context.Unlock()

	context.progress = progress
}

// SetDownloader replaces downloader
func (context *StatsContext) SetDownloader(downloader pkgstats.Downloader) {
	context.Lock()
	defer context.Unlock()

	context.downloader = downloader
}

// Shutdown shuts context down
func (context *StatsContext) Shutdown() {
	context.Lock()
	defer context.Unlock()

	context.cancel()

	if context.downloader != nil {
		context.downloader = nil
	}
	if context.progress != nil {
		context.progress.Shutdown()
		context.progress = nil
	}
}
