package cmd

import (
	"sync"

	ctx "github.com/aptly-dev/pkgstats/context"
	"github.com/aptly-dev/pkgstats/utils"
)

var context *ctx.StatsContext
var contextMutex sync.Mutex

// InitContext loads configuration, sets up logging and creates context
func InitContext() error {
	contextMutex.Lock()
	defer contextMutex.Unlock()

	if context != nil {
		panic("context already initialized")
	}

	config, err := ctx.LoadConfig()
	if err != nil {
		return err
	}

	utils.SetupLogger(config.LogFormat, config.LogLevel)

	context = ctx.NewContext(config)

	return nil
}

// ShutdownContext shuts context down
func ShutdownContext() {
	contextMutex.Lock()
	defer contextMutex.Unlock()

	context.Shutdown()
	context = nil
}

// GetContext gives access to the context
func GetContext() *ctx.StatsContext {
	contextMutex.Lock()
	defer contextMutex.Unlock()

	return context
}

// SetContext replaces context, used in tests
func SetContext(c *ctx.StatsContext) {
	contextMutex.Lock()
	defer contextMutex.Unlock()

	context = c
}
