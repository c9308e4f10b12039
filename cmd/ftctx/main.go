package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/temirov/ftctx/internal/cli"
	"github.com/temirov/ftctx/internal/utils"
)

const (
	exitCodeFailure       = 1
	fallbackFailureFormat = "%s: %v\n"
)

// main runs ftctx and exits non-zero when a command fails.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		reportFailure(executionError)
		os.Exit(exitCodeFailure)
	}
}

// reportFailure logs executionError through a console logger, falling back to plain stderr
// when no logger can be built.
func reportFailure(executionError error) {
	logger, loggerError := utils.NewApplicationLogger(false)
	if loggerError != nil {
		_, _ = fmt.Fprintf(os.Stderr, fallbackFailureFormat, utils.ApplicationExecutionFailedMessage, executionError)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger.Error(utils.ApplicationExecutionFailedMessage, zap.Error(executionError))
}
