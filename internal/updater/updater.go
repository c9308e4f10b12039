// Package updater regenerates the project file tree and writes it into the configured target file.
package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/ftctx/internal/config"
	"github.com/temirov/ftctx/internal/filetree"
	"github.com/temirov/ftctx/internal/ignore"
	"github.com/temirov/ftctx/internal/marker"
	"github.com/temirov/ftctx/internal/utils"
	"github.com/temirov/ftctx/internal/watch"
)

// Result classifies how a run ended.
type Result string

const (
	// ResultUpdated means the target file was written.
	ResultUpdated Result = "updated"
	// ResultNoRoot means no project root was available.
	ResultNoRoot Result = "no_root"
	// ResultNotConfigured means the project has no configuration file.
	ResultNotConfigured Result = "not_configured"
	// ResultFailed means the run aborted; the reason was logged.
	ResultFailed Result = "failed"
)

const (
	targetFilePermissions = 0o644

	errorLoadIgnoreRulesFormat = "load ignore rules: %w"
	errorGenerateTreeFormat    = "generate file tree for %s: %w"
	errorReadTargetFormat      = "read target file %s: %w"
	errorWriteTargetFormat     = "failed to update %s: %w"
	errorPanicFormat           = "panic during update: %v"

	logMessageUpdated        = "file tree updated"
	logMessageNoRoot         = "no project root; skipping update"
	logMessageNotConfigured  = "configuration file not found; skipping update"
	logMessageFailed         = "file tree update failed"
	logMessageMarkersMissing = "target file has no FileTree markers; replacing its content"
	logMessageSaveReceived   = "save event received"
)

// ErrNoRoot reports an Updater constructed without a project root.
var ErrNoRoot = errors.New("no project root")

// Report describes the outcome of a tree generation.
type Report struct {
	RootDirectory string
	TargetPath    string
	Tree          string
	RowCount      int
	PatternCount  int
}

// Updater runs the regenerate-and-inject pipeline for one project root.
// Configuration and ignore files are read from disk on every run.
type Updater struct {
	rootDirectoryPath string
	logger            *zap.Logger
}

// New constructs an Updater for rootDirectoryPath. An empty root turns every run into a no-op.
func New(rootDirectoryPath string, logger *zap.Logger) *Updater {
	return &Updater{rootDirectoryPath: rootDirectoryPath, logger: utils.LoggerOrNop(logger)}
}

// RootDirectory returns the project root the Updater works on.
func (updater *Updater) RootDirectory() string {
	return updater.rootDirectoryPath
}

// HandleSave runs the pipeline in response to a save anywhere under the root.
// The saved path is only logged.
func (updater *Updater) HandleSave(ctx context.Context, event watch.Event) {
	if ctx.Err() != nil {
		return
	}
	updater.logger.Debug(logMessageSaveReceived, zap.String("path", event.Path))
	updater.Run()
}

// Run executes one update, logs its outcome and never panics.
func (updater *Updater) Run() (result Result) {
	defer func() {
		if recovered := recover(); recovered != nil {
			updater.logger.Error(logMessageFailed, zap.String("root", updater.rootDirectoryPath), zap.Error(fmt.Errorf(errorPanicFormat, recovered)))
			result = ResultFailed
		}
	}()

	report, updateError := updater.Update()
	switch {
	case updateError == nil:
		updater.logger.Info(logMessageUpdated,
			zap.String("target", report.TargetPath),
			zap.Int("entries", report.RowCount),
			zap.Int("patterns", report.PatternCount),
		)
		return ResultUpdated
	case errors.Is(updateError, ErrNoRoot):
		updater.logger.Debug(logMessageNoRoot)
		return ResultNoRoot
	case errors.Is(updateError, config.ErrConfigurationMissing):
		updater.logger.Debug(logMessageNotConfigured, zap.String("path", config.ProjectConfigurationPath(updater.rootDirectoryPath)))
		return ResultNotConfigured
	default:
		updater.logger.Error(logMessageFailed, zap.String("root", updater.rootDirectoryPath), zap.Error(updateError))
		return ResultFailed
	}
}

// Update regenerates the tree and writes it into the configured target file.
// Nothing is written unless every preceding step succeeded.
func (updater *Updater) Update() (Report, error) {
	if updater.rootDirectoryPath == "" {
		return Report{}, ErrNoRoot
	}
	configuration, configurationError := config.LoadProjectConfiguration(updater.rootDirectoryPath)
	if configurationError != nil {
		return Report{}, configurationError
	}

	report, generateError := updater.generate(configuration.IgnoreFiles)
	if generateError != nil {
		return Report{}, generateError
	}
	report.TargetPath = configuration.TargetPath(updater.rootDirectoryPath)

	currentDocument, targetExists, readError := readTargetDocument(report.TargetPath)
	if readError != nil {
		return Report{}, readError
	}
	if targetExists && !marker.HasRegion(currentDocument) {
		updater.logger.Warn(logMessageMarkersMissing, zap.String("target", report.TargetPath))
	}

	updatedDocument := marker.Inject(currentDocument, report.Tree)
	if writeError := os.WriteFile(report.TargetPath, []byte(updatedDocument), targetFilePermissions); writeError != nil {
		return Report{}, fmt.Errorf(errorWriteTargetFormat, configuration.TargetFile, writeError)
	}
	return report, nil
}

// Preview generates the tree without touching the target file. Without a configuration
// file the default ignore files are used.
func (updater *Updater) Preview() (Report, error) {
	if updater.rootDirectoryPath == "" {
		return Report{}, ErrNoRoot
	}
	ignoreFiles := config.DefaultIgnoreFiles()
	targetPath := ""
	configuration, configurationError := config.LoadProjectConfiguration(updater.rootDirectoryPath)
	switch {
	case configurationError == nil:
		ignoreFiles = configuration.IgnoreFiles
		targetPath = configuration.TargetPath(updater.rootDirectoryPath)
	case !errors.Is(configurationError, config.ErrConfigurationMissing):
		return Report{}, configurationError
	}

	report, generateError := updater.generate(ignoreFiles)
	if generateError != nil {
		return Report{}, generateError
	}
	report.TargetPath = targetPath
	return report, nil
}

// IsTargetPath reports whether candidatePath is the currently configured target file.
func (updater *Updater) IsTargetPath(candidatePath string) bool {
	if updater.rootDirectoryPath == "" {
		return false
	}
	configuration, configurationError := config.LoadProjectConfiguration(updater.rootDirectoryPath)
	if configurationError != nil {
		return false
	}
	return samePath(candidatePath, configuration.TargetPath(updater.rootDirectoryPath))
}

func (updater *Updater) generate(ignoreFiles []string) (Report, error) {
	matcher, matcherError := ignore.LoadMatcher(updater.rootDirectoryPath, ignoreFiles)
	if matcherError != nil {
		return Report{}, fmt.Errorf(errorLoadIgnoreRulesFormat, matcherError)
	}
	rows, walkError := filetree.Walk(updater.rootDirectoryPath, updater.rootDirectoryPath, matcher)
	if walkError != nil {
		return Report{}, fmt.Errorf(errorGenerateTreeFormat, updater.rootDirectoryPath, walkError)
	}
	return Report{
		RootDirectory: updater.rootDirectoryPath,
		Tree:          filetree.Render(rows),
		RowCount:      len(rows),
		PatternCount:  matcher.PatternCount(),
	}, nil
}

// readTargetDocument returns the target content, or marker.EmptyDocument when the file does not exist.
//
// #nosec G304
func readTargetDocument(targetPath string) (string, bool, error) {
	content, readError := os.ReadFile(targetPath)
	if readError != nil {
		if os.IsNotExist(readError) {
			return marker.EmptyDocument, false, nil
		}
		return "", false, fmt.Errorf(errorReadTargetFormat, targetPath, readError)
	}
	return string(content), true, nil
}

func samePath(firstPath string, secondPath string) bool {
	absoluteFirst, firstError := filepath.Abs(firstPath)
	absoluteSecond, secondError := filepath.Abs(secondPath)
	if firstError != nil || secondError != nil {
		return filepath.Clean(firstPath) == filepath.Clean(secondPath)
	}
	return absoluteFirst == absoluteSecond
}
