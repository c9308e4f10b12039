// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/ftctx/internal/services/clipboard"
	"github.com/temirov/ftctx/internal/tokenizer"
	"github.com/temirov/ftctx/internal/utils"
)

const (
	rootFlagName         = "root"
	verboseFlagName      = "verbose"
	versionFlagName      = "version"
	versionTemplate      = "ftctx version: %s\n"
	rootUse              = "ftctx"
	rootShortDescription = "keep a project file tree inside a marked region of a document"
	rootLongDescription  = `ftctx renders the directory tree of a project and writes it between the
<FileTree> and </FileTree> markers of the file named by ` + utils.ConfigFileName + `.
Ignore files listed in the configuration (default .gitignore) filter the tree; hidden entries are always skipped.
Use "watch" to regenerate on every save, "update" for a single run, and "tree" to print the tree.`
	rootFlagDescription    = "project root (default: nearest directory holding " + utils.ConfigFileName + ", else the working directory)"
	verboseFlagDescription = "log skipped runs and save events"
	versionFlagDescription = "display application version"

	workingDirectoryErrorFormat = "unable to determine working directory: %w"
	errorAbsolutePathFormat     = "abs failed for '%s': %w"
	errorRootNotDirectoryFormat = "root '%s' is not a directory"
	errorStatFormat             = "stat failed for '%s': %w"
)

// errUpdateFailed is returned when a one-shot update aborted. The reason has already been logged.
var errUpdateFailed = errors.New("file tree update failed")

// application carries state shared by every command.
type application struct {
	rootDirectory string
	verbose       bool
	logger        *zap.Logger
	copier        clipboard.Copier
	newCounter    func(model string) (tokenizer.Counter, string, error)
}

// Execute runs the ftctx application.
func Execute() error {
	return ExecuteContext(context.Background(), os.Args[1:])
}

// ExecuteContext runs the ftctx application with explicit arguments.
func ExecuteContext(ctx context.Context, arguments []string) error {
	app := &application{
		copier:     clipboard.NewSystemCopier(),
		newCounter: tokenizer.NewCounter,
	}
	rootCommand := app.createRootCommand()
	rootCommand.SetArgs(arguments)
	defer app.syncLogger()
	return rootCommand.ExecuteContext(ctx)
}

// createRootCommand builds the root Cobra command.
func (app *application) createRootCommand() *cobra.Command {
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				_, printError := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return printError
			}
			return command.Help()
		},
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			if app.logger == nil {
				logger, loggerError := utils.NewApplicationLogger(app.verbose)
				if loggerError != nil {
					return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
				}
				app.logger = logger
			}
			return nil
		},
	}
	rootCommand.PersistentFlags().StringVar(&app.rootDirectory, rootFlagName, "", rootFlagDescription)
	rootCommand.PersistentFlags().BoolVarP(&app.verbose, verboseFlagName, "v", false, verboseFlagDescription)
	rootCommand.Flags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.AddCommand(
		app.createUpdateCommand(),
		app.createWatchCommand(),
		app.createTreeCommand(),
		app.createInitCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// resolveRoot returns the absolute project root selected by --root or discovered from the working directory.
func (app *application) resolveRoot() (string, error) {
	if app.rootDirectory == "" {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf(workingDirectoryErrorFormat, workingDirectoryError)
		}
		return utils.FindProjectRoot(workingDirectory)
	}
	absoluteRoot, absoluteError := filepath.Abs(app.rootDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf(errorAbsolutePathFormat, app.rootDirectory, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return "", fmt.Errorf(errorStatFormat, absoluteRoot, statError)
	}
	if !rootInfo.IsDir() {
		return "", fmt.Errorf(errorRootNotDirectoryFormat, absoluteRoot)
	}
	return absoluteRoot, nil
}

func (app *application) syncLogger() {
	if app.logger != nil {
		_ = app.logger.Sync()
	}
}
