package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/ftctx/internal/config"
	"github.com/temirov/ftctx/internal/ignore"
	"github.com/temirov/ftctx/internal/updater"
	"github.com/temirov/ftctx/internal/utils"
	"github.com/temirov/ftctx/internal/watch"
)

const (
	watchUse              = "watch"
	watchAlias            = "w"
	watchShortDescription = "regenerate the file tree on every save (" + watchAlias + ")"
	watchLongDescription  = `Watch the project root and regenerate the file tree whenever a file is saved.
Failed runs are logged and watching continues. Stop with Ctrl+C.`
	watchUsageExample = `  # Watch the current project
  ftctx watch

  # Watch another project and refresh once before waiting for saves
  ftctx watch --root ../service --update-on-start`

	updateOnStartFlagName        = "update-on-start"
	updateOnStartFlagDescription = "run one update before waiting for saves"

	logMessageWatching       = "watching for saves"
	logMessageStopped        = "stopped watching"
	logMessageExclusionsLoad = "failed to load ignore rules for the watch scope"

	errorSubscriptionEndedFormat = "watching %s ended: %w"
)

// createWatchCommand returns the watch subcommand.
func (app *application) createWatchCommand() *cobra.Command {
	var updateOnStart bool

	watchCommand := &cobra.Command{
		Use:     watchUse,
		Aliases: []string{watchAlias},
		Short:   watchShortDescription,
		Long:    watchLongDescription,
		Example: watchUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			rootDirectory, rootError := app.resolveRoot()
			if rootError != nil {
				return rootError
			}
			signalContext, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.runWatch(signalContext, rootDirectory, updateOnStart)
		},
	}
	watchCommand.Flags().BoolVar(&updateOnStart, updateOnStartFlagName, false, updateOnStartFlagDescription)
	return watchCommand
}

// runWatch activates a watch session and dispatches saves to the updater until ctx is done.
func (app *application) runWatch(ctx context.Context, rootDirectory string, updateOnStart bool) error {
	logger := utils.LoggerOrNop(app.logger)
	runner := updater.New(rootDirectory, logger)
	session, activateError := watch.Activate(watch.Options{
		RootDirectory: rootDirectory,
		SkipPath:      runner.IsTargetPath,
		SkipDirectory: app.watchExclusions(rootDirectory),
		Logger:        logger,
	}, runner)
	if activateError != nil {
		return activateError
	}
	defer func() {
		_ = session.Deactivate()
	}()

	if updateOnStart {
		runner.Run()
	}
	logger.Info(logMessageWatching, zap.String("root", session.RootDirectory()))

	serveError := serveSession(ctx, session)
	logger.Info(logMessageStopped, zap.String("root", session.RootDirectory()))
	return serveError
}

// serveSession delivers save events until ctx is done. A subscription that closes while ctx
// is still live ends serving with an error.
func serveSession(ctx context.Context, session *watch.Session) error {
	group, groupContext := errgroup.WithContext(ctx)
	group.Go(func() error {
		runError := session.Run(groupContext)
		if errors.Is(runError, watch.ErrSessionClosed) && ctx.Err() != nil {
			return nil
		}
		if runError != nil {
			return fmt.Errorf(errorSubscriptionEndedFormat, session.RootDirectory(), runError)
		}
		return nil
	})
	group.Go(func() error {
		<-groupContext.Done()
		return session.Deactivate()
	})
	return group.Wait()
}

// watchExclusions keeps directories excluded by the ignore rules present at activation out of the subscription.
func (app *application) watchExclusions(rootDirectory string) func(string) bool {
	ignoreFiles := config.DefaultIgnoreFiles()
	if configuration, configurationError := config.LoadProjectConfiguration(rootDirectory); configurationError == nil {
		ignoreFiles = configuration.IgnoreFiles
	}
	matcher, matcherError := ignore.LoadMatcher(rootDirectory, ignoreFiles)
	if matcherError != nil {
		utils.LoggerOrNop(app.logger).Warn(logMessageExclusionsLoad, zap.Error(matcherError))
		return nil
	}
	return func(absolutePath string) bool {
		return matcher.Ignores(utils.DirectoryMatchPath(utils.RelativePathOrSelf(absolutePath, rootDirectory)))
	}
}
