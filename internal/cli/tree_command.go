package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/ftctx/internal/marker"
	"github.com/temirov/ftctx/internal/tokenizer"
	"github.com/temirov/ftctx/internal/updater"
)

const (
	treeUse              = "tree"
	treeAlias            = "t"
	treeShortDescription = "print the file tree without writing it (" + treeAlias + ")"
	treeLongDescription  = `Print the file tree that the next update would write.
The ignore files of the configuration are used when it exists, otherwise .gitignore.`
	treeUsageExample = `  # Print the tree wrapped in markers and copy it
  ftctx tree --markers --clipboard

  # Estimate its token cost
  ftctx tree --tokens --model gpt-4o`

	tokensFlagName           = "tokens"
	modelFlagName            = "model"
	clipboardFlagName        = "clipboard"
	markersFlagName          = "markers"
	tokensFlagDescription    = "report the token count of the tree"
	modelFlagDescription     = "tokenizer model to use for token counting"
	clipboardFlagDescription = "copy the printed tree to the clipboard"
	markersFlagDescription   = "wrap the tree in <FileTree> markers"

	tokenSummaryFormat = "%d tokens (%s)\n"
)

// treeOptions stores the flags of the tree subcommand.
type treeOptions struct {
	countTokens   bool
	model         string
	copyClipboard bool
	withMarkers   bool
}

// createTreeCommand returns the tree subcommand.
func (app *application) createTreeCommand() *cobra.Command {
	var options treeOptions

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			rootDirectory, rootError := app.resolveRoot()
			if rootError != nil {
				return rootError
			}
			return app.runTree(command, rootDirectory, options)
		},
	}
	treeCommand.Flags().BoolVar(&options.countTokens, tokensFlagName, false, tokensFlagDescription)
	treeCommand.Flags().StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	treeCommand.Flags().BoolVar(&options.copyClipboard, clipboardFlagName, false, clipboardFlagDescription)
	treeCommand.Flags().BoolVar(&options.withMarkers, markersFlagName, false, markersFlagDescription)
	return treeCommand
}

// runTree renders the preview of rootDirectory to the command output.
func (app *application) runTree(command *cobra.Command, rootDirectory string, options treeOptions) error {
	report, previewError := updater.New(rootDirectory, app.logger).Preview()
	if previewError != nil {
		return previewError
	}
	renderedTree := report.Tree
	if options.withMarkers {
		renderedTree = marker.Inject(marker.EmptyDocument, report.Tree) + "\n"
	}
	if _, printError := fmt.Fprint(command.OutOrStdout(), renderedTree); printError != nil {
		return printError
	}

	if options.countTokens {
		counter, resolvedModel, counterError := app.newCounter(options.model)
		if counterError != nil {
			return counterError
		}
		tokenCount, countError := tokenizer.CountText(counter, renderedTree)
		if countError != nil {
			return countError
		}
		if _, printError := fmt.Fprintf(command.ErrOrStderr(), tokenSummaryFormat, tokenCount, resolvedModel); printError != nil {
			return printError
		}
	}

	if options.copyClipboard {
		return app.copier.Copy(renderedTree)
	}
	return nil
}
