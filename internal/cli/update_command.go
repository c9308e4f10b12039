package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/ftctx/internal/updater"
)

const (
	updateUse              = "update"
	updateAlias            = "u"
	updateShortDescription = "regenerate the file tree once (" + updateAlias + ")"
	updateLongDescription  = `Regenerate the file tree and write it into the configured target file, exactly as a single save event would.
A project without a configuration file is left alone.`
)

// createUpdateCommand returns the update subcommand.
func (app *application) createUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     updateUse,
		Aliases: []string{updateAlias},
		Short:   updateShortDescription,
		Long:    updateLongDescription,
		Args:    cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			rootDirectory, rootError := app.resolveRoot()
			if rootError != nil {
				return rootError
			}
			if updater.New(rootDirectory, app.logger).Run() == updater.ResultFailed {
				return errUpdateFailed
			}
			return nil
		},
	}
}
