package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/ftctx/internal/config"
	"github.com/temirov/ftctx/internal/utils"
)

const (
	initUse              = "init"
	initShortDescription = "write a default " + utils.ConfigFileName
	initLongDescription  = `Write a default configuration file into the project root.
Existing configuration is kept unless --force is given.`

	targetFlagName        = "target"
	forceFlagName         = "force"
	targetFlagDescription = "target file relative to the project root"
	forceFlagDescription  = "overwrite an existing configuration"

	initSuccessFormat = "configuration written to %s\n"
)

// createInitCommand returns the init subcommand.
func (app *application) createInitCommand() *cobra.Command {
	var options config.InitOptions

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			rootDirectory, rootError := app.resolveRoot()
			if rootError != nil {
				return rootError
			}
			options.RootDirectory = rootDirectory
			destinationPath, initError := config.InitializeConfiguration(options)
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(command.OutOrStdout(), initSuccessFormat, destinationPath)
			return printError
		},
	}
	initCommand.Flags().StringVar(&options.TargetFile, targetFlagName, config.DefaultTargetFile, targetFlagDescription)
	initCommand.Flags().BoolVar(&options.Force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
