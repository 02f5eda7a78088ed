package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/cli/ui"
	"github.com/aki/mknote/internal/core/command"
)

var locationCmd = &cobra.Command{
	Use:   "location [path]",
	Short: "Show or set the workspace location",
	Long: `Without arguments, print the workspace location. With a path, make that
existing directory the workspace and save it to the configuration file.

The MKNOTE_LOCATION environment variable overrides the saved location.
The configuration file is read from MKNOTE_CONFIG when set.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			if len(args) == 1 {
				if _, err := run(cmd.Context(), c, app.CmdSetFolder, command.Args{app.ArgPath: args[0]}); err != nil {
					return err
				}
			}

			location := c.Location()
			if ui.GlobalFormatter.IsJSON() {
				return ui.GlobalFormatter.Output(map[string]string{"location": location})
			}
			switch {
			case location == "":
				ui.Warning("No workspace location configured. Run 'mknote location <path>'")
			case len(args) == 1:
				ui.Success("Workspace location set to %s", location)
			default:
				ui.OutputLine("%s", location)
			}
			return nil
		})
	},
}

