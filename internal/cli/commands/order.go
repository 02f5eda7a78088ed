package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/core/command"
)

var upCmd = &cobra.Command{
	Use:   "up <path>",
	Short: "Move an entry one position up in its directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReorder(cmd, app.CmdMoveUp, args[0])
	},
}

var downCmd = &cobra.Command{
	Use:   "down <path>",
	Short: "Move an entry one position down in its directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReorder(cmd, app.CmdMoveDown, args[0])
	},
}

func runReorder(cmd *cobra.Command, name, path string) error {
	return withContainer(func(c *app.Container) error {
		result, err := run(cmd.Context(), c, name, command.Args{app.ArgPath: path})
		if err != nil {
			return err
		}
		return printMoved(path, result)
	})
}
