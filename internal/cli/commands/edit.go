package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/core/command"
	"github.com/aki/mknote/internal/core/notes"
)

var rmYes bool

var renameCmd = &cobra.Command{
	Use:   "rename <path> <new-name>",
	Short: "Rename a note or directory in place",
	Long: `Rename an entry within its directory. Its position in the directory's
.sort file and any favourites pointing at it follow the new name.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			result, err := run(cmd.Context(), c, app.CmdRename, command.Args{
				app.ArgPath: args[0],
				app.ArgName: args[1],
			})
			if err != nil {
				return err
			}
			return printPath(c, "Renamed to", result)
		})
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <path>...",
	Aliases: []string{"delete"},
	Short:   "Delete notes or directories",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			result, err := run(cmd.Context(), c, app.CmdDelete, command.Args{
				app.ArgPaths: args,
				app.ArgYes:   rmYes,
			})
			if cancelled(err) {
				return nil
			}
			res, ok := result.(notes.BatchResult)
			if !ok {
				return err
			}
			return printBatch(c, "Deleted", res)
		})
	},
}

var mvCmd = &cobra.Command{
	Use:   "mv <path>... <target>",
	Short: "Move entries into a directory",
	Long: `Move entries into the target directory. Entries whose name is already
taken at the target are skipped. Use "." as target for the workspace root.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(cmd, app.CmdMove, "Moved", args)
	},
}

var cpCmd = &cobra.Command{
	Use:   "cp <path>... <target>",
	Short: "Copy entries into a directory",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransfer(cmd, app.CmdCopy, "Copied", args)
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Do not ask for confirmation")
}

func runTransfer(cmd *cobra.Command, name, verb string, args []string) error {
	sources, target := args[:len(args)-1], args[len(args)-1]
	return withContainer(func(c *app.Container) error {
		result, err := run(cmd.Context(), c, name, command.Args{
			app.ArgPaths:  sources,
			app.ArgTarget: target,
		})
		res, ok := result.(notes.BatchResult)
		if !ok {
			return err
		}
		return printBatch(c, verb, res)
	})
}
