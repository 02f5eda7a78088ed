package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/core/command"
)

var createIn string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create an empty note",
	Long: `Create an empty file. Without --in it goes into the workspace root; when
--in names a file, the note is created next to it.`,
	Example: `  mknote new todo.md
  mknote new 2024-05-01.md --in journal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, app.CmdNewItem, "Created", args[0])
	},
}

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, app.CmdNewGroup, "Created directory", args[0])
	},
}

func init() {
	newCmd.Flags().StringVar(&createIn, "in", "", "Directory (or a file inside it) to create in")
	mkdirCmd.Flags().StringVar(&createIn, "in", "", "Directory (or a file inside it) to create in")
}

func runCreate(cmd *cobra.Command, name, msg, itemName string) error {
	return withContainer(func(c *app.Container) error {
		result, err := run(cmd.Context(), c, name, command.Args{
			app.ArgName: itemName,
			app.ArgIn:   createIn,
		})
		if err != nil {
			return err
		}
		return printPath(c, msg, result)
	})
}
