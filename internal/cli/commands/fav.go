package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/cli/ui"
	"github.com/aki/mknote/internal/core/command"
)

var favCmd = &cobra.Command{
	Use:     "fav",
	Aliases: []string{"favourite", "favorite"},
	Short:   "Manage workspace favourites",
	Long: `Favourites are workspace-relative paths kept in the .favourite file at the
workspace root. Entries whose target no longer exists are dropped the next
time the list is read.`,
}

var favLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List favourites in order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			entries, err := c.Favourites.Entries(cmd.Context())
			if err != nil {
				return err
			}

			if ui.GlobalFormatter.IsJSON() {
				return ui.GlobalFormatter.Output(toViews(c, entries))
			}

			if len(entries) == 0 {
				ui.Info("No favourites")
				return nil
			}
			ui.PrintSectionHeader(ui.StarIcon, "Favourites", len(entries))
			for _, e := range entries {
				ui.OutputLine("  %s %s", ui.EntryIcon(e.Type), ui.PinnedStyle.Render(e.Name))
			}
			return nil
		})
	},
}

var favAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Add a path to the favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFav(cmd, app.CmdFavAdd, "Added favourite", args[0])
	},
}

var favRmCmd = &cobra.Command{
	Use:     "rm <path>",
	Aliases: []string{"remove"},
	Short:   "Remove a path from the favourites",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFav(cmd, app.CmdFavRemove, "Removed favourite", args[0])
	},
}

var favUpCmd = &cobra.Command{
	Use:   "up <path>",
	Short: "Move a favourite one position up",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReorder(cmd, app.CmdFavMoveUp, args[0])
	},
}

var favDownCmd = &cobra.Command{
	Use:   "down <path>",
	Short: "Move a favourite one position down",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReorder(cmd, app.CmdFavMoveDown, args[0])
	},
}

func init() {
	favCmd.AddCommand(favLsCmd)
	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRmCmd)
	favCmd.AddCommand(favUpCmd)
	favCmd.AddCommand(favDownCmd)
}

func runFav(cmd *cobra.Command, name, msg, path string) error {
	return withContainer(func(c *app.Container) error {
		if _, err := run(cmd.Context(), c, name, command.Args{app.ArgPath: path}); err != nil {
			return err
		}
		if ui.GlobalFormatter.IsJSON() {
			return ui.GlobalFormatter.Output(map[string]string{"path": path})
		}
		ui.Success("%s %s", msg, path)
		return nil
	})
}
