package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/cli/ui"
	"github.com/aki/mknote/internal/core/command"
	"github.com/aki/mknote/internal/core/git"
)

var syncStatus bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Commit, pull and push the workspace repository",
	Long: `Stage every change in the workspace, commit it with a timestamp message,
pull the current branch from the remote and push it back.

The remote is git.remote from the configuration, otherwise "origin",
otherwise the first configured remote.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

var cloneCmd = &cobra.Command{
	Use:   "clone <url> <parent>",
	Short: "Clone a notes repository and use it as the workspace",
	Long: `Clone the repository into <parent>/notes and make that directory the
workspace location.`,
	Example: `  mknote clone git@github.com:me/notes.git ~/Documents`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			result, err := run(cmd.Context(), c, app.CmdSetup, command.Args{
				app.ArgURL:    args[0],
				app.ArgParent: args[1],
			})
			if err != nil {
				return err
			}
			location, _ := result.(string)
			if ui.GlobalFormatter.IsJSON() {
				return ui.GlobalFormatter.Output(map[string]string{"location": location})
			}
			ui.Success("Cloned %s into %s", args[0], location)
			return nil
		})
	},
}

func init() {
	syncCmd.Flags().BoolVar(&syncStatus, "status", false, "Show repository status instead of syncing")
}

func runSync(cmd *cobra.Command, args []string) error {
	return withContainer(func(c *app.Container) error {
		if syncStatus {
			return showRepoStatus(c)
		}

		result, err := run(cmd.Context(), c, app.CmdSync, nil)
		res, _ := result.(*git.SyncResult)
		if res != nil && ui.GlobalFormatter.IsJSON() {
			if oerr := ui.GlobalFormatter.Output(res); oerr != nil {
				return oerr
			}
		} else if res != nil {
			if res.Committed {
				ui.Success("Committed %s", shortHash(res.Commit))
			}
			if res.Pulled {
				ui.Success("Pulled %s from %s", res.Branch, res.Remote)
			}
			if res.Pushed {
				ui.Success("Pushed %s to %s", res.Branch, res.Remote)
			}
			if !res.Committed && !res.Pulled && !res.Pushed && err == nil {
				ui.Info("Already up to date")
			}
		}
		return err
	})
}

func showRepoStatus(c *app.Container) error {
	info, err := c.Syncer.Status()
	if err != nil {
		return err
	}
	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(info)
	}

	state := "clean"
	if !info.IsClean {
		state = "uncommitted changes"
	}
	ui.PrintKeyValue("Path", info.Path)
	ui.PrintKeyValue("Branch", info.Branch)
	if info.Remote != "" {
		ui.PrintKeyValue("Remote", info.Remote+" "+ui.DimStyle.Render(info.RemoteURL))
	}
	ui.PrintKeyValue("Status", state)
	return nil
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
