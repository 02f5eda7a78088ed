package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/cli/ui"
	"github.com/aki/mknote/internal/core/listing"
)

var treeDepth int

var lsCmd = &cobra.Command{
	Use:     "ls [dir]",
	Aliases: []string{"list"},
	Short:   "List a directory in display order",
	Long: `List the children of a workspace directory. Entries recorded in the
directory's .sort file come first in that order; the rest follow with
directories first, then by name.`,
	Example: `  # List the workspace root
  mknote ls

  # List a sub-directory as JSON
  mknote ls journal --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

var treeCmd = &cobra.Command{
	Use:   "tree [dir]",
	Short: "Show the workspace as a tree",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTree,
}

func init() {
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "d", 0, "Maximum depth (0 for unlimited)")
}

func argDir(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func runLs(cmd *cobra.Command, args []string) error {
	return withContainer(func(c *app.Container) error {
		dir, err := c.Explorer.Abs(argDir(args))
		if err != nil {
			return err
		}
		entries, err := c.Engine.List(cmd.Context(), dir)
		if err != nil {
			return err
		}

		if ui.GlobalFormatter.IsJSON() {
			return ui.GlobalFormatter.Output(toViews(c, entries))
		}
		ui.PrintEntryList(c.Explorer.Rel(dir), entries)
		return nil
	})
}

// nodeView is the JSON shape of a tree node
type nodeView struct {
	entryView
	Children []nodeView `json:"children,omitempty"`
}

func toNodeViews(c *app.Container, nodes []listing.Node) []nodeView {
	views := make([]nodeView, 0, len(nodes))
	for _, n := range nodes {
		views = append(views, nodeView{
			entryView: toView(c, n.Entry),
			Children:  toNodeViews(c, n.Children),
		})
	}
	return views
}

func runTree(cmd *cobra.Command, args []string) error {
	return withContainer(func(c *app.Container) error {
		dir, err := c.Explorer.Abs(argDir(args))
		if err != nil {
			return err
		}
		nodes, err := c.Engine.Tree(cmd.Context(), dir, treeDepth)
		if err != nil {
			return err
		}

		if ui.GlobalFormatter.IsJSON() {
			return ui.GlobalFormatter.Output(toNodeViews(c, nodes))
		}
		ui.OutputLine("%s", ui.DirStyle.Render(c.Explorer.Rel(dir)))
		ui.PrintTree(nodes)
		return nil
	})
}
