package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/cli/ui"
)

var (
	flagConfig string
	flagFormat string
)

var rootCmd = &cobra.Command{
	Use:   "mknote",
	Short: "Note-taking file manager with manual ordering and favourites",
	Long: `mknote manages a workspace of notes on disk. Every directory can carry a
.sort file that records the manual order of its entries, and the workspace
root keeps a .favourite list of pinned paths.

Paths are relative to the workspace location (see 'mknote location').`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := ui.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		return ui.SetGlobalFormatter(format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Configuration file (default $XDG_CONFIG_HOME/mknote/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "pretty", "Output format (pretty, json)")
	RegisterLoggerFlags(rootCmd)

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(mkdirCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(mvCmd)
	rootCmd.AddCommand(cpCmd)
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(locationCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
