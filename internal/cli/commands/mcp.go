package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/mcp"
)

var mcpNoWatch bool

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server on stdio so that AI agents can list,
create, reorder and favourite notes. Paths given to tools are relative to
the workspace location.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			server, err := mcp.NewServer(c, Version)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			// stdout carries the protocol, so everything else goes to stderr
			fmt.Fprintf(os.Stderr, "Starting MCP server with stdio transport\n")
			if !mcpNoWatch {
				if err := server.Watch(ctx); err != nil {
					fmt.Fprintf(os.Stderr, "Workspace watch disabled: %v\n", err)
				}
			}

			if err := server.ServeStdio(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("server error: %w", err)
			}
			fmt.Fprintf(os.Stderr, "MCP server stopped\n")
			return nil
		})
	},
}

func init() {
	mcpCmd.Flags().BoolVar(&mcpNoWatch, "no-watch", false, "Do not send resource notifications for external changes")
}
