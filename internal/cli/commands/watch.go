package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/cli/ui"
	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/notes"
	"github.com/aki/mknote/internal/core/watch"
)

var watchDebounce = watch.DefaultDebounce

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print workspace change events",
	Long: `Watch the workspace for changes made by any program and print one line
per affected directory. With --format json every event is one JSON object.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(func(c *app.Container) error {
			root := c.Location()
			if root == "" {
				return notes.ErrNoLocation
			}

			w, err := watch.New(root, c.Events,
				watch.WithDebounce(watchDebounce),
				watch.WithSkip(c.Engine.IsReserved),
				watch.WithLogger(c.Logger),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ch, cancel := c.Events.Subscribe(64)
			defer cancel()
			done := make(chan error, 1)
			go func() { done <- w.Run(ctx) }()

			if !ui.GlobalFormatter.IsJSON() {
				ui.Info("Watching %s (Ctrl+C to stop)", root)
			}
			for {
				select {
				case <-ctx.Done():
					return <-done
				case ev, ok := <-ch:
					if !ok {
						return <-done
					}
					if err := printEvent(c, ev); err != nil {
						return err
					}
				}
			}
		})
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a directory change is reported")
}

func printEvent(c *app.Container, ev events.Event) error {
	path := ev.Path
	if path != "" {
		path = c.Explorer.Rel(path)
	}
	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]string{
			"id":   ev.ID.String(),
			"type": ev.Type,
			"path": path,
			"time": ev.Time.Format("2006-01-02T15:04:05.000Z07:00"),
		})
	}
	ui.OutputLine("%s %s %s", ui.DimStyle.Render(ev.Time.Format("15:04:05")), ev.Type, path)
	return nil
}
