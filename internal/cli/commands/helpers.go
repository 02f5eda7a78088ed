package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aki/mknote/internal/app"
	"github.com/aki/mknote/internal/cli/ui"
	"github.com/aki/mknote/internal/core/command"
	"github.com/aki/mknote/internal/core/config"
	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/notes"
)

// Hooks swapped by tests to avoid touching the terminal
var (
	newPrompter = func() notes.Prompter { return ui.NewTerminalPrompter() }
	newReporter = func() command.Reporter { return ui.NewSpinner() }
)

// configPath returns --config, $MKNOTE_CONFIG or the default location
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	return config.DefaultPath()
}

// newContainer wires the application from the CLI flags and config file
func newContainer() (*app.Container, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	// The logger is needed before the container exists, so peek at the file.
	// Load errors surface again from NewContainer.
	logCfg := config.DefaultConfig().Log
	if cfg, err := config.LoadWithValidation(path); err == nil {
		logCfg = cfg.Log
	}
	log, err := CreateLogger(logCfg)
	if err != nil {
		return nil, err
	}

	return app.NewContainer(app.Options{
		ConfigPath: path,
		Logger:     log,
		Reporter:   newReporter(),
		Prompter:   newPrompter(),
	})
}

// withContainer runs fn with a container that is closed afterwards
func withContainer(fn func(c *app.Container) error) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

// run dispatches a registered command and returns its recorded result
func run(ctx context.Context, c *app.Container, name string, args command.Args) (any, error) {
	return c.Commands.RunResult(ctx, name, args)
}

// entryView is the JSON shape of a listing entry with a workspace-relative path
type entryView struct {
	Name  string `json:"name"`
	Path  string `json:"path"`
	Type  string `json:"type"`
	Size  int64  `json:"size"`
	Mtime string `json:"mtime"`
}

func toView(c *app.Container, e listing.Entry) entryView {
	return entryView{
		Name:  e.Name,
		Path:  c.Explorer.Rel(e.Path),
		Type:  e.Type.String(),
		Size:  e.Stat.Size,
		Mtime: time.UnixMilli(e.Stat.MtimeMillis).UTC().Format(time.RFC3339),
	}
}

func toViews(c *app.Container, entries []listing.Entry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toView(c, e))
	}
	return views
}

// batchView is the JSON shape of a BatchResult
type batchView struct {
	Succeeded []string `json:"succeeded"`
	Skipped   []string `json:"skipped,omitempty"`
	Failed    []string `json:"failed,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func relAll(c *app.Container, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, c.Explorer.Rel(p))
	}
	return out
}

// printBatch reports a batch outcome and returns its aggregated error
func printBatch(c *app.Container, verb string, res notes.BatchResult) error {
	v := batchView{
		Succeeded: relAll(c, res.Succeeded),
		Skipped:   relAll(c, res.Skipped),
		Failed:    relAll(c, res.Failed),
	}
	if res.Err != nil {
		v.Error = res.Err.Error()
	}

	if ui.GlobalFormatter.IsJSON() {
		if err := ui.GlobalFormatter.Output(v); err != nil {
			return err
		}
		return res.Err
	}

	for _, p := range v.Succeeded {
		ui.Success("%s %s", verb, p)
	}
	for _, p := range v.Skipped {
		ui.Warning("Skipped %s: target already exists", p)
	}
	for _, p := range v.Failed {
		ui.Error("Failed %s", p)
	}
	if res.Err != nil {
		return fmt.Errorf("%d of %d failed: %w", len(v.Failed), len(v.Succeeded)+len(v.Skipped)+len(v.Failed), res.Err)
	}
	return nil
}

// printPath reports a single created or renamed path
func printPath(c *app.Container, msg string, result any) error {
	p, _ := result.(string)
	rel := c.Explorer.Rel(p)
	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]string{"path": rel})
	}
	ui.Success("%s %s", msg, rel)
	return nil
}

// printMoved reports the outcome of a reorder
func printMoved(path string, result any) error {
	moved, _ := result.(bool)
	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]any{"path": path, "moved": moved})
	}
	if moved {
		ui.Success("Moved %s", path)
	} else {
		ui.Info("%s is already at the edge of the list", path)
	}
	return nil
}

// cancelled treats a dismissed prompt as a clean exit
func cancelled(err error) bool {
	if errors.Is(err, notes.ErrCancelled) {
		ui.Info("Cancelled")
		return true
	}
	return false
}
