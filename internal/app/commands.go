package app

import (
	"context"
	"fmt"

	"github.com/aki/mknote/internal/core/command"
	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/notes"
	"github.com/aki/mknote/internal/core/ordering"
)

// Command names shared by every host.
const (
	CmdNewItem     = "notes.newItem"
	CmdNewGroup    = "notes.newGroup"
	CmdRename      = "notes.renameItem"
	CmdDelete      = "notes.deleteItem"
	CmdMove        = "notes.move"
	CmdCopy        = "notes.copy"
	CmdMoveUp      = "notes.moveUp"
	CmdMoveDown    = "notes.moveDown"
	CmdFavAdd      = "fav.add"
	CmdFavRemove   = "fav.remove"
	CmdFavMoveUp   = "fav.moveUp"
	CmdFavMoveDown = "fav.moveDown"
	CmdSetFolder   = "setFolder"
	CmdSync        = "repo.sync"
	CmdSetup       = "repo.setup"
)

// Argument keys.
const (
	ArgIn     = "in"
	ArgName   = "name"
	ArgPath   = "path"
	ArgPaths  = "paths"
	ArgTarget = "target"
	ArgURL    = "url"
	ArgParent = "parent"
	ArgYes    = "yes"
)

func (c *Container) registerCommands() {
	r := c.Commands
	ex := c.Explorer

	r.MustRegister(CmdNewItem, func(ctx context.Context, args command.Args) error {
		return c.create(ctx, args, ex.CreateFile)
	})
	r.MustRegister(CmdNewGroup, func(ctx context.Context, args command.Args) error {
		return c.create(ctx, args, ex.CreateDirectory)
	})

	r.MustRegister(CmdRename, func(ctx context.Context, args command.Args) error {
		entry, err := ex.Resolve(args.String(ArgPath))
		if err != nil {
			return err
		}
		p, err := ex.Rename(ctx, notes.Selection{entry}, args.String(ArgName))
		if err != nil {
			return err
		}
		command.SetResult(ctx, p)
		return nil
	})

	r.MustRegister(CmdDelete, func(ctx context.Context, args command.Args) error {
		entries, err := ex.ResolveAll(args.Strings(ArgPaths))
		if err != nil {
			return err
		}
		prompter := c.prompter
		if args.Bool(ArgYes) {
			prompter = notes.AlwaysYes{}
		}
		res, err := ex.DeleteWithConfirm(ctx, prompter, entries)
		if err != nil {
			return err
		}
		command.SetResult(ctx, res)
		return res.Err
	})

	r.MustRegister(CmdMove, command.WithProgress(c.reporter, "Moving", c.transfer(ex.Move)))
	r.MustRegister(CmdCopy, command.WithProgress(c.reporter, "Copying", c.transfer(ex.Copy)))

	r.MustRegister(CmdMoveUp, c.reorder(ex.Reorder, ordering.Up))
	r.MustRegister(CmdMoveDown, c.reorder(ex.Reorder, ordering.Down))
	r.MustRegister(CmdFavMoveUp, c.reorder(ex.FavouriteReorder, ordering.Up))
	r.MustRegister(CmdFavMoveDown, c.reorder(ex.FavouriteReorder, ordering.Down))

	r.MustRegister(CmdFavAdd, c.favourite(ex.FavouriteAdd))
	r.MustRegister(CmdFavRemove, c.favourite(ex.FavouriteRemove))

	r.MustRegister(CmdSetFolder, func(ctx context.Context, args command.Args) error {
		return c.ConfigManager.SetLocation(args.String(ArgPath))
	})

	r.MustRegister(CmdSync, command.WithProgress(c.reporter, "Syncing", func(ctx context.Context, args command.Args) error {
		res, err := c.Syncer.Sync(ctx)
		command.SetResult(ctx, res)
		return err
	}))

	r.MustRegister(CmdSetup, command.WithProgress(c.reporter, "Cloning", func(ctx context.Context, args command.Args) error {
		location, err := c.Syncer.Setup(ctx, args.String(ArgURL), args.String(ArgParent))
		if err != nil {
			return err
		}
		if err := c.ConfigManager.SetLocation(location); err != nil {
			return err
		}
		command.SetResult(ctx, location)
		return nil
	}))
}

type createFunc func(ctx context.Context, sel notes.Selection, name string) (string, error)

func (c *Container) create(ctx context.Context, args command.Args, fn createFunc) error {
	var sel notes.Selection
	if in := args.String(ArgIn); in != "" {
		entry, err := c.Explorer.Resolve(in)
		if err != nil {
			return err
		}
		sel = notes.Selection{entry}
	}
	p, err := fn(ctx, sel, args.String(ArgName))
	if err != nil {
		return err
	}
	command.SetResult(ctx, p)
	return nil
}

type transferFunc func(ctx context.Context, target *listing.Entry, sources []listing.Entry) notes.BatchResult

func (c *Container) transfer(fn transferFunc) command.Handler {
	return func(ctx context.Context, args command.Args) error {
		sources, err := c.Explorer.ResolveAll(args.Strings(ArgPaths))
		if err != nil {
			return err
		}
		var target *listing.Entry
		if t := args.String(ArgTarget); t != "" {
			entry, err := c.Explorer.Resolve(t)
			if err != nil {
				return fmt.Errorf("invalid target: %w", err)
			}
			target = &entry
		}
		res := fn(ctx, target, sources)
		command.SetResult(ctx, res)
		return res.Err
	}
}

type reorderFunc func(ctx context.Context, entry listing.Entry, direction ordering.Direction) (bool, error)

func (c *Container) reorder(fn reorderFunc, direction ordering.Direction) command.Handler {
	return func(ctx context.Context, args command.Args) error {
		entry, err := c.Explorer.Resolve(args.String(ArgPath))
		if err != nil {
			return err
		}
		moved, err := fn(ctx, entry, direction)
		command.SetResult(ctx, moved)
		return err
	}
}

func (c *Container) favourite(fn func(ctx context.Context, entry listing.Entry) error) command.Handler {
	return func(ctx context.Context, args command.Args) error {
		entry, err := c.Explorer.Resolve(args.String(ArgPath))
		if err != nil {
			return err
		}
		return fn(ctx, entry)
	}
}
