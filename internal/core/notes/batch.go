package notes

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aki/mknote/internal/core/favourites"
	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/logger"
)

// maxParallel bounds the fan-out of batch operations.
const maxParallel = 8

// BatchResult is the outcome of an operation over several entries. One
// failure never stops the others.
type BatchResult struct {
	Succeeded []string `json:"succeeded"`
	// Skipped entries already had a same-named entry at the target
	Skipped []string `json:"skipped,omitempty"`
	Failed  []string `json:"failed,omitempty"`
	Err     error    `json:"-"`
}

// OK reports whether every entry succeeded or was skipped.
func (r BatchResult) OK() bool {
	return r.Err == nil
}

// ErrIntoItself is returned for a directory moved or copied into itself or
// one of its descendants.
var ErrIntoItself = errors.New("cannot move or copy a directory into itself")

type batch struct {
	mu      sync.Mutex
	result  BatchResult
	errs    []error
	renames []favourites.Rename
}

func (b *batch) succeed(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result.Succeeded = append(b.result.Succeeded, path)
}

func (b *batch) skip(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result.Skipped = append(b.result.Skipped, path)
}

func (b *batch) fail(path string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result.Failed = append(b.result.Failed, path)
	b.errs = append(b.errs, err)
}

func (b *batch) moved(from, to string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.renames = append(b.renames, favourites.Rename{From: from, To: to})
	b.result.Succeeded = append(b.result.Succeeded, from)
}

func (b *batch) done() BatchResult {
	b.result.Err = errors.Join(b.errs...)
	return b.result
}

// each runs fn for every entry concurrently and waits for all of them. The
// group has no shared context, so a failing entry does not cancel its siblings.
func each(entries []listing.Entry, fn func(listing.Entry)) {
	var g errgroup.Group
	g.SetLimit(maxParallel)
	for _, entry := range entries {
		g.Go(func() error {
			fn(entry)
			return nil
		})
	}
	_ = g.Wait()
}

// Delete removes every entry recursively.
func (e *Explorer) Delete(ctx context.Context, entries []listing.Entry) BatchResult {
	defer e.refresh("")
	log := logger.FromContext(ctx)

	var b batch
	each(entries, func(entry listing.Entry) {
		if e.isRoot(entry.Path) {
			b.fail(entry.Path, fmt.Errorf("delete %s: %w", entry.Path, ErrWorkspaceRoot))
			return
		}
		if err := e.fs.RemoveAll(entry.Path); err != nil {
			log.Warn("delete failed", "path", entry.Path, "error", err)
			b.fail(entry.Path, err)
			return
		}
		b.succeed(entry.Path)
	})
	return b.done()
}

// DeleteWithConfirm asks p before deleting.
func (e *Explorer) DeleteWithConfirm(ctx context.Context, p Prompter, entries []listing.Entry) (BatchResult, error) {
	if len(entries) == 0 {
		return BatchResult{}, ErrNoSelection
	}
	for _, entry := range entries {
		if e.isRoot(entry.Path) {
			return BatchResult{}, ErrWorkspaceRoot
		}
	}
	msg := fmt.Sprintf("Delete %s?", filepath.Base(entries[0].Path))
	if len(entries) > 1 {
		msg = fmt.Sprintf("Delete %d items?", len(entries))
	}
	ok, err := p.Confirm(ctx, msg)
	if err != nil {
		return BatchResult{}, err
	}
	if !ok {
		return BatchResult{}, ErrCancelled
	}
	return e.Delete(ctx, entries), nil
}

// TargetDir resolves where a move or copy lands: target itself when it is a
// directory, its parent when it is a file, the root when target is nil.
func (e *Explorer) TargetDir(target *listing.Entry) string {
	switch {
	case target == nil:
		return e.Root()
	case target.IsDir():
		return target.Path
	default:
		return filepath.Dir(target.Path)
	}
}

// Move moves sources into the target directory. Sources whose name is already
// taken there are skipped. Favourites follow moved entries.
func (e *Explorer) Move(ctx context.Context, target *listing.Entry, sources []listing.Entry) BatchResult {
	return e.transfer(ctx, target, sources, true)
}

// Copy copies sources into the target directory, recursively for directories.
// Sources whose name is already taken there are skipped.
func (e *Explorer) Copy(ctx context.Context, target *listing.Entry, sources []listing.Entry) BatchResult {
	return e.transfer(ctx, target, sources, false)
}

func (e *Explorer) transfer(ctx context.Context, target *listing.Entry, sources []listing.Entry, move bool) BatchResult {
	dir := e.TargetDir(target)
	defer e.refresh(dir)
	log := logger.FromContext(ctx)

	var b batch
	if dir == "" {
		for _, src := range sources {
			b.fail(src.Path, ErrNoLocation)
		}
		return b.done()
	}

	each(sources, func(src listing.Entry) {
		switch {
		case e.isRoot(src.Path):
			b.fail(src.Path, fmt.Errorf("%s: %w", src.Path, ErrWorkspaceRoot))
			return
		case within(dir, src.Path):
			b.fail(src.Path, fmt.Errorf("%s: %w", src.Path, ErrIntoItself))
			return
		}

		dst := filepath.Join(dir, filepath.Base(src.Path))
		if e.fs.Exists(dst) {
			b.skip(src.Path)
			return
		}

		var err error
		if move {
			err = e.fs.MoveOnto(dir, src.Path)
		} else {
			err = e.fs.CopyOnto(dir, src.Path)
		}
		if err != nil {
			log.Warn("transfer failed", "path", src.Path, "target", dir, "move", move, "error", err)
			b.fail(src.Path, err)
			return
		}
		if move {
			b.moved(src.Path, dst)
			return
		}
		b.succeed(src.Path)
	})

	// Favourites are rewritten once for the whole batch
	e.followFavourites(ctx, b.renames)
	return b.done()
}

// within reports whether dir is p or lies below it.
func within(dir, p string) bool {
	dir, p = filepath.Clean(dir), filepath.Clean(p)
	return dir == p || strings.HasPrefix(dir, p+string(filepath.Separator))
}
