// Package notes implements the user-facing mutations of the notes tree:
// creating, renaming, deleting, moving, copying and reordering entries, and
// maintaining favourites. Every mutation keeps the ordering and favourites
// records consistent with the filesystem and announces a listing refresh when
// it finishes, whether it succeeded or not.
package notes

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/favourites"
	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/core/ordering"
	"github.com/aki/mknote/internal/filemanager"
)

var (
	// ErrInvalidName is returned for names that cannot be used for an entry
	ErrInvalidName = errors.New("invalid name")
	// ErrNoLocation is returned when no workspace location is configured
	ErrNoLocation = errors.New("workspace location is not set")
	// ErrNoSelection is returned by operations that need a current item
	ErrNoSelection = errors.New("nothing selected")
	// ErrWorkspaceRoot is returned when the root itself would be renamed,
	// deleted, moved or copied
	ErrWorkspaceRoot = fmt.Errorf("%w: the workspace root cannot be changed", ErrInvalidName)
)

// Selection is what the host has selected; the last item is the current one.
type Selection []listing.Entry

// Current returns the current item.
func (s Selection) Current() (listing.Entry, bool) {
	if len(s) == 0 {
		return listing.Entry{}, false
	}
	return s[len(s)-1], true
}

// Deps are the collaborators of an Explorer.
type Deps struct {
	FS         filemanager.FS
	Engine     *listing.Engine
	Ordering   *ordering.Store
	Favourites *favourites.Store
	Location   favourites.Location
	Events     events.Publisher
	Logger     logger.Logger
}

// Explorer performs mutations against the workspace.
type Explorer struct {
	fs       filemanager.FS
	engine   *listing.Engine
	ordering *ordering.Store
	favs     *favourites.Store
	loc      favourites.Location
	pub      events.Publisher
	log      logger.Logger

	mu   sync.Mutex
	clip clipboard
}

// NewExplorer creates an Explorer.
func NewExplorer(d Deps) *Explorer {
	pub := d.Events
	if pub == nil {
		pub = events.Discard
	}
	return &Explorer{
		fs:       d.FS,
		engine:   d.Engine,
		ordering: d.Ordering,
		favs:     d.Favourites,
		loc:      d.Location,
		pub:      pub,
		log:      logger.Component(d.Logger, "notes"),
	}
}

// Root returns the workspace root.
func (e *Explorer) Root() string {
	return e.loc.Location()
}

func (e *Explorer) isRoot(p string) bool {
	root := e.Root()
	return root != "" && filepath.Clean(p) == filepath.Clean(root)
}

// CurrentDir is the directory new items go into: the root when nothing is
// selected, the current item when it is a directory, otherwise its parent.
func (e *Explorer) CurrentDir(sel Selection) string {
	cur, ok := sel.Current()
	if !ok {
		return e.Root()
	}
	if cur.IsDir() {
		return cur.Path
	}
	return filepath.Dir(cur.Path)
}

// CreateFile creates an empty file called name in CurrentDir.
func (e *Explorer) CreateFile(ctx context.Context, sel Selection, name string) (string, error) {
	return e.create(ctx, sel, name, false)
}

// CreateDirectory creates a directory called name in CurrentDir.
func (e *Explorer) CreateDirectory(ctx context.Context, sel Selection, name string) (string, error) {
	return e.create(ctx, sel, name, true)
}

func (e *Explorer) create(ctx context.Context, sel Selection, name string, dir bool) (string, error) {
	parent := e.CurrentDir(sel)
	defer e.refresh(parent)

	if parent == "" {
		return "", ErrNoLocation
	}
	if err := e.ValidateName(name); err != nil {
		return "", err
	}
	target := filepath.Join(parent, name)
	if e.fs.Exists(target) {
		return "", filemanager.NewError(filemanager.KindAlreadyExists, "create", target)
	}

	var err error
	if dir {
		err = e.fs.MkdirAll(target)
	} else {
		err = e.fs.CreateFile(target)
	}
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info("created", "path", target, "directory", dir)
	return target, nil
}

// Rename renames the current item within its parent. Its position in the
// parent's ordering record and any favourites pointing at it or below it
// follow the new name.
func (e *Explorer) Rename(ctx context.Context, sel Selection, newName string) (string, error) {
	cur, ok := sel.Current()
	if !ok {
		return "", ErrNoSelection
	}
	if e.isRoot(cur.Path) {
		return "", ErrWorkspaceRoot
	}
	parent := filepath.Dir(cur.Path)
	defer e.refresh(parent)

	if err := e.ValidateName(newName); err != nil {
		return "", err
	}
	target := filepath.Join(parent, newName)
	if target == cur.Path {
		return target, nil
	}
	if e.fs.Exists(target) {
		return "", filemanager.NewError(filemanager.KindAlreadyExists, "rename", target)
	}
	if err := e.fs.Rename(cur.Path, target); err != nil {
		return "", err
	}

	if err := e.ordering.Rename(ctx, parent, cur.Name, newName); err != nil {
		e.log.Warn("failed to update ordering after rename", "dir", parent, "error", err)
	}
	e.followFavourite(ctx, cur.Path, target)
	return target, nil
}

// MoveUp moves entry one place up in its directory's displayed order.
func (e *Explorer) MoveUp(ctx context.Context, entry listing.Entry) (bool, error) {
	return e.reorder(ctx, entry, ordering.Up)
}

// MoveDown moves entry one place down in its directory's displayed order.
func (e *Explorer) MoveDown(ctx context.Context, entry listing.Entry) (bool, error) {
	return e.reorder(ctx, entry, ordering.Down)
}

// Reorder moves entry one place in direction.
func (e *Explorer) Reorder(ctx context.Context, entry listing.Entry, direction ordering.Direction) (bool, error) {
	return e.reorder(ctx, entry, direction)
}

func (e *Explorer) reorder(ctx context.Context, entry listing.Entry, direction ordering.Direction) (bool, error) {
	dir := filepath.Dir(entry.Path)
	defer e.refresh(dir)
	return e.ordering.MoveWithinList(ctx, e.engine, dir, filepath.Base(entry.Path), direction)
}

// FavouriteAdd adds entry to the favourites.
func (e *Explorer) FavouriteAdd(ctx context.Context, entry listing.Entry) error {
	defer e.refreshFavourites()
	rel, err := e.favs.Relative(entry.Path)
	if err != nil {
		return err
	}
	return e.favs.Add(ctx, rel)
}

// FavouriteRemove removes entry from the favourites.
func (e *Explorer) FavouriteRemove(ctx context.Context, entry listing.Entry) error {
	defer e.refreshFavourites()
	rel, err := e.favs.Relative(entry.Path)
	if err != nil {
		return err
	}
	return e.favs.Remove(ctx, rel)
}

// FavouriteMoveUp moves entry one place up in the favourites.
func (e *Explorer) FavouriteMoveUp(ctx context.Context, entry listing.Entry) (bool, error) {
	return e.FavouriteReorder(ctx, entry, ordering.Up)
}

// FavouriteMoveDown moves entry one place down in the favourites.
func (e *Explorer) FavouriteMoveDown(ctx context.Context, entry listing.Entry) (bool, error) {
	return e.FavouriteReorder(ctx, entry, ordering.Down)
}

// FavouriteReorder moves entry one place in direction within the favourites.
func (e *Explorer) FavouriteReorder(ctx context.Context, entry listing.Entry, direction ordering.Direction) (bool, error) {
	defer e.refreshFavourites()
	rel, err := e.favs.Relative(entry.Path)
	if err != nil {
		return false, err
	}
	return e.favs.MoveWithinList(ctx, rel, direction)
}

// ValidateName rejects names that cannot denote a single visible entry.
func (e *Explorer) ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case e.engine.IsReserved(name):
		return fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	}
	return nil
}

// followFavourite rewrites favourites after oldPath became newPath.
func (e *Explorer) followFavourite(ctx context.Context, oldPath, newPath string) {
	e.followFavourites(ctx, []favourites.Rename{{From: oldPath, To: newPath}})
}

// followFavourites rewrites favourites for absolute From/To pairs in one pass.
func (e *Explorer) followFavourites(ctx context.Context, moves []favourites.Rename) {
	renames := make([]favourites.Rename, 0, len(moves))
	for _, m := range moves {
		from, err := e.favs.Relative(m.From)
		if err != nil {
			continue
		}
		to, err := e.favs.Relative(m.To)
		if err != nil {
			continue
		}
		renames = append(renames, favourites.Rename{From: from, To: to})
	}
	if len(renames) == 0 {
		return
	}
	if err := e.favs.RenamePrefixes(ctx, renames); err != nil {
		e.log.Warn("failed to update favourites", "count", len(renames), "error", err)
		return
	}
	e.pub.Publish(events.New(events.FavouritesChanged, ""))
}

func (e *Explorer) refresh(dir string) {
	e.pub.Publish(events.New(events.ListingChanged, dir))
}

func (e *Explorer) refreshFavourites() {
	e.pub.Publish(events.New(events.FavouritesChanged, ""))
}
