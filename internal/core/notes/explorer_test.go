package notes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/favourites"
	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/core/ordering"
	"github.com/aki/mknote/internal/filemanager"
	"github.com/aki/mknote/internal/filemanager/fmtest"
)

type fixture struct {
	root   string
	ex     *Explorer
	fs     *fmtest.Faulty
	engine *listing.Engine
	favs   *favourites.Store
	events *events.Fake
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	fsys := fmtest.NewFaulty(filemanager.NewOSFS())
	log := logger.Nop()
	store := ordering.NewStore(fsys, log)
	engine, err := listing.NewEngine(fsys, store, log)
	require.NoError(t, err)
	loc := favourites.Fixed(root)
	favs := favourites.NewStore(fsys, loc, log)
	pub := events.NewFake()

	return &fixture{
		root:   root,
		fs:     fsys,
		engine: engine,
		favs:   favs,
		events: pub,
		ex: NewExplorer(Deps{
			FS:         fsys,
			Engine:     engine,
			Ordering:   store,
			Favourites: favs,
			Location:   loc,
			Events:     pub,
			Logger:     log,
		}),
	}
}

func (f *fixture) touch(t *testing.T, rel string) listing.Entry {
	t.Helper()
	p := filepath.Join(f.root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(rel), 0o644))
	return f.entry(t, rel)
}

func (f *fixture) mkdir(t *testing.T, rel string) listing.Entry {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(f.root, filepath.FromSlash(rel)), 0o755))
	return f.entry(t, rel)
}

func (f *fixture) entry(t *testing.T, rel string) listing.Entry {
	t.Helper()
	p := filepath.Join(f.root, filepath.FromSlash(rel))
	st, err := f.fs.Stat(p)
	require.NoError(t, err)
	return listing.Entry{Path: p, Name: filepath.Base(p), Type: st.Type, Stat: st}
}

func (f *fixture) names(t *testing.T, rel string) []string {
	t.Helper()
	names, err := f.engine.Names(context.Background(), filepath.Join(f.root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return names
}

func (f *fixture) exists(rel string) bool {
	_, err := os.Lstat(filepath.Join(f.root, filepath.FromSlash(rel)))
	return err == nil
}

func TestExplorer_CurrentDir(t *testing.T) {
	f := newFixture(t)
	dir := f.mkdir(t, "notes")
	file := f.touch(t, "notes/a.md")

	assert.Equal(t, f.root, f.ex.CurrentDir(nil))
	assert.Equal(t, dir.Path, f.ex.CurrentDir(Selection{dir}))
	assert.Equal(t, dir.Path, f.ex.CurrentDir(Selection{dir, file}))
}

func TestExplorer_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := f.mkdir(t, "notes")

	p, err := f.ex.CreateFile(ctx, Selection{dir}, "todo.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir.Path, "todo.md"), p)
	assert.True(t, f.exists("notes/todo.md"))

	p, err = f.ex.CreateDirectory(ctx, nil, "projects")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.root, "projects"), p)

	_, err = f.ex.CreateFile(ctx, Selection{dir}, "todo.md")
	assert.ErrorIs(t, err, filemanager.ErrAlreadyExists)

	assert.Equal(t, []string{events.ListingChanged, events.ListingChanged, events.ListingChanged}, f.events.Types())
}

func TestExplorer_CreateInvalidNames(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"", "  ", ".", "..", "a/b", ordering.FileName, favourites.FileName, ".git"} {
		_, err := f.ex.CreateFile(context.Background(), nil, name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
	// A failed command still refreshes
	assert.Len(t, f.events.Events, 8)
}

func TestExplorer_CreateWithoutLocation(t *testing.T) {
	f := newFixture(t)
	f.ex.loc = favourites.Fixed("")
	_, err := f.ex.CreateFile(context.Background(), nil, "a.md")
	assert.ErrorIs(t, err, ErrNoLocation)
}

func TestExplorer_RenameKeepsPosition(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.touch(t, "a.md")
	b := f.touch(t, "b.md")
	f.touch(t, "c.md")
	require.NoError(t, os.WriteFile(filepath.Join(f.root, ordering.FileName), []byte("c.md\nb.md\na.md\ngone.md"), 0o644))

	p, err := f.ex.Rename(ctx, Selection{b}, "renamed.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.root, "renamed.md"), p)
	assert.Equal(t, []string{"c.md", "renamed.md", "a.md"}, f.names(t, ""))

	data, err := os.ReadFile(filepath.Join(f.root, ordering.FileName))
	require.NoError(t, err)
	assert.Equal(t, "c.md\nrenamed.md\na.md", string(data))
}

func TestExplorer_RenameConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.touch(t, "a.md")
	f.touch(t, "b.md")

	_, err := f.ex.Rename(ctx, Selection{a}, "b.md")
	assert.ErrorIs(t, err, filemanager.ErrAlreadyExists)

	_, err = f.ex.Rename(ctx, nil, "x")
	assert.ErrorIs(t, err, ErrNoSelection)

	p, err := f.ex.Rename(ctx, Selection{a}, "a.md")
	require.NoError(t, err)
	assert.Equal(t, a.Path, p)
}

func TestExplorer_RenameMovesFavourites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dir := f.mkdir(t, "old")
	f.touch(t, "old/x.md")
	require.NoError(t, f.favs.Add(ctx, "old/x.md"))

	_, err := f.ex.Rename(ctx, Selection{dir}, "new")
	require.NoError(t, err)

	list, err := f.favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new/x.md"}, list)
	assert.Contains(t, f.events.Types(), events.FavouritesChanged)
}

func TestExplorer_MoveUpDown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.mkdir(t, "z")
	a := f.touch(t, "a.txt")
	b := f.touch(t, "b.txt")
	assert.Equal(t, []string{"z", "a.txt", "b.txt"}, f.names(t, ""))

	moved, err := f.ex.MoveUp(ctx, b)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"z", "b.txt", "a.txt"}, f.names(t, ""))

	moved, err = f.ex.MoveDown(ctx, a)
	require.NoError(t, err)
	assert.False(t, moved)

	z := f.entry(t, "z")
	moved, err = f.ex.MoveUp(ctx, z)
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestExplorer_Favourites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.touch(t, "a.md")
	b := f.touch(t, "dir/b.md")

	require.NoError(t, f.ex.FavouriteAdd(ctx, a))
	require.NoError(t, f.ex.FavouriteAdd(ctx, b))

	moved, err := f.ex.FavouriteMoveUp(ctx, b)
	require.NoError(t, err)
	assert.True(t, moved)
	list, err := f.favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/b.md", "a.md"}, list)

	moved, err = f.ex.FavouriteMoveDown(ctx, a)
	require.NoError(t, err)
	assert.False(t, moved)

	require.NoError(t, f.ex.FavouriteRemove(ctx, b))
	list, err = f.favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, list)

	outside := listing.Entry{Path: filepath.Dir(f.root)}
	assert.ErrorIs(t, f.ex.FavouriteAdd(ctx, outside), favourites.ErrOutsideWorkspace)
}

func TestExplorer_DeletePartialFailure(t *testing.T) {
	f := newFixture(t)
	a := f.touch(t, "a.md")
	b := f.touch(t, "b.md")
	dir := f.mkdir(t, "dir")
	f.touch(t, "dir/nested.md")

	boom := errors.New("disk on fire")
	f.fs.Fail(b.Path, boom)

	res := f.ex.Delete(context.Background(), []listing.Entry{a, b, dir})
	assert.ElementsMatch(t, []string{a.Path, dir.Path}, res.Succeeded)
	assert.Equal(t, []string{b.Path}, res.Failed)
	assert.ErrorIs(t, res.Err, boom)
	assert.False(t, res.OK())

	assert.False(t, f.exists("a.md"))
	assert.True(t, f.exists("b.md"))
	assert.False(t, f.exists("dir"))
	assert.Equal(t, []string{events.ListingChanged}, f.events.Types())
}

type scriptedPrompter struct {
	confirm bool
	err     error
	input   string
}

func (p scriptedPrompter) Input(context.Context, string, string) (string, error) {
	return p.input, p.err
}

func (p scriptedPrompter) Confirm(context.Context, string) (bool, error) {
	return p.confirm, p.err
}

func TestExplorer_DeleteWithConfirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.touch(t, "a.md")

	_, err := f.ex.DeleteWithConfirm(ctx, scriptedPrompter{confirm: false}, []listing.Entry{a})
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, filemanager.KindCancelled, filemanager.KindOf(err))
	assert.True(t, f.exists("a.md"))

	res, err := f.ex.DeleteWithConfirm(ctx, AlwaysYes{}, []listing.Entry{a})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.False(t, f.exists("a.md"))

	_, err = f.ex.DeleteWithConfirm(ctx, AlwaysYes{}, nil)
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestExplorer_MoveAndCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.touch(t, "a.md")
	taken := f.touch(t, "taken.md")
	dest := f.mkdir(t, "dest")
	f.touch(t, "dest/taken.md")
	inDest := f.touch(t, "dest/other.md")

	// A file target resolves to its parent directory
	res := f.ex.Copy(ctx, &inDest, []listing.Entry{a, taken})
	require.NoError(t, res.Err)
	assert.Equal(t, []string{a.Path}, res.Succeeded)
	assert.Equal(t, []string{taken.Path}, res.Skipped)
	assert.True(t, f.exists("a.md"))
	assert.True(t, f.exists("dest/a.md"))

	data, err := os.ReadFile(filepath.Join(dest.Path, "taken.md"))
	require.NoError(t, err)
	assert.Equal(t, "dest/taken.md", string(data), "existing entry is left untouched")

	sub := f.mkdir(t, "sub")
	res = f.ex.Move(ctx, &sub, []listing.Entry{a})
	require.NoError(t, res.Err)
	assert.False(t, f.exists("a.md"))
	assert.True(t, f.exists("sub/a.md"))

	// Nil target is the root
	moved := f.entry(t, "sub/a.md")
	res = f.ex.Move(ctx, nil, []listing.Entry{moved})
	require.NoError(t, res.Err)
	assert.True(t, f.exists("a.md"))
}

func TestExplorer_MoveFollowsFavourites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.touch(t, "a.md")
	dest := f.mkdir(t, "dest")
	require.NoError(t, f.favs.Add(ctx, "a.md"))

	res := f.ex.Move(ctx, &dest, []listing.Entry{a})
	require.NoError(t, res.Err)

	list, err := f.favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dest/a.md"}, list)
}

func TestExplorer_MovePartialFailure(t *testing.T) {
	f := newFixture(t)
	a := f.touch(t, "a.md")
	b := f.touch(t, "b.md")
	dest := f.mkdir(t, "dest")
	f.fs.Fail(a.Path, errors.New("locked"))

	res := f.ex.Move(context.Background(), &dest, []listing.Entry{a, b})
	assert.Equal(t, []string{b.Path}, res.Succeeded)
	assert.Equal(t, []string{a.Path}, res.Failed)
	assert.Error(t, res.Err)
	assert.True(t, f.exists("dest/b.md"))
}

func TestExplorer_MoveManyFollowsFavourites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dest := f.mkdir(t, "dest")

	var sources []listing.Entry
	var want []string
	for i := range 8 {
		name := fmt.Sprintf("n%d.md", i)
		sources = append(sources, f.touch(t, name))
		require.NoError(t, f.favs.Add(ctx, name))
		want = append(want, "dest/"+name)
	}

	res := f.ex.Move(ctx, &dest, sources)
	require.NoError(t, res.Err)
	assert.Len(t, res.Succeeded, 8)

	list, err := f.favs.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, list)

	changes := 0
	for _, typ := range f.events.Types() {
		if typ == events.FavouritesChanged {
			changes++
		}
	}
	assert.Equal(t, 1, changes)
}

func TestExplorer_WorkspaceRootIsNotMutable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.touch(t, "a.md")
	dest := f.mkdir(t, "dest")

	dot, err := f.ex.Resolve(".")
	require.NoError(t, err)
	empty, err := f.ex.Resolve("")
	require.NoError(t, err)

	res := f.ex.Delete(ctx, []listing.Entry{dot})
	assert.ErrorIs(t, res.Err, ErrWorkspaceRoot)
	assert.Equal(t, []string{dot.Path}, res.Failed)
	assert.True(t, f.exists("a.md"))

	_, err = f.ex.DeleteWithConfirm(ctx, AlwaysYes{}, []listing.Entry{empty})
	assert.ErrorIs(t, err, ErrWorkspaceRoot)

	_, err = f.ex.Rename(ctx, Selection{empty}, "escaped")
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.True(t, f.exists("a.md"))
	assert.NoFileExists(t, filepath.Join(filepath.Dir(f.root), "escaped"))

	res = f.ex.Move(ctx, &dest, []listing.Entry{dot})
	assert.ErrorIs(t, res.Err, ErrWorkspaceRoot)
	res = f.ex.Copy(ctx, &dest, []listing.Entry{dot})
	assert.ErrorIs(t, res.Err, ErrWorkspaceRoot)
	assert.False(t, f.exists("dest/"+filepath.Base(f.root)))

	// the root is still a valid target
	b := f.touch(t, "dest/b.md")
	res = f.ex.Move(ctx, nil, []listing.Entry{b})
	require.NoError(t, res.Err)
	assert.True(t, f.exists("b.md"))
}

func TestExplorer_TransferIntoItself(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.mkdir(t, "d")
	sub := f.mkdir(t, "d/sub")
	f.touch(t, "d/a.md")

	for _, target := range []listing.Entry{d, sub} {
		res := f.ex.Copy(ctx, &target, []listing.Entry{d})
		assert.ErrorIs(t, res.Err, ErrIntoItself)
		assert.Equal(t, []string{d.Path}, res.Failed)

		res = f.ex.Move(ctx, &target, []listing.Entry{d})
		assert.ErrorIs(t, res.Err, ErrIntoItself)
		assert.Equal(t, []string{d.Path}, res.Failed)
	}
	assert.False(t, f.exists("d/d"))
	assert.False(t, f.exists("d/sub/d"))
	assert.True(t, f.exists("d/a.md"))

	// a sibling sharing the prefix is not a descendant
	dd := f.mkdir(t, "dd")
	res := f.ex.Copy(ctx, &dd, []listing.Entry{d})
	require.NoError(t, res.Err)
	assert.True(t, f.exists("dd/d/a.md"))
}

func TestExplorer_Clipboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.touch(t, "a.md")
	dest := f.mkdir(t, "dest")

	assert.False(t, f.ex.HasClipboard())
	_, err := f.ex.Paste(ctx, &dest)
	assert.ErrorIs(t, err, ErrEmptyClipboard)

	f.ex.CopyToClipboard(Selection{a})
	assert.True(t, f.ex.HasClipboard())
	res, err := f.ex.Paste(ctx, &dest)
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.True(t, f.exists("a.md"))
	assert.True(t, f.exists("dest/a.md"))
	assert.False(t, f.ex.HasClipboard())

	other := f.mkdir(t, "other")
	f.ex.Cut(Selection{a})
	res, err = f.ex.Paste(ctx, &other)
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.False(t, f.exists("a.md"))
	assert.True(t, f.exists("other/a.md"))
}

func TestExplorer_PromptName(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	name, err := f.ex.PromptName(ctx, scriptedPrompter{input: "note.md"}, "Name", "")
	require.NoError(t, err)
	assert.Equal(t, "note.md", name)

	_, err = f.ex.PromptName(ctx, scriptedPrompter{input: "a/b"}, "Name", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = f.ex.PromptName(ctx, AlwaysYes{}, "Name", "")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestExplorer_Resolve(t *testing.T) {
	f := newFixture(t)
	f.touch(t, "notes/a.md")

	entry, err := f.ex.Resolve("notes/a.md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.root, "notes", "a.md"), entry.Path)
	assert.Equal(t, "a.md", entry.Name)
	assert.Equal(t, "notes/a.md", f.ex.Rel(entry.Path))

	abs, err := f.ex.Abs("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(f.root), abs)

	_, err = f.ex.Resolve(entry.Path)
	assert.NoError(t, err, "absolute paths under the root are accepted")

	_, err = f.ex.Resolve("../escape")
	assert.ErrorIs(t, err, ErrOutsideWorkspace)

	_, err = f.ex.Resolve("notes/missing.md")
	assert.ErrorIs(t, err, filemanager.ErrNotFound)

	_, err = f.ex.ResolveAll([]string{"notes/a.md", "nope"})
	assert.Error(t, err)
}
