package favourites

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/core/ordering"
	"github.com/aki/mknote/internal/filemanager"
)

func setup(t *testing.T) (*Store, string) {
	t.Helper()
	root := t.TempDir()
	return NewStore(filemanager.NewOSFS(), Fixed(root), logger.Nop()), root
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func readSidecar(t *testing.T, root string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, FileName))
	require.NoError(t, err)
	return string(data)
}

func TestStore_ListPrunesMissing(t *testing.T) {
	s, root := setup(t)
	touch(t, filepath.Join(root, "notes", "todo.md"))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("notes/todo.md\nnotes/missing.md"), 0o644))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"notes/todo.md"}, list)
	assert.Equal(t, "notes/todo.md", readSidecar(t, root))
}

func TestStore_ListNormalizesLeadingSlash(t *testing.T) {
	s, root := setup(t)
	touch(t, filepath.Join(root, "a.md"))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("/a.md\n\n"), 0o644))

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, list)
	assert.Equal(t, "a.md", readSidecar(t, root))
}

func TestStore_ListMissingRecord(t *testing.T) {
	s, root := setup(t)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	_, err = os.Stat(filepath.Join(root, FileName))
	assert.True(t, os.IsNotExist(err), "listing must not create the record")
}

func TestStore_AddRemove(t *testing.T) {
	s, root := setup(t)
	ctx := context.Background()
	touch(t, filepath.Join(root, "a.md"))
	touch(t, filepath.Join(root, "dir", "b.md"))

	require.NoError(t, s.Add(ctx, "a.md"))
	require.NoError(t, s.Add(ctx, "dir/b.md"))
	require.NoError(t, s.Add(ctx, "a.md"))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "dir/b.md"}, list)

	require.NoError(t, s.Remove(ctx, "a.md"))
	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dir/b.md"}, list)
	assert.Equal(t, "dir/b.md", readSidecar(t, root))
}

func TestStore_MoveWithinList(t *testing.T) {
	s, root := setup(t)
	ctx := context.Background()
	for _, n := range []string{"a", "b", "c"} {
		touch(t, filepath.Join(root, n))
		require.NoError(t, s.Add(ctx, n))
	}

	moved, err := s.MoveWithinList(ctx, "c", ordering.Up)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, "a\nc\nb", readSidecar(t, root))

	moved, err = s.MoveWithinList(ctx, "a", ordering.Up)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = s.MoveWithinList(ctx, "b", ordering.Down)
	require.NoError(t, err)
	assert.False(t, moved)

	_, err = s.MoveWithinList(ctx, "zzz", ordering.Down)
	assert.ErrorIs(t, err, filemanager.ErrNotFound)
}

func TestStore_Entries(t *testing.T) {
	s, root := setup(t)
	ctx := context.Background()
	touch(t, filepath.Join(root, "notes", "todo.md"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "projects"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("projects\nnotes/todo.md"), 0o644))

	entries, err := s.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "projects", entries[0].Name)
	assert.Equal(t, filemanager.TypeDirectory, entries[0].Type)
	assert.Equal(t, "notes/todo.md", entries[1].Name)
	assert.Equal(t, filepath.Join(root, "notes", "todo.md"), entries[1].Path)
}

func TestStore_Relative(t *testing.T) {
	s, root := setup(t)

	rel, err := s.Relative(filepath.Join(root, "notes", "todo.md"))
	require.NoError(t, err)
	assert.Equal(t, "notes/todo.md", rel)

	for _, p := range []string{root, filepath.Dir(root), filepath.Join(root, "..", "elsewhere")} {
		_, err := s.Relative(p)
		assert.ErrorIs(t, err, ErrOutsideWorkspace, p)
	}
}

func TestStore_RenamePrefix(t *testing.T) {
	s, root := setup(t)
	ctx := context.Background()
	touch(t, filepath.Join(root, "old", "x.md"))
	touch(t, filepath.Join(root, "other.md"))
	require.NoError(t, s.Add(ctx, "old"))
	require.NoError(t, s.Add(ctx, "old/x.md"))
	require.NoError(t, s.Add(ctx, "other.md"))

	require.NoError(t, os.Rename(filepath.Join(root, "old"), filepath.Join(root, "new")))
	require.NoError(t, s.RenamePrefix(ctx, "old", "new"))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "new/x.md", "other.md"}, list)
}

func TestStore_RenamePrefixes(t *testing.T) {
	s, root := setup(t)
	ctx := context.Background()
	for _, n := range []string{"a.md", "b.md", "dir/c.md", "keep.md"} {
		touch(t, filepath.Join(root, filepath.FromSlash(n)))
		require.NoError(t, s.Add(ctx, n))
	}
	require.NoError(t, s.Add(ctx, "dir"))

	require.NoError(t, os.MkdirAll(filepath.Join(root, "dst"), 0o755))
	for _, n := range []string{"a.md", "b.md", "dir"} {
		require.NoError(t, os.Rename(filepath.Join(root, n), filepath.Join(root, "dst", n)))
	}
	require.NoError(t, s.RenamePrefixes(ctx, []Rename{
		{From: "a.md", To: "dst/a.md"},
		{From: "b.md", To: "dst/b.md"},
		{From: "dir", To: "dst/dir"},
	}))

	assert.Equal(t, "dst/a.md\ndst/b.md\ndst/dir/c.md\nkeep.md\ndst/dir", readSidecar(t, root))
	assert.NoError(t, s.RenamePrefixes(ctx, nil))
}

func TestStore_ConcurrentRenamesKeepEveryEntry(t *testing.T) {
	s, root := setup(t)
	ctx := context.Background()
	const n = 8
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dst"), 0o755))
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("n%d.md", i)
		touch(t, filepath.Join(root, name))
		require.NoError(t, s.Add(ctx, name))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("n%d.md", i)
			if err := os.Rename(filepath.Join(root, name), filepath.Join(root, "dst", name)); err != nil {
				t.Errorf("rename %s: %v", name, err)
				return
			}
			if err := s.RenamePrefix(ctx, name, "dst/"+name); err != nil {
				t.Errorf("rename prefix %s: %v", name, err)
			}
		}(i)
	}
	wg.Wait()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n)
	for _, f := range list {
		assert.Contains(t, f, "dst/")
	}
}

func TestStore_DropsPathsOutsideRoot(t *testing.T) {
	s, root := setup(t)
	ctx := context.Background()
	touch(t, filepath.Join(root, "a.md"))
	// A sibling of the root that exists on disk
	outside := filepath.Join(filepath.Dir(root), filepath.Base(root)+"-outside.md")
	touch(t, outside)
	t.Cleanup(func() { _ = os.Remove(outside) })

	record := "a.md\n../" + filepath.Base(outside) + "\nsub/../../x.md\n."
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte(record), 0o644))

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, list)
	assert.Equal(t, "a.md", readSidecar(t, root))

	assert.ErrorIs(t, s.Add(ctx, "../"+filepath.Base(outside)), ErrOutsideWorkspace)
}

func TestStore_UnsetRoot(t *testing.T) {
	s := NewStore(filemanager.NewOSFS(), Fixed(""), logger.Nop())
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, s.Add(ctx, "a"))
	assert.NoError(t, s.Remove(ctx, "a"))
	moved, err := s.MoveWithinList(ctx, "a", ordering.Up)
	assert.NoError(t, err)
	assert.False(t, moved)
	entries, err := s.Entries(ctx)
	assert.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, s.RenamePrefix(ctx, "a", "b"))
}
