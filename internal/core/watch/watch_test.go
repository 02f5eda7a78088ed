package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/listing"
)

func start(t *testing.T, root string, opts ...Option) <-chan events.Event {
	t.Helper()
	bus := events.NewBus()
	ch, cancelSub := bus.Subscribe(16)

	opts = append([]Option{WithDebounce(20 * time.Millisecond)}, opts...)
	w, err := New(root, bus, opts...)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		cancelSub()
	})
	return ch
}

func next(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return events.Event{}
	}
}

func TestWatcher_FileCreated(t *testing.T) {
	root := t.TempDir()
	ch := start(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "a.md"), []byte("x"), 0o644))

	e := next(t, ch)
	assert.Equal(t, events.ListingChanged, e.Type)
	assert.Equal(t, filepath.Clean(root), e.Path)
}

func TestWatcher_Debounces(t *testing.T) {
	root := t.TempDir()
	ch := start(t, root, WithDebounce(200*time.Millisecond))

	for _, n := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, n), nil, 0o644))
	}

	next(t, ch)
	select {
	case e := <-ch:
		t.Fatalf("expected a single event, got another %v", e)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_NewDirectoryIsWatched(t *testing.T) {
	root := t.TempDir()
	ch := start(t, root)

	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	assert.Equal(t, filepath.Clean(root), next(t, ch).Path)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "x.md"), nil, 0o644))
	assert.Equal(t, sub, next(t, ch).Path)
}

func TestWatcher_Favourites(t *testing.T) {
	root := t.TempDir()
	ch := start(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, listing.FavouritesFileName), []byte("a"), 0o644))

	e := next(t, ch)
	assert.Equal(t, events.FavouritesChanged, e.Type)
}

func TestWatcher_SkipsIgnored(t *testing.T) {
	root := t.TempDir()
	ch := start(t, root, WithSkip(func(name string) bool { return name == ".DS_Store" }))

	require.NoError(t, os.WriteFile(filepath.Join(root, ".DS_Store"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "visible"), nil, 0o644))

	e := next(t, ch)
	assert.Equal(t, events.ListingChanged, e.Type)
	select {
	case e := <-ch:
		t.Fatalf("unexpected event %v", e)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_StaleTimerDoesNotPublish(t *testing.T) {
	pub := events.NewFake()
	w, err := New(t.TempDir(), pub, WithDebounce(time.Hour))
	require.NoError(t, err)
	t.Cleanup(w.stop)

	w.schedule(events.ListingChanged, "notes")
	w.mu.Lock()
	stale := w.timers[events.ListingChanged+"\x00notes"].gen
	w.mu.Unlock()

	w.schedule(events.ListingChanged, "notes")
	w.mu.Lock()
	current := w.timers[events.ListingChanged+"\x00notes"].gen
	w.mu.Unlock()
	require.NotEqual(t, stale, current)

	// a callback that already fired before the reschedule stopped it
	w.fire(events.ListingChanged+"\x00notes", events.ListingChanged, "notes", stale)
	assert.Empty(t, pub.Types())

	w.fire(events.ListingChanged+"\x00notes", events.ListingChanged, "notes", current)
	w.fire(events.ListingChanged+"\x00notes", events.ListingChanged, "notes", current)
	assert.Equal(t, []string{events.ListingChanged}, pub.Types())
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), events.Discard)
	assert.Error(t, err)
}
