// Package watch turns filesystem changes under the workspace into listing and
// favourites events.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aki/mknote/internal/core/events"
	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/core/ordering"
)

// DefaultDebounce is how long a directory must be quiet before its event fires.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a workspace tree.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	pub      events.Publisher
	skip     func(name string) bool
	debounce time.Duration
	log      logger.Logger

	mu     sync.Mutex
	timers map[string]pending
	gen    uint64
}

// pending is an armed debounce timer. Only the callback whose gen still
// matches the map entry may publish.
type pending struct {
	timer *time.Timer
	gen   uint64
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period per directory.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithSkip hides base names from the watcher, typically Engine.IsReserved.
func WithSkip(skip func(name string) bool) Option {
	return func(w *Watcher) { w.skip = skip }
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(w *Watcher) { w.log = log }
}

// New creates a watcher over root and every directory below it.
func New(root string, pub events.Publisher, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	w := &Watcher{
		root:     root,
		fsw:      fsw,
		pub:      pub,
		skip:     func(string) bool { return false },
		debounce: DefaultDebounce,
		log:      logger.Nop(),
		timers:   make(map[string]pending),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.log = logger.Component(w.log, "watch")

	if err := w.addTree(root); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree adds dir and its non-skipped subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Vanished or unreadable subtrees are not fatal below the root
			if p != dir {
				w.log.Debug("skipping unwalkable path", "path", p, "error", err)
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && w.skip(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

// Run forwards events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				w.schedule(events.ListingChanged, "")
				continue
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}
	dir, name := filepath.Split(ev.Name)
	dir = filepath.Clean(dir)

	switch {
	case name == listing.FavouritesFileName && dir == filepath.Clean(w.root):
		w.schedule(events.FavouritesChanged, "")
		return
	case name == ordering.FileName:
		w.schedule(events.ListingChanged, dir)
		return
	case w.skip(name):
		return
	}

	if ev.Has(fsnotify.Create) {
		if err := w.addTree(ev.Name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			w.log.Debug("failed to watch new path", "path", ev.Name, "error", err)
		}
	}
	w.log.Debug("change", "op", ev.Op.String(), "path", ev.Name)
	w.schedule(events.ListingChanged, dir)
}

// schedule publishes (typ, dir) once no further change for the pair arrives
// within the debounce period.
func (w *Watcher) schedule(typ, dir string) {
	key := typ + "\x00" + dir

	w.mu.Lock()
	defer w.mu.Unlock()
	if p, ok := w.timers[key]; ok {
		p.timer.Stop()
	}
	w.gen++
	gen := w.gen
	w.timers[key] = pending{
		timer: time.AfterFunc(w.debounce, func() { w.fire(key, typ, dir, gen) }),
		gen:   gen,
	}
}

// fire publishes the debounced event unless a later schedule replaced it.
func (w *Watcher) fire(key, typ, dir string, gen uint64) {
	w.mu.Lock()
	p, ok := w.timers[key]
	if !ok || p.gen != gen {
		w.mu.Unlock()
		return
	}
	delete(w.timers, key)
	w.mu.Unlock()
	w.pub.Publish(events.New(typ, dir))
}

func (w *Watcher) stop() {
	w.mu.Lock()
	for key, p := range w.timers {
		p.timer.Stop()
		delete(w.timers, key)
	}
	w.mu.Unlock()
	if err := w.fsw.Close(); err != nil {
		w.log.Debug("failed to close watcher", "error", err)
	}
}
