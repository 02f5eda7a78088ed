// Package listing produces the ordered children of a directory as shown in
// the notes tree: raw entries, minus reserved and ignored names, ordered by the
// directory's ordering record with a directories-first collated fallback.
package listing

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/core/ordering"
	"github.com/aki/mknote/internal/filemanager"
)

// FavouritesFileName is the workspace favourites sidecar. It is owned by the
// favourites package and declared here so listings can hide it.
const FavouritesFileName = ".favourite"

// reserved names never appear in a listing
var reserved = map[string]bool{
	ordering.FileName:  true,
	FavouritesFileName: true,
	".git":             true,
	".DS_Store":        true,
}

// Entry is a point-in-time snapshot of one filesystem object.
type Entry struct {
	Path string               `json:"path"`
	Name string               `json:"name"`
	Type filemanager.FileType `json:"type"`
	Stat filemanager.Stat     `json:"stat"`
}

// IsDir reports whether the entry is a directory (following symlinks).
func (e Entry) IsDir() bool {
	return e.Type == filemanager.TypeDirectory
}

// Engine lists directories.
type Engine struct {
	fs       filemanager.FS
	ordering *ordering.Store
	ignore   []string
	locale   language.Tag
	log      logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithIgnore hides base names matching any of the doublestar patterns.
func WithIgnore(patterns ...string) Option {
	return func(e *Engine) {
		e.ignore = append(e.ignore, patterns...)
	}
}

// WithLocale sets the collation language used for unordered names.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.locale = tag
	}
}

// NewEngine creates a listing engine. Invalid ignore patterns are rejected.
func NewEngine(fs filemanager.FS, store *ordering.Store, log logger.Logger, opts ...Option) (*Engine, error) {
	e := &Engine{
		fs:       fs,
		ordering: store,
		locale:   language.Und,
		log:      logger.Component(log, "listing"),
	}
	for _, opt := range opts {
		opt(e)
	}
	for _, p := range e.ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	return e, nil
}

// IsReserved reports whether name is hidden from every listing: sidecar files,
// their in-flight temp files, version control and OS metadata, and configured
// ignore patterns.
func (e *Engine) IsReserved(name string) bool {
	if reserved[name] || isSidecarTemp(name) {
		return true
	}
	for _, p := range e.ignore {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

func isSidecarTemp(name string) bool {
	if !strings.HasSuffix(name, ".tmp") {
		return false
	}
	return strings.HasPrefix(name, ordering.FileName+".") || strings.HasPrefix(name, FavouritesFileName+".")
}

// List returns the children of dir in display order. Children that vanish
// between reading the directory and stat-ing them are dropped.
func (e *Engine) List(ctx context.Context, dir string) ([]Entry, error) {
	raw, err := e.fs.List(dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(raw))
	for _, child := range raw {
		if e.IsReserved(child.Name) {
			continue
		}
		p := filepath.Join(dir, child.Name)
		st, err := e.fs.Stat(p)
		if err != nil {
			if filemanager.KindOf(err) == filemanager.KindNotFound {
				e.log.Debug("dropping vanished entry", "path", p)
				continue
			}
			return nil, err
		}
		entries = append(entries, Entry{
			Path: p,
			Name: child.Name,
			Type: st.Type,
			Stat: st,
		})
	}

	Sort(entries, e.ordering.Get(ctx, dir), collate.New(e.locale))
	return entries, nil
}

// Names returns the base names of List in display order.
func (e *Engine) Names(ctx context.Context, dir string) ([]string, error) {
	entries, err := e.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name
	}
	return names, nil
}

// Sort orders entries in place. Names present in order come first, by their
// position in it. The rest follow with directories before everything else and
// names compared by col, falling back to a byte-wise comparison.
func Sort(entries []Entry, order []string, col *collate.Collator) {
	pos := make(map[string]int, len(order))
	for i, name := range order {
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		ai, aok := pos[a.Name]
		bi, bok := pos[b.Name]
		switch {
		case aok && bok:
			return cmp.Compare(ai, bi)
		case aok:
			return -1
		case bok:
			return 1
		}

		if ar, br := typeRank(a), typeRank(b); ar != br {
			return cmp.Compare(ar, br)
		}
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}

func typeRank(e Entry) int {
	if e.IsDir() {
		return 0
	}
	return 1
}

var _ ordering.Lister = (*Engine)(nil)
