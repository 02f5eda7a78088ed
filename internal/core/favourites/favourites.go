// Package favourites keeps the workspace-wide list of favourite entries in a
// sidecar file at the workspace root. Entries are stored as slash-separated
// paths relative to the root, one per line.
package favourites

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/aki/mknote/internal/core/listing"
	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/core/ordering"
	"github.com/aki/mknote/internal/filemanager"
)

// FileName is the favourites sidecar at the workspace root.
const FileName = listing.FavouritesFileName

// ErrOutsideWorkspace is returned for paths that do not live under the root.
var ErrOutsideWorkspace = errors.New("path is outside the workspace")

// Location provides the workspace root. An empty string means unconfigured.
type Location interface {
	Location() string
}

// Fixed is a Location that never changes.
type Fixed string

// Location implements Location.
func (f Fixed) Location() string { return string(f) }

// Rename is one entry that changed path, both sides relative to the root.
type Rename struct {
	From string
	To   string
}

// Store reads and writes the favourites record. Read-modify-write cycles
// within one process are serialized; other processes remain last-writer-wins.
type Store struct {
	fs  filemanager.FS
	loc Location
	log logger.Logger

	mu sync.Mutex
}

// NewStore creates a favourites store rooted at loc.
func NewStore(fs filemanager.FS, loc Location, log logger.Logger) *Store {
	return &Store{
		fs:  fs,
		loc: loc,
		log: logger.Component(log, "favourites"),
	}
}

// Root returns the current workspace root.
func (s *Store) Root() string {
	return s.loc.Location()
}

// Resolve returns the absolute path of a stored favourite.
func (s *Store) Resolve(rel string) string {
	return filepath.Join(s.Root(), filepath.FromSlash(clean(rel)))
}

// Relative converts an absolute path under the root into its stored form.
func (s *Store) Relative(abs string) (string, error) {
	root := s.Root()
	if root == "" {
		return "", ErrOutsideWorkspace
	}
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(abs))
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("%s: %w", abs, ErrOutsideWorkspace)
	}
	return filepath.ToSlash(rel), nil
}

// List returns the favourites that still exist, in stored order. When entries
// were dropped or normalized, the cleaned list is written back.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list(ctx)
}

func (s *Store) list(ctx context.Context) ([]string, error) {
	lines, raw, ok := s.load(ctx)
	if !ok {
		return []string{}, nil
	}
	kept := s.existing(lines)
	if strings.Join(kept, "\n") != raw {
		if err := s.save(ctx, kept); err != nil {
			s.log.Warn("failed to persist pruned favourites", "error", err)
		}
	}
	return kept, nil
}

// Add appends rel unless it is already a favourite.
func (s *Store) Add(ctx context.Context, rel string) error {
	if s.Root() == "" {
		return nil
	}
	rel = clean(rel)
	if rel == "" {
		return ErrOutsideWorkspace
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.list(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(list, rel) {
		return nil
	}
	return s.save(ctx, append(list, rel))
}

// Remove drops rel from the favourites.
func (s *Store) Remove(ctx context.Context, rel string) error {
	if s.Root() == "" {
		return nil
	}
	rel = clean(rel)

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.list(ctx)
	if err != nil {
		return err
	}
	if !slices.Contains(list, rel) {
		return nil
	}
	return s.save(ctx, slices.DeleteFunc(list, func(f string) bool { return f == rel }))
}

// MoveWithinList moves rel one step in direction within the stored order.
func (s *Store) MoveWithinList(ctx context.Context, rel string, direction ordering.Direction) (bool, error) {
	if s.Root() == "" {
		return false, nil
	}
	rel = clean(rel)

	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.list(ctx)
	if err != nil {
		return false, err
	}
	idx := slices.Index(list, rel)
	if idx < 0 {
		return false, filemanager.NewError(filemanager.KindNotFound, "reorder favourite", rel)
	}
	reordered, ok := ordering.Swap(list, idx, direction)
	if !ok {
		return false, nil
	}
	if err := s.save(ctx, reordered); err != nil {
		return false, err
	}
	return true, nil
}

// Entries returns the top level of the favourites tree. Each entry is named by
// its relative path; favourites that cannot be stat'ed are skipped.
func (s *Store) Entries(ctx context.Context) ([]listing.Entry, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]listing.Entry, 0, len(list))
	for _, rel := range list {
		p := s.Resolve(rel)
		st, err := s.fs.Stat(p)
		if err != nil {
			s.log.Debug("skipping favourite", "path", rel, "error", err)
			continue
		}
		entries = append(entries, listing.Entry{
			Path: p,
			Name: rel,
			Type: st.Type,
			Stat: st,
		})
	}
	return entries, nil
}

// RenamePrefix rewrites favourites equal to oldRel or below it so they follow
// a renamed or moved entry.
func (s *Store) RenamePrefix(ctx context.Context, oldRel, newRel string) error {
	return s.RenamePrefixes(ctx, []Rename{{From: oldRel, To: newRel}})
}

// RenamePrefixes applies several renames in one load and one save. Each
// favourite is rewritten by the first rename whose From is it or a parent of it.
func (s *Store) RenamePrefixes(ctx context.Context, renames []Rename) error {
	if len(renames) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, _, ok := s.load(ctx)
	if !ok {
		return nil
	}

	changed := false
	for i, f := range lines {
		for _, r := range renames {
			from, to := clean(r.From), clean(r.To)
			if from == "" || to == "" {
				continue
			}
			if f == from {
				lines[i] = to
			} else if strings.HasPrefix(f, from+"/") {
				lines[i] = to + strings.TrimPrefix(f, from)
			} else {
				continue
			}
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}
	return s.save(ctx, s.existing(dedupe(lines)))
}

// load reads the record. ok is false when there is no root or nothing readable.
func (s *Store) load(ctx context.Context) (lines []string, raw string, ok bool) {
	root := s.Root()
	if root == "" {
		return nil, "", false
	}
	raw, err := s.fs.ReadText(ctx, filepath.Join(root, FileName))
	if err != nil {
		if !errors.Is(err, filemanager.ErrNotFound) {
			s.log.Debug("ignoring unreadable favourites", "error", err)
		}
		return nil, "", false
	}
	lines = ordering.SplitLines(raw)
	for i, l := range lines {
		lines[i] = clean(l)
	}
	return lines, raw, true
}

func (s *Store) save(ctx context.Context, list []string) error {
	root := s.Root()
	if root == "" {
		return nil
	}
	if err := s.fs.WriteText(ctx, filepath.Join(root, FileName), strings.Join(list, "\n")); err != nil {
		return fmt.Errorf("failed to write favourites: %w", err)
	}
	return nil
}

func (s *Store) existing(list []string) []string {
	kept := make([]string, 0, len(list))
	for _, rel := range list {
		if rel == "" || !s.fs.Exists(s.Resolve(rel)) {
			continue
		}
		kept = append(kept, rel)
	}
	return kept
}

// clean normalizes a stored path: forward slashes, no leading slash. Paths
// that name the root or climb out of it clean to "".
func clean(rel string) string {
	rel = filepath.ToSlash(strings.TrimSpace(rel))
	rel = strings.TrimLeft(rel, "/")
	if rel == "" {
		return ""
	}
	rel = path.Clean(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return ""
	}
	return rel
}

func dedupe(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, f := range list {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
