// Package ordering stores the manual order of a directory's children in a
// plain-text sidecar file (one base name per line) inside that directory.
package ordering

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aki/mknote/internal/core/logger"
	"github.com/aki/mknote/internal/filemanager"
)

// FileName is the ordering sidecar colocated with the entries it orders.
const FileName = ".sort"

// Direction is the way an entry moves within its list.
type Direction int

const (
	// Up moves an entry towards the start of the list
	Up Direction = iota
	// Down moves an entry towards the end of the list
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// ParseDirection converts "up" or "down".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return Up, fmt.Errorf("invalid direction %q: want up or down", s)
	}
}

// Lister produces the effective ordered names of a directory.
type Lister interface {
	Names(ctx context.Context, dir string) ([]string, error)
}

// Store reads and writes ordering records.
type Store struct {
	fs  filemanager.FS
	log logger.Logger
}

// NewStore creates an ordering store on top of fs.
func NewStore(fs filemanager.FS, log logger.Logger) *Store {
	return &Store{
		fs:  fs,
		log: logger.Component(log, "ordering"),
	}
}

// Path returns the sidecar location for dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Get returns the stored order for dir. A missing or unreadable record is an
// empty order, never an error.
func (s *Store) Get(ctx context.Context, dir string) []string {
	content, err := s.fs.ReadText(ctx, Path(dir))
	if err != nil {
		if filemanager.KindOf(err) != filemanager.KindNotFound {
			s.log.Debug("ignoring unreadable ordering record", "dir", dir, "error", err)
		}
		return []string{}
	}
	return SplitLines(content)
}

// Set replaces the stored order for dir. An empty list leaves an empty file.
func (s *Store) Set(ctx context.Context, dir string, names []string) error {
	if err := s.fs.WriteText(ctx, Path(dir), strings.Join(names, "\n")); err != nil {
		return fmt.Errorf("failed to write ordering for %s: %w", dir, err)
	}
	s.log.Debug("wrote ordering record", "dir", dir, "count", len(names))
	return nil
}

// MoveWithinList moves name one step in direction and persists the complete
// resulting order. The order is taken from lister, i.e. what is displayed, not
// what is stored, so unordered entries become ordered at their current
// positions. It reports whether anything moved; a move past either end is a
// no-op.
func (s *Store) MoveWithinList(ctx context.Context, lister Lister, dir, name string, direction Direction) (bool, error) {
	names, err := lister.Names(ctx, dir)
	if err != nil {
		return false, err
	}

	idx := slices.Index(names, name)
	if idx < 0 {
		return false, filemanager.NewError(filemanager.KindNotFound, "reorder", filepath.Join(dir, name))
	}

	reordered, ok := Swap(names, idx, direction)
	if !ok {
		return false, nil
	}
	if err := s.Set(ctx, dir, reordered); err != nil {
		return false, err
	}
	return true, nil
}

// Rename carries the stored position of oldName over to newName. Names that no
// longer exist are pruned while the record is rewritten. It is a no-op when
// oldName is not in the record.
func (s *Store) Rename(ctx context.Context, dir, oldName, newName string) error {
	names := s.Get(ctx, dir)
	idx := slices.Index(names, oldName)
	if idx < 0 {
		return nil
	}
	names[idx] = newName

	kept := names[:0]
	for _, n := range names {
		if n == newName || s.fs.Exists(filepath.Join(dir, n)) {
			kept = append(kept, n)
		}
	}
	return s.Set(ctx, dir, dedupe(kept))
}

// Swap returns a copy of names with the item at index exchanged with its
// neighbour in direction. ok is false when the item is already at that end.
func Swap(names []string, index int, direction Direction) ([]string, bool) {
	if index < 0 || index >= len(names) {
		return names, false
	}
	other := index - 1
	if direction == Down {
		other = index + 1
	}
	if other < 0 || other >= len(names) {
		return names, false
	}
	out := slices.Clone(names)
	out[index], out[other] = out[other], out[index]
	return out, true
}

// SplitLines splits a sidecar body into non-empty lines, tolerating CRLF.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, l)
	}
	return out
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
