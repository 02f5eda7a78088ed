package notes

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aki/mknote/internal/core/favourites"
	"github.com/aki/mknote/internal/core/listing"
)

// ErrOutsideWorkspace is returned for paths that escape the workspace root.
var ErrOutsideWorkspace = favourites.ErrOutsideWorkspace

// Abs maps a workspace-relative path to an absolute one. Absolute paths are
// accepted when they lie under the root. An empty path is the root itself.
func (e *Explorer) Abs(p string) (string, error) {
	root := e.Root()
	if root == "" {
		return "", ErrNoLocation
	}
	root = filepath.Clean(root)

	abs := p
	if !filepath.IsAbs(p) {
		abs = filepath.Join(root, filepath.FromSlash(p))
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: %w", p, ErrOutsideWorkspace)
	}
	return abs, nil
}

// Resolve stats a workspace path into an Entry.
func (e *Explorer) Resolve(p string) (listing.Entry, error) {
	abs, err := e.Abs(p)
	if err != nil {
		return listing.Entry{}, err
	}
	st, err := e.fs.Stat(abs)
	if err != nil {
		return listing.Entry{}, err
	}
	return listing.Entry{
		Path: abs,
		Name: filepath.Base(abs),
		Type: st.Type,
		Stat: st,
	}, nil
}

// ResolveAll resolves every path, failing on the first that cannot be.
func (e *Explorer) ResolveAll(paths []string) ([]listing.Entry, error) {
	entries := make([]listing.Entry, 0, len(paths))
	for _, p := range paths {
		entry, err := e.Resolve(p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Rel returns the slash-separated workspace-relative form of abs.
func (e *Explorer) Rel(abs string) string {
	rel, err := filepath.Rel(e.Root(), abs)
	if err != nil {
		return abs
	}
	return filepath.ToSlash(rel)
}
