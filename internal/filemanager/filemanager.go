// Package filemanager is the filesystem adapter used by every other mknote
// component. It wraps raw file operations, maps OS failures into a small error
// taxonomy, and provides lock-protected atomic writes for sidecar text files.
package filemanager

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/otiai10/copy"
	"golang.org/x/text/unicode/norm"
)

// FileType is the kind of a filesystem object.
type FileType int

const (
	TypeUnknown FileType = iota
	TypeFile
	TypeDirectory
	TypeSymbolicLink
)

func (t FileType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	case TypeSymbolicLink:
		return "symlink"
	default:
		return "unknown"
	}
}

// MarshalText renders the type as its lowercase name in JSON and YAML output.
func (t FileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DirEntry is one raw child of a directory.
type DirEntry struct {
	Name string
	Type FileType
}

// Stat is the metadata the listing needs about one path.
type Stat struct {
	Type        FileType `json:"type"`
	Size        int64    `json:"size"`
	CtimeMillis int64    `json:"ctime"`
	MtimeMillis int64    `json:"mtime"`
}

// FS is the set of filesystem operations mknote performs.
type FS interface {
	// List returns the raw children of dir, unsorted and unfiltered
	List(dir string) ([]DirEntry, error)
	// Stat returns metadata for path, following symlinks
	Stat(path string) (Stat, error)
	// ReadText reads a text file under a shared lock
	ReadText(ctx context.Context, path string) (string, error)
	// WriteText replaces a text file atomically under an exclusive lock
	WriteText(ctx context.Context, path, content string) error
	// Exists reports whether any entry occupies path
	Exists(path string) bool
	// CreateFile creates an empty file, failing if path is occupied
	CreateFile(path string) error
	// RemoveAll removes path and everything below it
	RemoveAll(path string) error
	// MkdirAll creates path and any missing parents
	MkdirAll(path string) error
	// Rename renames or moves oldPath to newPath
	Rename(oldPath, newPath string) error
	// CopyOnto copies src into targetDir unless an entry of the same name exists there
	CopyOnto(targetDir, src string) error
	// MoveOnto moves src into targetDir unless an entry of the same name exists there
	MoveOnto(targetDir, src string) error
}

// OSFS implements FS on the local filesystem.
type OSFS struct {
	// lockTimeout is the maximum time to wait for a sidecar lock
	lockTimeout time.Duration
}

// NewOSFS creates an adapter with the default lock timeout.
func NewOSFS() *OSFS {
	return &OSFS{
		lockTimeout: 5 * time.Second,
	}
}

// NewOSFSWithTimeout creates an adapter with a custom lock timeout.
func NewOSFSWithTimeout(timeout time.Duration) *OSFS {
	return &OSFS{
		lockTimeout: timeout,
	}
}

// List implements FS.
func (o *OSFS) List(dir string) ([]DirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, normalize("list", dir, err)
	}

	result := make([]DirEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, DirEntry{
			Name: normalizeName(e.Name()),
			Type: typeOf(e.Type()),
		})
	}
	return result, nil
}

// Stat implements FS. A dangling symlink is reported as TypeSymbolicLink
// rather than NotFound.
func (o *OSFS) Stat(path string) (Stat, error) {
	info, err := os.Stat(path)
	if err != nil {
		linfo, lerr := os.Lstat(path)
		if lerr != nil || linfo.Mode()&os.ModeSymlink == 0 {
			return Stat{}, normalize("stat", path, err)
		}
		info = linfo
	}
	return Stat{
		Type:        typeOf(info.Mode()),
		Size:        info.Size(),
		CtimeMillis: ctimeMillis(info),
		MtimeMillis: info.ModTime().UnixMilli(),
	}, nil
}

// Exists implements FS.
func (o *OSFS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CreateFile implements FS.
func (o *OSFS) CreateFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return normalize("create", path, err)
	}
	return normalize("create", path, f.Close())
}

// RemoveAll implements FS.
func (o *OSFS) RemoveAll(path string) error {
	return normalize("remove", path, os.RemoveAll(path))
}

// MkdirAll implements FS.
func (o *OSFS) MkdirAll(path string) error {
	return normalize("mkdir", path, os.MkdirAll(path, 0o755))
}

// Rename implements FS.
func (o *OSFS) Rename(oldPath, newPath string) error {
	return normalize("rename", oldPath, os.Rename(oldPath, newPath))
}

// MoveOnto implements FS.
func (o *OSFS) MoveOnto(targetDir, src string) error {
	dst := filepath.Join(targetDir, filepath.Base(src))
	if o.Exists(dst) {
		return nil
	}
	return normalize("move", src, os.Rename(src, dst))
}

// CopyOnto implements FS. Directories are copied recursively and symlinks are
// recreated rather than followed.
func (o *OSFS) CopyOnto(targetDir, src string) error {
	dst := filepath.Join(targetDir, filepath.Base(src))
	if o.Exists(dst) {
		return nil
	}
	if _, err := os.Lstat(src); err != nil {
		return normalize("copy", src, err)
	}
	opts := copy.Options{
		OnSymlink:     func(string) copy.SymlinkAction { return copy.Shallow },
		PreserveTimes: true,
	}
	return normalize("copy", src, copy.Copy(src, dst, opts))
}

func typeOf(mode os.FileMode) FileType {
	switch {
	case mode&os.ModeSymlink != 0:
		return TypeSymbolicLink
	case mode.IsDir():
		return TypeDirectory
	case mode.IsRegular():
		return TypeFile
	default:
		return TypeUnknown
	}
}

// normalizeName converts decomposed names reported by macOS filesystems to
// NFC so they compare equal to names typed by the user.
func normalizeName(name string) string {
	if runtime.GOOS != "darwin" {
		return name
	}
	return norm.NFC.String(name)
}

var _ FS = (*OSFS)(nil)
