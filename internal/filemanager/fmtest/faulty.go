// Package fmtest provides filesystem test doubles.
package fmtest

import (
	"context"
	"sync"

	"github.com/aki/mknote/internal/filemanager"
)

// Faulty wraps a real [filemanager.FS] and fails selected mutating calls.
// Register failures with Errors before use; every call is recorded in Calls.
// Safe for concurrent use.
type Faulty struct {
	filemanager.FS

	mu     sync.Mutex
	Errors map[string]error // path → injected error (checked first)
	Calls  []Call           // spy log
}

// Call records a single mutating method invocation on [Faulty].
type Call struct {
	Method string
	Path   string
}

// NewFaulty returns a Faulty over inner with no injected errors.
func NewFaulty(inner filemanager.FS) *Faulty {
	return &Faulty{
		FS:     inner,
		Errors: make(map[string]error),
	}
}

// Fail makes every mutating call on path return err.
func (f *Faulty) Fail(path string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Errors[path] = err
}

// Methods returns the recorded method names for path.
func (f *Faulty) Methods(path string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.Calls {
		if c.Path == path {
			out = append(out, c.Method)
		}
	}
	return out
}

func (f *Faulty) record(method, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Method: method, Path: path})
	return f.Errors[path]
}

// WriteText records the call and delegates unless an error is injected.
func (f *Faulty) WriteText(ctx context.Context, path, content string) error {
	if err := f.record("WriteText", path); err != nil {
		return err
	}
	return f.FS.WriteText(ctx, path, content)
}

// CreateFile records the call and delegates unless an error is injected.
func (f *Faulty) CreateFile(path string) error {
	if err := f.record("CreateFile", path); err != nil {
		return err
	}
	return f.FS.CreateFile(path)
}

// RemoveAll records the call and delegates unless an error is injected.
func (f *Faulty) RemoveAll(path string) error {
	if err := f.record("RemoveAll", path); err != nil {
		return err
	}
	return f.FS.RemoveAll(path)
}

// MkdirAll records the call and delegates unless an error is injected.
func (f *Faulty) MkdirAll(path string) error {
	if err := f.record("MkdirAll", path); err != nil {
		return err
	}
	return f.FS.MkdirAll(path)
}

// Rename records the call and delegates unless an error is injected on oldPath.
func (f *Faulty) Rename(oldPath, newPath string) error {
	if err := f.record("Rename", oldPath); err != nil {
		return err
	}
	return f.FS.Rename(oldPath, newPath)
}

// CopyOnto records the call and delegates unless an error is injected on src.
func (f *Faulty) CopyOnto(targetDir, src string) error {
	if err := f.record("CopyOnto", src); err != nil {
		return err
	}
	return f.FS.CopyOnto(targetDir, src)
}

// MoveOnto records the call and delegates unless an error is injected on src.
func (f *Faulty) MoveOnto(targetDir, src string) error {
	if err := f.record("MoveOnto", src); err != nil {
		return err
	}
	return f.FS.MoveOnto(targetDir, src)
}

var _ filemanager.FS = (*Faulty)(nil)
