package filemanager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// ReadText reads a file with a shared lock.
func (o *OSFS) ReadText(ctx context.Context, path string) (string, error) {
	// Check existence first so the lock does not create the file
	if _, err := os.Stat(path); err != nil {
		return "", normalize("read", path, err)
	}

	lock := createLock(path)

	lockCtx, cancel := context.WithTimeout(ctx, o.lockTimeout)
	defer cancel()

	locked, err := lock.TryRLockContext(lockCtx, 100*time.Millisecond)
	switch {
	case err != nil && errors.Is(err, fs.ErrPermission):
		// Read-only sidecars cannot be opened for locking; read them unlocked
	case err != nil:
		if errors.Is(err, context.DeadlineExceeded) {
			return "", &Error{Kind: KindUnknown, Op: "read", Path: path, Code: ErrLockTimeout.Code, Err: err}
		}
		return "", normalize("read", path, fmt.Errorf("failed to acquire read lock: %w", err))
	case !locked:
		return "", &Error{Kind: KindUnknown, Op: "read", Path: path, Code: ErrLockTimeout.Code}
	default:
		defer func() { _ = lock.Unlock() }()
	}

	data, err := readFileWithRetry(path)
	if err != nil {
		return "", normalize("read", path, err)
	}
	return string(data), nil
}

// WriteText writes a file with an exclusive lock, replacing it atomically
// through a temp file in the same directory.
func (o *OSFS) WriteText(ctx context.Context, path, content string) error {
	lock := createLock(path)

	lockCtx, cancel := context.WithTimeout(ctx, o.lockTimeout)
	defer cancel()

	locked, err := lock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &Error{Kind: KindUnknown, Op: "write", Path: path, Code: ErrLockTimeout.Code, Err: err}
		}
		return normalize("write", path, fmt.Errorf("failed to acquire write lock: %w", err))
	}
	if !locked {
		return &Error{Kind: KindUnknown, Op: "write", Path: path, Code: ErrLockTimeout.Code}
	}
	defer func() {
		_ = lock.Unlock()
		cleanupLockFile(path)
	}()

	// The temp name keeps the sidecar prefix so listings can hide it
	tempFile := fmt.Sprintf("%s.%d.%d.tmp", path, os.Getpid(), time.Now().UnixNano())
	if err := os.WriteFile(tempFile, []byte(content), 0o644); err != nil {
		return normalize("write", path, err)
	}

	if f, err := os.OpenFile(tempFile, os.O_RDWR, 0o644); err == nil {
		_ = f.Sync()
		_ = f.Close()
	}

	if err := atomicRename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return normalize("write", path, err)
	}

	return nil
}
