//go:build windows

package filemanager

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// createLock returns a lock on a separate file under the temp directory.
// Locking the sidecar itself would block the rename that replaces it.
func createLock(path string) *flock.Flock {
	lockPath := getLockPath(path)
	_ = os.MkdirAll(filepath.Dir(lockPath), 0o755)
	return flock.New(lockPath)
}

// cleanupLockFile removes a stale lock file. Fresh ones may still be held.
func cleanupLockFile(path string) {
	lockPath := getLockPath(path)
	info, err := os.Stat(lockPath)
	if err == nil && time.Since(info.ModTime()) > 5*time.Second {
		_ = os.Remove(lockPath)
	}
}

func getLockPath(path string) string {
	sum := sha1.Sum([]byte(filepath.Clean(path)))
	return filepath.Join(os.TempDir(), "mknote-locks", hex.EncodeToString(sum[:])+".lock")
}
