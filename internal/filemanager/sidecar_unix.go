//go:build !windows

package filemanager

import (
	"os"

	"github.com/gofrs/flock"
)

// Sidecar I/O on Unix needs none of the Windows workarounds. rename(2)
// replaces an open destination and flock can be taken on the record itself.

func atomicRename(src, dst string) error {
	return os.Rename(src, dst)
}

func readFileWithRetry(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func createLock(path string) *flock.Flock {
	return flock.New(path)
}

func cleanupLockFile(string) {}
