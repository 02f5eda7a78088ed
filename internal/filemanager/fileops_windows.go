//go:build windows

package filemanager

import (
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"strings"
	"time"
)

// readFileWithRetry retries reads that fail because another process (an
// editor, an indexer) briefly holds the sidecar open.
func readFileWithRetry(path string) ([]byte, error) {
	var data []byte
	var err error

	time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)

	for i := 0; i < 5; i++ {
		data, err = os.ReadFile(path)
		if err == nil {
			return data, nil
		}

		if errors.Is(err, fs.ErrPermission) || isFileLocked(err) {
			delay := time.Duration(10*(1<<uint(i))) * time.Millisecond
			jitter := time.Duration(rand.Intn(10)) * time.Millisecond
			time.Sleep(delay + jitter)
			continue
		}

		return nil, err
	}

	return nil, err
}

// isFileLocked checks for the sharing-violation messages Windows reports
func isFileLocked(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "being used by another process") ||
		strings.Contains(errStr, "The process cannot access")
}
