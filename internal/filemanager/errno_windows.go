//go:build windows

package filemanager

import (
	"errors"
	"fmt"
	"syscall"
)

// errnoCode returns the Windows error number carried by err.
// Windows has no symbolic names matching the unix set.
func errnoCode(err error) string {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ""
	}
	return fmt.Sprintf("ERROR_%d", uint(errno))
}
