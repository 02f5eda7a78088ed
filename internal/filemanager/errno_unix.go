//go:build !windows

package filemanager

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"
)

// errnoCode returns the symbolic errno name (ENOTEMPTY, EIO, ...) carried by err.
func errnoCode(err error) string {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return ""
	}
	if name := unix.ErrnoName(errno); name != "" {
		return name
	}
	return errno.Error()
}
