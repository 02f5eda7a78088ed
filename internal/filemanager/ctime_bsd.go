//go:build darwin || freebsd

package filemanager

import (
	"io/fs"
	"syscall"
)

// ctimeMillis returns the inode change time in milliseconds.
func ctimeMillis(info fs.FileInfo) int64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Ctimespec.Nano() / 1e6
	}
	return info.ModTime().UnixMilli()
}
