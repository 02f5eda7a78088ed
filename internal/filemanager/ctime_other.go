//go:build !linux && !darwin && !freebsd

package filemanager

import "io/fs"

// ctimeMillis falls back to the modification time where the platform stat
// structure has no portable change time.
func ctimeMillis(info fs.FileInfo) int64 {
	return info.ModTime().UnixMilli()
}
