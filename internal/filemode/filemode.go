//go:build unix

// Package filemode reads and sets POSIX permission bits.
package filemode

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// GetMode returns the permission bits of path. A missing file is reported as an
// error matching fs.ErrNotExist.
func GetMode(path string) (fs.FileMode, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, &fs.PathError{Op: "stat", Path: path, Err: err}
	}

	return fs.FileMode(st.Mode) & fs.ModePerm, nil
}

// SetMode sets the permission bits of path to mode.
func SetMode(path string, mode fs.FileMode) error {
	if err := unix.Chmod(path, uint32(mode.Perm())); err != nil {
		return &fs.PathError{Op: "chmod", Path: path, Err: err}
	}

	return nil
}
