//go:build unix

package fsutil

import "golang.org/x/sys/unix"

func exists(path string) bool {
	return unix.Access(path, unix.F_OK) == nil
}
