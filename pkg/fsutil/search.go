package fsutil

import (
	"os"
	"path/filepath"
	"strings"

	"src.tin.sh/pkg/env"
)

// DontSearch determines whether the path to an external command should be
// taken literally and not searched.
func DontSearch(exe string) bool {
	return exe == ".." || strings.ContainsRune(exe, filepath.Separator) ||
		strings.ContainsRune(exe, '/')
}

// SearchPaths returns the directories of $PATH. If PATH is unset,
// env.DefaultPath is used instead; a PATH that is set but empty yields no
// usable directories.
func SearchPaths() []string {
	path, ok := env.Lookup(env.PATH)
	if !ok {
		path = env.DefaultPath
	}
	return strings.Split(path, ":")
}

// EachExternal calls f with the base name and absolute path of every
// non-directory entry found while scanning the directories of $PATH, in the
// order of $PATH.
//
// NOTE: The executable permission bit is not checked, so any regular file in a
// search directory is reported. No deduplication is done either; a name that
// appears in several directories is reported once per directory.
func EachExternal(f func(name, path string)) {
	for _, dir := range SearchPaths() {
		if dir == "" {
			continue
		}
		files, err := os.ReadDir(dir)
		if err != nil {
			// There isn't much we can reasonably do other than silently
			// ignoring the invalid directory.
			continue
		}
		absDir, err := filepath.Abs(dir)
		if err != nil {
			absDir = dir
		}
		for _, file := range files {
			stat, err := file.Info()
			if err == nil && !stat.IsDir() {
				f(stat.Name(), filepath.Join(absDir, stat.Name()))
			}
		}
	}
}

// Exists reports whether anything exists at the given path, which is
// interpreted relative to the working directory when not absolute.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	return exists(path)
}
