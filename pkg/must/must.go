// Package must contains helpers that panic on errors. They are meant for tests,
// where a failed setup step can't be recovered from anyway.
package must

import (
	"io"
	"os"
	"path/filepath"
)

// OK panics if err is not nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 returns v, or panics if err is not nil.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// Pipe returns a pair of connected files, read end first.
func Pipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	OK(err)
	return r, w
}

// Chdir changes the working directory.
func Chdir(dir string) {
	OK(os.Chdir(dir))
}

// ReadAllAndClose reads r until EOF and closes it.
func ReadAllAndClose(r io.ReadCloser) []byte {
	defer r.Close()
	return OK1(io.ReadAll(r))
}

// ReadFileString returns the content of a file.
func ReadFileString(name string) string {
	return string(OK1(os.ReadFile(name)))
}

// MkdirAll creates each of the given directories along with their parents.
func MkdirAll(names ...string) {
	for _, name := range names {
		OK(os.MkdirAll(name, 0700))
	}
}

// WriteFile writes data to a file, creating missing parent directories.
func WriteFile(name, data string) {
	OK(os.MkdirAll(filepath.Dir(name), 0700))
	OK(os.WriteFile(name, []byte(data), 0600))
}
