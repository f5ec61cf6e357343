// Package env keeps names of environment variables with special significance to
// tin, and is the only place where tin reads or writes the process
// environment.
//
// The process environment is shared by the whole process and observed by every
// child process spawned afterwards. tin runs its interpreter on a single
// goroutine, so no synchronization is done here; keeping all access behind
// this package makes that assumption auditable.
package env

import (
	"os"
	"sort"
	"strings"
)

// Environment variables with special significance to tin.
const (
	HOME            = "HOME"
	PATH            = "PATH"
	PWD             = "PWD"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
	XDG_STATE_HOME  = "XDG_STATE_HOME"
)

// DefaultPath is the search path used when PATH is unset.
const DefaultPath = "/bin:/usr/bin"

// Get returns the value of an environment variable, or "" if it is unset.
func Get(name string) string {
	return os.Getenv(name)
}

// Lookup returns the value of an environment variable and whether it is set.
func Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Set sets an environment variable. Setting a variable to "" keeps it defined
// with an empty value.
func Set(name, value string) error {
	return os.Setenv(name, value)
}

// Unset removes an environment variable.
func Unset(name string) error {
	return os.Unsetenv(name)
}

// Names returns the names of all environment variables, sorted.
func Names() []string {
	environ := os.Environ()
	names := make([]string, 0, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i > 0 {
			names = append(names, kv[:i])
		}
	}
	sort.Strings(names)
	return names
}
