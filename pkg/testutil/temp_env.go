package testutil

import "src.tin.sh/pkg/env"

// Setenv sets an environment variable until the test finishes, and returns
// value.
func Setenv(c Cleanuper, name, value string) string {
	SaveEnv(c, name)
	env.Set(name, value)
	return value
}

// Unsetenv removes an environment variable until the test finishes.
func Unsetenv(c Cleanuper, name string) {
	SaveEnv(c, name)
	env.Unset(name)
}

// SaveEnv arranges for an environment variable to be restored to its current
// state, set or unset, when the test finishes.
func SaveEnv(c Cleanuper, name string) {
	if old, ok := env.Lookup(name); ok {
		c.Cleanup(func() { env.Set(name, old) })
	} else {
		c.Cleanup(func() { env.Unset(name) })
	}
}
