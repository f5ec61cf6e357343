// Package testutil contains helpers for tests that change process state, such
// as the working directory, environment variables and package variables. Each
// change is undone when the test finishes.
package testutil

// Cleanuper is the part of testing.TB used to register cleanup functions.
type Cleanuper interface {
	Cleanup(func())
}

// Skipper is the part of testing.TB used to skip a test.
type Skipper interface {
	Skipf(format string, args ...any)
}

// Set sets *p to v until the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}
