package store

import (
	"path/filepath"

	"src.tin.sh/pkg/testutil"
)

// MustTempStore returns a DBStore backed by a file in a temporary directory.
// The store is closed when the test finishes. It panics if the store cannot
// be created.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st, err := NewStore(filepath.Join(testutil.TempDir(c), "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
