package eval

import (
	"sort"
	"strings"

	"src.tin.sh/pkg/fsutil"
)

// A mapping from base names of files found on the search path to their
// absolute paths. It is rebuilt wholesale and may go stale until the next
// rebuild.
type binCache struct {
	paths map[string]string
}

func (c *binCache) rehash() {
	paths := make(map[string]string)
	fsutil.EachExternal(func(name, path string) {
		// Earlier directories on the search path take precedence.
		if _, exists := paths[name]; !exists {
			paths[name] = path
		}
	})
	c.paths = paths
	logger.Printf("rehashed search path, %d binaries", len(paths))
}

func (c *binCache) lookup(name string) (string, bool) {
	path, ok := c.paths[name]
	return path, ok
}

func (c *binCache) namesWithPrefix(prefix string) []string {
	var names []string
	for name := range c.paths {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
