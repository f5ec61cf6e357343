// Package storedefs defines the interface of the persistent store of command
// and directory history, separately from its bbolt-backed implementation.
package storedefs

// NoBlacklist can be passed to Dirs to list all directories.
var NoBlacklist = map[string]struct{}{}

// Store is the persistent store.
type Store interface {
	// Commands are numbered by a sequence that starts from 1 and only grows.
	NextCmdSeq() (int, error)
	AddCmd(text string) (int, error)
	// CmdsWithSeq returns the commands with sequence numbers in [from, upto).
	CmdsWithSeq(from, upto int) ([]Cmd, error)

	// Each visit of a directory adds to its score.
	AddDir(dir string, incFactor float64) error
	DelDir(dir string) error
	// Dirs returns the directories not in blacklist, highest score first.
	Dirs(blacklist map[string]struct{}) ([]Dir, error)
}

// Cmd is a command history entry.
type Cmd struct {
	Text string
	Seq  int
}

// Dir is a directory history entry.
type Dir struct {
	Path  string
	Score float64
}
