// Package histutil provides the command history log of the shell, backed by
// either the persistent store or memory.
package histutil

import "src.tin.sh/pkg/store/storedefs"

// Store is a store of command history.
type Store interface {
	// AllCmds returns all commands in the store, oldest first.
	AllCmds() ([]storedefs.Cmd, error)
	// AddCmd adds a command and returns its sequence number.
	AddCmd(text string) (int, error)
}
