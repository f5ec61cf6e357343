package histutil

import "src.tin.sh/pkg/store/storedefs"

// NewMemStore returns a Store that keeps command history in memory, starting
// with the given commands. It is used when the database is unavailable.
func NewMemStore(texts ...string) Store {
	cmds := make([]storedefs.Cmd, len(texts))
	for i, text := range texts {
		cmds[i] = storedefs.Cmd{Text: text, Seq: i + 1}
	}
	return &memStore{cmds}
}

type memStore struct{ cmds []storedefs.Cmd }

func (s *memStore) AllCmds() ([]storedefs.Cmd, error) {
	return append([]storedefs.Cmd(nil), s.cmds...), nil
}

func (s *memStore) AddCmd(text string) (int, error) {
	seq := len(s.cmds) + 1
	s.cmds = append(s.cmds, storedefs.Cmd{Text: text, Seq: seq})
	return seq, nil
}
