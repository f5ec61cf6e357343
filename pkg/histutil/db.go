package histutil

import "src.tin.sh/pkg/store/storedefs"

// DB is the part of the storage database used for command history.
type DB interface {
	NextCmdSeq() (int, error)
	AddCmd(cmd string) (int, error)
	CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error)
}

// TestDB is an implementation of the DB interface that can be used for
// testing.
type TestDB struct {
	AllCmds []string

	OneOffError error
}

func (s *TestDB) error() error {
	err := s.OneOffError
	s.OneOffError = nil
	return err
}

func (s *TestDB) NextCmdSeq() (int, error) {
	return len(s.AllCmds), s.error()
}

func (s *TestDB) AddCmd(cmd string) (int, error) {
	if s.OneOffError != nil {
		return -1, s.error()
	}
	s.AllCmds = append(s.AllCmds, cmd)
	return len(s.AllCmds) - 1, nil
}

func (s *TestDB) CmdsWithSeq(from, upto int) ([]storedefs.Cmd, error) {
	if s.OneOffError != nil {
		return nil, s.error()
	}
	var cmds []storedefs.Cmd
	for i := from; i < upto && i < len(s.AllCmds); i++ {
		cmds = append(cmds, storedefs.Cmd{Text: s.AllCmds[i], Seq: i})
	}
	return cmds, nil
}
