package histutil

import "src.tin.sh/pkg/store/storedefs"

// NewDBStore returns a Store backed by a database. Commands added to the
// database by other sessions are visible too.
func NewDBStore(db DB) Store {
	return dbStore{db}
}

type dbStore struct {
	db DB
}

func (s dbStore) AllCmds() ([]storedefs.Cmd, error) {
	upper, err := s.db.NextCmdSeq()
	if err != nil {
		return nil, err
	}
	return s.db.CmdsWithSeq(0, upper)
}

func (s dbStore) AddCmd(text string) (int, error) {
	return s.db.AddCmd(text)
}
