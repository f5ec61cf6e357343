// Package store is the permanent storage backend of tin: a bbolt database
// keeping the command history and the history of visited directories.
package store

import (
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"src.tin.sh/pkg/logutil"
	"src.tin.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Functions that initialize the buckets, keyed by a description for error
// messages. Filled by init functions of this package.
var initDB = map[string](func(*bolt.Tx) error){}

const (
	bucketCmd = "cmd"
	bucketDir = "dir"
)

// DBStore is the permanent storage backend for tin.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new DBStore from the given file name. The file is
// created if it does not exist.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", dbname)
	}
	st, err := NewStoreFromDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewStoreFromDB creates a new DBStore from a bolt DB, creating the buckets
// that are missing.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store from", db.Path())
	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return errors.Wrap(err, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dbStore{db}, nil
}

// Close closes the underlying database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
