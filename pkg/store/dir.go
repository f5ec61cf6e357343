package store

import (
	"sort"
	"strconv"

	bolt "go.etcd.io/bbolt"
	"src.tin.sh/pkg/store/storedefs"
)

// Parameters for directory history scores. Every visit decays the scores of
// all directories and adds DirScoreIncrement times a factor to the one
// visited.
const (
	DirScoreDecay     = 0.986 // roughly 0.5^(1/50)
	DirScoreIncrement = 10
	DirScorePrecision = 6
)

func init() {
	initDB["initialize directory history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDir))
		return err
	}
}

// AddDir records a visit to a directory.
func (s *dbStore) AddDir(d string, incFactor float64) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDir))

		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if err := b.Put(k, marshalScore(unmarshalScore(v)*DirScoreDecay)); err != nil {
				return err
			}
		}

		k := []byte(d)
		score := 0.0
		if v := b.Get(k); v != nil {
			score = unmarshalScore(v)
		}
		return b.Put(k, marshalScore(score+DirScoreIncrement*incFactor))
	})
}

// DelDir deletes a directory from the directory history.
func (s *dbStore) DelDir(d string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketDir)).Delete([]byte(d))
	})
}

// Dirs lists all directories in the directory history that are not in the
// blacklist, by descending scores.
func (s *dbStore) Dirs(blacklist map[string]struct{}) ([]storedefs.Dir, error) {
	var dirs []storedefs.Dir
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket([]byte(bucketDir)).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if _, ok := blacklist[string(k)]; ok {
				continue
			}
			dirs = append(dirs, storedefs.Dir{Path: string(k), Score: unmarshalScore(v)})
		}
		return nil
	})
	sort.SliceStable(dirs, func(i, j int) bool { return dirs[i].Score > dirs[j].Score })
	return dirs, err
}

func marshalScore(score float64) []byte {
	return []byte(strconv.FormatFloat(score, 'E', DirScorePrecision, 64))
}

func unmarshalScore(data []byte) float64 {
	f, _ := strconv.ParseFloat(string(data), 64)
	return f
}
