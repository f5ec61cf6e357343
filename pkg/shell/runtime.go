package shell

import (
	"fmt"
	"os"
	"path/filepath"

	"src.tin.sh/pkg/eval"
	"src.tin.sh/pkg/fsutil"
	"src.tin.sh/pkg/histutil"
	"src.tin.sh/pkg/opts"
	"src.tin.sh/pkg/store"
	"src.tin.sh/pkg/store/storedefs"
)

// The pieces of a running shell.
type runtime struct {
	sess  *eval.Session
	ex    *Executor
	opts  *opts.Registry
	log   *histutil.Log
	store storedefs.Store // nil when there is no database
}

// Sets up the option registry, the storage database and the session. The
// returned function releases the database.
//
// Failing to load options or open the database is not fatal: a warning is
// written, and the shell runs with default options or an in-memory history.
func setupShell(fds [3]*os.File, p Paths) (*runtime, func()) {
	o := opts.New()
	if p.Opts != "" {
		err := o.LoadFile(p.Opts)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintln(fds[2], "Warning:", err)
		}
	}

	var db store.DBStore
	if p.DB != "" {
		var err error
		db, err = openStore(p.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning:", err)
			fmt.Fprintln(fds[2], "History will not be saved.")
		}
	}
	var hs histutil.Store
	if db != nil {
		hs = histutil.NewDBStore(db)
	} else {
		hs = histutil.NewMemStore()
	}
	log := histutil.NewLog(hs, func() int { return o.Int(opts.HistSize) })

	ex := NewExecutor()
	sess := eval.NewSession(o, log)
	sess.Executor = ex
	sess.Stdin, sess.Stdout, sess.Stderr = fds[0], fds[1], fds[2]

	rt := &runtime{sess: sess, ex: ex, opts: o, log: log}
	closed := false
	cleanup := func() {
		if db == nil || closed {
			return
		}
		closed = true
		if err := db.Close(); err != nil {
			logger.Println("failed to close database:", err)
		}
	}
	if db != nil {
		rt.store = db
		sess.AfterChdir = append(sess.AfterChdir, func(dir string) {
			if err := db.AddDir(dir, 1); err != nil {
				logger.Println("failed to add dir to history:", err)
			}
		})
		sess.BeforeExit = append(sess.BeforeExit, cleanup)
	}
	return rt, cleanup
}

func openStore(path string) (store.DBStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return store.NewStore(path)
}

// Returns the directories recorded in the database, most frequently visited
// first. Directories that no longer exist are removed from the database.
func (rt *runtime) dirs() []string {
	if rt.store == nil {
		return nil
	}
	dirs, err := rt.store.Dirs(storedefs.NoBlacklist)
	if err != nil {
		logger.Println("failed to list dirs:", err)
		return nil
	}
	paths := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if !fsutil.Exists(d.Path) {
			if err := rt.store.DelDir(d.Path); err != nil {
				logger.Println("failed to delete dir from history:", err)
			}
			continue
		}
		paths = append(paths, d.Path)
	}
	return paths
}
