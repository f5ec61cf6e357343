package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"src.tin.sh/pkg/env"
	"src.tin.sh/pkg/prog"
)

// Paths keeps the paths of files used by the shell. An empty path means the
// file is not used.
type Paths struct {
	RC   string
	DB   string
	Opts string
}

// MakePaths returns the paths to use, respecting overrides from the command
// line. Default paths that can't be determined are left empty, with a
// warning written to stderr.
func MakePaths(stderr io.Writer, f *prog.Flags) Paths {
	p := Paths{RC: f.RC, DB: f.DB, Opts: f.Opts}
	warn := func(err error) {
		fmt.Fprintln(stderr, "Warning:", err)
	}
	if p.RC == "" && !f.NoRC {
		if dir, err := configDir(); err == nil {
			p.RC = filepath.Join(dir, "rc.tin")
		} else {
			warn(err)
		}
	}
	if f.NoRC {
		p.RC = ""
	}
	if p.Opts == "" {
		if dir, err := configDir(); err == nil {
			p.Opts = filepath.Join(dir, "opts.yaml")
		} else {
			warn(err)
		}
	}
	if p.DB == "" {
		if dir, err := stateDir(); err == nil {
			p.DB = filepath.Join(dir, "db")
		} else {
			warn(err)
		}
	}
	return p
}

// Returns $XDG_CONFIG_HOME/tin, or ~/.config/tin.
func configDir() (string, error) {
	return xdgDir(env.XDG_CONFIG_HOME, ".config")
}

// Returns $XDG_STATE_HOME/tin, or ~/.local/state/tin.
func stateDir() (string, error) {
	return xdgDir(env.XDG_STATE_HOME, filepath.Join(".local", "state"))
}

func xdgDir(envName, homeRelative string) (string, error) {
	if dir := env.Get(envName); dir != "" {
		return filepath.Join(dir, "tin"), nil
	}
	home := env.Get(env.HOME)
	if home == "" {
		var err error
		home, err = os.UserHomeDir()
		if err != nil {
			return "", errors.Wrapf(err, "cannot determine %s", envName)
		}
	}
	return filepath.Join(home, homeRelative, "tin"), nil
}
