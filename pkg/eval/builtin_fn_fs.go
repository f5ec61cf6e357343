package eval

import (
	"io"
	"os"
	"path/filepath"

	"src.tin.sh/pkg/env"
	"src.tin.sh/pkg/eval/args"
)

// Filesystem primitives.

func init() {
	addPrimitives(Primitive{
		Name: "cd",
		Desc: "Change directory",
		Run:  cd,
	})
}

// cd [PATH]
func cd(sess *Session, argv []args.Arg, _ io.Reader) int {
	words := args.Flatten(argv)
	var dir string
	switch len(words) {
	case 0:
		home, ok := env.Lookup(env.HOME)
		if !ok || home == "" {
			sess.warnf("cd", "no HOME environment variable found")
			return 2
		}
		dir = home
	case 1:
		abs, err := filepath.Abs(words[0])
		if err == nil {
			abs, err = filepath.EvalSymlinks(abs)
		}
		if err != nil {
			sess.warnf("cd", "%v", err)
			return 2
		}
		dir = abs
	default:
		sess.warnf("cd", "too many arguments")
		return 2
	}

	if err := sess.Chdir(dir); err != nil {
		sess.warnf("cd", "%v", err)
		return 2
	}
	return 0
}

// Chdir changes the working directory to dir, sets $PWD to it and calls the
// AfterChdir hooks.
func (sess *Session) Chdir(dir string) error {
	err := os.Chdir(dir)
	if err != nil {
		return err
	}
	if err := env.Set(env.PWD, dir); err != nil {
		logger.Println("set PWD after cd:", err)
	}
	for _, hook := range sess.AfterChdir {
		hook(dir)
	}
	return nil
}
