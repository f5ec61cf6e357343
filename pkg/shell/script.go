package shell

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"src.tin.sh/pkg/eval"
)

// ScriptConfig keeps configuration for the script mode.
type ScriptConfig struct {
	// Whether the code is given with -c rather than as the path of a file.
	Cmd   bool
	Code  string
	Paths Paths
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

// Script runs a script file or code given with -c, and returns the status of
// its last statement.
//
// The script sees its name in the global variable 0, its arguments in the
// global variables 1, 2 and so on, and all the arguments joined with spaces
// in args.
func Script(fds [3]*os.File, argv []string, cfg *ScriptConfig) int {
	var name, code string
	if cfg.Cmd {
		name, code = "tin", cfg.Code
	} else {
		if len(argv) == 0 {
			fmt.Fprintln(fds[2], "no script given")
			return 2
		}
		var err error
		name, err = filepath.Abs(argv[0])
		if err != nil {
			fmt.Fprintf(fds[2], "cannot get full path of script %q: %v\n", argv[0], err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
		argv = argv[1:]
	}

	rt, cleanup := setupShell(fds, cfg.Paths)
	defer cleanup()
	bindArgs(rt.sess, name, argv)
	return rt.ex.Source(rt.sess, code)
}

func bindArgs(sess *eval.Session, name string, argv []string) {
	write := func(name, value string) {
		if err := sess.Symbols.Write(name, value, eval.ScopeGlobal); err != nil {
			logger.Printf("failed to bind %s: %v", name, err)
		}
	}
	write("0", name)
	for i, arg := range argv {
		write(strconv.Itoa(i+1), arg)
	}
	write("args", strings.Join(argv, " "))
}

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}
