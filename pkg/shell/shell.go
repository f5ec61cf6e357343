// Package shell is the entry point for the terminal interface of tin.
//
// It reads code line by line, splits it into statements and runs them with an
// Executor, either interactively or from a script.
package shell

import (
	"os"

	"src.tin.sh/pkg/logutil"
	"src.tin.sh/pkg/prog"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
type Program struct{}

func (p Program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	paths := MakePaths(fds[2], f)
	if f.CodeInArg || len(args) > 0 {
		// Scripts neither read the rc file nor touch the database.
		paths.RC, paths.DB = "", ""
		return prog.Exit(Script(fds, args, &ScriptConfig{
			Cmd: f.CodeInArg, Code: f.Code, Paths: paths}))
	}
	return prog.Exit(Interact(fds, &InteractConfig{Paths: paths}))
}
