// Package prog provides the entry point to tin. It parses the command line
// and runs the appropriate "subprogram": the version printer, the language
// server or the shell.
package prog

import (
	"errors"
	"fmt"
	"os"

	"github.com/docopt/docopt-go"
	"src.tin.sh/pkg/logutil"
)

const usage = `tin - a small command interpreter

Usage:
  tin [options] [SCRIPT [ARG...]]
  tin [options] -c CODE [ARG...]
  tin --lsp [--log=FILE]
  tin --version
  tin -h | --help

Options:
  -c CODE      Execute CODE instead of a script or interactive input.
  --log=FILE   Write debug log to FILE.
  --db=FILE    Path to the history database.
  --opts=FILE  Path to the options file.
  --rc=FILE    Path to the rc file, sourced in interactive mode.
  --norc       Do not source the rc file.
  --lsp        Run the language server over stdin and stdout.
  --version    Show version and quit.
  -h --help    Show this help and quit.
`

// Flags keeps command-line flags.
type Flags struct {
	Log, DB, Opts, RC string

	Help, Version, LSP, NoRC bool

	// Code given with -c, and whether -c was given at all.
	Code      string
	CodeInArg bool
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	f, rest, err := parse(args[1:])
	if err != nil {
		fmt.Fprintln(fds[2], err)
		fmt.Fprint(fds[2], usage)
		return 2
	}

	if f.Log != "" {
		if err := logutil.SetOutputFile(f.Log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	if f.Help {
		fmt.Fprint(fds[1], usage)
		return 0
	}

	err = p.Run(fds, f, rest)
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		fmt.Fprint(fds[2], usage)
	case exitError:
		return err.exit
	}
	return 2
}

func parse(argv []string) (*Flags, []string, error) {
	parser := &docopt.Parser{
		HelpHandler:   docopt.NoHelpHandler,
		OptionsFirst:  true,
		SkipHelpFlags: true,
	}
	if argv == nil {
		// docopt reads os.Args when given nil.
		argv = []string{}
	}
	opts, err := parser.ParseArgs(usage, argv, "")
	if err != nil {
		return nil, nil, errors.New("bad command line")
	}

	f := &Flags{}
	f.Log, _ = opts.String("--log")
	f.DB, _ = opts.String("--db")
	f.Opts, _ = opts.String("--opts")
	f.RC, _ = opts.String("--rc")
	f.Help, _ = opts.Bool("--help")
	f.Version, _ = opts.Bool("--version")
	f.LSP, _ = opts.Bool("--lsp")
	f.NoRC, _ = opts.Bool("--norc")
	f.Code, _ = opts.String("-c")
	f.CodeInArg = opts["-c"] != nil

	var rest []string
	if script, _ := opts.String("SCRIPT"); script != "" {
		rest = append(rest, script)
	}
	if more, ok := opts["ARG"].([]string); ok {
		rest = append(rest, more...)
	}
	return f, rest, nil
}

// Composite returns a Program that tries each of the given programs,
// terminating at the first one that doesn't return ErrNotSuitable.
func Composite(programs ...Program) Program {
	return compositeProgram(programs)
}

type compositeProgram []Program

func (cp compositeProgram) Run(fds [3]*os.File, f *Flags, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, f, args)
		if err != ErrNotSuitable {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNotSuitable.
	return ErrNotSuitable
}

// ErrNotSuitable is a special error that may be returned by Program.Run, to
// signify that this Program should not be run. It is useful when a Program is
// used in Composite.
var ErrNotSuitable = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

// Program represents a subprogram.
type Program interface {
	// Run runs the subprogram.
	Run(fds [3]*os.File, f *Flags, args []string) error
}
