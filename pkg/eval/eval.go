// Package eval implements the symbol table and command dispatch core of tin.
//
// The core consists of a scoped binding table (variables and functions), a
// cache of executables found on the search path, the process environment and
// a registry of native primitives. A name is turned into a Symbol with
// Resolve, and the executor decides what to do with it: run a primitive, call
// a function, or spawn a binary.
//
// Everything here runs on a single goroutine. A Session is exclusively owned by
// the executor driving it, and primitives receive it for the duration of one
// call; nothing in this package does locking.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"src.tin.sh/pkg/eval/args"
	"src.tin.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[eval] ")

// OSExit is used by the exit primitive to terminate the process. It is only
// overridden in tests.
var OSExit = os.Exit

// Executor drives statements and blocks. It is implemented outside this
// package; primitives such as ifx and eval re-enter it.
type Executor interface {
	// ExecStatement resolves and runs one statement and returns its status.
	ExecStatement(sess *Session, argv []args.Arg) int
	// ExecBlock runs each line of a block in order and returns the status of
	// the last statement.
	ExecBlock(sess *Session, lines []string) int
	// Status returns the status of the last statement run.
	Status() int
}

// Options is the registry of shell options. Option names take precedence over
// ordinary variables for both reading and writing.
type Options interface {
	IsOption(name string) bool
	Get(name string) (string, bool)
	Set(name, value string) error
}

// History is the command history log.
type History interface {
	Record(line string) error
	Print(w io.Writer) error
}

// NoOptions is an Options with no option names.
var NoOptions Options = noOptions{}

type noOptions struct{}

func (noOptions) IsOption(string) bool      { return false }
func (noOptions) Get(string) (string, bool) { return "", false }
func (noOptions) Set(name, _ string) error  { return fmt.Errorf("no option %s", name) }

// Session is the state of one interpreter session.
type Session struct {
	Symbols  *SymbolTable
	Executor Executor
	History  History

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Hooks called with the new working directory after cd succeeds.
	AfterChdir []func(dir string)
	// Hooks called by the exit primitive before the process terminates.
	BeforeExit []func()

	stdinReader *bufio.Reader
}

// NewSession creates a Session with a fresh SymbolTable and the standard
// streams of the process. The caller must set Executor before running any
// statement.
func NewSession(opts Options, hist History) *Session {
	return &Session{
		Symbols: NewSymbolTable(opts),
		History: hist,
		Stdin:   os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr,
	}
}

// Returns a buffered reader on Stdin that is reused across calls so that no
// buffered input is lost between two reads.
func (sess *Session) stdin() *bufio.Reader {
	if sess.stdinReader == nil {
		sess.stdinReader = bufio.NewReader(sess.Stdin)
	}
	return sess.stdinReader
}

// RedirectStdin points Stdin to r until the returned function is called. Input
// buffered from the old Stdin is kept for when it is restored.
func (sess *Session) RedirectStdin(r io.Reader) (restore func()) {
	oldIn, oldReader := sess.Stdin, sess.stdinReader
	sess.Stdin, sess.stdinReader = r, nil
	return func() { sess.Stdin, sess.stdinReader = oldIn, oldReader }
}

// Writes a warning of a primitive to the diagnostic output.
func (sess *Session) warnf(name, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	fmt.Fprintf(sess.Stderr, "%s: %s\n", name, msg)
	logger.Printf("%s: %s", name, msg)
}
