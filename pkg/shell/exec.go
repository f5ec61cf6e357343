package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"src.tin.sh/pkg/eval"
	"src.tin.sh/pkg/eval/args"
	"src.tin.sh/pkg/opts"
)

// Exit statuses of statements that could not be run.
const (
	StatusNotCommand = 126
	StatusNotFound   = 127
)

// Executor runs statements and blocks on a Session, dispatching on what the
// first word of a statement resolves to.
type Executor struct {
	// If not nil, external commands without an input redirection read from
	// this file instead of the Stdin of the session. It is set when the
	// session reads stdin through a buffer, as the command would otherwise
	// block until that buffer reaches EOF.
	ProcStdin *os.File

	status int
}

var _ eval.Executor = (*Executor)(nil)

// NewExecutor creates an Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Status returns the status of the last statement run.
func (ex *Executor) Status() int {
	return ex.status
}

// Source runs a piece of code.
func (ex *Executor) Source(sess *eval.Session, code string) int {
	return ex.ExecBlock(sess, SplitLines(code))
}

// ExecBlock runs each statement of the lines in order and returns the status
// of the last one, or 0 if there are none. Nothing is run if the braces of the
// lines don't balance. Words of the form $NAME are expanded as each statement
// is about to run.
func (ex *Executor) ExecBlock(sess *eval.Session, lines []string) int {
	stmts, err := parse(lines)
	if err != nil {
		fmt.Fprintf(sess.Stderr, "tin: %v\n", err)
		ex.status = 2
		return ex.status
	}
	status := 0
	for _, stmt := range stmts {
		status = ex.ExecStatement(sess, ex.expand(sess, stmt.argv))
	}
	return status
}

// ExecStatement runs one statement. A statement without a leading word runs
// the blank primitive with its blocks. The words are taken as they are; no
// expansion is done, so a statement passed on by ifx or eval is not expanded
// a second time.
func (ex *Executor) ExecStatement(sess *eval.Session, argv []args.Arg) int {
	ex.status = ex.exec(sess, argv)
	return ex.status
}

func (ex *Executor) exec(sess *eval.Session, argv []args.Arg) int {
	name := eval.BlankName
	if len(argv) > 0 && args.IsText(argv[0]) {
		name, argv = args.MustText(argv[0]), argv[1:]
	}
	if debug(sess) {
		fmt.Fprintf(sess.Stderr, "debug: %s %s\n", name, args.Repr(argv))
	}

	sym, ok := sess.Symbols.Resolve(name, eval.AllKinds)
	if !ok {
		logger.Printf("%s not found", name)
		fmt.Fprintf(sess.Stderr, "tin: %s: command not found\n", name)
		return StatusNotFound
	}
	if debug(sess) {
		fmt.Fprintf(sess.Stderr, "debug: %s is a %v\n", name, sym.Kind())
	}

	argv, r, err := openRedirs(sess, argv)
	if err != nil {
		fmt.Fprintf(sess.Stderr, "tin: %v\n", err)
		return 1
	}
	defer r.close()

	switch sym := sym.(type) {
	case eval.PrimitiveSymbol:
		defer r.apply(sess)()
		return sym.Primitive.Run(sess, argv, r.in)
	case eval.FunctionSymbol:
		defer r.apply(sess)()
		return eval.CallFn(sess, sym.Fn, args.Flatten(argv))
	case eval.BinarySymbol:
		if r.in == nil && ex.ProcStdin != nil {
			r.in = ex.ProcStdin
		}
		return spawn(sess, sym.Path, name, args.Flatten(argv), r)
	default:
		fmt.Fprintf(sess.Stderr, "tin: %s: not a command\n", name)
		return StatusNotCommand
	}
}

// Replaces each Text word of the form $NAME with the value of the variable or
// environment variable NAME, or "" if there is none. $? is the status of the
// last statement.
func (ex *Executor) expand(sess *eval.Session, argv []args.Arg) []args.Arg {
	expanded := make([]args.Arg, len(argv))
	for i, a := range argv {
		expanded[i] = a
		t, ok := a.(args.Text)
		if !ok || len(t) < 2 || t[0] != '$' {
			continue
		}
		name := string(t[1:])
		if name == "?" {
			expanded[i] = args.Text(strconv.Itoa(ex.status))
			continue
		}
		value := ""
		sym, _ := sess.Symbols.Resolve(name, eval.VariableKind|eval.EnvironmentKind)
		switch sym := sym.(type) {
		case eval.VariableSymbol:
			value = sym.Value
		case eval.EnvironmentSymbol:
			value = sym.Value
		}
		expanded[i] = args.Text(value)
	}
	return expanded
}

func debug(sess *eval.Session) bool {
	sym, _ := sess.Symbols.Resolve(opts.Debug, eval.VariableKind)
	v, ok := sym.(eval.VariableSymbol)
	return ok && v.Value == "true"
}

// Runs an external command and waits for it to finish. The exit status of the
// command becomes the status; a command killed by a signal has status 128
// plus the signal number where that is available, 1 otherwise.
func spawn(sess *eval.Session, path, name string, words []string, r *redirs) int {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   append([]string{name}, words...),
		Stdin:  r.stdin(sess),
		Stdout: r.stdout(sess),
		Stderr: r.stderr(sess),
	}
	err := cmd.Run()
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code
		}
		if sig, ok := signalOf(exitErr); ok {
			return 128 + sig
		}
		return 1
	}
	fmt.Fprintf(sess.Stderr, "tin: %s: %v\n", name, strings.TrimPrefix(err.Error(), "fork/exec "))
	return StatusNotCommand
}
