package eval_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"src.tin.sh/pkg/env"
	. "src.tin.sh/pkg/eval"
	"src.tin.sh/pkg/eval/args"
	"src.tin.sh/pkg/testutil"
)

// A minimal executor for testing primitives without the shell. Each line of
// a block is split on whitespace, and a word of the form $NAME is replaced by
// the value of the variable or environment variable NAME. The commands true,
// false and "status N" are understood directly; other heads are resolved to
// primitives and functions.
type testExecutor struct {
	status int
	// Statements run, for inspection.
	log []string
}

func (ex *testExecutor) ExecStatement(sess *Session, argv []args.Arg) int {
	ex.log = append(ex.log, args.Repr(argv))
	ex.status = ex.exec(sess, argv)
	return ex.status
}

func (ex *testExecutor) exec(sess *Session, argv []args.Arg) int {
	if len(argv) == 0 {
		return 0
	}
	head, rest := args.MustText(argv[0]), argv[1:]
	switch head {
	case "true":
		return 0
	case "false":
		return 1
	case "status":
		n, err := strconv.Atoi(args.MustText(rest[0]))
		if err != nil {
			panic(err)
		}
		return n
	}
	sym, ok := sess.Symbols.Resolve(head, PrimitiveKind|FunctionKind)
	if !ok {
		return 127
	}
	switch sym := sym.(type) {
	case PrimitiveSymbol:
		return sym.Primitive.Run(sess, rest, nil)
	case FunctionSymbol:
		return CallFn(sess, sym.Fn, args.Flatten(rest))
	}
	return 126
}

func (ex *testExecutor) ExecBlock(sess *Session, lines []string) int {
	status := 0
	for _, line := range lines {
		var argv []args.Arg
		for _, word := range strings.Fields(line) {
			if name, ok := strings.CutPrefix(word, "$"); ok {
				word = lookup(sess.Symbols, name, VariableKind|EnvironmentKind)
			}
			argv = append(argv, args.Text(word))
		}
		status = ex.ExecStatement(sess, argv)
	}
	return status
}

func (ex *testExecutor) Status() int { return ex.status }

// An Options with a fixed set of names.
type testOptions map[string]string

func (o testOptions) IsOption(name string) bool {
	_, ok := o[name]
	return ok
}

func (o testOptions) Get(name string) (string, bool) {
	v, ok := o[name]
	return v, ok && v != "unreadable"
}

func (o testOptions) Set(name, value string) error {
	o[name] = value
	return nil
}

// Creates a Session with an empty search path, a testExecutor, empty stdin
// and buffered output.
func setup(t *testing.T) (sess *Session, stdout, stderr *bytes.Buffer) {
	t.Helper()
	return setupWithOptions(t, nil)
}

func setupWithOptions(t *testing.T, opts Options) (sess *Session, stdout, stderr *bytes.Buffer) {
	t.Helper()
	testutil.Setenv(t, env.PATH, "")
	sess = NewSession(opts, nil)
	sess.Executor = &testExecutor{}
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	sess.Stdin = strings.NewReader("")
	sess.Stdout, sess.Stderr = stdout, stderr
	return sess, stdout, stderr
}

// Runs a primitive by name with no input stream.
func call(sess *Session, name string, argv ...args.Arg) int {
	p, ok := Primitives()[name]
	if !ok {
		panic("no primitive " + name)
	}
	return p.Run(sess, argv, nil)
}

// Resolves name as a variable and returns its value, or "" if it doesn't
// resolve.
func lookup(st *SymbolTable, name string, kinds Kind) string {
	sym, ok := st.Resolve(name, kinds)
	if !ok {
		return ""
	}
	switch sym := sym.(type) {
	case VariableSymbol:
		return sym.Value
	case EnvironmentSymbol:
		return sym.Value
	}
	return ""
}

func mustResolveVar(t *testing.T, st *SymbolTable, name, want string) {
	t.Helper()
	sym, ok := st.Resolve(name, VariableKind)
	if !ok {
		t.Errorf("Resolve(%q, VariableKind) -> not found, want %q", name, want)
		return
	}
	if got := sym.(VariableSymbol).Value; got != want {
		t.Errorf("Resolve(%q, VariableKind) -> %q, want %q", name, got, want)
	}
}

func mustNotResolve(t *testing.T, st *SymbolTable, name string, kinds Kind) {
	t.Helper()
	if sym, ok := st.Resolve(name, kinds); ok {
		t.Errorf("Resolve(%q, %v) -> %#v, want not found", name, kinds, sym)
	}
}

func texts(words ...string) []args.Arg { return args.Texts(words...) }
