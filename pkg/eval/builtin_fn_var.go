package eval

import (
	"io"
	"strings"

	"go.uber.org/multierr"
	"src.tin.sh/pkg/eval/args"
)

// Variable and function definition.

func init() {
	addPrimitives(Primitive{
		Name: "set",
		Desc: "Set a variable or function binding",
		Run:  set,
	})
}

// Characters that may not appear in a name.
const badNameChars = "?! {}()"

// set [-l|-g|-e] NAME... = VALUE...
// set [-l|-g|-e] NAME... = fn PARAM... { BLOCK }
// set [-l|-g|-e] fn NAME... = PARAM... { BLOCK }
func set(sess *Session, argv []args.Arg, _ io.Reader) int {
	if len(argv) == 1 {
		if rd, ok := argv[0].(args.Redir); ok {
			sess.warnf("set", "cannot set redirection %s", rd)
			return 2
		}
	}
	if len(argv) == 0 {
		sess.warnf("set", "usage: set [-l|-g|-e] NAME... = VALUE...")
		return 2
	}

	spec, argv := parseScopeFlags(sess, argv)
	names, argv, ok := splitAtEquals(argv)
	if !ok {
		sess.warnf("set", "malformed syntax (no '=')")
		return 2
	}
	if len(names) == 0 {
		sess.warnf("set", "no names given")
		return 2
	}

	fnPrefix := len(names) > 1 && names[0] == "fn"
	if fnPrefix {
		names = names[1:]
	}
	names = validNames(sess, names)

	if fnPrefix {
		return defineFn(sess, names, argv, spec)
	}
	if len(argv) > 0 && argv[0] == args.Text("fn") {
		return defineFn(sess, names, argv[1:], spec)
	}

	value := strings.Join(args.Flatten(argv), " ")
	var err error
	for _, name := range names {
		err = multierr.Append(err, sess.Symbols.Write(name, value, spec))
	}
	if err != nil {
		sess.warnf("set", "%v", err)
		return 2
	}
	return 0
}

// Consumes leading flag arguments. The last scope flag wins. A warning is
// written when a scope flag differs from an earlier scope flag; repeating a
// flag, or following an unrecognized letter, does not warn about scopes.
func parseScopeFlags(sess *Session, argv []args.Arg) (ScopeSpec, []args.Arg) {
	spec := ScopeDefault
	for len(argv) > 0 {
		t, ok := argv[0].(args.Text)
		if !ok || !strings.HasPrefix(string(t), "-") {
			break
		}
		argv = argv[1:]
		for _, c := range string(t)[1:] {
			var newSpec ScopeSpec
			switch c {
			case 'l':
				newSpec = ScopeLocal
			case 'g':
				newSpec = ScopeGlobal
			case 'e':
				newSpec = ScopeEnv
			default:
				sess.warnf("set", "unrecognized flag '%c'", c)
				continue
			}
			if spec != ScopeDefault && spec != newSpec {
				sess.warnf("set", "multiple scopes specified, using %s", newSpec)
			}
			spec = newSpec
		}
	}
	return spec, argv
}

// Splits argv at the first "=" argument, flattening everything before it into
// names. It returns false if there is no "=".
func splitAtEquals(argv []args.Arg) ([]string, []args.Arg, bool) {
	for i, a := range argv {
		if a == args.Text("=") {
			return args.Flatten(argv[:i]), argv[i+1:], true
		}
	}
	return nil, nil, false
}

func validNames(sess *Session, names []string) []string {
	valid := names[:0]
	for _, name := range names {
		if strings.ContainsAny(name, badNameChars) {
			sess.warnf("set", "name '%s' contains invalid characters", name)
			continue
		}
		valid = append(valid, name)
	}
	return valid
}

// Binds each name to a function whose parameters are argv minus the last
// argument, which must be a block holding the body. A final parameter of the
// form NAME... collects the remaining arguments of a call. Parameters may not
// be named after options.
func defineFn(sess *Session, names []string, argv []args.Arg, spec ScopeSpec) int {
	if len(argv) == 0 || !args.IsBlock(argv[len(argv)-1]) {
		sess.warnf("set", "fn declaration must contain a block as its last argument")
		return 2
	}
	body := args.MustBlock(argv[len(argv)-1])
	params := args.Flatten(argv[:len(argv)-1])
	var vararg string
	if n := len(params); n > 0 && strings.HasSuffix(params[n-1], "...") {
		vararg = strings.TrimSuffix(params[n-1], "...")
		params = params[:n-1]
	}
	for _, param := range params {
		if sess.Symbols.opts.IsOption(param) {
			sess.warnf("set", "parameter '%s' is an option name", param)
			return 2
		}
	}
	if vararg != "" && sess.Symbols.opts.IsOption(vararg) {
		sess.warnf("set", "parameter '%s' is an option name", vararg)
		return 2
	}

	var err error
	for _, name := range names {
		fn := FnDef{Name: name, Args: params, Vararg: vararg, Lines: body}
		err = multierr.Append(err, sess.Symbols.WriteFn(name, fn, spec))
	}
	if err != nil {
		sess.warnf("set", "%v", err)
		return 2
	}
	return 0
}
