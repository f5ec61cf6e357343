package eval

import "strings"

// CallFn calls a user-defined function with the given words as arguments.
//
// The body runs in a newly pushed frame marked as a function boundary, so
// ScopeDefault writes in the body do not reach frames of the caller. Each
// parameter is bound locally to the corresponding word; parameters without a
// word stay unbound. Parameters never reach the option registry. If the function has a vararg, it is bound to the
// remaining words joined by spaces.
func CallFn(sess *Session, fn FnDef, words []string) int {
	sess.Symbols.PushScope(true)
	defer sess.Symbols.PopScope()

	for i, param := range fn.Args {
		if i < len(words) {
			sess.Symbols.bindParam(param, words[i])
		}
	}
	if fn.Vararg != "" && len(words) > len(fn.Args) {
		sess.Symbols.bindParam(fn.Vararg, strings.Join(words[len(fn.Args):], " "))
	}
	return sess.Executor.ExecBlock(sess, fn.Lines)
}
